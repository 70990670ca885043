package assist

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-deepseek/deepseek"
	"github.com/go-deepseek/deepseek/request"
)

// DeepSeekProvider completes prompts through the DeepSeek SDK.
type DeepSeekProvider struct {
	client deepseek.Client
}

func NewDeepSeekProvider(apiKey string) (*DeepSeekProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("DeepSeek API key is required")
	}

	client, err := deepseek.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create DeepSeek client: %w", err)
	}
	return &DeepSeekProvider{client: client}, nil
}

func (p *DeepSeekProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	messages := make([]*request.Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, &request.Message{Role: "system", Content: req.System})
	}
	for _, msg := range req.Messages {
		messages = append(messages, &request.Message{Role: msg.Role, Content: msg.Content})
	}

	var temp *float32
	if req.Temperature > 0 {
		t := float32(req.Temperature)
		temp = &t
	}

	resp, err := p.client.CallChatCompletionsChat(ctx, &request.ChatCompletionsRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: temp,
		Stream:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("DeepSeek API request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("DeepSeek returned no choices")
	}

	return &Response{
		Content:      resp.Choices[0].Message.Content,
		StopReason:   resp.Choices[0].FinishReason,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

func (p *DeepSeekProvider) Name() string {
	return "deepseek"
}
