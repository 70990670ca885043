// Package assist drafts short reminder notes with a language model.
package assist

import "context"

// Provider is a chat completion backend.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Name() string
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	System      string
	Messages    []Message
	Model       string
	MaxTokens   int
	Temperature float64
}

type Response struct {
	Content      string
	StopReason   string
	InputTokens  int
	OutputTokens int
}
