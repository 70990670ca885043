package postly

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4096
)

// ErrUnauthorized matches any APIError with status 401.
var ErrUnauthorized = errors.New("not authenticated")

// APIError is a non-2xx reply from the backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("postly API error (status %d)", e.Status)
	}
	return fmt.Sprintf("postly API error (status %d): %s", e.Status, e.Detail)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// TokenSource supplies the bearer token for authenticated requests.
// An empty token means the request goes out without Authorization.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Client talks to the Postly REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tokens == nil {
		tokens = StaticToken("")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
	public bool
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if !cl.public {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", cl.method),
			zap.String("path", cl.path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("%s %s failed: %w", cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", cl.path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
	} else {
		apiErr.Detail = strings.TrimSpace(string(raw))
	}
	return apiErr
}

// CreateReminder persists a new reminder and returns the backend's copy.
func (c *Client) CreateReminder(ctx context.Context, in ReminderInput) (Reminder, error) {
	var r Reminder
	err := c.do(ctx, call{method: http.MethodPost, path: "/schedule/reminders/", body: in}, &r)
	if err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// ListReminders returns all reminders of the current user.
func (c *Client) ListReminders(ctx context.Context) ([]Reminder, error) {
	var out []Reminder
	if err := c.do(ctx, call{method: http.MethodGet, path: "/schedule/reminders/"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReminder removes a reminder by id.
func (c *Client) DeleteReminder(ctx context.Context, id ID) error {
	path := "/schedule/reminders/" + url.PathEscape(string(id)) + "/"
	return c.do(ctx, call{method: http.MethodDelete, path: path}, nil)
}

// FetchSuggestions returns recommended posting slots for platform.
// A response without a suggestions field yields an empty slice.
func (c *Client) FetchSuggestions(ctx context.Context, platform Platform) ([]Suggestion, error) {
	q := url.Values{}
	q.Set("platform", string(platform))

	var resp suggestionsResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: "/posting-suggestions/", query: q}, &resp); err != nil {
		return nil, err
	}
	if resp.Suggestions == nil {
		return []Suggestion{}, nil
	}
	return resp.Suggestions, nil
}

// ListDrafts returns the user's drafts for the attachment selector.
func (c *Client) ListDrafts(ctx context.Context) ([]DraftSummary, error) {
	var out []DraftSummary
	if err := c.do(ctx, call{method: http.MethodGet, path: "/drafts/"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile returns the creator profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var p Profile
	if err := c.do(ctx, call{method: http.MethodGet, path: "/auth/me/profile/"}, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// GeneratePlan asks the backend to add an AI posting plan to the calendar.
func (c *Client) GeneratePlan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	var res PlanResult
	if err := c.do(ctx, call{method: http.MethodPost, path: "/scheduler/ai-plan/", body: req}, &res); err != nil {
		return PlanResult{}, err
	}
	return res, nil
}

// Login exchanges credentials for a JWT pair. The call is never authenticated.
func (c *Client) Login(ctx context.Context, username, password string) (Tokens, error) {
	body := map[string]string{"username": username, "password": password}

	var t Tokens
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/login/", body: body, public: true}, &t); err != nil {
		return Tokens{}, err
	}
	if t.Access == "" {
		return Tokens{}, fmt.Errorf("login response did not contain an access token")
	}
	return t, nil
}
