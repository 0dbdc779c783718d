package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Chat roles understood by both providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat transcript sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest holds the parameters for an LLM generation call.
//
// The conversation sent to the model is SystemPrompt (if any), then
// Messages, then UserPrompt (if any).
type GenerateRequest struct {
	Task         TaskType
	Model        string // overrides the configured model when set
	SystemPrompt string
	UserPrompt   string
	Messages     []Message
	JSON         bool     // ask the provider for a JSON-only response
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

func (r GenerateRequest) conversation() []Message {
	out := make([]Message, 0, len(r.Messages)+2)
	if r.SystemPrompt != "" {
		out = append(out, Message{Role: RoleSystem, Content: r.SystemPrompt})
	}
	out = append(out, r.Messages...)
	if r.UserPrompt != "" {
		out = append(out, Message{Role: RoleUser, Content: r.UserPrompt})
	}
	return out
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the model server is reachable.
	Available(ctx context.Context) bool
}

// NewClient validates cfg and returns the client for its provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Provider == ProviderOllama {
		return NewOllamaClient(cfg, observer), nil
	}
	return NewOpenAIClient(cfg, observer), nil
}

// callParams is a GenerateRequest resolved against the configuration.
type callParams struct {
	Model       string
	Messages    []Message
	JSON        bool
	Temperature float64
	MaxTokens   int
}

// sendFunc performs one wire attempt and returns the text and serving model.
type sendFunc func(ctx context.Context, p callParams) (text, model string, err error)

// caller carries what every provider shares: HTTP transport, throttling,
// retries and call events.
type caller struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
	limiter  *rate.Limiter
}

func newCaller(cfg LLMConfig, observer Observer) caller {
	if observer == nil {
		observer = NoopObserver{}
	}
	return caller{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
		limiter:  newLimiter(cfg.RatePerMinute),
	}
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

func (c *caller) params(req GenerateRequest) callParams {
	taskCfg := c.cfg.Tasks[req.Task]
	p := callParams{
		Model:       c.cfg.Model,
		Messages:    req.conversation(),
		JSON:        req.JSON,
		Temperature: taskCfg.Temperature,
		MaxTokens:   taskCfg.MaxTokens,
	}
	if req.Model != "" {
		p.Model = req.Model
	}
	if req.Temperature != nil {
		p.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		p.MaxTokens = *req.MaxTokens
	}
	return p
}

// generate runs send with per-attempt timeouts and retries. Each attempt
// waits on the rate limiter first. Rejected requests and an expired parent
// context end the loop early.
func (c *caller) generate(ctx context.Context, req GenerateRequest, send sendFunc) (*GenerateResponse, error) {
	start := time.Now()
	p := c.params(req)
	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	var lastErr error
	attempts := 0
	for i := 0; i < 1+c.cfg.MaxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			lastErr = fmt.Errorf("waiting for rate limiter: %w", err)
			break
		}
		attempts++

		text, model, err := c.attempt(ctx, timeout, p, send)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Model:     p.Model,
				LatencyMs: latency,
				Attempts:  attempts,
				Success:   true,
			})
			if model == "" {
				model = p.Model
			}
			return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
		}
		lastErr = err

		// Don't retry on caller cancellation or a rejected request
		if ctx.Err() != nil || errors.Is(err, ErrRejected) {
			break
		}
	}

	final := classify(ctx, lastErr)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Model:     p.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
		Success:   false,
		ErrorCode: errorCode(final),
	})
	return nil, final
}

func (c *caller) attempt(ctx context.Context, timeout time.Duration, p callParams, send sendFunc) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return send(ctx, p)
}

// probe issues a GET and reports whether it answered 200.
func (c *caller) probe(ctx context.Context, url string, header http.Header) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// statusError is a non-200 answer from the server.
type statusError struct {
	Code    int
	Message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Message)
}

// checkStatus maps an HTTP status to an error. Client errors other than
// timeouts and throttling are wrapped in ErrRejected.
func checkStatus(code int, message string) error {
	if code == http.StatusOK {
		return nil
	}
	err := &statusError{Code: code, Message: message}
	if code >= 400 && code < 500 && code != http.StatusRequestTimeout && code != http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return err
}

func classify(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	case errors.Is(err, ErrRejected), errors.Is(err, ErrInvalidOutput):
		return err
	case ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case isConnectionError(err):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}
