package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Default HTTP client settings.
const (
	defaultHTTPTimeout = 90 * time.Second
)

// ErrEmptyPrompt indicates a request with no user prompt.
var ErrEmptyPrompt = errors.New("prompt must not be empty")

// ErrMissingModel indicates a request with no model identifier.
var ErrMissingModel = errors.New("model must not be empty")

// Client is the invocation capability: submit one prompt, receive text.
// Implementations are safe for concurrent use; configuration is immutable
// after construction.
type Client interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// ClientConfig holds the immutable configuration for one client instance.
type ClientConfig struct {
	// APIKey is the provider credential.
	APIKey string

	// Endpoint overrides the provider API base URL. Empty uses the default.
	Endpoint string

	// MaxRetries is the number of retries after the initial attempt for
	// transient failures.
	MaxRetries int

	// HTTPClient overrides the underlying HTTP client, used by tests.
	HTTPClient *http.Client
}

// client executes requests through the middleware chain terminating in the
// OpenAI HTTP adapter.
type client struct {
	handler Handler
}

// NewClient builds an OpenAI-backed client with retry and logging
// middleware. A nil logger falls back to slog.Default().
func NewClient(cfg ClientConfig, logger *slog.Logger) Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	core := &httpHandler{
		adapter: NewOpenAIAdapter(cfg.Endpoint, cfg.APIKey),
		client:  httpClient,
	}

	handler := Chain(core,
		NewLoggingMiddleware(logger),
		NewRetryMiddleware(cfg.MaxRetries, logger),
	)

	return &client{handler: handler}
}

// Complete submits one request through the middleware chain.
func (c *client) Complete(ctx context.Context, req *Request) (*Response, error) {
	if req.Prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if req.Model == "" {
		return nil, ErrMissingModel
	}
	return c.handler.Handle(ctx, req)
}

// httpHandler is the core handler that performs the provider HTTP exchange.
type httpHandler struct {
	adapter *OpenAIAdapter
	client  *http.Client
}

// Handle builds, executes, and parses one provider request, applying the
// per-request timeout when set.
func (h *httpHandler) Handle(ctx context.Context, req *Request) (*Response, error) {
	reqCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := h.adapter.Build(reqCtx, req)
	if err != nil {
		return nil, WrapTransportError(h.adapter.Name(), err)
	}

	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, WrapTransportError(h.adapter.Name(), err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	return h.adapter.Parse(httpResp)
}
