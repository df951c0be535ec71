// Package llm provides the invocation capability for the evaluation
// pipeline: a single request/response exchange with an LLM provider.
// The client is provider-agnostic with an adapter per provider and a
// composable middleware chain for retry and observability. Requests carry
// a per-call timeout; failures surface as classified *Error values that
// the owning agent folds into its fallback result.
package llm

import (
	"context"
	"time"
)

// Request is a normalized, provider-agnostic completion request.
type Request struct {
	// SystemPrompt optionally sets the system role message.
	SystemPrompt string

	// Prompt is the user message submitted to the model.
	Prompt string

	// Model identifies the model to invoke, e.g. "gpt-4-turbo-preview".
	Model string

	// Temperature controls sampling randomness.
	Temperature float64

	// MaxTokens bounds the completion length. Zero means provider default.
	MaxTokens int

	// Timeout bounds the whole exchange. Zero disables the per-call bound.
	Timeout time.Duration

	// TraceID correlates logs across one invocation. Assigned by the
	// logging middleware when empty.
	TraceID string
}

// Response is a normalized completion response.
type Response struct {
	// Content is the model's response text.
	Content string

	// Model echoes the model that produced the response.
	Model string

	// FinishReason is the provider's stop reason, normalized to lowercase.
	FinishReason string

	// TotalTokens counts prompt plus completion tokens when reported.
	TotalTokens int64

	// ProviderRequestID is the provider-side request identifier, if any.
	ProviderRequestID string
}

// Handler processes requests through the composable middleware pipeline.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(context.Context, *Request) (*Response, error)

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Middleware transforms a Handler into an enhanced Handler.
type Middleware func(Handler) Handler

// Chain builds a middleware pipeline around a core handler. Middleware
// executes in the order provided with the first middleware outermost.
func Chain(h Handler, middlewares ...Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
