package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/insight-ai/reasoneval/internal/textutil"
)

// loggedPromptLength bounds the prompt excerpt written to logs.
const loggedPromptLength = 120

// NewLoggingMiddleware returns middleware that logs the request lifecycle
// with structured attributes: a trace ID (assigned when absent), latency,
// token usage, and error classification on failure. Prompts are truncated
// before logging so article text never floods the log stream.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if req.TraceID == "" {
				req.TraceID = uuid.New().String()
			}

			start := time.Now()
			logger.DebugContext(ctx, "llm request started",
				"trace_id", req.TraceID,
				"model", req.Model,
				"temperature", req.Temperature,
				"prompt_excerpt", textutil.Truncate(req.Prompt, loggedPromptLength))

			resp, err := next.Handle(ctx, req)
			latency := time.Since(start)

			if err != nil {
				errType := ErrorTypeUnknown
				var llmErr *Error
				if errors.As(err, &llmErr) {
					errType = llmErr.Type
				}
				logger.ErrorContext(ctx, "llm request failed",
					"trace_id", req.TraceID,
					"model", req.Model,
					"latency_ms", latency.Milliseconds(),
					"error_type", string(errType),
					"error", err)
				return nil, err
			}

			logger.InfoContext(ctx, "llm request completed",
				"trace_id", req.TraceID,
				"model", req.Model,
				"latency_ms", latency.Milliseconds(),
				"total_tokens", resp.TotalTokens,
				"finish_reason", resp.FinishReason,
				"provider_request_id", resp.ProviderRequestID)
			return resp, nil
		})
	}
}
