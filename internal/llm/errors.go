package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorType categorizes invocation failures for retry classification.
// Types determine whether a request should be retried before the owning
// agent falls back to its default result.
type ErrorType string

const (
	// ErrorTypeTimeout indicates request timeout or deadline exceeded (retryable).
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeRateLimit indicates provider rate limiting (retryable).
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeNetwork indicates network connectivity issues (retryable).
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeProvider indicates provider service unavailable (retryable).
	ErrorTypeProvider ErrorType = "provider_unavailable"

	// ErrorTypeMalformedResponse indicates the provider returned an
	// unintelligible response envelope (non-retryable).
	ErrorTypeMalformedResponse ErrorType = "malformed_response"

	// ErrorTypeAuth indicates authentication failed (non-retryable).
	ErrorTypeAuth ErrorType = "authentication"

	// ErrorTypeQuota indicates account quota exceeded (non-retryable).
	ErrorTypeQuota ErrorType = "quota_exceeded"

	// ErrorTypeUnknown indicates an unclassified error (non-retryable).
	ErrorTypeUnknown ErrorType = "unknown"
)

// Error is the invocation error returned by the LLM client. It carries the
// failure classification, provider attribution, and the HTTP status when one
// was received.
type Error struct {
	Type       ErrorType
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm %s error (%s, status %d): %s", e.Type, e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("llm %s error (%s): %s", e.Type, e.Provider, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Cause }

// Retryable reports whether the failure is transient and worth retrying.
func (e *Error) Retryable() bool {
	switch e.Type {
	case ErrorTypeTimeout, ErrorTypeRateLimit, ErrorTypeNetwork, ErrorTypeProvider:
		return true
	default:
		return false
	}
}

// classifyStatus maps an HTTP status code to an ErrorType.
func classifyStatus(status int) ErrorType {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorTypeAuth
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status == http.StatusPaymentRequired:
		return ErrorTypeQuota
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrorTypeTimeout
	case status >= http.StatusInternalServerError:
		return ErrorTypeProvider
	default:
		return ErrorTypeUnknown
	}
}

// WrapTransportError converts a raw transport failure into an *Error,
// classifying context deadlines as timeouts and net errors as network
// failures. Existing *Error values pass through unchanged.
func WrapTransportError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	errType := ErrorTypeNetwork
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		errType = ErrorTypeTimeout
	case errors.Is(err, context.Canceled):
		errType = ErrorTypeTimeout
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			errType = ErrorTypeTimeout
		}
	}

	return &Error{
		Type:     errType,
		Provider: provider,
		Message:  err.Error(),
		Cause:    err,
	}
}
