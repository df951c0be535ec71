package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCompletionServer returns a test server that answers chat/completions
// with the given content after invoking check on each request.
func newCompletionServer(t *testing.T, content string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("x-request-id", "req-123")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "chatcmpl-1",
			"model": "gpt-4-turbo-preview",
			"choices": []map[string]any{
				{
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]any{"total_tokens": 42},
		})
	}))
}

func TestClientComplete(t *testing.T) {
	t.Run("successful completion", func(t *testing.T) {
		var gotAuth string
		var gotBody openAIRequest
		srv := newCompletionServer(t, `{"score": 0.8}`, func(r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		})
		defer srv.Close()

		c := NewClient(ClientConfig{APIKey: "sk-test", Endpoint: srv.URL}, nil)
		resp, err := c.Complete(context.Background(), &Request{
			Prompt:      "evaluate this article",
			Model:       "gpt-4-turbo-preview",
			Temperature: 0.3,
		})

		require.NoError(t, err)
		assert.Equal(t, `{"score": 0.8}`, resp.Content)
		assert.Equal(t, "stop", resp.FinishReason)
		assert.Equal(t, int64(42), resp.TotalTokens)
		assert.Equal(t, "req-123", resp.ProviderRequestID)
		assert.Equal(t, "Bearer sk-test", gotAuth)
		assert.Equal(t, "gpt-4-turbo-preview", gotBody.Model)
		assert.InDelta(t, 0.3, gotBody.Temperature, 1e-9)
		require.Len(t, gotBody.Messages, 1)
		assert.Equal(t, "user", gotBody.Messages[0].Role)
	})

	t.Run("system prompt becomes first message", func(t *testing.T) {
		var gotBody openAIRequest
		srv := newCompletionServer(t, "ok", func(r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		})
		defer srv.Close()

		c := NewClient(ClientConfig{APIKey: "sk-test", Endpoint: srv.URL}, nil)
		_, err := c.Complete(context.Background(), &Request{
			SystemPrompt: "you are a financial article reviewer",
			Prompt:       "article text",
			Model:        "gpt-4-turbo-preview",
		})

		require.NoError(t, err)
		require.Len(t, gotBody.Messages, 2)
		assert.Equal(t, "system", gotBody.Messages[0].Role)
		assert.Equal(t, "user", gotBody.Messages[1].Role)
	})

	t.Run("empty prompt rejected", func(t *testing.T) {
		c := NewClient(ClientConfig{APIKey: "sk-test"}, nil)
		_, err := c.Complete(context.Background(), &Request{Model: "m"})
		require.ErrorIs(t, err, ErrEmptyPrompt)
	})

	t.Run("missing model rejected", func(t *testing.T) {
		c := NewClient(ClientConfig{APIKey: "sk-test"}, nil)
		_, err := c.Complete(context.Background(), &Request{Prompt: "p"})
		require.ErrorIs(t, err, ErrMissingModel)
	})
}

func TestClientErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantType   ErrorType
		wantDetail string
	}{
		{
			name:       "rate limit",
			status:     http.StatusTooManyRequests,
			body:       `{"error": {"message": "Rate limit reached", "type": "tokens"}}`,
			wantType:   ErrorTypeRateLimit,
			wantDetail: "Rate limit reached",
		},
		{
			name:       "authentication failure",
			status:     http.StatusUnauthorized,
			body:       `{"error": {"message": "Incorrect API key provided"}}`,
			wantType:   ErrorTypeAuth,
			wantDetail: "Incorrect API key",
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `oops`,
			wantType:   ErrorTypeProvider,
			wantDetail: "oops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(ClientConfig{APIKey: "sk-test", Endpoint: srv.URL}, nil)
			_, err := c.Complete(context.Background(), &Request{Prompt: "p", Model: "m"})

			var llmErr *Error
			require.ErrorAs(t, err, &llmErr)
			assert.Equal(t, tt.wantType, llmErr.Type)
			assert.Equal(t, tt.status, llmErr.StatusCode)
			assert.Contains(t, llmErr.Message, tt.wantDetail)
		})
	}

	t.Run("empty choices is malformed response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		c := NewClient(ClientConfig{APIKey: "sk-test", Endpoint: srv.URL}, nil)
		_, err := c.Complete(context.Background(), &Request{Prompt: "p", Model: "m"})

		var llmErr *Error
		require.ErrorAs(t, err, &llmErr)
		assert.Equal(t, ErrorTypeMalformedResponse, llmErr.Type)
		assert.False(t, llmErr.Retryable())
	})
}

func TestClientRetry(t *testing.T) {
	t.Run("retries transient failures then succeeds", func(t *testing.T) {
		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": "ok"}, "finish_reason": "stop"},
				},
			})
		}))
		defer srv.Close()

		c := NewClient(ClientConfig{APIKey: "sk-test", Endpoint: srv.URL, MaxRetries: 3}, nil)
		resp, err := c.Complete(context.Background(), &Request{Prompt: "p", Model: "m"})

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Content)
		assert.Equal(t, int64(3), calls.Load())
	})

	t.Run("does not retry non-retryable failures", func(t *testing.T) {
		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": {"message": "bad key"}}`))
		}))
		defer srv.Close()

		c := NewClient(ClientConfig{APIKey: "sk-test", Endpoint: srv.URL, MaxRetries: 3}, nil)
		_, err := c.Complete(context.Background(), &Request{Prompt: "p", Model: "m"})

		require.Error(t, err)
		assert.Equal(t, int64(1), calls.Load())
	})
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{APIKey: "sk-test", Endpoint: srv.URL}, nil)
	_, err := c.Complete(context.Background(), &Request{
		Prompt:  "p",
		Model:   "m",
		Timeout: 20 * time.Millisecond,
	})

	var llmErr *Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, ErrorTypeTimeout, llmErr.Type)
	assert.True(t, llmErr.Retryable())
}

func TestWrapTransportError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, WrapTransportError(ProviderOpenAI, nil))
	})

	t.Run("existing llm error untouched", func(t *testing.T) {
		orig := &Error{Type: ErrorTypeAuth, Provider: ProviderOpenAI}
		err := WrapTransportError(ProviderOpenAI, orig)
		assert.Same(t, orig, err)
	})

	t.Run("deadline exceeded is timeout", func(t *testing.T) {
		err := WrapTransportError(ProviderOpenAI, context.DeadlineExceeded)
		var llmErr *Error
		require.ErrorAs(t, err, &llmErr)
		assert.Equal(t, ErrorTypeTimeout, llmErr.Type)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}
