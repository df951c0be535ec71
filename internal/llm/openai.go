package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ProviderOpenAI is the provider name used in error attribution and logs.
const ProviderOpenAI = "openai"

// defaultOpenAIEndpoint is used when no endpoint is configured.
const defaultOpenAIEndpoint = "https://api.openai.com/v1"

// OpenAIAdapter translates normalized requests into OpenAI chat/completions
// calls and parses the responses back into normalized form.
type OpenAIAdapter struct {
	endpoint string
	apiKey   string
}

// NewOpenAIAdapter creates an OpenAI adapter. An empty endpoint defaults to
// OpenAI's production API.
func NewOpenAIAdapter(endpoint, apiKey string) *OpenAIAdapter {
	if endpoint == "" {
		endpoint = defaultOpenAIEndpoint
	}
	return &OpenAIAdapter{endpoint: strings.TrimSuffix(endpoint, "/"), apiKey: apiKey}
}

// Name returns the provider name.
func (a *OpenAIAdapter) Name() string { return ProviderOpenAI }

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

// Build constructs the HTTP request for a chat completion.
func (a *OpenAIAdapter) Build(ctx context.Context, req *Request) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s/chat/completions", a.endpoint)

	var messages []openAIMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(openAIRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.apiKey))

	return httpReq, nil
}

// Parse extracts the normalized response from an OpenAI API response.
// Non-200 statuses and empty choice lists become classified *Error values.
func (a *OpenAIAdapter) Parse(httpResp *http.Response) (*Response, error) {
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &Error{
			Type:     ErrorTypeNetwork,
			Provider: ProviderOpenAI,
			Message:  fmt.Sprintf("failed to read response body: %v", err),
			Cause:    err,
		}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, parseOpenAIError(httpResp.StatusCode, body)
	}

	var resp struct {
		ID      string `json:"id"`
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
		Usage struct {
			TotalTokens int64 `json:"total_tokens"`
		} `json:"usage"`
	}

	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{
			Type:     ErrorTypeMalformedResponse,
			Provider: ProviderOpenAI,
			Message:  fmt.Sprintf("failed to parse response envelope: %v", err),
			Cause:    err,
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &Error{
			Type:     ErrorTypeMalformedResponse,
			Provider: ProviderOpenAI,
			Message:  "response contained no choices",
		}
	}

	return &Response{
		Content:           resp.Choices[0].Message.Content,
		Model:             resp.Model,
		FinishReason:      resp.Choices[0].FinishReason,
		TotalTokens:       resp.Usage.TotalTokens,
		ProviderRequestID: httpResp.Header.Get("x-request-id"),
	}, nil
}

// parseOpenAIError converts OpenAI error responses into classified errors,
// extracting the message from OpenAI's JSON error format when present.
func parseOpenAIError(statusCode int, body []byte) error {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	message := string(body)
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	return &Error{
		Type:       classifyStatus(statusCode),
		Provider:   ProviderOpenAI,
		StatusCode: statusCode,
		Message:    message,
	}
}
