// Package agent implements the four analysis agents of the evaluation
// pipeline: reasoning depth, argument structure, consistency, and logical
// fallacy detection. Each agent owns one dimension: it builds a
// dimension-specific prompt embedding the article verbatim, invokes the
// LLM capability once, and defensively parses the free-form response into
// a typed result.
//
// Agents never return errors. Invocation or parse failures become the
// dimension's documented default result with the failure reason recorded
// in the explanation field, so the orchestrator can always assemble a
// complete report.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/insight-ai/reasoneval/internal/llm"
)

// Analyzer is the shared capability implemented by all four agents.
// The result type varies per dimension.
type Analyzer[T any] interface {
	// Name identifies the dimension for logging.
	Name() string

	// Analyze evaluates one article. It always returns a well-formed
	// result; failures are folded into the dimension's fallback default.
	Analyze(ctx context.Context, articleText string) T
}

// Config carries the invocation settings shared by all agents.
// It is immutable for the lifetime of an agent.
type Config struct {
	// Model identifies the judge model, e.g. "gpt-4-turbo-preview".
	Model string

	// Temperature is the sampling temperature for analysis calls.
	Temperature float64

	// Timeout bounds each invocation; timeouts trigger the fallback path.
	Timeout time.Duration
}

// core holds the collaborators shared by the four agent variants.
type core struct {
	name   string
	client llm.Client
	cfg    Config
	logger *slog.Logger
}

func newCore(name string, client llm.Client, cfg Config, logger *slog.Logger) core {
	if logger == nil {
		logger = slog.Default()
	}
	return core{
		name:   name,
		client: client,
		cfg:    cfg,
		logger: logger.With("agent", name),
	}
}

// invoke submits the prompt and returns the raw response text.
func (c *core) invoke(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Complete(ctx, &llm.Request{
		Prompt:      prompt,
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Timeout:     c.cfg.Timeout,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "analysis invocation failed, using fallback result",
			"error", err)
		return "", err
	}
	return resp.Content, nil
}

// invocationFailure renders the explanation recorded on a fallback result
// when the LLM call itself failed.
func invocationFailure(err error) string {
	return fmt.Sprintf("Error during analysis: %v", err)
}

// parseFailure renders the explanation recorded on a fallback result when
// the response could not be structured.
func parseFailure(err error) string {
	return fmt.Sprintf("Failed to parse analysis result: %v", err)
}
