// Package evaluator orchestrates the reasoning and logic evaluation of a
// financial article. It fans the article out to the four analysis agents,
// combines their scores into a weighted overall score, and derives the
// strengths, weaknesses, and recommendations of the final report.
//
// The evaluator holds no mutable state: each Evaluate call builds a fresh
// record and concurrent calls against one instance are independent. Agent
// failures never surface here; the fallback guarantee of the agent layer
// means assembly always has four valid component results to work with.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/insight-ai/reasoneval/internal/agent"
	"github.com/insight-ai/reasoneval/internal/config"
	"github.com/insight-ai/reasoneval/internal/domain"
	"github.com/insight-ai/reasoneval/internal/llm"
)

// ErrEmptyArticle indicates Evaluate was called without article text.
var ErrEmptyArticle = errors.New("article text must not be empty")

// Evaluator runs the four analysis agents and assembles their results
// into one ReasoningLogicEvaluation.
type Evaluator struct {
	cfg    config.Config
	logger *slog.Logger

	reasoningDepth    *agent.ReasoningDepthAgent
	argumentStructure *agent.ArgumentStructureAgent
	consistency       *agent.ConsistencyAgent
	logicalFallacy    *agent.LogicalFallacyAgent
}

// Option customizes evaluator construction.
type Option func(*settings)

type settings struct {
	client llm.Client
	logger *slog.Logger
}

// WithClient injects the LLM client, replacing the OpenAI client built
// from the configuration. Used by tests and alternative providers.
func WithClient(client llm.Client) Option {
	return func(s *settings) { s.client = client }
}

// WithLogger injects the structured logger shared by the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// New creates an evaluator from the given configuration.
func New(cfg config.Config, opts ...Option) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid evaluator configuration: %w", err)
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.client == nil {
		s.client = llm.NewClient(llm.ClientConfig{
			APIKey:     cfg.OpenAIAPIKey,
			MaxRetries: cfg.MaxRetries,
		}, s.logger)
	}

	agentCfg := agent.Config{
		Model:       cfg.ModelName,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	}

	return &Evaluator{
		cfg:               cfg,
		logger:            s.logger,
		reasoningDepth:    agent.NewReasoningDepthAgent(s.client, agentCfg, s.logger),
		argumentStructure: agent.NewArgumentStructureAgent(s.client, agentCfg, s.logger),
		consistency:       agent.NewConsistencyAgent(s.client, agentCfg, s.logger),
		logicalFallacy:    agent.NewLogicalFallacyAgent(s.client, agentCfg, s.logger),
	}, nil
}

// Evaluate analyzes one article across all four dimensions and returns the
// complete evaluation record. The four agent calls run concurrently; they
// share no mutable state and each owns its own response. The only error
// path is input validation; agent failures are already folded into
// fallback results by the time assembly runs.
func (e *Evaluator) Evaluate(ctx context.Context, articleText, articleTitle string) (*domain.ReasoningLogicEvaluation, error) {
	if strings.TrimSpace(articleText) == "" {
		return nil, ErrEmptyArticle
	}

	evaluationID := uuid.New().String()
	e.logger.InfoContext(ctx, "evaluation started",
		"evaluation_id", evaluationID,
		"article_title", articleTitle,
		"article_chars", len(articleText))

	var (
		depth       domain.ReasoningDepthResult
		structure   domain.ArgumentStructureResult
		consistency domain.ConsistencyResult
		fallacies   domain.LogicalFallacyResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { depth = e.reasoningDepth.Analyze(gctx, articleText); return nil })
	g.Go(func() error { structure = e.argumentStructure.Analyze(gctx, articleText); return nil })
	g.Go(func() error { consistency = e.consistency.Analyze(gctx, articleText); return nil })
	g.Go(func() error { fallacies = e.logicalFallacy.Analyze(gctx, articleText); return nil })
	_ = g.Wait() // Agents never return errors.

	overall := domain.CombineScores(depth.Score, structure.Score, consistency.Score, fallacies.Score)
	strengths, weaknesses := deriveStrengthsWeaknesses(depth, structure, consistency, fallacies)

	eval := &domain.ReasoningLogicEvaluation{
		EvaluationID:      evaluationID,
		ArticleTitle:      articleTitle,
		OverallScore:      overall,
		ReasoningDepth:    depth,
		ArgumentStructure: structure,
		Consistency:       consistency,
		LogicalFallacies:  fallacies,
		Strengths:         strengths,
		Weaknesses:        weaknesses,
		Recommendations:   deriveRecommendations(depth, structure, consistency, fallacies),
		EvaluatedAt:       time.Now().UTC(),
	}

	e.logger.InfoContext(ctx, "evaluation completed",
		"evaluation_id", evaluationID,
		"overall_score", overall,
		"strengths", len(eval.Strengths),
		"weaknesses", len(eval.Weaknesses))
	return eval, nil
}
