package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/insight-ai/reasoneval/internal/domain"
	"github.com/insight-ai/reasoneval/internal/llm"
)

// reasoningDepthPromptTemplate is the fixed rubric for the reasoning depth
// dimension. The article text is substituted verbatim.
const reasoningDepthPromptTemplate = `You are an expert reviewer of financial articles, specializing in assessing reasoning depth.

Analyze the reasoning depth of the following financial article. Evaluation criteria:

1. **Multi-angle analysis**: Does the article examine the issue from multiple angles (market, policy, technology, competition, etc.)?
2. **Layered analysis**: Does the analysis progress through levels (surface phenomena -> underlying causes -> potential consequences)?
3. **Causal analysis**: Does it analyze cause-and-effect relationships clearly?
4. **Comparative analysis**: Does it make meaningful comparisons (historical comparisons, industry-peer comparisons, etc.)?
5. **Depth of inference**: Does it reason through implications rather than merely listing facts?

Article:
%s

Return the analysis as JSON:
{
    "score": score from 0.0 to 1.0,
    "has_causal_analysis": true/false,
    "has_comparative_analysis": true/false,
    "analysis_levels": number of analysis levels detected (1-5),
    "depth_explanation": "detailed explanation of the depth assessment, with concrete examples and suggestions"
}

Return only the JSON, nothing else.`

// ReasoningDepthAgent analyzes how deep and thorough an article's
// reasoning is.
type ReasoningDepthAgent struct {
	core
}

var _ Analyzer[domain.ReasoningDepthResult] = (*ReasoningDepthAgent)(nil)

// NewReasoningDepthAgent creates the reasoning depth agent.
func NewReasoningDepthAgent(client llm.Client, cfg Config, logger *slog.Logger) *ReasoningDepthAgent {
	return &ReasoningDepthAgent{core: newCore("reasoning_depth", client, cfg, logger)}
}

// Name identifies the dimension.
func (a *ReasoningDepthAgent) Name() string { return a.name }

// Analyze evaluates the article's reasoning depth. On invocation or parse
// failure it returns the dimension's fallback default: score 0.5, no
// analysis traits detected, one analysis level.
func (a *ReasoningDepthAgent) Analyze(ctx context.Context, articleText string) domain.ReasoningDepthResult {
	raw, err := a.invoke(ctx, fmt.Sprintf(reasoningDepthPromptTemplate, articleText))
	if err != nil {
		return fallbackDepthResult(invocationFailure(err))
	}

	obj, err := extractObject(raw)
	if err != nil {
		return fallbackDepthResult(parseFailure(err))
	}

	result, err := parseDepthResult(obj)
	if err != nil {
		return fallbackDepthResult(parseFailure(err))
	}
	return result
}

// fallbackDepthResult is the documented default when analysis fails.
func fallbackDepthResult(explanation string) domain.ReasoningDepthResult {
	return domain.ReasoningDepthResult{
		Score:          0.5,
		AnalysisLevels: 1,
		Explanation:    explanation,
	}
}
