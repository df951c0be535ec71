package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/insight-ai/reasoneval/internal/domain"
	"github.com/insight-ai/reasoneval/internal/llm"
)

// logicalFallacyPromptTemplate is the fixed rubric for the logical fallacy
// dimension. Fallacy types must come back as the English codes.
const logicalFallacyPromptTemplate = `You are an expert reviewer of financial articles, specializing in detecting logical fallacies.

Analyze the following financial article for logical fallacies, including but not limited to:

1. **Overgeneralization** (overgeneralization): extrapolating from a few cases to the whole
2. **Causal reversal** (causal_reversal): confusing the direction of cause and effect
3. **False dilemma** (false_dilemma): wrongly reducing the question to only two options
4. **Slippery slope** (slippery_slope): assuming a small change triggers a chain of extreme consequences
5. **Circular reasoning** (circular_reasoning): using the conclusion to prove the conclusion
6. **Hasty generalization** (hasty_generalization): concluding from insufficient evidence
7. **Post hoc** (post_hoc): assuming sequence implies causation

Article:
%s

Return the analysis as JSON:
{
    "score": score from 0.0 to 1.0 (1.0 means no fallacies, 0.0 means severe fallacies),
    "fallacies": [
        {
            "type": "fallacy type (use the English code)",
            "location": "description of where the fallacy occurs",
            "description": "detailed description of the fallacy",
            "severity": severity from 0.0 to 1.0
        },
        ...
    ],
    "fallacy_explanation": "overall summary of the logical fallacies detected"
}

Return only the JSON, nothing else.`

// LogicalFallacyAgent detects logical fallacies in an article's reasoning.
type LogicalFallacyAgent struct {
	core
}

var _ Analyzer[domain.LogicalFallacyResult] = (*LogicalFallacyAgent)(nil)

// NewLogicalFallacyAgent creates the logical fallacy agent.
func NewLogicalFallacyAgent(client llm.Client, cfg Config, logger *slog.Logger) *LogicalFallacyAgent {
	return &LogicalFallacyAgent{core: newCore("logical_fallacy", client, cfg, logger)}
}

// Name identifies the dimension.
func (a *LogicalFallacyAgent) Name() string { return a.name }

// Analyze detects fallacies in the article. On invocation or parse failure
// it returns the dimension's fallback default: score 0.7 with no
// fallacies. The optimistic default reflects that this dimension scores
// the absence of a problem.
func (a *LogicalFallacyAgent) Analyze(ctx context.Context, articleText string) domain.LogicalFallacyResult {
	raw, err := a.invoke(ctx, fmt.Sprintf(logicalFallacyPromptTemplate, articleText))
	if err != nil {
		return fallbackFallacyResult(invocationFailure(err))
	}

	obj, err := extractObject(raw)
	if err != nil {
		return fallbackFallacyResult(parseFailure(err))
	}

	result, err := parseFallacyResult(obj)
	if err != nil {
		return fallbackFallacyResult(parseFailure(err))
	}
	return result
}

// fallbackFallacyResult is the documented default when analysis fails.
func fallbackFallacyResult(explanation string) domain.LogicalFallacyResult {
	return domain.LogicalFallacyResult{
		Score:       0.7,
		Fallacies:   []domain.LogicalFallacy{},
		Explanation: explanation,
	}
}
