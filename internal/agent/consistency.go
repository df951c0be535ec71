package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/insight-ai/reasoneval/internal/domain"
	"github.com/insight-ai/reasoneval/internal/llm"
)

// consistencyPromptTemplate is the fixed rubric for the internal
// consistency dimension.
const consistencyPromptTemplate = `You are an expert reviewer of financial articles, specializing in checking internal consistency.

Analyze the following financial article for internal contradictions or inconsistencies, including:

1. **Contradictory statements**: Do later statements contradict earlier ones?
2. **Contradictory data**: Are cited figures and facts consistent throughout?
3. **Contradictory positions**: Does the article hold a consistent viewpoint and stance?
4. **Logical contradictions**: Is the reasoning self-consistent?
5. **Conclusion-evidence consistency**: Does the conclusion match the evidence presented earlier?

Article:
%s

Return the analysis as JSON:
{
    "score": score from 0.0 to 1.0 (1.0 means fully consistent, 0.0 means severely contradictory),
    "contradictions": [
        "description of detected contradiction 1",
        "description of detected contradiction 2",
        ...
    ],
    "consistency_explanation": "detailed explanation of the consistency check, with concrete examples"
}

Return only the JSON, nothing else.`

// ConsistencyAgent checks an article for internal contradictions.
type ConsistencyAgent struct {
	core
}

var _ Analyzer[domain.ConsistencyResult] = (*ConsistencyAgent)(nil)

// NewConsistencyAgent creates the consistency agent.
func NewConsistencyAgent(client llm.Client, cfg Config, logger *slog.Logger) *ConsistencyAgent {
	return &ConsistencyAgent{core: newCore("consistency", client, cfg, logger)}
}

// Name identifies the dimension.
func (a *ConsistencyAgent) Name() string { return a.name }

// Analyze checks the article's internal consistency. On invocation or
// parse failure it returns the dimension's fallback default: score 0.7
// with no contradictions. The optimistic default reflects that this
// dimension scores the absence of a problem.
func (a *ConsistencyAgent) Analyze(ctx context.Context, articleText string) domain.ConsistencyResult {
	raw, err := a.invoke(ctx, fmt.Sprintf(consistencyPromptTemplate, articleText))
	if err != nil {
		return fallbackConsistencyResult(invocationFailure(err))
	}

	obj, err := extractObject(raw)
	if err != nil {
		return fallbackConsistencyResult(parseFailure(err))
	}

	result, err := parseConsistencyResult(obj)
	if err != nil {
		return fallbackConsistencyResult(parseFailure(err))
	}
	return result
}

// fallbackConsistencyResult is the documented default when analysis fails.
func fallbackConsistencyResult(explanation string) domain.ConsistencyResult {
	return domain.ConsistencyResult{
		Score:          0.7,
		Contradictions: []string{},
		Explanation:    explanation,
	}
}
