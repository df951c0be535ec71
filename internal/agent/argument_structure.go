package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/insight-ai/reasoneval/internal/domain"
	"github.com/insight-ai/reasoneval/internal/llm"
)

// argumentStructurePromptTemplate is the fixed rubric for the argument
// structure dimension.
const argumentStructurePromptTemplate = `You are an expert reviewer of financial articles, specializing in assessing argument structure.

Analyze the quality of the argument structure in the following financial article. Evaluation criteria:

1. **Logical ordering**: Are the article's parts arranged in a sensible logical order?
2. **Paragraph transitions**: Do paragraphs connect naturally and flow smoothly?
3. **Claim-evidence-conclusion relationships**: Are the three tightly linked, with evidence that genuinely supports the claims?
4. **Structural clarity**: Is the overall structure clear enough for a reader to follow the argument easily?
5. **Completeness of argumentation**: Is the chain of reasoning from question to conclusion complete?

Article:
%s

Return the analysis as JSON:
{
    "score": score from 0.0 to 1.0,
    "has_clear_structure": true/false,
    "paragraph_coherence": paragraph coherence score from 0.0 to 1.0,
    "argument_components": [
        {"type": "claim/evidence/reasoning/conclusion", "content": "content summary", "location": "location description"},
        ...
    ],
    "structure_explanation": "detailed explanation of the structure assessment, with concrete examples and suggestions"
}

Return only the JSON, nothing else.`

// ArgumentStructureAgent analyzes the logical structure and coherence of
// an article's argumentation.
type ArgumentStructureAgent struct {
	core
}

var _ Analyzer[domain.ArgumentStructureResult] = (*ArgumentStructureAgent)(nil)

// NewArgumentStructureAgent creates the argument structure agent.
func NewArgumentStructureAgent(client llm.Client, cfg Config, logger *slog.Logger) *ArgumentStructureAgent {
	return &ArgumentStructureAgent{core: newCore("argument_structure", client, cfg, logger)}
}

// Name identifies the dimension.
func (a *ArgumentStructureAgent) Name() string { return a.name }

// Analyze evaluates the article's argument structure. On invocation or
// parse failure it returns the dimension's fallback default: score 0.5,
// coherence 0.5, no structure detected, no components.
func (a *ArgumentStructureAgent) Analyze(ctx context.Context, articleText string) domain.ArgumentStructureResult {
	raw, err := a.invoke(ctx, fmt.Sprintf(argumentStructurePromptTemplate, articleText))
	if err != nil {
		return fallbackStructureResult(invocationFailure(err))
	}

	obj, err := extractObject(raw)
	if err != nil {
		return fallbackStructureResult(parseFailure(err))
	}

	result, err := parseStructureResult(obj)
	if err != nil {
		return fallbackStructureResult(parseFailure(err))
	}
	return result
}

// fallbackStructureResult is the documented default when analysis fails.
func fallbackStructureResult(explanation string) domain.ArgumentStructureResult {
	return domain.ArgumentStructureResult{
		Score:              0.5,
		ParagraphCoherence: 0.5,
		Components:         []domain.ArgumentComponent{},
		Explanation:        explanation,
	}
}
