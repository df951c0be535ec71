// Package domain provides the typed results produced by the reasoning and
// logic evaluation pipeline. It defines the per-dimension analysis results,
// the aggregate evaluation record, score clamping, and the fixed dimension
// weights used to combine component scores into an overall assessment.
//
// Scoring Model:
//   - Every score is normalized to [0.0, 1.0] (0 worst, 1 best).
//   - Four independent dimensions: reasoning depth, argument structure,
//     consistency, and logical soundness (absence of fallacies).
//   - Results are created fully populated and never mutated afterwards;
//     nothing in this package persists beyond one evaluation call.
package domain

import (
	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// FallacyType identifies a category of logical fallacy.
// Kept as a string type so unrecognized categories returned by a model
// survive parsing instead of failing it.
type FallacyType string

// Recognized fallacy categories.
const (
	FallacyOvergeneralization  FallacyType = "overgeneralization"
	FallacyCausalReversal      FallacyType = "causal_reversal"
	FallacyFalseDilemma        FallacyType = "false_dilemma"
	FallacySlipperySlope       FallacyType = "slippery_slope"
	FallacyAdHominem           FallacyType = "ad_hominem"
	FallacyCircularReasoning   FallacyType = "circular_reasoning"
	FallacyStrawman            FallacyType = "strawman"
	FallacyHastyGeneralization FallacyType = "hasty_generalization"
	FallacyPostHoc             FallacyType = "post_hoc"
)

// String returns the string representation of the fallacy type.
func (t FallacyType) String() string { return string(t) }

// LogicalFallacy describes a single fallacy detected in the article.
type LogicalFallacy struct {
	// Type categorizes the fallacy (e.g. overgeneralization, post_hoc).
	Type FallacyType `json:"type" validate:"required"`

	// Location describes where in the article the fallacy occurs.
	Location string `json:"location"`

	// Description explains the fallacy in the article's own terms.
	Description string `json:"description"`

	// Severity rates how damaging the fallacy is to the argument (0.0-1.0).
	Severity float64 `json:"severity" validate:"min=0,max=1"`
}

// ArgumentComponent is one element of the article's argument chain.
type ArgumentComponent struct {
	// Type is one of claim, evidence, reasoning, or conclusion.
	// Unconstrained so unexpected labels from a model are preserved.
	Type string `json:"type"`

	// Content summarizes the component's text.
	Content string `json:"content"`

	// Location describes where in the article the component appears.
	Location string `json:"location"`
}

// ReasoningDepthResult is the outcome of the reasoning depth analysis.
type ReasoningDepthResult struct {
	// Score rates the overall depth of reasoning (0.0-1.0).
	Score float64 `json:"score" validate:"min=0,max=1"`

	// HasCausalAnalysis reports whether the article analyzes cause and effect.
	HasCausalAnalysis bool `json:"has_causal_analysis"`

	// HasComparativeAnalysis reports whether the article makes meaningful
	// comparisons such as historical or peer benchmarks.
	HasComparativeAnalysis bool `json:"has_comparative_analysis"`

	// AnalysisLevels counts the distinct levels the analysis progresses
	// through, from surface observation to underlying cause (1-5).
	AnalysisLevels int `json:"analysis_levels" validate:"min=1,max=5"`

	// Explanation is the judge's free-text assessment of reasoning depth.
	Explanation string `json:"depth_explanation"`
}

// Validate checks the result against its structural constraints.
func (r *ReasoningDepthResult) Validate() error { return validate.Struct(r) }

// ArgumentStructureResult is the outcome of the argument structure analysis.
type ArgumentStructureResult struct {
	// Score rates the overall quality of the argument structure (0.0-1.0).
	Score float64 `json:"score" validate:"min=0,max=1"`

	// HasClearStructure reports whether the argument follows a clear
	// claim-evidence-conclusion ordering.
	HasClearStructure bool `json:"has_clear_structure"`

	// ParagraphCoherence rates how naturally paragraphs flow into one
	// another (0.0-1.0).
	ParagraphCoherence float64 `json:"paragraph_coherence" validate:"min=0,max=1"`

	// Components lists the argument components identified in the article,
	// in document order.
	Components []ArgumentComponent `json:"argument_components"`

	// Explanation is the judge's free-text assessment of the structure.
	Explanation string `json:"structure_explanation"`
}

// Validate checks the result against its structural constraints.
func (r *ArgumentStructureResult) Validate() error { return validate.Struct(r) }

// ConsistencyResult is the outcome of the internal consistency check.
type ConsistencyResult struct {
	// Score rates internal consistency: 1.0 is fully consistent,
	// 0.0 is severely contradictory.
	Score float64 `json:"score" validate:"min=0,max=1"`

	// Contradictions lists descriptions of contradictions found in the
	// article, in the order they were reported.
	Contradictions []string `json:"contradictions"`

	// Explanation is the judge's free-text assessment of consistency.
	Explanation string `json:"consistency_explanation"`
}

// Validate checks the result against its structural constraints.
func (r *ConsistencyResult) Validate() error { return validate.Struct(r) }

// LogicalFallacyResult is the outcome of the logical fallacy detection.
type LogicalFallacyResult struct {
	// Score rates logical soundness: 1.0 means no fallacies,
	// 0.0 means severe fallacies throughout.
	Score float64 `json:"score" validate:"min=0,max=1"`

	// Fallacies lists the fallacies detected, in the order reported.
	Fallacies []LogicalFallacy `json:"fallacies" validate:"omitempty,dive"`

	// Explanation is the judge's free-text summary of fallacies found.
	Explanation string `json:"fallacy_explanation"`
}

// Validate checks the result against its structural constraints.
func (r *LogicalFallacyResult) Validate() error { return validate.Struct(r) }

// Clamp01 restricts a value to the range [0, 1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
