package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Dimension weights used to combine component scores into the overall score.
// The four weights must sum to 1.0; WeightsSum exists so tests can assert
// the invariant holds by construction.
const (
	// ReasoningDepthWeight is the overall-score weight for reasoning depth.
	ReasoningDepthWeight = 0.30
	// ArgumentStructureWeight is the overall-score weight for argument structure.
	ArgumentStructureWeight = 0.30
	// ConsistencyWeight is the overall-score weight for internal consistency.
	ConsistencyWeight = 0.25
	// LogicalFallacyWeight is the overall-score weight for logical soundness.
	LogicalFallacyWeight = 0.15
)

// WeightsSum is the sum of all dimension weights. It must equal 1.0.
const WeightsSum = ReasoningDepthWeight + ArgumentStructureWeight +
	ConsistencyWeight + LogicalFallacyWeight

// overallScorePrecision is the number of decimal places retained in the
// overall score.
const overallScorePrecision = 3

// CombineScores computes the weighted overall score from the four component
// scores, rounded to three decimal places and clamped to [0, 1].
func CombineScores(reasoningDepth, argumentStructure, consistency, logicalFallacies float64) float64 {
	overall := reasoningDepth*ReasoningDepthWeight +
		argumentStructure*ArgumentStructureWeight +
		consistency*ConsistencyWeight +
		logicalFallacies*LogicalFallacyWeight

	factor := math.Pow(10, overallScorePrecision)
	return Clamp01(math.Round(overall*factor) / factor)
}

// ReasoningLogicEvaluation is the complete evaluation record for one article.
// It is assembled once from the four component results and is immutable
// thereafter; all component results are always present, with agent fallback
// defaults standing in for failed dimensions.
type ReasoningLogicEvaluation struct {
	// EvaluationID uniquely identifies this evaluation run.
	EvaluationID string `json:"evaluation_id" validate:"required,uuid"`

	// ArticleTitle is the optional title of the evaluated article.
	ArticleTitle string `json:"article_title,omitempty"`

	// OverallScore is the weighted combination of the component scores.
	OverallScore float64 `json:"overall_score" validate:"min=0,max=1"`

	// Component results. All four are always populated.
	ReasoningDepth    ReasoningDepthResult    `json:"reasoning_depth" validate:"required"`
	ArgumentStructure ArgumentStructureResult `json:"argument_structure" validate:"required"`
	Consistency       ConsistencyResult       `json:"consistency" validate:"required"`
	LogicalFallacies  LogicalFallacyResult    `json:"logical_fallacies" validate:"required"`

	// Strengths lists the article's identified strengths.
	Strengths []string `json:"strengths"`

	// Weaknesses lists the article's identified weaknesses.
	Weaknesses []string `json:"weaknesses"`

	// Recommendations lists concrete suggestions for improvement.
	Recommendations []string `json:"recommendations"`

	// EvaluatedAt records when the evaluation completed.
	EvaluatedAt time.Time `json:"evaluated_at" validate:"required"`
}

// Validate checks the evaluation record against its structural constraints.
func (e *ReasoningLogicEvaluation) Validate() error { return validate.Struct(e) }

// Summary renders the evaluation as a human-readable plain-text report:
// a title line, the overall score, the four component scores, then the
// strengths, weaknesses, and recommendations sections. Sections with no
// entries are omitted entirely.
func (e *ReasoningLogicEvaluation) Summary() string {
	var sb strings.Builder

	sb.WriteString("Reasoning & Logic Evaluation Summary\n")
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n")
	if e.ArticleTitle != "" {
		fmt.Fprintf(&sb, "Article: %s\n\n", e.ArticleTitle)
	}

	fmt.Fprintf(&sb, "Overall Score: %.2f/1.00\n\n", e.OverallScore)

	sb.WriteString("Component Scores:\n")
	fmt.Fprintf(&sb, "  - Reasoning Depth: %.2f\n", e.ReasoningDepth.Score)
	fmt.Fprintf(&sb, "  - Argument Structure: %.2f\n", e.ArgumentStructure.Score)
	fmt.Fprintf(&sb, "  - Consistency: %.2f\n", e.Consistency.Score)
	fmt.Fprintf(&sb, "  - Logical Soundness: %.2f\n\n", e.LogicalFallacies.Score)

	if len(e.Strengths) > 0 {
		sb.WriteString("Strengths:\n")
		for _, s := range e.Strengths {
			fmt.Fprintf(&sb, "  ✓ %s\n", s)
		}
		sb.WriteString("\n")
	}

	if len(e.Weaknesses) > 0 {
		sb.WriteString("Weaknesses:\n")
		for _, w := range e.Weaknesses {
			fmt.Fprintf(&sb, "  ✗ %s\n", w)
		}
		sb.WriteString("\n")
	}

	if len(e.Recommendations) > 0 {
		sb.WriteString("Recommendations:\n")
		for i, rec := range e.Recommendations {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, rec)
		}
	}

	return sb.String()
}
