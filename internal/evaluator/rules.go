package evaluator

import (
	"fmt"

	"github.com/insight-ai/reasoneval/internal/domain"
)

// Threshold constants for strength/weakness derivation. The coherence
// thresholds are deliberately asymmetric: a strength requires >= 0.7 while
// a weakness requires < 0.6, leaving the [0.6, 0.7) band unclassified.
const (
	goodScoreThreshold      = 0.7
	excellentScoreThreshold = 0.8
	coherenceStrengthMin    = 0.7
	coherenceWeaknessMax    = 0.6
	deepAnalysisLevels      = 3
	shallowAnalysisLevels   = 2
)

// maxFallacyRecommendations caps how many detected fallacies contribute
// individual recommendations.
const maxFallacyRecommendations = 2

// deriveStrengthsWeaknesses applies the fixed threshold rules to the four
// component results, evaluated independently per dimension.
func deriveStrengthsWeaknesses(
	depth domain.ReasoningDepthResult,
	structure domain.ArgumentStructureResult,
	consistency domain.ConsistencyResult,
	fallacies domain.LogicalFallacyResult,
) (strengths, weaknesses []string) {
	strengths = []string{}
	weaknesses = []string{}

	if depth.Score >= goodScoreThreshold {
		if depth.HasCausalAnalysis {
			strengths = append(strengths, "Contains clear cause-and-effect analysis")
		}
		if depth.HasComparativeAnalysis {
			strengths = append(strengths, "Makes effective use of comparative analysis")
		}
		if depth.AnalysisLevels >= deepAnalysisLevels {
			strengths = append(strengths, fmt.Sprintf("Analysis progresses through %d distinct levels", depth.AnalysisLevels))
		}
	} else {
		if !depth.HasCausalAnalysis {
			weaknesses = append(weaknesses, "Lacks cause-and-effect analysis")
		}
		if !depth.HasComparativeAnalysis {
			weaknesses = append(weaknesses, "Missing comparative analysis")
		}
		if depth.AnalysisLevels < shallowAnalysisLevels {
			weaknesses = append(weaknesses, "Analysis does not go beyond the surface level")
		}
	}

	if structure.Score >= goodScoreThreshold {
		if structure.HasClearStructure {
			strengths = append(strengths, "Argument structure is clear and well ordered")
		}
		if structure.ParagraphCoherence >= coherenceStrengthMin {
			strengths = append(strengths, "Paragraphs flow naturally into one another")
		}
	} else {
		if !structure.HasClearStructure {
			weaknesses = append(weaknesses, "Argument structure is hard to follow")
		}
		if structure.ParagraphCoherence < coherenceWeaknessMax {
			weaknesses = append(weaknesses, "Paragraph transitions need improvement")
		}
	}

	if consistency.Score >= excellentScoreThreshold {
		strengths = append(strengths, "Internally consistent with no evident contradictions")
	} else if len(consistency.Contradictions) > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("Contains %d internal contradiction(s)", len(consistency.Contradictions)))
	}

	if fallacies.Score >= excellentScoreThreshold {
		strengths = append(strengths, "Rigorous argumentation with no evident logical fallacies")
	} else if len(fallacies.Fallacies) > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("Detected %d logical fallacy(ies)", len(fallacies.Fallacies)))
	}

	return strengths, weaknesses
}

// deriveRecommendations generates targeted improvement suggestions. The
// rules mirror the weakness gates but are evaluated independently; fallacy
// recommendations embed the fallacy's own description and are capped at
// the first two detected.
func deriveRecommendations(
	depth domain.ReasoningDepthResult,
	structure domain.ArgumentStructureResult,
	consistency domain.ConsistencyResult,
	fallacies domain.LogicalFallacyResult,
) []string {
	recommendations := []string{}

	if depth.Score < goodScoreThreshold {
		if !depth.HasCausalAnalysis {
			recommendations = append(recommendations, "Add cause-and-effect analysis exploring the drivers and implications behind each claim")
		}
		if !depth.HasComparativeAnalysis {
			recommendations = append(recommendations, "Introduce comparisons such as historical trends or industry-peer benchmarks")
		}
		if depth.AnalysisLevels < shallowAnalysisLevels {
			recommendations = append(recommendations, "Deepen the analysis from surface observations to underlying causes and likely consequences")
		}
	}

	if structure.Score < goodScoreThreshold {
		if !structure.HasClearStructure {
			recommendations = append(recommendations, "Reorder the argument so claims, evidence, and conclusions follow a clear sequence")
		}
		if structure.ParagraphCoherence < coherenceWeaknessMax {
			recommendations = append(recommendations, "Improve paragraph transitions with connecting sentences")
		}
	}

	if consistency.Score < excellentScoreThreshold && len(consistency.Contradictions) > 0 {
		recommendations = append(recommendations, "Resolve the internal contradictions so the narrative stays consistent throughout")
	}

	for i, fallacy := range fallacies.Fallacies {
		if i >= maxFallacyRecommendations {
			break
		}
		recommendations = append(recommendations, fmt.Sprintf("Correct the logical fallacy: %s", fallacy.Description))
	}

	return recommendations
}
