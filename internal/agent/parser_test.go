package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insight-ai/reasoneval/internal/domain"
)

func TestExtractObject(t *testing.T) {
	t.Run("fence stripping is equivalent across wrappings", func(t *testing.T) {
		inner := `{"score": 0.8, "depth_explanation": "good"}`
		variants := []string{
			inner,
			"```json\n" + inner + "\n```",
			"```\n" + inner + "\n```",
			"  \n```json\n" + inner + "\n```\n  ",
		}

		var first map[string]any
		for i, v := range variants {
			obj, err := extractObject(v)
			require.NoError(t, err, "variant %d", i)
			if i == 0 {
				first = obj
				continue
			}
			assert.Equal(t, first, obj, "variant %d should parse identically", i)
		}
	})

	t.Run("repairs trailing comma", func(t *testing.T) {
		obj, err := extractObject(`{"score": 0.8,}`)
		require.NoError(t, err)
		assert.Equal(t, 0.8, obj["score"])
	})

	t.Run("plain prose fails with ErrParse", func(t *testing.T) {
		_, err := extractObject("I was unable to analyze this article.")
		require.ErrorIs(t, err, ErrParse)
	})

	t.Run("empty input fails with ErrParse", func(t *testing.T) {
		_, err := extractObject("")
		require.ErrorIs(t, err, ErrParse)
	})
}

func TestParseDepthResult(t *testing.T) {
	t.Run("full response", func(t *testing.T) {
		obj := map[string]any{
			"score":                    0.85,
			"has_causal_analysis":      true,
			"has_comparative_analysis": false,
			"analysis_levels":          float64(4),
			"depth_explanation":        "layered analysis",
		}

		got, err := parseDepthResult(obj)
		require.NoError(t, err)
		assert.Equal(t, 0.85, got.Score)
		assert.True(t, got.HasCausalAnalysis)
		assert.False(t, got.HasComparativeAnalysis)
		assert.Equal(t, 4, got.AnalysisLevels)
		assert.Equal(t, "layered analysis", got.Explanation)
	})

	t.Run("missing fields receive defaults", func(t *testing.T) {
		got, err := parseDepthResult(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, 0.5, got.Score)
		assert.False(t, got.HasCausalAnalysis)
		assert.Equal(t, 1, got.AnalysisLevels)
	})

	t.Run("out-of-range values are clamped", func(t *testing.T) {
		got, err := parseDepthResult(map[string]any{
			"score":           1.7,
			"analysis_levels": float64(9),
		})
		require.NoError(t, err)
		assert.Equal(t, 1.0, got.Score)
		assert.Equal(t, 5, got.AnalysisLevels)
	})

	t.Run("numeric string score coerces", func(t *testing.T) {
		got, err := parseDepthResult(map[string]any{"score": "0.6"})
		require.NoError(t, err)
		assert.Equal(t, 0.6, got.Score)
	})

	t.Run("non-numeric score is a coercion failure", func(t *testing.T) {
		_, err := parseDepthResult(map[string]any{"score": "excellent"})
		require.ErrorIs(t, err, ErrParse)

		_, err = parseDepthResult(map[string]any{"score": []any{0.5}})
		require.ErrorIs(t, err, ErrParse)
	})
}

func TestParseStructureResult(t *testing.T) {
	t.Run("components parsed in order", func(t *testing.T) {
		obj := map[string]any{
			"score":               0.7,
			"has_clear_structure": true,
			"paragraph_coherence": 0.66,
			"argument_components": []any{
				map[string]any{"type": "claim", "content": "rates will fall", "location": "para 1"},
				map[string]any{"type": "evidence", "content": "CPI data", "location": "para 2"},
			},
			"structure_explanation": "well ordered",
		}

		got, err := parseStructureResult(obj)
		require.NoError(t, err)
		require.Len(t, got.Components, 2)
		assert.Equal(t, "claim", got.Components[0].Type)
		assert.Equal(t, "evidence", got.Components[1].Type)
		assert.Equal(t, 0.66, got.ParagraphCoherence)
	})

	t.Run("non-object component entries are dropped", func(t *testing.T) {
		obj := map[string]any{
			"argument_components": []any{
				"just a string",
				float64(42),
				map[string]any{"type": "conclusion"},
				nil,
			},
		}

		got, err := parseStructureResult(obj)
		require.NoError(t, err)
		require.Len(t, got.Components, 1)
		assert.Equal(t, "conclusion", got.Components[0].Type)
	})

	t.Run("missing component fields receive defaults", func(t *testing.T) {
		obj := map[string]any{
			"argument_components": []any{map[string]any{}},
		}

		got, err := parseStructureResult(obj)
		require.NoError(t, err)
		require.Len(t, got.Components, 1)
		assert.Equal(t, "unknown", got.Components[0].Type)
		assert.Empty(t, got.Components[0].Content)
	})

	t.Run("coherence clamped into range", func(t *testing.T) {
		got, err := parseStructureResult(map[string]any{"paragraph_coherence": -0.3})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.ParagraphCoherence)
	})
}

func TestParseConsistencyResult(t *testing.T) {
	t.Run("contradictions stringified", func(t *testing.T) {
		obj := map[string]any{
			"score":          0.4,
			"contradictions": []any{"para 2 contradicts para 5", float64(3)},
		}

		got, err := parseConsistencyResult(obj)
		require.NoError(t, err)
		assert.Equal(t, []string{"para 2 contradicts para 5", "3"}, got.Contradictions)
	})

	t.Run("non-list contradictions become empty", func(t *testing.T) {
		got, err := parseConsistencyResult(map[string]any{"contradictions": "none"})
		require.NoError(t, err)
		assert.Empty(t, got.Contradictions)
	})

	t.Run("missing score defaults to 0.7", func(t *testing.T) {
		got, err := parseConsistencyResult(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, 0.7, got.Score)
	})
}

func TestParseFallacyResult(t *testing.T) {
	t.Run("derives score from severities when absent", func(t *testing.T) {
		obj := map[string]any{
			"fallacies": []any{
				map[string]any{"type": "overgeneralization", "severity": 0.2},
				map[string]any{"type": "post_hoc", "severity": 0.8},
			},
		}

		got, err := parseFallacyResult(obj)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, got.Score, 1e-9)
		require.Len(t, got.Fallacies, 2)
	})

	t.Run("no fallacies derives a perfect score", func(t *testing.T) {
		got, err := parseFallacyResult(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, 1.0, got.Score)
		assert.Empty(t, got.Fallacies)
	})

	t.Run("explicit score wins over derivation", func(t *testing.T) {
		obj := map[string]any{
			"score": 0.9,
			"fallacies": []any{
				map[string]any{"type": "strawman", "severity": 0.8},
			},
		}

		got, err := parseFallacyResult(obj)
		require.NoError(t, err)
		assert.Equal(t, 0.9, got.Score)
	})

	t.Run("missing fallacy type defaults to overgeneralization", func(t *testing.T) {
		obj := map[string]any{
			"fallacies": []any{map[string]any{"severity": 0.3}},
		}

		got, err := parseFallacyResult(obj)
		require.NoError(t, err)
		require.Len(t, got.Fallacies, 1)
		assert.Equal(t, domain.FallacyOvergeneralization, got.Fallacies[0].Type)
	})

	t.Run("missing severity defaults to 0.5", func(t *testing.T) {
		obj := map[string]any{
			"fallacies": []any{map[string]any{"type": "false_dilemma"}},
		}

		got, err := parseFallacyResult(obj)
		require.NoError(t, err)
		require.Len(t, got.Fallacies, 1)
		assert.Equal(t, 0.5, got.Fallacies[0].Severity)
		assert.InDelta(t, 0.5, got.Score, 1e-9)
	})

	t.Run("non-object fallacy entries are dropped", func(t *testing.T) {
		obj := map[string]any{
			"fallacies": []any{"strawman", map[string]any{"type": "strawman", "severity": 0.4}},
		}

		got, err := parseFallacyResult(obj)
		require.NoError(t, err)
		require.Len(t, got.Fallacies, 1)
	})

	t.Run("unparseable severity is a coercion failure", func(t *testing.T) {
		obj := map[string]any{
			"fallacies": []any{map[string]any{"severity": "severe"}},
		}

		_, err := parseFallacyResult(obj)
		require.ErrorIs(t, err, ErrParse)
	})
}
