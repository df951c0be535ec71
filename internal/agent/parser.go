package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/insight-ai/reasoneval/internal/domain"
)

// ErrParse indicates the model response could not be structured: the text
// was not a JSON object even after repair, or a recognized field could not
// be coerced to its declared type. It never escapes the owning agent.
var ErrParse = errors.New("failed to parse analysis response")

// extractObject converts raw model output into a JSON object. It trims
// whitespace, strips a leading "```json" or "```" fence and a trailing
// fence, then decodes. If strict decoding fails, one repair pass with
// jsonrepair is attempted before giving up.
func extractObject(raw string) (map[string]any, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		return obj, nil
	}

	repaired, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrParse)
	}
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON after repair: %v", ErrParse, err)
	}
	return obj, nil
}

// floatField coerces obj[key] to float64, returning def when the key is
// absent. A present value of the wrong shape is a coercion failure.
func floatField(obj map[string]any, key string, def float64) (float64, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return def, nil
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: field %q: %q is not a number", ErrParse, key, val)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: field %q has type %T", ErrParse, key, v)
	}
}

// intField coerces obj[key] to int, truncating fractional values, returning
// def when the key is absent.
func intField(obj map[string]any, key string, def int) (int, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return def, nil
	}
	switch val := v.(type) {
	case float64:
		return int(val), nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("%w: field %q: %q is not an integer", ErrParse, key, val)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: field %q has type %T", ErrParse, key, v)
	}
}

// boolField coerces obj[key] by truthiness. An absent key returns def;
// empty values (false, 0, "", empty list or object) return false.
func boolField(obj map[string]any, key string, def bool) bool {
	v, ok := obj[key]
	if !ok || v == nil {
		return def
	}
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

// stringField coerces obj[key] to a string, returning def when absent.
func stringField(obj map[string]any, key, def string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// stringList coerces obj[key] to a list of strings. Non-list values and
// absent keys yield an empty list; entries are stringified individually.
func stringList(obj map[string]any, key string) []string {
	items, ok := obj[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprintf("%v", item))
		}
	}
	return out
}

// objectList coerces obj[key] to a list of JSON objects, silently dropping
// entries that are not objects. Non-list values yield an empty list.
func objectList(obj map[string]any, key string) []map[string]any {
	items, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// clampInt restricts v to the range [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseDepthResult structures a reasoning depth response.
func parseDepthResult(obj map[string]any) (domain.ReasoningDepthResult, error) {
	score, err := floatField(obj, "score", 0.5)
	if err != nil {
		return domain.ReasoningDepthResult{}, err
	}
	levels, err := intField(obj, "analysis_levels", 1)
	if err != nil {
		return domain.ReasoningDepthResult{}, err
	}

	return domain.ReasoningDepthResult{
		Score:                  domain.Clamp01(score),
		HasCausalAnalysis:      boolField(obj, "has_causal_analysis", false),
		HasComparativeAnalysis: boolField(obj, "has_comparative_analysis", false),
		AnalysisLevels:         clampInt(levels, 1, 5),
		Explanation:            stringField(obj, "depth_explanation", ""),
	}, nil
}

// parseStructureResult structures an argument structure response.
func parseStructureResult(obj map[string]any) (domain.ArgumentStructureResult, error) {
	score, err := floatField(obj, "score", 0.5)
	if err != nil {
		return domain.ArgumentStructureResult{}, err
	}
	coherence, err := floatField(obj, "paragraph_coherence", 0.5)
	if err != nil {
		return domain.ArgumentStructureResult{}, err
	}

	components := []domain.ArgumentComponent{}
	for _, comp := range objectList(obj, "argument_components") {
		components = append(components, domain.ArgumentComponent{
			Type:     stringField(comp, "type", "unknown"),
			Content:  stringField(comp, "content", ""),
			Location: stringField(comp, "location", ""),
		})
	}

	return domain.ArgumentStructureResult{
		Score:              domain.Clamp01(score),
		HasClearStructure:  boolField(obj, "has_clear_structure", false),
		ParagraphCoherence: domain.Clamp01(coherence),
		Components:         components,
		Explanation:        stringField(obj, "structure_explanation", ""),
	}, nil
}

// parseConsistencyResult structures a consistency check response.
func parseConsistencyResult(obj map[string]any) (domain.ConsistencyResult, error) {
	score, err := floatField(obj, "score", 0.7)
	if err != nil {
		return domain.ConsistencyResult{}, err
	}

	return domain.ConsistencyResult{
		Score:          domain.Clamp01(score),
		Contradictions: stringList(obj, "contradictions"),
		Explanation:    stringField(obj, "consistency_explanation", ""),
	}, nil
}

// parseFallacyResult structures a fallacy detection response. When the
// model omits the top-level score, it is derived as one minus the mean
// severity of the parsed fallacies, or 1.0 when none were found.
func parseFallacyResult(obj map[string]any) (domain.LogicalFallacyResult, error) {
	fallacies := []domain.LogicalFallacy{}
	for _, f := range objectList(obj, "fallacies") {
		severity, err := floatField(f, "severity", 0.5)
		if err != nil {
			return domain.LogicalFallacyResult{}, err
		}
		fallacies = append(fallacies, domain.LogicalFallacy{
			Type:        domain.FallacyType(stringField(f, "type", string(domain.FallacyOvergeneralization))),
			Location:    stringField(f, "location", ""),
			Description: stringField(f, "description", ""),
			Severity:    domain.Clamp01(severity),
		})
	}

	derived := 1.0
	if len(fallacies) > 0 {
		var total float64
		for _, f := range fallacies {
			total += f.Severity
		}
		derived = 1.0 - total/float64(len(fallacies))
	}

	score, err := floatField(obj, "score", derived)
	if err != nil {
		return domain.LogicalFallacyResult{}, err
	}

	return domain.LogicalFallacyResult{
		Score:       domain.Clamp01(score),
		Fallacies:   fallacies,
		Explanation: stringField(obj, "fallacy_explanation", ""),
	}, nil
}
