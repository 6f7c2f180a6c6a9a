package explanations

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"stackadvisor-backend/internal/engine"
)

// FallbackReason replaces reason lists that cannot be parsed.
const FallbackReason = engine.FallbackReason

// DefaultTopN caps ranked lists when the caller does not say otherwise.
const DefaultTopN = 10

// NormalizeReasons coerces the heterogeneous wire shapes of a reason list
// into one canonical slice. A slice passes through, a string is parsed as a
// JSON array, a scalar parse result is wrapped, and unparsable input yields
// the single fallback entry. Never errors.
func NormalizeReasons(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, reasonString(item))
		}
		return out
	case string:
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return []string{FallbackReason}
		}
		if list, ok := parsed.([]any); ok {
			out := make([]string, 0, len(list))
			for _, item := range list {
				out = append(out, reasonString(item))
			}
			return out
		}
		return []string{reasonString(parsed)}
	default:
		return []string{FallbackReason}
	}
}

func reasonString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return FallbackReason
		}
		return string(data)
	}
}

// PartitionByType splits explanations into the three dashboard groups by
// exact type match, preserving input order within each group.
func PartitionByType(exps []RecommendationExplanation) PartitionedExplanations {
	out := PartitionedExplanations{
		Languages:    []RecommendationExplanation{},
		Frameworks:   []RecommendationExplanation{},
		DataStorages: []RecommendationExplanation{},
	}
	for _, exp := range exps {
		switch exp.RecommendationType {
		case TypeLanguage:
			out.Languages = append(out.Languages, exp)
		case TypeFramework:
			out.Frameworks = append(out.Frameworks, exp)
		case TypeDataStorage:
			out.DataStorages = append(out.DataStorages, exp)
		}
	}
	return out
}

// RankByScore returns the topN highest-scoring explanations across all
// types, descending and stable for ties. topN <= 0 selects the default. The
// input slice is never modified.
func RankByScore(exps []RecommendationExplanation, topN int) []RecommendationExplanation {
	if topN <= 0 {
		topN = DefaultTopN
	}
	ranked := make([]RecommendationExplanation, len(exps))
	copy(ranked, exps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// MaxScore is the maximum final score across the full set, 0 when empty.
func MaxScore(exps []RecommendationExplanation) float64 {
	var max float64
	for _, exp := range exps {
		if exp.FinalScore > max {
			max = exp.FinalScore
		}
	}
	return max
}

// RelativeWidth scales a score against the maximum of the full set to a
// 0–100 bar width. A zero or negative maximum yields 0 rather than dividing
// by zero.
func RelativeWidth(score, maxScore float64) float64 {
	if maxScore <= 0 || score <= 0 {
		return 0
	}
	width := score / maxScore * 100
	if width > 100 {
		width = 100
	}
	return width
}

// Filter selects explanations. All fields are optional and AND-composed; a
// zero field imposes no constraint.
type Filter struct {
	Type         string
	MinScore     *float64
	MaxScore     *float64
	NameContains string
}

// Apply runs the filter, preserving input order. It filters only, never
// sorts.
func (f Filter) Apply(exps []RecommendationExplanation) []RecommendationExplanation {
	out := make([]RecommendationExplanation, 0, len(exps))
	needle := strings.ToLower(f.NameContains)
	for _, exp := range exps {
		if f.Type != "" && exp.RecommendationType != f.Type {
			continue
		}
		if f.MinScore != nil && exp.FinalScore < *f.MinScore {
			continue
		}
		if f.MaxScore != nil && exp.FinalScore > *f.MaxScore {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(exp.ItemName), needle) {
			continue
		}
		out = append(out, exp)
	}
	return out
}

// IsZero reports whether the filter imposes no constraint at all.
func (f Filter) IsZero() bool {
	return f.Type == "" && f.MinScore == nil && f.MaxScore == nil && f.NameContains == ""
}
