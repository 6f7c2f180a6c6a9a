package advisor

import "sort"

// PartitionAndSort orders recommendations by status rank (primary first) and
// confidence descending, then splits the sorted sequence into per-tier
// slices. The sort is stable: equal-rank, equal-confidence entries keep their
// input order so repeated renders of the same data are byte-identical. The
// input slice is never modified.
func PartitionAndSort(recs []TechnologyRecommendation) OrderedRecommendations {
	all := make([]TechnologyRecommendation, len(recs))
	copy(all, recs)
	sort.SliceStable(all, func(i, j int) bool {
		ri, rj := StatusRank(all[i].Status), StatusRank(all[j].Status)
		if ri != rj {
			return ri < rj
		}
		return all[i].Confidence > all[j].Confidence
	})

	out := OrderedRecommendations{
		All:            all,
		Primary:        []TechnologyRecommendation{},
		Alternative:    []TechnologyRecommendation{},
		NotRecommended: []TechnologyRecommendation{},
	}
	for _, rec := range all {
		switch rec.Status {
		case StatusPrimary:
			out.Primary = append(out.Primary, rec)
		case StatusAlternative:
			out.Alternative = append(out.Alternative, rec)
		case StatusNotRecommended:
			out.NotRecommended = append(out.NotRecommended, rec)
		}
	}
	return out
}

// CategoryBreakdown rolls up distinct technology categories in first-seen
// order with per-category counts across all tiers. Recommendations without a
// category are left out entirely rather than given a synthetic bucket.
func CategoryBreakdown(recs []TechnologyRecommendation) []CategoryCount {
	counts := map[string]int{}
	order := []string{}
	for _, rec := range recs {
		category := rec.Technology.Category
		if category == "" {
			continue
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}
	out := make([]CategoryCount, 0, len(order))
	for _, category := range order {
		out = append(out, CategoryCount{Category: category, Count: counts[category]})
	}
	return out
}

// AverageConfidence is the arithmetic mean of confidence values. Empty input
// yields 0, not NaN. A missing confidence counts as 0 for its entry and still
// contributes to the denominator.
func AverageConfidence(recs []TechnologyRecommendation) float64 {
	if len(recs) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range recs {
		sum += rec.Confidence
	}
	return sum / float64(len(recs))
}

// Summarize computes the aggregate view attached to an analyze response.
func Summarize(ordered OrderedRecommendations) AnalysisSummary {
	avg := AverageConfidence(ordered.All)
	return AnalysisSummary{
		PrimaryCount:             len(ordered.Primary),
		AlternativeCount:         len(ordered.Alternative),
		NotRecommendedCount:      len(ordered.NotRecommended),
		Categories:               CategoryBreakdown(ordered.All),
		AverageConfidence:        avg,
		AverageConfidenceDisplay: FormatConfidence(avg),
	}
}
