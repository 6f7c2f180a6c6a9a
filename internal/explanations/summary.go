package explanations

import (
	"fmt"
	"sort"
)

// BuildSummary aggregates one session's explanation trail, capping the top
// list at topN (<= 0 selects the default). An empty session is valid and
// yields zero counts and "0.00" statistics.
func BuildSummary(sessionID string, exps []RecommendationExplanation, logs []RuleExecutionLog, topN int) SessionSummary {
	summary := SessionSummary{
		SessionID:           sessionID,
		TotalExplanations:   len(exps),
		TotalRulesExecuted:  len(logs),
		AverageScore:        formatScore(0),
		MinScore:            formatScore(0),
		MaxScore:            formatScore(0),
		MedianScore:         formatScore(0),
		ExplanationsByType:  map[string]int{},
		RuleExecutionCounts: map[string]int{},
		TopRecommendations:  []TopRecommendation{},
	}

	for _, exp := range exps {
		summary.ExplanationsByType[exp.RecommendationType]++
	}
	for _, log := range logs {
		summary.RuleExecutionCounts[log.RuleName]++
	}

	if len(exps) > 0 {
		scores := make([]float64, len(exps))
		var sum float64
		for i, exp := range exps {
			scores[i] = exp.FinalScore
			sum += exp.FinalScore
		}
		sort.Float64s(scores)
		summary.AverageScore = formatScore(sum / float64(len(scores)))
		summary.MinScore = formatScore(scores[0])
		summary.MaxScore = formatScore(scores[len(scores)-1])
		summary.MedianScore = formatScore(median(scores))
	}

	maxScore := MaxScore(exps)
	for _, exp := range RankByScore(exps, topN) {
		summary.TopRecommendations = append(summary.TopRecommendations, TopRecommendation{
			Type:             exp.RecommendationType,
			Name:             exp.ItemName,
			Score:            exp.FinalScore,
			ItemID:           exp.ItemID,
			ExplanationCount: len(exp.Reasons),
			RelativeWidth:    RelativeWidth(exp.FinalScore, maxScore),
		})
	}
	return summary
}

// median expects a sorted slice.
func median(scores []float64) float64 {
	n := len(scores)
	if n%2 == 1 {
		return scores[n/2]
	}
	return (scores[n/2-1] + scores[n/2]) / 2
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
