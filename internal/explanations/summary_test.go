package explanations

import "testing"

func TestBuildSummaryEmptySession(t *testing.T) {
	summary := BuildSummary("sess-1", nil, nil, 0)

	if summary.TotalExplanations != 0 || summary.TotalRulesExecuted != 0 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if summary.AverageScore != "0.00" || summary.MedianScore != "0.00" {
		t.Fatalf("empty session should yield 0.00 stats: %+v", summary)
	}
	if len(summary.TopRecommendations) != 0 {
		t.Fatalf("expected no top recommendations: %+v", summary.TopRecommendations)
	}
}

func TestBuildSummaryStatistics(t *testing.T) {
	exps := []RecommendationExplanation{
		exp(1, TypeLanguage, "Go", 9),
		exp(2, TypeFramework, "Gin", 7),
		exp(3, TypeLanguage, "Python", 5),
		exp(4, TypeDataStorage, "PostgreSQL", 8),
	}
	logs := []RuleExecutionLog{
		{ID: 1, RuleName: "rule-a"},
		{ID: 2, RuleName: "rule-a"},
		{ID: 3, RuleName: "rule-b"},
	}

	summary := BuildSummary("sess-1", exps, logs, 0)

	if summary.AverageScore != "7.25" {
		t.Fatalf("average: want 7.25, got %s", summary.AverageScore)
	}
	if summary.MinScore != "5.00" || summary.MaxScore != "9.00" {
		t.Fatalf("min/max wrong: %s/%s", summary.MinScore, summary.MaxScore)
	}
	// Even count: median is the mean of the two middle scores (7 and 8).
	if summary.MedianScore != "7.50" {
		t.Fatalf("median: want 7.50, got %s", summary.MedianScore)
	}
	if summary.ExplanationsByType[TypeLanguage] != 2 || summary.ExplanationsByType[TypeFramework] != 1 {
		t.Fatalf("type counts wrong: %+v", summary.ExplanationsByType)
	}
	if summary.RuleExecutionCounts["rule-a"] != 2 || summary.RuleExecutionCounts["rule-b"] != 1 {
		t.Fatalf("rule counts wrong: %+v", summary.RuleExecutionCounts)
	}
	if summary.TopRecommendations[0].Name != "Go" || summary.TopRecommendations[0].Score != 9 {
		t.Fatalf("top recommendation wrong: %+v", summary.TopRecommendations[0])
	}
	if summary.TopRecommendations[0].ExplanationCount != 1 {
		t.Fatalf("explanation count wrong: %+v", summary.TopRecommendations[0])
	}
	if summary.TopRecommendations[0].RelativeWidth != 100 {
		t.Fatalf("top score should map to full width: %+v", summary.TopRecommendations[0])
	}
}

func TestBuildSummaryOddMedian(t *testing.T) {
	exps := []RecommendationExplanation{
		exp(1, TypeLanguage, "a", 1),
		exp(2, TypeLanguage, "b", 9),
		exp(3, TypeLanguage, "c", 4),
	}

	summary := BuildSummary("sess-1", exps, nil, 0)

	if summary.MedianScore != "4.00" {
		t.Fatalf("median: want 4.00, got %s", summary.MedianScore)
	}
}

func TestBuildSummaryCapsTopRecommendations(t *testing.T) {
	exps := make([]RecommendationExplanation, 14)
	for i := range exps {
		exps[i] = exp(int64(i+1), TypeLanguage, "x", float64(i))
	}

	summary := BuildSummary("sess-1", exps, nil, 0)

	if len(summary.TopRecommendations) != DefaultTopN {
		t.Fatalf("expected cap of %d, got %d", DefaultTopN, len(summary.TopRecommendations))
	}
}
