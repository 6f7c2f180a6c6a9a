package advisor

import (
	"fmt"
	"time"

	"stackadvisor-backend/internal/engine"
)

// Recommendation status tiers assigned by the rules engine.
const (
	StatusPrimary        = "PRIMARY"
	StatusAlternative    = "ALTERNATIVE"
	StatusNotRecommended = "NOT_RECOMMENDED"
)

// statusRanks orders the tiers for display. Unknown statuses sink below
// NOT_RECOMMENDED instead of breaking the sort.
var statusRanks = map[string]int{
	StatusPrimary:        1,
	StatusAlternative:    2,
	StatusNotRecommended: 3,
}

var statusLabels = map[string]string{
	StatusPrimary:        "Primary choice",
	StatusAlternative:    "Alternative",
	StatusNotRecommended: "Not recommended",
}

// StatusRank returns the sort rank of a status tier.
func StatusRank(status string) int {
	if rank, ok := statusRanks[status]; ok {
		return rank
	}
	return len(statusRanks) + 1
}

// StatusLabel returns the display label for a status tier.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// Technology describes one candidate technology.
type Technology struct {
	Name     string             `json:"name"`
	Category string             `json:"category"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

// TechnologyRecommendation is one engine-recommended technology with its
// confidence and tier. Records are immutable once written; every view over
// them is a fresh transformation.
type TechnologyRecommendation struct {
	ID         int64      `json:"id"`
	Technology Technology `json:"technology"`
	Confidence float64    `json:"confidence"`
	Reason     string     `json:"reason"`
	Priority   int        `json:"priority"`
	Status     string     `json:"status"`
}

// OrderedRecommendations is the tri-partitioned view of one session's
// recommendations. All carries the full sorted sequence; the per-tier slices
// are filters over it, so tier-internal order matches All.
type OrderedRecommendations struct {
	All            []TechnologyRecommendation `json:"all"`
	Primary        []TechnologyRecommendation `json:"primary"`
	Alternative    []TechnologyRecommendation `json:"alternative"`
	NotRecommended []TechnologyRecommendation `json:"notRecommended"`
}

// CategoryCount is one category rollup entry.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// AnalysisSummary is the aggregator output attached to an analyze response.
type AnalysisSummary struct {
	PrimaryCount             int             `json:"primaryCount"`
	AlternativeCount         int             `json:"alternativeCount"`
	NotRecommendedCount      int             `json:"notRecommendedCount"`
	Categories               []CategoryCount `json:"categories"`
	AverageConfidence        float64         `json:"averageConfidence"`
	AverageConfidenceDisplay string          `json:"averageConfidenceDisplay"`
}

// Session is one persisted analysis run.
type Session struct {
	ID               string              `json:"sessionId"`
	Requirements     engine.Requirements `json:"requirements"`
	ExplanationChain []string            `json:"explanationChain"`
	AuditLog         []string            `json:"auditLog"`
	RulesFired       int                 `json:"rulesFired"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// AnalysisResponse is the analyze endpoint payload.
type AnalysisResponse struct {
	SessionID        string                     `json:"sessionId"`
	Requirements     engine.Requirements        `json:"requirements"`
	Recommendations  []TechnologyRecommendation `json:"recommendations"`
	Summary          AnalysisSummary            `json:"summary"`
	ExplanationChain []string                   `json:"explanationChain"`
	AuditLog         []string                   `json:"auditLog"`
	RulesFired       int                        `json:"rulesFired"`
}

const (
	placeholderName     = "unknown"
	placeholderCategory = "GENERAL"
)

// fromEngineRecommendation copies one engine record into the domain shape,
// substituting a placeholder for a missing technology descriptor.
func fromEngineRecommendation(rec engine.Recommendation) TechnologyRecommendation {
	tech := Technology{Name: placeholderName, Category: placeholderCategory}
	if rec.Technology != nil {
		tech = Technology{
			Name:     rec.Technology.Name,
			Category: rec.Technology.Category,
			Metrics:  rec.Technology.Metrics,
		}
		if tech.Name == "" {
			tech.Name = placeholderName
		}
	}
	return TechnologyRecommendation{
		ID:         rec.ID,
		Technology: tech,
		Confidence: rec.Confidence,
		Reason:     rec.Reason,
		Priority:   rec.Priority,
		Status:     rec.Status,
	}
}

func fromEngineRecommendations(recs []engine.Recommendation) []TechnologyRecommendation {
	out := make([]TechnologyRecommendation, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromEngineRecommendation(rec))
	}
	return out
}

// FormatConfidence renders a confidence value as a percentage, clamped to
// [0,1] so out-of-range engine values still display sanely.
func FormatConfidence(confidence float64) string {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return fmt.Sprintf("%.0f%%", confidence*100)
}
