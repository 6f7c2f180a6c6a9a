package explanations

import "time"

// Recommendation types the engine explains.
const (
	TypeLanguage    = "LANGUAGE"
	TypeFramework   = "FRAMEWORK"
	TypeDataStorage = "DATA_STORAGE"
)

// RecommendationExplanation is one scored justification for one recommended
// item within one session. Reasons arrive normalized; their length is shown
// directly as "number of causes", so an empty list is valid and renders as
// zero.
type RecommendationExplanation struct {
	ID                 int64     `json:"id"`
	SessionID          string    `json:"sessionId"`
	RecommendationType string    `json:"recommendationType"`
	ItemID             int64     `json:"itemId"`
	ItemName           string    `json:"itemName"`
	FinalScore         float64   `json:"finalScore"`
	Reasons            []string  `json:"explanations"`
	CreatedAt          time.Time `json:"createdAt"`
}

// RuleExecutionLog is one audit record for one firing of one rule.
type RuleExecutionLog struct {
	ID               int64          `json:"id"`
	SessionID        string         `json:"sessionId"`
	RuleName         string         `json:"ruleName"`
	FiredAt          time.Time      `json:"timestamp"`
	ObjectsActivated string         `json:"objectsActivated"`
	ScoreChanges     string         `json:"scoreChanges"`
	ExecutionContext map[string]any `json:"executionContext"`
}

// PartitionedExplanations groups one session's explanations by type.
type PartitionedExplanations struct {
	Languages    []RecommendationExplanation `json:"language"`
	Frameworks   []RecommendationExplanation `json:"framework"`
	DataStorages []RecommendationExplanation `json:"dataStorage"`
}

// TopRecommendation is one entry of the summary's ranked list. RelativeWidth
// is the score scaled against the session maximum, ready for bar rendering.
type TopRecommendation struct {
	Type             string  `json:"type"`
	Name             string  `json:"name"`
	Score            float64 `json:"score"`
	ItemID           int64   `json:"itemId,omitempty"`
	ExplanationCount int     `json:"explanationCount,omitempty"`
	RelativeWidth    float64 `json:"relativeWidth"`
}

// SessionSummary is the aggregated per-session view. Score statistics are
// delivered pre-formatted so every consumer renders them identically.
type SessionSummary struct {
	SessionID           string              `json:"sessionId"`
	TotalExplanations   int                 `json:"totalExplanations"`
	TotalRulesExecuted  int                 `json:"totalRulesExecuted"`
	AverageScore        string              `json:"averageScore"`
	MinScore            string              `json:"minScore"`
	MaxScore            string              `json:"maxScore"`
	MedianScore         string              `json:"medianScore"`
	ExplanationsByType  map[string]int      `json:"explanationsByType"`
	RuleExecutionCounts map[string]int      `json:"ruleExecutionCounts"`
	TopRecommendations  []TopRecommendation `json:"topRecommendations"`
}

// SessionDigest is one row of the recent-sessions listing.
type SessionDigest struct {
	SessionID        string    `json:"sessionId"`
	Timestamp        time.Time `json:"timestamp"`
	ExplanationCount int       `json:"explanationCount"`
	RuleCount        int       `json:"ruleCount"`
}

// SessionView is the full dashboard payload for one session. ByType groups
// the visible explanations for the dashboard's per-type tabs.
type SessionView struct {
	SessionID         string                      `json:"sessionId"`
	Timestamp         time.Time                   `json:"timestamp"`
	Explanations      []RecommendationExplanation `json:"explanations"`
	ByType            PartitionedExplanations     `json:"byType"`
	RuleExecutionLogs []RuleExecutionLog          `json:"ruleExecutionLogs"`
	Summary           SessionSummary              `json:"summary"`
	TotalItems        int                         `json:"totalItems"`
}
