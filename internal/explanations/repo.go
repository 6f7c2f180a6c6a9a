package explanations

import "context"

// Repo stores the explanation trail of each analysis session. Trails are
// written once when the analysis completes and read by the dashboard.
type Repo interface {
	SaveSessionTrail(ctx context.Context, sessionID string, exps []RecommendationExplanation, logs []RuleExecutionLog) error
	ListExplanations(ctx context.Context, sessionID string) ([]RecommendationExplanation, error)
	ListRuleLogs(ctx context.Context, sessionID string) ([]RuleExecutionLog, error)
	RecentSessions(ctx context.Context, limit int) ([]SessionDigest, error)
}
