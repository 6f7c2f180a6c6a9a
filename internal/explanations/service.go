package explanations

import (
	"context"
	"time"

	"stackadvisor-backend/internal/engine"
)

// DefaultRecentLimit caps the recent-sessions listing by default.
const DefaultRecentLimit = 10

// Service serves the explanation dashboard and records trails produced by
// completed analyses. TopN caps the summary's top-recommendations list; zero
// means the default.
type Service struct {
	Repo Repo
	TopN int
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// RecordSession persists the explanation trail of one engine result. The
// engine payload arrives already normalized by the gateway's wire decoding.
func (s *Service) RecordSession(ctx context.Context, result engine.Result) error {
	exps := make([]RecommendationExplanation, 0, len(result.Explanations))
	for _, exp := range result.Explanations {
		createdAt := exp.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		exps = append(exps, RecommendationExplanation{
			SessionID:          result.SessionID,
			RecommendationType: exp.RecommendationType,
			ItemID:             exp.ItemID,
			ItemName:           exp.ItemName,
			FinalScore:         exp.FinalScore,
			Reasons:            normalizedOrEmpty(exp.Reasons),
			CreatedAt:          createdAt,
		})
	}
	logs := make([]RuleExecutionLog, 0, len(result.RuleLogs))
	for _, log := range result.RuleLogs {
		firedAt := log.Timestamp
		if firedAt.IsZero() {
			firedAt = time.Now().UTC()
		}
		logs = append(logs, RuleExecutionLog{
			SessionID:        result.SessionID,
			RuleName:         log.RuleName,
			FiredAt:          firedAt,
			ObjectsActivated: log.ObjectsActivated,
			ScoreChanges:     log.ScoreChanges,
			ExecutionContext: log.ExecutionContext,
		})
	}
	return s.Repo.SaveSessionTrail(ctx, result.SessionID, exps, logs)
}

// SessionView assembles the full dashboard payload for one session. The
// summary is always computed over the unfiltered trail; the filter applies
// to the explanation list only. Unknown sessions yield an empty view, not an
// error.
func (s *Service) SessionView(ctx context.Context, sessionID string, filter Filter) (SessionView, error) {
	exps, err := s.Repo.ListExplanations(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	logs, err := s.Repo.ListRuleLogs(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}

	visible := exps
	if !filter.IsZero() {
		visible = filter.Apply(exps)
	}
	return SessionView{
		SessionID:         sessionID,
		Timestamp:         time.Now().UTC(),
		Explanations:      visible,
		ByType:            PartitionByType(visible),
		RuleExecutionLogs: logs,
		Summary:           BuildSummary(sessionID, exps, logs, s.TopN),
		TotalItems:        len(visible),
	}, nil
}

// Summary computes the aggregated view of one session.
func (s *Service) Summary(ctx context.Context, sessionID string) (SessionSummary, error) {
	exps, err := s.Repo.ListExplanations(ctx, sessionID)
	if err != nil {
		return SessionSummary{}, err
	}
	logs, err := s.Repo.ListRuleLogs(ctx, sessionID)
	if err != nil {
		return SessionSummary{}, err
	}
	return BuildSummary(sessionID, exps, logs, s.TopN), nil
}

// RuleLogs returns one session's rule-execution audit trail.
func (s *Service) RuleLogs(ctx context.Context, sessionID string) ([]RuleExecutionLog, error) {
	return s.Repo.ListRuleLogs(ctx, sessionID)
}

// Recent lists the latest analysis sessions, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]SessionDigest, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.Repo.RecentSessions(ctx, limit)
}
