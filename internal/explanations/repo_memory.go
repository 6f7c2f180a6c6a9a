package explanations

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is the dev fallback when no database is configured.
type MemoryRepo struct {
	mu       sync.RWMutex
	nextID   int64
	trails   map[string][]RecommendationExplanation
	ruleLogs map[string][]RuleExecutionLog
	digests  []SessionDigest
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID:   1,
		trails:   make(map[string][]RecommendationExplanation),
		ruleLogs: make(map[string][]RuleExecutionLog),
	}
}

func (r *MemoryRepo) SaveSessionTrail(ctx context.Context, sessionID string, exps []RecommendationExplanation, logs []RuleExecutionLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	storedExps := make([]RecommendationExplanation, len(exps))
	copy(storedExps, exps)
	for i := range storedExps {
		storedExps[i].ID = r.nextID
		storedExps[i].SessionID = sessionID
		if storedExps[i].Reasons == nil {
			storedExps[i].Reasons = []string{}
		}
		r.nextID++
	}
	storedLogs := make([]RuleExecutionLog, len(logs))
	copy(storedLogs, logs)
	for i := range storedLogs {
		storedLogs[i].ID = r.nextID
		storedLogs[i].SessionID = sessionID
		if storedLogs[i].ExecutionContext == nil {
			storedLogs[i].ExecutionContext = map[string]any{}
		}
		r.nextID++
	}

	r.trails[sessionID] = storedExps
	r.ruleLogs[sessionID] = storedLogs
	r.digests = append(r.digests, SessionDigest{
		SessionID:        sessionID,
		Timestamp:        time.Now().UTC(),
		ExplanationCount: len(storedExps),
		RuleCount:        len(storedLogs),
	})
	return nil
}

func (r *MemoryRepo) ListExplanations(ctx context.Context, sessionID string) ([]RecommendationExplanation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RecommendationExplanation, len(r.trails[sessionID]))
	copy(out, r.trails[sessionID])
	return out, nil
}

func (r *MemoryRepo) ListRuleLogs(ctx context.Context, sessionID string) ([]RuleExecutionLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RuleExecutionLog, len(r.ruleLogs[sessionID]))
	copy(out, r.ruleLogs[sessionID])
	return out, nil
}

func (r *MemoryRepo) RecentSessions(ctx context.Context, limit int) ([]SessionDigest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SessionDigest, len(r.digests))
	copy(out, r.digests)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
