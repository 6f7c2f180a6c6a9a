package advisor

import (
	"context"
	"sync"
)

// MemoryRepo is the dev fallback when no database is configured.
type MemoryRepo struct {
	mu              sync.RWMutex
	nextRecID       int64
	sessions        map[string]Session
	recommendations map[string][]TechnologyRecommendation
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextRecID:       1,
		sessions:        make(map[string]Session),
		recommendations: make(map[string][]TechnologyRecommendation),
	}
}

func (r *MemoryRepo) CreateSession(ctx context.Context, session Session, recs []TechnologyRecommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session.ExplanationChain = emptyIfNil(session.ExplanationChain)
	session.AuditLog = emptyIfNil(session.AuditLog)
	r.sessions[session.ID] = session
	stored := make([]TechnologyRecommendation, len(recs))
	copy(stored, recs)
	for i := range stored {
		if stored[i].ID == 0 {
			stored[i].ID = r.nextRecID
		}
		r.nextRecID++
	}
	r.recommendations[session.ID] = stored
	return nil
}

func (r *MemoryRepo) GetSession(ctx context.Context, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (r *MemoryRepo) ListRecommendations(ctx context.Context, sessionID string) ([]TechnologyRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.recommendations[sessionID]
	if !ok {
		return []TechnologyRecommendation{}, nil
	}
	out := make([]TechnologyRecommendation, len(stored))
	copy(out, stored)
	return out, nil
}
