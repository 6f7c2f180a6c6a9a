package advisor

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned when a session ID has no stored run.
var ErrSessionNotFound = errors.New("session not found")

// Repo persists analysis sessions and their recommendations. Sessions are
// append-only: one write at analyze time, reads ever after.
type Repo interface {
	CreateSession(ctx context.Context, session Session, recs []TechnologyRecommendation) error
	GetSession(ctx context.Context, sessionID string) (Session, error)
	ListRecommendations(ctx context.Context, sessionID string) ([]TechnologyRecommendation, error)
}
