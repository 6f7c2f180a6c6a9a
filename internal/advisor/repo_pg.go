package advisor

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"stackadvisor-backend/internal/engine"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) CreateSession(ctx context.Context, session Session, recs []TechnologyRecommendation) error {
	reqJSON, err := json.Marshal(session.Requirements)
	if err != nil {
		return err
	}
	chainJSON, err := json.Marshal(emptyIfNil(session.ExplanationChain))
	if err != nil {
		return err
	}
	auditJSON, err := json.Marshal(emptyIfNil(session.AuditLog))
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const sessionQuery = `
INSERT INTO advisor_sessions (id, requirements, explanation_chain, audit_log, rules_fired, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.ExecContext(ctx, sessionQuery, session.ID, reqJSON, chainJSON, auditJSON, session.RulesFired, session.CreatedAt); err != nil {
		return err
	}

	const recQuery = `
INSERT INTO recommendations (session_id, technology_name, technology_category, technology_metrics, confidence, reason, priority, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, rec := range recs {
		var metrics any
		if rec.Technology.Metrics != nil {
			b, err := json.Marshal(rec.Technology.Metrics)
			if err != nil {
				return err
			}
			metrics = b
		}
		if _, err := tx.ExecContext(ctx, recQuery, session.ID, rec.Technology.Name, rec.Technology.Category, metrics, rec.Confidence, rec.Reason, rec.Priority, rec.Status); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PGRepo) GetSession(ctx context.Context, sessionID string) (Session, error) {
	const query = `
SELECT id, requirements, explanation_chain, audit_log, rules_fired, created_at
FROM advisor_sessions
WHERE id = $1
LIMIT 1`
	var (
		session   Session
		reqJSON   []byte
		chainJSON []byte
		auditJSON []byte
	)
	err := r.DB.QueryRowContext(ctx, query, sessionID).
		Scan(&session.ID, &reqJSON, &chainJSON, &auditJSON, &session.RulesFired, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	if err := json.Unmarshal(reqJSON, &session.Requirements); err != nil {
		session.Requirements = engine.Requirements{}
	}
	session.ExplanationChain = decodeStrings(chainJSON)
	session.AuditLog = decodeStrings(auditJSON)
	return session, nil
}

func (r *PGRepo) ListRecommendations(ctx context.Context, sessionID string) ([]TechnologyRecommendation, error) {
	const query = `
SELECT id, technology_name, technology_category, technology_metrics, confidence, reason, priority, status
FROM recommendations
WHERE session_id = $1
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TechnologyRecommendation{}
	for rows.Next() {
		var (
			rec     TechnologyRecommendation
			metrics []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Technology.Name, &rec.Technology.Category, &metrics, &rec.Confidence, &rec.Reason, &rec.Priority, &rec.Status); err != nil {
			return nil, err
		}
		if len(metrics) > 0 {
			// Stored metrics that fail to decode render as "no metrics",
			// matching the defensive posture everywhere else.
			_ = json.Unmarshal(metrics, &rec.Technology.Metrics)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func decodeStrings(raw []byte) []string {
	out := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}
