package explanations

import (
	"context"
	"database/sql"
	"encoding/json"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) SaveSessionTrail(ctx context.Context, sessionID string, exps []RecommendationExplanation, logs []RuleExecutionLog) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const expQuery = `
INSERT INTO explanations (session_id, recommendation_type, item_id, item_name, final_score, reasons, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, exp := range exps {
		reasons, err := json.Marshal(normalizedOrEmpty(exp.Reasons))
		if err != nil {
			return err
		}
		createdAt := exp.CreatedAt
		if _, err := tx.ExecContext(ctx, expQuery, sessionID, exp.RecommendationType, exp.ItemID, exp.ItemName, exp.FinalScore, reasons, createdAt); err != nil {
			return err
		}
	}

	const logQuery = `
INSERT INTO rule_execution_logs (session_id, rule_name, fired_at, objects_activated, score_changes, execution_context)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, log := range logs {
		contextJSON, err := json.Marshal(log.ExecutionContext)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, logQuery, sessionID, log.RuleName, log.FiredAt, log.ObjectsActivated, log.ScoreChanges, contextJSON); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PGRepo) ListExplanations(ctx context.Context, sessionID string) ([]RecommendationExplanation, error) {
	const query = `
SELECT id, session_id, recommendation_type, item_id, item_name, final_score, reasons, created_at
FROM explanations
WHERE session_id = $1
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RecommendationExplanation{}
	for rows.Next() {
		var (
			exp     RecommendationExplanation
			reasons []byte
		)
		if err := rows.Scan(&exp.ID, &exp.SessionID, &exp.RecommendationType, &exp.ItemID, &exp.ItemName, &exp.FinalScore, &reasons, &exp.CreatedAt); err != nil {
			return nil, err
		}
		// Stored reasons may have been written by an older schema as a bare
		// string; normalize on the way out as well.
		var decoded any
		if err := json.Unmarshal(reasons, &decoded); err != nil {
			exp.Reasons = []string{FallbackReason}
		} else {
			exp.Reasons = NormalizeReasons(decoded)
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListRuleLogs(ctx context.Context, sessionID string) ([]RuleExecutionLog, error) {
	const query = `
SELECT id, session_id, rule_name, fired_at, objects_activated, score_changes, execution_context
FROM rule_execution_logs
WHERE session_id = $1
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RuleExecutionLog{}
	for rows.Next() {
		var (
			log        RuleExecutionLog
			contextRaw []byte
		)
		if err := rows.Scan(&log.ID, &log.SessionID, &log.RuleName, &log.FiredAt, &log.ObjectsActivated, &log.ScoreChanges, &contextRaw); err != nil {
			return nil, err
		}
		log.ExecutionContext = map[string]any{}
		if len(contextRaw) > 0 {
			if err := json.Unmarshal(contextRaw, &log.ExecutionContext); err != nil {
				log.ExecutionContext = map[string]any{"raw": string(contextRaw)}
			}
		}
		out = append(out, log)
	}
	return out, rows.Err()
}

func (r *PGRepo) RecentSessions(ctx context.Context, limit int) ([]SessionDigest, error) {
	const query = `
SELECT s.id,
       s.created_at,
       (SELECT count(*) FROM explanations e WHERE e.session_id = s.id),
       (SELECT count(*) FROM rule_execution_logs l WHERE l.session_id = s.id)
FROM advisor_sessions s
ORDER BY s.created_at DESC, s.id
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SessionDigest{}
	for rows.Next() {
		var digest SessionDigest
		if err := rows.Scan(&digest.SessionID, &digest.Timestamp, &digest.ExplanationCount, &digest.RuleCount); err != nil {
			return nil, err
		}
		out = append(out, digest)
	}
	return out, rows.Err()
}

func normalizedOrEmpty(reasons []string) []string {
	if reasons == nil {
		return []string{}
	}
	return reasons
}
