package explanations

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSaveSessionTrail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO explanations")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rule_execution_logs")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	err = repo.SaveSessionTrail(context.Background(), "sess-1",
		[]RecommendationExplanation{{RecommendationType: TypeLanguage, ItemName: "Go", FinalScore: 9, CreatedAt: now}},
		[]RuleExecutionLog{{RuleName: "rule-a", FiredAt: now}})
	if err != nil {
		t.Fatalf("SaveSessionTrail: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPGRepoListExplanationsNormalizesStoredReasons(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "session_id", "recommendation_type", "item_id", "item_name", "final_score", "reasons", "created_at"}).
		AddRow(int64(1), "sess-1", TypeLanguage, int64(1), "Go", 9.0, []byte(`["fits team"]`), now).
		AddRow(int64(2), "sess-1", TypeFramework, int64(2), "Gin", 7.5, []byte(`"[\"mature\"]"`), now).
		AddRow(int64(3), "sess-1", TypeDataStorage, int64(3), "PostgreSQL", 8.2, []byte(`not json`), now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM explanations")).
		WithArgs("sess-1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	exps, err := repo.ListExplanations(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("ListExplanations: %v", err)
	}
	if len(exps) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(exps))
	}
	if exps[0].Reasons[0] != "fits team" {
		t.Fatalf("plain array not decoded: %+v", exps[0].Reasons)
	}
	if exps[1].Reasons[0] != "mature" {
		t.Fatalf("encoded-string reasons not normalized: %+v", exps[1].Reasons)
	}
	if exps[2].Reasons[0] != FallbackReason {
		t.Fatalf("unparsable reasons must fall back: %+v", exps[2].Reasons)
	}
}

func TestPGRepoListRuleLogsKeepsRawContextOnGarbage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "session_id", "rule_name", "fired_at", "objects_activated", "score_changes", "execution_context"}).
		AddRow(int64(1), "sess-1", "rule-a", now, "Language[Go]", "Go +3", []byte(`{"teamSize":"small"}`)).
		AddRow(int64(2), "sess-1", "rule-b", now, "", "", []byte(`garbage`))
	mock.ExpectQuery(regexp.QuoteMeta("FROM rule_execution_logs")).
		WithArgs("sess-1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	logs, err := repo.ListRuleLogs(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("ListRuleLogs: %v", err)
	}
	if logs[0].ExecutionContext["teamSize"] != "small" {
		t.Fatalf("context not decoded: %+v", logs[0].ExecutionContext)
	}
	if logs[1].ExecutionContext["raw"] != "garbage" {
		t.Fatalf("garbage context must survive under raw: %+v", logs[1].ExecutionContext)
	}
}

func TestPGRepoRecentSessions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "created_at", "count", "count"}).
		AddRow("sess-2", now, 3, 2).
		AddRow("sess-1", now.Add(-time.Minute), 1, 1)
	mock.ExpectQuery(regexp.QuoteMeta("FROM advisor_sessions")).
		WithArgs(10).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	digests, err := repo.RecentSessions(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(digests) != 2 || digests[0].SessionID != "sess-2" || digests[0].ExplanationCount != 3 {
		t.Fatalf("unexpected digests: %+v", digests)
	}
}
