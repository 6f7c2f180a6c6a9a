package explanations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/engine"
)

func newExplanationsRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryRepo())
	h := NewHandler(svc)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/explanations"))
	h.RegisterAdvisorRoutes(r.Group("/api/stack-advisor"))
	return r, svc
}

func seedSession(t *testing.T, svc *Service, sessionID string) {
	t.Helper()
	now := time.Now().UTC()
	err := svc.RecordSession(context.Background(), engine.Result{
		SessionID: sessionID,
		Explanations: []engine.Explanation{
			{RecommendationType: TypeLanguage, ItemID: 1, ItemName: "Go", FinalScore: 9, Reasons: engine.StringList{"fits team"}, CreatedAt: now},
			{RecommendationType: TypeFramework, ItemID: 2, ItemName: "Gin", FinalScore: 7.5, Reasons: engine.StringList{"mature"}, CreatedAt: now},
			{RecommendationType: TypeDataStorage, ItemID: 3, ItemName: "PostgreSQL", FinalScore: 8.2, Reasons: engine.StringList{}, CreatedAt: now},
		},
		RuleLogs: []engine.RuleLog{
			{RuleName: "rule-a", Timestamp: now, ObjectsActivated: "Language[Go]", ScoreChanges: "Go +3"},
			{RuleName: "rule-a", Timestamp: now},
		},
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func TestSessionViewCarriesTrailAndSummary(t *testing.T) {
	r, svc := newExplanationsRouter(t)
	seedSession(t, svc, "sess-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/explanations/session/sess-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var view SessionView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.SessionID != "sess-1" || len(view.Explanations) != 3 || len(view.RuleExecutionLogs) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Summary.TotalExplanations != 3 || view.Summary.TotalRulesExecuted != 2 {
		t.Fatalf("unexpected summary totals: %+v", view.Summary)
	}
	if view.TotalItems != 3 {
		t.Fatalf("totalItems should match visible explanations, got %d", view.TotalItems)
	}
	if len(view.ByType.Languages) != 1 || len(view.ByType.Frameworks) != 1 || len(view.ByType.DataStorages) != 1 {
		t.Fatalf("unexpected type grouping: %+v", view.ByType)
	}
}

func TestSessionViewFiltersApply(t *testing.T) {
	r, svc := newExplanationsRouter(t)
	seedSession(t, svc, "sess-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/explanations/session/sess-1?type=LANGUAGE&minScore=5", nil))
	var view SessionView
	_ = json.Unmarshal(w.Body.Bytes(), &view)

	if len(view.Explanations) != 1 || view.Explanations[0].ItemName != "Go" {
		t.Fatalf("filter not applied: %+v", view.Explanations)
	}
	// Summary stays computed over the unfiltered trail.
	if view.Summary.TotalExplanations != 3 {
		t.Fatalf("summary must ignore filters: %+v", view.Summary)
	}
	if view.TotalItems != 1 {
		t.Fatalf("totalItems should reflect the filter, got %d", view.TotalItems)
	}
}

func TestSessionViewBadScoreFilterIs400(t *testing.T) {
	r, _ := newExplanationsRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/explanations/session/sess-1?minScore=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSessionViewUnknownSessionIsEmptyNotError(t *testing.T) {
	r, _ := newExplanationsRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/explanations/session/missing", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var view SessionView
	_ = json.Unmarshal(w.Body.Bytes(), &view)
	if len(view.Explanations) != 0 || view.Summary.AverageScore != "0.00" {
		t.Fatalf("unknown session should render empty: %+v", view)
	}
}

func TestSessionSummaryEndpoint(t *testing.T) {
	r, svc := newExplanationsRouter(t)
	seedSession(t, svc, "sess-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/explanations/session/sess-1/summary", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var summary SessionSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.MaxScore != "9.00" || summary.RuleExecutionCounts["rule-a"] != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.TopRecommendations[0].Name != "Go" {
		t.Fatalf("unexpected top recommendation: %+v", summary.TopRecommendations)
	}
}

func TestRecentSessionsNewestFirst(t *testing.T) {
	r, svc := newExplanationsRouter(t)
	seedSession(t, svc, "sess-1")
	seedSession(t, svc, "sess-2")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/explanations/recent-sessions?limit=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Sessions []SessionDigest `json:"sessions"`
		Total    int             `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Total != 1 || len(body.Sessions) != 1 {
		t.Fatalf("limit not applied: %+v", body)
	}
	if body.Sessions[0].ExplanationCount != 3 || body.Sessions[0].RuleCount != 2 {
		t.Fatalf("unexpected digest: %+v", body.Sessions[0])
	}
}

func TestRuleLogsUnderAdvisorPrefix(t *testing.T) {
	r, svc := newExplanationsRouter(t)
	seedSession(t, svc, "sess-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stack-advisor/explanation/sess-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var logs []RuleExecutionLog
	if err := json.Unmarshal(w.Body.Bytes(), &logs); err != nil {
		t.Fatalf("rule logs body is not a bare array: %v", err)
	}
	if len(logs) != 2 || logs[0].RuleName != "rule-a" {
		t.Fatalf("unexpected logs: %+v", logs)
	}
}
