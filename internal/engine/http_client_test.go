package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnalyzeDecodesFullPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/analyze" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req Requirements
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ProjectType != "web" {
			t.Errorf("expected projectType web, got %q", req.ProjectType)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"sessionId": "s-1",
			"recommendations": [
				{"id": 1, "technology": {"name": "Go", "category": "BACKEND"}, "confidence": 0.9, "status": "PRIMARY"}
			],
			"explanations": [
				{"id": 1, "sessionId": "s-1", "recommendationType": "LANGUAGE", "itemId": 1, "itemName": "Go", "finalScore": 9, "explanations": "[\"a\",\"b\"]"}
			],
			"ruleExecutionLogs": [
				{"id": 1, "sessionId": "s-1", "ruleName": "r1", "executionContext": "{\"k\":\"v\"}"}
			],
			"rulesFired": 1
		}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "", 0)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	result, err := client.Analyze(context.Background(), Requirements{ProjectType: "web"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.SessionID != "s-1" {
		t.Fatalf("expected session s-1, got %q", result.SessionID)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0].Technology.Name != "Go" {
		t.Fatalf("unexpected recommendations: %+v", result.Recommendations)
	}
	got := []string(result.Explanations[0].Reasons)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected reasons [a b] from encoded string, got %v", got)
	}
	if result.RuleLogs[0].ExecutionContext["k"] != "v" {
		t.Fatalf("expected execution context decoded from encoded string, got %v", result.RuleLogs[0].ExecutionContext)
	}
	if result.ExplanationChain == nil || result.AuditLog == nil {
		t.Fatalf("expected absent arrays coerced to empty slices")
	}
}

func TestAnalyzeMissingRecommendationsBecomesEmptySlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sessionId": "s-2", "rulesFired": 0}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "", 0)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	result, err := client.Analyze(context.Background(), Requirements{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Recommendations == nil || len(result.Recommendations) != 0 {
		t.Fatalf("expected empty recommendations slice, got %#v", result.Recommendations)
	}
	if result.Explanations == nil || result.RuleLogs == nil {
		t.Fatalf("expected empty explanation slices")
	}
}

func TestAnalyzeMalformedListFieldsBecomeEmptySlices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sessionId": "s-3", "recommendations": "oops", "explanations": 42, "auditLog": "nope"}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "", 0)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	result, err := client.Analyze(context.Background(), Requirements{})
	if err != nil {
		t.Fatalf("a degraded payload must not fail the call: %v", err)
	}
	if result.SessionID != "s-3" {
		t.Fatalf("expected session s-3, got %q", result.SessionID)
	}
	if result.Recommendations == nil || len(result.Recommendations) != 0 {
		t.Fatalf("expected empty recommendations slice, got %#v", result.Recommendations)
	}
	if result.Explanations == nil || len(result.Explanations) != 0 {
		t.Fatalf("expected empty explanations slice, got %#v", result.Explanations)
	}
	if result.AuditLog == nil || len(result.AuditLog) != 0 {
		t.Fatalf("expected empty audit log, got %#v", result.AuditLog)
	}
}

func TestAnalyzeServerErrorBodyIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error": "engine_unavailable", "message": "knowledge base is reloading"}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "", 0)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	_, err = client.Analyze(context.Background(), Requirements{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "knowledge base is reloading") {
		t.Fatalf("expected server message in error, got %v", err)
	}
}

func TestAnalyzeNoResponseIsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client, err := NewHTTPClient(srv.URL, "", 0)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	_, err = client.Analyze(context.Background(), Requirements{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "no response from rules engine") {
		t.Fatalf("expected normalized transport error, got %v", err)
	}
	var engineErr *Error
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected an engine error, got %T", err)
	}
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient("  ", "", 0); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}
