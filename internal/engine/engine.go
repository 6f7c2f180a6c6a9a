// Package engine talks to the external rules engine that evaluates project
// requirements and produces scored technology recommendations with an
// explanation trail. The engine is opaque: all matching, scoring and conflict
// resolution happens on its side, this package only transports and normalizes
// its payloads.
package engine

import (
	"context"
	"fmt"
	"time"
)

// Requirements describes one analysis request.
type Requirements struct {
	ProjectType      string `json:"projectType"`
	TeamExperience   string `json:"teamExperience"`
	TeamSize         string `json:"teamSize"`
	TeamMembers      int    `json:"teamMembers"`
	Budget           string `json:"budget"`
	TimeToMarket     string `json:"timeToMarket"`
	NeedHighLoad     bool   `json:"needHighLoad"`
	NeedRealTime     bool   `json:"needRealTime"`
	NeedHighSecurity bool   `json:"needHighSecurity"`
}

// Technology is the engine's descriptor of a candidate technology.
type Technology struct {
	Name     string             `json:"name"`
	Category string             `json:"category"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

// Recommendation is one recommended technology with engine-assigned confidence.
type Recommendation struct {
	ID         int64       `json:"id"`
	Technology *Technology `json:"technology"`
	Confidence float64     `json:"confidence"`
	Reason     string      `json:"reason"`
	Priority   int         `json:"priority"`
	Status     string      `json:"status"`
}

// Explanation is one scored justification for one recommended item.
type Explanation struct {
	ID                 int64      `json:"id"`
	SessionID          string     `json:"sessionId"`
	RecommendationType string     `json:"recommendationType"`
	ItemID             int64      `json:"itemId"`
	ItemName           string     `json:"itemName"`
	FinalScore         float64    `json:"finalScore"`
	Reasons            StringList `json:"explanations"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// RuleLog is one audit record for one rule firing.
type RuleLog struct {
	ID               int64      `json:"id"`
	SessionID        string     `json:"sessionId"`
	RuleName         string     `json:"ruleName"`
	Timestamp        time.Time  `json:"timestamp"`
	ObjectsActivated string     `json:"objectsActivated"`
	ScoreChanges     string     `json:"scoreChanges"`
	ExecutionContext ContextMap `json:"executionContext"`
}

// Result is the full engine payload for one session. The list fields use the
// tolerant wire types so a malformed field degrades to empty instead of
// rejecting the session.
type Result struct {
	SessionID        string             `json:"sessionId"`
	Requirements     Requirements       `json:"requirements"`
	Recommendations  RecommendationList `json:"recommendations"`
	Explanations     ExplanationList    `json:"explanations"`
	RuleLogs         RuleLogList        `json:"ruleExecutionLogs"`
	ExplanationChain LooseStrings       `json:"explanationChain"`
	AuditLog         LooseStrings       `json:"auditLog"`
	RulesFired       int                `json:"rulesFired"`
}

// Client evaluates project requirements against the rules engine.
type Client interface {
	Analyze(ctx context.Context, req Requirements) (Result, error)
}

// Error marks a failure to reach the rules engine or to use its response.
// Callers match on it with errors.As to tell gateway faults apart from
// their own.
type Error struct {
	err error
}

// Errorf builds an engine Error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string { return e.err.Error() }

func (e *Error) Unwrap() error { return e.err }
