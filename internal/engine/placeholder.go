package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Placeholder is a canned engine used when ENGINE_BASE_URL is not configured.
// It returns a small deterministic session so the rest of the stack works in
// dev and tests without a live rules engine.
type Placeholder struct{}

func (Placeholder) Analyze(ctx context.Context, req Requirements) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	sessionID := uuid.NewString()
	now := time.Now().UTC()

	recs := []Recommendation{
		{
			ID:         1,
			Technology: &Technology{Name: "Go", Category: "BACKEND"},
			Confidence: 0.9,
			Reason:     "Compiled language with a strong concurrency story",
			Priority:   1,
			Status:     "PRIMARY",
		},
		{
			ID:         2,
			Technology: &Technology{Name: "PostgreSQL", Category: "DATABASE"},
			Confidence: 0.85,
			Reason:     "General-purpose relational storage",
			Priority:   1,
			Status:     "PRIMARY",
		},
		{
			ID:         3,
			Technology: &Technology{Name: "Node.js", Category: "BACKEND"},
			Confidence: 0.6,
			Reason:     "Viable when the team already knows JavaScript",
			Priority:   2,
			Status:     "ALTERNATIVE",
		},
		{
			ID:         4,
			Technology: &Technology{Name: "COBOL", Category: "BACKEND"},
			Confidence: 0.1,
			Reason:     "No ecosystem fit for this project type",
			Priority:   3,
			Status:     "NOT_RECOMMENDED",
		},
	}

	exps := []Explanation{
		{
			ID:                 1,
			SessionID:          sessionID,
			RecommendationType: "LANGUAGE",
			ItemID:             1,
			ItemName:           "Go",
			FinalScore:         9.0,
			Reasons:            StringList{"matches team experience", "fits high-load requirement"},
			CreatedAt:          now,
		},
		{
			ID:                 2,
			SessionID:          sessionID,
			RecommendationType: "FRAMEWORK",
			ItemID:             2,
			ItemName:           "Gin",
			FinalScore:         7.5,
			Reasons:            StringList{"mature web framework for the selected language"},
			CreatedAt:          now,
		},
		{
			ID:                 3,
			SessionID:          sessionID,
			RecommendationType: "DATA_STORAGE",
			ItemID:             3,
			ItemName:           "PostgreSQL",
			FinalScore:         8.2,
			Reasons:            StringList{"relational storage fits the data shape"},
			CreatedAt:          now,
		},
	}

	logs := []RuleLog{
		{
			ID:               1,
			SessionID:        sessionID,
			RuleName:         "language-team-experience",
			Timestamp:        now,
			ObjectsActivated: "ProjectRequirements, Language[Go]",
			ScoreChanges:     "Go +3.0",
			ExecutionContext: ContextMap{"teamExperience": req.TeamExperience},
		},
		{
			ID:               2,
			SessionID:        sessionID,
			RuleName:         "storage-default-relational",
			Timestamp:        now,
			ObjectsActivated: "DataStorage[PostgreSQL]",
			ScoreChanges:     "PostgreSQL +2.5",
			ExecutionContext: ContextMap{"projectType": req.ProjectType},
		},
	}

	return Result{
		SessionID:       sessionID,
		Requirements:    req,
		Recommendations: recs,
		Explanations:    exps,
		RuleLogs:        logs,
		ExplanationChain: []string{
			"language-team-experience: scored languages against team experience",
			"storage-default-relational: selected relational storage",
		},
		AuditLog:   []string{"2 rules fired for session " + sessionID},
		RulesFired: len(logs),
	}, nil
}
