package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stackadvisor-backend/internal/engine"
	"stackadvisor-backend/internal/shared/metrics"
	"stackadvisor-backend/internal/shared/telemetry"
)

// TechnologySource lists the technologies the advisor can recommend,
// derived from the reference-data catalog.
type TechnologySource interface {
	Technologies(ctx context.Context) ([]Technology, error)
}

// ExplanationRecorder persists the explanation trail of a completed
// analysis. Implemented by the explanations service.
type ExplanationRecorder interface {
	RecordSession(ctx context.Context, result engine.Result) error
}

// Service runs analyses against the rules engine and persists each session
// wholesale before returning the aggregated view.
type Service struct {
	Engine       engine.Client
	Repo         Repo
	Technologies TechnologySource
	Recorder     ExplanationRecorder
}

func NewService(client engine.Client, repo Repo, techs TechnologySource, recorder ExplanationRecorder) *Service {
	return &Service{Engine: client, Repo: repo, Technologies: techs, Recorder: recorder}
}

// Analyze evaluates requirements against the engine, stores the resulting
// session and responds with the tri-partitioned recommendation view.
func (s *Service) Analyze(ctx context.Context, req engine.Requirements) (AnalysisResponse, error) {
	metrics.IncAnalyzeStarted()

	result, err := s.Engine.Analyze(ctx, req)
	if err != nil {
		metrics.IncAnalyzeFailed()
		return AnalysisResponse{}, err
	}
	if result.SessionID == "" {
		result.SessionID = uuid.NewString()
	}

	recs := fromEngineRecommendations(result.Recommendations)
	ordered := PartitionAndSort(recs)

	session := Session{
		ID:               result.SessionID,
		Requirements:     req,
		ExplanationChain: result.ExplanationChain,
		AuditLog:         result.AuditLog,
		RulesFired:       result.RulesFired,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.CreateSession(ctx, session, ordered.All); err != nil {
		metrics.IncAnalyzeFailed()
		return AnalysisResponse{}, fmt.Errorf("store session: %w", err)
	}
	if s.Recorder != nil {
		if err := s.Recorder.RecordSession(ctx, result); err != nil {
			// The analysis itself succeeded; a lost explanation trail
			// degrades the dashboard but must not fail the request.
			telemetry.Error("advisor.record_explanations", map[string]any{
				"session_id": session.ID,
				"error":      err.Error(),
			})
		}
	}

	metrics.IncAnalyzeCompleted()
	return AnalysisResponse{
		SessionID:        session.ID,
		Requirements:     req,
		Recommendations:  ordered.All,
		Summary:          Summarize(ordered),
		ExplanationChain: emptyIfNil(result.ExplanationChain),
		AuditLog:         emptyIfNil(result.AuditLog),
		RulesFired:       result.RulesFired,
	}, nil
}

// Recommendations returns the stored recommendations of one session, sorted
// the same way the analyze response was.
func (s *Service) Recommendations(ctx context.Context, sessionID string) ([]TechnologyRecommendation, error) {
	if _, err := s.Repo.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	recs, err := s.Repo.ListRecommendations(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return PartitionAndSort(recs).All, nil
}

// ListTechnologies exposes the catalog-backed technology descriptors.
func (s *Service) ListTechnologies(ctx context.Context) ([]Technology, error) {
	if s.Technologies == nil {
		return []Technology{}, nil
	}
	techs, err := s.Technologies.Technologies(ctx)
	if err != nil {
		return nil, err
	}
	if techs == nil {
		techs = []Technology{}
	}
	return techs, nil
}
