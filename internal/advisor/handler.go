package advisor

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/engine"
	"stackadvisor-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the stack-advisor routes. The rule-log view of a
// session lives with the explanations handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/recommendations/:sessionId", h.recommendations)
	rg.GET("/technologies", h.technologies)
}

func (h *Handler) analyze(c *gin.Context) {
	var req engine.Requirements
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.ProjectType) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "projectType is required", nil)
		return
	}

	resp, err := h.Svc.Analyze(c.Request.Context(), req)
	if err != nil {
		var engineErr *engine.Error
		if errors.As(err, &engineErr) {
			respond.Error(c, http.StatusBadGateway, "engine_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store analysis session", nil)
		return
	}

	c.Set("sessionId", resp.SessionID)
	c.Set("rulesFired", resp.RulesFired)
	respond.OK(c, resp)
}

func (h *Handler) recommendations(c *gin.Context) {
	sessionID := c.Param("sessionId")
	recs, err := h.Svc.Recommendations(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load recommendations", nil)
		return
	}
	c.Set("sessionId", sessionID)
	respond.OK(c, recs)
}

func (h *Handler) technologies(c *gin.Context) {
	techs, err := h.Svc.ListTechnologies(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load technologies", nil)
		return
	}
	respond.OK(c, techs)
}
