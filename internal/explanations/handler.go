package explanations

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the explanation dashboard routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/session/:sessionId", h.sessionView)
	rg.GET("/session/:sessionId/summary", h.sessionSummary)
	rg.GET("/recent-sessions", h.recentSessions)
}

// RegisterAdvisorRoutes attaches the rule-log view served under the
// stack-advisor prefix.
func (h *Handler) RegisterAdvisorRoutes(rg *gin.RouterGroup) {
	rg.GET("/explanation/:sessionId", h.ruleLogs)
}

func (h *Handler) sessionView(c *gin.Context) {
	filter, ok := filterFromQuery(c)
	if !ok {
		return
	}
	sessionID := c.Param("sessionId")
	view, err := h.Svc.SessionView(c.Request.Context(), sessionID, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load session explanations", nil)
		return
	}
	c.Set("sessionId", sessionID)
	respond.OK(c, view)
}

func (h *Handler) sessionSummary(c *gin.Context) {
	sessionID := c.Param("sessionId")
	summary, err := h.Svc.Summary(c.Request.Context(), sessionID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build session summary", nil)
		return
	}
	c.Set("sessionId", sessionID)
	respond.OK(c, summary)
}

func (h *Handler) recentSessions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}
	sessions, err := h.Svc.Recent(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list recent sessions", nil)
		return
	}
	respond.OK(c, gin.H{"sessions": sessions, "total": len(sessions)})
}

func (h *Handler) ruleLogs(c *gin.Context) {
	sessionID := c.Param("sessionId")
	logs, err := h.Svc.RuleLogs(c.Request.Context(), sessionID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load rule logs", nil)
		return
	}
	c.Set("sessionId", sessionID)
	respond.OK(c, logs)
}

func filterFromQuery(c *gin.Context) (Filter, bool) {
	filter := Filter{
		Type:         c.Query("type"),
		NameContains: c.Query("search"),
	}
	if raw := c.Query("minScore"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "minScore must be a number", nil)
			return Filter{}, false
		}
		filter.MinScore = &value
	}
	if raw := c.Query("maxScore"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "maxScore must be a number", nil)
			return Filter{}, false
		}
		filter.MaxScore = &value
	}
	return filter, true
}
