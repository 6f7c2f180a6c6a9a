package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/advisor"
	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/explanations"
	"stackadvisor-backend/internal/shared/config"
	"stackadvisor-backend/internal/shared/metrics"
	"stackadvisor-backend/internal/shared/server/middleware"
	"stackadvisor-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Cfg          config.Config
	Advisor      *advisor.Handler
	Explanations *explanations.Handler
	Catalog      *catalog.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Cfg.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	stackAdvisor := api.Group("/stack-advisor")
	deps.Advisor.RegisterRoutes(stackAdvisor)
	deps.Explanations.RegisterAdvisorRoutes(stackAdvisor)
	deps.Explanations.RegisterRoutes(api.Group("/explanations"))
	deps.Catalog.RegisterRoutes(api)

	return r
}

// rateLimitConfig keeps analyze calls, which fan out to the rules engine,
// on a tighter budget than plain reads.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/stack-advisor/analyze" {
				return "ANALYZE"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 20, Burst: 40},
			"ANALYZE": {Rate: 1, Burst: 5},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
