package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/intake"
	"intake-backend/internal/services/health"
	"intake-backend/internal/shared/config"
	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/server/middleware"
)

const submitRateGroup = "SUBMIT"

// RouterDeps lists what NewRouter wires.
type RouterDeps struct {
	Config        config.Config
	IntakeHandler *intake.Handler
	Health        *health.Service
	RateLimiter   *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	// Registered before Use so health checks bypass logging and limits.
	r.GET("/health", healthSvc.Handler())

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: submitGroup,
			Limiter:  deps.RateLimiter,
			Rules: map[string]middleware.RateLimitRule{
				submitRateGroup: {
					Rate:  deps.Config.SubmitRatePerMinute / time.Minute.Seconds(),
					Burst: deps.Config.SubmitBurst,
				},
			},
		}),
		middleware.BodyLimit(deps.Config.MaxUploadBytes),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.IntakeHandler != nil {
		deps.IntakeHandler.RegisterRoutes(r)
	}

	return r
}

func submitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost {
		return submitRateGroup
	}
	return ""
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
