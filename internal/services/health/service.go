package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Service answers liveness checks. It ignores storage configuration, so a
// misconfigured instance still reports ok.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Status returns the liveness body.
func (s *Service) Status() string {
	return "ok"
}

// Handler serves Status as plain text.
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, s.Status())
	}
}
