package intake

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/server/middleware"
	"intake-backend/internal/shared/server/respond"
	"intake-backend/internal/shared/server/views"
	"intake-backend/internal/shared/telemetry"
)

const defaultGreeting = "there"

// Handler serves the intake form and accepts submissions.
type Handler struct {
	Svc     *Service
	TempDir string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, tempDir string) *Handler {
	return &Handler{Svc: svc, TempDir: tempDir}
}

// RegisterRoutes attaches the form routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.form)
	r.POST("/", h.submit)
}

// SuccessPage is the data passed to the success view.
type SuccessPage struct {
	BusinessName string
	Namespace    string
	Files        int
}

func (h *Handler) form(c *gin.Context) {
	views.Render(c, http.StatusOK, views.Form, nil)
}

func (h *Handler) submit(c *gin.Context) {
	start := time.Now()
	metrics.IncSubmissionReceived()
	ctx := c.Request.Context()

	backend, err := h.Svc.Backend(ctx)
	if err != nil {
		h.fail(c, start, http.StatusInternalServerError, err)
		return
	}

	sub, err := ParseSubmission(c.Request, h.TempDir)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || middleware.BodyLimitExceeded(c) {
			h.fail(c, start, http.StatusRequestEntityTooLarge, err)
			return
		}
		h.fail(c, start, http.StatusInternalServerError, err)
		return
	}
	defer sub.Close()
	sub.ReceivedAt = h.Svc.now()
	sub.RequestID = middleware.RequestIDFromContext(c)

	res, err := h.Svc.Store(ctx, backend, sub)
	if res.Namespace != "" {
		c.Set(middleware.NamespaceKey, res.Namespace)
	}
	if err != nil {
		h.fail(c, start, http.StatusInternalServerError, err)
		return
	}

	metrics.IncSubmissionSucceeded()
	metrics.ObserveSubmissionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("intake.submit.stored", map[string]any{
		"request_id": sub.RequestID,
		"namespace":  res.Namespace,
		"files":      len(res.Files),
	})

	greeting := defaultGreeting
	if name, ok := sub.Value(BusinessNameField); ok {
		greeting = name
	}
	views.Render(c, http.StatusOK, views.Success, SuccessPage{
		BusinessName: greeting,
		Namespace:    res.Namespace,
		Files:        len(res.Files),
	})
}

func (h *Handler) fail(c *gin.Context, start time.Time, status int, err error) {
	metrics.IncSubmissionFailed()
	metrics.ObserveSubmissionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	respond.Error(c, status, "submission_failed", err.Error())
}
