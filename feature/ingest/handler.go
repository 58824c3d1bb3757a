package ingest

import (
	"context"
	"errors"

	"feedme/core/feed"
	"feedme/core/logger"
	"feedme/core/reader"

	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for ingest cycles.
type Handler struct {
	service *Service
	cfg     Config
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, cfg Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the ingest routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/ingest")
	group.Post("/", h.HandleRunCycle)
	group.Get("/continuation", h.HandleContinuation)
}

// HandleRunCycle runs one cycle and returns its result.
// @Summary Run Ingest Cycle
// @Description Fetch the next reading-list page and reconcile it into the entry store. Concurrent calls share one cycle.
// @Tags ingest
// @Produce json
// @Security ApiKeyAuth
// @Param dry_run query bool false "Plan the reconcile without writing"
// @Success 200 {object} ingest.CycleResult "Cycle Result"
// @Failure 502 {object} map[string]string "Upstream or Feed Format Error"
// @Failure 503 {object} map[string]string "Missing Auth Token"
// @Failure 504 {object} map[string]string "Cycle Timeout"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ingest [post]
func (h *Handler) HandleRunCycle(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	opts := CycleOptions{DryRun: c.QueryBool("dry_run", false)}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.cfg.CycleTimeout())
	defer cancel()

	result, err := h.service.RunCycle(ctx, opts)
	if err != nil {
		l.Error("Ingest cycle request failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// HandleContinuation returns the stored continuation token.
// @Summary Get Continuation
// @Description Get the continuation token the next cycle resumes from.
// @Tags ingest
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string "Account and Continuation"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ingest/continuation [get]
func (h *Handler) HandleContinuation(c *fiber.Ctx) error {
	token, err := h.service.Continuation(c.UserContext())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to load continuation", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"account":      h.service.Account(),
		"continuation": token,
	})
}

// statusFor maps cycle errors to HTTP status codes.
func statusFor(err error) int {
	var reqErr *reader.RequestError
	switch {
	case errors.Is(err, reader.ErrMissingAuthToken):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &reqErr),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, feed.ErrInvalidFeedFormat):
		return fiber.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
