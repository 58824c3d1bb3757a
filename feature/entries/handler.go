package entries

import (
	"strconv"

	"feedme/core/feed"
	"feedme/core/logger"
	"feedme/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for entries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the entry routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/entries")
	group.Get("/", h.HandleList)
	group.Get("/stats", h.HandleStats)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id/status", h.HandleSetStatus)
}

// StatusRequest is the body of a status change.
type StatusRequest struct {
	Status string `json:"status"`
}

// HandleList returns entries newest first.
// @Summary List Entries
// @Description List stored entries, newest first.
// @Tags entries
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Status filter" Enums(unread, read, pending_delete, pending_starred)
// @Param limit query int false "Page size (max 500)" default(50)
// @Param offset query int false "Entries to skip" default(0)
// @Success 200 {object} map[string]interface{} "Entries and Count"
// @Failure 400 {object} map[string]string "Unknown Status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /entries [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	filter := store.ListFilter{
		Limit:  c.QueryInt("limit", store.DefaultListLimit),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := feed.ParseStatus(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		filter.Status = status
	}

	records, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		l.Error("Failed to list entries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"entries": records,
		"count":   len(records),
	})
}

// HandleStats returns entry counts per status.
// @Summary Entry Stats
// @Description Count stored entries per status.
// @Tags entries
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} entries.Stats "Counts"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /entries/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to count entries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// HandleGet returns one entry by local id.
// @Summary Get Entry
// @Description Get one stored entry by its local id.
// @Tags entries
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} reconcile.StoredRecord "Entry"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /entries/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, "Failed to get entry")
	}
	return c.JSON(record)
}

// HandleSetStatus changes the status of one entry.
// @Summary Set Entry Status
// @Description Change the status of one stored entry.
// @Tags entries
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Entry ID"
// @Param request body entries.StatusRequest true "New Status"
// @Success 200 {object} reconcile.StoredRecord "Updated Entry"
// @Failure 400 {object} map[string]string "Invalid ID or Status"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /entries/{id}/status [put]
func (h *Handler) HandleSetStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	status, err := feed.ParseStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := h.service.SetStatus(c.UserContext(), id, status)
	if err != nil {
		return h.fail(c, err, "Failed to set entry status")
	}
	return c.JSON(record)
}

func (h *Handler) fail(c *fiber.Ctx, err error, msg string) error {
	if IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid entry id")
	}
	return uint(id), nil
}
