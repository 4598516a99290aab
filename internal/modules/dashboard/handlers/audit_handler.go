package handlers

import (
	"context"
	"time"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/audit"
	"github.com/gofiber/fiber/v2"
)

// AuditReader pages through audit logs
type AuditReader interface {
	GetLogs(ctx context.Context, filter audit.Filter) (*audit.LogPage, error)
}

type AuditHandler struct {
	audit AuditReader
}

func NewAuditHandler(audit AuditReader) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// GetLogs godoc
// @Summary Audit logs
// @Description Exports and snapshot captures, newest first. Admin only.
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "User ID"
// @Param action query string false "Action (export, snapshot)"
// @Param entity query string false "Entity"
// @Param start_date query string false "From date (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "To date (YYYY-MM-DD or RFC3339)"
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(50)
// @Success 200 {object} audit.LogPage
// @Failure 400 {object} map[string]interface{}
// @Router /audit-logs [get]
func (h *AuditHandler) GetLogs(c *fiber.Ctx) error {
	filter := audit.Filter{
		UserID:   c.Query("user_id"),
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 50),
	}

	var err error
	if filter.StartDate, err = parseDateParam(c.Query("start_date")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid start_date"})
	}
	if filter.EndDate, err = parseDateParam(c.Query("end_date")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid end_date"})
	}

	page, err := h.audit.GetLogs(c.UserContext(), filter)
	return respond(c, page, err)
}

func parseDateParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
