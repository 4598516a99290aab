package handlers

import (
	"context"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/models"
	"github.com/gofiber/fiber/v2"
)

// SnapshotLister lists stored KPI snapshots
type SnapshotLister interface {
	List(ctx context.Context, filter models.SnapshotFilter) ([]models.AnalyticsSnapshot, error)
}

type SnapshotHandler struct {
	snapshots SnapshotLister
}

func NewSnapshotHandler(snapshots SnapshotLister) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

// ListSnapshots godoc
// @Summary Daily KPI snapshots
// @Description Newest first
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Snapshot kind" default(kpis)
// @Param limit query int false "Max rows" default(30)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /analytics/snapshots [get]
func (h *SnapshotHandler) ListSnapshots(c *fiber.Ctx) error {
	filter := models.SnapshotFilter{
		Kind:  c.Query("kind", models.SnapshotKindKPI),
		Limit: c.QueryInt("limit", 0),
	}

	snapshots, err := h.snapshots.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}
