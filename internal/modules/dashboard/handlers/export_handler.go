package handlers

import (
	"context"
	"fmt"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/export"
	"github.com/gofiber/fiber/v2"
)

// DashboardExporter renders the dashboard to a file
type DashboardExporter interface {
	Export(ctx context.Context, format export.Format, req audit.RequestInfo) (*export.File, error)
}

type ExportHandler struct {
	exporter DashboardExporter
	now      func() string
}

func NewExportHandler(exporter DashboardExporter, now func() string) *ExportHandler {
	return &ExportHandler{exporter: exporter, now: now}
}

// ExportDashboard godoc
// @Summary Export the dashboard
// @Description Downloads every report as an Excel workbook (one sheet per report) or a PDF
// @Tags Analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "excel or pdf" default(excel)
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /analytics/export [get]
func (h *ExportHandler) ExportDashboard(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format", string(export.FormatExcel)))
	if err != nil {
		return writeError(c, err)
	}

	file, err := h.exporter.Export(c.UserContext(), format, audit.RequestInfo{
		IPAddress: c.IP(),
		Endpoint:  c.Path(),
	})
	if err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("dashboard-%s%s", h.now(), file.Extension)
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(file.Data)
}
