package handlers

import (
	"context"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/services"
	"github.com/gofiber/fiber/v2"
)

// AnalyticsReader is the report surface served over HTTP
type AnalyticsReader interface {
	Dashboard(ctx context.Context) (*services.Dashboard, error)
	GetKPIs(ctx context.Context) (*services.KPIReport, error)
	GetBookingsTrend(ctx context.Context) (*services.BookingsTrend, error)
	GetRevenueTrend(ctx context.Context) (*services.RevenueTrend, error)
	GetRetention(ctx context.Context) ([]analytics.RetentionWeek, error)
	GetTopServices(ctx context.Context) ([]analytics.TopService, error)
	GetStaffPerformance(ctx context.Context) ([]analytics.StaffPerformance, error)
	GetClientLTV(ctx context.Context) ([]analytics.ClientValue, error)
	GetAtRiskClients(ctx context.Context) ([]analytics.AtRiskClient, error)
	GetRebookingRates(ctx context.Context) ([]analytics.RebookingRate, error)
	GetServiceMix(ctx context.Context) (*services.ServiceMix, error)
	GetAttendance(ctx context.Context) (*analytics.Attendance, error)
	GetCancellationReasons(ctx context.Context) ([]analytics.LabeledShare, error)
	GetPeakTimes(ctx context.Context) (*analytics.PeakTimes, error)
	GetClientSources(ctx context.Context) ([]analytics.LabeledShare, error)
	GetAppointmentGaps(ctx context.Context) (*analytics.AppointmentGaps, error)
}

type AnalyticsHandler struct {
	analytics AnalyticsReader
}

func NewAnalyticsHandler(analytics AnalyticsReader) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Register mounts the report routes on r
func (h *AnalyticsHandler) Register(r fiber.Router) {
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/bookings-trend", h.GetBookingsTrend)
	r.Get("/revenue-trend", h.GetRevenueTrend)
	r.Get("/retention", h.GetRetention)
	r.Get("/top-services", h.GetTopServices)
	r.Get("/staff-performance", h.GetStaffPerformance)
	r.Get("/client-ltv", h.GetClientLTV)
	r.Get("/at-risk-clients", h.GetAtRiskClients)
	r.Get("/rebooking-rate", h.GetRebookingRate)
	r.Get("/service-mix", h.GetServiceMix)
	r.Get("/attendance", h.GetAttendance)
	r.Get("/cancellation-reasons", h.GetCancellationReasons)
	r.Get("/peak-times", h.GetPeakTimes)
	r.Get("/client-sources", h.GetClientSources)
	r.Get("/appointment-gaps", h.GetAppointmentGaps)
}

// GetDashboard godoc
// @Summary Full dashboard
// @Description Computes every report. A failing report only fails its own section.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Dashboard
// @Failure 401 {object} map[string]interface{}
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	d, err := h.analytics.Dashboard(c.UserContext())
	return respond(c, d, err)
}

// GetKPIs godoc
// @Summary Month-to-date KPIs
// @Description Revenue, bookings, new clients, no-show rate, fill rate and average ticket compared with the prior month
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.KPIReport
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /analytics/kpis [get]
func (h *AnalyticsHandler) GetKPIs(c *fiber.Ctx) error {
	k, err := h.analytics.GetKPIs(c.UserContext())
	return respond(c, k, err)
}

// GetBookingsTrend godoc
// @Summary Weekly bookings by category
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.BookingsTrend
// @Router /analytics/bookings-trend [get]
func (h *AnalyticsHandler) GetBookingsTrend(c *fiber.Ctx) error {
	t, err := h.analytics.GetBookingsTrend(c.UserContext())
	return respond(c, t, err)
}

// GetRevenueTrend godoc
// @Summary Weekly paid revenue
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.RevenueTrend
// @Router /analytics/revenue-trend [get]
func (h *AnalyticsHandler) GetRevenueTrend(c *fiber.Ctx) error {
	t, err := h.analytics.GetRevenueTrend(c.UserContext())
	return respond(c, t, err)
}

// GetRetention godoc
// @Summary Weekly new and returning clients
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analytics.RetentionWeek
// @Router /analytics/retention [get]
func (h *AnalyticsHandler) GetRetention(c *fiber.Ctx) error {
	weeks, err := h.analytics.GetRetention(c.UserContext())
	return respond(c, weeks, err)
}

// GetTopServices godoc
// @Summary Top services of the last 30 days
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analytics.TopService
// @Router /analytics/top-services [get]
func (h *AnalyticsHandler) GetTopServices(c *fiber.Ctx) error {
	top, err := h.analytics.GetTopServices(c.UserContext())
	return respond(c, top, err)
}

// GetStaffPerformance godoc
// @Summary Staff performance of the last 30 days
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analytics.StaffPerformance
// @Router /analytics/staff-performance [get]
func (h *AnalyticsHandler) GetStaffPerformance(c *fiber.Ctx) error {
	staff, err := h.analytics.GetStaffPerformance(c.UserContext())
	return respond(c, staff, err)
}

// GetClientLTV godoc
// @Summary Top clients by lifetime paid value
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analytics.ClientValue
// @Router /analytics/client-ltv [get]
func (h *AnalyticsHandler) GetClientLTV(c *fiber.Ctx) error {
	clients, err := h.analytics.GetClientLTV(c.UserContext())
	return respond(c, clients, err)
}

// GetAtRiskClients godoc
// @Summary Clients with no completed visit in over 30 days
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analytics.AtRiskClient
// @Router /analytics/at-risk-clients [get]
func (h *AnalyticsHandler) GetAtRiskClients(c *fiber.Ctx) error {
	clients, err := h.analytics.GetAtRiskClients(c.UserContext())
	return respond(c, clients, err)
}

// GetRebookingRate godoc
// @Summary Share of clients who rebooked each service
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analytics.RebookingRate
// @Router /analytics/rebooking-rate [get]
func (h *AnalyticsHandler) GetRebookingRate(c *fiber.Ctx) error {
	rates, err := h.analytics.GetRebookingRates(c.UserContext())
	return respond(c, rates, err)
}

// GetServiceMix godoc
// @Summary Booking share per category
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.ServiceMix
// @Router /analytics/service-mix [get]
func (h *AnalyticsHandler) GetServiceMix(c *fiber.Ctx) error {
	mix, err := h.analytics.GetServiceMix(c.UserContext())
	return respond(c, mix, err)
}

// GetAttendance godoc
// @Summary Completed, no-show and cancelled bookings
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analytics.Attendance
// @Router /analytics/attendance [get]
func (h *AnalyticsHandler) GetAttendance(c *fiber.Ctx) error {
	a, err := h.analytics.GetAttendance(c.UserContext())
	return respond(c, a, err)
}

// GetCancellationReasons godoc
// @Summary Cancellation reasons
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analytics.LabeledShare
// @Router /analytics/cancellation-reasons [get]
func (h *AnalyticsHandler) GetCancellationReasons(c *fiber.Ctx) error {
	reasons, err := h.analytics.GetCancellationReasons(c.UserContext())
	return respond(c, reasons, err)
}

// GetPeakTimes godoc
// @Summary Busiest hours and weekdays
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analytics.PeakTimes
// @Router /analytics/peak-times [get]
func (h *AnalyticsHandler) GetPeakTimes(c *fiber.Ctx) error {
	peaks, err := h.analytics.GetPeakTimes(c.UserContext())
	return respond(c, peaks, err)
}

// GetClientSources godoc
// @Summary Client acquisition sources
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analytics.LabeledShare
// @Router /analytics/client-sources [get]
func (h *AnalyticsHandler) GetClientSources(c *fiber.Ctx) error {
	sources, err := h.analytics.GetClientSources(c.UserContext())
	return respond(c, sources, err)
}

// GetAppointmentGaps godoc
// @Summary Average days between completed visits
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analytics.AppointmentGaps
// @Router /analytics/appointment-gaps [get]
func (h *AnalyticsHandler) GetAppointmentGaps(c *fiber.Ctx) error {
	gaps, err := h.analytics.GetAppointmentGaps(c.UserContext())
	return respond(c, gaps, err)
}
