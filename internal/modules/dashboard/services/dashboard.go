package services

import (
	"context"
	"time"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/utils"
	"golang.org/x/sync/errgroup"
)

// Section holds one report of the dashboard. Exactly one of Data and Error is set.
type Section[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error,omitempty"`
}

// OK reports whether the section was produced
func (s Section[T]) OK() bool {
	return s.Error == ""
}

func newSection[T any](data T, err error) Section[T] {
	if err != nil {
		return Section[T]{Error: err.Error()}
	}
	return Section[T]{Data: data}
}

// fill runs one report into its section. The task never returns an error so
// a failed report does not cancel its siblings.
func fill[T any](ctx context.Context, dst *Section[T], report func(context.Context) (T, error)) func() error {
	return func() error {
		data, err := report(ctx)
		*dst = newSection(data, err)
		return nil
	}
}

// Dashboard is every report computed for one request
type Dashboard struct {
	GeneratedAt         time.Time                             `json:"generated_at"`
	KPIs                Section[*KPIReport]                   `json:"kpis"`
	BookingsTrend       Section[*BookingsTrend]               `json:"bookings_trend"`
	RevenueTrend        Section[*RevenueTrend]                `json:"revenue_trend"`
	Retention           Section[[]analytics.RetentionWeek]    `json:"retention"`
	TopServices         Section[[]analytics.TopService]       `json:"top_services"`
	StaffPerformance    Section[[]analytics.StaffPerformance] `json:"staff_performance"`
	ClientLTV           Section[[]analytics.ClientValue]      `json:"client_ltv"`
	AtRiskClients       Section[[]analytics.AtRiskClient]     `json:"at_risk_clients"`
	RebookingRate       Section[[]analytics.RebookingRate]    `json:"rebooking_rate"`
	ServiceMix          Section[*ServiceMix]                  `json:"service_mix"`
	Attendance          Section[*analytics.Attendance]        `json:"attendance"`
	CancellationReasons Section[[]analytics.LabeledShare]     `json:"cancellation_reasons"`
	PeakTimes           Section[*analytics.PeakTimes]         `json:"peak_times"`
	ClientSources       Section[[]analytics.LabeledShare]     `json:"client_sources"`
	AppointmentGaps     Section[*analytics.AppointmentGaps]   `json:"appointment_gaps"`
}

// Failed lists the sections that could not be produced
func (d *Dashboard) Failed() []string {
	checks := []struct {
		name string
		ok   bool
	}{
		{ReportKPIs, d.KPIs.OK()},
		{ReportBookingsTrend, d.BookingsTrend.OK()},
		{ReportRevenueTrend, d.RevenueTrend.OK()},
		{ReportRetention, d.Retention.OK()},
		{ReportTopServices, d.TopServices.OK()},
		{ReportStaffPerformance, d.StaffPerformance.OK()},
		{ReportClientLTV, d.ClientLTV.OK()},
		{ReportAtRiskClients, d.AtRiskClients.OK()},
		{ReportRebookingRate, d.RebookingRate.OK()},
		{ReportServiceMix, d.ServiceMix.OK()},
		{ReportAttendance, d.Attendance.OK()},
		{ReportCancellationReasons, d.CancellationReasons.OK()},
		{ReportPeakTimes, d.PeakTimes.OK()},
		{ReportClientSources, d.ClientSources.OK()},
		{ReportAppointmentGaps, d.AppointmentGaps.OK()},
	}

	var failed []string
	for _, c := range checks {
		if !c.ok {
			failed = append(failed, c.name)
		}
	}
	return failed
}

// Dashboard computes all reports with at most Options.Concurrency running at
// once. A failing report only fails its own section.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	if _, err := auth.RequireUser(ctx); err != nil {
		return nil, err
	}

	d := &Dashboard{GeneratedAt: s.clock.Now()}

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	g.Go(fill(ctx, &d.KPIs, s.GetKPIs))
	g.Go(fill(ctx, &d.BookingsTrend, s.GetBookingsTrend))
	g.Go(fill(ctx, &d.RevenueTrend, s.GetRevenueTrend))
	g.Go(fill(ctx, &d.Retention, s.GetRetention))
	g.Go(fill(ctx, &d.TopServices, s.GetTopServices))
	g.Go(fill(ctx, &d.StaffPerformance, s.GetStaffPerformance))
	g.Go(fill(ctx, &d.ClientLTV, s.GetClientLTV))
	g.Go(fill(ctx, &d.AtRiskClients, s.GetAtRiskClients))
	g.Go(fill(ctx, &d.RebookingRate, s.GetRebookingRates))
	g.Go(fill(ctx, &d.ServiceMix, s.GetServiceMix))
	g.Go(fill(ctx, &d.Attendance, s.GetAttendance))
	g.Go(fill(ctx, &d.CancellationReasons, s.GetCancellationReasons))
	g.Go(fill(ctx, &d.PeakTimes, s.GetPeakTimes))
	g.Go(fill(ctx, &d.ClientSources, s.GetClientSources))
	g.Go(fill(ctx, &d.AppointmentGaps, s.GetAppointmentGaps))

	_ = g.Wait()

	if failed := d.Failed(); len(failed) > 0 {
		utils.LogWarn("Dashboard built with failed sections", map[string]interface{}{
			"failed": failed,
		})
	}
	return d, nil
}
