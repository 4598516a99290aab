package services

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/export"
)

// Section titles in the exported document.
const (
	titleKPIs                = "KPIs"
	titleBookingsTrend       = "Bookings by Category"
	titleRevenueTrend        = "Revenue by Week"
	titleRetention           = "Retention"
	titleTopServices         = "Top Services"
	titleStaffPerformance    = "Staff Performance"
	titleClientLTV           = "Client Lifetime Value"
	titleAtRiskClients       = "At-risk Clients"
	titleRebookingRate       = "Rebooking Rate"
	titleServiceMix          = "Service Mix"
	titleAttendance          = "Attendance"
	titleCancellationReasons = "Cancellation Reasons"
	titlePeakHours           = "Peak Hours"
	titlePeakDays            = "Peak Days"
	titleClientSources       = "Client Sources"
	titleAppointmentGaps     = "Appointment Gaps"
)

// BuildReport renders a dashboard into a multi-section export document.
// Failed sections become notes.
func BuildReport(d *Dashboard, author, currency string) *export.Report {
	r := &export.Report{
		Title:     "Studio Dashboard",
		Author:    author,
		CreatedAt: d.GeneratedAt,
		Style:     export.DefaultStyle(),
	}

	money := func(v int64) string {
		if currency == "" {
			return fmt.Sprintf("%d", v)
		}
		return fmt.Sprintf("%s %d", currency, v)
	}

	addSection(r, titleKPIs, d.KPIs, func(k *KPIReport) ([]string, [][]interface{}) {
		rows := make([][]interface{}, 0, len(k.Cards)+1)
		for _, c := range k.Cards {
			rows = append(rows, []interface{}{c.Title, c.Value, formatChange(c.Change)})
		}
		rows = append(rows, []interface{}{"Revenue Goal", money(k.Stats.RevenueGoal), fmt.Sprintf("%d%% reached", k.Stats.GoalProgress)})
		return []string{"Metric", "Value", "vs last month"}, rows
	})

	addSection(r, titleBookingsTrend, d.BookingsTrend, func(t *BookingsTrend) ([]string, [][]interface{}) {
		headers := []string{"Week"}
		for _, c := range analytics.Categories {
			headers = append(headers, string(c))
		}
		rows := make([][]interface{}, 0, len(t.Weeks))
		for _, w := range t.Weeks {
			row := []interface{}{w.Week}
			for _, c := range analytics.Categories {
				row = append(row, w.Count(c))
			}
			rows = append(rows, row)
		}
		return headers, rows
	})

	addSection(r, titleRevenueTrend, d.RevenueTrend, func(t *RevenueTrend) ([]string, [][]interface{}) {
		rows := make([][]interface{}, 0, len(t.Weeks))
		for _, w := range t.Weeks {
			rows = append(rows, []interface{}{w.Week, w.Revenue})
		}
		return []string{"Week", "Revenue"}, rows
	})

	addSection(r, titleRetention, d.Retention, func(weeks []analytics.RetentionWeek) ([]string, [][]interface{}) {
		rows := make([][]interface{}, 0, len(weeks))
		for _, w := range weeks {
			rows = append(rows, []interface{}{w.Week, w.Unique, w.New, w.Returning})
		}
		return []string{"Week", "Unique", "New", "Returning"}, rows
	})

	addSection(r, titleTopServices, d.TopServices, func(services []analytics.TopService) ([]string, [][]interface{}) {
		rows := make([][]interface{}, 0, len(services))
		for _, s := range services {
			rows = append(rows, []interface{}{s.Name, s.Category, s.Bookings, s.Revenue})
		}
		return []string{"Service", "Category", "Bookings", "Revenue"}, rows
	})

	addSection(r, titleStaffPerformance, d.StaffPerformance, func(staff []analytics.StaffPerformance) ([]string, [][]interface{}) {
		rows := make([][]interface{}, 0, len(staff))
		for _, s := range staff {
			rows = append(rows, []interface{}{s.Name, s.RoleLabel, s.Bookings, s.Revenue, s.AvgTicket, fmt.Sprintf("%d%%", s.Utilization)})
		}
		return []string{"Name", "Role", "Bookings", "Revenue", "Avg Ticket", "Utilization"}, rows
	})

	addSection(r, titleClientLTV, d.ClientLTV, func(clients []analytics.ClientValue) ([]string, [][]interface{}) {
		rows := make([][]interface{}, 0, len(clients))
		for _, c := range clients {
			rows = append(rows, []interface{}{c.Name, c.TotalSpent, c.Transactions})
		}
		return []string{"Client", "Total Spent", "Transactions"}, rows
	})

	addSection(r, titleAtRiskClients, d.AtRiskClients, func(clients []analytics.AtRiskClient) ([]string, [][]interface{}) {
		rows := make([][]interface{}, 0, len(clients))
		for _, c := range clients {
			rows = append(rows, []interface{}{c.Name, c.DaysSince, c.LastVisit, c.LastService, c.Urgency})
		}
		return []string{"Client", "Days Since", "Last Visit", "Last Service", "Urgency"}, rows
	})

	addSection(r, titleRebookingRate, d.RebookingRate, func(rates []analytics.RebookingRate) ([]string, [][]interface{}) {
		rows := make([][]interface{}, 0, len(rates))
		for _, s := range rates {
			rows = append(rows, []interface{}{s.Name, s.DistinctClients, s.RepeatClients, fmt.Sprintf("%d%%", s.Rate)})
		}
		return []string{"Service", "Clients", "Repeat Clients", "Rebooking Rate"}, rows
	})

	addSection(r, titleServiceMix, d.ServiceMix, func(mix *ServiceMix) ([]string, [][]interface{}) {
		rows := make([][]interface{}, 0, len(mix.Shares))
		for _, m := range mix.Shares {
			rows = append(rows, []interface{}{string(m.Category), m.Count, fmt.Sprintf("%d%%", m.Percent)})
		}
		return []string{"Category", "Bookings", "Share"}, rows
	})

	addSection(r, titleAttendance, d.Attendance, func(a *analytics.Attendance) ([]string, [][]interface{}) {
		return []string{"Outcome", "Bookings", "Share"}, [][]interface{}{
			{"Completed", a.Completed, fmt.Sprintf("%d%%", a.CompletedPercent)},
			{"No-show", a.NoShow, fmt.Sprintf("%d%%", a.NoShowPercent)},
			{"Cancelled", a.Cancelled, fmt.Sprintf("%d%%", a.CancelledPercent)},
			{"Revenue lost to no-shows", money(a.RevenueLost), ""},
		}
	})

	addSection(r, titleCancellationReasons, d.CancellationReasons, sharesTable("Reason"))

	if d.PeakTimes.OK() && d.PeakTimes.Data != nil {
		r.AddTable(titlePeakHours, []string{"Hour", "Bookings", "Load"}, bucketRows(d.PeakTimes.Data.Hours))
		r.AddTable(titlePeakDays, []string{"Day", "Bookings", "Load"}, bucketRows(d.PeakTimes.Data.Days))
	} else {
		addSection(r, titlePeakHours, d.PeakTimes, nil)
	}

	addSection(r, titleClientSources, d.ClientSources, sharesTable("Source"))

	addSection(r, titleAppointmentGaps, d.AppointmentGaps, func(g *analytics.AppointmentGaps) ([]string, [][]interface{}) {
		overall := "n/a"
		if g.Overall != nil {
			overall = fmt.Sprintf("%d", *g.Overall)
		}
		rows := [][]interface{}{{"Overall", overall, g.Samples}}
		for _, c := range g.ByCategory {
			rows = append(rows, []interface{}{string(c.Category), fmt.Sprintf("%d", c.AvgDays), c.Samples})
		}
		return []string{"Scope", "Avg Days", "Gaps"}, rows
	})

	return r
}

// addSection adds a table, or a note when the section failed or is empty.
// A nil table func only handles the failure case.
func addSection[T any](r *export.Report, title string, s Section[T], table func(T) ([]string, [][]interface{})) {
	if !s.OK() {
		r.AddNote(title, "Unavailable: "+s.Error)
		return
	}
	if table == nil {
		return
	}
	headers, rows := table(s.Data)
	if len(rows) == 0 {
		r.AddNote(title, "No data for this period")
		return
	}
	r.AddTable(title, headers, rows)
}

func sharesTable(label string) func([]analytics.LabeledShare) ([]string, [][]interface{}) {
	return func(shares []analytics.LabeledShare) ([]string, [][]interface{}) {
		rows := make([][]interface{}, 0, len(shares))
		for _, s := range shares {
			rows = append(rows, []interface{}{s.Label, s.Count, fmt.Sprintf("%d%%", s.Percent)})
		}
		return []string{label, "Count", "Share"}, rows
	}
}

func bucketRows(buckets []analytics.PeakBucket) [][]interface{} {
	rows := make([][]interface{}, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []interface{}{b.Label, b.Count, b.Load})
	}
	return rows
}

func formatChange(change *int) string {
	if change == nil {
		return "n/a"
	}
	if *change > 0 {
		return fmt.Sprintf("+%d%%", *change)
	}
	return fmt.Sprintf("%d%%", *change)
}
