package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/models"
	"gorm.io/gorm"
)

// AnalyticsRepo interface defines the read-only queries behind each report.
// Every method returns raw rows; the analytics package turns them into DTOs.
type AnalyticsRepo interface {
	PeriodTotals(ctx context.Context, w analytics.Window) (analytics.PeriodTotals, error)
	BookingsByWeekCategory(ctx context.Context, w analytics.Window) ([]analytics.WeekCategoryCount, error)
	RevenueByWeek(ctx context.Context, w analytics.Window) ([]analytics.WeekAmount, error)
	WeeklyClientVisits(ctx context.Context, w analytics.Window) ([]analytics.WeeklyClientVisit, error)
	ServiceTallies(ctx context.Context, w analytics.Window) ([]analytics.ServiceTally, error)
	StaffTallies(ctx context.Context, w analytics.Window) ([]analytics.StaffTally, error)
	ClientSpend(ctx context.Context, limit int) ([]analytics.ClientSpend, error)
	ClientLastVisits(ctx context.Context, cutoff time.Time, limit int) ([]analytics.ClientLastVisit, error)
	ServiceRebookings(ctx context.Context, limit int) ([]analytics.ServiceRebooking, error)
	CategoryCounts(ctx context.Context, w analytics.Window) ([]analytics.CategoryCount, error)
	AttendanceTotals(ctx context.Context, w analytics.Window) (analytics.AttendanceTotals, error)
	CancellationReasons(ctx context.Context) ([]analytics.ReasonCount, error)
	HourCounts(ctx context.Context, w analytics.Window) ([]analytics.HourCount, error)
	WeekdayCounts(ctx context.Context, w analytics.Window) ([]analytics.WeekdayCount, error)
	SourceCounts(ctx context.Context) ([]analytics.SourceCount, error)
	CompletedVisits(ctx context.Context, w analytics.Window) ([]analytics.CompletedVisit, error)
	RevenueGoal(ctx context.Context) (int64, error)
}

type analyticsRepo struct {
	db       *gorm.DB
	agg      *analytics.Aggregator
	timezone string
}

// NewAnalyticsRepo creates a new analytics repository. timezone is the IANA
// zone used for week, hour and weekday bucketing.
func NewAnalyticsRepo(db *gorm.DB, timezone string) AnalyticsRepo {
	if timezone == "" || timezone == "Local" {
		timezone = "UTC"
	}
	return &analyticsRepo{db: db, agg: analytics.NewAggregator(db), timezone: timezone}
}

// PeriodTotals gathers the KPI inputs for one window
func (r *analyticsRepo) PeriodTotals(ctx context.Context, w analytics.Window) (analytics.PeriodTotals, error) {
	var totals analytics.PeriodTotals
	paid := []analytics.Filter{analytics.Eq("status", paidStatus)}
	paymentRange := w.DateRange(paymentDateExpr)

	var err error
	if totals.RevenueCents, err = r.agg.SumInt(ctx, "payments", "amount_cents", paid, paymentRange); err != nil {
		return totals, err
	}
	if totals.PaidTransactions, err = r.agg.Count(ctx, "payments", paid, paymentRange); err != nil {
		return totals, err
	}
	if totals.BookingCount, err = r.agg.Count(ctx, "bookings", nil, w.DateRange(bookingDateColumn)); err != nil {
		return totals, err
	}
	totals.NewClients, err = r.agg.Count(ctx, "profiles",
		[]analytics.Filter{analytics.Eq("role", clientRole)}, w.DateRange(profileDateColumn))
	if err != nil {
		return totals, err
	}

	var byStatus []struct {
		Status string
		Count  int64
	}
	err = r.agg.Aggregate(ctx, analytics.AggregateQuery{
		Table:      "bookings",
		GroupBy:    []string{"status"},
		Aggregates: []analytics.Aggregate{{Alias: "count", Expr: "COUNT(*)"}},
		Filters:    []analytics.Filter{analytics.Where("status = ANY(?)", finalizedStatuses)},
		DateRange:  w.DateRange(bookingDateColumn),
	}, &byStatus)
	if err != nil {
		return totals, err
	}
	for _, s := range byStatus {
		switch s.Status {
		case completedStatus:
			totals.Completed = s.Count
		case noShowStatus:
			totals.NoShow = s.Count
		case cancelledStatus:
			totals.Cancelled = s.Count
		}
	}

	return totals, nil
}

// BookingsByWeekCategory counts bookings per local week and category
func (r *analyticsRepo) BookingsByWeekCategory(ctx context.Context, w analytics.Window) ([]analytics.WeekCategoryCount, error) {
	var rows []analytics.WeekCategoryCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT date_trunc('week', b.start_time AT TIME ZONE ?) AS week_start,
		       s.category AS category,
		       COUNT(*) AS count
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE b.start_time >= ? AND b.start_time < ?
		GROUP BY 1, 2
		ORDER BY 1`, r.timezone, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("bookings by week and category: %w", err)
	}
	return rows, nil
}

// RevenueByWeek sums paid payments per local week of payment
func (r *analyticsRepo) RevenueByWeek(ctx context.Context, w analytics.Window) ([]analytics.WeekAmount, error) {
	var rows []analytics.WeekAmount
	err := r.db.WithContext(ctx).Raw(`
		SELECT date_trunc('week', `+paymentDateExpr+` AT TIME ZONE ?) AS week_start,
		       COALESCE(SUM(amount_cents), 0) AS amount_cents
		FROM payments
		WHERE status = ? AND `+paymentDateExpr+` >= ? AND `+paymentDateExpr+` < ?
		GROUP BY 1
		ORDER BY 1`, r.timezone, paidStatus, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("revenue by week: %w", err)
	}
	return rows, nil
}

// WeeklyClientVisits lists each (week, client) pair in the window with the
// client's first booking of any status
func (r *analyticsRepo) WeeklyClientVisits(ctx context.Context, w analytics.Window) ([]analytics.WeeklyClientVisit, error) {
	var rows []analytics.WeeklyClientVisit
	err := r.db.WithContext(ctx).Raw(`
		WITH first_visit AS (
			SELECT client_id, MIN(start_time) AS first_booking_at
			FROM bookings
			GROUP BY client_id
		)
		SELECT DISTINCT date_trunc('week', b.start_time AT TIME ZONE ?) AS week_start,
		       b.client_id::text AS client_id,
		       fv.first_booking_at AT TIME ZONE ? AS first_booking_at
		FROM bookings b
		JOIN first_visit fv ON fv.client_id = b.client_id
		WHERE b.start_time >= ? AND b.start_time < ?
		ORDER BY 1`, r.timezone, r.timezone, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("weekly client visits: %w", err)
	}
	return rows, nil
}

// ServiceTallies counts bookings per service; revenue is from completed ones
func (r *analyticsRepo) ServiceTallies(ctx context.Context, w analytics.Window) ([]analytics.ServiceTally, error) {
	var rows []analytics.ServiceTally
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.id::text AS service_id, s.name, s.category,
		       COUNT(b.id) AS bookings,
		       COALESCE(SUM(b.total_price_cents) FILTER (WHERE b.status = ?), 0) AS revenue_cents
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE b.start_time >= ? AND b.start_time < ?
		GROUP BY s.id, s.name, s.category
		ORDER BY bookings DESC`, completedStatus, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("service tallies: %w", err)
	}
	return rows, nil
}

// StaffTallies aggregates bookings per staff member
func (r *analyticsRepo) StaffTallies(ctx context.Context, w analytics.Window) ([]analytics.StaffTally, error) {
	var rows []analytics.StaffTally
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id::text AS staff_id, p.first_name, p.last_name, p.role,
		       COUNT(b.id) AS bookings,
		       COALESCE(SUM(b.total_price_cents) FILTER (WHERE b.status = ?), 0) AS revenue_cents,
		       COUNT(*) FILTER (WHERE b.status = ?) AS completed,
		       COUNT(*) FILTER (WHERE b.status = ?) AS no_show,
		       COUNT(*) FILTER (WHERE b.status = ?) AS cancelled
		FROM bookings b
		JOIN profiles p ON p.id = b.staff_id
		WHERE b.start_time >= ? AND b.start_time < ?
		GROUP BY p.id, p.first_name, p.last_name, p.role
		ORDER BY bookings DESC`,
		completedStatus, completedStatus, noShowStatus, cancelledStatus, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("staff tallies: %w", err)
	}
	return rows, nil
}

// ClientSpend ranks clients by all-time paid amount
func (r *analyticsRepo) ClientSpend(ctx context.Context, limit int) ([]analytics.ClientSpend, error) {
	var rows []analytics.ClientSpend
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id::text AS client_id, p.first_name, p.last_name,
		       SUM(pay.amount_cents) AS total_cents,
		       COUNT(pay.id) AS transactions
		FROM payments pay
		JOIN profiles p ON p.id = pay.client_id
		WHERE pay.status = ?
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY total_cents DESC
		LIMIT ?`, paidStatus, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("client spend: %w", err)
	}
	return rows, nil
}

// ClientLastVisits returns each client's most recent completed booking when
// it started at or before the cutoff, longest absence first
func (r *analyticsRepo) ClientLastVisits(ctx context.Context, cutoff time.Time, limit int) ([]analytics.ClientLastVisit, error) {
	var rows []analytics.ClientLastVisit
	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM (
			SELECT DISTINCT ON (b.client_id)
			       b.client_id::text AS client_id, p.first_name, p.last_name,
			       b.start_time AS last_visit, s.name AS last_service
			FROM bookings b
			JOIN profiles p ON p.id = b.client_id
			JOIN services s ON s.id = b.service_id
			WHERE b.status = ?
			ORDER BY b.client_id, b.start_time DESC
		) lv
		WHERE lv.last_visit <= ?
		ORDER BY lv.last_visit ASC
		LIMIT ?`, completedStatus, cutoff, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("client last visits: %w", err)
	}
	return rows, nil
}

// ServiceRebookings counts distinct and repeat completed clients per service
func (r *analyticsRepo) ServiceRebookings(ctx context.Context, limit int) ([]analytics.ServiceRebooking, error) {
	var rows []analytics.ServiceRebooking
	err := r.db.WithContext(ctx).Raw(`
		WITH per_client AS (
			SELECT service_id, client_id, COUNT(*) AS visits
			FROM bookings
			WHERE status = ?
			GROUP BY service_id, client_id
		)
		SELECT s.id::text AS service_id, s.name,
		       COUNT(*) AS distinct_clients,
		       COUNT(*) FILTER (WHERE pc.visits >= 2) AS repeat_clients
		FROM per_client pc
		JOIN services s ON s.id = pc.service_id
		GROUP BY s.id, s.name
		ORDER BY distinct_clients DESC
		LIMIT ?`, completedStatus, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("service rebookings: %w", err)
	}
	return rows, nil
}

// CategoryCounts counts bookings per service category
func (r *analyticsRepo) CategoryCounts(ctx context.Context, w analytics.Window) ([]analytics.CategoryCount, error) {
	var rows []analytics.CategoryCount
	err := r.agg.Aggregate(ctx, analytics.AggregateQuery{
		Table:      "bookings b JOIN services s ON s.id = b.service_id",
		GroupBy:    []string{"s.category"},
		Aggregates: []analytics.Aggregate{{Alias: "count", Expr: "COUNT(*)"}},
		DateRange:  w.DateRange("b." + bookingDateColumn),
		OrderBy:    []string{"count DESC"},
	}, &rows)
	return rows, err
}

// AttendanceTotals counts finalized outcomes and the value of no-shows
func (r *analyticsRepo) AttendanceTotals(ctx context.Context, w analytics.Window) (analytics.AttendanceTotals, error) {
	var totals analytics.AttendanceTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FILTER (WHERE status = ?) AS completed,
		       COUNT(*) FILTER (WHERE status = ?) AS no_show,
		       COUNT(*) FILTER (WHERE status = ?) AS cancelled,
		       COALESCE(SUM(total_price_cents) FILTER (WHERE status = ?), 0) AS no_show_value_cents
		FROM bookings
		WHERE start_time >= ? AND start_time < ?`,
		completedStatus, noShowStatus, cancelledStatus, noShowStatus, w.Start, w.End).Scan(&totals).Error
	if err != nil {
		return totals, fmt.Errorf("attendance totals: %w", err)
	}
	return totals, nil
}

// CancellationReasons groups all-time cancellations by their raw reason
func (r *analyticsRepo) CancellationReasons(ctx context.Context) ([]analytics.ReasonCount, error) {
	var grouped []struct {
		CancellationReason *string
		Count              int64
	}
	err := r.agg.Aggregate(ctx, analytics.AggregateQuery{
		Table:      "bookings",
		GroupBy:    []string{"cancellation_reason"},
		Aggregates: []analytics.Aggregate{{Alias: "count", Expr: "COUNT(*)"}},
		Filters:    []analytics.Filter{analytics.Eq("status", cancelledStatus)},
		OrderBy:    []string{"count DESC"},
	}, &grouped)
	if err != nil {
		return nil, err
	}

	rows := make([]analytics.ReasonCount, len(grouped))
	for i, g := range grouped {
		rows[i] = analytics.ReasonCount{Reason: g.CancellationReason, Count: g.Count}
	}
	return rows, nil
}

// HourCounts buckets bookings by local hour of day
func (r *analyticsRepo) HourCounts(ctx context.Context, w analytics.Window) ([]analytics.HourCount, error) {
	var rows []analytics.HourCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(HOUR FROM start_time AT TIME ZONE ?)::int AS hour, COUNT(*) AS count
		FROM bookings
		WHERE start_time >= ? AND start_time < ?
		GROUP BY 1`, r.timezone, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("hour counts: %w", err)
	}
	return rows, nil
}

// WeekdayCounts buckets bookings by local day of week, 0 = Sunday
func (r *analyticsRepo) WeekdayCounts(ctx context.Context, w analytics.Window) ([]analytics.WeekdayCount, error) {
	var rows []analytics.WeekdayCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(DOW FROM start_time AT TIME ZONE ?)::int AS weekday, COUNT(*) AS count
		FROM bookings
		WHERE start_time >= ? AND start_time < ?
		GROUP BY 1`, r.timezone, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("weekday counts: %w", err)
	}
	return rows, nil
}

// SourceCounts groups client profiles by acquisition source
func (r *analyticsRepo) SourceCounts(ctx context.Context) ([]analytics.SourceCount, error) {
	var rows []analytics.SourceCount
	err := r.agg.Aggregate(ctx, analytics.AggregateQuery{
		Table:      "profiles",
		GroupBy:    []string{"source"},
		Aggregates: []analytics.Aggregate{{Alias: "count", Expr: "COUNT(*)"}},
		Filters: []analytics.Filter{
			analytics.Eq("role", clientRole),
			analytics.Where("source IS NOT NULL"),
		},
		OrderBy: []string{"count DESC"},
	}, &rows)
	return rows, err
}

// CompletedVisits lists completed bookings in the window in local wall time
func (r *analyticsRepo) CompletedVisits(ctx context.Context, w analytics.Window) ([]analytics.CompletedVisit, error) {
	var rows []analytics.CompletedVisit
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.client_id::text AS client_id, s.category,
		       b.start_time AT TIME ZONE ? AS start_time
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE b.status = ? AND b.start_time >= ? AND b.start_time < ?
		ORDER BY b.client_id, b.start_time`, r.timezone, completedStatus, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("completed visits: %w", err)
	}
	return rows, nil
}

// RevenueGoal reads the monthly goal from financial_config, 0 when unset
func (r *analyticsRepo) RevenueGoal(ctx context.Context) (int64, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("key = ?", models.FinancialConfigKey).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", models.FinancialConfigKey, err)
	}

	var cfg models.FinancialConfig
	if len(setting.Value) > 0 {
		if err := json.Unmarshal(setting.Value, &cfg); err != nil {
			return 0, fmt.Errorf("decode %s: %w", models.FinancialConfigKey, err)
		}
	}
	return int64(analytics.Round(cfg.MonthlyRevenueGoal)), nil
}
