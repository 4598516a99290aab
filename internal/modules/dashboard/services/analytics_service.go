package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/cache"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/repositories"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/metrics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/utils"
)

// Report names, used as metric labels, cache keys and dashboard section keys.
const (
	ReportKPIs                = "kpis"
	ReportBookingsTrend       = "bookings_trend"
	ReportRevenueTrend        = "revenue_trend"
	ReportRetention           = "retention"
	ReportTopServices         = "top_services"
	ReportStaffPerformance    = "staff_performance"
	ReportClientLTV           = "client_ltv"
	ReportAtRiskClients       = "at_risk_clients"
	ReportRebookingRate       = "rebooking_rate"
	ReportServiceMix          = "service_mix"
	ReportAttendance          = "attendance"
	ReportCancellationReasons = "cancellation_reasons"
	ReportPeakTimes           = "peak_times"
	ReportClientSources       = "client_sources"
	ReportAppointmentGaps     = "appointment_gaps"
)

// DefaultConcurrency bounds the dashboard fan-out.
const DefaultConcurrency = 5

// Options tunes the analytics service
type Options struct {
	CacheTTL    time.Duration // 0 disables caching
	Concurrency int
	Currency    string
}

// AnalyticsService exposes one method per report. Every method requires an
// authenticated user in ctx.
type AnalyticsService struct {
	repo        repositories.AnalyticsRepo
	clock       *analytics.Clock
	cache       cache.Cache
	cacheTTL    time.Duration
	concurrency int
	currency    string
}

func NewAnalyticsService(repo repositories.AnalyticsRepo, clock *analytics.Clock, reportCache cache.Cache, opts Options) *AnalyticsService {
	if reportCache == nil {
		reportCache = cache.NoopCache{}
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultConcurrency
	}
	return &AnalyticsService{
		repo:        repo,
		clock:       clock,
		cache:       reportCache,
		cacheTTL:    opts.CacheTTL,
		concurrency: opts.Concurrency,
		currency:    opts.Currency,
	}
}

// KPIReport is the KPI header with its rendered stat cards
type KPIReport struct {
	Stats analytics.KPIStats   `json:"stats"`
	Cards []analytics.StatCard `json:"cards"`
}

type BookingsTrend struct {
	Weeks []analytics.CategoryWeek `json:"weeks"`
	Chart analytics.ChartData      `json:"chart"`
}

type RevenueTrend struct {
	Weeks []analytics.WeeklyRevenue `json:"weeks"`
	Chart analytics.ChartData       `json:"chart"`
}

type ServiceMix struct {
	Shares []analytics.MixShare   `json:"shares"`
	Chart  analytics.PieChartData `json:"chart"`
}

// run wraps one report build with the auth gate, cache, metrics and logging.
func run[T any](ctx context.Context, s *AnalyticsService, report string, build func(now time.Time) (T, error)) (T, error) {
	var zero T
	if _, err := auth.RequireUser(ctx); err != nil {
		return zero, err
	}

	now := s.clock.Now()
	key := s.cacheKey(report, now)

	if key != "" {
		var cached T
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			utils.LogWarn("Report cache read failed", map[string]interface{}{"report": report, "error": err.Error()})
		}
		metrics.CacheLookup(report, hit)
		if hit {
			return cached, nil
		}
	}

	start := time.Now()
	result, err := build(now)
	metrics.ObserveReport(report, start, err)
	if err != nil {
		utils.LogError("Report failed", err, map[string]interface{}{"report": report})
		return zero, fmt.Errorf("%s: %w", report, err)
	}

	utils.LogDebug("Report built", map[string]interface{}{
		"report":      report,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if key != "" {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			utils.LogWarn("Report cache write failed", map[string]interface{}{"report": report, "error": err.Error()})
		}
	}
	return result, nil
}

// cacheKey buckets requests by TTL so that reports over trailing windows
// still share entries. Empty when caching is disabled.
func (s *AnalyticsService) cacheKey(report string, now time.Time) string {
	if s.cacheTTL <= 0 {
		return ""
	}
	bucket := now.Truncate(s.cacheTTL).Unix()
	return cache.Key(report, strconv.FormatInt(bucket, 10))
}

// GetKPIs compares month-to-date with the whole prior month
func (s *AnalyticsService) GetKPIs(ctx context.Context) (*KPIReport, error) {
	return run(ctx, s, ReportKPIs, func(now time.Time) (*KPIReport, error) {
		stats, err := s.kpiStats(ctx, now)
		if err != nil {
			return nil, err
		}
		return &KPIReport{Stats: stats, Cards: analytics.ToStatCards(stats, s.currency)}, nil
	})
}

func (s *AnalyticsService) kpiStats(ctx context.Context, now time.Time) (analytics.KPIStats, error) {
	current, err := s.repo.PeriodTotals(ctx, analytics.MonthToDate(now))
	if err != nil {
		return analytics.KPIStats{}, err
	}
	prior, err := s.repo.PeriodTotals(ctx, analytics.PriorMonth(now))
	if err != nil {
		return analytics.KPIStats{}, err
	}
	goal, err := s.repo.RevenueGoal(ctx)
	if err != nil {
		return analytics.KPIStats{}, err
	}
	return analytics.BuildKPIs(current, prior, goal), nil
}

func (s *AnalyticsService) GetBookingsTrend(ctx context.Context) (*BookingsTrend, error) {
	return run(ctx, s, ReportBookingsTrend, func(now time.Time) (*BookingsTrend, error) {
		rows, err := s.repo.BookingsByWeekCategory(ctx, analytics.LastWeeks(now, analytics.TrendWeeks))
		if err != nil {
			return nil, err
		}
		weeks := analytics.PivotBookingsByCategory(rows)
		return &BookingsTrend{Weeks: weeks, Chart: analytics.ToStackedBarChart(weeks)}, nil
	})
}

func (s *AnalyticsService) GetRevenueTrend(ctx context.Context) (*RevenueTrend, error) {
	return run(ctx, s, ReportRevenueTrend, func(now time.Time) (*RevenueTrend, error) {
		rows, err := s.repo.RevenueByWeek(ctx, analytics.LastWeeks(now, analytics.TrendWeeks))
		if err != nil {
			return nil, err
		}
		weeks := analytics.BuildRevenueByWeek(rows)
		return &RevenueTrend{Weeks: weeks, Chart: analytics.ToRevenueLineChart(weeks)}, nil
	})
}

func (s *AnalyticsService) GetRetention(ctx context.Context) ([]analytics.RetentionWeek, error) {
	return run(ctx, s, ReportRetention, func(now time.Time) ([]analytics.RetentionWeek, error) {
		rows, err := s.repo.WeeklyClientVisits(ctx, analytics.LastWeeks(now, analytics.TrendWeeks))
		if err != nil {
			return nil, err
		}
		return analytics.BuildRetention(rows), nil
	})
}

func (s *AnalyticsService) GetTopServices(ctx context.Context) ([]analytics.TopService, error) {
	return run(ctx, s, ReportTopServices, func(now time.Time) ([]analytics.TopService, error) {
		rows, err := s.repo.ServiceTallies(ctx, analytics.Last30Days(now))
		if err != nil {
			return nil, err
		}
		return analytics.RankTopServices(rows, analytics.TopServicesLimit), nil
	})
}

func (s *AnalyticsService) GetStaffPerformance(ctx context.Context) ([]analytics.StaffPerformance, error) {
	return run(ctx, s, ReportStaffPerformance, func(now time.Time) ([]analytics.StaffPerformance, error) {
		rows, err := s.repo.StaffTallies(ctx, analytics.Last30Days(now))
		if err != nil {
			return nil, err
		}
		return analytics.BuildStaffPerformance(rows), nil
	})
}

func (s *AnalyticsService) GetClientLTV(ctx context.Context) ([]analytics.ClientValue, error) {
	return run(ctx, s, ReportClientLTV, func(time.Time) ([]analytics.ClientValue, error) {
		rows, err := s.repo.ClientSpend(ctx, analytics.ClientLTVLimit)
		if err != nil {
			return nil, err
		}
		return analytics.RankClientLifetimeValue(rows, analytics.ClientLTVLimit), nil
	})
}

func (s *AnalyticsService) GetAtRiskClients(ctx context.Context) ([]analytics.AtRiskClient, error) {
	return run(ctx, s, ReportAtRiskClients, func(now time.Time) ([]analytics.AtRiskClient, error) {
		rows, err := s.repo.ClientLastVisits(ctx, analytics.AtRiskCutoff(now), analytics.AtRiskLimit)
		if err != nil {
			return nil, err
		}
		return analytics.BuildAtRiskClients(now, rows, analytics.AtRiskLimit), nil
	})
}

func (s *AnalyticsService) GetRebookingRates(ctx context.Context) ([]analytics.RebookingRate, error) {
	return run(ctx, s, ReportRebookingRate, func(time.Time) ([]analytics.RebookingRate, error) {
		rows, err := s.repo.ServiceRebookings(ctx, analytics.RebookingLimit)
		if err != nil {
			return nil, err
		}
		return analytics.BuildRebookingRates(rows, analytics.RebookingLimit), nil
	})
}

func (s *AnalyticsService) GetServiceMix(ctx context.Context) (*ServiceMix, error) {
	return run(ctx, s, ReportServiceMix, func(now time.Time) (*ServiceMix, error) {
		rows, err := s.repo.CategoryCounts(ctx, analytics.Last30Days(now))
		if err != nil {
			return nil, err
		}
		shares := analytics.BuildServiceMix(rows)
		return &ServiceMix{Shares: shares, Chart: analytics.ToServiceMixPie(shares)}, nil
	})
}

func (s *AnalyticsService) GetAttendance(ctx context.Context) (*analytics.Attendance, error) {
	return run(ctx, s, ReportAttendance, func(now time.Time) (*analytics.Attendance, error) {
		totals, err := s.repo.AttendanceTotals(ctx, analytics.Last30Days(now))
		if err != nil {
			return nil, err
		}
		attendance := analytics.BuildAttendance(totals)
		return &attendance, nil
	})
}

func (s *AnalyticsService) GetCancellationReasons(ctx context.Context) ([]analytics.LabeledShare, error) {
	return run(ctx, s, ReportCancellationReasons, func(time.Time) ([]analytics.LabeledShare, error) {
		rows, err := s.repo.CancellationReasons(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.BuildCancellationReasons(rows), nil
	})
}

func (s *AnalyticsService) GetPeakTimes(ctx context.Context) (*analytics.PeakTimes, error) {
	return run(ctx, s, ReportPeakTimes, func(now time.Time) (*analytics.PeakTimes, error) {
		window := analytics.Last30Days(now)
		hours, err := s.repo.HourCounts(ctx, window)
		if err != nil {
			return nil, err
		}
		days, err := s.repo.WeekdayCounts(ctx, window)
		if err != nil {
			return nil, err
		}
		peaks := analytics.BuildPeakTimes(hours, days)
		return &peaks, nil
	})
}

func (s *AnalyticsService) GetClientSources(ctx context.Context) ([]analytics.LabeledShare, error) {
	return run(ctx, s, ReportClientSources, func(time.Time) ([]analytics.LabeledShare, error) {
		rows, err := s.repo.SourceCounts(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.BuildClientSources(rows), nil
	})
}

func (s *AnalyticsService) GetAppointmentGaps(ctx context.Context) (*analytics.AppointmentGaps, error) {
	return run(ctx, s, ReportAppointmentGaps, func(now time.Time) (*analytics.AppointmentGaps, error) {
		visits, err := s.repo.CompletedVisits(ctx, analytics.LastMonths(now, analytics.GapWindowMonth))
		if err != nil {
			return nil, err
		}
		gaps := analytics.AnalyzeAppointmentGaps(visits)
		return &gaps, nil
	})
}
