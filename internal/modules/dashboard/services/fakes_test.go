package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/models"
	"github.com/google/uuid"
)

// fakeRepo serves fixture rows and records calls. errs fails a method by name.
type fakeRepo struct {
	mu       sync.Mutex
	calls    map[string]int
	windows  map[string][]analytics.Window
	errs     map[string]error
	delay    time.Duration
	inFlight int
	maxSeen  int

	current     analytics.PeriodTotals
	prior       analytics.PeriodTotals
	goal        int64
	services    []analytics.ServiceTally
	lastVisits  []analytics.ClientLastVisit
	cutoff      time.Time
	lastLimit   int
	categories  []analytics.CategoryCount
	reasons     []analytics.ReasonCount
	visits      []analytics.CompletedVisit
	weekRevenue []analytics.WeekAmount
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		calls:   make(map[string]int),
		windows: make(map[string][]analytics.Window),
		errs:    make(map[string]error),
	}
}

func (f *fakeRepo) enter(name string, w *analytics.Window) error {
	f.mu.Lock()
	f.calls[name]++
	if w != nil {
		f.windows[name] = append(f.windows[name], *w)
	}
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	err := f.errs[name]
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return err
}

func (f *fakeRepo) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRepo) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeRepo) PeriodTotals(ctx context.Context, w analytics.Window) (analytics.PeriodTotals, error) {
	if err := f.enter("PeriodTotals", &w); err != nil {
		return analytics.PeriodTotals{}, err
	}
	// Only the prior-month window spans a whole calendar month.
	if w.End.Equal(w.Start.AddDate(0, 1, 0)) {
		return f.prior, nil
	}
	return f.current, nil
}

func (f *fakeRepo) BookingsByWeekCategory(ctx context.Context, w analytics.Window) ([]analytics.WeekCategoryCount, error) {
	return nil, f.enter("BookingsByWeekCategory", &w)
}

func (f *fakeRepo) RevenueByWeek(ctx context.Context, w analytics.Window) ([]analytics.WeekAmount, error) {
	if err := f.enter("RevenueByWeek", &w); err != nil {
		return nil, err
	}
	return f.weekRevenue, nil
}

func (f *fakeRepo) WeeklyClientVisits(ctx context.Context, w analytics.Window) ([]analytics.WeeklyClientVisit, error) {
	return nil, f.enter("WeeklyClientVisits", &w)
}

func (f *fakeRepo) ServiceTallies(ctx context.Context, w analytics.Window) ([]analytics.ServiceTally, error) {
	if err := f.enter("ServiceTallies", &w); err != nil {
		return nil, err
	}
	return f.services, nil
}

func (f *fakeRepo) StaffTallies(ctx context.Context, w analytics.Window) ([]analytics.StaffTally, error) {
	return nil, f.enter("StaffTallies", &w)
}

func (f *fakeRepo) ClientSpend(ctx context.Context, limit int) ([]analytics.ClientSpend, error) {
	return nil, f.enter("ClientSpend", nil)
}

func (f *fakeRepo) ClientLastVisits(ctx context.Context, cutoff time.Time, limit int) ([]analytics.ClientLastVisit, error) {
	if err := f.enter("ClientLastVisits", nil); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.cutoff, f.lastLimit = cutoff, limit
	f.mu.Unlock()
	return f.lastVisits, nil
}

func (f *fakeRepo) ServiceRebookings(ctx context.Context, limit int) ([]analytics.ServiceRebooking, error) {
	return nil, f.enter("ServiceRebookings", nil)
}

func (f *fakeRepo) CategoryCounts(ctx context.Context, w analytics.Window) ([]analytics.CategoryCount, error) {
	if err := f.enter("CategoryCounts", &w); err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeRepo) AttendanceTotals(ctx context.Context, w analytics.Window) (analytics.AttendanceTotals, error) {
	return analytics.AttendanceTotals{}, f.enter("AttendanceTotals", &w)
}

func (f *fakeRepo) CancellationReasons(ctx context.Context) ([]analytics.ReasonCount, error) {
	if err := f.enter("CancellationReasons", nil); err != nil {
		return nil, err
	}
	return f.reasons, nil
}

func (f *fakeRepo) HourCounts(ctx context.Context, w analytics.Window) ([]analytics.HourCount, error) {
	return nil, f.enter("HourCounts", &w)
}

func (f *fakeRepo) WeekdayCounts(ctx context.Context, w analytics.Window) ([]analytics.WeekdayCount, error) {
	return nil, f.enter("WeekdayCounts", &w)
}

func (f *fakeRepo) SourceCounts(ctx context.Context) ([]analytics.SourceCount, error) {
	return nil, f.enter("SourceCounts", nil)
}

func (f *fakeRepo) CompletedVisits(ctx context.Context, w analytics.Window) ([]analytics.CompletedVisit, error) {
	if err := f.enter("CompletedVisits", &w); err != nil {
		return nil, err
	}
	return f.visits, nil
}

func (f *fakeRepo) RevenueGoal(ctx context.Context) (int64, error) {
	if err := f.enter("RevenueGoal", nil); err != nil {
		return 0, err
	}
	return f.goal, nil
}

// memoryCache is an in-process cache.Cache. getErr makes every Get fail.
type memoryCache struct {
	mu     sync.Mutex
	items  map[string][]byte
	getErr error
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return false, m.getErr
	}
	data, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = data
	m.sets++
	return nil
}

func (m *memoryCache) Close() error { return nil }

type fakeSnapshotRepo struct {
	created []*models.AnalyticsSnapshot
	filter  models.SnapshotFilter
	err     error
}

func (f *fakeSnapshotRepo) Create(ctx context.Context, s *models.AnalyticsSnapshot) error {
	if f.err != nil {
		return f.err
	}
	s.ID = uuid.New()
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSnapshotRepo) List(ctx context.Context, filter models.SnapshotFilter) ([]models.AnalyticsSnapshot, error) {
	f.filter = filter
	out := make([]models.AnalyticsSnapshot, 0, len(f.created))
	for _, s := range f.created {
		out = append(out, *s)
	}
	return out, f.err
}

type fakeAuditor struct {
	mu      sync.Mutex
	entries []*audit.AuditLog
	exports []string
	archive []string
	err     error
}

func (f *fakeAuditor) Log(ctx context.Context, entry *audit.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return f.err
}

func (f *fakeAuditor) LogExport(ctx context.Context, export audit.ExportEntry, req audit.RequestInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exports = append(f.exports, export.Format)
	f.archive = append(f.archive, export.Archive)
	return f.err
}

var errBoom = errors.New("connection reset")
