package analytics

import "time"

// Trailing window lengths used by the reports.
const (
	WeekDays       = 7
	MonthDays      = 30
	QuarterDays    = 90
	TrendWeeks     = 8
	GapWindowMonth = 12
)

// Clock resolves "now" in the deployment time zone. Calendar boundaries
// (month start, week start) are computed in that zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a clock. A nil location means time.Local and a nil now
// func means time.Now.
func NewClock(loc *time.Location, now func() time.Time) *Clock {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{loc: loc, now: now}
}

// LoadClock builds a clock from an IANA zone name. "" and "Local" mean UTC,
// the zone the database buckets in when none is configured.
func LoadClock(zone string) (*Clock, error) {
	if zone == "" || zone == "Local" {
		return NewClock(time.UTC, nil), nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return NewClock(loc, nil), nil
}

// Now returns the current instant in the clock's zone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Location returns the clock's zone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DateRange converts the window into an aggregator filter on field.
func (w Window) DateRange(field string) *DateRange {
	return &DateRange{Start: w.Start, End: w.End, Field: field}
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthToDate returns [1st of now's month 00:00, now).
func MonthToDate(now time.Time) Window {
	return Window{Start: startOfMonth(now), End: now}
}

// PriorMonth returns the whole previous calendar month.
func PriorMonth(now time.Time) Window {
	end := startOfMonth(now)
	start := time.Date(end.Year(), end.Month()-1, 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: end}
}

// Trailing returns [now - days, now).
func Trailing(now time.Time, days int) Window {
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

func Last7Days(now time.Time) Window  { return Trailing(now, WeekDays) }
func Last30Days(now time.Time) Window { return Trailing(now, MonthDays) }
func Last90Days(now time.Time) Window { return Trailing(now, QuarterDays) }

// LastWeeks returns the trailing window covering n weeks.
func LastWeeks(now time.Time, n int) Window {
	return Trailing(now, n*WeekDays)
}

// LastMonths returns the trailing window covering n calendar months.
func LastMonths(now time.Time, n int) Window {
	return Window{Start: now.AddDate(0, -n, 0), End: now}
}

// WeekStart returns Monday 00:00 of t's week in t's location, matching
// date_trunc('week', ...).
func WeekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	d := t.AddDate(0, 0, -weekday+1)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// CalendarDaysBetween counts midnights crossed from a to b on the wall
// calendar of each instant. Negative when b is before a.
func CalendarDaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// WeekLabel formats a week start as used in trend rows.
func WeekLabel(weekStart time.Time) string {
	return weekStart.Format("2006-01-02")
}
