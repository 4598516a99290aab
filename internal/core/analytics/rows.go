package analytics

import "time"

// Raw rows produced by the data-access layer. Money is always integer cents
// and timestamps used for calendar math are wall-clock times in the
// deployment zone.

type PeriodTotals struct {
	RevenueCents     int64
	PaidTransactions int64
	BookingCount     int64
	NewClients       int64
	Completed        int64
	NoShow           int64
	Cancelled        int64
}

// Finalized is the attendance-rate denominator.
func (p PeriodTotals) Finalized() int64 {
	return p.Completed + p.NoShow + p.Cancelled
}

type WeekCategoryCount struct {
	WeekStart time.Time
	Category  string
	Count     int64
}

type WeekAmount struct {
	WeekStart   time.Time
	AmountCents int64
}

// WeeklyClientVisit is one (week, client) pair from the window, with the
// client's earliest booking of any status.
type WeeklyClientVisit struct {
	WeekStart      time.Time
	ClientID       string
	FirstBookingAt time.Time
}

type ServiceTally struct {
	ServiceID    string
	Name         string
	Category     string
	Bookings     int64
	RevenueCents int64
}

type StaffTally struct {
	StaffID      string
	FirstName    string
	LastName     string
	Role         string
	Bookings     int64
	RevenueCents int64
	Completed    int64
	NoShow       int64
	Cancelled    int64
}

type ClientSpend struct {
	ClientID     string
	FirstName    string
	LastName     string
	TotalCents   int64
	Transactions int64
}

// ClientLastVisit is a client's most recent completed booking.
type ClientLastVisit struct {
	ClientID    string
	FirstName   string
	LastName    string
	LastVisit   time.Time
	LastService string
}

type ServiceRebooking struct {
	ServiceID       string
	Name            string
	DistinctClients int64
	RepeatClients   int64
}

type CategoryCount struct {
	Category string
	Count    int64
}

type AttendanceTotals struct {
	Completed        int64
	NoShow           int64
	Cancelled        int64
	NoShowValueCents int64
}

type ReasonCount struct {
	Reason *string
	Count  int64
}

type HourCount struct {
	Hour  int
	Count int64
}

// WeekdayCount uses 0 for Sunday.
type WeekdayCount struct {
	Weekday int
	Count   int64
}

type SourceCount struct {
	Source string
	Count  int64
}

type CompletedVisit struct {
	ClientID  string
	Category  string
	StartTime time.Time
}
