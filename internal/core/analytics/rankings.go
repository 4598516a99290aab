package analytics

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Ranking limits and at-risk thresholds, in days since the last completed visit.
const (
	TopServicesLimit    = 6
	ClientLTVLimit      = 10
	AtRiskLimit         = 10
	RebookingLimit      = 6
	AtRiskThresholdDays = 30
	UrgencyMediumDays   = 40
	UrgencyHighDays     = 50
)

// Urgency tiers for at-risk clients.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// Staff role labels.
const (
	RoleLabelOwner = "Owner"
	RoleLabelStaff = "Staff"
)

type TopService struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Bookings  int64  `json:"bookings"`
	Revenue   int64  `json:"revenue"`
}

type StaffPerformance struct {
	StaffID     string `json:"staff_id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	RoleLabel   string `json:"role"`
	Bookings    int64  `json:"bookings"`
	Revenue     int64  `json:"revenue"`
	AvgTicket   int64  `json:"avg_ticket"`
	Utilization int    `json:"utilization"`
}

type ClientValue struct {
	ClientID     string `json:"client_id"`
	Name         string `json:"name"`
	TotalSpent   int64  `json:"total_spent"`
	Transactions int64  `json:"transactions"`
}

type AtRiskClient struct {
	ClientID    string `json:"client_id"`
	Name        string `json:"name"`
	DaysSince   int    `json:"days_since_last_visit"`
	LastVisit   string `json:"last_visit"`
	LastService string `json:"last_service"`
	Urgency     string `json:"urgency"`
}

type RebookingRate struct {
	ServiceID       string `json:"service_id"`
	Name            string `json:"name"`
	DistinctClients int64  `json:"distinct_clients"`
	RepeatClients   int64  `json:"repeat_clients"`
	Rate            int    `json:"rate"`
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// Avatar is the upper-cased first-name initial, "?" when there is none.
func Avatar(firstName string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(firstName))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// RoleLabel maps a profile role onto its display label.
func RoleLabel(role string) string {
	if role == "admin" {
		return RoleLabelOwner
	}
	return RoleLabelStaff
}

// UrgencyFor tiers a client by days since their last completed visit.
func UrgencyFor(days int) string {
	switch {
	case days > UrgencyHighDays:
		return UrgencyHigh
	case days > UrgencyMediumDays:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// RankTopServices keeps the limit busiest services. Ties keep input order.
func RankTopServices(rows []ServiceTally, limit int) []TopService {
	sorted := append([]ServiceTally(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Bookings > sorted[j].Bookings })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	result := make([]TopService, 0, len(sorted))
	for _, r := range sorted {
		result = append(result, TopService{
			ServiceID: r.ServiceID,
			Name:      r.Name,
			Category:  r.Category,
			Bookings:  r.Bookings,
			Revenue:   CentsToUnits(r.RevenueCents),
		})
	}
	return result
}

// BuildStaffPerformance derives per-staff figures. Revenue comes from
// completed bookings, so the average ticket is taken over completed ones.
func BuildStaffPerformance(rows []StaffTally) []StaffPerformance {
	result := make([]StaffPerformance, 0, len(rows))
	for _, r := range rows {
		result = append(result, StaffPerformance{
			StaffID:     r.StaffID,
			Name:        fullName(r.FirstName, r.LastName),
			Avatar:      Avatar(r.FirstName),
			RoleLabel:   RoleLabel(r.Role),
			Bookings:    r.Bookings,
			Revenue:     CentsToUnits(r.RevenueCents),
			AvgTicket:   AverageTicket(r.RevenueCents, r.Completed),
			Utilization: Percent(r.Completed, r.Completed+r.NoShow+r.Cancelled),
		})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Bookings > result[j].Bookings })
	return result
}

// RankClientLifetimeValue keeps the limit highest-spending clients.
func RankClientLifetimeValue(rows []ClientSpend, limit int) []ClientValue {
	sorted := append([]ClientSpend(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TotalCents > sorted[j].TotalCents })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	result := make([]ClientValue, 0, len(sorted))
	for _, r := range sorted {
		result = append(result, ClientValue{
			ClientID:     r.ClientID,
			Name:         fullName(r.FirstName, r.LastName),
			TotalSpent:   CentsToUnits(r.TotalCents),
			Transactions: r.Transactions,
		})
	}
	return result
}

// AtRiskCutoff is the latest last-visit time that can still be more than
// AtRiskThresholdDays whole days before now.
func AtRiskCutoff(now time.Time) time.Time {
	return now.Add(-time.Duration(AtRiskThresholdDays+1) * 24 * time.Hour)
}

// BuildAtRiskClients lists clients whose last completed visit is more than
// AtRiskThresholdDays before now, longest absence first.
func BuildAtRiskClients(now time.Time, rows []ClientLastVisit, limit int) []AtRiskClient {
	result := make([]AtRiskClient, 0, len(rows))
	for _, r := range rows {
		days := int(now.Sub(r.LastVisit).Hours() / 24)
		if days <= AtRiskThresholdDays {
			continue
		}
		result = append(result, AtRiskClient{
			ClientID:    r.ClientID,
			Name:        fullName(r.FirstName, r.LastName),
			DaysSince:   days,
			LastVisit:   r.LastVisit.Format("2006-01-02"),
			LastService: r.LastService,
			Urgency:     UrgencyFor(days),
		})
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].DaysSince > result[j].DaysSince })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// BuildRebookingRates ranks services by distinct completed clients and
// reports the share of them who came back at least once more.
func BuildRebookingRates(rows []ServiceRebooking, limit int) []RebookingRate {
	sorted := append([]ServiceRebooking(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DistinctClients > sorted[j].DistinctClients })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	result := make([]RebookingRate, 0, len(sorted))
	for _, r := range sorted {
		result = append(result, RebookingRate{
			ServiceID:       r.ServiceID,
			Name:            r.Name,
			DistinctClients: r.DistinctClients,
			RepeatClients:   r.RepeatClients,
			Rate:            Percent(r.RepeatClients, r.DistinctClients),
		})
	}
	return result
}
