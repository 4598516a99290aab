package analytics

import "sort"

// CategoryWeek is one row of the weekly bookings pivot.
type CategoryWeek struct {
	Week       string `json:"week"`
	Lash       int64  `json:"lash"`
	Jewelry    int64  `json:"jewelry"`
	Crochet    int64  `json:"crochet"`
	Consulting int64  `json:"consulting"`
}

func (w *CategoryWeek) add(c Category, n int64) {
	switch c {
	case CategoryLash:
		w.Lash += n
	case CategoryJewelry:
		w.Jewelry += n
	case CategoryCrochet:
		w.Crochet += n
	case CategoryConsulting:
		w.Consulting += n
	}
}

// Count returns the value of one category column.
func (w CategoryWeek) Count(c Category) int64 {
	switch c {
	case CategoryLash:
		return w.Lash
	case CategoryJewelry:
		return w.Jewelry
	case CategoryCrochet:
		return w.Crochet
	case CategoryConsulting:
		return w.Consulting
	}
	return 0
}

type WeeklyRevenue struct {
	Week    string `json:"week"`
	Revenue int64  `json:"revenue"`
}

type RetentionWeek struct {
	Week      string `json:"week"`
	Unique    int64  `json:"unique_clients"`
	New       int64  `json:"new_clients"`
	Returning int64  `json:"returning_clients"`
}

// sortedWeeks orders week labels; ISO dates sort chronologically.
func sortedWeeks[V any](byWeek map[string]V) []string {
	weeks := make([]string, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)
	return weeks
}

// PivotBookingsByCategory emits one row per week with any booking activity,
// ascending, with all four category columns present.
func PivotBookingsByCategory(rows []WeekCategoryCount) []CategoryWeek {
	byWeek := make(map[string]*CategoryWeek)

	for _, r := range rows {
		label := WeekLabel(r.WeekStart)
		week, ok := byWeek[label]
		if !ok {
			week = &CategoryWeek{Week: label}
			byWeek[label] = week
		}
		if c, ok := ParseCategory(r.Category); ok {
			week.add(c, r.Count)
		}
	}

	result := make([]CategoryWeek, 0, len(byWeek))
	for _, w := range sortedWeeks(byWeek) {
		result = append(result, *byWeek[w])
	}
	return result
}

// BuildRevenueByWeek sums cents per week and converts once per week so no
// fractional cents leak into the output.
func BuildRevenueByWeek(rows []WeekAmount) []WeeklyRevenue {
	totals := make(map[string]int64)
	for _, r := range rows {
		totals[WeekLabel(r.WeekStart)] += r.AmountCents
	}

	result := make([]WeeklyRevenue, 0, len(totals))
	for _, w := range sortedWeeks(totals) {
		result = append(result, WeeklyRevenue{Week: w, Revenue: CentsToUnits(totals[w])})
	}
	return result
}

// BuildRetention counts distinct clients per week. A client is new in a week
// when their first booking ever is on or after that week's start.
func BuildRetention(rows []WeeklyClientVisit) []RetentionWeek {
	type clientSet map[string]bool // client -> new
	byWeek := make(map[string]clientSet)

	for _, r := range rows {
		label := WeekLabel(r.WeekStart)
		set, ok := byWeek[label]
		if !ok {
			set = make(clientSet)
			byWeek[label] = set
		}
		set[r.ClientID] = !r.FirstBookingAt.Before(r.WeekStart)
	}

	result := make([]RetentionWeek, 0, len(byWeek))
	for _, w := range sortedWeeks(byWeek) {
		row := RetentionWeek{Week: w}
		for _, isNew := range byWeek[w] {
			row.Unique++
			if isNew {
				row.New++
			}
		}
		row.Returning = row.Unique - row.New
		result = append(result, row)
	}
	return result
}
