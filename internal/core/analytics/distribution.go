package analytics

import (
	"sort"
	"strings"
)

// NoReasonLabel groups cancellations without a usable reason.
const NoReasonLabel = "No reason given"

type MixShare struct {
	Category Category `json:"category"`
	Count    int64    `json:"count"`
	Percent  int      `json:"percent"`
}

type Attendance struct {
	Completed        int64 `json:"completed"`
	NoShow           int64 `json:"no_show"`
	Cancelled        int64 `json:"cancelled"`
	Total            int64 `json:"total"`
	CompletedPercent int   `json:"completed_percent"`
	NoShowPercent    int   `json:"no_show_percent"`
	CancelledPercent int   `json:"cancelled_percent"`
	RevenueLost      int64 `json:"revenue_lost"`
}

type LabeledShare struct {
	Label   string `json:"label"`
	Count   int64  `json:"count"`
	Percent int    `json:"percent"`
}

type PeakBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
	Load  int    `json:"load"`
}

type PeakTimes struct {
	Hours []PeakBucket `json:"hours"`
	Days  []PeakBucket `json:"days"`
}

// BuildServiceMix reports each category's share of bookings. Every category
// is present, in display order.
func BuildServiceMix(rows []CategoryCount) []MixShare {
	counts := make(map[Category]int64, len(Categories))
	var total int64
	for _, r := range rows {
		c, ok := ParseCategory(r.Category)
		if !ok {
			continue
		}
		counts[c] += r.Count
		total += r.Count
	}

	result := make([]MixShare, 0, len(Categories))
	for _, c := range Categories {
		result = append(result, MixShare{Category: c, Count: counts[c], Percent: Percent(counts[c], total)})
	}
	return result
}

// BuildAttendance breaks finalized bookings down by outcome. RevenueLost is
// the listed price of no-show bookings.
func BuildAttendance(t AttendanceTotals) Attendance {
	total := t.Completed + t.NoShow + t.Cancelled
	return Attendance{
		Completed:        t.Completed,
		NoShow:           t.NoShow,
		Cancelled:        t.Cancelled,
		Total:            total,
		CompletedPercent: Percent(t.Completed, total),
		NoShowPercent:    Percent(t.NoShow, total),
		CancelledPercent: Percent(t.Cancelled, total),
		RevenueLost:      CentsToUnits(t.NoShowValueCents),
	}
}

func sharesOf(labels []string, counts map[string]int64) []LabeledShare {
	var total int64
	for _, n := range counts {
		total += n
	}

	result := make([]LabeledShare, 0, len(labels))
	for _, l := range labels {
		result = append(result, LabeledShare{Label: l, Count: counts[l], Percent: Percent(counts[l], total)})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Count > result[j].Count })
	return result
}

// BuildCancellationReasons folds null and blank reasons into NoReasonLabel.
func BuildCancellationReasons(rows []ReasonCount) []LabeledShare {
	counts := make(map[string]int64)
	var order []string
	for _, r := range rows {
		label := NoReasonLabel
		if r.Reason != nil && strings.TrimSpace(*r.Reason) != "" {
			label = strings.TrimSpace(*r.Reason)
		}
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label] += r.Count
	}
	return sharesOf(order, counts)
}

// BuildClientSources reports acquisition channels by share of clients.
func BuildClientSources(rows []SourceCount) []LabeledShare {
	counts := make(map[string]int64)
	var order []string
	for _, r := range rows {
		if _, ok := counts[r.Source]; !ok {
			order = append(order, r.Source)
		}
		counts[r.Source] += r.Count
	}
	return sharesOf(order, counts)
}

// BuildPeakTimes fills the fixed hour and weekday histograms and normalizes
// each against its busiest bucket.
func BuildPeakTimes(hours []HourCount, days []WeekdayCount) PeakTimes {
	hourCounts := make([]int64, LastPeakHour-FirstPeakHour+1)
	for _, h := range hours {
		if h.Hour < FirstPeakHour || h.Hour > LastPeakHour {
			continue
		}
		hourCounts[h.Hour-FirstPeakHour] += h.Count
	}

	dayCounts := make([]int64, len(WeekdayLabels))
	for _, d := range days {
		if d.Weekday < 0 || d.Weekday >= len(WeekdayLabels) {
			continue
		}
		dayCounts[d.Weekday] += d.Count
	}

	hourLabels := make([]string, len(hourCounts))
	for i := range hourLabels {
		hourLabels[i] = HourLabel(FirstPeakHour + i)
	}

	return PeakTimes{
		Hours: histogram(hourLabels, hourCounts),
		Days:  histogram(WeekdayLabels[:], dayCounts),
	}
}

func histogram(labels []string, counts []int64) []PeakBucket {
	var max int64
	for _, n := range counts {
		if n > max {
			max = n
		}
	}

	buckets := make([]PeakBucket, len(counts))
	for i, n := range counts {
		buckets[i] = PeakBucket{Label: labels[i], Count: n, Load: Load(n, max)}
	}
	return buckets
}
