package analytics

import (
	"sort"
	"time"
)

type CategoryGap struct {
	Category Category `json:"category"`
	AvgDays  int      `json:"avg_days"`
	Samples  int      `json:"samples"`
}

// AppointmentGaps is the average number of days between consecutive
// completed visits. Overall is null when no client has a qualifying gap.
type AppointmentGaps struct {
	Overall    *int          `json:"overall_avg_days"`
	Samples    int           `json:"samples"`
	ByCategory []CategoryGap `json:"by_category"`
}

type gapSum struct {
	total int
	n     int
}

func (g *gapSum) add(days int) {
	g.total += days
	g.n++
}

func (g gapSum) avg() int {
	return Round(float64(g.total) / float64(g.n))
}

// partitionGaps walks each partition in start order and returns the gaps to
// the predecessor, skipping the first visit and non-positive gaps.
func partitionGaps(partitions map[string][]time.Time) []int {
	var gaps []int
	for _, starts := range partitions {
		sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
		for i := 1; i < len(starts); i++ {
			if d := CalendarDaysBetween(starts[i-1], starts[i]); d > 0 {
				gaps = append(gaps, d)
			}
		}
	}
	return gaps
}

// AnalyzeAppointmentGaps partitions visits by client and by client+category.
func AnalyzeAppointmentGaps(visits []CompletedVisit) AppointmentGaps {
	byClient := make(map[string][]time.Time)
	byCategory := make(map[Category]map[string][]time.Time)

	for _, v := range visits {
		byClient[v.ClientID] = append(byClient[v.ClientID], v.StartTime)

		c, ok := ParseCategory(v.Category)
		if !ok {
			continue
		}
		if byCategory[c] == nil {
			byCategory[c] = make(map[string][]time.Time)
		}
		byCategory[c][v.ClientID] = append(byCategory[c][v.ClientID], v.StartTime)
	}

	result := AppointmentGaps{ByCategory: []CategoryGap{}}

	var overall gapSum
	for _, d := range partitionGaps(byClient) {
		overall.add(d)
	}
	if overall.n > 0 {
		result.Overall = intPtr(overall.avg())
		result.Samples = overall.n
	}

	for _, c := range Categories {
		var sum gapSum
		for _, d := range partitionGaps(byCategory[c]) {
			sum.add(d)
		}
		if sum.n == 0 {
			continue
		}
		result.ByCategory = append(result.ByCategory, CategoryGap{Category: c, AvgDays: sum.avg(), Samples: sum.n})
	}

	sort.SliceStable(result.ByCategory, func(i, j int) bool {
		return result.ByCategory[i].AvgDays < result.ByCategory[j].AvgDays
	})
	return result
}
