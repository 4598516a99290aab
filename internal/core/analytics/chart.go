package analytics

import (
	"fmt"
	"strings"
)

// Chart colors per category, in Categories order.
var categoryColors = map[Category]string{
	CategoryLash:       "#E91E63",
	CategoryJewelry:    "#FFC107",
	CategoryCrochet:    "#8BC34A",
	CategoryConsulting: "#3F51B5",
}

// ToStackedBarChart converts the weekly pivot to one series per category
func ToStackedBarChart(weeks []CategoryWeek) ChartData {
	labels := make([]string, len(weeks))
	for i, w := range weeks {
		labels[i] = w.Week
	}

	series := make([]ChartSeries, 0, len(Categories))
	for _, c := range Categories {
		values := make([]int64, len(weeks))
		for i, w := range weeks {
			values[i] = w.Count(c)
		}
		series = append(series, ChartSeries{Name: string(c), Values: values, Color: categoryColors[c]})
	}

	return ChartData{Type: "bar", Labels: labels, Data: series}
}

// ToRevenueLineChart converts weekly revenue to line chart format
func ToRevenueLineChart(weeks []WeeklyRevenue) ChartData {
	labels := make([]string, len(weeks))
	values := make([]int64, len(weeks))
	for i, w := range weeks {
		labels[i] = w.Week
		values[i] = w.Revenue
	}

	return ChartData{
		Type:   "line",
		Labels: labels,
		Data:   []ChartSeries{{Name: "revenue", Values: values}},
	}
}

// ToServiceMixPie converts the service mix to pie chart format
func ToServiceMixPie(mix []MixShare) PieChartData {
	labels := make([]string, len(mix))
	values := make([]int, len(mix))
	for i, m := range mix {
		labels[i] = string(m.Category)
		values[i] = m.Percent
	}
	return PieChartData{Type: "donut", Labels: labels, Values: values}
}

// ToStatCards renders the KPI header cards
func ToStatCards(k KPIStats, currency string) []StatCard {
	return []StatCard{
		statCard("Revenue", formatStatValue(k.RevenueMtd, "currency", currency), k.RevenueMtdDelta),
		statCard("Bookings", formatStatValue(k.BookingsMtd, "number", currency), k.BookingsMtdDelta),
		statCard("New Clients", formatStatValue(k.NewClientsMtd, "number", currency), k.NewClientsMtdDelta),
		statCard("No-show Rate", formatStatValue(int64(k.NoShowRate), "percentage", currency), k.NoShowRateDelta),
		statCard("Fill Rate", formatStatValue(int64(k.FillRate), "percentage", currency), k.FillRateDelta),
		statCard("Avg Ticket", formatStatValue(k.AvgTicket, "currency", currency), k.AvgTicketDelta),
	}
}

func statCard(title, value string, change *int) StatCard {
	card := StatCard{
		Title:       title,
		Value:       value,
		Change:      change,
		ChangeLabel: "vs last month",
		Trend:       "neutral",
	}
	if change != nil {
		if *change > 0 {
			card.Trend = "up"
		} else if *change < 0 {
			card.Trend = "down"
		}
	}
	return card
}

func formatStatValue(num int64, format, currency string) string {
	switch format {
	case "currency":
		return strings.TrimSpace(fmt.Sprintf("%s %d", currency, num))
	case "percentage":
		return fmt.Sprintf("%d%%", num)
	default:
		if num >= 1000000 {
			return fmt.Sprintf("%.1fM", float64(num)/1000000)
		} else if num >= 1000 {
			return fmt.Sprintf("%.1fK", float64(num)/1000)
		}
		return fmt.Sprintf("%d", num)
	}
}
