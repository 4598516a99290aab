package analytics

import "fmt"

// Category is one of the studio's fixed service lines.
type Category string

const (
	CategoryLash       Category = "lash"
	CategoryJewelry    Category = "jewelry"
	CategoryCrochet    Category = "crochet"
	CategoryConsulting Category = "consulting"
)

// Categories lists every category in display order. Pivots and mixes always
// emit one entry per element, even when a category has no data.
var Categories = []Category{CategoryLash, CategoryJewelry, CategoryCrochet, CategoryConsulting}

// ParseCategory maps a stored category string onto the closed set.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Peak-time histogram bounds. Hours are local clock hours, inclusive.
const (
	FirstPeakHour = 9
	LastPeakHour  = 18
)

// WeekdayLabels follows Postgres EXTRACT(DOW): 0 is Sunday.
var WeekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// HourLabel renders a 24h clock hour as "9am", "12pm", "6pm".
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12am"
	case hour < 12:
		return fmt.Sprintf("%dam", hour)
	case hour == 12:
		return "12pm"
	default:
		return fmt.Sprintf("%dpm", hour-12)
	}
}
