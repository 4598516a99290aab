package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds half up to the nearest integer.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// PctDelta is the month-over-month change in percent. It is nil when the
// prior value is zero: there is no meaningful trend against an empty baseline.
func PctDelta(current, prior int64) *int {
	if prior == 0 {
		return nil
	}
	d := Round(float64(current-prior) / float64(prior) * 100)
	return &d
}

// Percent returns part/whole as a rounded percentage, 0 when whole is 0.
func Percent(part, whole int64) int {
	if whole == 0 {
		return 0
	}
	return Round(float64(part) / float64(whole) * 100)
}

// CentsToUnits converts integer cents into whole currency units.
func CentsToUnits(cents int64) int64 {
	return decimal.New(cents, -2).Round(0).IntPart()
}

// AverageTicket divides cents across n transactions and rounds to whole units.
func AverageTicket(cents, n int64) int64 {
	if n == 0 {
		return 0
	}
	return decimal.New(cents, -2).Div(decimal.NewFromInt(n)).Round(0).IntPart()
}

// Load normalizes count against the busiest bucket onto 0..100.
func Load(count, max int64) int {
	if max <= 0 {
		max = 1
	}
	return Round(float64(count) / float64(max) * 100)
}

func intPtr(v int) *int { return &v }
