package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPctDelta(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		prior   int64
		want    *int
	}{
		{"zero baseline is undefined", 1000, 0, nil},
		{"zero over zero is undefined", 0, 0, nil},
		{"growth", 150, 100, intPtr(50)},
		{"decline", 50, 100, intPtr(-50)},
		{"drop to zero", 0, 40, intPtr(-100)},
		{"rounds to nearest", 2, 3, intPtr(-33)},
		{"flat", 7, 7, intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PctDelta(tt.current, tt.prior)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestPctDelta_SwapIsApproximatelyNegated(t *testing.T) {
	a, b := int64(120), int64(100)
	forward := PctDelta(a, b)
	backward := PctDelta(b, a)
	require.NotNil(t, forward)
	require.NotNil(t, backward)

	assert.Equal(t, 20, *forward)
	assert.Equal(t, -17, *backward)
	assert.Greater(t, *forward, 0)
	assert.Less(t, *backward, 0)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(5, 0))
	assert.Equal(t, 25, Percent(1, 4))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 100, Percent(9, 9))
}

func TestCentsToUnits(t *testing.T) {
	assert.Equal(t, int64(0), CentsToUnits(0))
	assert.Equal(t, int64(1000), CentsToUnits(100000))
	assert.Equal(t, int64(13), CentsToUnits(1250))
	assert.Equal(t, int64(12), CentsToUnits(1249))
	assert.Equal(t, int64(1), CentsToUnits(99))
}

func TestAverageTicket(t *testing.T) {
	assert.Equal(t, int64(0), AverageTicket(50000, 0))
	assert.Equal(t, int64(250), AverageTicket(50000, 2))
	assert.Equal(t, int64(33), AverageTicket(10000, 3))
}

func TestLoad(t *testing.T) {
	assert.Equal(t, 100, Load(8, 8))
	assert.Equal(t, 50, Load(4, 8))
	assert.Equal(t, 0, Load(0, 0))
}
