package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompute_DefaultAdapters runs the real lunar calendar, sun clock and ephemeris
func TestCompute_DefaultAdapters(t *testing.T) {
	r := New(Options{}).Compute(solsticeMorning)

	require.Empty(t, r.Degradations)
	assert.Equal(t, "冬至", r.Calculation.CurrentTermName)
	assert.Equal(t, int64(0), r.Calculation.DaysSinceDongZhi)
	assert.Equal(t, int64(690), r.Calculation.AccumulatedYearFen)
	assert.Equal(t, "中孚", r.DailyGua.Hexagram.Name)
	assert.Equal(t, "复", r.SovereignHexagram.Name)
	assert.Equal(t, "癸卯", r.GanZhi.Year)
	assert.Equal(t, 11, r.SolarTerms.Current.Instant.Hour())

	assert.Equal(t, "斗", r.Astronomy.SunMansion.Name)
	assert.InDelta(t, 269.75, r.Astronomy.SunLongitude, 0.2)
	assert.Len(t, r.Astronomy.Planets, 5)
	assert.NotEqual(t, "--:--", r.TimeKeeping.Sunrise)
	assert.Less(t, r.TimeKeeping.DayFen, r.TimeKeeping.NightFen) // winter
}
