package timekeeping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dayan/internal/contracts"
)

var cst = time.FixedZone("CST", 8*3600)

func TestCurrentDayFen(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want int64
	}{
		{"midnight", time.Date(2024, 3, 1, 0, 0, 0, 0, cst), 0},
		{"noon", time.Date(2024, 3, 1, 12, 0, 0, 0, cst), 1520},
		{"six", time.Date(2024, 3, 1, 6, 0, 0, 0, cst), 760},
		{"solstice 05:27", time.Date(2023, 12, 22, 5, 27, 0, 0, cst), 690},
		{"last second clamps", time.Date(2024, 3, 1, 23, 59, 59, 0, cst), 3039},
		{"hundred fen", time.Date(2024, 3, 1, 0, 47, 22, 0, cst), 100},
		{"below half fen", time.Date(2024, 3, 1, 0, 1, 11, 0, cst), 2},
		{"milliseconds cross half fen", time.Date(2024, 3, 1, 0, 1, 11, 999_000_000, cst), 3},
		{"sub-millisecond ignored", time.Date(2024, 3, 1, 0, 1, 11, 999_999, cst), 2},
		{"last millisecond clamps", time.Date(2024, 3, 1, 23, 59, 59, 999_000_000, cst), 3039},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentDayFen(tt.at))
		})
	}
}

func TestAccount_Equinox(t *testing.T) {
	at := time.Date(2024, 3, 20, 9, 0, 0, 0, cst)
	sun := SunTimes{
		Sunrise: time.Date(2024, 3, 19, 22, 30, 0, 0, time.UTC), // 06:30 CST
		Sunset:  time.Date(2024, 3, 20, 10, 30, 0, 0, time.UTC), // 18:30 CST
		OK:      true,
	}

	l := Account(at, sun)
	require.False(t, l.Degraded)

	tk := l.TimeKeeping
	assert.Equal(t, "06:30", tk.Sunrise)
	assert.Equal(t, "18:30", tk.Sunset)
	assert.Equal(t, "12小时 0分", tk.DayLength)
	assert.Equal(t, "12小时 0分", tk.NightLength)
	assert.Equal(t, int64(1520), tk.DayFen)
	assert.Equal(t, int64(1520), tk.NightFen)
	assert.Equal(t, 50.0, tk.DayKe)
	assert.Equal(t, 50.0, tk.NightKe)
	assert.Equal(t, int64(304), tk.OneGengFen)
	assert.Equal(t, int64(1140), l.CurrentDayFen)
}

func TestAccount_FenIdentity(t *testing.T) {
	base := time.Date(2024, 6, 21, 5, 0, 0, 0, cst)
	for minutes := 1; minutes < 24*60; minutes += 7 {
		sun := SunTimes{Sunrise: base, Sunset: base.Add(time.Duration(minutes) * time.Minute), OK: true}
		tk := Account(base, sun).TimeKeeping

		assert.Equal(t, contracts.TongFa, tk.DayFen+tk.NightFen, "minutes=%d", minutes)
		assert.Equal(t, tk.NightFen/5, tk.OneGengFen, "minutes=%d", minutes)
		assert.InDelta(t, 100.0, tk.DayKe+tk.NightKe, 0.011, "minutes=%d", minutes)
	}
}

func TestAccount_LongSummerDay(t *testing.T) {
	at := time.Date(2024, 6, 21, 12, 0, 0, 0, cst)
	sun := SunTimes{
		Sunrise: time.Date(2024, 6, 21, 5, 0, 0, 0, cst),
		Sunset:  time.Date(2024, 6, 21, 19, 45, 30, 0, cst),
		OK:      true,
	}
	tk := Account(at, sun).TimeKeeping

	assert.Equal(t, "14小时 45分", tk.DayLength)
	assert.Equal(t, "9小时 14分", tk.NightLength)
	assert.Equal(t, int64(1869), tk.DayFen) // 14.7583h / 24 × 3040 = 1869.4
	assert.Equal(t, int64(1171), tk.NightFen)
	assert.Equal(t, 61.49, tk.DayKe)
	assert.Equal(t, 38.51, tk.NightKe)
	assert.Equal(t, int64(234), tk.OneGengFen)
}

func TestAccount_Degenerate(t *testing.T) {
	at := time.Date(2024, 6, 21, 12, 0, 0, 0, cst)
	rise := time.Date(2024, 6, 21, 5, 0, 0, 0, cst)

	cases := map[string]SunTimes{
		"not ok":          {Sunrise: rise, Sunset: rise.Add(time.Hour), OK: false},
		"zero times":      {OK: true},
		"sunset first":    {Sunrise: rise, Sunset: rise.Add(-time.Hour), OK: true},
		"longer than day": {Sunrise: rise, Sunset: rise.Add(25 * time.Hour), OK: true},
	}
	for name, sun := range cases {
		t.Run(name, func(t *testing.T) {
			l := Account(at, sun)
			assert.True(t, l.Degraded)
			assert.NotEmpty(t, l.Reason)
			assert.Equal(t, SentinelClock, l.TimeKeeping.Sunrise)
			assert.Equal(t, SentinelClock, l.TimeKeeping.Sunset)
			assert.Equal(t, int64(1520), l.TimeKeeping.DayFen)
			assert.Equal(t, int64(1520), l.TimeKeeping.NightFen)
			assert.Equal(t, 50.0, l.TimeKeeping.DayKe)
			assert.Equal(t, 50.0, l.TimeKeeping.NightKe)
			assert.Equal(t, int64(1520), l.CurrentDayFen)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, SentinelClock, FormatClock(time.Time{}, cst))
	assert.Equal(t, "08:05", FormatClock(time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), cst))
	assert.Equal(t, "00:05", FormatClock(time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), nil))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0小时 0分", FormatDuration(-time.Minute))
	assert.Equal(t, "9小时 59分", FormatDuration(9*time.Hour+59*time.Minute+59*time.Second))
}
