package timekeeping

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/dayan/internal/contracts"
)

// SentinelClock is shown whenever a time of day cannot be computed
const SentinelClock = "--:--"

const (
	day = 24 * time.Hour

	// gengPerNight is the number of night watches (五更)
	gengPerNight = 5
)

// SunTimes is the sunrise/sunset pair for one civil day
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
	OK      bool
}

// Ledger is the fen accounting of one instant inside its civil day
type Ledger struct {
	CurrentDayFen int64
	TimeKeeping   contracts.TimeKeeping
	Degraded      bool
	Reason        string
}

// CurrentDayFen converts the civil time of day to fen, [0, 3040).
// The location of t is taken as the observation timezone.
func CurrentDayFen(t time.Time) int64 {
	ms := int64(t.Hour())*3_600_000 + int64(t.Minute())*60_000 + int64(t.Second())*1_000 + int64(t.Nanosecond()/1e6)
	fen := int64(math.Round(float64(ms) / float64(day.Milliseconds()) * float64(contracts.TongFa)))
	if fen >= contracts.TongFa {
		fen = contracts.TongFa - 1
	}
	return fen
}

// Account runs the 轨漏 accounting for instant t.
// ⭐ SSOT: 주야 분(分)/각(刻)/경(更) 계산은 여기서만
//
// Degenerate sun times never fail: the day is split 50/50 and Degraded is set.
func Account(t time.Time, sun SunTimes) Ledger {
	ledger := Ledger{CurrentDayFen: CurrentDayFen(t)}
	loc := t.Location()

	dayLength := sun.Sunset.Sub(sun.Sunrise)
	switch {
	case !sun.OK || sun.Sunrise.IsZero() || sun.Sunset.IsZero():
		ledger.Degraded, ledger.Reason = true, "sunrise/sunset unavailable"
	case dayLength <= 0 || dayLength > day:
		ledger.Degraded, ledger.Reason = true, fmt.Sprintf("implausible day length %s", dayLength)
	}

	if ledger.Degraded {
		half := contracts.TongFa / 2
		ledger.TimeKeeping = contracts.TimeKeeping{
			Sunrise:     SentinelClock,
			Sunset:      SentinelClock,
			DayLength:   SentinelClock,
			NightLength: SentinelClock,
			DayFen:      half,
			NightFen:    contracts.TongFa - half,
			DayKe:       50,
			NightKe:     50,
			OneGengFen:  (contracts.TongFa - half) / gengPerNight,
		}
		return ledger
	}

	ratio := float64(dayLength) / float64(day)
	dayFen := int64(math.Round(ratio * float64(contracts.TongFa)))
	if dayFen < 0 {
		dayFen = 0
	}
	if dayFen > contracts.TongFa {
		dayFen = contracts.TongFa
	}
	nightFen := contracts.TongFa - dayFen
	dayKe := round2(ratio * 100)

	ledger.TimeKeeping = contracts.TimeKeeping{
		Sunrise:     FormatClock(sun.Sunrise, loc),
		Sunset:      FormatClock(sun.Sunset, loc),
		DayLength:   FormatDuration(dayLength),
		NightLength: FormatDuration(day - dayLength),
		DayFen:      dayFen,
		NightFen:    nightFen,
		DayKe:       dayKe,
		NightKe:     round2(100 - dayKe),
		OneGengFen:  nightFen / gengPerNight,
	}
	return ledger
}

// FormatClock renders HH:MM in loc, or the sentinel for a zero time
func FormatClock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return SentinelClock
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

// FormatDuration renders a duration as H小时 M分
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int64(d / time.Hour)
	mins := int64((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%d小时 %d分", hours, mins)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
