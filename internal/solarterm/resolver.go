package solarterm

import (
	"fmt"
	"time"

	"github.com/wonny/dayan/internal/contracts"
)

const day = 24 * time.Hour

// Position is where an instant sits in the solar year
type Position struct {
	Anchor         time.Time
	AnchorFallback bool

	DaysSinceDongZhi   int64
	AccumulatedYearFen int64
	FenToNextTerm      int64

	Terms        contracts.SolarTerms
	DaysIntoTerm int
	Hou          contracts.HouPosition
	SunState     contracts.SunState

	Degradations []string
}

// Resolver locates the Winter Solstice anchor and the active term
// ⭐ SSOT: 동지 기준점 + 절기/후 판정
type Resolver struct {
	calendar contracts.LunarCalendar
	loc      *time.Location
}

// NewResolver creates a resolver reading civil dates in loc
func NewResolver(calendar contracts.LunarCalendar, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{calendar: calendar, loc: loc}
}

// Anchor returns the civil midnight of the latest 冬至 day not after t.
// The second result is true when no candidate qualified and the
// Dec 22 fallback of the previous year was used.
func (r *Resolver) Anchor(t time.Time) (time.Time, bool) {
	t = t.In(r.loc)
	year := t.Year()

	var best time.Time
	for _, y := range []int{year, year - 1} {
		for d := 20; d <= 23; d++ {
			candidate := time.Date(y, time.December, d, 0, 0, 0, 0, r.loc)
			if candidate.After(t) {
				continue
			}
			lunar, err := r.calendar.ToLunar(candidate)
			if err != nil || lunar.JieQi != DongZhi {
				continue
			}
			if best.IsZero() || candidate.After(best) {
				best = candidate
			}
		}
	}

	if best.IsZero() {
		return time.Date(year-1, time.December, 22, 0, 0, 0, 0, r.loc), true
	}
	return best, false
}

// Resolve computes the year position of t.
// lunar must be the calendar data of t itself; currentDayFen comes from
// the time ledger so both counters share one timezone.
func (r *Resolver) Resolve(t time.Time, lunar contracts.LunarDate, currentDayFen int64) Position {
	t = t.In(r.loc)
	var pos Position

	pos.Anchor, pos.AnchorFallback = r.Anchor(t)
	if pos.AnchorFallback {
		pos.Degradations = append(pos.Degradations,
			fmt.Sprintf("no 冬至 found in Dec 20-23 window, anchored at %s", pos.Anchor.Format("2006-01-02")))
	}

	pos.DaysSinceDongZhi = floorDays(t.Sub(pos.Anchor))
	if pos.DaysSinceDongZhi < 0 {
		pos.DaysSinceDongZhi = 0
	}
	pos.AccumulatedYearFen = pos.DaysSinceDongZhi*contracts.TongFa + currentDayFen
	pos.FenToNextTerm = FenToNextTerm(pos.AccumulatedYearFen)

	pos.Terms = r.terms(t, lunar)
	if pos.Terms.Current.Name == "" {
		// calendar gave nothing usable, fall back to the mean term
		ordinal := OrdinalFromFen(pos.AccumulatedYearFen)
		pos.Terms.Current = meanMark(pos.Anchor, ordinal)
		if pos.Terms.Previous.Name == "" {
			pos.Terms.Previous = meanMark(pos.Anchor, ordinal-1)
		}
		if pos.Terms.Next.Name == "" {
			pos.Terms.Next = meanMark(pos.Anchor, ordinal+1)
		}
		pos.Degradations = append(pos.Degradations, "current solar term derived from mean term length")
	}

	if !pos.Terms.Current.Instant.IsZero() {
		pos.DaysIntoTerm = int(floorDays(t.Sub(pos.Terms.Current.Instant)))
	}
	if pos.DaysIntoTerm < 0 {
		pos.DaysIntoTerm = 0
	}
	pos.Hou = HouFor(pos.DaysIntoTerm)

	ordinal := pos.Terms.Current.Ordinal
	if ordinal < 0 {
		ordinal = OrdinalFromFen(pos.AccumulatedYearFen)
	}
	pos.SunState = SunStage(ordinal)

	return pos
}

// terms builds the previous/current/next triple from the calendar data
func (r *Resolver) terms(t time.Time, lunar contracts.LunarDate) contracts.SolarTerms {
	mark := func(ti contracts.TermInstant) contracts.SolarTermMark {
		return contracts.SolarTermMark{Name: ti.Name, Instant: ti.Instant.In(r.loc), Ordinal: Ordinal(ti.Name)}
	}

	out := contracts.SolarTerms{
		Previous: mark(lunar.PrevJieQi),
		Next:     mark(lunar.NextJieQi),
	}

	if lunar.JieQi != "" {
		instant := t
		if at, ok := lunar.JieQiTable[lunar.JieQi]; ok {
			instant = at.In(r.loc)
		}
		out.Current = contracts.SolarTermMark{Name: lunar.JieQi, Instant: instant, Ordinal: Ordinal(lunar.JieQi)}
	} else {
		out.Current = out.Previous
	}
	return out
}

// meanMark places term k (may step past either end of the year) at k mean
// 气策 after the anchor
func meanMark(anchor time.Time, k int) contracts.SolarTermMark {
	ordinal := k % len(termOrder)
	if ordinal < 0 {
		ordinal += len(termOrder)
	}
	return contracts.SolarTermMark{
		Name:    Name(k),
		Instant: anchor.Add(fenToDuration(int64(k) * contracts.QiCe)),
		Ordinal: ordinal,
	}
}

// floorDays counts whole days in d, rounding toward negative infinity
func floorDays(d time.Duration) int64 {
	q := d / day
	if d%day < 0 {
		q--
	}
	return int64(q)
}

// fenToDuration converts a fen count to wall-clock time
func fenToDuration(fen int64) time.Duration {
	return time.Duration(float64(fen) / float64(contracts.TongFa) * float64(day))
}
