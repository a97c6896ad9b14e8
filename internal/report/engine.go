package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/dayan/internal/celestial"
	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/internal/external/ephemeris"
	"github.com/wonny/dayan/internal/external/lunarcal"
	"github.com/wonny/dayan/internal/external/suntime"
	"github.com/wonny/dayan/internal/guaqi"
	"github.com/wonny/dayan/internal/lunarpath"
	"github.com/wonny/dayan/internal/mansion"
	"github.com/wonny/dayan/internal/solarterm"
	"github.com/wonny/dayan/internal/timekeeping"
)

// DefaultTimezone is the observation timezone when none is configured
const DefaultTimezone = "Asia/Shanghai"

// Options wires the engine's collaborators.
// Nil collaborators are replaced by the default adapters.
type Options struct {
	Calendar   contracts.LunarCalendar
	Ephemeris  contracts.Ephemeris
	SunClock   contracts.SunClock
	Forecaster lunarpath.Forecaster
	Site       contracts.Site
	Timezone   string
}

// Engine assembles the full Dayan report for an instant
// ⭐ SSOT: 리포트 조립은 여기서만
//
// The engine holds no mutable state and Compute is safe for concurrent use.
type Engine struct {
	calendar   contracts.LunarCalendar
	sunClock   contracts.SunClock
	sky        *celestial.Adapter
	planets    *celestial.Classifier
	terms      *solarterm.Resolver
	forecaster lunarpath.Forecaster

	site contracts.Site
	loc  *time.Location

	// locNote is set when the configured timezone could not be loaded
	locNote string
}

// New creates an engine
func New(opts Options) *Engine {
	if opts.Calendar == nil {
		opts.Calendar = lunarcal.New()
	}
	if opts.Ephemeris == nil {
		opts.Ephemeris = ephemeris.New()
	}
	if opts.SunClock == nil {
		opts.SunClock = suntime.New()
	}
	if opts.Forecaster == nil {
		opts.Forecaster = lunarpath.New("node")
	}
	if opts.Site == (contracts.Site{}) {
		opts.Site = contracts.ChangAn
	}

	loc, err := LoadLocation(opts.Timezone)
	var note string
	if err != nil {
		note = err.Error()
	}

	cal := guardedCalendar{inner: opts.Calendar}
	sky := celestial.NewAdapter(opts.Ephemeris)
	return &Engine{
		calendar:   cal,
		sunClock:   opts.SunClock,
		sky:        sky,
		planets:    celestial.NewClassifier(sky),
		terms:      solarterm.NewResolver(cal, loc),
		forecaster: opts.Forecaster,
		site:       opts.Site,
		loc:        loc,
		locNote:    note,
	}
}

// LoadLocation loads name (default Asia/Shanghai).
// On failure it returns a fixed UTC+8 zone together with the error.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("CST", 8*3600), fmt.Errorf("timezone %q unavailable, using UTC+8: %w", name, err)
	}
	return loc, nil
}

// Location returns the observation timezone
func (e *Engine) Location() *time.Location { return e.loc }

// Site returns the observation site
func (e *Engine) Site() contracts.Site { return e.site }

// ForecasterName returns the active eclipse forecaster
func (e *Engine) ForecasterName() string { return e.forecaster.Name() }

// Compute builds the report for t. It never fails; every fallback taken
// is listed in the report's Degradations.
func (e *Engine) Compute(t time.Time) *contracts.DayanReport {
	degradations := []string{}
	if e.locNote != "" {
		degradations = append(degradations, e.locNote)
	}
	if t.IsZero() {
		degradations = append(degradations, "zero instant")
	}
	t = t.In(e.loc)

	// 1. 음력
	lunar, err := e.toLunar(t)
	if err != nil {
		degradations = append(degradations, err.Error())
	}

	// 2. 步轨漏
	ledger := timekeeping.Account(t, e.sunTimes(t))
	if ledger.Degraded {
		degradations = append(degradations, "timekeeping: "+ledger.Reason)
	}

	// 3. 步中朔
	pos := e.terms.Resolve(t, lunar, ledger.CurrentDayFen)
	degradations = append(degradations, pos.Degradations...)
	month := solarterm.Month(lunar, ledger.CurrentDayFen)

	ordinal := pos.Terms.Current.Ordinal
	if ordinal < 0 {
		ordinal = solarterm.OrdinalFromFen(pos.AccumulatedYearFen)
	}

	// 4. 步发敛
	daily := guaqi.Resolve(pos.AccumulatedYearFen)
	var sovereign contracts.Hexagram
	if lunar.Month != 0 {
		sovereign = guaqi.Sovereign(lunar.Month)
	} else {
		sovereign = guaqi.SovereignByTerm(ordinal)
		degradations = append(degradations, "sovereign hexagram derived from solar term")
	}

	// 5. 天象
	snap := e.sky.Snapshot(t)
	degradations = append(degradations, snap.Degradations...)
	planets, planetNotes := e.planets.Observe(t)
	degradations = append(degradations, planetNotes...)

	sunMansion := mansion.Locate(snap.Sun.Longitude)
	moonMansion := mansion.Locate(snap.Moon.Longitude)

	eclipse := lunarpath.None()
	if len(snap.Degradations) == 0 {
		eclipse = e.forecaster.Forecast(lunarpath.Input{
			Instant:       t,
			SunLongitude:  snap.Sun.Longitude,
			MoonLongitude: snap.Moon.Longitude,
			MoonLatitude:  snap.Moon.Latitude,
			SunStage:      pos.SunState.Stage,
			Site:          e.site,
		})
	} else {
		degradations = append(degradations, "eclipse forecast skipped without sun and moon positions")
	}

	nextTerm := pos.Terms.Next.Name
	if nextTerm == "" {
		nextTerm = solarterm.Name(ordinal + 1)
	}

	return &contracts.DayanReport{
		ID:       ReportID(t, e.site),
		Instant:  t,
		Timezone: e.loc.String(),
		Site:     e.site,

		LunarDateText: lunar.Text,
		GanZhi: contracts.GanZhi{
			Year:  lunar.YearGanZhi,
			Month: lunar.MonthGanZhi,
			Day:   lunar.DayGanZhi,
			Hour:  lunar.HourGanZhi,
		},
		BaZi: buildBaZi(lunar.EightChar),

		SolarTerms: pos.Terms,
		Pentad: contracts.Pentad{
			Name:         lunar.WuHou,
			Position:     pos.Hou,
			PositionName: pos.Hou.Name(),
			DaysIntoTerm: pos.DaysIntoTerm,
		},
		Calculation: contracts.Calculation{
			DongZhiAnchor:       pos.Anchor,
			DaysSinceDongZhi:    pos.DaysSinceDongZhi,
			CurrentDayFen:       ledger.CurrentDayFen,
			AccumulatedYearFen:  pos.AccumulatedYearFen,
			DaysSinceShuo:       month.DaysSinceShuo,
			AccumulatedMonthFen: month.AccumulatedMonthFen,
			CurrentTermName:     pos.Terms.Current.Name,
			NextTermName:        nextTerm,
			FenToNextTerm:       pos.FenToNextTerm,
			IsBigMonth:          month.IsBigMonth,
			LeapInfo:            month.LeapInfo,
			CurrentHou:          pos.Hou.Name(),
		},

		SovereignHexagram: sovereign,
		DailyGua:          daily,

		SunState:      pos.SunState,
		MoonPhase:     lunar.MoonPhase,
		Constellation: moonMansion.Name + "宿",
		Zodiac:        lunar.Zodiac,

		TimeKeeping: ledger.TimeKeeping,

		Astronomy: contracts.Astronomy{
			SunLongitude:  snap.Sun.Longitude,
			SunMansion:    sunMansion,
			MoonLongitude: snap.Moon.Longitude,
			MoonLatitude:  snap.Moon.Latitude,
			MoonMansion:   moonMansion,
			Elongation:    snap.Elongation,
			NineRoads:     lunarpath.Classify(snap.Moon.Latitude),
			Planets:       planets,
			Eclipse:       eclipse,
		},

		Math:         contracts.Math(),
		Degradations: degradations,
	}
}

func (e *Engine) toLunar(t time.Time) (contracts.LunarDate, error) {
	lunar, err := e.calendar.ToLunar(t)
	if err != nil {
		return contracts.LunarDate{}, fmt.Errorf("lunar calendar: %w", err)
	}
	return lunar, nil
}

// guardedCalendar turns a panicking calendar into an erroring one.
// The solstice probe goes through it too.
type guardedCalendar struct {
	inner contracts.LunarCalendar
}

func (g guardedCalendar) ToLunar(t time.Time) (lunar contracts.LunarDate, err error) {
	defer func() {
		if r := recover(); r != nil {
			lunar, err = contracts.LunarDate{}, fmt.Errorf("panic: %v", r)
		}
	}()
	return g.inner.ToLunar(t)
}

// sunTimes looks up sunrise and sunset for the civil day of t
func (e *Engine) sunTimes(t time.Time) timekeeping.SunTimes {
	if t.IsZero() {
		return timekeeping.SunTimes{}
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.loc)
	rise, set, ok := e.sunClock.SunTimes(midnight, e.site)
	return timekeeping.SunTimes{Sunrise: rise, Sunset: set, OK: ok}
}

// ReportID is the deterministic identifier of the report for t at site
func ReportID(t time.Time, site contracts.Site) string {
	name := fmt.Sprintf("dayan:%s:%.4f,%.4f:%s", site.Name, site.Latitude, site.Longitude, t.UTC().Format(time.RFC3339Nano))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
