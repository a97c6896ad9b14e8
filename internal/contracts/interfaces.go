package contracts

import "time"

// LunarCalendar converts a civil instant into lunar calendar data
// ⭐ SSOT: 외부 음력 라이브러리 인터페이스
//
// The instant passed in is already expressed in the observation timezone;
// implementations must read its civil fields as-is.
type LunarCalendar interface {
	ToLunar(t time.Time) (LunarDate, error)
}

// Ephemeris returns geocentric ecliptic coordinates of date
// ⭐ SSOT: 외부 천체력 인터페이스
type Ephemeris interface {
	EclipticPosition(body Body, t time.Time) (EclipticCoord, error)
}

// SunClock returns sunrise and sunset for a civil date at a site
// ⭐ SSOT: 외부 일출일몰 인터페이스
//
// ok is false when the sun does not rise or set on that date.
type SunClock interface {
	SunTimes(date time.Time, site Site) (sunrise, sunset time.Time, ok bool)
}

// Site is a fixed geographic observation point
type Site struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ChangAn is the historical reference observatory of the Dayan calendar
var ChangAn = Site{Name: "长安", Latitude: 34.2667, Longitude: 108.9333}

// Body identifies a tracked celestial body
type Body string

const (
	BodySun     Body = "sun"
	BodyMoon    Body = "moon"
	BodyMercury Body = "mercury"
	BodyVenus   Body = "venus"
	BodyMars    Body = "mars"
	BodyJupiter Body = "jupiter"
	BodySaturn  Body = "saturn"
)

// EclipticCoord is a geocentric ecliptic position in degrees
type EclipticCoord struct {
	Longitude float64 `json:"longitude"` // [0, 360)
	Latitude  float64 `json:"latitude"`  // [-90, 90]
}

// LunarDate is everything the engine consumes from the lunar calendar
type LunarDate struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"` // 1-12, always positive
	Day         int    `json:"day"`
	IsLeapMonth bool   `json:"is_leap_month"`
	MonthDays   int    `json:"month_days"` // 29 or 30
	Text        string `json:"text"`       // e.g. 癸卯年 冬月初十

	YearGanZhi  string `json:"year_ganzhi"`
	MonthGanZhi string `json:"month_ganzhi"`
	DayGanZhi   string `json:"day_ganzhi"`
	HourGanZhi  string `json:"hour_ganzhi"`

	// JieQi is the term falling on this civil day, empty otherwise
	JieQi      string               `json:"jieqi"`
	JieQiTable map[string]time.Time `json:"jieqi_table"`
	PrevJieQi  TermInstant          `json:"prev_jieqi"`
	NextJieQi  TermInstant          `json:"next_jieqi"`

	WuHou     string    `json:"wuhou"`
	MoonPhase string    `json:"moon_phase"`
	Zodiac    string    `json:"zodiac"`
	EightChar EightChar `json:"eight_char"`
}

// TermInstant is a named solar term and the instant it begins
type TermInstant struct {
	Name    string    `json:"name"`
	Instant time.Time `json:"instant"`
}

// EightChar is the raw BaZi structure consumed verbatim from the calendar
type EightChar struct {
	Year      PillarSource `json:"year"`
	Month     PillarSource `json:"month"`
	Day       PillarSource `json:"day"`
	Hour      PillarSource `json:"hour"`
	DayMaster string       `json:"day_master"`
	MingGong  string       `json:"ming_gong"`
	TaiYuan   string       `json:"tai_yuan"`
}

// PillarSource is one pillar as delivered by the calendar
type PillarSource struct {
	Gan        string `json:"gan"`
	Zhi        string `json:"zhi"`
	NaYin      string `json:"na_yin"`
	XunKong    string `json:"xun_kong"`
	ShiShenGan string `json:"shi_shen_gan"`
	// HideGan are the stems hidden in the branch (藏干), main stem first
	HideGan []string `json:"hide_gan"`
	// ShiShenZhi is the ten-god of each hidden stem, aligned with HideGan
	ShiShenZhi []string `json:"shi_shen_zhi"`
}
