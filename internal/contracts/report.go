package contracts

import "time"

// DayanReport is the complete calendar state for one instant
// ⭐ SSOT: ReportAssembler → API/CLI/Journal 데이터 전달
//
// A report is built fresh per query and owns all of its parts by value.
type DayanReport struct {
	ID       string    `json:"id"`
	Instant  time.Time `json:"instant"`
	Timezone string    `json:"timezone"`
	Site     Site      `json:"site"`

	LunarDateText string `json:"lunar_date_text"`
	GanZhi        GanZhi `json:"ganzhi"`
	BaZi          BaZi   `json:"bazi"`

	// 步中朔
	SolarTerms  SolarTerms  `json:"solar_terms"`
	Pentad      Pentad      `json:"pentad"`
	Calculation Calculation `json:"calculation"`

	// 步发敛
	SovereignHexagram Hexagram   `json:"sovereign_hexagram"`
	DailyGua          GuaQiState `json:"daily_gua"`

	// 步日躔 / 步月离
	SunState      SunState `json:"sun_state"`
	MoonPhase     string   `json:"moon_phase"`
	Constellation string   `json:"constellation"` // moon mansion name
	Zodiac        string   `json:"zodiac"`

	// 步轨漏
	TimeKeeping TimeKeeping `json:"time_keeping"`

	// 天象奏单
	Astronomy Astronomy `json:"astronomy"`

	Math DayanMath `json:"math"`

	// Degradations lists every fallback taken while computing the report
	Degradations []string `json:"degradations"`
}

// GanZhi holds the four stem-branch strings
type GanZhi struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
	Hour  string `json:"hour"`
}

// Pillar is one BaZi pillar with its derived element pair
type Pillar struct {
	GanZhi     string   `json:"ganzhi"`
	Gan        string   `json:"gan"`
	Zhi        string   `json:"zhi"`
	NaYin      string   `json:"na_yin"`
	WuXing     string   `json:"wu_xing"` // stem element + branch element
	XunKong    string   `json:"xun_kong"`
	ShiShenGan string   `json:"shi_shen_gan"`
	HideGan    []string `json:"hide_gan"`     // 藏干
	ShiShenZhi []string `json:"shi_shen_zhi"` // 支十神, one per hidden stem
}

// BaZi is the four-pillar chart
type BaZi struct {
	Year        Pillar         `json:"year"`
	Month       Pillar         `json:"month"`
	Day         Pillar         `json:"day"`
	Hour        Pillar         `json:"hour"`
	DayMaster   string         `json:"day_master"`
	WuXingTally []ElementCount `json:"wu_xing_tally"` // fixed order 金木水火土
	WuXingCount string         `json:"wu_xing_count"` // e.g. "2金 3木 1水 2土"
	MingGong    string         `json:"ming_gong"`
	TaiYuan     string         `json:"tai_yuan"`
}

// ElementCount is how many stems and branches carry one element
type ElementCount struct {
	Element string `json:"element"`
	Count   int    `json:"count"`
}

// SolarTermMark is one of the 24 solar terms
type SolarTermMark struct {
	Name    string    `json:"name"`
	Instant time.Time `json:"instant"`
	Ordinal int       `json:"ordinal"` // 0 = 冬至, -1 when unknown
}

// SolarTerms is the previous/current/next term triple
type SolarTerms struct {
	Previous SolarTermMark `json:"previous"`
	Current  SolarTermMark `json:"current"`
	Next     SolarTermMark `json:"next"`
}

// HouPosition is the ternary pentad position inside a term
type HouPosition int

const (
	HouEarly HouPosition = iota // 初候
	HouMid                      // 次候
	HouLate                     // 末候
)

// Name returns the traditional label
func (h HouPosition) Name() string {
	switch h {
	case HouMid:
		return "次候"
	case HouLate:
		return "末候"
	default:
		return "初候"
	}
}

// Pentad describes the current 候
type Pentad struct {
	Name         string      `json:"name"` // phenology text from the calendar
	Position     HouPosition `json:"position"`
	PositionName string      `json:"position_name"`
	DaysIntoTerm int         `json:"days_into_term"`
}

// Calculation holds the fen counters that drive the cycles
type Calculation struct {
	DongZhiAnchor      time.Time `json:"dong_zhi_anchor"`
	DaysSinceDongZhi   int64     `json:"days_since_dong_zhi"`
	CurrentDayFen      int64     `json:"current_day_fen"`
	AccumulatedYearFen int64     `json:"accumulated_year_fen"`

	DaysSinceShuo       int64 `json:"days_since_shuo"`
	AccumulatedMonthFen int64 `json:"accumulated_month_fen"`

	CurrentTermName string `json:"current_term_name"`
	NextTermName    string `json:"next_term_name"`
	FenToNextTerm   int64  `json:"fen_to_next_term"`

	IsBigMonth bool   `json:"is_big_month"`
	LeapInfo   string `json:"leap_info"`
	CurrentHou string `json:"current_hou"`
}

// Hexagram is a static six-line figure
type Hexagram struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Lines       string `json:"lines"` // bottom to top, 1 = solid
	Nature      string `json:"nature"`
	Description string `json:"description"`
	KingWen     int    `json:"king_wen"`
}

// GuaQiState is the daily 卦气 duty state
type GuaQiState struct {
	Hexagram        Hexagram `json:"hexagram"`
	GuaIndex        int      `json:"gua_index"`    // [0, 60)
	FenIntoGua      int64    `json:"fen_into_gua"` // [0, 18493)
	DaysIntoGua     int64    `json:"days_into_gua"`
	YaoIndex        int      `json:"yao_index"` // [0, 6], 6 = 用
	YaoName         string   `json:"yao_name"`
	YaoText         string   `json:"yao_text"`
	Significance    string   `json:"significance"`
	IsYong          bool     `json:"is_yong"`
	IsYang          bool     `json:"is_yang"`
	CurrentFenInYao int64    `json:"current_fen_in_yao"`
	TotalFenInYao   int64    `json:"total_fen_in_yao"`
}

// SunState is the 日躔 solar inequality stage
type SunState struct {
	Stage          string  `json:"stage"` // 盈初, 盈末, 缩初, 缩末
	Description    string  `json:"description"`
	SolarLongitude float64 `json:"solar_longitude"` // nominal, from the term ordinal
}

// TimeKeeping is the 轨漏 clepsydra accounting of the civil day
type TimeKeeping struct {
	Sunrise     string  `json:"sunrise"`
	Sunset      string  `json:"sunset"`
	DayLength   string  `json:"day_length"`
	NightLength string  `json:"night_length"`
	DayFen      int64   `json:"day_fen"`
	NightFen    int64   `json:"night_fen"`
	DayKe       float64 `json:"day_ke"`
	NightKe     float64 `json:"night_ke"`
	OneGengFen  int64   `json:"one_geng_fen"`
}

// MansionPosition is a point on the 28-mansion ring
type MansionPosition struct {
	Index    int     `json:"index"` // 0 = 角
	Name     string  `json:"name"`
	Palace   string  `json:"palace"`
	OffsetDu float64 `json:"offset_du"` // [0, WidthDu)
	WidthDu  float64 `json:"width_du"`
	RingDu   float64 `json:"ring_du"` // [0, 365.25)
	Label    string  `json:"label"`
}

// MotionState classifies apparent planetary motion
type MotionState string

const (
	MotionDirect     MotionState = "direct"
	MotionRetrograde MotionState = "retrograde"
	MotionStationary MotionState = "stationary"
)

// Label returns the traditional term
func (m MotionState) Label() string {
	switch m {
	case MotionRetrograde:
		return "逆行"
	case MotionStationary:
		return "留"
	default:
		return "顺行"
	}
}

// PlanetObservation is one of the five visible planets at the instant
type PlanetObservation struct {
	Body        Body            `json:"body"`
	NameEn      string          `json:"name_en"`
	NameCn      string          `json:"name_cn"`
	Longitude   float64         `json:"longitude"`
	Latitude    float64         `json:"latitude"`
	Mansion     MansionPosition `json:"mansion"`
	Motion      MotionState     `json:"motion"`
	MotionLabel string          `json:"motion_label"`
	DeltaDeg    float64         `json:"delta_deg"` // longitude change over one hour
}

// NineRoads is the 九道 classification of the lunar path
type NineRoads struct {
	CurrentRoad  string  `json:"current_road"`
	Description  string  `json:"description"`
	MoonLatitude float64 `json:"moon_latitude"`
}

// EclipseType names the kind of eclipse
type EclipseType string

const (
	EclipseNone  EclipseType = "none"
	EclipseSolar EclipseType = "solar"
	EclipseLunar EclipseType = "lunar"
)

// EclipseCorrections are the 气差/刻差/加差 style adjustments
type EclipseCorrections struct {
	QiCha  string `json:"qi_cha"`
	KeCha  string `json:"ke_cha"`
	GeoCha string `json:"geo_cha"`
}

// EclipseForecast is the eclipse risk at the instant
type EclipseForecast struct {
	WillOccur   bool               `json:"will_occur"`
	Type        EclipseType        `json:"type"`
	TypeName    string             `json:"type_name"`
	Probability string             `json:"probability"`
	TimeStart   string             `json:"time_start"`
	MaxEclipse  string             `json:"max_eclipse"`
	Magnitude   string             `json:"magnitude"`
	Corrections EclipseCorrections `json:"corrections"`
}

// Astronomy is the 天象 section driven by the ephemeris
type Astronomy struct {
	SunLongitude  float64             `json:"sun_longitude"`
	SunMansion    MansionPosition     `json:"sun_mansion"`
	MoonLongitude float64             `json:"moon_longitude"`
	MoonLatitude  float64             `json:"moon_latitude"`
	MoonMansion   MansionPosition     `json:"moon_mansion"`
	Elongation    float64             `json:"elongation"` // moon - sun, [0, 360)
	NineRoads     NineRoads           `json:"nine_roads"`
	Planets       []PlanetObservation `json:"planets"`
	Eclipse       EclipseForecast     `json:"eclipse"`
}

// DayanMath exposes the defining constants for display and audit
type DayanMath struct {
	DayanNumber          int     `json:"dayan_number"`
	TongFa               int64   `json:"tong_fa"`
	Derivation           string  `json:"derivation"`
	ShuoShi              int64   `json:"shuo_shi"`
	SynodicMonthFraction string  `json:"synodic_month_fraction"`
	CeShi                int64   `json:"ce_shi"`
	TropicalYearFraction string  `json:"tropical_year_fraction"`
	QiCe                 int64   `json:"qi_ce"`
	GuaDuration          int64   `json:"gua_duration"`
	YaoDuration          int64   `json:"yao_duration"`
	CircleDu             float64 `json:"circle_du"`
}
