package lunarpath

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/dayan/internal/contracts"
)

// Forecaster estimates eclipse risk at a single instant
// ⭐ SSOT: 교식 예보 교체 지점 (node / disabled)
type Forecaster interface {
	Name() string
	Forecast(in Input) contracts.EclipseForecast
}

// Input is everything a forecaster may look at
type Input struct {
	Instant       time.Time // already in the observation timezone
	SunLongitude  float64
	MoonLongitude float64
	MoonLatitude  float64
	SunStage      string // 日躔 stage, drives the 气差 correction
	Site          contracts.Site
}

// Elongation is moon minus sun longitude in [0, 360)
func (in Input) Elongation() float64 {
	return normalize360(in.MoonLongitude - in.SunLongitude)
}

// None is the canonical no-eclipse result
func None() contracts.EclipseForecast {
	return contracts.EclipseForecast{
		WillOccur:   false,
		Type:        contracts.EclipseNone,
		TypeName:    "",
		Probability: "无",
		TimeStart:   "--",
		MaxEclipse:  "--",
		Magnitude:   "--",
		Corrections: contracts.EclipseCorrections{
			QiCha:  "无",
			KeCha:  "无",
			GeoCha: "无",
		},
	}
}

// New returns the forecaster registered under name.
// Unknown names fall back to the node-proximity forecaster.
func New(name string) Forecaster {
	if name == "disabled" {
		return Disabled{}
	}
	return NewNodeProximity()
}

// Disabled never forecasts an eclipse
type Disabled struct{}

// Name implements Forecaster
func (Disabled) Name() string { return "disabled" }

// Forecast implements Forecaster
func (Disabled) Forecast(Input) contracts.EclipseForecast { return None() }

// NodeProximity flags an eclipse when the Moon is near syzygy and close
// enough to the ecliptic (i.e. near a node).
type NodeProximity struct {
	SyzygyWindow   float64 // degrees of elongation from 0 or 180
	SolarNodeLimit float64 // |latitude| limit for a solar eclipse
	LunarNodeLimit float64 // |latitude| limit for a lunar eclipse
	RelativeRate   float64 // mean lunar elongation rate, degrees per day
}

// NewNodeProximity returns the forecaster with its standard limits
func NewNodeProximity() NodeProximity {
	return NodeProximity{
		SyzygyWindow:   6,
		SolarNodeLimit: 1.5,
		LunarNodeLimit: 1.0,
		RelativeRate:   12.19,
	}
}

// Name implements Forecaster
func (NodeProximity) Name() string { return "node" }

// Forecast implements Forecaster
func (n NodeProximity) Forecast(in Input) contracts.EclipseForecast {
	elong := in.Elongation()
	lat := math.Abs(in.MoonLatitude)

	var (
		kind     contracts.EclipseType
		typeName string
		limit    float64
		signed   float64 // elongation past syzygy, negative before it
		halfSpan time.Duration
	)

	switch {
	case math.Min(elong, 360-elong) <= n.SyzygyWindow && lat < n.SolarNodeLimit:
		kind, typeName, limit = contracts.EclipseSolar, "日食", n.SolarNodeLimit
		signed = elong
		if signed > 180 {
			signed -= 360
		}
		halfSpan = 90 * time.Minute
	case math.Abs(elong-180) <= n.SyzygyWindow && lat < n.LunarNodeLimit:
		kind, typeName, limit = contracts.EclipseLunar, "月食", n.LunarNodeLimit
		signed = elong - 180
		halfSpan = 2 * time.Hour
	default:
		return None()
	}

	ratio := 1 - lat/limit
	fen := int(math.Ceil(ratio * 10))
	if fen < 1 {
		fen = 1
	}
	if fen > 10 {
		fen = 10
	}

	loc := in.Instant.Location()
	offsetDays := signed / n.RelativeRate
	maxAt := in.Instant.Add(-time.Duration(offsetDays * float64(24*time.Hour)))
	span := time.Duration(float64(halfSpan) * ratio)
	if span < 10*time.Minute {
		span = 10 * time.Minute
	}
	startAt := maxAt.Add(-span)

	return contracts.EclipseForecast{
		WillOccur:   true,
		Type:        kind,
		TypeName:    typeName,
		Probability: probability(ratio),
		TimeStart:   startAt.In(loc).Format("2006-01-02 15:04"),
		MaxEclipse:  maxAt.In(loc).Format("2006-01-02 15:04"),
		Magnitude:   "食" + chineseDigits[fen] + "分",
		Corrections: contracts.EclipseCorrections{
			QiCha:  qiCha(in.SunStage),
			KeCha:  keCha(maxAt.In(loc)),
			GeoCha: geoCha(in.Site),
		},
	}
}

var chineseDigits = [...]string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十"}

func probability(ratio float64) string {
	switch {
	case ratio >= 2.0/3:
		return "高"
	case ratio >= 1.0/3:
		return "中"
	default:
		return "低"
	}
}

func qiCha(stage string) string {
	if stage == "" {
		return "无"
	}
	return "日躔" + stage
}

// keCha is the offset of maximum eclipse from local noon in 刻 (1/100 day)
func keCha(maxAt time.Time) string {
	noon := time.Date(maxAt.Year(), maxAt.Month(), maxAt.Day(), 12, 0, 0, 0, maxAt.Location())
	ke := maxAt.Sub(noon).Minutes() / 14.4
	switch {
	case math.Abs(ke) < 0.5:
		return "正午"
	case ke < 0:
		return fmt.Sprintf("午前 %.0f 刻", -ke)
	default:
		return fmt.Sprintf("午后 %.0f 刻", ke)
	}
}

func geoCha(site contracts.Site) string {
	if site.Name == "" {
		return "无"
	}
	return fmt.Sprintf("%s (%.2f°)", site.Name, site.Latitude)
}

func normalize360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
