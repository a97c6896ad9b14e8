package celestial

import (
	"math"
	"time"

	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/internal/mansion"
)

// Planet is one of the five visible planets
type Planet struct {
	Body   contracts.Body
	NameEn string
	NameCn string
}

// Planets are the 五星 in the traditional reporting order
var Planets = []Planet{
	{contracts.BodyMercury, "Mercury", "辰星 (水)"},
	{contracts.BodyVenus, "Venus", "太白 (金)"},
	{contracts.BodyMars, "Mars", "荧惑 (火)"},
	{contracts.BodyJupiter, "Jupiter", "岁星 (木)"},
	{contracts.BodySaturn, "Saturn", "镇星 (土)"},
}

const (
	// SampleInterval is the finite-difference baseline
	SampleInterval = time.Hour

	// StationaryEpsilon is the |Δλ| in degrees below which a planet is 留
	StationaryEpsilon = 1e-4
)

// Classify turns a one-hour longitude change into a motion state
func Classify(delta float64) contracts.MotionState {
	switch {
	case math.Abs(delta) < StationaryEpsilon:
		return contracts.MotionStationary
	case delta < 0:
		return contracts.MotionRetrograde
	default:
		return contracts.MotionDirect
	}
}

// Classifier derives 顺行/逆行/留 for the five planets
type Classifier struct {
	adapter *Adapter
}

// NewClassifier creates a classifier sampling through adapter
func NewClassifier(adapter *Adapter) *Classifier {
	return &Classifier{adapter: adapter}
}

// Observe samples every planet at t and t+1h.
// Planets the ephemeris cannot place are skipped and reported.
func (c *Classifier) Observe(t time.Time) ([]contracts.PlanetObservation, []string) {
	out := make([]contracts.PlanetObservation, 0, len(Planets))
	var degradations []string

	for _, p := range Planets {
		now, err := c.adapter.Position(p.Body, t)
		if err != nil {
			degradations = append(degradations, err.Error())
			continue
		}
		next, err := c.adapter.Position(p.Body, t.Add(SampleInterval))
		if err != nil {
			degradations = append(degradations, err.Error())
			continue
		}

		delta := Normalize180(next.Longitude - now.Longitude)
		motion := Classify(delta)
		out = append(out, contracts.PlanetObservation{
			Body:        p.Body,
			NameEn:      p.NameEn,
			NameCn:      p.NameCn,
			Longitude:   now.Longitude,
			Latitude:    now.Latitude,
			Mansion:     mansion.Locate(now.Longitude),
			Motion:      motion,
			MotionLabel: motion.Label(),
			DeltaDeg:    delta,
		})
	}
	return out, degradations
}
