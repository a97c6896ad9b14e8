package celestial

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/dayan/internal/contracts"
)

// Snapshot is the normalized sky at one instant
type Snapshot struct {
	Instant      time.Time
	Sun          contracts.EclipticCoord
	Moon         contracts.EclipticCoord
	Elongation   float64 // moon - sun, [0, 360)
	Degradations []string
}

// Adapter wraps an Ephemeris and normalizes its output
// ⭐ SSOT: 천체력 호출은 이 어댑터를 통해서만
type Adapter struct {
	eph contracts.Ephemeris
}

// NewAdapter creates an adapter over eph
func NewAdapter(eph contracts.Ephemeris) *Adapter {
	return &Adapter{eph: eph}
}

// Position returns the normalized position of one body.
// Longitude is folded into [0, 360) and latitude clamped to [-90, 90].
func (a *Adapter) Position(body contracts.Body, t time.Time) (contracts.EclipticCoord, error) {
	c, err := a.eph.EclipticPosition(body, t)
	if err != nil {
		return contracts.EclipticCoord{}, fmt.Errorf("ephemeris %s: %w", body, err)
	}
	if math.IsNaN(c.Longitude) || math.IsNaN(c.Latitude) || math.IsInf(c.Longitude, 0) || math.IsInf(c.Latitude, 0) {
		return contracts.EclipticCoord{}, fmt.Errorf("ephemeris %s: non-finite position", body)
	}
	return contracts.EclipticCoord{
		Longitude: Normalize360(c.Longitude),
		Latitude:  math.Max(-90, math.Min(90, c.Latitude)),
	}, nil
}

// Snapshot samples the Sun and the Moon at t.
// A failing body is reported as a degradation with a zero position.
func (a *Adapter) Snapshot(t time.Time) Snapshot {
	snap := Snapshot{Instant: t}

	var err error
	if snap.Sun, err = a.Position(contracts.BodySun, t); err != nil {
		snap.Degradations = append(snap.Degradations, err.Error())
	}
	if snap.Moon, err = a.Position(contracts.BodyMoon, t); err != nil {
		snap.Degradations = append(snap.Degradations, err.Error())
	}
	snap.Elongation = Normalize360(snap.Moon.Longitude - snap.Sun.Longitude)
	return snap
}

// Normalize360 folds any angle into [0, 360)
func Normalize360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// Normalize180 folds an angle difference into (-180, 180]
func Normalize180(deg float64) float64 {
	d := Normalize360(deg)
	if d > 180 {
		d -= 360
	}
	return d
}
