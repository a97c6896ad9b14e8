package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/dayan/internal/contracts"
)

// Kepler is a low-precision geocentric ephemeris from mean orbital
// elements of date with the principal lunar and Jupiter/Saturn
// perturbation terms. Positions are ecliptic of date, good to a few
// arc-minutes for the Sun and planets and ~0.1° for the Moon.
type Kepler struct{}

// New creates the default ephemeris
func New() Kepler {
	return Kepler{}
}

// elements are the mean orbital elements at day number d
type elements struct {
	N, i, w float64 // degrees
	a, e    float64
	M       float64 // degrees
}

type elementFunc func(d float64) elements

var planetElements = map[contracts.Body]elementFunc{
	contracts.BodyMercury: func(d float64) elements {
		return elements{48.3313 + 3.24587e-5*d, 7.0047 + 5.00e-8*d, 29.1241 + 1.01444e-5*d,
			0.387098, 0.205635 + 5.59e-10*d, 168.6562 + 4.0923344368*d}
	},
	contracts.BodyVenus: func(d float64) elements {
		return elements{76.6799 + 2.46590e-5*d, 3.3946 + 2.75e-8*d, 54.8910 + 1.38374e-5*d,
			0.723330, 0.006773 - 1.302e-9*d, 48.0052 + 1.6021302244*d}
	},
	contracts.BodyMars: func(d float64) elements {
		return elements{49.5574 + 2.11081e-5*d, 1.8497 - 1.78e-8*d, 286.5016 + 2.92961e-5*d,
			1.523688, 0.093405 + 2.516e-9*d, 18.6021 + 0.5240207766*d}
	},
	contracts.BodyJupiter: func(d float64) elements {
		return elements{100.4542 + 2.76854e-5*d, 1.3030 - 1.557e-7*d, 273.8777 + 1.64505e-5*d,
			5.20256, 0.048498 + 4.469e-9*d, 19.8950 + 0.0830853001*d}
	},
	contracts.BodySaturn: func(d float64) elements {
		return elements{113.6634 + 2.38980e-5*d, 2.4886 - 1.081e-7*d, 339.3939 + 2.97661e-5*d,
			9.55475, 0.055546 - 9.499e-9*d, 316.9670 + 0.0334442282*d}
	},
}

func sunElements(d float64) elements {
	return elements{0, 0, 282.9404 + 4.70935e-5*d, 1.0, 0.016709 - 1.151e-9*d, 356.0470 + 0.9856002585*d}
}

func moonElements(d float64) elements {
	return elements{125.1228 - 0.0529538083*d, 5.1454, 318.0634 + 0.1643573223*d,
		60.2666, 0.054900, 115.3654 + 13.0649929509*d}
}

// EclipticPosition implements contracts.Ephemeris
func (Kepler) EclipticPosition(body contracts.Body, t time.Time) (contracts.EclipticCoord, error) {
	if t.IsZero() {
		return contracts.EclipticCoord{}, fmt.Errorf("ephemeris: zero instant")
	}
	d := dayNumber(t)

	switch body {
	case contracts.BodySun:
		lon, _ := sunPosition(d)
		return contracts.EclipticCoord{Longitude: rev(lon)}, nil
	case contracts.BodyMoon:
		lon, lat := moonPosition(d)
		return contracts.EclipticCoord{Longitude: rev(lon), Latitude: lat}, nil
	}

	fn, ok := planetElements[body]
	if !ok {
		return contracts.EclipticCoord{}, fmt.Errorf("ephemeris: unknown body %q", body)
	}
	lon, lat := planetPosition(body, fn(d), d)
	return contracts.EclipticCoord{Longitude: rev(lon), Latitude: lat}, nil
}

// dayNumber counts days from 1999-12-31T00:00 UT (JD 2451543.5)
func dayNumber(t time.Time) float64 {
	jd := float64(t.UnixNano())/float64(24*time.Hour) + 2440587.5
	return jd - 2451543.5
}

// orbit solves Kepler's equation and returns true anomaly (deg) and distance
func orbit(el elements) (v, r float64) {
	M := rev(el.M)
	e := el.e
	E := M + e*deg(sind(M))*(1+e*cosd(M))
	for k := 0; k < 10; k++ {
		next := E - (E-e*deg(sind(E))-M)/(1-e*cosd(E))
		if math.Abs(next-E) < 1e-9 {
			E = next
			break
		}
		E = next
	}
	xv := el.a * (cosd(E) - e)
	yv := el.a * math.Sqrt(1-e*e) * sind(E)
	return deg(math.Atan2(yv, xv)), math.Hypot(xv, yv)
}

// toEcliptic rotates an orbit-plane position into ecliptic rectangular coordinates
func toEcliptic(el elements, v, r float64) (x, y, z float64) {
	vw := v + el.w
	x = r * (cosd(el.N)*cosd(vw) - sind(el.N)*sind(vw)*cosd(el.i))
	y = r * (sind(el.N)*cosd(vw) + cosd(el.N)*sind(vw)*cosd(el.i))
	z = r * sind(vw) * sind(el.i)
	return x, y, z
}

// sunPosition returns the Sun's geocentric longitude and distance (AU)
func sunPosition(d float64) (lon, r float64) {
	el := sunElements(d)
	v, r := orbit(el)
	return v + el.w, r
}

func moonPosition(d float64) (lon, lat float64) {
	el := moonElements(d)
	v, r := orbit(el)
	x, y, z := toEcliptic(el, v, r)
	lon = deg(math.Atan2(y, x))
	lat = deg(math.Atan2(z, math.Hypot(x, y)))

	sun := sunElements(d)
	Ms := rev(sun.M)
	Mm := rev(el.M)
	Ls := Ms + sun.w
	Lm := Mm + el.w + el.N
	D := Lm - Ls
	F := Lm - el.N

	lon += -1.274*sind(Mm-2*D) + // evection
		0.658*sind(2*D) + // variation
		-0.186*sind(Ms) + // yearly equation
		-0.059*sind(2*Mm-2*D) +
		-0.057*sind(Mm-2*D+Ms) +
		0.053*sind(Mm+2*D) +
		0.046*sind(2*D-Ms) +
		0.041*sind(Mm-Ms) +
		-0.035*sind(D) + // parallactic
		-0.031*sind(Mm+Ms) +
		-0.015*sind(2*F-2*D) +
		0.011*sind(Mm-4*D)

	lat += -0.173*sind(F-2*D) +
		-0.055*sind(Mm-F-2*D) +
		-0.046*sind(Mm+F-2*D) +
		0.033*sind(F+2*D) +
		0.017*sind(2*Mm+F)

	return lon, lat
}

func planetPosition(body contracts.Body, el elements, d float64) (lon, lat float64) {
	v, r := orbit(el)
	xh, yh, zh := toEcliptic(el, v, r)

	if body == contracts.BodyJupiter || body == contracts.BodySaturn {
		hlon := deg(math.Atan2(yh, xh))
		hlat := deg(math.Atan2(zh, math.Hypot(xh, yh)))
		Mj := rev(planetElements[contracts.BodyJupiter](d).M)
		Msat := rev(planetElements[contracts.BodySaturn](d).M)

		if body == contracts.BodyJupiter {
			hlon += -0.332*sind(2*Mj-5*Msat-67.6) +
				-0.056*sind(2*Mj-2*Msat+21) +
				0.042*sind(3*Mj-5*Msat+21) +
				-0.036*sind(Mj-2*Msat) +
				0.022*cosd(Mj-Msat) +
				0.023*sind(2*Mj-3*Msat+52) +
				-0.016*sind(Mj-5*Msat-69)
		} else {
			hlon += 0.812*sind(2*Mj-5*Msat-67.6) +
				-0.229*cosd(2*Mj-4*Msat-2) +
				0.119*sind(Mj-2*Msat-3) +
				0.046*sind(2*Mj-6*Msat-69) +
				0.014*sind(Mj-3*Msat+32)
			hlat += -0.020*cosd(2*Mj-4*Msat-2) +
				0.018*sind(2*Mj-6*Msat-49)
		}

		xh = r * cosd(hlon) * cosd(hlat)
		yh = r * sind(hlon) * cosd(hlat)
		zh = r * sind(hlat)
	}

	slon, sr := sunPosition(d)
	xg := xh + sr*cosd(slon)
	yg := yh + sr*sind(slon)
	zg := zh

	return deg(math.Atan2(yg, xg)), deg(math.Atan2(zg, math.Hypot(xg, yg)))
}

func sind(x float64) float64 { return math.Sin(x * math.Pi / 180) }
func cosd(x float64) float64 { return math.Cos(x * math.Pi / 180) }
func deg(rad float64) float64 { return rad * 180 / math.Pi }

// rev folds an angle into [0, 360)
func rev(x float64) float64 {
	r := math.Mod(x, 360)
	if r < 0 {
		r += 360
	}
	return r
}
