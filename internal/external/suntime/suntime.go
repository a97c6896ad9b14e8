package suntime

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/wonny/dayan/internal/contracts"
)

// Clock computes sunrise and sunset with github.com/nathan-osman/go-sunrise
type Clock struct{}

// New creates a sun clock
func New() Clock {
	return Clock{}
}

// SunTimes implements contracts.SunClock.
// The civil date of date (in its own location) selects the day.
func (Clock) SunTimes(date time.Time, site contracts.Site) (time.Time, time.Time, bool) {
	rise, set := sunrise.SunriseSunset(site.Latitude, site.Longitude, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() || !set.After(rise) {
		return time.Time{}, time.Time{}, false
	}
	loc := date.Location()
	return rise.In(loc), set.In(loc), true
}
