package suntime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dayan/internal/contracts"
)

var shanghai = time.FixedZone("CST", 8*3600)

func TestSunTimes_ChangAn(t *testing.T) {
	c := New()

	rise, set, ok := c.SunTimes(time.Date(2024, 6, 21, 0, 0, 0, 0, shanghai), contracts.ChangAn)
	require.True(t, ok)

	assert.Equal(t, 21, rise.Day())
	assert.Equal(t, 21, set.Day())
	// summer day at 34°N is roughly 14h15m
	length := set.Sub(rise)
	assert.Greater(t, length, 14*time.Hour)
	assert.Less(t, length, 14*time.Hour+30*time.Minute)

	wrise, wset, ok := c.SunTimes(time.Date(2024, 12, 21, 0, 0, 0, 0, shanghai), contracts.ChangAn)
	require.True(t, ok)
	assert.Less(t, wset.Sub(wrise), 10*time.Hour)
}

func TestSunTimes_PolarNight(t *testing.T) {
	svalbard := contracts.Site{Name: "Longyearbyen", Latitude: 78.22, Longitude: 15.65}

	_, _, ok := New().SunTimes(time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC), svalbard)
	assert.False(t, ok)
}
