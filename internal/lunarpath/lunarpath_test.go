package lunarpath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dayan/internal/contracts"
)

var cst = time.FixedZone("CST", 8*3600)

func TestClassify(t *testing.T) {
	tests := []struct {
		lat  float64
		road string
		desc string
	}{
		{0, RoadYellow, "月行黄道以南约 0.00 度。"},
		{0.49, RoadYellow, "月行黄道以北约 0.49 度。"},
		{-0.49, RoadYellow, "月行黄道以南约 0.49 度。"},
		{0.5, RoadBlack, "月行黄道以北约 0.50 度。"},
		{4.9, RoadBlack, "月行黄道以北约 4.90 度。"},
		{-0.5, RoadVermilion, "月行黄道以南约 0.50 度。"},
		{-5.1, RoadVermilion, "月行黄道以南约 5.10 度。"},
	}
	for _, tt := range tests {
		r := Classify(tt.lat)
		assert.Equal(t, tt.road, r.CurrentRoad, "lat=%v", tt.lat)
		assert.Equal(t, tt.desc, r.Description, "lat=%v", tt.lat)
		assert.Equal(t, tt.lat, r.MoonLatitude)
	}
}

func TestDisabled_AlwaysNone(t *testing.T) {
	f := New("disabled")
	assert.Equal(t, "disabled", f.Name())

	in := Input{Instant: time.Date(2024, 4, 8, 18, 0, 0, 0, time.UTC), SunLongitude: 19, MoonLongitude: 19, MoonLatitude: 0.1}
	assert.Equal(t, None(), f.Forecast(in))
}

func TestNew_DefaultsToNode(t *testing.T) {
	assert.Equal(t, "node", New("node").Name())
	assert.Equal(t, "node", New("").Name())
}

func TestNodeProximity_OutsideWindowIsNone(t *testing.T) {
	f := NewNodeProximity()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, cst)

	cases := map[string]Input{
		"quarter moon":       {Instant: at, SunLongitude: 340, MoonLongitude: 70, MoonLatitude: 0},
		"new moon far north": {Instant: at, SunLongitude: 100, MoonLongitude: 101, MoonLatitude: 3.2},
		"full moon too high": {Instant: at, SunLongitude: 100, MoonLongitude: 280, MoonLatitude: 1.2},
		"just outside":       {Instant: at, SunLongitude: 100, MoonLongitude: 106.5, MoonLatitude: 0},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, None(), f.Forecast(in))
		})
	}
}

func TestNodeProximity_SolarEclipse(t *testing.T) {
	f := NewNodeProximity()
	// exact conjunction on the ecliptic
	at := time.Date(2024, 4, 9, 2, 20, 0, 0, cst)
	got := f.Forecast(Input{
		Instant:       at,
		SunLongitude:  19.2,
		MoonLongitude: 19.2,
		MoonLatitude:  0.2,
		SunStage:      "盈末",
		Site:          contracts.ChangAn,
	})

	require.True(t, got.WillOccur)
	assert.Equal(t, contracts.EclipseSolar, got.Type)
	assert.Equal(t, "日食", got.TypeName)
	assert.Equal(t, "高", got.Probability)
	assert.Equal(t, "食九分", got.Magnitude) // ratio 0.867
	assert.Equal(t, "2024-04-09 02:20", got.MaxEclipse)
	assert.Equal(t, "2024-04-09 01:02", got.TimeStart) // 78 minutes before
	assert.Equal(t, "日躔盈末", got.Corrections.QiCha)
	assert.Equal(t, "午前 40 刻", got.Corrections.KeCha)
	assert.Equal(t, "长安 (34.27°)", got.Corrections.GeoCha)
}

func TestNodeProximity_LunarEclipseBeforeOpposition(t *testing.T) {
	f := NewNodeProximity()
	at := time.Date(2025, 3, 14, 12, 0, 30, 0, cst)
	// a quarter day of relative motion short of opposition
	got := f.Forecast(Input{
		Instant:       at,
		SunLongitude:  0,
		MoonLongitude: 180 - 12.19/4,
		MoonLatitude:  -0.8,
	})

	require.True(t, got.WillOccur)
	assert.Equal(t, contracts.EclipseLunar, got.Type)
	assert.Equal(t, "月食", got.TypeName)
	assert.Equal(t, "低", got.Probability)
	assert.Equal(t, "食二分", got.Magnitude) // ratio 0.2
	assert.Equal(t, "2025-03-14 18:00", got.MaxEclipse)
	assert.Equal(t, "无", got.Corrections.QiCha)
	assert.Equal(t, "无", got.Corrections.GeoCha)
}

func TestNodeProximity_MagnitudeGrowsTowardNode(t *testing.T) {
	f := NewNodeProximity()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, cst)

	prev := 11
	for _, lat := range []float64{0, 0.4, 0.8, 1.2, 1.49} {
		got := f.Forecast(Input{Instant: at, SunLongitude: 10, MoonLongitude: 10, MoonLatitude: lat})
		require.True(t, got.WillOccur, "lat=%v", lat)

		fen := -1
		for i, d := range chineseDigits {
			if got.Magnitude == "食"+d+"分" {
				fen = i
			}
		}
		require.Positive(t, fen, "lat=%v magnitude=%s", lat, got.Magnitude)
		assert.LessOrEqual(t, fen, prev, "lat=%v", lat)
		prev = fen
	}
}

func TestElongation(t *testing.T) {
	assert.InDelta(t, 350.0, Input{SunLongitude: 20, MoonLongitude: 10}.Elongation(), 1e-9)
	assert.InDelta(t, 180.0, Input{SunLongitude: 270, MoonLongitude: 90}.Elongation(), 1e-9)
}
