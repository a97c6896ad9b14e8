package lunarpath

import (
	"fmt"
	"math"

	"github.com/wonny/dayan/internal/contracts"
)

// Road names of the 九道 classification
const (
	RoadYellow    = "黄道"
	RoadBlack     = "黑道 (北)"
	RoadVermilion = "朱道 (南)"
)

// onEclipticLimit is the |latitude| under which the Moon is on the Yellow Road
const onEclipticLimit = 0.5

// Classify maps the Moon's ecliptic latitude onto a road
func Classify(moonLatitude float64) contracts.NineRoads {
	road := RoadYellow
	switch {
	case math.Abs(moonLatitude) < onEclipticLimit:
	case moonLatitude > 0:
		road = RoadBlack
	default:
		road = RoadVermilion
	}

	side := "黄道以南"
	if moonLatitude > 0 {
		side = "黄道以北"
	}

	return contracts.NineRoads{
		CurrentRoad:  road,
		Description:  fmt.Sprintf("月行%s约 %.2f 度。", side, math.Abs(moonLatitude)),
		MoonLatitude: moonLatitude,
	}
}
