package mansion

import (
	"fmt"
	"math"

	"github.com/wonny/dayan/internal/contracts"
)

// Mansion is one sector of the 28-mansion ring
type Mansion struct {
	Name   string
	Palace string
	Width  int // integer du
}

// 二十八宿, starting at 角
var mansions = [28]Mansion{
	{"角", "东方青龙", 12}, {"亢", "东方青龙", 9}, {"氐", "东方青龙", 15}, {"房", "东方青龙", 5},
	{"心", "东方青龙", 5}, {"尾", "东方青龙", 18}, {"箕", "东方青龙", 11},

	{"斗", "北方玄武", 26}, {"牛", "北方玄武", 8}, {"女", "北方玄武", 12}, {"虚", "北方玄武", 10},
	{"危", "北方玄武", 17}, {"室", "北方玄武", 16}, {"壁", "北方玄武", 9},

	{"奎", "西方白虎", 16}, {"娄", "西方白虎", 12}, {"胃", "西方白虎", 14}, {"昴", "西方白虎", 11},
	{"毕", "西方白虎", 17}, {"觜", "西方白虎", 1}, {"参", "西方白虎", 10},

	{"井", "南方朱雀", 33}, {"鬼", "南方朱雀", 3}, {"柳", "南方朱雀", 15}, {"星", "南方朱雀", 7},
	{"张", "南方朱雀", 18}, {"翼", "南方朱雀", 18}, {"轸", "南方朱雀", 17},
}

const (
	// solsticeLongitude is the tropical longitude of the Winter Solstice point
	solsticeLongitude = 270.0

	// douStart is the ring position where 斗 begins (sum of the eastern seven)
	douStart = 75.0

	// solsticeRingPosition is 斗 9 度, the Winter Solstice fix
	solsticeRingPosition = douStart + 9

	// duPerDegree scales tropical degrees to du
	duPerDegree = contracts.CircleDu / 360.0
)

// starts holds the cumulative ring position of every mansion
var starts = buildStarts()

func buildStarts() [28]float64 {
	var out [28]float64
	acc := 0
	for i, m := range mansions {
		out[i] = float64(acc)
		acc += m.Width
	}
	return out
}

// All returns a copy of the ring table
func All() []Mansion {
	out := make([]Mansion, len(mansions))
	copy(out, mansions[:])
	return out
}

// TotalWidth is the integer sum of the 28 widths (365)
func TotalWidth() int {
	total := 0
	for _, m := range mansions {
		total += m.Width
	}
	return total
}

// RingPosition maps a tropical ecliptic longitude onto the ring, [0, 365.25)
func RingPosition(longitude float64) float64 {
	offset := normalizeDegrees(longitude - solsticeLongitude)
	pos := math.Mod(solsticeRingPosition+offset*duPerDegree, contracts.CircleDu)
	if pos < 0 {
		pos += contracts.CircleDu
	}
	if pos >= contracts.CircleDu {
		pos = 0
	}
	return pos
}

// Locate returns the mansion containing longitude and the offset into it.
// The residual quarter du sits in 轸, the last mansion of the ring.
// ⭐ SSOT: 黄经 → 宿度 변환은 여기서만
func Locate(longitude float64) contracts.MansionPosition {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		longitude = 0
	}
	pos := RingPosition(longitude)

	idx := len(mansions) - 1
	for i := len(mansions) - 1; i >= 0; i-- {
		if pos >= starts[i] {
			idx = i
			break
		}
	}

	m := mansions[idx]
	width := float64(m.Width)
	if idx == len(mansions)-1 {
		width = contracts.CircleDu - starts[idx]
	}
	offset := pos - starts[idx]

	return contracts.MansionPosition{
		Index:    idx,
		Name:     m.Name,
		Palace:   m.Palace,
		OffsetDu: offset,
		WidthDu:  width,
		RingDu:   pos,
		Label:    fmt.Sprintf("%s宿 %.1f 度", m.Name, offset),
	}
}

// normalizeDegrees folds any angle into [0, 360)
func normalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
