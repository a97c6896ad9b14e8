package mansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dayan/internal/contracts"
)

func TestTotalWidth(t *testing.T) {
	assert.Equal(t, 365, TotalWidth())
	assert.Len(t, All(), 28)
}

func TestLocate_WinterSolsticePoint(t *testing.T) {
	p := Locate(270)

	assert.Equal(t, "斗", p.Name)
	assert.Equal(t, "北方玄武", p.Palace)
	assert.InDelta(t, 9.0, p.OffsetDu, 1e-9)
	assert.InDelta(t, 84.0, p.RingDu, 1e-9)
	assert.Equal(t, "斗宿 9.0 度", p.Label)
}

func TestLocate_RingStart(t *testing.T) {
	// just past the start of 角
	lon := 270 + (contracts.CircleDu-84)*360/contracts.CircleDu - 360 + 1e-7
	p := Locate(lon)
	assert.Equal(t, 0, p.Index)
	assert.InDelta(t, 0.0, p.OffsetDu, 1e-6)
}

func TestLocate_OffsetWithinWidth(t *testing.T) {
	for i := 0; i < 36000; i++ {
		lon := float64(i) / 100
		p := Locate(lon)
		require.GreaterOrEqual(t, p.OffsetDu, 0.0, "lon=%v", lon)
		require.Less(t, p.OffsetDu, p.WidthDu, "lon=%v", lon)
		require.GreaterOrEqual(t, p.RingDu, 0.0, "lon=%v", lon)
		require.Less(t, p.RingDu, contracts.CircleDu, "lon=%v", lon)
		require.InDelta(t, p.RingDu, starts[p.Index]+p.OffsetDu, 1e-9, "lon=%v", lon)
	}
}

func TestLocate_Continuity(t *testing.T) {
	delta := 0.5
	for _, lon := range []float64{0, 45, 100, 200, 271, 300, 359} {
		a := RingPosition(lon)
		b := RingPosition(lon + delta)
		assert.InDelta(t, delta*contracts.CircleDu/360, b-a, 1e-9, "lon=%v", lon)
	}
}

func TestLocate_LastMansionCarriesResidual(t *testing.T) {
	// ring position 365.1 lies past the integer end of 轸
	lon := 270 + (365.1-84)*360/contracts.CircleDu - 360
	p := Locate(lon)

	assert.Equal(t, "轸", p.Name)
	assert.Equal(t, 27, p.Index)
	assert.InDelta(t, 17.25, p.WidthDu, 1e-9)
	assert.Greater(t, p.OffsetDu, 17.0)
	assert.Less(t, p.OffsetDu, p.WidthDu)
}

func TestLocate_MansionBoundary(t *testing.T) {
	// 牛 starts at 75 + 26 = 101 du
	lon := 270 + (101.0-84)*360/contracts.CircleDu
	before := Locate(lon - 1e-6)
	after := Locate(lon + 1e-6)

	assert.Equal(t, "斗", before.Name)
	assert.Equal(t, "牛", after.Name)
	assert.InDelta(t, 26.0, before.OffsetDu, 1e-5)
	assert.InDelta(t, 0.0, after.OffsetDu, 1e-5)
}

func TestLocate_NormalizesInput(t *testing.T) {
	assert.Equal(t, Locate(10).Name, Locate(370).Name)
	assert.InDelta(t, Locate(10).OffsetDu, Locate(-350).OffsetDu, 1e-9)
}
