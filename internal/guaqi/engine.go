package guaqi

import (
	"github.com/wonny/dayan/internal/contracts"
)

var linePositions = [6]string{"初", "二", "三", "四", "五", "上"}

// Resolve maps fen accumulated since the Winter Solstice onto the
// hexagram and line on duty.
// ⭐ SSOT: 卦气 상태 계산은 여기서만
//
// Resolve is total: negative input is folded back into the cycle.
func Resolve(accumulatedYearFen int64) contracts.GuaQiState {
	acc := accumulatedYearFen

	guaIndex := floorDiv(acc, contracts.GuaDuration) % contracts.GuaCount
	if guaIndex < 0 {
		guaIndex += contracts.GuaCount
	}
	fenIntoGua := floorMod(acc, contracts.GuaDuration)
	hex := AtIndex(int(guaIndex))

	state := contracts.GuaQiState{
		Hexagram:    hex,
		GuaIndex:    int(guaIndex),
		FenIntoGua:  fenIntoGua,
		DaysIntoGua: fenIntoGua / contracts.TongFa,
	}

	yaoIndex := int(fenIntoGua / contracts.YaoDuration)
	if yaoIndex >= 6 {
		state.IsYong = true
		state.YaoIndex = 6
		state.CurrentFenInYao = fenIntoGua - 6*contracts.YaoDuration
		state.TotalFenInYao = contracts.YongDuration
		state.IsYang = SolidLines(hex.Lines) >= 3
	} else {
		state.YaoIndex = yaoIndex
		state.CurrentFenInYao = fenIntoGua % contracts.YaoDuration
		state.TotalFenInYao = contracts.YaoDuration
		state.IsYang = hex.Lines[yaoIndex] == '1'
	}

	state.YaoName = YaoName(state.YaoIndex, state.IsYang)
	state.YaoText, state.Significance = lineText(hex.Key, state.YaoIndex, state.IsYong, state.IsYang)
	return state
}

// YaoName builds the traditional line label: 初九, 六二 … 上六, 用九/用六
func YaoName(yaoIndex int, isYang bool) string {
	num := "六"
	if isYang {
		num = "九"
	}
	switch {
	case yaoIndex >= 6:
		return "用" + num
	case yaoIndex == 0, yaoIndex == 5:
		return linePositions[yaoIndex] + num
	case yaoIndex > 0:
		return num + linePositions[yaoIndex]
	default:
		return linePositions[0] + num
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
