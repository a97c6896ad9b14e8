package solarterm

import (
	"github.com/wonny/dayan/internal/contracts"
)

// DongZhi is the Winter Solstice term name
const DongZhi = "冬至"

// termOrder lists the 24 terms starting at the Winter Solstice
var termOrder = [24]string{
	"冬至", "小寒", "大寒", "立春", "雨水", "惊蛰",
	"春分", "清明", "谷雨", "立夏", "小满", "芒种",
	"夏至", "小暑", "大暑", "立秋", "处暑", "白露",
	"秋分", "寒露", "霜降", "立冬", "小雪", "大雪",
}

var termOrdinals = func() map[string]int {
	m := make(map[string]int, len(termOrder))
	for i, name := range termOrder {
		m[name] = i
	}
	return m
}()

// Ordinal returns the position of a term counted from 冬至, or -1
func Ordinal(name string) int {
	if i, ok := termOrdinals[name]; ok {
		return i
	}
	return -1
}

// Name returns the term at ordinal i (taken mod 24)
func Name(i int) string {
	i %= len(termOrder)
	if i < 0 {
		i += len(termOrder)
	}
	return termOrder[i]
}

// OrdinalFromFen derives the term ordinal from fen since the Winter Solstice
func OrdinalFromFen(accumulatedYearFen int64) int {
	if accumulatedYearFen < 0 {
		return 0
	}
	return int((accumulatedYearFen / contracts.QiCe) % 24)
}

// FenToNextTerm is the fen remaining until the next mean term boundary
func FenToNextTerm(accumulatedYearFen int64) int64 {
	next := (accumulatedYearFen/contracts.QiCe + 1) * contracts.QiCe
	return next - accumulatedYearFen
}

// HouFor places a day count inside the term's three pentads
func HouFor(daysIntoTerm int) contracts.HouPosition {
	switch {
	case daysIntoTerm >= 10:
		return contracts.HouLate
	case daysIntoTerm >= 5:
		return contracts.HouMid
	default:
		return contracts.HouEarly
	}
}

// 日躔 solar inequality stages, six terms each
var sunStages = [4]struct {
	stage       string
	description string
	baseLon     float64
}{
	{"盈初", "冬至后，阳气渐长，日行渐速（近日点）。积盈日增。", 270},
	{"盈末", "春分后，日行仍速，但积盈增长减缓。", 0},
	{"缩初", "夏至后，阴气始生，日行渐迟（远日点）。积缩日增。", 90},
	{"缩末", "秋分后，日行仍迟，但积缩增长减缓。", 180},
}

// SunStage returns the solar inequality stage for a term ordinal
func SunStage(ordinal int) contracts.SunState {
	if ordinal < 0 || ordinal >= len(termOrder) {
		ordinal = 0
	}
	s := sunStages[ordinal/6]
	return contracts.SunState{
		Stage:          s.stage,
		Description:    s.description,
		SolarLongitude: s.baseLon + float64(ordinal%6)*15,
	}
}
