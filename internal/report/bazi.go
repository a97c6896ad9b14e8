package report

import (
	"fmt"
	"strings"

	"github.com/wonny/dayan/internal/contracts"
)

// elementOrder is the display order of the five elements
var elementOrder = []string{"金", "木", "水", "火", "土"}

var stemElements = map[string]string{
	"甲": "木", "乙": "木",
	"丙": "火", "丁": "火",
	"戊": "土", "己": "土",
	"庚": "金", "辛": "金",
	"壬": "水", "癸": "水",
}

var branchElements = map[string]string{
	"子": "水", "亥": "水",
	"寅": "木", "卯": "木",
	"巳": "火", "午": "火",
	"申": "金", "酉": "金",
	"辰": "土", "戌": "土", "丑": "土", "未": "土",
}

// buildBaZi turns the calendar's eight characters into report pillars
// and tallies the elements of all eight stems and branches.
func buildBaZi(ec contracts.EightChar) contracts.BaZi {
	counts := make(map[string]int, len(elementOrder))

	pillar := func(p contracts.PillarSource) contracts.Pillar {
		stem, branch := stemElements[p.Gan], branchElements[p.Zhi]
		if stem != "" {
			counts[stem]++
		}
		if branch != "" {
			counts[branch]++
		}
		return contracts.Pillar{
			GanZhi:     p.Gan + p.Zhi,
			Gan:        p.Gan,
			Zhi:        p.Zhi,
			NaYin:      p.NaYin,
			WuXing:     stem + branch,
			XunKong:    p.XunKong,
			ShiShenGan: p.ShiShenGan,
			HideGan:    append([]string(nil), p.HideGan...),
			ShiShenZhi: append([]string(nil), p.ShiShenZhi...),
		}
	}

	bazi := contracts.BaZi{
		Year:      pillar(ec.Year),
		Month:     pillar(ec.Month),
		Day:       pillar(ec.Day),
		Hour:      pillar(ec.Hour),
		DayMaster: ec.DayMaster,
		MingGong:  ec.MingGong,
		TaiYuan:   ec.TaiYuan,
	}

	tally := make([]contracts.ElementCount, 0, len(elementOrder))
	parts := make([]string, 0, len(elementOrder))
	for _, el := range elementOrder {
		tally = append(tally, contracts.ElementCount{Element: el, Count: counts[el]})
		if counts[el] > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", counts[el], el))
		}
	}
	bazi.WuXingTally = tally
	bazi.WuXingCount = strings.Join(parts, " ")
	return bazi
}
