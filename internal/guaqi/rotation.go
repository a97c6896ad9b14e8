package guaqi

import (
	"github.com/wonny/dayan/internal/contracts"
)

// rotation is the 六日七分 duty order starting at the Winter Solstice.
// 坎 离 震 兑 govern the four seasons and are not on duty.
var rotation = [contracts.GuaCount]string{
	// 子月: 冬至 小寒
	"zhongfu", "fu", "zhun", "qian2", "kui",
	// 丑月: 大寒 立春
	"sheng", "lin", "xiaoguo", "meng", "yi4",
	// 寅月: 雨水 惊蛰
	"jian", "tai", "xu", "sui", "jin",
	// 卯月: 春分 清明
	"jie3", "dazhuang", "yu", "song", "gu",
	// 辰月: 谷雨 立夏
	"ge", "guai", "lv3", "shi", "bi",
	// 巳月: 小满 芒种
	"xiaoxu", "qian", "dayou", "jiaren", "jing",
	// 午月: 夏至 小暑
	"xian", "gou", "ding", "feng", "huan",
	// 未月: 大暑 立秋
	"lv", "dun", "heng", "jie", "tongren",
	// 申月: 处暑 白露
	"sun", "pi", "xun", "cui", "daxu",
	// 酉月: 秋分 寒露
	"bi4", "guan", "guimei", "wuwang", "mingyi",
	// 戌月: 霜降 立冬
	"kun4", "bo", "gen", "jiji", "shike",
	// 亥月: 小雪 大雪
	"daguo", "kun", "weiji", "jian3", "yi",
}

// sovereign maps a lunar month to its 辟卦 (十二消息卦)
var sovereign = map[int]string{
	11: "fu", 12: "lin", 1: "tai", 2: "dazhuang",
	3: "guai", 4: "qian", 5: "gou", 6: "dun",
	7: "pi", 8: "guan", 9: "bo", 10: "kun",
}

// AtIndex returns the hexagram on duty at rotation position i (taken mod 60)
func AtIndex(i int) contracts.Hexagram {
	i %= contracts.GuaCount
	if i < 0 {
		i += contracts.GuaCount
	}
	return hexagrams[rotation[i]]
}

// Sovereign returns the monthly hexagram. Leap months may be passed negative.
func Sovereign(lunarMonth int) contracts.Hexagram {
	if lunarMonth < 0 {
		lunarMonth = -lunarMonth
	}
	key, ok := sovereign[lunarMonth]
	if !ok {
		key = "fu"
	}
	return hexagrams[key]
}

// SovereignByTerm picks the monthly hexagram from a term ordinal
// (counted from 冬至) when no lunar month is available.
func SovereignByTerm(ordinal int) contracts.Hexagram {
	if ordinal < 0 {
		ordinal = 0
	}
	month := (ordinal%24/2+10)%12 + 1
	return Sovereign(month)
}
