package lunarcal

import (
	"container/list"
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"

	"github.com/wonny/dayan/internal/contracts"
)

// Calendar converts civil instants with github.com/6tail/lunar-go
// ⭐ SSOT: 음력/간지/팔자 변환은 이 어댑터에서만
type Calendar struct {
	// sect is the 子时 convention used for the day pillar (1 = 晚子时 counts as next day)
	sect int
}

// New creates a calendar adapter
func New() *Calendar {
	return &Calendar{sect: 1}
}

// ToLunar implements contracts.LunarCalendar.
// The civil fields of t are used as-is; the library panicking is turned
// into an error.
func (c *Calendar) ToLunar(t time.Time) (date contracts.LunarDate, err error) {
	defer func() {
		if r := recover(); r != nil {
			date = contracts.LunarDate{}
			err = fmt.Errorf("lunar calendar panic at %s: %v", t.Format(time.RFC3339), r)
		}
	}()

	if t.IsZero() {
		return contracts.LunarDate{}, fmt.Errorf("lunar calendar: zero instant")
	}

	loc := t.Location()
	solar := calendar.NewSolar(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	lunar := solar.GetLunar()

	month := lunar.GetMonth()
	leap := month < 0
	if leap {
		month = -month
	}

	date = contracts.LunarDate{
		Year:        lunar.GetYear(),
		Month:       month,
		Day:         lunar.GetDay(),
		IsLeapMonth: leap,
		MonthDays:   monthDays(lunar),
		Text:        fmt.Sprintf("%s年 %s月%s", lunar.GetYearInChinese(), lunar.GetMonthInChinese(), lunar.GetDayInChinese()),

		YearGanZhi:  lunar.GetYearInGanZhi(),
		MonthGanZhi: lunar.GetMonthInGanZhi(),
		DayGanZhi:   lunar.GetDayInGanZhi(),
		HourGanZhi:  lunar.GetTimeInGanZhi(),

		JieQi:      termName(lunar.GetJieQi()),
		JieQiTable: make(map[string]time.Time),

		WuHou:     lunar.GetWuHou(),
		MoonPhase: lunar.GetYueXiang(),
		Zodiac:    lunar.GetYearShengXiao(),
		EightChar: c.eightChar(lunar),
	}

	// the table spans two solstices; keep the instance nearest to t
	for name, s := range lunar.GetJieQiTable() {
		if s == nil {
			continue
		}
		name = termName(name)
		at := solarTime(s, loc)
		if prev, ok := date.JieQiTable[name]; ok && absDuration(prev.Sub(t)) <= absDuration(at.Sub(t)) {
			continue
		}
		date.JieQiTable[name] = at
	}
	if prev := lunar.GetPrevJieQi(); prev != nil {
		date.PrevJieQi = contracts.TermInstant{Name: termName(prev.GetName()), Instant: solarTime(prev.GetSolar(), loc)}
	}
	if next := lunar.GetNextJieQi(); next != nil {
		date.NextJieQi = contracts.TermInstant{Name: termName(next.GetName()), Instant: solarTime(next.GetSolar(), loc)}
	}

	return date, nil
}

// eightChar copies the BaZi pillars verbatim
func (c *Calendar) eightChar(lunar *calendar.Lunar) contracts.EightChar {
	ec := lunar.GetEightChar()
	ec.SetSect(c.sect)

	return contracts.EightChar{
		Year: contracts.PillarSource{
			Gan: ec.GetYearGan(), Zhi: ec.GetYearZhi(), NaYin: ec.GetYearNaYin(),
			XunKong: ec.GetYearXunKong(), ShiShenGan: ec.GetYearShiShenGan(),
			HideGan: copyStrings(ec.GetYearHideGan()), ShiShenZhi: listStrings(ec.GetYearShiShenZhi()),
		},
		Month: contracts.PillarSource{
			Gan: ec.GetMonthGan(), Zhi: ec.GetMonthZhi(), NaYin: ec.GetMonthNaYin(),
			XunKong: ec.GetMonthXunKong(), ShiShenGan: ec.GetMonthShiShenGan(),
			HideGan: copyStrings(ec.GetMonthHideGan()), ShiShenZhi: listStrings(ec.GetMonthShiShenZhi()),
		},
		Day: contracts.PillarSource{
			Gan: ec.GetDayGan(), Zhi: ec.GetDayZhi(), NaYin: ec.GetDayNaYin(),
			XunKong: ec.GetDayXunKong(), ShiShenGan: "日主",
			HideGan: copyStrings(ec.GetDayHideGan()), ShiShenZhi: listStrings(ec.GetDayShiShenZhi()),
		},
		Hour: contracts.PillarSource{
			Gan: ec.GetTimeGan(), Zhi: ec.GetTimeZhi(), NaYin: ec.GetTimeNaYin(),
			XunKong: ec.GetTimeXunKong(), ShiShenGan: ec.GetTimeShiShenGan(),
			HideGan: copyStrings(ec.GetTimeHideGan()), ShiShenZhi: listStrings(ec.GetTimeShiShenZhi()),
		},
		DayMaster: ec.GetDayGan(),
		MingGong:  ec.GetMingGong(),
		TaiYuan:   ec.GetTaiYuan(),
	}
}

// copyStrings detaches a slice owned by the library's lookup tables
func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func listStrings(l *list.List) []string {
	if l == nil {
		return []string{}
	}
	out := make([]string, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		if v, ok := e.Value.(string); ok {
			out = append(out, v)
		}
	}
	return out
}

// monthDays is 30 when day 30 exists in the current lunar month
func monthDays(lunar *calendar.Lunar) int {
	day := lunar.GetDay()
	if day == 30 {
		return 30
	}
	if lunar.Next(30-day).GetDay() == 30 {
		return 30
	}
	return 29
}

// nextYearTerms are the table keys lunar-go uses for the terms of the following solar year
var nextYearTerms = map[string]string{
	"DA_XUE":   "大雪",
	"DONG_ZHI": "冬至",
	"XIAO_HAN": "小寒",
	"DA_HAN":   "大寒",
	"LI_CHUN":  "立春",
	"YU_SHUI":  "雨水",
	"JING_ZHE": "惊蛰",
}

func termName(name string) string {
	if cn, ok := nextYearTerms[name]; ok {
		return cn
	}
	return name
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func solarTime(s *calendar.Solar, loc *time.Location) time.Time {
	if s == nil {
		return time.Time{}
	}
	return time.Date(s.GetYear(), time.Month(s.GetMonth()), s.GetDay(), s.GetHour(), s.GetMinute(), s.GetSecond(), 0, loc)
}
