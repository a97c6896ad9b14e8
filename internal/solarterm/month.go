package solarterm

import (
	"fmt"

	"github.com/wonny/dayan/internal/contracts"
)

// MonthPosition is the 朔 accounting of one instant
type MonthPosition struct {
	DaysSinceShuo       int64
	AccumulatedMonthFen int64
	IsBigMonth          bool
	LeapInfo            string
}

// Month counts fen since midnight of lunar day 1
func Month(lunar contracts.LunarDate, currentDayFen int64) MonthPosition {
	days := int64(lunar.Day - 1)
	if days < 0 {
		days = 0
	}

	leap := "平月"
	if lunar.IsLeapMonth {
		leap = fmt.Sprintf("闰 %d 月", lunar.Month)
	}

	return MonthPosition{
		DaysSinceShuo:       days,
		AccumulatedMonthFen: days*contracts.TongFa + currentDayFen,
		IsBigMonth:          lunar.Day == 30 || lunar.MonthDays == 30,
		LeapInfo:            leap,
	}
}
