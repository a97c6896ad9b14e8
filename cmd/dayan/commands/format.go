package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/internal/journal"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	doubleSeparator = "═══════════════════════════════════════════════════════════"
	separator       = "───────────────────────────────────────────────────────────"
	keyWidth        = 10
)

// printHeader prints a titled section header
func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, doubleSeparator)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, separator)
}

// printSection prints a sub-section title between separators
func printSection(w io.Writer, title string) {
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "  %s\n", title)
}

// printKeyValue prints key-value pairs
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// printWarning prints a warning message
func printWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n", message)
}

// printList prints a bulleted list
func printList(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "   • %s\n", item)
	}
}

// printTableHeader prints a table header with its underline
func printTableHeader(w io.Writer, columns []string, widths []int) {
	printTableRow(w, columns, widths)

	total := 0
	for i, width := range widths {
		total += width
		if i < len(widths)-1 {
			total += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", total))
}

// printTableRow prints a table row
func printTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		fmt.Fprintf(w, "%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// renderReport prints the text form of a report, section by section
// following the 步 order of the calendar
func renderReport(w io.Writer, r *contracts.DayanReport) {
	printHeader(w, fmt.Sprintf("大衍历 · %s", r.Site.Name))
	printKeyValue(w, "Instant", r.Instant.Format("2006-01-02 15:04:05 MST"))
	printKeyValue(w, "Lunar", r.LunarDateText)
	printKeyValue(w, "GanZhi", fmt.Sprintf("%s年 %s月 %s日 %s时", r.GanZhi.Year, r.GanZhi.Month, r.GanZhi.Day, r.GanZhi.Hour))
	printKeyValue(w, "Zodiac", r.Zodiac)
	printKeyValue(w, "Report", r.ID)

	printSection(w, "步气朔")
	c := r.Calculation
	printKeyValue(w, "Term", fmt.Sprintf("%s → %s (%d 分)", c.CurrentTermName, c.NextTermName, c.FenToNextTerm))
	printKeyValue(w, "Pentad", fmt.Sprintf("%s %s", r.Pentad.PositionName, r.Pentad.Name))
	printKeyValue(w, "冬至", fmt.Sprintf("%s + %d 日 %d 分", c.DongZhiAnchor.Format("2006-01-02"), c.DaysSinceDongZhi, c.CurrentDayFen))
	printKeyValue(w, "积分", fmt.Sprintf("%d / %d", c.AccumulatedYearFen, contracts.CeShi))
	month := "小"
	if c.IsBigMonth {
		month = "大"
	}
	printKeyValue(w, "朔", fmt.Sprintf("%d 日, %d 分 (月%s) %s", c.DaysSinceShuo, c.AccumulatedMonthFen, month, c.LeapInfo))

	printSection(w, "步发敛")
	g := r.DailyGua
	printKeyValue(w, "辟卦", fmt.Sprintf("%s %s", r.SovereignHexagram.Symbol, r.SovereignHexagram.Name))
	printKeyValue(w, "卦气", fmt.Sprintf("%s %s (%s) 第 %d 日", g.Hexagram.Symbol, g.Hexagram.Name, g.Hexagram.Nature, g.DaysIntoGua))
	printKeyValue(w, "爻", fmt.Sprintf("%s %d/%d 分", g.YaoName, g.CurrentFenInYao, g.TotalFenInYao))
	printKeyValue(w, "爻辞", fmt.Sprintf("%s [%s]", g.YaoText, g.Significance))

	printSection(w, "步日躔 · 步月离")
	a := r.Astronomy
	printKeyValue(w, "日躔", fmt.Sprintf("%s %s", r.SunState.Stage, r.SunState.Description))
	printKeyValue(w, "日", fmt.Sprintf("%.2f° %s", a.SunLongitude, a.SunMansion.Label))
	printKeyValue(w, "月", fmt.Sprintf("%.2f° %s (%s)", a.MoonLongitude, a.MoonMansion.Label, r.MoonPhase))
	printKeyValue(w, "九道", fmt.Sprintf("%s, 黄纬 %.2f°", a.NineRoads.CurrentRoad, a.NineRoads.MoonLatitude))
	if a.Eclipse.WillOccur {
		printKeyValue(w, "交食", fmt.Sprintf("%s %s, 食甚 %s", a.Eclipse.TypeName, a.Eclipse.Probability, a.Eclipse.MaxEclipse))
	} else {
		printKeyValue(w, "交食", "无")
	}

	if len(a.Planets) > 0 {
		printSection(w, "五星")
		widths := []int{6, 9, 14, 6}
		printTableHeader(w, []string{"星", "黄经", "宿", "行"}, widths)
		for _, p := range a.Planets {
			printTableRow(w, []string{p.NameCn, fmt.Sprintf("%.2f°", p.Longitude), p.Mansion.Label, p.MotionLabel}, widths)
		}
	}

	printSection(w, "步轨漏")
	tk := r.TimeKeeping
	printKeyValue(w, "日出入", fmt.Sprintf("%s / %s", tk.Sunrise, tk.Sunset))
	printKeyValue(w, "昼夜", fmt.Sprintf("%d / %d 分 (%.1f / %.1f 刻)", tk.DayFen, tk.NightFen, tk.DayKe, tk.NightKe))
	printKeyValue(w, "一更", fmt.Sprintf("%d 分", tk.OneGengFen))

	printSection(w, "八字")
	b := r.BaZi
	printKeyValue(w, "四柱", fmt.Sprintf("%s %s %s %s", b.Year.GanZhi, b.Month.GanZhi, b.Day.GanZhi, b.Hour.GanZhi))
	printKeyValue(w, "藏干", fmt.Sprintf("%s | %s | %s | %s",
		strings.Join(b.Year.HideGan, ""), strings.Join(b.Month.HideGan, ""),
		strings.Join(b.Day.HideGan, ""), strings.Join(b.Hour.HideGan, "")))
	printKeyValue(w, "日主", b.DayMaster)
	printKeyValue(w, "五行", b.WuXingCount)

	if len(r.Degradations) > 0 {
		fmt.Fprintln(w, separator)
		printWarning(w, fmt.Sprintf("%d degradation(s)", len(r.Degradations)))
		printList(w, r.Degradations)
	}
	fmt.Fprintln(w, doubleSeparator)
}

// printEntries prints journal entries as a table
func printEntries(w io.Writer, entries []journal.Entry, loc *time.Location) {
	if len(entries) == 0 {
		printWarning(w, "No entries recorded")
		return
	}

	widths := []int{8, 6, 8, 6, 8}
	printTableHeader(w, []string{"Time", "Term", "Gua", "Yao", "Degraded"}, widths)
	for _, e := range entries {
		degraded := ""
		if e.Degraded {
			degraded = "⚠️"
		}
		printTableRow(w, []string{e.Instant.In(loc).Format("15:04:05"), e.Term, e.Gua, e.Yao, degraded}, widths)
	}
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "  %d entries\n", len(entries))
}
