package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/internal/journal"
	"github.com/wonny/dayan/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Site: config.SiteConfig{
			Name:      "长安",
			Latitude:  34.2667,
			Longitude: 108.9333,
			Timezone:  "Asia/Shanghai",
		},
		Engine: config.EngineConfig{EclipseForecaster: "node"},
	}
}

func TestParseInstant(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	want := time.Date(2023, 12, 22, 5, 27, 0, 0, loc)

	for _, in := range []string{"2023-12-22T05:27:00+08:00", "2023-12-21T21:27:00Z", "2023-12-22 05:27", "2023-12-22 05:27:00"} {
		got, err := parseInstant(in, loc)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s → %s", in, got)
	}

	day, err := parseInstant("2023-12-22", loc)
	require.NoError(t, err)
	assert.True(t, time.Date(2023, 12, 22, 0, 0, 0, 0, loc).Equal(day))

	_, err = parseInstant("winter solstice", loc)
	assert.Error(t, err)
}

func TestNewEngine_FromConfig(t *testing.T) {
	e := newEngine(testConfig())
	assert.Equal(t, "Asia/Shanghai", e.Location().String())
	assert.Equal(t, "node", e.ForecasterName())
	assert.Equal(t, contracts.ChangAn, e.Site())

	cfg := testConfig()
	cfg.Engine.EclipseForecaster = "disabled"
	assert.Equal(t, "disabled", newEngine(cfg).ForecasterName())
}

func TestRenderReport(t *testing.T) {
	e := newEngine(testConfig())
	r := e.Compute(time.Date(2023, 12, 22, 5, 27, 0, 0, e.Location()))

	var buf bytes.Buffer
	renderReport(&buf, r)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, doubleSeparator))
	for _, want := range []string{"大衍历 · 长安", "步气朔", "冬至", "步发敛", "中孚", "初九", "步轨漏", "八字", "藏干", "五星", r.ID} {
		assert.Contains(t, out, want)
	}
}

func TestRenderReport_Degradations(t *testing.T) {
	r := &contracts.DayanReport{Degradations: []string{"zero instant", "ephemeris: unknown body"}}

	var buf bytes.Buffer
	renderReport(&buf, r)
	assert.Contains(t, buf.String(), "2 degradation(s)")
	assert.Contains(t, buf.String(), "   • ephemeris: unknown body")
	assert.NotContains(t, buf.String(), "五星")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]string{"gua": "中孚", "tag": "<b>"}))

	assert.Contains(t, buf.String(), "中孚")
	assert.Contains(t, buf.String(), "<b>")

	var back map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "中孚", back["gua"])
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTableHeader(&buf, []string{"a", "b"}, []int{3, 4})
	printTableRow(&buf, []string{"x", "y"}, []int{3, 4})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Repeat("─", 9), lines[1])
	assert.Equal(t, "x    y   ", lines[2])
}

func TestPrintEntries(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	var buf bytes.Buffer

	printEntries(&buf, nil, loc)
	assert.Contains(t, buf.String(), "No entries recorded")

	buf.Reset()
	printEntries(&buf, []journal.Entry{
		{Instant: time.Date(2023, 12, 21, 22, 0, 0, 0, time.UTC), Term: "冬至", Gua: "中孚", Yao: "初九"},
		{Instant: time.Date(2023, 12, 21, 23, 0, 0, 0, time.UTC), Term: "冬至", Gua: "中孚", Yao: "初九", Degraded: true},
	}, loc)
	out := buf.String()
	assert.Contains(t, out, "06:00:00")
	assert.Contains(t, out, "07:00:00")
	assert.Contains(t, out, "2 entries")
}
