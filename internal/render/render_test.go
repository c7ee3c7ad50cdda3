package render

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"owid-charts/internal/model"
)

func date(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dailyChart() model.Chart {
	rows := []model.Row{
		{Location: "Hungary", Date: date("2021-03-10"), NewCases: null.FloatFrom(10)},
		{Location: "Hungary", Date: date("2021-03-11")},
		{Location: "Hungary", Date: date("2021-03-12"), NewCases: null.FloatFrom(30)},
		{Location: "Hungary", Date: date("2021-03-13"), NewCases: null.FloatFrom(25)},
	}
	return model.Chart{
		Title:  "Hungary - New Cases per Day",
		Width:  1280,
		Height: 720,
		XAxis:  model.Axis{Kind: model.AxisTemporal},
		YAxis:  model.Axis{Kind: model.AxisLinear},
		Series: []model.Series{{
			Name:    "Hungary",
			Glyph:   model.GlyphBar,
			Color:   "orange",
			XColumn: model.ColumnDate,
			YColumn: model.ColumnNewCases,
			Data:    model.NewTable(model.RetainedColumns, rows),
		}},
		Tooltip: []model.TooltipField{
			{Label: "country", Column: model.ColumnLocation},
			{Label: "new cases", Column: model.ColumnNewCases},
			{Label: "date", Column: model.ColumnDate},
		},
		Tools:       []string{model.ToolHover, model.ToolPan, model.ToolBoxZoom, model.ToolWheelZoom, model.ToolReset},
		BarDuration: 80000 * time.Second,
	}
}

// undatedChart has one row whose date cell was empty.
func undatedChart() model.Chart {
	c := dailyChart()
	rows := []model.Row{
		{Location: "Hungary", NewCases: null.FloatFrom(5)},
		{Location: "Hungary", Date: date("2021-03-10"), NewCases: null.FloatFrom(10)},
		{Location: "Hungary", Date: date("2021-03-11"), NewCases: null.FloatFrom(20)},
	}
	c.Series[0].Data = model.NewTable(model.RetainedColumns, rows)
	return c
}

func snapshotChart() model.Chart {
	series := func(country, color string, total float64) model.Series {
		return model.Series{
			Name:    country,
			Glyph:   model.GlyphBar,
			Color:   color,
			XColumn: model.ColumnLocation,
			YColumn: model.ColumnTotalDeaths,
			Data: model.NewTable(model.RetainedColumns, []model.Row{
				{Location: country, Date: date("2021-03-11"), TotalDeaths: null.FloatFrom(total)},
			}),
		}
	}
	return model.Chart{
		Title:  "Total Deaths by Countries",
		Width:  1280,
		Height: 720,
		XAxis:  model.Axis{Kind: model.AxisCategorical, Categories: []string{"Hungary", "Austria", "Slovakia"}},
		YAxis:  model.Axis{Kind: model.AxisLinear},
		Series: []model.Series{
			series("Hungary", "#3288bd", 17000),
			series("Austria", "#99d594", 8900),
		},
		Tooltip: []model.TooltipField{
			{Label: "country", Column: model.ColumnLocation},
			{Label: "total deaths", Column: model.ColumnTotalDeaths},
		},
		Legend:      &model.Legend{Location: "top_center", Orientation: "horizontal"},
		Tools:       []string{model.ToolHover, model.ToolReset},
		BarFraction: 0.9,
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, []model.Chart{dailyChart(), snapshotChart()}))

	page := buf.String()
	assert.Contains(t, page, PageTitle)
	first := strings.Index(page, "Hungary - New Cases per Day")
	second := strings.Index(page, "Total Deaths by Countries")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second, "charts keep their order on the page")
	assert.Contains(t, page, "p.seriesName")
	assert.Contains(t, page, "Slovakia")
}

func TestTooltipFormatter(t *testing.T) {
	daily := tooltipFormatter(dailyChart())
	assert.Equal(t,
		"function (p) { return 'country: ' + p.seriesName + '<br/>' + 'new cases: ' + p.value[1] + '<br/>' + 'date: ' + p.name; }",
		daily)

	snapshot := tooltipFormatter(snapshotChart())
	assert.Equal(t,
		"function (p) { return 'country: ' + p.seriesName + '<br/>' + 'total deaths: ' + p.value; }",
		snapshot)
}

func TestBarData(t *testing.T) {
	t.Run("temporal gap stays a slot", func(t *testing.T) {
		c := dailyChart()
		data := barData(c, c.Series[0])
		require.Len(t, data, 4)
		assert.Equal(t, "2021. 03. 10.", data[0].Name)
		assert.Equal(t, []interface{}{"2021-03-10", 10.0}, data[0].Value)
		assert.Equal(t, []interface{}{"2021-03-11", missingValue}, data[1].Value)
		assert.Equal(t, []interface{}{"2021-03-12", 30.0}, data[2].Value)
	})

	t.Run("rows without a date are left out", func(t *testing.T) {
		c := undatedChart()
		data := barData(c, c.Series[0])
		require.Len(t, data, 2)
		assert.Equal(t, []interface{}{"2021-03-10", 10.0}, data[0].Value)
		assert.Equal(t, []interface{}{"2021-03-11", 20.0}, data[1].Value)
	})

	t.Run("categories without a row are empty", func(t *testing.T) {
		c := snapshotChart()
		data := barData(c, c.Series[0])
		require.Len(t, data, 3)
		assert.Equal(t, 17000.0, data[0].Value)
		assert.Equal(t, missingValue, data[1].Value)
		assert.Equal(t, missingValue, data[2].Value)
	})
}

func TestLineDataSkipsUndatedRows(t *testing.T) {
	c := undatedChart()
	c.Series[0].Glyph = model.GlyphLine
	data := lineData(c.Series[0])
	require.Len(t, data, 2)
	assert.Equal(t, "2021. 03. 10.", data[0].Name)
	assert.Equal(t, "2021. 03. 11.", data[1].Name)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, []model.Chart{undatedChart(), c}))
	assert.NotContains(t, buf.String(), "0001-01-01")
}

func TestBarOptions(t *testing.T) {
	daily := barOptions(dailyChart())
	assert.Equal(t, "7%", daily.BarCategoryGap)
	assert.Empty(t, daily.Stack)

	snapshot := barOptions(snapshotChart())
	assert.Equal(t, "10%", snapshot.BarCategoryGap)
	assert.Equal(t, "categories", snapshot.Stack)
}

func TestWritePNG(t *testing.T) {
	t.Run("temporal", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WritePNG(&buf, dailyChart()))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	})

	t.Run("categorical", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WritePNG(&buf, snapshotChart()))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	})

	t.Run("empty snapshot", func(t *testing.T) {
		c := snapshotChart()
		c.Series = nil
		err := WritePNG(&bytes.Buffer{}, c)
		assert.ErrorIs(t, err, ErrNothingToDraw)
	})
}

func TestSegments(t *testing.T) {
	c := dailyChart()
	got := segments(c.Series[0].Points())
	require.Len(t, got, 1, "the leading single point is dropped")
	require.Len(t, got[0], 2)
	assert.Equal(t, date("2021-03-12"), got[0][0].Date)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "1 Total Deaths by Countries", SheetName(0, snapshotChart()))
	assert.Equal(t, "3 chart", SheetName(2, model.Chart{}))

	long := SheetName(1, model.Chart{Title: "Czechia - New Deaths per Day [daily/total]"})
	assert.LessOrEqual(t, len([]rune(long)), 31)
	assert.NotContains(t, long, "/")
	assert.NotContains(t, long, "[")
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.xlsx")
	require.NoError(t, WriteWorkbook(path, []model.Chart{dailyChart(), snapshotChart()}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"1 Hungary - New Cases per Day", "2 Total Deaths by Countries"}, f.GetSheetList())

	rows, err := f.GetRows("1 Hungary - New Cases per Day")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"series", "date", "new_cases"}, rows[0])
	assert.Equal(t, []string{"Hungary", "2021-03-10", "10"}, rows[1])
	assert.Equal(t, []string{"Hungary", "2021-03-11"}, rows[2])

	rows, err = f.GetRows("2 Total Deaths by Countries")
	require.NoError(t, err)
	assert.Equal(t, []string{"series", "location", "total_deaths"}, rows[0])
	assert.Equal(t, []string{"Austria", "Austria", "8900"}, rows[2])
}
