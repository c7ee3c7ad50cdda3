package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owid-charts/internal/model"
)

var snapshotDay = time.Date(2021, time.March, 11, 0, 0, 0, 0, time.UTC)

func TestBarTotalDeathsByCountries(t *testing.T) {
	input := `location,date,new_cases,new_deaths,total_deaths
Hungary,2021-03-10,1,1,15000
Hungary,2021-03-11,1,1,17000
Austria,2021-03-11,1,1,8900
Slovakia,2021-03-11,1,1,7700
Czechia,2021-03-11,1,1,22900
Germany,2021-03-11,1,1,72000
`
	table, err := ReadTable(strings.NewReader(input))
	require.NoError(t, err)

	countries := []string{"Hungary", "Austria", "Slovakia", "Czechia"}
	chart := BarTotalDeathsByCountries(table, countries, snapshotDay)

	assert.Equal(t, "Total Deaths by Countries", chart.Title)
	assert.Equal(t, model.AxisCategorical, chart.XAxis.Kind)
	assert.Equal(t, countries, chart.XAxis.Categories)
	assert.Equal(t, 0.9, chart.BarFraction)

	points := chart.Points()
	require.Len(t, points, 4)
	want := map[string]float64{"Hungary": 17000, "Austria": 8900, "Slovakia": 7700, "Czechia": 22900}
	for _, p := range points {
		assert.Equal(t, want[p.Category], p.Y.Float64, p.Category)
	}

	require.Len(t, chart.Series, 4)
	for i, s := range chart.Series {
		assert.Equal(t, countries[i], s.Name)
		assert.Equal(t, Spectral6[i], s.Color)
	}
}

func TestBarTotalDeathsByCountriesUnmatchedDate(t *testing.T) {
	table := fixtureTable(t)

	chart := BarTotalDeathsByCountries(table, []string{"Hungary", "Austria"}, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, chart.Points())
	assert.Equal(t, []string{"Hungary", "Austria"}, chart.XAxis.Categories)
}

func TestBarCasesKeepsGaps(t *testing.T) {
	table := fixtureTable(t)

	chart := BarCases(table, "Hungary")
	assert.Equal(t, "Hungary - New Cases per Day", chart.Title)
	assert.Equal(t, 80000*time.Second, chart.BarDuration)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, "orange", chart.Series[0].Color)

	points := chart.Points()
	require.Len(t, points, 3)
	assert.Equal(t, 10.0, points[0].Y.Float64)
	assert.False(t, points[1].Y.Valid, "the missing day keeps its slot")
	assert.Equal(t, 30.0, points[2].Y.Float64)
}

func TestBarDeaths(t *testing.T) {
	chart := BarDeaths(fixtureTable(t), "Austria")

	assert.Equal(t, "Austria - New Deaths per Day", chart.Title)
	assert.Equal(t, "red", chart.Series[0].Color)
	assert.Len(t, chart.Points(), 2)
	assert.Equal(t, []model.TooltipField{
		{Label: "country", Column: model.ColumnLocation},
		{Label: "new deaths", Column: model.ColumnNewDeaths},
		{Label: "date", Column: model.ColumnDate},
	}, chart.Tooltip)
}

func TestBarCasesByCountries(t *testing.T) {
	chart := BarCasesByCountries(fixtureTable(t), []string{"Hungary", "Atlantis", "Austria"})

	assert.Equal(t, "New Cases per Day by Countries", chart.Title)
	require.Len(t, chart.Series, 3)
	assert.Equal(t, Colorblind6[0], chart.Series[0].Color)
	assert.Equal(t, Colorblind6[1], chart.Series[1].Color)
	assert.Empty(t, chart.Series[1].Points(), "an absent country has no points")
	assert.Len(t, chart.Points(), 5)
	assert.Equal(t, &model.Legend{Location: "top_center", Orientation: "horizontal"}, chart.Legend)
}

func TestLineDeathsByCountries(t *testing.T) {
	chart := LineDeathsByCountries(fixtureTable(t), []string{"Hungary", "Austria"})

	assert.Empty(t, chart.Title)
	assert.Equal(t, "Date", chart.XAxis.Label)
	assert.Equal(t, "New deaths", chart.YAxis.Label)
	assert.True(t, chart.XGrid)
	assert.False(t, chart.HasTool(model.ToolBoxZoom))
	require.Len(t, chart.Series, 2)
	assert.NotEqual(t, chart.Series[0].Color, chart.Series[1].Color)
	assert.Equal(t, 2, chart.Series[0].LineWidth)
}

func TestDemoBarChart(t *testing.T) {
	chart := DemoBarChart()

	assert.Equal(t, []float64{0, 9}, chart.YAxis.Range)
	assert.Equal(t, "Country", chart.XAxis.Label)
	assert.Equal(t, "Count", chart.YAxis.Label)

	points := chart.Points()
	require.Len(t, points, 4)
	assert.Equal(t, "Slovakia", points[2].Category)
	assert.Equal(t, 4.0, points[2].Y.Float64)
	assert.Equal(t, Spectral6[3], chart.Series[3].Color)
}

func TestBuildCharts(t *testing.T) {
	table := fixtureTable(t)

	charts := BuildCharts(table, model.DefaultRunSpec())
	titles := make([]string, 0, len(charts))
	for _, c := range charts {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{
		"New Cases per Day by Countries",
		"Hungary - New Cases per Day",
		"Austria - New Cases per Day",
		"Hungary - New Deaths per Day",
		"Austria - New Deaths per Day",
		"Total Deaths by Countries",
	}, titles)

	spec := model.DefaultRunSpec()
	spec.DeathLines = true
	assert.Len(t, BuildCharts(table, spec), 7)
}
