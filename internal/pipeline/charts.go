package pipeline

import (
	"time"

	"github.com/guregu/null/v5"
	"github.com/samber/lo"

	"owid-charts/internal/model"
)

const (
	plotWidth  = 1280
	plotHeight = 720

	// dailyBarWidth is a little under a day so neighbouring bars stay apart.
	dailyBarWidth = 80000 * time.Second

	categoryBarFraction = 0.9
	deathLineWidth      = 2

	casesBarColor  = "orange"
	deathsBarColor = "red"
)

var (
	dailyTools = []string{model.ToolHover, model.ToolPan, model.ToolBoxZoom, model.ToolWheelZoom, model.ToolReset}
	lineTools  = []string{model.ToolHover, model.ToolPan, model.ToolWheelZoom, model.ToolReset}
)

func topCenterLegend() *model.Legend {
	return &model.Legend{Location: "top_center", Orientation: "horizontal"}
}

func dailyTooltip(column, label string) []model.TooltipField {
	return []model.TooltipField{
		{Label: "country", Column: model.ColumnLocation},
		{Label: label, Column: column},
		{Label: "date", Column: model.ColumnDate},
	}
}

// perCountrySeries builds one series per distinct requested country, coloured
// by first occurrence in countries. A country with no rows still gets an
// empty series.
func perCountrySeries(data *model.Table, countries []string, palette []string, glyph model.Glyph, xColumn, yColumn string) []model.Series {
	names := lo.Uniq(countries)
	colors := AssignColors(names, palette)

	series := make([]model.Series, 0, len(names))
	for i, country := range names {
		s := model.Series{
			Name:    country,
			Glyph:   glyph,
			Color:   colors[i],
			XColumn: xColumn,
			YColumn: yColumn,
			Data:    SelectLocation(data, country),
		}
		if glyph == model.GlyphLine {
			s.LineWidth = deathLineWidth
		}
		series = append(series, s)
	}
	return series
}

// BarCasesByCountries charts new cases per day, one coloured bar series per
// country.
func BarCasesByCountries(t *model.Table, countries []string) model.Chart {
	data := SelectLocations(t, countries)

	return model.Chart{
		Title:       "New Cases per Day by Countries",
		Width:       plotWidth,
		Height:      plotHeight,
		XAxis:       model.Axis{Kind: model.AxisTemporal},
		YAxis:       model.Axis{Kind: model.AxisLinear},
		Series:      perCountrySeries(data, countries, Colorblind6, model.GlyphBar, model.ColumnDate, model.ColumnNewCases),
		Tooltip:     dailyTooltip(model.ColumnNewCases, "new cases"),
		Legend:      topCenterLegend(),
		Tools:       dailyTools,
		BarDuration: dailyBarWidth,
	}
}

// BarCases charts new cases per day for one country.
func BarCases(t *model.Table, country string) model.Chart {
	return singleCountryBars(t, country, model.ColumnNewCases, "new cases", casesBarColor, "New Cases per Day")
}

// BarDeaths charts new deaths per day for one country.
func BarDeaths(t *model.Table, country string) model.Chart {
	return singleCountryBars(t, country, model.ColumnNewDeaths, "new deaths", deathsBarColor, "New Deaths per Day")
}

func singleCountryBars(t *model.Table, country, column, label, color, subject string) model.Chart {
	return model.Chart{
		Title:  country + " - " + subject,
		Width:  plotWidth,
		Height: plotHeight,
		XAxis:  model.Axis{Kind: model.AxisTemporal},
		YAxis:  model.Axis{Kind: model.AxisLinear},
		Series: []model.Series{{
			Name:    country,
			Glyph:   model.GlyphBar,
			Color:   color,
			XColumn: model.ColumnDate,
			YColumn: column,
			Data:    SelectLocation(t, country),
		}},
		Tooltip:     dailyTooltip(column, label),
		Tools:       dailyTools,
		BarDuration: dailyBarWidth,
	}
}

// LineDeathsByCountries charts new deaths per day as one line per country.
// Every line gets its own Colorblind6 colour.
func LineDeathsByCountries(t *model.Table, countries []string) model.Chart {
	data := SelectLocations(t, countries)

	return model.Chart{
		Width:   plotWidth,
		Height:  plotHeight,
		XAxis:   model.Axis{Kind: model.AxisTemporal, Label: "Date"},
		YAxis:   model.Axis{Kind: model.AxisLinear, Label: "New deaths"},
		Series:  perCountrySeries(data, countries, Colorblind6, model.GlyphLine, model.ColumnDate, model.ColumnNewDeaths),
		Tooltip: dailyTooltip(model.ColumnNewDeaths, "new deaths"),
		Legend:  &model.Legend{Location: "top_left", Orientation: "vertical"},
		Tools:   lineTools,
		XGrid:   true,
	}
}

// BarTotalDeathsByCountries charts the cumulative deaths of each country on
// one calendar day. A day without rows gives a chart without bars.
func BarTotalDeathsByCountries(t *model.Table, countries []string, date time.Time) model.Chart {
	data := SelectDate(SelectLocations(t, countries), date)

	return model.Chart{
		Title:  "Total Deaths by Countries",
		Width:  plotWidth,
		Height: plotHeight,
		XAxis:  model.Axis{Kind: model.AxisCategorical, Categories: lo.Uniq(countries)},
		YAxis:  model.Axis{Kind: model.AxisLinear},
		Series: perCountrySeries(data, countries, Spectral6, model.GlyphBar, model.ColumnLocation, model.ColumnTotalDeaths),
		Tooltip: []model.TooltipField{
			{Label: "country", Column: model.ColumnLocation},
			{Label: "total deaths", Column: model.ColumnTotalDeaths},
		},
		Legend:      topCenterLegend(),
		Tools:       dailyTools,
		BarFraction: categoryBarFraction,
	}
}

// DemoBarChart is a fixed four bar chart used to check rendering without the
// dataset.
func DemoBarChart() model.Chart {
	countries := []string{"Hungary", "Austria", "Slovakia", "Czechia"}
	counts := []float64{5, 3, 4, 2}
	colors := AssignColors(countries, Spectral6)

	series := make([]model.Series, 0, len(countries))
	for i, country := range countries {
		series = append(series, model.Series{
			Name:    country,
			Glyph:   model.GlyphBar,
			Color:   colors[i],
			XColumn: model.ColumnLocation,
			YColumn: "count",
			Fixed:   []model.Point{{Category: country, Y: null.FloatFrom(counts[i])}},
		})
	}

	return model.Chart{
		Width:       plotWidth,
		Height:      plotHeight,
		XAxis:       model.Axis{Kind: model.AxisCategorical, Label: "Country", Categories: countries},
		YAxis:       model.Axis{Kind: model.AxisLinear, Label: "Count", Range: []float64{0, 9}},
		Series:      series,
		Legend:      topCenterLegend(),
		Tools:       []string{model.ToolPan, model.ToolBoxZoom, model.ToolWheelZoom, model.ToolReset},
		BarFraction: 1,
	}
}
