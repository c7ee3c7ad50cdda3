// Package render turns chart specifications into files: an interactive HTML
// page, static PNG images and an xlsx workbook of the plotted points.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"owid-charts/internal/model"
)

// PageTitle is the browser title of the chart page.
const PageTitle = "OWID COVID-19"

// missingValue is the ECharts marker for an empty slot; it breaks lines and
// leaves bar slots empty.
const missingValue = "-"

const day = 24 * time.Hour

// WriteHTML renders charts stacked vertically on one page.
func WriteHTML(w io.Writer, cs []model.Chart) error {
	page := components.NewPage()
	page.PageTitle = PageTitle
	page.SetLayout(components.PageCenterLayout)
	for _, c := range cs {
		page.AddCharts(Interactive(c))
	}
	return page.Render(w)
}

// Interactive converts one chart specification into an ECharts chart.
func Interactive(c model.Chart) components.Charter {
	global := globalOptions(c)

	if len(c.Series) > 0 && c.Series[0].Glyph == model.GlyphLine {
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		for _, s := range c.Series {
			line.AddSeries(s.Name, lineData(s),
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color, Width: float32(s.LineWidth)}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			)
		}
		return line
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(global...)
	if c.XAxis.Kind == model.AxisCategorical {
		bar.SetXAxis(c.XAxis.Categories)
	}
	for _, s := range c.Series {
		bar.AddSeries(s.Name, barData(c, s),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color, BorderColor: "white"}),
			charts.WithBarChartOpts(barOptions(c)),
		)
	}
	return bar
}

func globalOptions(c model.Chart) []charts.GlobalOpts {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: PageTitle,
			Width:     fmt.Sprintf("%dpx", c.Width),
			Height:    fmt.Sprintf("%dpx", c.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      c.XAxis.Label,
			Type:      axisType(c.XAxis.Kind),
			SplitLine: &opts.SplitLine{Show: opts.Bool(c.XGrid)},
		}),
		charts.WithYAxisOpts(yAxis(c.YAxis)),
		charts.WithLegendOpts(legend(c.Legend)),
	}

	if len(c.Tooltip) > 0 && c.HasTool(model.ToolHover) {
		global = append(global, charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: opts.FuncOpts(tooltipFormatter(c)),
		}))
	}

	if c.HasTool(model.ToolPan) || c.HasTool(model.ToolWheelZoom) {
		global = append(global, charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: []int{0}}))
	}

	feature := &opts.ToolBoxFeature{}
	if c.HasTool(model.ToolBoxZoom) {
		feature.DataZoom = &opts.ToolBoxFeatureDataZoom{Show: opts.Bool(true)}
	}
	if c.HasTool(model.ToolReset) {
		feature.Restore = &opts.ToolBoxFeatureRestore{Show: opts.Bool(true)}
	}
	if feature.DataZoom != nil || feature.Restore != nil {
		global = append(global, charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(true), Feature: feature}))
	}

	return global
}

func axisType(kind model.AxisKind) string {
	switch kind {
	case model.AxisTemporal:
		return "time"
	case model.AxisCategorical:
		return "category"
	default:
		return "value"
	}
}

func yAxis(a model.Axis) opts.YAxis {
	y := opts.YAxis{Name: a.Label, Type: axisType(a.Kind)}
	if len(a.Range) == 2 {
		y.Min = a.Range[0]
		y.Max = a.Range[1]
	}
	return y
}

func legend(l *model.Legend) opts.Legend {
	if l == nil {
		return opts.Legend{Show: opts.Bool(false)}
	}
	left := "center"
	if strings.HasSuffix(l.Location, "_left") {
		left = "left"
	}
	return opts.Legend{
		Show:   opts.Bool(true),
		Left:   left,
		Top:    "top",
		Orient: l.Orientation,
	}
}

// barOptions maps the bar width onto the gap ECharts leaves in each band.
// A temporal bar narrower than a day leaves the rest of the day empty.
func barOptions(c model.Chart) opts.BarChart {
	fraction := c.BarFraction
	if c.XAxis.Kind == model.AxisTemporal && c.BarDuration > 0 {
		fraction = float64(c.BarDuration) / float64(day)
	}
	bc := opts.BarChart{}
	if fraction > 0 && fraction < 1 {
		bc.BarCategoryGap = fmt.Sprintf("%.0f%%", (1-fraction)*100)
	}
	// One series per category: stacking keeps each bar centred on its label.
	if c.XAxis.Kind == model.AxisCategorical {
		bc.Stack = "categories"
	}
	return bc
}

func barData(c model.Chart, s model.Series) []opts.BarData {
	points := s.Points()

	if c.XAxis.Kind == model.AxisCategorical {
		byCategory := make(map[string]model.Point, len(points))
		for _, p := range points {
			byCategory[p.Category] = p
		}
		out := make([]opts.BarData, 0, len(c.XAxis.Categories))
		for _, category := range c.XAxis.Categories {
			p, ok := byCategory[category]
			value := interface{}(missingValue)
			if ok && p.Y.Valid {
				value = p.Y.Float64
			}
			out = append(out, opts.BarData{Name: category, Value: value})
		}
		return out
	}

	out := make([]opts.BarData, 0, len(points))
	for _, p := range points {
		// Rows without a date have no place on a time axis.
		if p.Date.IsZero() {
			continue
		}
		out = append(out, opts.BarData{
			Name:  p.Date.Format(model.TooltipDateFormat),
			Value: []interface{}{p.Date.Format(model.DateLayout), yValue(p)},
		})
	}
	return out
}

func lineData(s model.Series) []opts.LineData {
	points := s.Points()
	out := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		if p.Date.IsZero() {
			continue
		}
		out = append(out, opts.LineData{
			Name:  p.Date.Format(model.TooltipDateFormat),
			Value: []interface{}{p.Date.Format(model.DateLayout), yValue(p)},
		})
	}
	return out
}

func yValue(p model.Point) interface{} {
	if !p.Y.Valid {
		return missingValue
	}
	return p.Y.Float64
}

// tooltipFormatter builds the ECharts formatter for the chart's tooltip
// fields. The country is the series name, the date the item name.
func tooltipFormatter(c model.Chart) string {
	value := "p.value[1]"
	if c.XAxis.Kind == model.AxisCategorical {
		value = "p.value"
	}

	lines := make([]string, 0, len(c.Tooltip))
	for _, f := range c.Tooltip {
		accessor := value
		switch f.Column {
		case model.ColumnLocation:
			accessor = "p.seriesName"
		case model.ColumnDate:
			accessor = "p.name"
		}
		lines = append(lines, fmt.Sprintf("'%s: ' + %s", jsEscape(f.Label), accessor))
	}
	return "function (p) { return " + strings.Join(lines, " + '<br/>' + ") + "; }"
}

func jsEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(s)
}
