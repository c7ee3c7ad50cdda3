package render

import (
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"owid-charts/internal/model"
)

// ErrNothingToDraw is returned when a chart has too few points for a static
// image.
var ErrNothingToDraw = errors.New("chart has nothing to draw")

var namedColors = map[string]drawing.Color{
	"orange": {R: 255, G: 165, B: 0, A: 255},
	"red":    {R: 255, G: 0, B: 0, A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
}

func parseColor(c string) drawing.Color {
	if named, ok := namedColors[strings.ToLower(c)]; ok {
		return named
	}
	return drawing.ColorFromHex(strings.TrimPrefix(c, "#"))
}

// WritePNG draws a static image of c. Categorical charts become bar charts;
// temporal charts are drawn as lines broken at missing values.
func WritePNG(w io.Writer, c model.Chart) error {
	if c.XAxis.Kind == model.AxisCategorical {
		return writeCategoryPNG(w, c)
	}
	return writeTimePNG(w, c)
}

func writeCategoryPNG(w io.Writer, c model.Chart) error {
	var bars []chart.Value
	for _, s := range c.Series {
		for _, p := range s.Points() {
			if !p.Y.Valid {
				continue
			}
			bars = append(bars, chart.Value{
				Label: p.Category,
				Value: p.Y.Float64,
				Style: chart.Style{
					FillColor:   parseColor(s.Color),
					StrokeColor: parseColor("white"),
				},
			})
		}
	}
	if len(bars) == 0 {
		return errors.Wrapf(ErrNothingToDraw, "%q: no bars", c.Title)
	}

	graph := chart.BarChart{
		Title:  c.Title,
		Width:  c.Width,
		Height: c.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 60},
		},
		BarWidth: int(float64(c.Width) / float64(len(bars)+1) * barFraction(c)),
		Bars:     bars,
	}
	return errors.Wrapf(graph.Render(chart.PNG, w), "render %q", c.Title)
}

func barFraction(c model.Chart) float64 {
	if c.BarFraction > 0 && c.BarFraction <= 1 {
		return c.BarFraction
	}
	return 0.5
}

func writeTimePNG(w io.Writer, c model.Chart) error {
	var (
		series []chart.Series
		legend []chart.Series
		dates  = map[time.Time]struct{}{}
	)
	for _, s := range c.Series {
		style := chart.Style{
			StrokeColor: parseColor(s.Color),
			StrokeWidth: float64(max(s.LineWidth, 1)),
		}
		for _, segment := range segments(s.Points()) {
			ts := chart.TimeSeries{Style: style}
			for _, p := range segment {
				ts.XValues = append(ts.XValues, p.Date)
				ts.YValues = append(ts.YValues, p.Y.Float64)
				dates[p.Date] = struct{}{}
			}
			series = append(series, ts)
		}
		legend = append(legend, chart.TimeSeries{Name: s.Name, Style: style})
	}
	if len(dates) < 2 {
		return errors.Wrapf(ErrNothingToDraw, "%q: fewer than two dates", c.Title)
	}

	graph := chart.Chart{
		Title:  c.Title,
		Width:  c.Width,
		Height: c.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 20},
		},
		XAxis: chart.XAxis{
			Name:           c.XAxis.Label,
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: c.YAxis.Label,
		},
		Series: series,
	}
	// Segments are unnamed, so the legend reads from one entry per series.
	if c.Legend != nil {
		graph.Elements = []chart.Renderable{chart.Legend(&chart.Chart{Series: legend})}
	}
	return errors.Wrapf(graph.Render(chart.PNG, w), "render %q", c.Title)
}

// segments splits points into runs of valid values. Runs of a single point
// are dropped since a line needs two.
func segments(points []model.Point) [][]model.Point {
	var (
		out     [][]model.Point
		current []model.Point
	)
	flush := func() {
		if len(current) > 1 {
			out = append(out, current)
		}
		current = nil
	}
	for _, p := range points {
		if !p.Y.Valid || p.Date.IsZero() {
			flush()
			continue
		}
		current = append(current, p)
	}
	flush()
	return out
}
