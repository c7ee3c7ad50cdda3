package model

import (
	"encoding/json"
	"time"

	"github.com/guregu/null/v5"
)

// AxisKind is the scale type of a chart axis.
type AxisKind string

const (
	AxisCategorical AxisKind = "categorical"
	AxisTemporal    AxisKind = "temporal"
	AxisLinear      AxisKind = "linear"
)

// Glyph is how a series is drawn.
type Glyph string

const (
	GlyphBar  Glyph = "bar"
	GlyphLine Glyph = "line"
)

// Interactive tools offered on a chart.
const (
	ToolPan       = "pan"
	ToolBoxZoom   = "box_zoom"
	ToolWheelZoom = "wheel_zoom"
	ToolReset     = "reset"
	ToolHover     = "hover"
)

// TooltipDateFormat renders dates as "YYYY. MM. DD.".
const TooltipDateFormat = "2006. 01. 02."

// Axis describes one chart axis.
type Axis struct {
	// Kind is the axis scale.
	Kind AxisKind `json:"kind"`
	// Label is the axis title.
	Label string `json:"label,omitempty"`
	// Categories lists the factors of a categorical axis in display order.
	Categories []string `json:"categories,omitempty"`
	// Range is a fixed [start, end] when set.
	Range []float64 `json:"range,omitempty"`
}

// TooltipField is one line of a hover tooltip.
type TooltipField struct {
	// Label is shown before the value.
	Label string `json:"label"`
	// Column is the dataset column the value comes from.
	Column string `json:"column"`
}

// Legend places the series legend.
type Legend struct {
	// Location is one of "top_center", "top_left".
	Location string `json:"location"`
	// Orientation is "horizontal" or "vertical".
	Orientation string `json:"orientation"`
}

// Point is one rendered slot of a series. An invalid Y is a gap.
type Point struct {
	Date     time.Time  `json:"date,omitempty"`
	Category string     `json:"category,omitempty"`
	Y        null.Float `json:"y"`
}

// Series is a filtered view of the dataset drawn with a single glyph.
type Series struct {
	// Name is the legend label.
	Name string `json:"name"`
	// Glyph is the drawing primitive.
	Glyph Glyph `json:"glyph"`
	// Color is a CSS colour name or hex code.
	Color string `json:"color"`
	// XColumn is the column used for the x position.
	XColumn string `json:"x_column"`
	// YColumn is the column used for the height or y position.
	YColumn string `json:"y_column"`
	// LineWidth applies to line glyphs.
	LineWidth int `json:"line_width,omitempty"`
	// Data is the rows behind the series.
	Data *Table `json:"-"`
	// Fixed replaces Data for series not drawn from the dataset.
	Fixed []Point `json:"-"`
}

// Points projects the series rows onto (x, y) slots in row order.
func (s Series) Points() []Point {
	if s.Data == nil {
		return append([]Point(nil), s.Fixed...)
	}
	rows := s.Data.Rows()
	out := make([]Point, 0, len(rows))
	for _, r := range rows {
		p := Point{Y: r.Value(s.YColumn)}
		if s.XColumn == ColumnLocation {
			p.Category = r.Location
		} else {
			p.Date = r.Date
		}
		out = append(out, p)
	}
	return out
}

// MarshalJSON includes the projected points, since Data itself is not
// serialised.
func (s Series) MarshalJSON() ([]byte, error) {
	type plain Series
	return json.Marshal(struct {
		plain
		Points []Point `json:"points"`
	}{plain(s), s.Points()})
}

// Chart is the declarative description of one plot prior to rendering.
type Chart struct {
	// Title is the chart heading.
	Title string `json:"title,omitempty"`
	// Width is the plot width in pixels.
	Width int `json:"width"`
	// Height is the plot height in pixels.
	Height int `json:"height"`
	XAxis  Axis `json:"x_axis"`
	YAxis  Axis `json:"y_axis"`
	// Series are drawn in order.
	Series []Series `json:"series"`
	// Tooltip lists the hover fields; empty means no hover tool.
	Tooltip []TooltipField `json:"tooltip,omitempty"`
	// Legend is nil when the chart has no legend.
	Legend *Legend `json:"legend,omitempty"`
	// Tools are the interactive tools enabled on the chart.
	Tools []string `json:"tools"`
	// BarDuration is the bar width on a temporal axis.
	BarDuration time.Duration `json:"bar_duration,omitempty"`
	// BarFraction is the bar width on a categorical axis, in category units.
	BarFraction float64 `json:"bar_fraction,omitempty"`
	// XGrid toggles vertical grid lines.
	XGrid bool `json:"x_grid"`
}

// Points flattens every series in order.
func (c Chart) Points() []Point {
	var out []Point
	for _, s := range c.Series {
		out = append(out, s.Points()...)
	}
	return out
}

// HasTool reports whether tool is enabled.
func (c Chart) HasTool(tool string) bool {
	for _, t := range c.Tools {
		if t == tool {
			return true
		}
	}
	return false
}
