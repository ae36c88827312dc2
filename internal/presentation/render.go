package presentation

import (
	"errors"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNothingToPlot = errors.New("nothing to plot")

const (
	CHART_HEIGHT    = 480
	MIN_CHART_WIDTH = 640
	BAR_WIDTH       = 40
	BAR_SPACING     = 12
)

var seriesColors = map[string]drawing.Color{
	"Positive": chart.ColorGreen,
	"Neutral":  chart.ColorAlternateGray,
	"Negative": chart.ColorRed,
}

// RenderSVG draws c as SVG into w.
func RenderSVG(w io.Writer, c Chart) error {
	switch c.Type {
	case ChartPie:
		return renderPie(w, c)
	case ChartStackedBar:
		return renderStacked(w, c)
	default:
		return renderBar(w, c)
	}
}

func renderPie(w io.Writer, c Chart) error {
	var values []chart.Value
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p.Value > 0 {
				values = append(values, chart.Value{Label: p.Label, Value: p.Value})
			}
		}
	}
	if len(values) == 0 {
		return ErrNothingToPlot
	}

	pie := chart.PieChart{
		Title:  c.Title,
		Width:  CHART_HEIGHT,
		Height: CHART_HEIGHT,
		Values: values,
	}
	return pie.Render(chart.SVG, w)
}

func renderBar(w io.Writer, c Chart) error {
	if len(c.Series) == 0 || len(c.Series[0].Points) == 0 {
		return ErrNothingToPlot
	}
	points := c.Series[0].Points

	barWidth := BAR_WIDTH
	if c.Type == ChartHistogram {
		barWidth = BAR_WIDTH / 2
	}

	bars := make([]chart.Value, len(points))
	lo, hi := 0.0, 0.0
	for i, p := range points {
		bars[i] = chart.Value{Label: p.Label, Value: p.Value}
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	if hi-lo == 0 {
		hi = lo + 1
	}

	bar := chart.BarChart{
		Title:      c.Title,
		Width:      chartWidth(len(bars), barWidth),
		Height:     CHART_HEIGHT,
		BarWidth:   barWidth,
		BarSpacing: BAR_SPACING,
		Bars:       bars,
		YAxis: chart.YAxis{
			Name:  c.YAxis,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		UseBaseValue: lo < 0,
		BaseValue:    0,
	}
	return bar.Render(chart.SVG, w)
}

func renderStacked(w io.Writer, c Chart) error {
	if len(c.Series) == 0 || len(c.Series[0].Points) == 0 {
		return ErrNothingToPlot
	}

	bars := make([]chart.StackedBar, len(c.Series[0].Points))
	for i, p := range c.Series[0].Points {
		bars[i].Name = p.Label
	}
	for _, s := range c.Series {
		color, known := seriesColors[s.Name]
		for i, p := range s.Points {
			if i >= len(bars) || p.Value <= 0 {
				continue
			}
			v := chart.Value{Label: s.Name, Value: p.Value}
			if known {
				v.Style = chart.Style{FillColor: color, StrokeColor: color}
			}
			bars[i].Values = append(bars[i].Values, v)
		}
	}

	stacked := chart.StackedBarChart{
		Title:      c.Title,
		Width:      chartWidth(len(bars), BAR_WIDTH*2),
		Height:     CHART_HEIGHT,
		BarSpacing: BAR_SPACING * 2,
		Bars:       bars,
	}
	return stacked.Render(chart.SVG, w)
}

func chartWidth(bars, barWidth int) int {
	return max(MIN_CHART_WIDTH, bars*(barWidth+BAR_SPACING)+160)
}
