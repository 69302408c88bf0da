package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"feed-dashboard/models"
	"feed-dashboard/sources"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	width  = 1024
	height = 420
)

// ErrNothingToPlot is returned when no row has a usable x/y pair.
var ErrNothingToPlot = errors.New("no plottable rows")

// PNG renders the chart into an in-memory PNG.
func PNG(table models.Table, spec models.ChartSpec) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, table, spec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render draws the chart described by spec as PNG into w.
func Render(w io.Writer, table models.Table, spec models.ChartSpec) error {
	if spec.Limit > 0 {
		table = table.Head(spec.Limit)
	}
	switch spec.Kind {
	case models.Scatter:
		return scatter(w, table, spec)
	case models.Bar:
		return bar(w, table, spec)
	case models.Line:
		return line(w, table, spec)
	}
	return fmt.Errorf("unsupported chart kind %q", spec.Kind)
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}}
}

func scatter(w io.Writer, table models.Table, spec models.ChartSpec) error {
	xs := make([]time.Time, 0, table.Len())
	ys := make([]float64, 0, table.Len())
	for _, row := range table.Rows {
		t, ok := row[spec.XField].(time.Time)
		if !ok {
			continue
		}
		y, ok := row[spec.YField].(float64)
		if !ok {
			continue
		}
		xs = append(xs, t)
		ys = append(ys, y)
	}
	if len(xs) == 0 {
		return ErrNothingToPlot
	}

	minX, maxX := xs[0], xs[0]
	for _, t := range xs {
		if t.Before(minX) {
			minX = t
		}
		if t.After(maxX) {
			maxX = t
		}
	}
	if !maxX.After(minX) {
		minX = minX.Add(-30 * time.Minute)
		maxX = maxX.Add(30 * time.Minute)
	}
	minY, maxY := bounds(ys)

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: background(),
		XAxis: chart.XAxis{
			Name:           spec.XField,
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2 15:04"),
			Range:          &chart.ContinuousRange{Min: chart.TimeToFloat64(minX), Max: chart.TimeToFloat64(maxX)},
		},
		YAxis: chart.YAxis{
			Name:  spec.YField,
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    spec.YField,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidthProvider: func(_, _ chart.Range, _ int, _, y float64) float64 {
						return dotSize(y)
					},
					DotColorProvider: func(_, yr chart.Range, _ int, _, y float64) drawing.Color {
						return chart.Viridis(y, yr.GetMin(), yr.GetMax())
					},
				},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

// dotSize grows with magnitude so larger quakes stand out.
func dotSize(mag float64) float64 {
	return math.Max(2, 2+mag*2)
}

func bar(w io.Writer, table models.Table, spec models.ChartSpec) error {
	palette := make(map[string]drawing.Color)
	bars := make([]chart.Value, 0, table.Len())
	for _, row := range table.Rows {
		v, ok := row[spec.YField].(float64)
		if !ok {
			continue
		}
		label, _ := row[spec.XField].(string)
		if label == "" {
			// City is optional in the feed, Location is not.
			label, _ = row[sources.ColLocation].(string)
		}
		group, _ := row[spec.ColorField].(string)
		color, ok := palette[group]
		if !ok {
			color = chart.GetDefaultColor(len(palette))
			palette[group] = color
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}
	if len(bars) == 0 {
		return ErrNothingToPlot
	}

	values := make([]float64, len(bars))
	for i, b := range bars {
		values[i] = b.Value
	}
	minY, maxY := bounds(values)
	if minY > 0 {
		minY = 0
	}

	barWidth := (width - 120) / (len(bars) * 2)
	bc := chart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: background(),
		YAxis: chart.YAxis{
			Name:  spec.YField,
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

func line(w io.Writer, table models.Table, spec models.ChartSpec) error {
	xs := make([]float64, 0, table.Len())
	ys := make([]float64, 0, table.Len())
	// the outer ticks keep the x range open when only one coin is plotted
	ticks := []chart.Tick{{Value: -0.5}}
	for _, row := range table.Rows {
		y, ok := row[spec.YField].(float64)
		if !ok {
			continue
		}
		label, _ := row[spec.XField].(string)
		x := float64(len(xs))
		xs = append(xs, x)
		ys = append(ys, y)
		ticks = append(ticks, chart.Tick{Value: x, Label: label})
	}
	if len(xs) == 0 {
		return ErrNothingToPlot
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(xs)) - 0.5})
	minY, maxY := bounds(ys)

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: background(),
		XAxis: chart.XAxis{
			Name:  spec.XField,
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  spec.YField,
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    spec.YField,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    chart.ColorBlue,
				},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

// bounds returns a non-empty [lo, hi] covering values.
func bounds(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		pad := math.Abs(lo) * 0.1
		if pad == 0 {
			pad = 1
		}
		return lo - pad, hi + pad
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}
