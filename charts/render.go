package charts

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrNotRenderable is returned for panels without an image form.
	ErrNotRenderable = errors.New("panel has no image rendering")
	// ErrNothingToDraw is returned when every value in a series is zero.
	ErrNothingToDraw = errors.New("series has nothing to draw")
)

const (
	imageWidth  = 960
	imageHeight = 480
)

// HasImage reports whether RenderPNG can draw panels of kind k.
func HasImage(k Kind) bool {
	return k == KindPie || k == KindBar || k == KindLine
}

// RenderPNG draws pie, line and bar panels as PNG images.
func RenderPNG(p Panel, w io.Writer) error {
	if !p.Rendered() {
		return fmt.Errorf("render %s: %w", p.Kind, ErrNotRenderable)
	}
	spec, ok := p.Spec.(SeriesSpec)
	if !ok {
		return fmt.Errorf("render %s: %w", p.Kind, ErrNotRenderable)
	}

	max := 0.0
	for _, pt := range spec.Points {
		if pt.Value > max {
			max = pt.Value
		}
	}
	if max <= 0 {
		return fmt.Errorf("render %s: %w", p.Kind, ErrNothingToDraw)
	}

	var err error
	switch p.Kind {
	case KindPie:
		err = renderPie(p.Title, spec, w)
	case KindBar:
		err = renderBar(p.Title, spec, max, w)
	case KindLine:
		err = renderLine(p.Title, spec, max, w)
	default:
		return fmt.Errorf("render %s: %w", p.Kind, ErrNotRenderable)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", p.Kind, err)
	}
	return nil
}

func renderPie(title string, spec SeriesSpec, w io.Writer) error {
	values := make([]chart.Value, 0, len(spec.Points))
	for i, pt := range spec.Points {
		if pt.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: pt.Label,
			Value: pt.Value,
			Style: chart.Style{FillColor: drawing.ColorFromHex(trimHash(palette[i%len(palette)]))},
		})
	}
	pie := chart.PieChart{
		Title:  title,
		Width:  imageHeight,
		Height: imageHeight,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func renderBar(title string, spec SeriesSpec, max float64, w io.Writer) error {
	bars := make([]chart.Value, 0, len(spec.Points))
	for _, pt := range spec.Points {
		style := chart.Style{FillColor: drawing.ColorFromHex("80B1D3"), StrokeColor: drawing.ColorFromHex("80B1D3")}
		if pt.Selected {
			style.FillColor = drawing.ColorFromHex("FB8072")
			style.StrokeColor = style.FillColor
		}
		bars = append(bars, chart.Value{Label: pt.Label, Value: pt.Value, Style: style})
	}
	bc := chart.BarChart{
		Title:    title,
		Width:    imageWidth,
		Height:   imageHeight,
		BarWidth: 60,
		YAxis:    chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: max * 1.1}},
		Bars:     bars,
	}
	return bc.Render(chart.PNG, w)
}

func renderLine(title string, spec SeriesSpec, max float64, w io.Writer) error {
	xs := make([]float64, len(spec.Points))
	ys := make([]float64, len(spec.Points))
	ticks := make([]chart.Tick, len(spec.Points))
	for i, pt := range spec.Points {
		xs[i] = float64(i + 1)
		ys[i] = pt.Value
		ticks[i] = chart.Tick{Value: xs[i], Label: pt.Label}
	}

	green := drawing.ColorFromHex("059669")
	ch := chart.Chart{
		Title:  title,
		Width:  imageWidth,
		Height: imageHeight,
		XAxis: chart.XAxis{
			Name:  spec.XAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(xs) + 1)},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  spec.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: max * 1.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    spec.YAxis,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: green, StrokeWidth: 3, DotColor: green, DotWidth: 6},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

func trimHash(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		return hex[1:]
	}
	return hex
}
