package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/m-mizutani/goerr/v2"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Render draws d as a PNG of the given size.
func (d *Description) Render(w io.Writer, width, height int) error {
	if d == nil {
		return goerr.New("nothing to render")
	}
	var err error
	switch d.Kind {
	case KindLine:
		err = d.lineChart(width, height).Render(chart.PNG, w)
	case KindBar:
		err = d.barChart(width, height).Render(chart.PNG, w)
	case KindDonut:
		err = d.donutChart(width, height).Render(chart.PNG, w)
	default:
		return goerr.New("unsupported chart kind", goerr.V("kind", int(d.Kind)), goerr.V("view", d.View.String()))
	}
	if err != nil {
		return goerr.Wrap(err, "failed to render chart", goerr.V("view", d.View.String()))
	}
	return nil
}

// Image renders d and decodes the PNG so a canvas can display it.
func (d *Description) Image(width, height int) (image.Image, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf, width, height); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode rendered chart", goerr.V("view", d.View.String()))
	}
	return img, nil
}

func (d *Description) lineChart(width, height int) chart.Chart {
	xs := make([]float64, len(d.Labels))
	for i := range xs {
		xs[i] = float64(i)
	}
	maxY := 0.0
	series := []chart.Series{}
	// band first so the category lines are drawn over it
	for _, s := range d.Series {
		if !s.Fill {
			continue
		}
		col := drawing.ColorFromHex(s.Color)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Values,
			Style: chart.Style{
				StrokeWidth: 1,
				StrokeColor: col.WithAlpha(110),
				FillColor:   col.WithAlpha(51),
			},
		})
		maxY = maxOf(maxY, s.Values)
	}
	for _, s := range d.Series {
		if s.Fill {
			continue
		}
		col := drawing.ColorFromHex(s.Color)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Values,
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: col,
				DotWidth:    4,
				DotColor:    col,
			},
		})
		maxY = maxOf(maxY, s.Values)
	}
	top, ticks := yAxis(maxY)
	ch := chart.Chart{
		Title:      d.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           d.XLabel,
			Ticks:          periodTicks(d.Labels),
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           d.YLabel,
			Range:          &chart.ContinuousRange{Min: 0, Max: top},
			Ticks:          ticks,
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

func (d *Description) barChart(width, height int) chart.BarChart {
	vals := d.values()
	bars := make([]chart.Value, len(d.Labels))
	for i, l := range d.Labels {
		bars[i] = chart.Value{
			Label: l,
			Value: vals[i],
			Style: chart.Style{
				FillColor:   d.color(i),
				StrokeColor: d.color(i),
			},
		}
	}
	top, ticks := yAxis(maxOf(0, vals))
	barW := width / (2*len(bars) + 1)
	if barW > 120 {
		barW = 120
	}
	return chart.BarChart{
		Title:      d.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barW,
		BarSpacing: barW,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  d.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			Ticks: ticks,
		},
		Bars: bars,
	}
}

func (d *Description) donutChart(width, height int) chart.DonutChart {
	vals := make([]chart.Value, len(d.Labels))
	for i, l := range d.Labels {
		vals[i] = chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", l, d.Shares[i]),
			Value: d.Shares[i],
			Style: chart.Style{
				FillColor: d.color(i),
				FontColor: drawing.ColorWhite,
			},
		}
	}
	return chart.DonutChart{
		Title:  d.Title,
		Width:  width,
		Height: height,
		Values: vals,
	}
}

func (d *Description) values() []float64 {
	if len(d.Series) == 0 {
		return make([]float64, len(d.Labels))
	}
	return d.Series[0].Values
}

func (d *Description) color(i int) drawing.Color {
	if i < len(d.Colors) {
		return drawing.ColorFromHex(d.Colors[i])
	}
	return chart.GetDefaultColor(i)
}

// yAxis picks the value range and ticks; the range grows to cover the last tick.
func yAxis(maxY float64) (float64, []chart.Tick) {
	top := niceAxisMax(maxY)
	ticks := niceTicks(0, top, 6)
	if n := len(ticks); n > 0 && ticks[n-1].Value > top {
		top = ticks[n-1].Value
	}
	return top, ticks
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor:     drawing.ColorFromHex("bbbbbb"),
		StrokeWidth:     1,
		StrokeDashArray: []float64{4, 4},
	}
}

func maxOf(cur float64, vals []float64) float64 {
	for _, v := range vals {
		if v > cur {
			cur = v
		}
	}
	return cur
}
