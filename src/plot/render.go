package plot

import (
	"fmt"
	"html"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"trackdash/src/models"
)

type Options struct {
	Width  int
	Height int
}

// pointStyle renders markers only, no connecting line
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    3,
		DotColor:    col.WithAlpha(180),
	}
}

// RenderSVG writes a scatter chart of data, one coloured series per category.
func RenderSVG(w io.Writer, data models.PlotData, opts Options) error {
	if data.Empty() {
		_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"></svg>`, opts.Width, opts.Height)
		return err
	}

	var series []chart.Series
	for i, s := range data.Series() {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = p.X, p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    html.EscapeString(s.Category), // go-chart writes SVG text unescaped
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(chart.GetDefaultColor(i)),
		})
	}

	xMin, xMax, yMin, yMax := bounds(data.Points)
	ch := chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: html.EscapeString(data.XColumn), Range: &chart.ContinuousRange{Min: xMin, Max: xMax}},
		YAxis:      chart.YAxis{Name: html.EscapeString(data.YColumn), Range: &chart.ContinuousRange{Min: yMin, Max: yMax}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render scatter %s/%s: %w", data.XColumn, data.YColumn, err)
	}
	return nil
}

// bounds pads the data extent so a constant axis still has a non-zero range.
func bounds(points []models.Point) (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		xMin, xMax = math.Min(xMin, p.X), math.Max(xMax, p.X)
		yMin, yMax = math.Min(yMin, p.Y), math.Max(yMax, p.Y)
	}
	xMin, xMax = pad(xMin, xMax)
	yMin, yMax = pad(yMin, yMax)
	return
}

func pad(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(lo), 1)
	}
	return lo - span*0.05, hi + span*0.05
}
