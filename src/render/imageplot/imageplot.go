// Package imageplot renders documents to PNG and SVG with go-chart. Each
// figure becomes two charts, a time-series pane and a histogram pane, laid
// out side by side and stacked under a title banner.
package imageplot

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/antmicro/servis/src/colors"
	"github.com/antmicro/servis/src/render"
	"github.com/antmicro/servis/src/types"
)

const regionAlpha = 80

// Backend renders static images.
type Backend struct {
	cfg render.Config
}

// New builds the go-chart backend.
func New(cfg render.Config) *Backend {
	return &Backend{cfg: cfg}
}

// Render implements render.Backend for PNG and SVG output.
func (b *Backend) Render(doc *render.Document, outPath string, kind types.OutputKind) error {
	switch kind {
	case types.OutputPNG:
		return b.renderPNG(doc, outPath)
	case types.OutputSVG:
		return b.renderSVG(doc, outPath)
	default:
		return fmt.Errorf("unsupported image kind %q", kind)
	}
}

// figureCharts builds the two chart values for one figure, sized to the
// document's pane split.
func (b *Backend) figureCharts(doc *render.Document, fig *render.FigureView) (chart.Chart, chart.BarChart) {
	plotW, histW, figH := doc.PaneSizes(b.cfg)
	plot := b.timeSeriesChart(doc, fig, plotW, figH)
	hist := b.histogramChart(fig, histW, figH)
	return plot, hist
}

func (b *Backend) timeSeriesChart(doc *render.Document, fig *render.FigureView, w, h int) chart.Chart {
	series := []chart.Series{}
	for i := range fig.Series {
		series = append(series, dataSeries(&fig.Series[i], fig.PlotType))
	}
	series = append(series, annotationSeries(fig)...)

	ch := chart.Chart{
		Title:      fig.Subtitle,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      b.buildXAxis(doc, fig),
		YAxis:      b.buildYAxis(fig),
		Series:     series,
	}
	if doc.Legend != nil {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch
}

// dataSeries maps one prepared series to its go-chart form. Scatter and bar
// plot types render as dots (bars come out as stems in the histogram pane
// where they carry the information); lines connect the samples.
func dataSeries(s *render.SeriesView, plotType types.PlotType) chart.Series {
	st := pointStyle(chartColor(s.Color))
	if plotType == types.PlotLine {
		st = chart.Style{StrokeWidth: 2, StrokeColor: chartColor(s.Color)}
	}
	if s.Gradient != nil {
		grad := s.Gradient
		st.DotColorProvider = func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
			if index < 0 || index >= len(grad) {
				return chartColor(colors.MustParseHex(colors.DefaultAccent))
			}
			return chartColor(grad[index])
		}
	}
	return chart.ContinuousSeries{
		Name:    s.Label,
		XValues: s.X,
		YValues: s.Y,
		Style:   st,
	}
}

// annotationSeries turns the figure's tag markers and regions into extra
// chart series: dashed vertical lines with labels, and filled vertical bands.
func annotationSeries(fig *render.FigureView) []chart.Series {
	if fig.Annotations == nil {
		return nil
	}
	lo, hi := drawExtent(fig)
	out := []chart.Series{}
	for _, r := range fig.Annotations.Regions {
		col := chartColor(r.Color)
		out = append(out, chart.ContinuousSeries{
			XValues: []float64{r.Start, r.End},
			YValues: []float64{hi, hi},
			Style: chart.Style{
				StrokeWidth: 1,
				StrokeColor: col.WithAlpha(regionAlpha),
				FillColor:   col.WithAlpha(regionAlpha),
			},
		})
	}
	for _, m := range fig.Annotations.Markers {
		out = append(out, chart.ContinuousSeries{
			XValues: []float64{m.X, m.X},
			YValues: []float64{lo, hi},
			Style: chart.Style{
				StrokeWidth:     1,
				StrokeColor:     chart.ColorAlternateGray,
				StrokeDashArray: []float64{4, 3},
			},
		})
		out = append(out, chart.AnnotationSeries{
			Annotations: []chart.Value2{{
				XValue: m.X,
				YValue: m.LabelY, // already an absolute y coordinate
				Label:  m.Label,
			}},
			Style: chart.Style{StrokeColor: chart.ColorAlternateGray},
		})
	}
	return out
}

func (b *Backend) buildXAxis(doc *render.Document, fig *render.FigureView) chart.XAxis {
	xa := chart.XAxis{Name: fig.XLabel}
	if fig.XRange != nil {
		xa.Range = &chart.ContinuousRange{Min: fig.XRange.Min, Max: fig.XRange.Max}
	}
	if doc.XTimestamp {
		xa.ValueFormatter = func(v interface{}) string {
			f, ok := v.(float64)
			if !ok {
				return ""
			}
			return time.Unix(int64(f), 0).UTC().Format("15:04:05")
		}
	} else {
		xa.ValueFormatter = func(v interface{}) string {
			f, ok := v.(float64)
			if !ok {
				return ""
			}
			return formatTick(f)
		}
	}
	return xa
}

func (b *Backend) buildYAxis(fig *render.FigureView) chart.YAxis {
	ya := chart.YAxis{Name: fig.YLabel}
	if fig.YRange != nil {
		ya.Range = &chart.ContinuousRange{Min: fig.YRange.Min, Max: fig.YRange.Max}
	} else {
		nMin, nMax := niceAxisBounds(fig.YMin, fig.YMax)
		ya.Range = &chart.ContinuousRange{Min: nMin, Max: nMax}
		ya.Ticks = niceTicks(nMin, nMax, 6)
	}
	return ya
}

// histogramChart lays the per-series bars out in shared-bin slot order so
// grouped bars keep their relative positions across the categorical axis.
func (b *Backend) histogramChart(fig *render.FigureView, w, h int) chart.BarChart {
	bins := len(fig.Edges) - 1
	bars := []chart.Value{}
	for bin := 0; bin < bins; bin++ {
		for si := range fig.Series {
			s := &fig.Series[si]
			col := chartColor(s.Color)
			if fig.BinGradient != nil {
				col = chartColor(fig.BinGradient[bin])
			}
			v := chart.Value{
				Value: float64(s.Counts[bin]),
				Style: chart.Style{FillColor: col, StrokeColor: col},
			}
			// Label the middle series of each bin with the bin's lower edge.
			if si == len(fig.Series)/2 {
				v.Label = formatTick(fig.Edges[bin])
			}
			bars = append(bars, v)
		}
	}
	barWidth := w / (len(bars) + 2)
	if barWidth < 1 {
		barWidth = 1
	}
	return chart.BarChart{
		Width:      w,
		Height:     h,
		BarWidth:   barWidth,
		BarSpacing: 2,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 12, Right: 12, Bottom: 28}},
		Bars:       bars,
	}
}

// drawExtent is the vertical extent used for markers and regions: the
// explicit y range when given, otherwise the padded data extent.
func drawExtent(fig *render.FigureView) (lo, hi float64) {
	if fig.YRange != nil {
		return fig.YRange.Min, fig.YRange.Max
	}
	return niceAxisBounds(fig.YMin, fig.YMax)
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

func chartColor(c colors.RGB) drawing.Color {
	r, g, b := c.Bytes()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

// niceAxisBounds pads the data extent and rounds both ends to the span's
// order of magnitude.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	if pad <= 0 {
		pad = 1
	}
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates up to n desired tick marks between [min, max] using
// nice increments.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil((max - min) / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	ticks := []chart.Tick{}
	for v := start; v <= end+bestStep/2; v += bestStep {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 1000:
		return fmt.Sprintf("%.0f", v)
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// renderChartPNG renders a chart to PNG bytes; a failed render yields nil so
// composition can substitute a blank pane instead of aborting the document.
func renderChartPNG(p chart.Chart) []byte {
	var buf bytes.Buffer
	if err := p.Render(chart.PNG, &buf); err != nil {
		return nil
	}
	return buf.Bytes()
}

func renderBarChartPNG(p chart.BarChart) []byte {
	var buf bytes.Buffer
	if err := p.Render(chart.PNG, &buf); err != nil {
		return nil
	}
	return buf.Bytes()
}

func renderChartSVG(p chart.Chart) []byte {
	var buf bytes.Buffer
	if err := p.Render(chart.SVG, &buf); err != nil {
		return nil
	}
	return buf.Bytes()
}

func renderBarChartSVG(p chart.BarChart) []byte {
	var buf bytes.Buffer
	if err := p.Render(chart.SVG, &buf); err != nil {
		return nil
	}
	return buf.Bytes()
}
