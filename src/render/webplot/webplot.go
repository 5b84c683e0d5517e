// Package webplot renders documents to interactive HTML with go-echarts.
// Figures stack on one page; every figure contributes a zoomable time-series
// chart and a grouped-bar histogram.
package webplot

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/antmicro/servis/src/render"
	"github.com/antmicro/servis/src/types"
)

const regionOpacity = 0.3

// Backend renders interactive HTML pages. Out overrides the destination when
// no output path is given (stdout by default).
type Backend struct {
	cfg render.Config
	Out io.Writer
}

// New builds the go-echarts backend.
func New(cfg render.Config) *Backend {
	return &Backend{cfg: cfg, Out: os.Stdout}
}

// Render implements render.Backend for HTML output.
func (b *Backend) Render(doc *render.Document, outPath string, kind types.OutputKind) error {
	if kind != types.OutputHTML {
		return fmt.Errorf("unsupported interactive kind %q", kind)
	}
	page := components.NewPage()
	page.PageTitle = doc.Title
	page.SetLayout(components.PageFlexLayout)
	for i := range doc.Figures {
		b.addFigure(page, doc, &doc.Figures[i])
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	html := injectFontLink(buf.Bytes(), doc.FontFamily)

	if outPath == "" {
		_, err := b.Out.Write(html)
		return err
	}
	f, err := os.Create(outPath + kind.Suffix())
	if err != nil {
		return fmt.Errorf("create html output: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(html); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return f.Close()
}

func (b *Backend) addFigure(page *components.Page, doc *render.Document, fig *render.FigureView) {
	plotW, histW, figH := doc.PaneSizes(b.cfg)
	switch fig.PlotType {
	case types.PlotLine:
		page.AddCharts(b.lineChart(doc, fig, plotW, figH))
	case types.PlotBar:
		page.AddCharts(b.barSeriesChart(doc, fig, plotW, figH))
	default:
		page.AddCharts(b.scatterChart(doc, fig, plotW, figH))
	}
	page.AddCharts(b.histogramChart(doc, fig, histW, figH))
}

func (b *Backend) globalOptions(doc *render.Document, fig *render.FigureView, w, h int) []charts.GlobalOpts {
	xa := opts.XAxis{Name: fig.XLabel, Type: "value"}
	if fig.XRange != nil {
		xa.Min, xa.Max = fig.XRange.Min, fig.XRange.Max
	}
	ya := opts.YAxis{Name: fig.YLabel, Type: "value"}
	if fig.YRange != nil {
		ya.Min, ya.Max = fig.YRange.Min, fig.YRange.Max
	}
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", w),
			Height: fmt.Sprintf("%dpx", h),
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Subtitle}),
		charts.WithXAxisOpts(xa),
		charts.WithYAxisOpts(ya),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(doc.Legend != nil)}),
	}
	if gradientSeries(fig) != nil {
		global = append(global, charts.WithVisualMapOpts(opts.VisualMap{
			Min:     float32(fig.YMin),
			Max:     float32(fig.YMax),
			Show:    opts.Bool(false),
			InRange: &opts.VisualMapInRange{Color: gradientSeries(fig)},
		}))
	}
	return global
}

func (b *Backend) scatterChart(doc *render.Document, fig *render.FigureView, w, h int) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(b.globalOptions(doc, fig, w, h)...)
	for si := range fig.Series {
		s := &fig.Series[si]
		data := make([]opts.ScatterData, len(s.X))
		for i := range s.X {
			data[i] = opts.ScatterData{Value: []interface{}{s.X[i], s.Y[i]}, SymbolSize: 6}
		}
		sc.AddSeries(s.Label, data, b.seriesOptions(fig, si)...)
	}
	return sc
}

func (b *Backend) lineChart(doc *render.Document, fig *render.FigureView, w, h int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(b.globalOptions(doc, fig, w, h)...)
	for si := range fig.Series {
		s := &fig.Series[si]
		data := make([]opts.LineData, len(s.X))
		for i := range s.X {
			data[i] = opts.LineData{Value: []interface{}{s.X[i], s.Y[i]}}
		}
		line.AddSeries(s.Label, data, b.seriesOptions(fig, si)...)
	}
	return line
}

func (b *Backend) barSeriesChart(doc *render.Document, fig *render.FigureView, w, h int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(b.globalOptions(doc, fig, w, h)...)
	for si := range fig.Series {
		s := &fig.Series[si]
		data := make([]opts.BarData, len(s.X))
		for i := range s.X {
			data[i] = opts.BarData{Value: []interface{}{s.X[i], s.Y[i]}}
		}
		bar.AddSeries(s.Label, data, b.seriesOptions(fig, si)...)
	}
	return bar
}

// seriesOptions colors one series and, on the first series only, attaches the
// figure's tag markers and regions so they render once per chart.
func (b *Backend) seriesOptions(fig *render.FigureView, si int) []charts.SeriesOpts {
	s := &fig.Series[si]
	var so []charts.SeriesOpts
	if s.Gradient == nil {
		so = append(so,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color.Hex()}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color.Hex()}),
		)
	}
	if si != 0 || fig.Annotations == nil {
		return so
	}
	if len(fig.Annotations.Markers) > 0 {
		items := make([]opts.MarkLineNameXAxisItem, len(fig.Annotations.Markers))
		for i, m := range fig.Annotations.Markers {
			items[i] = opts.MarkLineNameXAxisItem{Name: m.Label, XAxis: m.X}
		}
		so = append(so, charts.WithMarkLineNameXAxisItemOpts(items...))
	}
	for _, r := range fig.Annotations.Regions {
		so = append(so, charts.WithMarkAreaNameCoordItemOpts(opts.MarkAreaNameCoordItem{
			Name:        r.Name,
			Coordinate0: []interface{}{r.Start},
			Coordinate1: []interface{}{r.End},
			ItemStyle: &opts.ItemStyle{
				Color:   r.Color.Hex(),
				Opacity: opts.Float(regionOpacity),
			},
		}))
	}
	return so
}

// histogramChart is categorical over the shared bins, one grouped bar series
// per data series.
func (b *Backend) histogramChart(doc *render.Document, fig *render.FigureView, w, h int) *charts.Bar {
	bar := charts.NewBar()
	bins := len(fig.Edges) - 1
	labels := make([]string, bins)
	for i := 0; i < bins; i++ {
		labels[i] = fmt.Sprintf("%.4g", fig.Edges[i])
	}
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", w),
			Height: fmt.Sprintf("%dpx", h),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: fig.YLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)
	bar.SetXAxis(labels)
	for si := range fig.Series {
		s := &fig.Series[si]
		data := make([]opts.BarData, bins)
		for i := 0; i < bins; i++ {
			data[i] = opts.BarData{Value: s.Counts[i]}
			if fig.BinGradient != nil {
				data[i].ItemStyle = &opts.ItemStyle{Color: fig.BinGradient[i].Hex()}
			}
		}
		var so []charts.SeriesOpts
		if fig.BinGradient == nil {
			so = append(so, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color.Hex()}))
		}
		bar.AddSeries(s.Label, data, so...)
	}
	return bar
}

// gradientSeries returns the gradient ramp in hex form when any series uses
// per-sample gradient coloring, nil otherwise.
func gradientSeries(fig *render.FigureView) []string {
	for i := range fig.Series {
		if fig.Series[i].Gradient != nil {
			ramp := fig.Series[i].Gradient
			out := make([]string, 0, len(ramp))
			seen := map[string]bool{}
			for _, c := range ramp {
				h := c.Hex()
				if !seen[h] {
					seen[h] = true
					out = append(out, h)
				}
			}
			return out
		}
	}
	return nil
}
