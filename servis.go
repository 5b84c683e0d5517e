// Package servis plots time series with paired value histograms. One call
// renders any subset of terminal, PNG, SVG and interactive HTML output from
// the same data.
//
// The y data accepts three nesting shapes: a flat series, a list of series
// (one figure sharing x, or one figure per series depending on the x shape)
// and a list of figures each holding a list of series. See normalize.Classify
// for the exact rules.
package servis

import (
	"github.com/antmicro/servis/src/render"
	"github.com/antmicro/servis/src/render/gonumplot"
	"github.com/antmicro/servis/src/render/imageplot"
	"github.com/antmicro/servis/src/render/textplot"
	"github.com/antmicro/servis/src/render/webplot"
	"github.com/antmicro/servis/src/types"
)

// NewRenderer wires a renderer with the stock backend set: asciigraph for
// terminal output, go-chart and gonum/plot as the selectable static-image
// engines, go-echarts for HTML.
func NewRenderer(cfg render.Config) *render.Renderer {
	return render.New(cfg, render.Backends{
		Text: textplot.New(cfg),
		StaticImage: map[types.Engine]render.Backend{
			types.EngineGoChart:   imageplot.New(cfg),
			types.EngineGonumPlot: gonumplot.New(cfg),
		},
		Interactive: webplot.New(cfg),
	})
}

// RenderTimeSeriesPlot renders one flat series of y values against x. A nil
// x plots against sample indices. Options follow render.DefaultOptions when
// left zero; the call writes every requested output kind before returning.
func RenderTimeSeriesPlot(y, x []float64, o render.Options) error {
	return NewRenderer(render.DefaultConfig()).Render(y, x, o)
}

// RenderMultipleTimeSeriesPlot renders grouped series. ydata and xdata take
// any of the accepted nesting shapes; per-figure option slices broadcast
// across the resulting figures.
func RenderMultipleTimeSeriesPlot(ydata, xdata any, o render.Options) error {
	return NewRenderer(render.DefaultConfig()).Render(ydata, xdata, o)
}
