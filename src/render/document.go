package render

import (
	"github.com/antmicro/servis/src/annotations"
	"github.com/antmicro/servis/src/colors"
	"github.com/antmicro/servis/src/histogram"
	"github.com/antmicro/servis/src/types"
)

// SeriesView is one fully prepared series: trimmed coordinates, resolved
// colors and histogram placement. Backends only read it.
type SeriesView struct {
	X []float64
	Y []float64

	// Label is the legend entry ("" when the document has no legend).
	Label string

	// Color is the series color for both panes. Gradient, when non-nil,
	// overrides it per sample in the time-series pane.
	Color    colors.RGB
	Gradient []colors.RGB

	// Counts and Slots place this series' bars within the figure's shared
	// bins.
	Counts []int
	Slots  []histogram.Slot
}

// FigureView is one prepared figure: a time-series pane paired with a
// histogram pane, sharing axis configuration and bin edges.
type FigureView struct {
	Subtitle string
	XLabel   string // axis title with unit folded in, e.g. "time [s]"
	YLabel   string
	XRange   *types.Range
	YRange   *types.Range

	PlotType types.PlotType

	// YMin/YMax are the data extent across all series of the figure.
	YMin float64
	YMax float64

	// Edges are the shared histogram bin edges (len = bins + 1).
	Edges []float64
	// BinGradient colors bins by value when gradient coloring is on.
	BinGradient []colors.RGB

	Series []SeriesView

	Annotations *annotations.Set
}

// Legend describes the shared legend placed with the stacked figures.
type Legend struct {
	Labels  []string
	Columns int
}

// Document is the renderer-agnostic unit handed to every backend: all
// figures of one plot request, normalized and precomputed.
type Document struct {
	Title   string
	Figures []FigureView
	Legend  *Legend // nil when fewer than two legend labels were supplied

	// Width and Height are the requested total figure size in pixels.
	Width  int
	Height int

	// XTimestamp asks text output to format x values as clock times.
	XTimestamp bool

	FontFamily string
}

// PaneSizes splits the document width into the time-series and histogram
// pane widths at the configured ratio and divides the height between the
// stacked figures.
func (d *Document) PaneSizes(cfg Config) (plotW, histW, figH int) {
	total := cfg.PlotPaneRatio + cfg.HistPaneRatio
	plotW = d.Width * cfg.PlotPaneRatio / total
	histW = d.Width * cfg.HistPaneRatio / total
	figH = d.Height / len(d.Figures)
	return plotW, histW, figH
}

// Backend renders a prepared document to one output kind. Implementations
// write to outPath plus the kind's suffix; an empty outPath means "display":
// stream to stdout where the format allows it.
type Backend interface {
	Render(doc *Document, outPath string, kind types.OutputKind) error
}
