package render

import (
	"github.com/antmicro/servis/src/colors"
	"github.com/antmicro/servis/src/types"
)

// Options configures one plot request. Per-figure fields (Subtitles,
// XTitles, ..., Tags, TagKinds, PlotTypes) accept zero entries (unset
// everywhere), one entry (broadcast to every figure) or exactly one entry
// per figure; any other length is a shape mismatch.
//
// Start from DefaultOptions and override: the zero value disables trimming
// and requests no output.
type Options struct {
	Title     string
	Subtitles []string

	XTitles []string
	XUnits  []string
	YTitles []string
	YUnits  []string

	XRanges []*types.Range
	YRanges []*types.Range

	// OutPath is the extension-less output base path; every requested
	// output kind appends its own suffix. Empty means display: terminal
	// and HTML output stream to stdout, static images are skipped.
	OutPath     string
	OutputKinds []types.OutputKind

	// TrimXValues subtracts min(x) from each series' x values so plotting
	// starts at 0. SharedTrim uses one offset per figure instead of one
	// per series.
	TrimXValues bool
	SharedTrim  bool

	// SkipFirst drops the first sample of every series before any other
	// processing (sentinel-sample discard).
	SkipFirst bool

	Width  int
	Height int

	Bins int

	// XTimestamp renders terminal x extents as clock times.
	XTimestamp bool

	PlotTypes []types.PlotType

	// Tags holds one tag list per figure; TagKinds selects single or
	// interval interpretation per figure.
	Tags     [][]types.Tag
	TagKinds []types.TagKind

	// Engine picks the static-image library for "png"/"svg" outputs.
	Engine types.Engine

	// Colormap assigns per-series colors; GradientColors colors samples by
	// their own magnitude. The two are mutually exclusive.
	Colormap       colors.Spec
	GradientColors bool

	// LegendLabels names the series across all figures in consumption
	// order; labels beyond the series count are dropped. A shared legend
	// is drawn when more than one label survives.
	LegendLabels []string
}

// DefaultOptions returns the stock request parameters: terminal output,
// trimming on, 1500x850 figure, 20 bins, scatter glyphs.
func DefaultOptions() Options {
	return Options{
		OutputKinds: []types.OutputKind{types.OutputTxt},
		TrimXValues: true,
		Width:       1500,
		Height:      850,
		Bins:        20,
		Engine:      types.EngineGoChart,
	}
}
