package render

import "github.com/antmicro/servis/src/colors"

// Config carries process-stable rendering policy. It is passed to New
// explicitly so tests can run with distinct configurations; nothing here is
// ambient package state.
type Config struct {
	// FontFamily is the display font requested from backends that support
	// font selection (HTML output links it, image output approximates it).
	FontFamily string

	// PlotPaneRatio / HistPaneRatio split each figure's width between the
	// time-series pane and the histogram pane (8:3 by default).
	PlotPaneRatio int
	HistPaneRatio int

	// Histogram bar geometry within one shared bin, as width fractions.
	SectionMargin float64
	BarMargin     float64

	// Legend width estimate per label: line + margin + padding + per-rune
	// width, in pixels. Used to fit legend columns under the figure.
	LegendLineWidth int
	LegendMargin    int
	LegendPadding   int
	LegendCharWidth int

	// Palettes resolves named colormaps.
	Palettes colors.Provider
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		FontFamily:      "Lato",
		PlotPaneRatio:   8,
		HistPaneRatio:   3,
		SectionMargin:   0.1,
		BarMargin:       0.0,
		LegendLineWidth: 20,
		LegendMargin:    20,
		LegendPadding:   10,
		LegendCharWidth: 6,
		Palettes:        colors.DefaultProvider,
	}
}
