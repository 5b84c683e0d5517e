package types

import "fmt"

// EmptyInputError reports data with no figures or a figure with no series.
type EmptyInputError struct {
	What string // "figures" or "series in figure N"
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty input: no %s", e.What)
}

// ShapeError reports y/x data whose nesting cannot be classified into one of
// the three supported shapes, or whose x nesting disagrees with y.
type ShapeError struct {
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unsupported data shape: %s", e.Detail)
}

// ShapeMismatchError reports a per-figure or per-series parameter list whose
// length disagrees with the classified data shape.
type ShapeMismatchError struct {
	Param string
	Want  int
	Got   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("parameter %s has %d entries, want %d", e.Param, e.Got, e.Want)
}

// EmptyAfterSkipError reports a series left without samples after the
// skip-first policy, so min(x) needed for trimming is undefined.
type EmptyAfterSkipError struct {
	Figure int
	Series int
}

func (e *EmptyAfterSkipError) Error() string {
	return fmt.Sprintf("series %d in figure %d is empty after skipping the first sample", e.Series, e.Figure)
}

// ColorMapNotFoundError reports a named palette the provider does not know.
type ColorMapNotFoundError struct {
	Name  string
	Count int
}

func (e *ColorMapNotFoundError) Error() string {
	return fmt.Sprintf("cannot find colormap %q with %d colors", e.Name, e.Count)
}

// InsufficientColorsError reports an explicit color list shorter than the
// number of series that must consume it.
type InsufficientColorsError struct {
	Required  int
	Available int
}

func (e *InsufficientColorsError) Error() string {
	return fmt.Sprintf("explicit color list has %d colors, need at least %d", e.Available, e.Required)
}

// PaletteExhaustedError reports more distinct interval-tag names than the
// annotation palette has colors.
type PaletteExhaustedError struct {
	Required  int
	Available int
}

func (e *PaletteExhaustedError) Error() string {
	return fmt.Sprintf("annotation palette has %d colors, need %d for distinct tag names", e.Available, e.Required)
}

// ConflictingColorPolicyError reports gradient coloring requested together
// with an explicit colormap. The two are mutually exclusive: gradients derive
// color from sample magnitude, colormaps assign one color per series.
type ConflictingColorPolicyError struct{}

func (e *ConflictingColorPolicyError) Error() string {
	return "gradient colors and colormap cannot be used at the same time"
}
