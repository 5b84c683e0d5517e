// Package normalize turns the caller-facing nested-list data shapes into the
// canonical figures/series form consumed by the rest of the pipeline, and
// broadcasts per-figure parameter lists to match.
package normalize

import (
	"fmt"

	"github.com/antmicro/servis/src/types"
)

// ShapeKind tags the nesting depth of caller-supplied y data.
type ShapeKind int

const (
	// ShapeFlat is a flat []float64: one series, one figure.
	ShapeFlat ShapeKind = iota
	// ShapeListOfFlat is a [][]float64: either one series per figure or
	// several series in one figure, depending on the x data nesting.
	ShapeListOfFlat
	// ShapeListOfListOfFlat is a [][][]float64: figures of series.
	ShapeListOfListOfFlat
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeFlat:
		return "flat"
	case ShapeListOfFlat:
		return "list-of-flat"
	case ShapeListOfListOfFlat:
		return "list-of-list-of-flat"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// Grid is the canonical data form: outer index selects the figure, inner
// index the series within that figure.
type Grid [][]types.Series

// Figures returns the number of figures in the grid.
func (g Grid) Figures() int { return len(g) }

// classifyY performs the two depth probes on y data. Deeper nesting or any
// other element type is rejected here rather than detected downstream.
func classifyY(ydata any) (ShapeKind, error) {
	switch ydata.(type) {
	case []float64:
		return ShapeFlat, nil
	case [][]float64:
		return ShapeListOfFlat, nil
	case [][][]float64:
		return ShapeListOfListOfFlat, nil
	default:
		return 0, &types.ShapeError{Detail: fmt.Sprintf("y data has type %T, want []float64, [][]float64 or [][][]float64", ydata)}
	}
}

func indexSeries(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

// Classify inspects the nesting of ydata and xdata and produces the
// canonical Grid. Supported shapes:
//
//   - []float64 y with nil or []float64 x: one figure, one series.
//   - [][]float64 y with []float64 x: one figure, series sharing that x.
//   - [][]float64 y with nil or matching [][]float64 x: one series per figure.
//   - [][][]float64 y with nil or matching [][][]float64 x: figures of series.
//
// A nil xdata defaults every series' x to sample indices 0..n-1. The result
// never aliases caller slices at the sample level only for defaulted x; data
// slices are shared read-only and must not be mutated downstream.
func Classify(ydata, xdata any) (Grid, ShapeKind, error) {
	kind, err := classifyY(ydata)
	if err != nil {
		return nil, 0, err
	}

	// A typed nil slice means the same as no x data at all.
	switch xv := xdata.(type) {
	case []float64:
		if xv == nil {
			xdata = nil
		}
	case [][]float64:
		if xv == nil {
			xdata = nil
		}
	case [][][]float64:
		if xv == nil {
			xdata = nil
		}
	}

	switch kind {
	case ShapeFlat:
		y := ydata.([]float64)
		var x []float64
		switch xv := xdata.(type) {
		case nil:
			x = indexSeries(len(y))
		case []float64:
			x = xv
		default:
			return nil, 0, &types.ShapeError{Detail: fmt.Sprintf("flat y data with %T x data", xdata)}
		}
		if len(x) != len(y) {
			return nil, 0, &types.ShapeError{Detail: fmt.Sprintf("series has %d y values but %d x values", len(y), len(x))}
		}
		return Grid{{types.Series{X: x, Y: y}}}, kind, nil

	case ShapeListOfFlat:
		ys := ydata.([][]float64)
		if len(ys) == 0 {
			return nil, 0, &types.EmptyInputError{What: "figures"}
		}
		switch xv := xdata.(type) {
		case []float64:
			// Flat shared x: all series belong to one figure.
			fig := make([]types.Series, len(ys))
			for i, y := range ys {
				if len(xv) != len(y) {
					return nil, 0, &types.ShapeError{Detail: fmt.Sprintf("series %d has %d y values but the shared x has %d", i, len(y), len(xv))}
				}
				fig[i] = types.Series{X: xv, Y: y}
			}
			return Grid{fig}, kind, nil
		case nil, [][]float64:
			// Matching nesting (or defaulted x): one series per figure.
			xs, _ := xv.([][]float64)
			if xs != nil && len(xs) != len(ys) {
				return nil, 0, &types.ShapeError{Detail: fmt.Sprintf("%d y series but %d x series", len(ys), len(xs))}
			}
			grid := make(Grid, len(ys))
			for i, y := range ys {
				var x []float64
				if xs == nil {
					x = indexSeries(len(y))
				} else {
					x = xs[i]
				}
				if len(x) != len(y) {
					return nil, 0, &types.ShapeError{Detail: fmt.Sprintf("series %d has %d y values but %d x values", i, len(y), len(x))}
				}
				grid[i] = []types.Series{{X: x, Y: y}}
			}
			return grid, kind, nil
		default:
			return nil, 0, &types.ShapeError{Detail: fmt.Sprintf("list-of-flat y data with %T x data", xdata)}
		}

	default: // ShapeListOfListOfFlat
		ys := ydata.([][][]float64)
		if len(ys) == 0 {
			return nil, 0, &types.EmptyInputError{What: "figures"}
		}
		xs, ok := xdata.([][][]float64)
		if xdata != nil && !ok {
			return nil, 0, &types.ShapeError{Detail: fmt.Sprintf("list-of-list-of-flat y data with %T x data", xdata)}
		}
		if xs != nil && len(xs) != len(ys) {
			return nil, 0, &types.ShapeError{Detail: fmt.Sprintf("%d y figures but %d x figures", len(ys), len(xs))}
		}
		grid := make(Grid, len(ys))
		for f, fig := range ys {
			if len(fig) == 0 {
				return nil, 0, &types.EmptyInputError{What: fmt.Sprintf("series in figure %d", f)}
			}
			if xs != nil && len(xs[f]) != len(fig) {
				return nil, 0, &types.ShapeError{Detail: fmt.Sprintf("figure %d has %d y series but %d x series", f, len(fig), len(xs[f]))}
			}
			grid[f] = make([]types.Series, len(fig))
			for s, y := range fig {
				var x []float64
				if xs == nil {
					x = indexSeries(len(y))
				} else {
					x = xs[f][s]
				}
				if len(x) != len(y) {
					return nil, 0, &types.ShapeError{Detail: fmt.Sprintf("series %d in figure %d has %d y values but %d x values", s, f, len(y), len(x))}
				}
				grid[f][s] = types.Series{X: x, Y: y}
			}
		}
		return grid, kind, nil
	}
}
