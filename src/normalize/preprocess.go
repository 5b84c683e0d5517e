package normalize

import "github.com/antmicro/servis/src/types"

// Preprocessed carries the adjusted grid plus the x offset applied to each
// series. Offsets are needed later to shift tag timestamps, which arrive in
// original (untrimmed) coordinates, onto the trimmed axis.
type Preprocessed struct {
	Grid    Grid
	Offsets [][]float64 // [figure][series], 0 when trimming is disabled
}

// Preprocess applies the skip-first-sample and trim-x policies to every
// series. It always produces fresh x/y slices so caller data stays intact.
//
// Trimming subtracts min(x) per series. With sharedTrim, series within one
// figure share a single offset (the figure-wide minimum) so they stay
// aligned on a common x-axis.
func Preprocess(grid Grid, skipFirst, trimX, sharedTrim bool) (*Preprocessed, error) {
	out := &Preprocessed{
		Grid:    make(Grid, len(grid)),
		Offsets: make([][]float64, len(grid)),
	}
	for f, fig := range grid {
		out.Grid[f] = make([]types.Series, len(fig))
		out.Offsets[f] = make([]float64, len(fig))
		for s, ser := range fig {
			start := 0
			if skipFirst && ser.Len() > 0 {
				start = 1
			}
			adj := types.Series{
				X: append([]float64(nil), ser.X[start:]...),
				Y: append([]float64(nil), ser.Y[start:]...),
			}
			if trimX && adj.Len() == 0 {
				return nil, &types.EmptyAfterSkipError{Figure: f, Series: s}
			}
			out.Grid[f][s] = adj
		}
		if !trimX {
			continue
		}
		if sharedTrim {
			min := out.Grid[f][0].X[0]
			for _, ser := range out.Grid[f] {
				for _, x := range ser.X {
					if x < min {
						min = x
					}
				}
			}
			for s := range out.Grid[f] {
				shiftX(out.Grid[f][s].X, min)
				out.Offsets[f][s] = min
			}
		} else {
			for s, ser := range out.Grid[f] {
				min := ser.X[0]
				for _, x := range ser.X {
					if x < min {
						min = x
					}
				}
				shiftX(ser.X, min)
				out.Offsets[f][s] = min
			}
		}
	}
	return out, nil
}

func shiftX(x []float64, offset float64) {
	for i := range x {
		x[i] -= offset
	}
}
