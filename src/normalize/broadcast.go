package normalize

import "github.com/antmicro/servis/src/types"

// PerFigure broadcasts a scalar-or-list parameter to the figure count.
// Empty means "unset for every figure" (the zero value is replicated), a
// single entry is replicated, an exact-length list passes through, and any
// other length is a shape mismatch naming the parameter. Broadcasting must
// run after shape classification, when the figure count is known.
func PerFigure[T any](name string, vals []T, figures int) ([]T, error) {
	switch len(vals) {
	case figures:
		if figures > 0 {
			return vals, nil
		}
		fallthrough
	case 0:
		return make([]T, figures), nil
	case 1:
		out := make([]T, figures)
		for i := range out {
			out[i] = vals[0]
		}
		return out, nil
	default:
		return nil, &types.ShapeMismatchError{Param: name, Want: figures, Got: len(vals)}
	}
}

// PerFigureDefault behaves like PerFigure but fills unset entries with def
// instead of the zero value.
func PerFigureDefault[T comparable](name string, vals []T, figures int, def T) ([]T, error) {
	out, err := PerFigure(name, vals, figures)
	if err != nil {
		return nil, err
	}
	var zero T
	for i := range out {
		if out[i] == zero {
			out[i] = def
		}
	}
	return out, nil
}
