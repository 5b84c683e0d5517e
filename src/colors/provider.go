package colors

import (
	"gonum.org/v1/plot/palette/brewer"

	"github.com/antmicro/servis/src/types"
)

// BrewerProvider resolves named palettes against the ColorBrewer sets
// shipped with gonum/plot. Brewer palettes carry at least 3 colors, so
// smaller requests are rounded up and truncated by the caller.
type BrewerProvider struct{}

// Palette implements Provider.
func (BrewerProvider) Palette(name string, count int) ([]RGB, error) {
	q := count
	if q < 3 {
		q = 3
	}
	pal, err := brewer.GetPalette(brewer.TypeAny, name, q)
	if err != nil {
		return nil, &types.ColorMapNotFoundError{Name: name, Count: count}
	}
	cs := pal.Colors()
	out := make([]RGB, len(cs))
	for i, c := range cs {
		out[i] = fromColor(c)
	}
	return out, nil
}

// DefaultProvider is the palette source used when the caller does not plug
// in their own.
var DefaultProvider Provider = BrewerProvider{}
