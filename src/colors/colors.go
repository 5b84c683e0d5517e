// Package colors resolves a colormap specification (none, named palette or
// explicit list) into an ordered color sequence sized for the number of
// series that will consume it, plus the value-gradient ramp used for
// magnitude-based coloring. Named palettes come from an external provider.
package colors

import (
	"fmt"
	"image/color"
	"math"

	"github.com/antmicro/servis/src/types"
)

// DefaultAccent is the single-series color.
const DefaultAccent = "#E74A3C"

// defaultQualitative is the built-in palette backing the no-colormap,
// multi-series case. Its first entry visually collides with DefaultAccent
// and is skipped when drawing from it.
const defaultQualitative = "Set1"

// AnnotationPalette colors interval-tag regions, one color per distinct tag
// name.
var AnnotationPalette = []RGB{
	MustParseHex("#01B47E"),
	MustParseHex("#332D37"),
	MustParseHex("#4088F4"),
	MustParseHex("#F15F32"),
}

// RGB is the backend-neutral color form: three channels in [0, 1].
// Backends convert it to their native encoding (hex string, byte triple or
// ANSI index).
type RGB struct {
	R, G, B float64
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", clamp8(c.R), clamp8(c.G), clamp8(c.B))
}

// Bytes returns the color as 8-bit channels.
func (c RGB) Bytes() (r, g, b uint8) {
	return clamp8(c.R), clamp8(c.G), clamp8(c.B)
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// ParseHex parses "#RRGGBB" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, nil
}

// MustParseHex is ParseHex for trusted literals.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func fromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: float64(r) / 0xffff, G: float64(g) / 0xffff, B: float64(b) / 0xffff}
}

// Spec selects a coloring source. The zero value selects the default policy
// (accent color, then the built-in qualitative palette).
type Spec struct {
	Name string // named palette, resolved through the provider
	List []RGB  // explicit colors
}

// IsZero reports whether the spec selects the default policy.
func (s Spec) IsZero() bool { return s.Name == "" && len(s.List) == 0 }

// ListFromHex builds an explicit-list Spec from hex strings.
func ListFromHex(hexes ...string) (Spec, error) {
	list := make([]RGB, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return Spec{}, err
		}
		list[i] = c
	}
	return Spec{List: list}, nil
}

// Provider is the external palette lookup: a name and a color count in, an
// ordered color sequence out.
type Provider interface {
	Palette(name string, count int) ([]RGB, error)
}

// Resolve produces exactly count colors for the given spec:
//
//   - zero spec, count 1: the default accent color;
//   - zero spec, count > 1: the accent first, then colors from the built-in
//     qualitative palette skipping its first entry, cycling if the palette
//     is shorter than needed;
//   - named spec: count colors from the provider, or ColorMapNotFoundError;
//   - explicit list: the first count entries, or InsufficientColorsError
//     when the list is shorter than count.
//
// The result is a sized sequence, not a lazy iterator, so exhaustion is a
// length check at resolution time rather than a failure mid-render.
func Resolve(spec Spec, count int, provider Provider) ([]RGB, error) {
	if count < 1 {
		count = 1
	}
	switch {
	case spec.IsZero() && count == 1:
		return []RGB{MustParseHex(DefaultAccent)}, nil
	case spec.IsZero():
		// Set1 tops out at 9 colors; cycling below covers longer runs.
		q := count
		if q > 9 {
			q = 9
		}
		pal, err := provider.Palette(defaultQualitative, q)
		if err != nil {
			return nil, err
		}
		out := make([]RGB, 0, count)
		out = append(out, MustParseHex(DefaultAccent))
		// Skip the first palette entry; wrap around for very long series
		// lists rather than running dry.
		rest := pal[1:]
		for i := 0; len(out) < count; i++ {
			out = append(out, rest[i%len(rest)])
		}
		return out, nil
	case spec.Name != "":
		pal, err := provider.Palette(spec.Name, count)
		if err != nil {
			return nil, err
		}
		return pal[:count], nil
	default:
		if len(spec.List) < count {
			return nil, &types.InsufficientColorsError{Required: count, Available: len(spec.List)}
		}
		return spec.List[:count], nil
	}
}
