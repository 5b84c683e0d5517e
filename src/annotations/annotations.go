// Package annotations converts domain tags, expressed in original x-axis
// coordinates, into renderer-agnostic primitives: dashed vertical markers
// with staggered labels for single tags, shaded regions with toggleable
// legend entries for interval tags.
package annotations

import (
	"sort"

	"github.com/antmicro/servis/src/colors"
	"github.com/antmicro/servis/src/types"
)

// Label rows sit near the top of the y-span, alternating between two heights
// so adjacent labels are less likely to overlap. This is a heuristic, not a
// collision solver; dense tag sets will still overlap.
const (
	upperRowFraction = 0.96
	lowerRowFraction = 0.90
)

// Marker is one single-tag primitive: a vertical line at X with a label at
// (X, LabelY).
type Marker struct {
	X      float64
	Label  string
	LabelY float64
}

// Region is one interval-tag primitive: a shaded band spanning [Start, End]
// across the full y-extent.
type Region struct {
	Name  string
	Start float64
	End   float64
	Color colors.RGB
}

// LegendEntry names a distinct region group. Toggling an entry hides every
// region sharing its name.
type LegendEntry struct {
	Name  string
	Color colors.RGB
}

// Set is the annotation output for one figure.
type Set struct {
	Markers []Marker
	Regions []Region
	Legend  []LegendEntry
}

// Empty reports whether the set carries no primitives.
func (s *Set) Empty() bool {
	return s == nil || (len(s.Markers) == 0 && len(s.Regions) == 0)
}

// Annotate builds the annotation set for one figure. The offset is the trim
// offset applied to the figure's data: data moved left by offset, so tags
// move left by the same amount. yMin/yMax are the figure's data extent,
// overridden by yRange when the caller zooms the y-axis.
//
// Interval-tag colors are assigned per distinct name from the given palette
// in first-seen order; running out of palette colors is a
// PaletteExhaustedError. Legend entries come out in sorted-name order.
func Annotate(tags []types.Tag, kind types.TagKind, offset, yMin, yMax float64, yRange *types.Range, palette []colors.RGB) (*Set, error) {
	if len(tags) == 0 {
		return &Set{}, nil
	}
	if kind == types.TagSingle {
		lo, hi := yMin, yMax
		if yRange != nil {
			lo, hi = yRange.Min, yRange.Max
		}
		span := hi - lo
		set := &Set{Markers: make([]Marker, len(tags))}
		for i, t := range tags {
			row := lowerRowFraction
			if i%2 == 1 {
				row = upperRowFraction
			}
			set.Markers[i] = Marker{
				X:      t.Timestamp - offset,
				Label:  t.Name,
				LabelY: lo + span*row,
			}
		}
		return set, nil
	}

	var names []string
	byName := map[string]colors.RGB{}
	for _, t := range tags {
		if _, ok := byName[t.Name]; ok {
			continue
		}
		if len(names) == len(palette) {
			// Count the remaining distinct names for the error report.
			required := map[string]bool{}
			for _, u := range tags {
				required[u.Name] = true
			}
			return nil, &types.PaletteExhaustedError{Required: len(required), Available: len(palette)}
		}
		byName[t.Name] = palette[len(names)]
		names = append(names, t.Name)
	}

	set := &Set{Regions: make([]Region, len(tags))}
	for i, t := range tags {
		set.Regions[i] = Region{
			Name:  t.Name,
			Start: t.Start - offset,
			End:   t.End - offset,
			Color: byName[t.Name],
		}
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	for _, n := range sorted {
		set.Legend = append(set.Legend, LegendEntry{Name: n, Color: byName[n]})
	}
	return set, nil
}
