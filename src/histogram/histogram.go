// Package histogram computes the shared value-histogram layout for the
// series of one figure: common bin edges across co-plotted series, per-series
// counts, and the grouped bar sub-slots that keep side-by-side bars from
// overlapping.
package histogram

import (
	"math"

	"github.com/antmicro/servis/src/types"
)

// Margins within one shared bin, as fractions of the bin width. The section
// margin pads both ends of the bin, the bar margin pads each bar slot.
const (
	DefaultSectionMargin = 0.1
	DefaultBarMargin     = 0.0
)

// Edges computes bins+1 linear bin edges spanning the combined [min, max] of
// all value sets, or the explicit bounds when given. Bin edges are always
// linear; a logarithmic display axis is a backend presentation choice.
//
// A zero-width range (all values identical) is widened by 0.5 on both sides
// so no bin ends up with zero width.
func Edges(valueSets [][]float64, bins int, bounds *types.Range) []float64 {
	if bins < 1 {
		bins = 1
	}
	var lo, hi float64
	if bounds != nil {
		lo, hi = bounds.Min, bounds.Max
	} else {
		lo, hi = math.Inf(1), math.Inf(-1)
		for _, vals := range valueSets {
			for _, v := range vals {
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
		}
		if math.IsInf(lo, 1) {
			lo, hi = 0, 0
		}
	}
	if hi <= lo {
		lo, hi = lo-0.5, lo+0.5
	}
	edges := make([]float64, bins+1)
	width := (hi - lo) / float64(bins)
	for i := 0; i <= bins; i++ {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi // avoid accumulation drift on the closing edge
	return edges
}

// Counts bins one series' values against the edges. Bins are half-open
// [edge[i], edge[i+1]) except the last, which is closed so the maximum value
// is counted instead of dropped. Values outside the edge span are ignored.
func Counts(values, edges []float64) []int {
	bins := len(edges) - 1
	counts := make([]int, bins)
	lo, hi := edges[0], edges[bins]
	width := (hi - lo) / float64(bins)
	for _, v := range values {
		if v < lo || v > hi {
			continue
		}
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	return counts
}

// Slot is the sub-interval of one bin assigned to one series' bar so that
// bars of co-plotted series sit side by side instead of stacking.
type Slot struct {
	Lo float64
	Hi float64
}

// Slots divides every bin into seriesCount equal bar slots with the given
// margins and returns the slots for the series at index. Margins are
// fractions of the bin width (section margin) and of the slot width (bar
// margin).
func Slots(edges []float64, index, seriesCount int, sectionMargin, barMargin float64) []Slot {
	bins := len(edges) - 1
	slots := make([]Slot, bins)
	for b := 0; b < bins; b++ {
		binWidth := edges[b+1] - edges[b]
		margin := binWidth * sectionMargin
		slotWidth := (binWidth - 2*margin) / float64(seriesCount)
		pad := slotWidth * barMargin
		lo := edges[b] + margin + float64(index)*slotWidth + pad
		slots[b] = Slot{Lo: lo, Hi: lo + slotWidth - 2*pad}
	}
	return slots
}
