package histogram

import (
	"testing"

	"github.com/antmicro/servis/src/types"
)

func TestEdges(t *testing.T) {
	edges := Edges([][]float64{{0, 10}, {5, 20}}, 4, nil)
	if len(edges) != 5 {
		t.Fatalf("got %d edges, want 5", len(edges))
	}
	if edges[0] != 0 || edges[4] != 20 {
		t.Fatalf("edges span [%v, %v], want [0, 20]", edges[0], edges[4])
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			t.Fatalf("edges not increasing: %v", edges)
		}
	}
}

func TestEdgesExplicitBounds(t *testing.T) {
	edges := Edges([][]float64{{0, 100}}, 2, &types.Range{Min: 10, Max: 30})
	if edges[0] != 10 || edges[2] != 30 {
		t.Fatalf("edges span [%v, %v], want the explicit [10, 30]", edges[0], edges[2])
	}
}

func TestEdgesZeroWidthRange(t *testing.T) {
	edges := Edges([][]float64{{5, 5, 5}}, 2, nil)
	if edges[0] != 4.5 || edges[2] != 5.5 {
		t.Fatalf("identical values should widen to [4.5, 5.5], got [%v, %v]", edges[0], edges[2])
	}
}

func TestCounts(t *testing.T) {
	edges := Edges([][]float64{{0, 10}}, 5, nil)
	values := []float64{0, 1, 2.5, 9.9, 10}
	counts := Counts(values, edges)

	total := 0
	for _, c := range counts {
		total += c
	}
	if total != len(values) {
		t.Fatalf("binned %d of %d values", total, len(values))
	}
	// The maximum lands in the last bin, not past it.
	if counts[4] != 2 {
		t.Fatalf("last bin = %d, want 2 (9.9 and the closed maximum)", counts[4])
	}
}

func TestCountsIgnoresOutOfSpan(t *testing.T) {
	edges := []float64{0, 1, 2}
	counts := Counts([]float64{-5, 0.5, 99}, edges)
	if counts[0] != 1 || counts[1] != 0 {
		t.Fatalf("counts = %v, want only the in-span value binned", counts)
	}
}

func TestSlots(t *testing.T) {
	edges := []float64{0, 10, 20}
	first := Slots(edges, 0, 2, DefaultSectionMargin, DefaultBarMargin)
	second := Slots(edges, 1, 2, DefaultSectionMargin, DefaultBarMargin)
	if len(first) != 2 {
		t.Fatalf("got %d slots, want one per bin", len(first))
	}
	for bin := range first {
		lo, hi := edges[bin], edges[bin+1]
		margin := (hi - lo) * DefaultSectionMargin
		if first[bin].Lo != lo+margin {
			t.Errorf("bin %d: first slot starts at %v, want %v", bin, first[bin].Lo, lo+margin)
		}
		if second[bin].Hi != hi-margin {
			t.Errorf("bin %d: second slot ends at %v, want %v", bin, second[bin].Hi, hi-margin)
		}
		// Adjacent slots must not overlap.
		if first[bin].Hi > second[bin].Lo {
			t.Errorf("bin %d: slots overlap: %+v then %+v", bin, first[bin], second[bin])
		}
	}
}
