package annotations

import (
	"errors"
	"testing"

	"github.com/antmicro/servis/src/colors"
	"github.com/antmicro/servis/src/types"
)

func TestAnnotateSingleTags(t *testing.T) {
	tags := []types.Tag{
		{Name: "boot", Timestamp: 110},
		{Name: "run", Timestamp: 150},
		{Name: "halt", Timestamp: 190},
	}
	set, err := Annotate(tags, types.TagSingle, 100, 0, 10, nil, colors.AnnotationPalette)
	if err != nil {
		t.Fatalf("Annotate returned error: %v", err)
	}
	if len(set.Markers) != 3 {
		t.Fatalf("got %d markers, want 3", len(set.Markers))
	}
	// Timestamps shift onto the trimmed axis.
	if set.Markers[0].X != 10 || set.Markers[2].X != 90 {
		t.Fatalf("marker positions = %v, %v; want 10 and 90", set.Markers[0].X, set.Markers[2].X)
	}
	// Labels alternate between the two rows near the top of the span.
	if set.Markers[0].LabelY != 9.0 {
		t.Errorf("even marker label y = %v, want 9.0", set.Markers[0].LabelY)
	}
	if set.Markers[1].LabelY != 9.6 {
		t.Errorf("odd marker label y = %v, want 9.6", set.Markers[1].LabelY)
	}
}

func TestAnnotateSingleTagsExplicitRange(t *testing.T) {
	tags := []types.Tag{{Name: "t", Timestamp: 5}}
	set, err := Annotate(tags, types.TagSingle, 0, 0, 1000, &types.Range{Min: 0, Max: 10}, colors.AnnotationPalette)
	if err != nil {
		t.Fatalf("Annotate returned error: %v", err)
	}
	// The explicit y range wins over the data extent.
	if set.Markers[0].LabelY != 9.0 {
		t.Fatalf("label y = %v, want 9.0 within the explicit range", set.Markers[0].LabelY)
	}
}

func TestAnnotateIntervalTags(t *testing.T) {
	tags := []types.Tag{
		{Name: "write", Start: 110, End: 120},
		{Name: "read", Start: 130, End: 140},
		{Name: "write", Start: 150, End: 160},
	}
	set, err := Annotate(tags, types.TagInterval, 100, 0, 10, nil, colors.AnnotationPalette)
	if err != nil {
		t.Fatalf("Annotate returned error: %v", err)
	}
	if len(set.Regions) != 3 {
		t.Fatalf("got %d regions, want 3", len(set.Regions))
	}
	if set.Regions[0].Start != 10 || set.Regions[0].End != 20 {
		t.Fatalf("region span [%v, %v], want offset-corrected [10, 20]", set.Regions[0].Start, set.Regions[0].End)
	}
	// Repeated names share their first-seen color.
	if set.Regions[0].Color != set.Regions[2].Color {
		t.Errorf("regions of one name got different colors")
	}
	if set.Regions[0].Color == set.Regions[1].Color {
		t.Errorf("distinct names share a color")
	}
	// Legend entries come out sorted by name.
	if len(set.Legend) != 2 || set.Legend[0].Name != "read" || set.Legend[1].Name != "write" {
		t.Fatalf("legend = %+v, want sorted [read write]", set.Legend)
	}
}

func TestAnnotatePaletteExhausted(t *testing.T) {
	tags := []types.Tag{
		{Name: "a"}, {Name: "b"}, {Name: "c"},
	}
	palette := colors.AnnotationPalette[:2]
	// Two distinct names fit a two-color palette exactly.
	if _, err := Annotate(tags[:2], types.TagInterval, 0, 0, 1, nil, palette); err != nil {
		t.Fatalf("exact-fit palette rejected: %v", err)
	}
	var exhausted *types.PaletteExhaustedError
	if _, err := Annotate(tags, types.TagInterval, 0, 0, 1, nil, palette); !errors.As(err, &exhausted) {
		t.Fatalf("got %v, want PaletteExhaustedError", err)
	}
	if exhausted.Required != 3 || exhausted.Available != 2 {
		t.Fatalf("error reports %d/%d, want 3 required of 2 available", exhausted.Required, exhausted.Available)
	}
}

func TestAnnotateEmpty(t *testing.T) {
	set, err := Annotate(nil, types.TagSingle, 0, 0, 1, nil, colors.AnnotationPalette)
	if err != nil {
		t.Fatalf("Annotate returned error: %v", err)
	}
	if !set.Empty() {
		t.Fatalf("empty tag list produced primitives: %+v", set)
	}
}
