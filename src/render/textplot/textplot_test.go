package textplot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antmicro/servis/src/annotations"
	"github.com/antmicro/servis/src/colors"
	"github.com/antmicro/servis/src/histogram"
	"github.com/antmicro/servis/src/render"
	"github.com/antmicro/servis/src/types"
)

func testDocument() *render.Document {
	y := []float64{1, 5, 3, 8, 2}
	x := []float64{0, 1, 2, 3, 4}
	edges := histogram.Edges([][]float64{y}, 4, nil)
	return &render.Document{
		Title:  "Sensor readings",
		Width:  1500,
		Height: 850,
		Figures: []render.FigureView{{
			Subtitle: "probe 0",
			XLabel:   "time [s]",
			YLabel:   "value",
			YMin:     1,
			YMax:     8,
			Edges:    edges,
			Series: []render.SeriesView{{
				X:      x,
				Y:      y,
				Color:  colors.MustParseHex(colors.DefaultAccent),
				Counts: histogram.Counts(y, edges),
				Slots:  histogram.Slots(edges, 0, 1, histogram.DefaultSectionMargin, histogram.DefaultBarMargin),
			}},
		}},
	}
}

func TestRenderToWriter(t *testing.T) {
	b := New(render.DefaultConfig())
	var buf bytes.Buffer
	b.Out = &buf
	if err := b.Render(testDocument(), "", types.OutputTxt); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sensor readings", "probe 0", "time [s]", "value histogram:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// The extent line covers the x span.
	if !strings.Contains(out, "0 .. 4") {
		t.Errorf("output missing the x extent line:\n%s", out)
	}
}

func TestRenderToFile(t *testing.T) {
	b := New(render.DefaultConfig())
	base := filepath.Join(t.TempDir(), "plot")
	if err := b.Render(testDocument(), base, types.OutputTxt); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	data, err := os.ReadFile(base + ".ascii")
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("output file is empty")
	}
}

func TestRenderTimestampExtent(t *testing.T) {
	doc := testDocument()
	doc.XTimestamp = true
	doc.Figures[0].Series[0].X = []float64{1700000000, 1700000060, 1700000120, 1700000180, 1700000240}
	b := New(render.DefaultConfig())
	var buf bytes.Buffer
	b.Out = &buf
	if err := b.Render(doc, "", types.OutputTxt); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "22:13:20 .. 22:17:20") {
		t.Errorf("timestamp extent not formatted as clock times:\n%s", buf.String())
	}
}

func TestRenderAnnotations(t *testing.T) {
	doc := testDocument()
	doc.Figures[0].Annotations = &annotations.Set{
		Markers: []annotations.Marker{{X: 2, Label: "spike", LabelY: 7}},
		Regions: []annotations.Region{{Name: "write", Start: 1, End: 3}},
	}
	b := New(render.DefaultConfig())
	var buf bytes.Buffer
	b.Out = &buf
	if err := b.Render(doc, "", types.OutputTxt); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "tag spike @ 2") {
		t.Errorf("marker line missing:\n%s", out)
	}
	if !strings.Contains(out, "tag write [1 .. 3]") {
		t.Errorf("region line missing:\n%s", out)
	}
}

func TestAnsiColor(t *testing.T) {
	cases := []struct {
		c    colors.RGB
		want int
	}{
		{colors.RGB{R: 0, G: 0, B: 0}, 16},
		{colors.RGB{R: 1, G: 1, B: 1}, 231},
		{colors.RGB{R: 1, G: 0, B: 0}, 196},
	}
	for _, c := range cases {
		if got := int(ansiColor(c.c)); got != c.want {
			t.Errorf("ansiColor(%+v) = %d, want %d", c.c, got, c.want)
		}
	}
}
