package render

import (
	"errors"
	"testing"

	"github.com/antmicro/servis/src/colors"
	"github.com/antmicro/servis/src/types"
)

// recordingBackend captures render calls and optionally fails them.
type recordingBackend struct {
	calls []types.OutputKind
	paths []string
	err   error
}

func (b *recordingBackend) Render(doc *Document, outPath string, kind types.OutputKind) error {
	b.calls = append(b.calls, kind)
	b.paths = append(b.paths, outPath)
	return b.err
}

func newTestRenderer(text, static, interactive *recordingBackend) *Renderer {
	return New(DefaultConfig(), Backends{
		Text: text,
		StaticImage: map[types.Engine]Backend{
			types.EngineGoChart: static,
		},
		Interactive: interactive,
	})
}

func baseOptions(kinds ...types.OutputKind) Options {
	o := DefaultOptions()
	o.OutputKinds = kinds
	o.OutPath = "/tmp/out"
	return o
}

func TestRenderDispatch(t *testing.T) {
	text := &recordingBackend{}
	static := &recordingBackend{}
	interactive := &recordingBackend{}
	r := newTestRenderer(text, static, interactive)

	o := baseOptions(types.OutputTxt, types.OutputPNG, types.OutputSVG, types.OutputHTML)
	if err := r.Render([]float64{1, 2, 3}, nil, o); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if len(text.calls) != 1 || text.calls[0] != types.OutputTxt {
		t.Errorf("text backend calls = %v", text.calls)
	}
	if len(static.calls) != 2 {
		t.Errorf("static backend calls = %v, want png and svg", static.calls)
	}
	if len(interactive.calls) != 1 || interactive.calls[0] != types.OutputHTML {
		t.Errorf("interactive backend calls = %v", interactive.calls)
	}
}

func TestRenderUnknownKindIgnored(t *testing.T) {
	text := &recordingBackend{}
	r := newTestRenderer(text, &recordingBackend{}, &recordingBackend{})
	o := baseOptions(types.OutputKind("pdf"), types.OutputTxt)
	if err := r.Render([]float64{1, 2}, nil, o); err != nil {
		t.Fatalf("unknown kind should be skipped, got error: %v", err)
	}
	if len(text.calls) != 1 {
		t.Fatalf("text backend calls = %v, want the txt kind only", text.calls)
	}
}

func TestRenderTextErrorsDoNotPropagate(t *testing.T) {
	text := &recordingBackend{err: errors.New("disk full")}
	interactive := &recordingBackend{}
	r := newTestRenderer(text, &recordingBackend{}, interactive)
	o := baseOptions(types.OutputTxt, types.OutputHTML)
	if err := r.Render([]float64{1, 2}, nil, o); err != nil {
		t.Fatalf("terminal failure should be logged, got error: %v", err)
	}
	if len(interactive.calls) != 1 {
		t.Fatalf("later kinds skipped after terminal failure")
	}
}

func TestRenderStaticErrorsPropagate(t *testing.T) {
	static := &recordingBackend{err: errors.New("render failed")}
	r := newTestRenderer(&recordingBackend{}, static, &recordingBackend{})
	if err := r.Render([]float64{1, 2}, nil, baseOptions(types.OutputPNG)); err == nil {
		t.Fatalf("static-image failure should propagate")
	}
}

func TestRenderStaticWithoutPathSkipped(t *testing.T) {
	static := &recordingBackend{}
	r := newTestRenderer(&recordingBackend{}, static, &recordingBackend{})
	o := baseOptions(types.OutputPNG)
	o.OutPath = ""
	if err := r.Render([]float64{1, 2}, nil, o); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if len(static.calls) != 0 {
		t.Fatalf("static backend called without an output path")
	}
}

func TestRenderUnknownEngine(t *testing.T) {
	r := newTestRenderer(&recordingBackend{}, &recordingBackend{}, &recordingBackend{})
	o := baseOptions(types.OutputPNG)
	o.Engine = types.Engine("crayon")
	if err := r.Render([]float64{1, 2}, nil, o); err == nil {
		t.Fatalf("unknown engine should fail")
	}
}

func TestPrepareConflictingColorPolicies(t *testing.T) {
	r := newTestRenderer(&recordingBackend{}, &recordingBackend{}, &recordingBackend{})
	o := DefaultOptions()
	o.GradientColors = true
	o.Colormap = colors.Spec{Name: "Blues"}
	var conflict *types.ConflictingColorPolicyError
	if _, err := r.Prepare([]float64{1, 2}, nil, o); !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictingColorPolicyError", err)
	}
}

func TestPreparePipeline(t *testing.T) {
	r := newTestRenderer(&recordingBackend{}, &recordingBackend{}, &recordingBackend{})
	o := DefaultOptions()
	o.Title = "load"
	o.Subtitles = []string{"cpu"}
	o.YTitles = []string{"usage"}
	o.YUnits = []string{"%"}
	o.Tags = [][]types.Tag{{{Name: "spike", Timestamp: 102}}}
	o.LegendLabels = []string{"a", "b"}

	doc, err := r.Prepare([][]float64{{1, 5}, {2, 8}}, []float64{100, 110}, o)
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	if len(doc.Figures) != 1 {
		t.Fatalf("got %d figures, want 1 (shared flat x)", len(doc.Figures))
	}
	fig := doc.Figures[0]
	if fig.Subtitle != "cpu" {
		t.Errorf("subtitle = %q", fig.Subtitle)
	}
	if fig.YLabel != "usage [%]" {
		t.Errorf("y label = %q, want unit folded in", fig.YLabel)
	}
	if len(fig.Series) != 2 {
		t.Fatalf("got %d series", len(fig.Series))
	}
	// Trimming runs by default: x starts at 0 and sticks the tag to the
	// shifted axis.
	if fig.Series[0].X[0] != 0 {
		t.Errorf("x not trimmed: %v", fig.Series[0].X)
	}
	if fig.Annotations == nil || fig.Annotations.Markers[0].X != 2 {
		t.Errorf("tag not shifted by the trim offset: %+v", fig.Annotations)
	}
	// First series gets the accent color.
	if fig.Series[0].Color.Hex() != colors.DefaultAccent {
		t.Errorf("first series color = %s", fig.Series[0].Color.Hex())
	}
	if fig.Series[0].Label != "a" || fig.Series[1].Label != "b" {
		t.Errorf("legend labels not assigned in order: %q, %q", fig.Series[0].Label, fig.Series[1].Label)
	}
	if doc.Legend == nil || doc.Legend.Columns < 1 {
		t.Errorf("legend missing for two labels: %+v", doc.Legend)
	}
	// Histogram layout is precomputed per series.
	if len(fig.Edges) != DefaultOptions().Bins+1 {
		t.Errorf("got %d edges, want bins+1", len(fig.Edges))
	}
	if len(fig.Series[0].Counts) != DefaultOptions().Bins {
		t.Errorf("got %d counts", len(fig.Series[0].Counts))
	}
}

func TestPrepareSurplusLegendLabels(t *testing.T) {
	r := newTestRenderer(&recordingBackend{}, &recordingBackend{}, &recordingBackend{})
	o := DefaultOptions()
	o.LegendLabels = []string{"a", "b", "ghost"}
	doc, err := r.Prepare([][]float64{{1, 2}, {3, 4}}, []float64{0, 1}, o)
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	// Two series consume two labels; the surplus label gets no entry.
	if doc.Legend == nil || len(doc.Legend.Labels) != 2 {
		t.Fatalf("legend = %+v, want the two consumed labels", doc.Legend)
	}
	if doc.Legend.Labels[1] != "b" {
		t.Fatalf("legend labels = %v", doc.Legend.Labels)
	}
}

func TestPrepareDefaultsSingleSeries(t *testing.T) {
	r := newTestRenderer(&recordingBackend{}, &recordingBackend{}, &recordingBackend{})
	doc, err := r.Prepare([]float64{1, 2, 3, 4, 5}, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	s := doc.Figures[0].Series[0]
	// x defaults to indices; trimming leaves it untouched since min is 0.
	for i, x := range s.X {
		if x != float64(i) {
			t.Fatalf("x = %v, want indices", s.X)
		}
	}
	edges := doc.Figures[0].Edges
	if edges[0] != 1 || edges[len(edges)-1] != 5 {
		t.Fatalf("edges span [%v, %v], want [1, 5]", edges[0], edges[len(edges)-1])
	}
	// Five unit-spaced values into 20 bins: every occupied bin holds one.
	occupied := 0
	for _, c := range s.Counts {
		switch c {
		case 0:
		case 1:
			occupied++
		default:
			t.Fatalf("bin holds %d samples, want at most 1", c)
		}
	}
	if occupied != 5 {
		t.Fatalf("%d occupied bins, want 5", occupied)
	}
}

func TestPrepareGradient(t *testing.T) {
	r := newTestRenderer(&recordingBackend{}, &recordingBackend{}, &recordingBackend{})
	o := DefaultOptions()
	o.GradientColors = true
	doc, err := r.Prepare([]float64{0, 50, 100}, nil, o)
	if err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}
	s := doc.Figures[0].Series[0]
	if len(s.Gradient) != 3 {
		t.Fatalf("gradient colors = %d, want one per sample", len(s.Gradient))
	}
	if doc.Figures[0].BinGradient == nil {
		t.Fatalf("bin gradient not computed")
	}
}

func TestPrepareBroadcastMismatch(t *testing.T) {
	r := newTestRenderer(&recordingBackend{}, &recordingBackend{}, &recordingBackend{})
	o := DefaultOptions()
	o.Subtitles = []string{"a", "b", "c"}
	var mismatch *types.ShapeMismatchError
	if _, err := r.Prepare([]float64{1, 2}, nil, o); !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want ShapeMismatchError", err)
	}
}

func TestLegendColumns(t *testing.T) {
	cfg := DefaultConfig()
	labels := []string{"alpha", "beta", "gamma"}
	wide := legendColumns(labels, 1500, cfg)
	if wide != 3 {
		t.Fatalf("wide figure fits %d columns, want all 3", wide)
	}
	var width int
	for _, l := range labels[:1] {
		width = cfg.LegendLineWidth + cfg.LegendMargin + cfg.LegendPadding + cfg.LegendCharWidth*len(l)
	}
	narrow := legendColumns(labels, width+10, cfg)
	if narrow != 1 {
		t.Fatalf("narrow figure fits %d columns, want 1", narrow)
	}
}
