// Package textplot renders documents to the terminal (or an .ascii file)
// with asciigraph. It is the output of choice for CI logs and headless
// environments: every figure becomes a line graph followed by a bin-by-bin
// value histogram block.
//
// asciigraph draws connected lines only, so the scatter and bar plot types
// share the line rendition here; the plot type selects glyphs in the
// static-image and HTML backends.
package textplot

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/antmicro/servis/src/colors"
	"github.com/antmicro/servis/src/render"
	"github.com/antmicro/servis/src/types"
)

const (
	maxGraphWidth  = 120
	maxGraphHeight = 25
	minGraphHeight = 10
	histBarWidth   = 40
)

// Backend renders terminal output. Out overrides the destination when no
// output path is given (stdout by default); tests point it at a buffer.
type Backend struct {
	cfg render.Config
	Out io.Writer
}

// New builds the terminal backend.
func New(cfg render.Config) *Backend {
	return &Backend{cfg: cfg, Out: os.Stdout}
}

// Render implements render.Backend. With an output path the text is written
// to path + ".ascii"; the file handle is released on every exit path.
func (b *Backend) Render(doc *render.Document, outPath string, kind types.OutputKind) error {
	if outPath == "" {
		return b.write(b.Out, doc)
	}
	f, err := os.Create(outPath + kind.Suffix())
	if err != nil {
		return fmt.Errorf("create %s output: %w", kind, err)
	}
	defer f.Close()
	if err := b.write(f, doc); err != nil {
		return err
	}
	return f.Close()
}

func (b *Backend) write(w io.Writer, doc *render.Document) error {
	if doc.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", doc.Title, strings.Repeat("=", len(doc.Title))); err != nil {
			return err
		}
	}
	for i := range doc.Figures {
		if err := b.writeFigure(w, doc, &doc.Figures[i]); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "\n\n"); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) writeFigure(w io.Writer, doc *render.Document, fig *render.FigureView) error {
	data := make([][]float64, len(fig.Series))
	for i, s := range fig.Series {
		data[i] = s.Y
	}

	width := doc.Width / 10
	if width > maxGraphWidth {
		width = maxGraphWidth
	}
	height := doc.Height / len(doc.Figures) / 40
	if height > maxGraphHeight {
		height = maxGraphHeight
	}
	if height < minGraphHeight {
		height = minGraphHeight
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
	}
	if fig.Subtitle != "" {
		opts = append(opts, asciigraph.Caption(fig.Subtitle))
	}
	if fig.YRange != nil {
		opts = append(opts, asciigraph.LowerBound(fig.YRange.Min), asciigraph.UpperBound(fig.YRange.Max))
	}
	if ansi := seriesColors(fig.Series); ansi != nil {
		opts = append(opts, asciigraph.SeriesColors(ansi...))
	}

	if _, err := fmt.Fprintln(w, asciigraph.PlotMany(data, opts...)); err != nil {
		return err
	}

	if fig.XLabel != "" || fig.YLabel != "" || len(fig.Series) > 0 {
		lo, hi := xExtent(fig.Series)
		if err := b.writeAxisLine(w, doc, fig, lo, hi); err != nil {
			return err
		}
	}
	if fig.Annotations != nil {
		if err := writeAnnotations(w, fig); err != nil {
			return err
		}
	}
	return b.writeHistogram(w, fig)
}

func (b *Backend) writeAxisLine(w io.Writer, doc *render.Document, fig *render.FigureView, lo, hi float64) error {
	xlabel := fig.XLabel
	if xlabel == "" {
		xlabel = "x"
	}
	var span string
	if doc.XTimestamp {
		span = fmt.Sprintf("%s .. %s", clock(lo), clock(hi))
	} else {
		span = fmt.Sprintf("%g .. %g", lo, hi)
	}
	if fig.YLabel != "" {
		_, err := fmt.Fprintf(w, "%s: %s  (y: %s)\n", xlabel, span, fig.YLabel)
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", xlabel, span)
	return err
}

func writeAnnotations(w io.Writer, fig *render.FigureView) error {
	for _, m := range fig.Annotations.Markers {
		if _, err := fmt.Fprintf(w, "tag %s @ %g\n", m.Label, m.X); err != nil {
			return err
		}
	}
	for _, r := range fig.Annotations.Regions {
		if _, err := fmt.Fprintf(w, "tag %s [%g .. %g]\n", r.Name, r.Start, r.End); err != nil {
			return err
		}
	}
	return nil
}

// writeHistogram prints the shared-bin histogram, one row per bin with the
// series' bars side by side.
func (b *Backend) writeHistogram(w io.Writer, fig *render.FigureView) error {
	if _, err := fmt.Fprintln(w, "value histogram:"); err != nil {
		return err
	}
	maxCount := 0
	for _, s := range fig.Series {
		for _, c := range s.Counts {
			if c > maxCount {
				maxCount = c
			}
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}
	for bin := 0; bin < len(fig.Edges)-1; bin++ {
		for si, s := range fig.Series {
			bar := strings.Repeat("#", s.Counts[bin]*histBarWidth/maxCount)
			marker := ""
			if len(fig.Series) > 1 {
				marker = fmt.Sprintf(" s%d", si)
			}
			if _, err := fmt.Fprintf(w, "  [%10.4g, %10.4g)%s %s %d\n", fig.Edges[bin], fig.Edges[bin+1], marker, bar, s.Counts[bin]); err != nil {
				return err
			}
		}
	}
	return nil
}

func seriesColors(series []render.SeriesView) []asciigraph.AnsiColor {
	if len(series) == 0 || series[0].Gradient != nil {
		return nil
	}
	out := make([]asciigraph.AnsiColor, len(series))
	for i, s := range series {
		out[i] = ansiColor(s.Color)
	}
	return out
}

// ansiColor maps an RGB color onto the 256-color cube.
func ansiColor(c colors.RGB) asciigraph.AnsiColor {
	r := int(math.Round(c.R * 5))
	g := int(math.Round(c.G * 5))
	bl := int(math.Round(c.B * 5))
	return asciigraph.AnsiColor(16 + 36*r + 6*g + bl)
}

func xExtent(series []render.SeriesView) (lo, hi float64) {
	first := true
	for _, s := range series {
		for _, x := range s.X {
			if first || x < lo {
				lo = x
			}
			if first || x > hi {
				hi = x
			}
			first = false
		}
	}
	return lo, hi
}

func clock(epochSeconds float64) string {
	return time.Unix(int64(epochSeconds), 0).UTC().Format("15:04:05")
}
