// Package gonumplot is the alternative static-image engine, built on
// gonum.org/v1/plot. It draws both panes of every figure onto one shared
// vector canvas instead of compositing separately rendered images.
package gonumplot

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/antmicro/servis/src/colors"
	"github.com/antmicro/servis/src/render"
	"github.com/antmicro/servis/src/types"
)

const regionAlpha = 80

// Backend renders static images with gonum/plot.
type Backend struct {
	cfg render.Config
}

// New builds the gonum/plot backend.
func New(cfg render.Config) *Backend {
	return &Backend{cfg: cfg}
}

// Render implements render.Backend for PNG and SVG output.
func (b *Backend) Render(doc *render.Document, outPath string, kind types.OutputKind) error {
	switch kind {
	case types.OutputPNG, types.OutputSVG:
	default:
		return fmt.Errorf("unsupported image kind %q", kind)
	}

	w := px(doc.Width)
	h := px(doc.Height)
	f, err := os.Create(outPath + kind.Suffix())
	if err != nil {
		return fmt.Errorf("create %s output: %w", kind, err)
	}
	defer f.Close()

	if kind == types.OutputPNG {
		c := vgimg.NewWith(vgimg.UseWH(w, h))
		if err := b.draw(doc, draw.New(c)); err != nil {
			return err
		}
		if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	} else {
		c := vgsvg.New(w, h)
		if err := b.draw(doc, draw.New(c)); err != nil {
			return err
		}
		if _, err := c.WriteTo(f); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	return f.Close()
}

// draw lays the figures out as stacked rows, each split between the
// time-series pane and the histogram pane at the configured ratio.
func (b *Backend) draw(doc *render.Document, dc draw.Canvas) error {
	plotW, _, figH := doc.PaneSizes(b.cfg)
	top := dc.Rectangle.Max.Y
	if doc.Title != "" {
		// The title plot occupies a thin band above the first figure row.
		tp := plot.New()
		tp.Title.Text = doc.Title
		tp.HideAxes()
		band := px(36)
		tp.Draw(sub(dc, dc.Rectangle.Min.X, top-band, dc.Rectangle.Max.X, top))
		top -= band
	}
	split := dc.Rectangle.Min.X + px(plotW)
	rowH := px(figH)
	for i := range doc.Figures {
		fig := &doc.Figures[i]
		rowTop := top - vg.Length(i)*rowH
		left, err := b.timeSeriesPlot(doc, fig)
		if err != nil {
			return err
		}
		right, err := b.histogramPlot(fig)
		if err != nil {
			return err
		}
		left.Draw(sub(dc, dc.Rectangle.Min.X, rowTop-rowH, split, rowTop))
		right.Draw(sub(dc, split, rowTop-rowH, dc.Rectangle.Max.X, rowTop))
	}
	return nil
}

func (b *Backend) timeSeriesPlot(doc *render.Document, fig *render.FigureView) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Subtitle
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	if fig.XRange != nil {
		p.X.Min, p.X.Max = fig.XRange.Min, fig.XRange.Max
	}
	if fig.YRange != nil {
		p.Y.Min, p.Y.Max = fig.YRange.Min, fig.YRange.Max
	}
	if doc.XTimestamp {
		p.X.Tick.Marker = plot.TimeTicks{Format: "15:04:05"}
	}

	for i := range fig.Series {
		if err := addSeries(p, &fig.Series[i], fig.PlotType); err != nil {
			return nil, err
		}
	}
	if err := addAnnotations(p, fig); err != nil {
		return nil, err
	}
	if doc.Legend != nil {
		p.Legend.Top = true
	}
	return p, nil
}

func addSeries(p *plot.Plot, s *render.SeriesView, plotType types.PlotType) error {
	pts := make(plotter.XYs, len(s.X))
	for i := range s.X {
		pts[i].X, pts[i].Y = s.X[i], s.Y[i]
	}
	switch plotType {
	case types.PlotLine:
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Width = vg.Points(1.5)
		line.Color = rgba(s.Color)
		p.Add(line)
		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}
	case types.PlotBar:
		stems, err := newStems(pts)
		if err != nil {
			return err
		}
		stems.LineStyle.Color = rgba(s.Color)
		stems.GlyphStyle.Color = rgba(s.Color)
		p.Add(stems)
		if s.Label != "" {
			p.Legend.Add(s.Label, stems)
		}
	default:
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.Radius = vg.Points(2)
		sc.GlyphStyle.Color = rgba(s.Color)
		if s.Gradient != nil {
			grad := s.Gradient
			base := sc.GlyphStyle
			sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
				st := base
				if i >= 0 && i < len(grad) {
					st.Color = rgba(grad[i])
				}
				return st
			}
		}
		p.Add(sc)
		if s.Label != "" {
			p.Legend.Add(s.Label, sc)
		}
	}
	return nil
}

func addAnnotations(p *plot.Plot, fig *render.FigureView) error {
	if fig.Annotations == nil {
		return nil
	}
	lo, hi := fig.YMin, fig.YMax
	if fig.YRange != nil {
		lo, hi = fig.YRange.Min, fig.YRange.Max
	}
	for _, r := range fig.Annotations.Regions {
		poly, err := rect(r.Start, r.End, lo, hi)
		if err != nil {
			return err
		}
		poly.Color = nrgba(r.Color, regionAlpha)
		poly.LineStyle.Color = nrgba(r.Color, regionAlpha)
		p.Add(poly)
	}
	for _, m := range fig.Annotations.Markers {
		line, err := plotter.NewLine(plotter.XYs{{X: m.X, Y: lo}, {X: m.X, Y: hi}})
		if err != nil {
			return err
		}
		line.Color = color.Gray{Y: 120}
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: m.X, Y: m.LabelY}},
			Labels: []string{m.Label},
		})
		if err != nil {
			return err
		}
		p.Add(labels)
	}
	return nil
}

// histogramPlot draws the grouped bars as filled rectangles at their shared
// bin slot positions.
func (b *Backend) histogramPlot(fig *render.FigureView) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = fig.YLabel
	p.Y.Label.Text = "count"
	for si := range fig.Series {
		s := &fig.Series[si]
		for bin, slot := range s.Slots {
			if s.Counts[bin] == 0 {
				continue
			}
			poly, err := rect(slot.Lo, slot.Hi, 0, float64(s.Counts[bin]))
			if err != nil {
				return nil, err
			}
			col := s.Color
			if fig.BinGradient != nil {
				col = fig.BinGradient[bin]
			}
			poly.Color = rgba(col)
			poly.LineStyle.Color = rgba(col)
			p.Add(poly)
		}
	}
	// Keep the value axis aligned with the time-series pane's data extent.
	p.X.Min = fig.Edges[0]
	p.X.Max = fig.Edges[len(fig.Edges)-1]
	p.Y.Min = 0
	return p, nil
}

func rect(x0, x1, y0, y1 float64) (*plotter.Polygon, error) {
	return plotter.NewPolygon(plotter.XYs{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	})
}

func sub(dc draw.Canvas, x0, y0, x1, y1 vg.Length) draw.Canvas {
	return draw.Canvas{
		Canvas: dc.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: x0, Y: y0},
			Max: vg.Point{X: x1, Y: y1},
		},
	}
}

// px converts a pixel count to canvas length at 96 dpi.
func px(n int) vg.Length {
	return vg.Length(n) * vg.Inch / 96
}

func rgba(c colors.RGB) color.Color {
	r, g, b := c.Bytes()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func nrgba(c colors.RGB, alpha uint8) color.Color {
	r, g, b := c.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}
