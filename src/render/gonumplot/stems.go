package gonumplot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// stems draws each sample as a vertical line from the baseline to the value,
// topped with a glyph. It is the bar rendition for continuous x coordinates,
// where gonum's categorical bar chart does not apply.
type stems struct {
	plotter.XYs
	draw.GlyphStyle
	draw.LineStyle
}

func newStems(xys plotter.XYer) (*stems, error) {
	data, err := plotter.CopyXYs(xys)
	if err != nil {
		return nil, err
	}
	return &stems{
		XYs:        data,
		GlyphStyle: plotter.DefaultGlyphStyle,
		LineStyle:  plotter.DefaultLineStyle,
	}, nil
}

func (s *stems) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, p := range s.XYs {
		pp := vg.Point{X: trX(p.X), Y: trY(p.Y)}
		p0 := vg.Point{X: trX(p.X), Y: trY(0)}
		clipped := c.ClipLinesXY([]vg.Point{pp, p0})
		c.StrokeLines(s.LineStyle, clipped...)
		c.DrawGlyph(s.GlyphStyle, pp)
	}
}

func (s *stems) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax, ymin, ymax = plotter.XYRange(s)
	if ymin > 0 {
		ymin = 0
	}
	return xmin, xmax, ymin, ymax
}

func (s *stems) GlyphBoxes(plt *plot.Plot) []plot.GlyphBox {
	bs := make([]plot.GlyphBox, len(s.XYs))
	for i, p := range s.XYs {
		bs[i].X = plt.X.Norm(p.X)
		bs[i].Y = plt.Y.Norm(p.Y)
		r := s.GlyphStyle.Radius
		bs[i].Rectangle = vg.Rectangle{
			Min: vg.Point{X: -r, Y: -r},
			Max: vg.Point{X: +r, Y: +r},
		}
	}
	return bs
}

func (s *stems) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(s.GlyphStyle, c.Center())
}
