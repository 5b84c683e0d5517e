package render

import (
	"fmt"
	"time"

	"github.com/antmicro/servis/src/annotations"
	"github.com/antmicro/servis/src/colors"
	"github.com/antmicro/servis/src/histogram"
	"github.com/antmicro/servis/src/normalize"
	"github.com/antmicro/servis/src/types"
)

// Backends is the renderer's backend registry, keyed by concern: one
// terminal renderer, one interactive renderer and one static-image renderer
// per engine. The root servis package wires the stock set.
type Backends struct {
	Text        Backend
	StaticImage map[types.Engine]Backend
	Interactive Backend
}

// Renderer turns plot requests into output files. It owns the configuration
// and the backend registry; construct one per desired configuration.
type Renderer struct {
	cfg      Config
	backends Backends
}

// New builds a Renderer around the given backends.
func New(cfg Config, backends Backends) *Renderer {
	if cfg.Palettes == nil {
		cfg.Palettes = colors.DefaultProvider
	}
	return &Renderer{cfg: cfg, backends: backends}
}

// Render prepares the document for the request and hands it to every
// requested output kind's backend. Terminal output failures are logged and
// do not stop the remaining kinds; static-image and HTML failures propagate.
func (r *Renderer) Render(ydata, xdata any, o Options) error {
	defer TimeTrack(time.Now(), "render")

	doc, err := r.Prepare(ydata, xdata, o)
	if err != nil {
		return err
	}

	engine := o.Engine
	if engine == "" {
		engine = types.EngineGoChart
	}

	for _, kind := range o.OutputKinds {
		switch kind {
		case types.OutputTxt:
			if r.backends.Text == nil {
				continue
			}
			if err := r.backends.Text.Render(doc, o.OutPath, kind); err != nil {
				Errorf("terminal rendering failed: %v", err)
			}
		case types.OutputPNG, types.OutputSVG:
			backend, ok := r.backends.StaticImage[engine]
			if !ok {
				return fmt.Errorf("unknown static-image engine %q", engine)
			}
			if o.OutPath == "" {
				Warnf("no output path given, skipping %s output", kind)
				continue
			}
			if err := backend.Render(doc, o.OutPath, kind); err != nil {
				return fmt.Errorf("render %s: %w", kind, err)
			}
		case types.OutputHTML:
			if r.backends.Interactive == nil {
				continue
			}
			if err := r.backends.Interactive.Render(doc, o.OutPath, kind); err != nil {
				return fmt.Errorf("render html: %w", err)
			}
		default:
			// Unrecognized kinds are skipped, not an error.
			Debugf("ignoring unknown output kind %q", kind)
		}
	}
	return nil
}

// Prepare runs the data pipeline without touching any backend: shape
// classification, parameter broadcasting, preprocessing, histogram layout,
// color resolution and tag annotation.
func (r *Renderer) Prepare(ydata, xdata any, o Options) (*Document, error) {
	if o.GradientColors && !o.Colormap.IsZero() {
		return nil, &types.ConflictingColorPolicyError{}
	}

	grid, _, err := normalize.Classify(ydata, xdata)
	if err != nil {
		return nil, err
	}
	figures := grid.Figures()

	subtitles, err := normalize.PerFigure("subtitles", o.Subtitles, figures)
	if err != nil {
		return nil, err
	}
	xtitles, err := normalize.PerFigure("xtitles", o.XTitles, figures)
	if err != nil {
		return nil, err
	}
	xunits, err := normalize.PerFigure("xunits", o.XUnits, figures)
	if err != nil {
		return nil, err
	}
	ytitles, err := normalize.PerFigure("ytitles", o.YTitles, figures)
	if err != nil {
		return nil, err
	}
	yunits, err := normalize.PerFigure("yunits", o.YUnits, figures)
	if err != nil {
		return nil, err
	}
	xranges, err := normalize.PerFigure("x_ranges", o.XRanges, figures)
	if err != nil {
		return nil, err
	}
	yranges, err := normalize.PerFigure("y_ranges", o.YRanges, figures)
	if err != nil {
		return nil, err
	}
	tags, err := normalize.PerFigure("tags", o.Tags, figures)
	if err != nil {
		return nil, err
	}
	tagKinds, err := normalize.PerFigureDefault("tagstype", o.TagKinds, figures, types.TagSingle)
	if err != nil {
		return nil, err
	}
	plotTypes, err := normalize.PerFigureDefault("plottype", o.PlotTypes, figures, types.PlotScatter)
	if err != nil {
		return nil, err
	}

	pre, err := normalize.Preprocess(grid, o.SkipFirst, o.TrimXValues, o.SharedTrim)
	if err != nil {
		return nil, err
	}

	bins := o.Bins
	if bins <= 0 {
		bins = DefaultOptions().Bins
	}

	doc := &Document{
		Title:      o.Title,
		Figures:    make([]FigureView, figures),
		Width:      o.Width,
		Height:     o.Height,
		XTimestamp: o.XTimestamp,
		FontFamily: r.cfg.FontFamily,
	}
	if doc.Width <= 0 {
		doc.Width = DefaultOptions().Width
	}
	if doc.Height <= 0 {
		doc.Height = DefaultOptions().Height
	}

	labelIdx := 0
	for f, fig := range pre.Grid {
		view := FigureView{
			Subtitle: subtitles[f],
			XLabel:   axisLabel(xtitles[f], xunits[f]),
			YLabel:   axisLabel(ytitles[f], yunits[f]),
			XRange:   xranges[f],
			YRange:   yranges[f],
			PlotType: plotTypes[f],
			Series:   make([]SeriesView, len(fig)),
		}

		values := make([][]float64, len(fig))
		for s, ser := range fig {
			values[s] = ser.Y
		}
		view.Edges = histogram.Edges(values, bins, nil)
		view.YMin, view.YMax = extent(values)

		var seriesColors []colors.RGB
		if !o.GradientColors {
			seriesColors, err = colors.Resolve(o.Colormap, len(fig), r.cfg.Palettes)
			if err != nil {
				return nil, err
			}
		} else {
			view.BinGradient = colors.GradientColors(view.Edges[1:])
		}

		for s, ser := range fig {
			sv := SeriesView{
				X:      ser.X,
				Y:      ser.Y,
				Counts: histogram.Counts(ser.Y, view.Edges),
				Slots:  histogram.Slots(view.Edges, s, len(fig), r.cfg.SectionMargin, r.cfg.BarMargin),
			}
			if o.GradientColors {
				sv.Gradient = colors.GradientColors(ser.Y)
			} else {
				sv.Color = seriesColors[s]
			}
			if labelIdx < len(o.LegendLabels) {
				sv.Label = o.LegendLabels[labelIdx]
			}
			labelIdx++
			view.Series[s] = sv
		}

		if len(tags[f]) > 0 {
			// Tags are figure-level; with per-series trimming they align to
			// the figure's first series, with SharedTrim the offset is exact
			// for every series.
			set, err := annotations.Annotate(tags[f], tagKinds[f], pre.Offsets[f][0], view.YMin, view.YMax, yranges[f], colors.AnnotationPalette)
			if err != nil {
				return nil, err
			}
			view.Annotations = set
		}

		doc.Figures[f] = view
	}

	// Surplus labels beyond the series count would produce legend entries
	// with nothing to toggle.
	legendLabels := o.LegendLabels
	if len(legendLabels) > labelIdx {
		legendLabels = legendLabels[:labelIdx]
	}
	if len(legendLabels) > 1 {
		doc.Legend = &Legend{
			Labels:  legendLabels,
			Columns: legendColumns(legendLabels, doc.Width, r.cfg),
		}
	}
	return doc, nil
}

func axisLabel(title, unit string) string {
	if title == "" {
		return ""
	}
	if unit == "" {
		return title
	}
	return fmt.Sprintf("%s [%s]", title, unit)
}

func extent(valueSets [][]float64) (min, max float64) {
	first := true
	for _, vals := range valueSets {
		for _, v := range vals {
			if first || v < min {
				min = v
			}
			if first || v > max {
				max = v
			}
			first = false
		}
	}
	return min, max
}
