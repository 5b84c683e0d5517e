// Package types holds the value types shared by the servis rendering
// pipeline: series data, axis ranges, tags and the enumerations selecting
// plot styles, output kinds and rendering engines.
package types

// Series is one ordered sequence of (x, y) samples. Both slices always have
// the same length. The pipeline never mutates a caller-supplied Series in
// place; derived series are fresh allocations.
type Series struct {
	X []float64
	Y []float64
}

// Len returns the number of samples in the series.
func (s Series) Len() int { return len(s.Y) }

// Range is a closed [Min, Max] interval used for axis zoom and explicit
// histogram bounds. A nil *Range means "derive from the data".
type Range struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// TagKind selects how the Tag fields are interpreted.
type TagKind string

const (
	// TagSingle marks one instant: Name + Timestamp.
	TagSingle TagKind = "single"
	// TagInterval marks a [Start, End] span: Name + Start + End. The wire
	// name "double" comes from the tag file format.
	TagInterval TagKind = "double"
)

// Tag is a domain annotation attached to a figure's x-axis, expressed in
// original (untrimmed) x coordinates.
type Tag struct {
	Name      string
	Timestamp float64 // TagSingle
	Start     float64 // TagInterval
	End       float64 // TagInterval
}

// OutputKind names one requested rendering output.
type OutputKind string

const (
	OutputTxt  OutputKind = "txt"
	OutputPNG  OutputKind = "png"
	OutputSVG  OutputKind = "svg"
	OutputHTML OutputKind = "html"
)

// Suffix returns the file suffix appended to the extension-less output path
// for this kind. Terminal output uses ".ascii" so it is not mistaken for
// plain data files.
func (k OutputKind) Suffix() string {
	if k == OutputTxt {
		return ".ascii"
	}
	return "." + string(k)
}

// PlotType selects the glyph style of the time-series pane.
type PlotType string

const (
	PlotScatter PlotType = "scatter"
	PlotBar     PlotType = "bar"
	PlotLine    PlotType = "line"
)

// Engine selects which static-image library renders "png"/"svg" outputs.
type Engine string

const (
	// EngineGoChart renders static images with wcharczuk/go-chart.
	EngineGoChart Engine = "gochart"
	// EngineGonumPlot renders static images with gonum.org/v1/plot.
	EngineGonumPlot Engine = "gonumplot"
)
