package colors

import "math"

// gradientRamp runs from turquoise to raspberry red in 20 steps. A value in
// [0, 100] maps to one step per 5 percentage points.
var gradientRamp = []string{
	"#09B194",
	"#1FB59C",
	"#34BBA4",
	"#45BFAA",
	"#5DC5B3",
	"#6FC9B9",
	"#82CDC0",
	"#98D3C9",
	"#ABD7D0",
	"#C9DAD6",
	"#E3CFCD",
	"#E5C0BD",
	"#E6B2AD",
	"#E7A6A0",
	"#E6968F",
	"#E68880",
	"#E77B72",
	"#E66E64",
	"#E65F52",
	"#E74C3E",
}

// GradientColor maps a value to its ramp color. Values outside [0, 100]
// clamp to the ramp ends so arbitrary data ranges still render.
func GradientColor(v float64) RGB {
	i := int(math.Round(v)) / 5
	if i < 0 {
		i = 0
	}
	if i >= len(gradientRamp) {
		i = len(gradientRamp) - 1
	}
	return MustParseHex(gradientRamp[i])
}

// GradientColors maps each value to its ramp color.
func GradientColors(values []float64) []RGB {
	out := make([]RGB, len(values))
	for i, v := range values {
		out[i] = GradientColor(v)
	}
	return out
}
