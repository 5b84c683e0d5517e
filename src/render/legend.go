package render

// legendColumns picks the number of legend columns that fits the figure
// width. Each label's width is estimated from the line glyph, margins and a
// fixed per-rune width; labels pack left to right and wrap once a run of
// them exceeds the figure width.
func legendColumns(labels []string, figWidth int, cfg Config) int {
	if len(labels) == 0 {
		return 1
	}
	widths := make([]int, len(labels))
	for i, l := range labels {
		widths[i] = cfg.LegendLineWidth + cfg.LegendMargin + cfg.LegendPadding + cfg.LegendCharWidth*len([]rune(l))
	}
	columns := len(widths)
	for i := 0; i < len(widths)-1; i++ {
		run := 0
		for j := i; j < len(widths); j++ {
			run += widths[j]
			if run > figWidth {
				if fit := j - i; fit < columns {
					columns = fit
				}
				break
			}
		}
	}
	if columns < 1 {
		columns = 1
	}
	return columns
}
