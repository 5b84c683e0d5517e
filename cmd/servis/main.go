// Command servis renders a quick terminal plot from a stream of samples.
// Each input line holds a y value, optionally followed by the delimiter and
// an x value; blank lines are skipped. Data comes from the file argument or
// stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/antmicro/servis"
	"github.com/antmicro/servis/src/render"
	"github.com/antmicro/servis/src/types"
)

func main() {
	var delimiter string
	var plotType string
	flag.StringVar(&delimiter, "d", " ", "Y and X values delimiter")
	flag.StringVar(&plotType, "plot-type", "scatter", "Plot type: scatter, bar or line")
	flag.Parse()

	in := io.Reader(os.Stdin)
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "servis: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	ys, xs, err := readSamples(in, delimiter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "servis: %v\n", err)
		os.Exit(1)
	}

	o := render.DefaultOptions()
	o.TrimXValues = false
	o.PlotTypes = []types.PlotType{types.PlotType(plotType)}
	if err := servis.RenderTimeSeriesPlot(ys, xs, o); err != nil {
		fmt.Fprintf(os.Stderr, "servis: %v\n", err)
		os.Exit(1)
	}
}

// readSamples parses newline-separated records of "y" or "y<delim>x". When
// no record carries an x value the samples are indexed 0..n-1.
func readSamples(r io.Reader, delimiter string) (ys, xs []float64, err error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, delimiter, 2)
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad y value %q: %w", parts[0], err)
		}
		ys = append(ys, y)
		if len(parts) == 2 {
			x, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad x value %q: %w", parts[1], err)
			}
			xs = append(xs, x)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if len(xs) != 0 && len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("got %d x values for %d y values", len(xs), len(ys))
	}
	if len(xs) == 0 {
		xs = nil
	}
	return ys, xs, nil
}
