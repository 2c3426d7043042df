// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelTop        = "100%"
	axisLabelMid        = "50%"
	axisLabelBottom     = "0%"
	axisSeparator       = " │ "
	scaleNote           = "Scaled per series; see min/max below."
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// Marker glyphs per series, cycled.
var seriesMarkers = []rune{'·', '*', 'o', '+', 'x'}

var seriesColors = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
	"\x1b[34m", // blue
}

// PlotSeries renders a multi-line text plot for the provided series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return plotSeries(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders a multi-line text plot with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	return plotSeries(w, title, series, width, height, forceColor)
}

func plotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	kept := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	// Each series is scaled to its own min/max so curves with different
	// units share one canvas.
	type scaledSeries struct {
		name     string
		values   []float64
		min, max float64
	}
	scaled := make([]scaledSeries, 0, len(kept))
	for _, s := range kept {
		minVal, maxVal := s.Values[0], s.Values[0]
		for _, v := range s.Values[1:] {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
		if math.Abs(maxVal-minVal) < 1e-9 {
			minVal--
			maxVal++
		}
		resampled := resample(s.Values, width)
		norm := make([]float64, len(resampled))
		for i, v := range resampled {
			norm[i] = (v - minVal) / (maxVal - minVal)
		}
		scaled = append(scaled, scaledSeries{name: s.name(), values: norm, min: minVal, max: maxVal})
	}

	grid := make([][]rune, height)
	owner := make([][]int, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		owner[y] = make([]int, width)
		for x := range grid[y] {
			grid[y][x] = ' '
			owner[y][x] = -1
		}
	}
	for si, s := range scaled {
		marker := seriesMarkers[si%len(seriesMarkers)]
		for x, v := range s.values {
			y := height - 1 - int(math.Round(v*float64(height-1)))
			if y < 0 {
				y = 0
			}
			if y >= height {
				y = height - 1
			}
			grid[y][x] = marker
			owner[y][x] = si
		}
	}

	useColor := forceColor && os.Getenv("NO_COLOR") == ""
	axisWidth := utf8.RuneCountInString(axisLabelTop)
	axisLabels := make([]string, height)
	axisLabels[0] = axisLabelTop
	axisLabels[height-1] = axisLabelBottom
	if height > 2 {
		axisLabels[height/2] = axisLabelMid
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, scaleNote); err != nil {
		return err
	}
	for _, s := range scaled {
		if _, err := fmt.Fprintf(w, "%s: min=%.2f max=%.2f\n", s.name, s.min, s.max); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", axisWidth, axisLabels[y], axisSeparator)
		for x := 0; x < width; x++ {
			if useColor && owner[y][x] >= 0 {
				row.WriteString(seriesColors[owner[y][x]%len(seriesColors)])
				row.WriteRune(grid[y][x])
				row.WriteString(colorReset)
			} else {
				row.WriteRune(grid[y][x])
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}

	legend := make([]string, 0, len(scaled))
	for si, s := range scaled {
		entry := fmt.Sprintf("%c %s", seriesMarkers[si%len(seriesMarkers)], s.name)
		if useColor {
			entry = seriesColors[si%len(seriesColors)] + entry + colorReset
		}
		legend = append(legend, entry)
	}
	if _, err := fmt.Fprintf(w, "Legend: %s\n", strings.Join(legend, "   ")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func (s Series) name() string {
	if s.Name == "" {
		return "series"
	}
	return s.Name
}

// resample stretches or shrinks values to the target width by linear
// interpolation.
func resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) == 0 {
		return nil
	}
	if len(values) == width {
		out := make([]float64, width)
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	if len(values) == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	step := float64(len(values)-1) / float64(width-1)
	for i := 0; i < width; i++ {
		pos := float64(i) * step
		lo := int(math.Floor(pos))
		hi := int(math.Ceil(pos))
		if hi >= len(values) {
			hi = len(values) - 1
		}
		frac := pos - float64(lo)
		out[i] = values[lo]*(1-frac) + values[hi]*frac
	}
	return out
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
