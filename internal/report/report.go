// Package report renders the daily share and weekly total charts as PNG files.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/runnerr0/sitelog/internal/tally"
)

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("no data to chart")

const (
	defaultWidth  = 1024
	defaultHeight = 768
)

// Renderer writes charts into Dir.
type Renderer struct {
	Dir    string
	Width  int
	Height int
	// Font is used for all chart text; nil selects go-chart's default,
	// which has no CJK glyphs.
	Font *truetype.Font
}

// LoadFont parses a TrueType font file. Collections (.ttc) are not supported.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	font, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return font, nil
}

func (r *Renderer) size() (int, int) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// Daily renders each site's share of day's total as a pie chart and returns
// the file path. It returns ErrNoData when the total is zero.
func (r *Renderer) Daily(day string, totals *tally.Totals) (string, error) {
	values := ShareValues(totals)
	if len(values) == 0 {
		return "", ErrNoData
	}

	// A square canvas keeps the pie round.
	side, h := r.size()
	if h < side {
		side = h
	}
	pie := chart.PieChart{
		Title:  day + " site share",
		Width:  side,
		Height: side,
		Font:   r.Font,
		Values: values,
	}

	return r.write("daily-"+day+".png", pie.Render)
}

// Weekly renders hours per site as a bar chart, bars in the totals' order,
// and returns the file path. It returns ErrNoData for empty totals.
func (r *Renderer) Weekly(day string, totals *tally.Totals) (string, error) {
	bars := HourValues(totals)
	if len(bars) == 0 {
		return "", ErrNoData
	}

	maxHours := 0.0
	for _, b := range bars {
		if b.Value > maxHours {
			maxHours = b.Value
		}
	}
	if maxHours == 0 {
		maxHours = 1
	}

	w, h := r.size()
	barWidth := (w - 120) / (2 * len(bars))
	if barWidth < 4 {
		barWidth = 4
	}

	bar := chart.BarChart{
		Title:      "Hours per site, week ending " + day,
		Width:      w,
		Height:     h,
		Font:       r.Font,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Bottom: 120},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Name:  "hours",
			Range: &chart.ContinuousRange{Min: 0, Max: maxHours * 1.1},
		},
		Bars: bars,
	}

	return r.write("weekly-"+day+".png", bar.Render)
}

func (r *Renderer) write(name string, render func(chart.RendererProvider, io.Writer) error) (string, error) {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("create chart directory: %w", err)
	}

	path := filepath.Join(r.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if err := render(chart.PNG, f); err != nil {
		f.Close()
		os.Remove(path) //nolint:errcheck
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path, nil
}

// ShareValues converts totals to percentage slices labelled "site (12.3%)".
// Sites with zero seconds are left out. It returns nil when the total is zero.
func ShareValues(totals *tally.Totals) []chart.Value {
	sum := totals.Sum()
	if sum <= 0 {
		return nil
	}

	var values []chart.Value
	for _, s := range totals.Sites() {
		if s.Seconds == 0 {
			continue
		}
		pct := float64(s.Seconds) / float64(sum) * 100
		values = append(values, chart.Value{
			Value: pct,
			Label: fmt.Sprintf("%s (%.1f%%)", s.Label, pct),
		})
	}
	return values
}

// HourValues converts totals to hours per site in the totals' order.
func HourValues(totals *tally.Totals) []chart.Value {
	var values []chart.Value
	for _, s := range totals.Sites() {
		values = append(values, chart.Value{
			Value: float64(s.Seconds) / 3600,
			Label: s.Label,
		})
	}
	return values
}
