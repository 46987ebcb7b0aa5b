// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// =============================================================================
// BAR RENDERER
// =============================================================================

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// maxLabelWidth caps the label gutter so long category names cannot squeeze
// the bars out of the frame.
const maxLabelWidth = 20

// Renderer draws canonical chart data as a horizontal bar chart. It holds
// at most one live chart; the previous one is always released before a new
// draw, so two charts can never overlay each other in the same panel.
type Renderer struct {
	width   int
	current *Data
}

// NewRenderer creates a renderer that lays out bars within width cells.
func NewRenderer(width int) *Renderer {
	if width < 20 {
		width = 20
	}
	return &Renderer{width: width}
}

// SetWidth updates the layout width on terminal resize. It does not redraw;
// the owner calls Draw again with the current data.
func (r *Renderer) SetWidth(width int) {
	if width >= 20 {
		r.width = width
	}
}

// Current returns the data of the live chart, or nil when released.
func (r *Renderer) Current() *Data {
	return r.current
}

// Release drops the live chart. Safe to call when nothing is drawn.
func (r *Renderer) Release() {
	r.current = nil
}

// Draw releases any live chart, then renders d as a horizontal bar chart of
// its first series. Fails with ErrUnsupportedFormat when no value in the
// series is numeric.
func (r *Renderer) Draw(d *Data) (string, error) {
	r.Release()

	if d == nil || len(d.Series) == 0 {
		return "", &ShapeError{Reason: ErrNoData, Raw: d}
	}
	series := d.Series[0]

	values := make([]float64, len(series.Values))
	numeric := make([]bool, len(series.Values))
	anyNumeric := false
	maxVal := 0.0
	for i, v := range series.Values {
		f, ok := toFloat(v)
		if !ok {
			continue
		}
		values[i] = f
		numeric[i] = true
		anyNumeric = true
		if f > maxVal {
			maxVal = f
		}
	}
	if !anyNumeric {
		return "", &ShapeError{Reason: ErrUnsupportedFormat, Raw: d}
	}

	r.current = d
	return r.renderBars(series, d.Labels, values, numeric, maxVal), nil
}

func (r *Renderer) renderBars(series Series, labels []any, values []float64, numeric []bool, maxVal float64) string {
	labelWidth := 0
	texts := make([]string, len(values))
	for i := range values {
		texts[i] = labelText(labels, i)
		if w := runewidth.StringWidth(texts[i]); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}

	// label gutter + space + bar + space + value text
	barSpace := r.width - labelWidth - 2 - 12
	if barSpace < 4 {
		barSpace = 4
	}

	var sb strings.Builder
	if series.Label != "" {
		sb.WriteString(titleStyle.Render(series.Label))
		sb.WriteByte('\n')
	}

	for i := range values {
		label := texts[i]
		if runewidth.StringWidth(label) > labelWidth {
			label = runewidth.Truncate(label, labelWidth, "…")
		}
		sb.WriteString(labelStyle.Render(runewidth.FillLeft(label, labelWidth)))
		sb.WriteByte(' ')

		if !numeric[i] {
			sb.WriteString(labelStyle.Render("(not numeric)"))
			sb.WriteByte('\n')
			continue
		}

		barLen := 0
		if maxVal > 0 {
			barLen = int(values[i] / maxVal * float64(barSpace))
		}
		if barLen < 1 && values[i] > 0 {
			barLen = 1
		}
		if barLen < 0 {
			// Negative values get no bar; the numeric text still shows.
			barLen = 0
		}
		sb.WriteString(barStyle.Render(strings.Repeat("█", barLen)))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(values[i], 'f', -1, 64))
		sb.WriteByte('\n')
	}

	return strings.TrimRight(sb.String(), "\n")
}

// labelText renders the i-th category label, tolerating short label slices.
func labelText(labels []any, i int) string {
	if i >= len(labels) || labels[i] == nil {
		return fmt.Sprintf("Item %d", i+1)
	}
	switch v := labels[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toFloat coerces the value types a decoded payload can carry.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
