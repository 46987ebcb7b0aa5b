// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"encoding/json"
	"errors"

	"github.com/jeranaias/deskchat-tui/internal/chart"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
	"github.com/jeranaias/deskchat-tui/internal/util"
)

// =============================================================================
// CHART PANEL
// =============================================================================

// ChartPanel owns the single live chart of the session. Drawing a new
// chart always releases the previous one first, so the panel can never
// show two charts stacked.
type ChartPanel struct {
	renderer *chart.Renderer
	theme    *styles.Theme
	title    string
}

// NewChartPanel creates a chart panel laid out within width cells.
func NewChartPanel(width int, theme *styles.Theme) *ChartPanel {
	return &ChartPanel{
		renderer: chart.NewRenderer(width),
		theme:    theme,
	}
}

// SetWidth updates the layout width on terminal resize.
func (p *ChartPanel) SetWidth(width int) {
	p.renderer.SetWidth(width - 4) // panel border and padding
}

// HasChart reports whether a chart is currently live.
func (p *ChartPanel) HasChart() bool {
	return p.renderer.Current() != nil
}

// Release drops the live chart.
func (p *ChartPanel) Release() {
	p.renderer.Release()
}

// Draw normalizes arbitrary decoded chart input and renders it. On
// failure the previous chart stays released and the returned string is an
// error panel explaining what the input looked like.
func (p *ChartPanel) Draw(input any, title string) string {
	data, err := chart.Normalize(input, title)
	if err != nil {
		return p.renderChartError(err)
	}

	rendered, err := p.renderer.Draw(data)
	if err != nil {
		return p.renderChartError(err)
	}

	p.title = title
	body := rendered
	if title != "" {
		body = p.theme.ChartTitle.Render(title) + "\n" + rendered
	}
	return p.theme.ChartPanel.Render(body)
}

// renderChartError explains a normalize/draw failure, echoing the raw
// input shape when one was captured.
func (p *ChartPanel) renderChartError(err error) string {
	title := "Chart error"
	switch {
	case errors.Is(err, chart.ErrNoData):
		title = "No data available"
	case errors.Is(err, chart.ErrUnsupportedFormat):
		title = "Unsupported data format"
	}

	panel := ErrorPanel{
		Title:   title,
		Message: err.Error(),
		theme:   p.theme,
	}

	var shapeErr *chart.ShapeError
	if errors.As(err, &shapeErr) && shapeErr.Raw != nil {
		panel.Detail = describeRaw(shapeErr.Raw)
	}

	return panel.Render()
}

// describeRaw summarizes the payload that failed to normalize, truncated
// so a pathological input cannot flood the panel.
func describeRaw(raw any) string {
	data, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	return "received: " + util.TruncateRunes(string(data), 120)
}
