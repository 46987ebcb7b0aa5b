// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// render.go - Classified answer rendering for non-TUI output.
//
// The CLI renders the same classifications as the TUI, but flat: SQL
// statement lines get emphasis, tabular answers become aligned plain
// tables, and prose goes through the markdown renderer when stdout is
// a terminal.
package cli

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/deskchat-tui/internal/config"
	"github.com/jeranaias/deskchat-tui/internal/extract"
	"github.com/jeranaias/deskchat-tui/internal/view"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

var (
	markdownRenderer     *glamour.TermRenderer
	markdownRendererOnce sync.Once
)

// getMarkdownRenderer lazily builds the shared glamour renderer.
// Returns nil when construction fails; callers fall back to plain text.
func getMarkdownRenderer() *glamour.TermRenderer {
	markdownRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(GetTerminalWidth()),
		)
		if err == nil {
			markdownRenderer = r
		}
	})
	return markdownRenderer
}

// =============================================================================
// ANSWER RENDERING
// =============================================================================

// RenderAnswer renders a classified answer for stdout.
func RenderAnswer(content string, format extract.Format, table *extract.Table, cfg *config.Config) string {
	switch format {
	case extract.FormatSQL:
		return renderSQLAnswer(content)
	case extract.FormatTrade, extract.FormatPnlDictionary:
		if table != nil {
			return RenderTable(view.NewState(table))
		}
		// Markers matched but no rows parsed; show the raw text.
		return content
	default:
		return renderTextAnswer(content, cfg)
	}
}

// renderTextAnswer renders prose, through glamour when appropriate.
func renderTextAnswer(content string, cfg *config.Config) string {
	if cfg != nil && cfg.UI.Markdown && ColorsEnabled() {
		if r := getMarkdownRenderer(); r != nil {
			if out, err := r.Render(content); err == nil {
				return strings.TrimRight(out, "\n")
			}
		}
	}
	return WrapText(content, GetTerminalWidth())
}

// renderSQLAnswer emphasizes statement lines and dims surrounding prose.
func renderSQLAnswer(content string) string {
	lines := extract.SQLLines(content)

	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if line.Keyword {
			sb.WriteString(HighlightStyle.Render(line.Text))
		} else {
			sb.WriteString(DimStyle.Render(line.Text))
		}
	}
	return sb.String()
}

// =============================================================================
// TABLE RENDERING
// =============================================================================

// RenderTable renders a table view state as aligned plain text: header,
// separator, the windowed rows, and a hidden-row notice.
func RenderTable(state *view.State) string {
	cols := state.VisibleColumns()
	if len(cols) == 0 {
		return DimStyle.Render("(all columns hidden)")
	}

	widths := state.ColumnWidths()
	var sb strings.Builder

	// Header
	headerCells := make([]string, len(cols))
	for i, col := range cols {
		headerCells[i] = view.FitCell(col, widths[col])
	}
	sb.WriteString(SectionStyle.Render(strings.Join(headerCells, "  ")))
	sb.WriteByte('\n')

	// Separator
	sepCells := make([]string, len(cols))
	for i, col := range cols {
		sepCells[i] = strings.Repeat("-", widths[col])
	}
	sb.WriteString(SeparatorStyle.Render(strings.Join(sepCells, "  ")))

	// Windowed rows
	for i := range state.WindowRows() {
		sb.WriteByte('\n')
		rowCells := make([]string, len(cols))
		for j, col := range cols {
			value := state.Cell(i, col)
			cell := view.FitCell(value, widths[col])
			if value == extract.NullSentinel {
				cell = DimStyle.Render(cell)
			}
			rowCells[j] = cell
		}
		sb.WriteString(strings.Join(rowCells, "  "))
	}

	if hidden := state.HiddenRowCount(); hidden > 0 {
		sb.WriteByte('\n')
		sb.WriteString(DimStyle.Render(fmt.Sprintf("... +%d more rows", hidden)))
	}

	return sb.String()
}
