// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/jeranaias/deskchat-tui/internal/extract"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
	"github.com/jeranaias/deskchat-tui/internal/view"
)

// =============================================================================
// TABLE PANEL
// =============================================================================

// TablePanel renders an extracted trade or pnl table: header row, the
// windowed data rows, a hidden-row notice, and a column toggle hint line.
// Column selection lives in the view state; the panel only draws it.
type TablePanel struct {
	State *view.State
	theme *styles.Theme
}

// NewTablePanel creates a panel over a table's view state.
func NewTablePanel(state *view.State, theme *styles.Theme) *TablePanel {
	return &TablePanel{State: state, theme: theme}
}

// Render draws the panel.
func (p *TablePanel) Render() string {
	cols := p.State.VisibleColumns()
	if len(cols) == 0 {
		return p.theme.TableFooter.Render("(all columns hidden; use /toggle <column> to show one)")
	}

	widths := p.State.ColumnWidths()

	var sb strings.Builder

	// Header row.
	headerCells := make([]string, 0, len(cols))
	for _, col := range cols {
		headerCells = append(headerCells, p.theme.TableHeader.Render(view.FitCell(col, widths[col])))
	}
	sb.WriteString(strings.Join(headerCells, "  "))
	sb.WriteByte('\n')

	// Separator sized to the summed column widths.
	total := 0
	for _, col := range cols {
		total += widths[col] + 2
	}
	sb.WriteString(p.theme.TableColumnHint.Render(strings.Repeat("─", max(total-2, 1))))
	sb.WriteByte('\n')

	// Windowed data rows.
	for i := range p.State.WindowRows() {
		rowCells := make([]string, 0, len(cols))
		for _, col := range cols {
			value := p.State.Cell(i, col)
			fitted := view.FitCell(value, widths[col])
			if value == extract.NullSentinel {
				rowCells = append(rowCells, p.theme.TableNull.Render(fitted))
			} else {
				rowCells = append(rowCells, p.theme.TableCell.Render(fitted))
			}
		}
		sb.WriteString(strings.Join(rowCells, "  "))
		sb.WriteByte('\n')
	}

	// Hidden-row notice.
	if hidden := p.State.HiddenRowCount(); hidden > 0 {
		sb.WriteString(p.theme.TableFooter.Render("+" + strconv.Itoa(hidden) + " more rows"))
		sb.WriteByte('\n')
	}

	// Toggle hint: every column, visible ones marked.
	sb.WriteString(p.renderHint())

	return p.theme.TablePanel.Render(strings.TrimRight(sb.String(), "\n"))
}

// renderHint draws the column toggle line, e.g.
// "columns: [deal_num] [currency] price pymt  (/toggle <name>)".
func (p *TablePanel) renderHint() string {
	var parts []string
	for _, col := range p.State.AllColumns() {
		if p.State.Selected(col) {
			parts = append(parts, "["+col+"]")
		} else {
			parts = append(parts, col)
		}
	}
	hint := "columns: " + strings.Join(parts, " ") + "  (/toggle <name>)"
	return p.theme.TableColumnHint.Render(hint)
}
