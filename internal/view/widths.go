// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"github.com/mattn/go-runewidth"
)

// =============================================================================
// COLUMN WIDTHS
// =============================================================================

// maxCellWidth caps a single cell's contribution to its column width so one
// long free-text value cannot blow out the whole layout.
const maxCellWidth = 24

// ColumnWidths measures the display width of each visible column over the
// windowed rows: the widest of the header and its cell values, cell
// contribution capped at maxCellWidth. Widths are terminal cells, not bytes,
// so wide runes count correctly.
func (s *State) ColumnWidths() map[string]int {
	widths := make(map[string]int)

	for _, col := range s.VisibleColumns() {
		widths[col] = runewidth.StringWidth(col)
	}

	for i := range s.WindowRows() {
		for col, w := range widths {
			cw := runewidth.StringWidth(s.Cell(i, col))
			if cw > maxCellWidth {
				cw = maxCellWidth
			}
			if cw > w {
				widths[col] = cw
			}
		}
	}
	return widths
}

// FitCell pads or truncates a cell value to exactly width display cells,
// adding an ellipsis when content is cut.
func FitCell(value string, width int) string {
	if runewidth.StringWidth(value) > width {
		return runewidth.Truncate(value, width, "…")
	}
	return runewidth.FillRight(value, width)
}
