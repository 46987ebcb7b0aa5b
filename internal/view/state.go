// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"github.com/jeranaias/deskchat-tui/internal/extract"
)

// =============================================================================
// TABLE VIEW STATE
// =============================================================================

// State is the explicit view state for one extracted table: the full display
// order of its columns and the subset currently selected. It is owned by the
// rendering layer, constructed fresh per table, and mutated only through
// Toggle. There is no ambient shared state behind it.
type State struct {
	table    *extract.Table
	order    []string
	selected map[string]bool
}

// NewState builds the view state for a freshly extracted table, selecting
// the policy-default columns.
func NewState(table *extract.Table) *State {
	s := &State{
		table:    table,
		order:    orderColumns(table.Columns, PriorityColumns),
		selected: make(map[string]bool),
	}
	for _, col := range InitialColumns(table.Columns) {
		s.selected[col] = true
	}
	return s
}

// Table returns the underlying extracted table.
func (s *State) Table() *extract.Table {
	return s.table
}

// Toggle flips whether a column is displayed. Unknown names are ignored so a
// stale toggle (from a hint rendered against a previous table) cannot
// introduce phantom columns. Toggling never alters the table itself.
func (s *State) Toggle(name string) {
	known := false
	for _, col := range s.order {
		if col == name {
			known = true
			break
		}
	}
	if !known {
		return
	}
	if s.selected[name] {
		delete(s.selected, name)
	} else {
		s.selected[name] = true
	}
}

// Selected reports whether a column is currently displayed.
func (s *State) Selected(name string) bool {
	return s.selected[name]
}

// VisibleColumns returns the selected columns in display order.
func (s *State) VisibleColumns() []string {
	visible := make([]string, 0, len(s.selected))
	for _, col := range s.order {
		if s.selected[col] {
			visible = append(visible, col)
		}
	}
	return visible
}

// AllColumns returns every column in display order, selected or not.
// Renderers use it for the toggle hint line.
func (s *State) AllColumns() []string {
	return s.order
}

// WindowRows returns the rows inside the display window, capped at
// RowWindow. The slice aliases the table's rows; callers must not mutate.
func (s *State) WindowRows() []extract.Row {
	rows := s.table.Rows
	if len(rows) > RowWindow {
		rows = rows[:RowWindow]
	}
	return rows
}

// HiddenRowCount returns how many rows fall outside the display window.
func (s *State) HiddenRowCount() int {
	if n := s.table.RowCount() - RowWindow; n > 0 {
		return n
	}
	return 0
}

// Cell returns the display value for (row, column), substituting the NULL
// sentinel when the row has no value for that column.
func (s *State) Cell(row int, column string) string {
	if v, ok := s.table.Value(row, column); ok {
		return v
	}
	return extract.NullSentinel
}
