// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"errors"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrNoTable is returned when a grammar matched the response preamble but
// produced zero rows. Callers treat it like "no structured data": the
// response falls through to text rendering. Use errors.Is to check.
var ErrNoTable = errors.New("no table found")

// =============================================================================
// TABLE TYPES
// =============================================================================

// TableKind labels the grammar that produced a table. It only affects
// styling and panel titles; extraction semantics are identical after rows
// exist.
type TableKind string

const (
	KindTrade TableKind = "trade"
	KindPnl   TableKind = "pnl"
)

// Row is one extracted record, mapping column name to display value.
// A row may be missing any column; renderers substitute the NULL sentinel.
type Row map[string]string

// Table is the result of extracting structured rows from a response.
// It is created fresh per response and never mutated afterwards.
type Table struct {
	// Rows in the order they were committed during the scan.
	Rows []Row

	// Columns is the de-duplicated union of keys across all rows,
	// in first-seen order.
	Columns []string

	// Kind labels the source grammar.
	Kind TableKind
}

// RowCount returns the number of extracted rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Value returns the cell for (row, column), or ("", false) when the row
// has no value for that column.
func (t *Table) Value(row int, column string) (string, bool) {
	if row < 0 || row >= len(t.Rows) {
		return "", false
	}
	v, ok := t.Rows[row][column]
	return v, ok
}

// =============================================================================
// COLUMN TRACKING
// =============================================================================

// columnSet accumulates column names in first-seen order while rows are
// committed. The invariant it maintains: the resulting slice is exactly
// the union of keys appearing in any committed row, without duplicates.
type columnSet struct {
	order []string
	seen  map[string]bool
}

func newColumnSet() *columnSet {
	return &columnSet{seen: make(map[string]bool)}
}

// add records column names in the order given, skipping ones already seen.
func (c *columnSet) add(names []string) {
	for _, name := range names {
		if !c.seen[name] {
			c.seen[name] = true
			c.order = append(c.order, name)
		}
	}
}
