// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

// =============================================================================
// COLUMN POLICY
// =============================================================================

const (
	// DefaultColumnCap limits the initial selection when no priority list
	// applies.
	DefaultColumnCap = 8

	// PriorityColumnCap limits the initial selection when the priority
	// list reordered the columns.
	PriorityColumnCap = 15

	// RowWindow is the number of rows rendered at once. Purely a display
	// limit; the underlying table keeps every row.
	RowWindow = 5
)

// PriorityColumns is the fixed display-priority order for trading columns.
// Columns on this list, when discovered, are shown first and in this order;
// everything else follows in discovery order.
var PriorityColumns = []string{
	"deal_num",
	"tran_num",
	"currency",
	"volume",
	"price",
	"pymt",
	"ltd_realized_value",
	"ltd_unrealized_value",
	"payment_date",
	"cashflow_type",
}

// InitialColumns computes the default column selection for a freshly
// extracted table using PriorityColumns.
func InitialColumns(columns []string) []string {
	return initialColumns(columns, PriorityColumns)
}

// initialColumns orders discovered columns against a priority list and caps
// the result. With a priority list: list members that are present come
// first, in list order, then the remaining columns in first-seen order,
// capped to PriorityColumnCap. With no list: first-seen order capped to
// DefaultColumnCap.
func initialColumns(columns, priority []string) []string {
	ordered := orderColumns(columns, priority)

	limit := DefaultColumnCap
	if len(priority) > 0 {
		limit = PriorityColumnCap
	}
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// orderColumns produces the full display order, uncapped: priority-list
// members that are present first (in list order), then the remaining
// discovered columns in first-seen order.
func orderColumns(columns, priority []string) []string {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col] = true
	}

	ordered := make([]string, 0, len(columns))
	taken := make(map[string]bool, len(columns))

	for _, col := range priority {
		if present[col] {
			ordered = append(ordered, col)
			taken[col] = true
		}
	}
	for _, col := range columns {
		if !taken[col] {
			ordered = append(ordered, col)
		}
	}
	return ordered
}
