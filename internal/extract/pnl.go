// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"log"
	"regexp"
	"strings"
)

// =============================================================================
// PNL DICTIONARY GRAMMAR (enumerated dictionary-literal rows)
// =============================================================================

// pnlRowPattern matches an enumerated row line: one or more digits, a
// period, optional whitespace, then an opening brace. The backend prints
// the first few result rows as "1. {'col': val, ...}".
var pnlRowPattern = regexp.MustCompile(`^(\d+)\.\s*(\{.*)$`)

// ParsePnlDictionary extracts rows from a SQL-execution result whose body
// enumerates dictionary literals. Lines that do not match the enumeration
// pattern are ignored; a line that matches but fails to parse is skipped
// and logged, never aborting the rest of the batch.
//
// Returns ErrNoTable when no line parses successfully.
func ParsePnlDictionary(content string) (*Table, error) {
	var rows []Row
	cols := newColumnSet()

	for _, line := range strings.Split(content, "\n") {
		m := pnlRowPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		row, keys, err := parseObjectLiteral(m[2])
		if err != nil {
			log.Printf("[extract] skipping malformed row line %s.: %v", m[1], err)
			continue
		}

		cols.add(keys)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoTable
	}
	return &Table{Rows: rows, Columns: cols.order, Kind: KindPnl}, nil
}
