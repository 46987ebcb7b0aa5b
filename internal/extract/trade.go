// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"strings"
)

// =============================================================================
// TRADE GRAMMAR (pipe/colon delimited records)
// =============================================================================

// tradeRowThreshold is the number of keys a record must exceed before it
// is committed as a completed row. The grammar has no explicit record
// separator; accumulating past this count is how a row boundary is
// detected. The value is load-bearing for compatibility with the backend's
// formatter: entity_trade_header records always carry more than five
// fields, while stray "key: value" prose lines carry fewer.
const tradeRowThreshold = 5

// ParseTrade extracts trade records from pipe/colon delimited content.
//
// The backend emits one record per line in the shape
//
//	• deal_num: 1001 | tran_num: 2001 | currency: USD | ...
//
// but long records wrap across lines in some transports, so the scan
// accumulates key/value pairs across candidate lines and commits a row
// whenever more than tradeRowThreshold keys have been gathered. If the
// plain scan finds nothing, a second pass considers only bullet lines
// (leading "-" or "•") with the marker stripped.
//
// Returns ErrNoTable when no row ever reaches the threshold.
func ParseTrade(content string) (*Table, error) {
	lines := strings.Split(content, "\n")

	rows, cols := scanTradeLines(lines, false)
	if len(rows) == 0 {
		// Bullet-point variant: some responses wrap each record in a
		// markdown list instead of bare lines.
		rows, cols = scanTradeLines(lines, true)
	}
	if len(rows) == 0 {
		return nil, ErrNoTable
	}

	return &Table{Rows: rows, Columns: cols.order, Kind: KindTrade}, nil
}

// scanTradeLines runs the accumulate-and-commit scan over lines.
// When bulletsOnly is set, only lines starting with a bullet marker are
// candidates, and the marker is stripped before parsing.
func scanTradeLines(lines []string, bulletsOnly bool) ([]Row, *columnSet) {
	var rows []Row
	cols := newColumnSet()

	current := Row{}
	var currentKeys []string

	for _, line := range lines {
		if bulletsOnly {
			trimmed := strings.TrimSpace(line)
			stripped, ok := stripBullet(trimmed)
			if !ok {
				continue
			}
			line = stripped
		}

		// A candidate line carries at least one delimited pair.
		if !strings.Contains(line, "|") || !strings.Contains(line, ":") {
			continue
		}

		for _, segment := range strings.Split(line, "|") {
			segment = strings.TrimSpace(segment)
			if !strings.Contains(segment, ":") {
				continue
			}

			// Split on the first colon only; values such as timestamps
			// legitimately contain further colons.
			key, value, _ := strings.Cut(segment, ":")
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			if key == "" || value == "" {
				continue
			}

			if _, exists := current[key]; !exists {
				currentKeys = append(currentKeys, key)
			}
			// A repeated key within the same record overwrites.
			current[key] = value
		}

		if len(current) > tradeRowThreshold {
			cols.add(currentKeys)
			rows = append(rows, current)
			current = Row{}
			currentKeys = nil
		}
	}

	// A trailing partial record that never crossed the threshold is
	// dropped, matching the boundary rule: below-threshold accumulations
	// are noise, not data.
	return rows, cols
}

// stripBullet removes a leading list marker from a trimmed line.
// Returns the remainder and whether a marker was present.
func stripBullet(line string) (string, bool) {
	switch {
	case strings.HasPrefix(line, "•"):
		return strings.TrimSpace(strings.TrimPrefix(line, "•")), true
	case strings.HasPrefix(line, "-"):
		return strings.TrimSpace(strings.TrimPrefix(line, "-")), true
	}
	return "", false
}
