// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"strings"
)

// =============================================================================
// RESPONSE FORMAT
// =============================================================================

// Format identifies which extraction strategy applies to a response.
type Format int

const (
	// FormatPlainText is the fallback when no grammar matches.
	FormatPlainText Format = iota

	// FormatPnlDictionary is a SQL execution result with enumerated
	// dictionary-literal rows ("Rows returned:" / "First few rows:").
	FormatPnlDictionary

	// FormatTrade is pipe/colon delimited entity_trade_header output.
	FormatTrade

	// FormatSQL is a response containing SQL statement text.
	FormatSQL
)

// String returns the human-readable name of the format.
func (f Format) String() string {
	switch f {
	case FormatPnlDictionary:
		return "pnl"
	case FormatTrade:
		return "trade"
	case FormatSQL:
		return "sql"
	default:
		return "text"
	}
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// classifier pairs a format with its match predicate. Predicates are
// evaluated in slice order; the first match wins.
type classifier struct {
	format Format
	match  func(content string) bool
}

// classifiers is the ordered predicate list. The order is a deliberate
// tie-break: a PNL result that also quotes SQL text classifies as PNL.
// Do not reorder without revisiting every caller that renders by format.
var classifiers = []classifier{
	{FormatPnlDictionary, isPnlDictionary},
	{FormatTrade, isTradeData},
	{FormatSQL, isSQLText},
}

// Classify inspects a raw response and decides which extraction strategy
// applies. It is a pure function of the content string.
func Classify(content string) Format {
	for _, c := range classifiers {
		if c.match(content) {
			return c.format
		}
	}
	return FormatPlainText
}

// isPnlDictionary reports whether content carries the SQL-execution result
// markers that precede enumerated dictionary rows.
func isPnlDictionary(content string) bool {
	return strings.Contains(content, "Rows returned:") &&
		strings.Contains(content, "First few rows:")
}

// isTradeData reports whether content is entity_trade_header output.
func isTradeData(content string) bool {
	return strings.Contains(content, "entity_trade_header data") &&
		strings.Contains(content, "rows")
}

// isSQLText reports whether content contains SQL statement keywords.
// Matching is case-sensitive on purpose: the backend emits uppercase SQL,
// and lowering the bar here would misclassify ordinary prose. A response
// that merely quotes an uppercase keyword still trips this predicate;
// that false positive is accepted behavior (the result is harmless line
// highlighting, not data extraction).
func isSQLText(content string) bool {
	return strings.Contains(content, "SELECT") ||
		strings.Contains(content, "FROM") ||
		strings.Contains(content, "WHERE")
}
