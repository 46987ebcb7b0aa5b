// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"strings"
)

// =============================================================================
// SQL FORMATTER
// =============================================================================

// sqlKeywords are the statement keywords that mark a line for emphasis.
// Matching is case-sensitive; the backend emits uppercase SQL.
var sqlKeywords = []string{"SELECT", "FROM", "WHERE", "LIMIT", "ORDER BY", "JOIN"}

// SQLLine is one display unit of a SQL-classified response.
type SQLLine struct {
	Text    string
	Keyword bool // line contains a statement keyword and renders emphasized
}

// SQLLines splits a SQL-classified response into display lines, marking
// the ones that carry statement keywords. It produces no row/column
// structure; the renderer decides how emphasis looks.
func SQLLines(content string) []SQLLine {
	rawLines := strings.Split(content, "\n")
	lines := make([]SQLLine, 0, len(rawLines))

	for _, raw := range rawLines {
		lines = append(lines, SQLLine{
			Text:    raw,
			Keyword: containsSQLKeyword(raw),
		})
	}
	return lines
}

// containsSQLKeyword reports whether a line carries any statement keyword.
func containsSQLKeyword(line string) bool {
	for _, kw := range sqlKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// StatementText joins only the keyword-bearing lines, which approximates
// the statement body for syntax highlighting.
func StatementText(lines []SQLLine) string {
	var sb strings.Builder
	for _, l := range lines {
		if l.Keyword {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(l.Text)
		}
	}
	return sb.String()
}
