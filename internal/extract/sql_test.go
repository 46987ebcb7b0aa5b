// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"testing"
)

func TestSQLLines(t *testing.T) {
	content := "Here is the query:\n" +
		"SELECT deal_num, pymt\n" +
		"FROM entity_trade_header\n" +
		"WHERE currency = 'USD'\n" +
		"Let me know if you need changes."

	lines := SQLLines(content)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}

	wantKeyword := []bool{false, true, true, true, false}
	for i, want := range wantKeyword {
		if lines[i].Keyword != want {
			t.Errorf("line %d (%q) Keyword = %v, want %v", i, lines[i].Text, lines[i].Keyword, want)
		}
	}
}

func TestSQLLines_CaseSensitive(t *testing.T) {
	lines := SQLLines("select * from trades")
	for _, l := range lines {
		if l.Keyword {
			t.Errorf("lowercase line %q marked as keyword", l.Text)
		}
	}
}

func TestStatementText(t *testing.T) {
	lines := SQLLines("intro\nSELECT a\nFROM t\noutro")
	got := StatementText(lines)
	want := "SELECT a\nFROM t"
	if got != want {
		t.Errorf("StatementText = %q, want %q", got, want)
	}
}
