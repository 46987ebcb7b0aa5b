// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"testing"

	"github.com/jeranaias/deskchat-tui/internal/extract"
)

func sampleTable() *extract.Table {
	return &extract.Table{
		Kind:    extract.KindTrade,
		Columns: []string{"note", "deal_num", "currency"},
		Rows: []extract.Row{
			{"note": "first", "deal_num": "1001", "currency": "USD"},
			{"deal_num": "1002", "currency": "EUR"},
		},
	}
}

func TestNewState_DefaultSelection(t *testing.T) {
	s := NewState(sampleTable())

	want := []string{"deal_num", "currency", "note"}
	got := s.VisibleColumns()
	if len(got) != len(want) {
		t.Fatalf("VisibleColumns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("VisibleColumns[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// Toggling a column off then on restores the prior selection exactly.
func TestState_ToggleRoundTrip(t *testing.T) {
	s := NewState(sampleTable())
	before := s.VisibleColumns()

	s.Toggle("currency")
	if s.Selected("currency") {
		t.Fatal("currency still selected after toggle off")
	}
	if len(s.VisibleColumns()) != len(before)-1 {
		t.Fatalf("VisibleColumns = %v after toggle off", s.VisibleColumns())
	}

	s.Toggle("currency")
	after := s.VisibleColumns()
	if len(after) != len(before) {
		t.Fatalf("VisibleColumns = %v, want %v restored", after, before)
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("after[%d] = %q, want %q", i, after[i], before[i])
		}
	}
}

func TestState_ToggleUnknownIgnored(t *testing.T) {
	s := NewState(sampleTable())
	before := len(s.VisibleColumns())

	s.Toggle("no_such_column")
	if len(s.VisibleColumns()) != before {
		t.Errorf("unknown toggle changed selection: %v", s.VisibleColumns())
	}
}

// Toggling changes display only; the table underneath is untouched.
func TestState_ToggleDoesNotMutateTable(t *testing.T) {
	table := sampleTable()
	s := NewState(table)

	s.Toggle("deal_num")
	if len(table.Columns) != 3 {
		t.Errorf("table columns mutated: %v", table.Columns)
	}
	if v, _ := table.Value(0, "deal_num"); v != "1001" {
		t.Errorf("table data mutated: %q", v)
	}
}

func TestState_Cell_NullSentinel(t *testing.T) {
	s := NewState(sampleTable())

	if v := s.Cell(1, "note"); v != extract.NullSentinel {
		t.Errorf("missing cell = %q, want %q", v, extract.NullSentinel)
	}
	if v := s.Cell(0, "note"); v != "first" {
		t.Errorf("present cell = %q, want first", v)
	}
}

func TestState_RowWindow(t *testing.T) {
	table := &extract.Table{Kind: extract.KindPnl, Columns: []string{"n"}}
	for i := 0; i < RowWindow+3; i++ {
		table.Rows = append(table.Rows, extract.Row{"n": "v"})
	}

	s := NewState(table)
	if got := len(s.WindowRows()); got != RowWindow {
		t.Errorf("WindowRows = %d, want %d", got, RowWindow)
	}
	if got := s.HiddenRowCount(); got != 3 {
		t.Errorf("HiddenRowCount = %d, want 3", got)
	}
}

func TestColumnWidths(t *testing.T) {
	table := &extract.Table{
		Kind:    extract.KindTrade,
		Columns: []string{"deal_num", "currency"},
		Rows: []extract.Row{
			{"deal_num": "1001", "currency": "USD"},
		},
	}
	s := NewState(table)

	widths := s.ColumnWidths()
	if widths["deal_num"] != len("deal_num") {
		t.Errorf("deal_num width = %d, want header width %d", widths["deal_num"], len("deal_num"))
	}
	if widths["currency"] != len("currency") {
		t.Errorf("currency width = %d, want header width %d", widths["currency"], len("currency"))
	}
}

func TestFitCell(t *testing.T) {
	if got := FitCell("ab", 5); got != "ab   " {
		t.Errorf("FitCell pad = %q", got)
	}
	if got := FitCell("abcdef", 4); got != "abc…" {
		t.Errorf("FitCell truncate = %q", got)
	}
}
