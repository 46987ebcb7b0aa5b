// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"errors"
	"testing"
)

const pnlSample = `Query executed successfully.
Rows returned: 3

First few rows:
1. {'deal_num': 1001, 'currency': 'USD', 'ltd_realized_value': 1520.75}
2. {'deal_num': 1002, 'currency': 'EUR', 'ltd_realized_value': None}
3. {'deal_num': 1003, 'currency': 'GBP', 'ltd_realized_value': -12.5}`

func TestParsePnlDictionary(t *testing.T) {
	table, err := ParsePnlDictionary(pnlSample)
	if err != nil {
		t.Fatalf("ParsePnlDictionary: %v", err)
	}

	if table.Kind != KindPnl {
		t.Errorf("Kind = %q, want %q", table.Kind, KindPnl)
	}
	if table.RowCount() != 3 {
		t.Fatalf("RowCount = %d, want 3", table.RowCount())
	}

	wantCols := []string{"deal_num", "currency", "ltd_realized_value"}
	for i, col := range wantCols {
		if table.Columns[i] != col {
			t.Errorf("Columns[%d] = %q, want %q", i, table.Columns[i], col)
		}
	}

	if v, _ := table.Value(1, "ltd_realized_value"); v != NullSentinel {
		t.Errorf("None value = %q, want %q", v, NullSentinel)
	}
	if v, _ := table.Value(2, "ltd_realized_value"); v != "-12.5" {
		t.Errorf("negative value = %q, want -12.5", v)
	}
}

func TestParsePnlDictionary_ValueForms(t *testing.T) {
	content := "Rows returned: 1\n\nFirst few rows:\n" +
		"1. {'a': 1, 'b': None, 'c': True}"

	table, err := ParsePnlDictionary(content)
	if err != nil {
		t.Fatalf("ParsePnlDictionary: %v", err)
	}

	want := map[string]string{"a": "1", "b": NullSentinel, "c": "true"}
	for col, expected := range want {
		if v, _ := table.Value(0, col); v != expected {
			t.Errorf("Value(0, %s) = %q, want %q", col, v, expected)
		}
	}
}

// A malformed row line is skipped with a log entry; the rest of the batch
// still extracts.
func TestParsePnlDictionary_SkipsMalformedLine(t *testing.T) {
	content := "Rows returned: 3\n\nFirst few rows:\n" +
		"1. {'a': 1}\n" +
		"2. {'a': !!garbage}\n" +
		"3. {'a': 3}"

	table, err := ParsePnlDictionary(content)
	if err != nil {
		t.Fatalf("ParsePnlDictionary: %v", err)
	}
	if table.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2 (malformed line skipped)", table.RowCount())
	}
	if v, _ := table.Value(1, "a"); v != "3" {
		t.Errorf("Value(1, a) = %q, want 3", v)
	}
}

func TestParsePnlDictionary_NoRows(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"markers only", "Rows returned: 0\n\nFirst few rows:"},
		{"all malformed", "Rows returned: 1\n\nFirst few rows:\n1. {broken"},
		{"empty", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePnlDictionary(tc.content); !errors.Is(err, ErrNoTable) {
				t.Errorf("ParsePnlDictionary = %v, want ErrNoTable", err)
			}
		})
	}
}

func TestParsePnlDictionary_RaggedColumns(t *testing.T) {
	content := "Rows returned: 2\n\nFirst few rows:\n" +
		"1. {'a': 1, 'b': 2}\n" +
		"2. {'b': 3, 'c': 4}"

	table, err := ParsePnlDictionary(content)
	if err != nil {
		t.Fatalf("ParsePnlDictionary: %v", err)
	}

	wantCols := []string{"a", "b", "c"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("Columns = %v, want %v", table.Columns, wantCols)
	}
	for i, col := range wantCols {
		if table.Columns[i] != col {
			t.Errorf("Columns[%d] = %q, want %q", i, table.Columns[i], col)
		}
	}
}
