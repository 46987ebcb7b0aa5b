// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"testing"
)

func TestInitialColumns_PriorityOrder(t *testing.T) {
	discovered := []string{"x", "deal_num", "y", "currency"}

	got := InitialColumns(discovered)
	want := []string{"deal_num", "currency", "x", "y"}

	if len(got) != len(want) {
		t.Fatalf("InitialColumns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("InitialColumns[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInitialColumns_PriorityCap(t *testing.T) {
	// 10 priority columns plus 8 extras: only the first 15 survive.
	discovered := append([]string(nil), PriorityColumns...)
	for _, extra := range []string{"e1", "e2", "e3", "e4", "e5", "e6", "e7", "e8"} {
		discovered = append(discovered, extra)
	}

	got := InitialColumns(discovered)
	if len(got) != PriorityColumnCap {
		t.Fatalf("len = %d, want %d", len(got), PriorityColumnCap)
	}
	for i, col := range PriorityColumns {
		if got[i] != col {
			t.Errorf("got[%d] = %q, want priority column %q", i, got[i], col)
		}
	}
	if got[len(PriorityColumns)] != "e1" {
		t.Errorf("first extra = %q, want e1", got[len(PriorityColumns)])
	}
}

func TestInitialColumns_NoPriorityList(t *testing.T) {
	discovered := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}

	got := initialColumns(discovered, nil)
	if len(got) != DefaultColumnCap {
		t.Fatalf("len = %d, want %d", len(got), DefaultColumnCap)
	}
	for i, col := range discovered[:DefaultColumnCap] {
		if got[i] != col {
			t.Errorf("got[%d] = %q, want %q", i, got[i], col)
		}
	}
}

func TestInitialColumns_FewerThanCap(t *testing.T) {
	discovered := []string{"a", "b"}
	got := initialColumns(discovered, nil)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}
