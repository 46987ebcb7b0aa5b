// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chart

import (
	"errors"
	"strings"
	"testing"
)

func numericData() *Data {
	return &Data{
		Labels: []any{"USD", "EUR"},
		Series: []Series{{Label: "pnl", Values: []any{100.0, 50.0}}},
	}
}

func TestRenderer_Draw(t *testing.T) {
	r := NewRenderer(60)

	out, err := r.Draw(numericData())
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	for _, want := range []string{"pnl", "USD", "EUR", "100", "50", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if r.Current() == nil {
		t.Error("Current() = nil after successful draw")
	}
}

// A new draw always releases the prior chart first, even when the new data
// fails to render; the panel never holds two charts.
func TestRenderer_ReleaseBeforeDraw(t *testing.T) {
	r := NewRenderer(60)

	if _, err := r.Draw(numericData()); err != nil {
		t.Fatalf("first Draw: %v", err)
	}
	first := r.Current()

	bad := &Data{
		Labels: []any{"a"},
		Series: []Series{{Label: "s", Values: []any{map[string]any{"foo": 1.0}}}},
	}
	_, err := r.Draw(bad)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Draw(bad) = %v, want ErrUnsupportedFormat", err)
	}
	if r.Current() == first || r.Current() != nil {
		t.Error("prior chart must be released before the failed draw")
	}
}

func TestRenderer_DrawFailures(t *testing.T) {
	r := NewRenderer(60)

	if _, err := r.Draw(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("Draw(nil) = %v, want ErrNoData", err)
	}
	if _, err := r.Draw(&Data{}); !errors.Is(err, ErrNoData) {
		t.Errorf("Draw(empty) = %v, want ErrNoData", err)
	}
}

func TestRenderer_Release(t *testing.T) {
	r := NewRenderer(60)
	if _, err := r.Draw(numericData()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	r.Release()
	if r.Current() != nil {
		t.Error("Current() != nil after Release")
	}
}

func TestRenderer_MixedValues(t *testing.T) {
	d := &Data{
		Labels: []any{"a", "b"},
		Series: []Series{{Label: "s", Values: []any{5.0, "not-a-number-at-all"}}},
	}
	out, err := NewRenderer(60).Draw(d)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if !strings.Contains(out, "(not numeric)") {
		t.Errorf("non-numeric cell not marked:\n%s", out)
	}
}

func TestRenderer_NegativeValues(t *testing.T) {
	d := &Data{
		Labels: []any{"a", "b"},
		Series: []Series{{Label: "s", Values: []any{-5.0, 10.0}}},
	}
	out, err := NewRenderer(60).Draw(d)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if !strings.Contains(out, "-5") {
		t.Errorf("negative value text missing:\n%s", out)
	}
}
