// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chart

import (
	"errors"
	"fmt"
)

// =============================================================================
// CANONICAL FORM
// =============================================================================

// Series is one labeled sequence of values. Values stay as any: rule 2d
// passes non-numeric items through untouched, and the renderer decides what
// it can draw.
type Series struct {
	Label  string
	Values []any
}

// Data is the canonical chart form: ordered category labels plus one or
// more series. The payloads this system produces carry exactly one series,
// but the form supports several.
type Data struct {
	Labels []any
	Series []Series
}

// =============================================================================
// ERRORS
// =============================================================================

// Sentinel failure reasons. Match with errors.Is.
var (
	ErrNoData            = errors.New("no data available")
	ErrUnsupportedFormat = errors.New("unsupported data format")
)

// ShapeError is a normalization failure carrying the raw payload, so the
// error panel can echo what actually arrived.
type ShapeError struct {
	Reason error // ErrNoData or ErrUnsupportedFormat
	Raw    any
}

func (e *ShapeError) Error() string {
	return e.Reason.Error()
}

func (e *ShapeError) Unwrap() error {
	return e.Reason
}

// =============================================================================
// SHAPE INFERENCE
// =============================================================================

// Normalize converts a loosely shaped payload into canonical Data. Shape
// inference runs in order:
//
//  1. Already canonical (Data or *Data): pass through unchanged.
//  2. A sequence of objects: the first element decides the field pair
//     (x/y, then label/value, then name/count). With no known pair the
//     sequence itself becomes the value series under synthesized ordinal
//     labels ("Item 1".."Item N").
//  3. An empty sequence fails with ErrNoData.
//  4. Anything else fails with ErrUnsupportedFormat.
//
// seriesLabel names the produced series in cases 2–3.
func Normalize(input any, seriesLabel string) (*Data, error) {
	switch v := input.(type) {
	case *Data:
		return v, nil
	case Data:
		return &v, nil
	}

	items, ok := asSequence(input)
	if !ok {
		return nil, &ShapeError{Reason: ErrUnsupportedFormat, Raw: input}
	}
	if len(items) == 0 {
		return nil, &ShapeError{Reason: ErrNoData, Raw: input}
	}

	first, ok := items[0].(map[string]any)
	if ok {
		for _, pair := range [][2]string{{"x", "y"}, {"label", "value"}, {"name", "count"}} {
			if _, hasKey := first[pair[0]]; !hasKey {
				continue
			}
			if _, hasVal := first[pair[1]]; !hasVal {
				continue
			}
			return fromFieldPair(items, pair[0], pair[1], seriesLabel), nil
		}
	}

	// Ordinal fallback: the sequence itself is the value series.
	labels := make([]any, len(items))
	for i := range items {
		labels[i] = fmt.Sprintf("Item %d", i+1)
	}
	return &Data{
		Labels: labels,
		Series: []Series{{Label: seriesLabel, Values: items}},
	}, nil
}

// asSequence widens the slice shapes a decoded payload can arrive in.
func asSequence(input any) ([]any, bool) {
	switch v := input.(type) {
	case []any:
		return v, true
	case []map[string]any:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return items, true
	}
	return nil, false
}

// fromFieldPair extracts labels and values using one recognized field pair.
// Elements that are not objects, or lack the fields, contribute nil cells;
// order is preserved.
func fromFieldPair(items []any, labelField, valueField, seriesLabel string) *Data {
	labels := make([]any, len(items))
	values := make([]any, len(items))

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		labels[i] = obj[labelField]
		values[i] = obj[valueField]
	}

	return &Data{
		Labels: labels,
		Series: []Series{{Label: seriesLabel, Values: values}},
	}
}
