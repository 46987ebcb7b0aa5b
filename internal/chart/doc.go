// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chart normalizes loosely shaped data payloads into a canonical
// labels-plus-series form and renders them as terminal bar charts.
//
// Normalization never panics past the caller: unrecognized shapes come back
// as a typed ShapeError carrying the raw payload, which the UI shows in an
// inline error panel rather than logging and hiding.
package chart
