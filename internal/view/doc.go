// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package view holds the presentation state for an extracted table: which
// columns are selected for display, in what order, and which rows fall
// inside the visible window. It owns policy (column priority, display caps)
// but no drawing; renderers consume a State and lay it out themselves.
//
// A State is constructed fresh for each new table and mutated only by
// explicit user toggles. The caps are presentational limits: the full table
// stays intact underneath and can always be re-queried or exported.
package view
