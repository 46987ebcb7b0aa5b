// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversations to shareable files for deskchat.
//
// Three formats are supported:
//
//   - JSON: the complete stored conversation, re-importable
//   - Markdown: human-readable, with SQL and tabular answers fenced
//   - HTML: self-contained page with embedded styling
//
// Assistant messages carry their classification ("sql", "trade", "pnl")
// through the export, so a reader can tell a query answer from prose.
//
// # Usage
//
//	stored := storage.FromModel(conversation)
//	path, err := export.ExportMarkdown(stored, export.DefaultOptions())
package export
