// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package extract turns free-form assistant responses into structured data.
//
// The trading assistant backend answers in plain text. When the answer was
// produced by a data function it follows one of a few known textual shapes:
// pipe/colon delimited trade records, enumerated Python-style dictionary
// literals for PNL rows, or raw SQL. This package classifies a response and,
// where a grammar applies, extracts an ordered table of rows and columns.
//
// Classification and extraction are pure functions of the response string.
// Extraction failures never propagate as fatal errors; a response that
// matches no grammar (or matches but yields no rows) is rendered as text.
package extract
