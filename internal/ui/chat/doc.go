// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive chat screen for deskchat.
//
// The package is organized around the bubbletea Model/Update/View cycle:
//
//   - model.go: the root Model, session state, and construction
//   - update.go: message handling, prompt submission, turn results
//   - view.go: transcript rendering and the help overlay
//   - messages.go: backend turn commands and their result messages
//   - keys.go: keyboard bindings
//
// Each prompt gets a fresh turn ID. The conversation tracks the active
// turn, and results arriving for a superseded turn (after /clear or a
// session switch) are dropped without touching the transcript.
//
// Assistant answers are classified on arrival (text, sql, trade, pnl).
// SQL answers render with a highlighted statement block; tabular answers
// get a column-toggleable table panel, and the latest one can be charted
// with /chart.
package chat
