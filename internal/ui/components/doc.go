// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the deskchat TUI.

Components:

  - MessageBubble: chat message rendering for user, assistant, and
    system roles, including pending and error states
  - SQLBlock: syntax-highlighted SQL answers with line numbers
  - TablePanel: extracted trade and pnl tables over a view state,
    with column toggling hints and a windowed row display
  - ChartPanel: the single live chart of the session
  - ErrorPanel: actionable error presentation, including backend
    failures mapped to what-to-try detail lines
  - StatusBar: bottom bar with agent mode, backend health, and status
  - Spinner: in-flight request indicator with elapsed time
  - Welcome: startup screen with backend and mode info

All components render through the styles package theme so light and
dark terminals both get readable output.
*/
package components
