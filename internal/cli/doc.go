// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for deskchat.
//
// The CLI covers the non-TUI surface: one-shot questions, a plain
// readline chat loop, and listings of saved conversations and queries.
// Answers go through the same classification pipeline as the TUI
// (text, sql, trade, pnl) but render flat for pipes and dumb terminals.
//
// # Key Types
//
//   - Command: enumeration of CLI commands
//   - Args: parsed command-line arguments
//   - ArgParser: shared flag/positional parsing
//
// # Usage
//
//	cmd, args := cli.ParseCommand(os.Args[1:])
//	if cmd == cli.CmdTUI {
//	    // launch the bubbletea program
//	}
//	os.Exit(cli.Run(cmd, args, cfg))
//
// Output honors NO_COLOR and disables styling when stdout is not a
// terminal, so "deskchat ask --json" is safe to pipe into jq.
package cli
