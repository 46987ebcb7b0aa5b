// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
//
// This package handles parsing and executing slash commands in the chat
// interface. Handlers return bubbletea commands that carry typed messages
// back to the app; the app owns the state changes.
//
// # Key Types
//
//   - Registry: Command registry with all available commands
//   - Parser: Splits input into command name and arguments
//   - ParseResult: Parsed command with name and arguments
//   - Context: Dependencies handlers may use (storage, query store)
//
// # Built-in Commands
//
//   - /help: Show available commands
//   - /toggle: Show or hide a table column
//   - /chart: Chart the last result
//   - /keep, /queries, /recall, /forget: Saved query management
//   - /mode: Switch agent mode
//   - /save, /load, /sessions, /export: Conversation persistence
//
// # Usage
//
// Parse and execute a command:
//
//	result := parser.Parse(input)
//	if result.IsCommand && result.Command != nil {
//	    return result.Command.Handler(ctx, result.Args)
//	}
package commands
