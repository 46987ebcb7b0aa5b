// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for deskchat.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/deskchat-tui/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdStatus
	CmdSessions
	CmdQueries
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format
	Mode    string

	// Command-specific
	Query      string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `deskchat - Trading Desk Assistant

Deskchat talks to the desk assistant service and renders its answers:
SQL statements get highlighting, trade and P&L results become tables.

Usage:
  deskchat                    Start the TUI (default)
  deskchat ask "question"     Ask a single question and print the answer
  deskchat chat               Interactive chat without the full TUI
  deskchat status             Show backend and store status
  deskchat sessions [search]  List saved conversations
  deskchat queries [search]   List saved SQL queries
  deskchat version            Show version information
  deskchat help               Show this help

Flags:
  --mode NAME     Agent mode for this invocation (balanced, precise, creative)
  --json          Output machine-readable JSON (ask, status)
  -q, --quiet     Minimal output
  -v, --verbose   Verbose output

Examples:
  deskchat ask "show my USD trades"
  deskchat ask --json "total pnl by desk"
  deskchat ask --mode precise "write the query for open EUR positions"
  deskchat sessions pnl

Configuration lives at ~/.deskchat/config.toml. Environment overrides:
  DESKCHAT_BACKEND_URL, DESKCHAT_AGENT_MODE, DESKCHAT_THEME
`

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// ParseCommand parses os.Args-style arguments into a command and its
// options. The first non-flag argument selects the command; everything
// after it belongs to the command.
func ParseCommand(argv []string) (Command, *Args) {
	args := &Args{Raw: argv}
	parser := NewArgParser(argv)

	args.Quiet = parser.BoolFlag("quiet") || parser.BoolFlag("q")
	args.Verbose = parser.BoolFlag("verbose") || parser.BoolFlag("v")
	args.JSON = parser.BoolFlag("json")
	args.Mode = parser.Flag("mode")

	if parser.BoolFlag("help") || parser.BoolFlag("h") {
		return CmdHelp, args
	}
	if parser.BoolFlag("version") || parser.BoolFlag("V") {
		return CmdVersion, args
	}

	if parser.PositionalCount() == 0 {
		return CmdTUI, args
	}

	cmd := parser.Subcommand()
	args.Subcommand = parser.Positional(1)
	args.Query = strings.Join(parser.PositionalFrom(1), " ")

	switch cmd {
	case "ask":
		return CmdAsk, args
	case "chat":
		return CmdChat, args
	case "status", "s":
		return CmdStatus, args
	case "sessions", "session", "list":
		return CmdSessions, args
	case "queries", "query":
		return CmdQueries, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		// Unknown word: treat the whole line as an ask query.
		args.Query = strings.Join(parser.PositionalFrom(0), " ")
		return CmdAsk, args
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run executes a parsed CLI command and returns a process exit code.
// CmdTUI is handled by the caller (it needs the bubbletea program).
func Run(cmd Command, args *Args, cfg *config.Config) int {
	switch cmd {
	case CmdAsk:
		return RunAsk(args, cfg)
	case CmdChat:
		return RunChat(args, cfg)
	case CmdStatus:
		return RunStatus(args, cfg)
	case CmdSessions:
		return RunSessions(args, cfg)
	case CmdQueries:
		return RunQueries(args, cfg)
	case CmdVersion:
		PrintVersion()
		return 0
	case CmdHelp:
		PrintUsage()
		return 0
	default:
		PrintUsage()
		return 1
	}
}

// PrintUsage prints the top-level usage text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("deskchat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// fatalf prints an error to stderr in the CLI error style.
func fatalf(format string, a ...any) int {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+fmt.Sprintf(format, a...))
	return 1
}
