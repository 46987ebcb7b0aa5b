// deskchat - A terminal interface for the trading desk assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deskchat-tui/internal/backend"
	"github.com/jeranaias/deskchat-tui/internal/cli"
	"github.com/jeranaias/deskchat-tui/internal/commands"
	"github.com/jeranaias/deskchat-tui/internal/config"
	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/storage"
	"github.com/jeranaias/deskchat-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.ParseCommand(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	if cmd == cli.CmdTUI {
		if !cli.CanRunTUI() {
			// Piped or redirected: the full-screen interface needs a
			// terminal on both ends. Point at the flat commands instead.
			fmt.Fprintln(os.Stderr, "deskchat: not a terminal; use 'deskchat ask' or 'deskchat chat'")
			cli.PrintUsage()
			os.Exit(1)
		}
		os.Exit(runTUI(args, cfg))
	}

	os.Exit(cli.Run(cmd, args, cfg))
}

// runTUI starts the full-screen interface.
func runTUI(args *cli.Args, cfg *config.Config) int {
	// CLI flags override config for this invocation.
	if args.Mode != "" {
		if !model.IsValidMode(args.Mode) {
			fmt.Fprintf(os.Stderr, "Error: unknown agent mode %q\n", args.Mode)
			return 1
		}
		cfg.Backend.AgentMode = model.GetMode(args.Mode).Name
	}

	client := backend.NewClient(cfg.Backend.URL).
		WithAgentMode(cfg.Backend.AgentMode).
		WithMaxRetries(cfg.Backend.MaxRetries).
		WithTimeout(time.Duration(cfg.Backend.TimeoutSecs) * time.Second)

	var store *storage.ConversationStore
	if cfg.History.Enabled {
		dir, err := cfg.HistoryDir()
		if err == nil {
			store, err = storage.NewConversationStoreWithDir(dir)
		}
		if err != nil {
			// History is a convenience; the session still works without it.
			fmt.Fprintf(os.Stderr, "Warning: conversation history unavailable: %v\n", err)
		}
	}

	var queries *storage.QueryStore
	if cfg.Queries.Enabled {
		path, err := cfg.QueriesPath()
		if err == nil {
			queries, err = storage.OpenQueryStore(path)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: saved queries unavailable: %v\n", err)
		}
	}
	if queries != nil {
		defer queries.Close()
	}

	m := chat.New(cfg, client, store, queries)
	m.SetVersion(Version)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Reload config edits while the session runs. The watcher swaps the
	// global config and tells the session; backend changes need a restart.
	if watcher, err := config.NewWatcher(func(*config.Config) {
		p.Send(commands.SystemMessageMsg{Content: "Configuration reloaded from disk. Restart to apply backend changes."})
	}); err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		} else {
			watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running deskchat: %v\n", err)
		return 1
	}
	return 0
}
