// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command handler for the deskchat CLI.
//
// Handles "deskchat status": backend reachability, agent mode, and the
// state of the conversation and query stores.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/deskchat-tui/internal/config"
	"github.com/jeranaias/deskchat-tui/internal/storage"
)

// statusOutput is the machine-readable shape emitted with --json.
type statusOutput struct {
	BackendURL     string `json:"backend_url"`
	BackendOnline  bool   `json:"backend_online"`
	BackendError   string `json:"backend_error,omitempty"`
	AgentMode      string `json:"agent_mode"`
	HistoryEnabled bool   `json:"history_enabled"`
	Conversations  int    `json:"conversations"`
	QueriesEnabled bool   `json:"queries_enabled"`
	SavedQueries   int    `json:"saved_queries"`
}

// RunStatus prints backend and store status.
func RunStatus(args *Args, cfg *config.Config) int {
	out := statusOutput{
		BackendURL:     cfg.Backend.URL,
		AgentMode:      cfg.Backend.AgentMode,
		HistoryEnabled: cfg.History.Enabled,
		QueriesEnabled: cfg.Queries.Enabled,
	}

	client := newClient(args, cfg)
	if client.IsConfigured() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Health(ctx)
		cancel()
		out.BackendOnline = err == nil
		if err != nil {
			out.BackendError = err.Error()
		}
	}

	if cfg.History.Enabled {
		if dir, err := cfg.HistoryDir(); err == nil {
			if store, err := storage.NewConversationStoreWithDir(dir); err == nil {
				if sessions, err := store.List(); err == nil {
					out.Conversations = len(sessions)
				}
			}
		}
	}

	if cfg.Queries.Enabled {
		if path, err := cfg.QueriesPath(); err == nil {
			if store, err := storage.OpenQueryStore(path); err == nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if n, err := store.Count(ctx); err == nil {
					out.SavedQueries = n
				}
				cancel()
				store.Close()
			}
		}
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fatalf("encode output: %v", err)
		}
		return 0
	}

	fmt.Println(TitleStyle.Render("deskchat status"))

	backendValue := DimStyle.Render("not configured")
	if out.BackendURL != "" {
		if out.BackendOnline {
			backendValue = SuccessStyle.Render("up") + "  " + ValueStyle.Render(out.BackendURL)
		} else {
			backendValue = ErrorStyle.Render("down") + "  " + ValueStyle.Render(out.BackendURL)
			if out.BackendError != "" {
				backendValue += "\n" + RenderLabel("") + DimStyle.Render(out.BackendError)
			}
		}
	}
	fmt.Println(RenderLabel("Backend") + backendValue)
	fmt.Println(RenderLabel("Mode") + ValueStyle.Render(out.AgentMode))

	if out.HistoryEnabled {
		fmt.Println(RenderLabel("History") + ValueStyle.Render(fmt.Sprintf("%d conversations", out.Conversations)))
	} else {
		fmt.Println(RenderLabel("History") + DimStyle.Render("disabled"))
	}

	if out.QueriesEnabled {
		fmt.Println(RenderLabel("Queries") + ValueStyle.Render(fmt.Sprintf("%d saved", out.SavedQueries)))
	} else {
		fmt.Println(RenderLabel("Queries") + DimStyle.Render("disabled"))
	}

	return 0
}
