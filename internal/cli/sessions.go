// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sessions.go - Saved conversation and saved query listing for the CLI.
//
// Handles "deskchat sessions [search]" and "deskchat queries [search]".
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/deskchat-tui/internal/config"
	"github.com/jeranaias/deskchat-tui/internal/storage"
)

// =============================================================================
// SESSIONS COMMAND
// =============================================================================

// RunSessions lists saved conversations, optionally filtered by a
// search term matched against summaries and message content.
func RunSessions(args *Args, cfg *config.Config) int {
	if !cfg.History.Enabled {
		return fatalf("history is disabled; enable [history] in ~/.deskchat/config.toml")
	}

	dir, err := cfg.HistoryDir()
	if err != nil {
		return fatalf("resolve history dir: %v", err)
	}
	store, err := storage.NewConversationStoreWithDir(dir)
	if err != nil {
		return fatalf("open history: %v", err)
	}

	var sessions []storage.ConversationMeta
	if args.Query != "" {
		sessions, err = store.SearchMessages(args.Query)
	} else {
		sessions, err = store.List()
	}
	if err != nil {
		return fatalf("list conversations: %v", err)
	}

	if len(sessions) == 0 {
		if args.Query != "" {
			fmt.Println(DimStyle.Render("No conversations match " + args.Query + "."))
		} else {
			fmt.Println(DimStyle.Render("No saved conversations. Use /save inside deskchat to keep one."))
		}
		return 0
	}

	fmt.Print(storage.FormatSessionList(sessions))
	return 0
}

// =============================================================================
// QUERIES COMMAND
// =============================================================================

// RunQueries lists saved SQL queries, optionally filtered by a search
// term matched against names and statement text.
func RunQueries(args *Args, cfg *config.Config) int {
	if !cfg.Queries.Enabled {
		return fatalf("saved queries are disabled; enable [queries] in ~/.deskchat/config.toml")
	}

	path, err := cfg.QueriesPath()
	if err != nil {
		return fatalf("resolve queries path: %v", err)
	}
	store, err := storage.OpenQueryStore(path)
	if err != nil {
		return fatalf("open query store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var queries []storage.SavedQuery
	if args.Query != "" {
		queries, err = store.Search(ctx, args.Query)
	} else {
		queries, err = store.List(ctx)
	}
	if err != nil {
		return fatalf("list queries: %v", err)
	}

	if len(queries) == 0 {
		if args.Query != "" {
			fmt.Println(DimStyle.Render("No saved queries match " + args.Query + "."))
		} else {
			fmt.Println(DimStyle.Render("No saved queries. Use /keep inside deskchat after a SQL answer."))
		}
		return 0
	}

	fmt.Println(TitleStyle.Render("Saved queries"))
	for _, q := range queries {
		header := HighlightStyle.Render(q.Name) +
			DimStyle.Render(fmt.Sprintf("  used %d times, saved %s", q.UseCount, q.CreatedAt.Format("2006-01-02")))
		fmt.Println(header)
		fmt.Println(ValueStyle.Render("  " + firstQueryLine(q.SQL)))
	}
	return 0
}

// firstQueryLine returns the first line of a statement for compact listings.
func firstQueryLine(sql string) string {
	for i := 0; i < len(sql); i++ {
		if sql[i] == '\n' {
			return sql[:i] + " ..."
		}
	}
	return sql
}
