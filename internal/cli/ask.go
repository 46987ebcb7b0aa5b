// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler for the deskchat CLI.
//
// Handles "deskchat ask", which sends one prompt to the desk assistant
// service and prints the classified answer to stdout.
//
// Examples:
//
//	deskchat ask "show my USD trades"
//	deskchat ask --mode precise "write the query for open EUR positions"
//	deskchat ask --json "total pnl by desk"
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/deskchat-tui/internal/backend"
	"github.com/jeranaias/deskchat-tui/internal/config"
	"github.com/jeranaias/deskchat-tui/internal/extract"
	"github.com/jeranaias/deskchat-tui/internal/model"
)

// =============================================================================
// ASK COMMAND
// =============================================================================

// askOutput is the machine-readable shape emitted with --json.
type askOutput struct {
	TurnID   string         `json:"turn_id"`
	Format   string         `json:"format"`
	Response string         `json:"response"`
	Table    *extract.Table `json:"table,omitempty"`
	Elapsed  string         `json:"elapsed"`
}

// RunAsk sends a single question and prints the answer.
func RunAsk(args *Args, cfg *config.Config) int {
	if args.Query == "" {
		return fatalf("ask requires a question, e.g. deskchat ask \"show my trades\"")
	}

	client := newClient(args, cfg)
	if !client.IsConfigured() {
		return fatalf("no backend configured; set backend.url in ~/.deskchat/config.toml or DESKCHAT_BACKEND_URL")
	}

	if !args.Quiet && !args.JSON {
		fmt.Println(DimStyle.Render("Asking " + client.BaseURL() + " ..."))
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout(cfg))
	defer cancel()

	turnID := backend.NewTurnID()
	start := time.Now()
	result, err := client.Ask(ctx, turnID, args.Query)
	elapsed := time.Since(start)
	if err != nil {
		return fatalf("%v", err)
	}

	format, table := extract.Extract(result.Response)

	if args.JSON {
		out := askOutput{
			TurnID:   result.TurnID,
			Format:   format.String(),
			Response: result.Response,
			Table:    table,
			Elapsed:  elapsed.Round(time.Millisecond).String(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fatalf("encode output: %v", err)
		}
		return 0
	}

	fmt.Println(RenderAnswer(result.Response, format, table, cfg))

	if args.Verbose {
		fmt.Println(DimStyle.Render(fmt.Sprintf("format=%s elapsed=%s turn=%s",
			format, elapsed.Round(time.Millisecond), result.TurnID)))
	}
	return 0
}

// =============================================================================
// SHARED CLIENT SETUP
// =============================================================================

// newClient builds a backend client from config plus CLI overrides.
func newClient(args *Args, cfg *config.Config) *backend.Client {
	mode := cfg.Backend.AgentMode
	if args.Mode != "" {
		mode = args.Mode
	}

	client := backend.NewClient(cfg.Backend.URL).
		WithAgentMode(model.GetMode(mode).Name).
		WithMaxRetries(cfg.Backend.MaxRetries)
	if cfg.Backend.TimeoutSecs > 0 {
		client = client.WithTimeout(time.Duration(cfg.Backend.TimeoutSecs) * time.Second)
	}
	return client
}

// askTimeout returns the per-request context timeout.
func askTimeout(cfg *config.Config) time.Duration {
	secs := cfg.Backend.TimeoutSecs
	if secs <= 0 {
		secs = 120
	}
	return time.Duration(secs) * time.Second
}
