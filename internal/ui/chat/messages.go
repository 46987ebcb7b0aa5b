// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deskchat-tui/internal/backend"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// TurnResultMsg carries a completed backend turn (or its failure) back to
// the update loop. TurnID lets the loop drop results for superseded turns.
type TurnResultMsg struct {
	TurnID  string
	Result  *backend.TurnResult
	Err     error
	Elapsed time.Duration
}

// BackendHealthMsg reports the startup health probe outcome.
type BackendHealthMsg struct {
	Online bool
	Err    error
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// AskCmd sends one prompt to the backend. The returned command blocks in
// its own goroutine; the update loop stays responsive.
func AskCmd(client *backend.Client, turnID, prompt string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		result, err := client.Ask(ctx, turnID, prompt)
		return TurnResultMsg{
			TurnID:  turnID,
			Result:  result,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}

// HealthCmd probes the backend root endpoint.
func HealthCmd(client *backend.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := client.Health(ctx)
		return BackendHealthMsg{Online: err == nil, Err: err}
	}
}
