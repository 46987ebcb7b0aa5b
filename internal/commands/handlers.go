// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/storage"
)

// queryStoreTimeout bounds the sqlite round trip a handler may block on.
const queryStoreTimeout = 5 * time.Second

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// HandlerContext carries per-turn state the app fills in before
// dispatching a command.
type HandlerContext struct {
	// CurrentMode is the active agent mode
	CurrentMode string

	// ConversationID is the current conversation ID
	ConversationID string

	// LastSQL is the statement from the most recent SQL-classified
	// answer, used by /keep
	LastSQL string

	// LastResponse is the last assistant response text
	LastResponse string
}

// SessionInfo contains metadata about a saved conversation.
type SessionInfo struct {
	ID        string
	Title     string
	Mode      string
	Preview   string
	UpdatedAt string
	MsgCount  int
}

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// These messages are sent by command handlers to update the application state.

// ShowHelpMsg triggers the help display.
type ShowHelpMsg struct {
	Topic string
}

// ClearConversationMsg triggers clearing the conversation.
type ClearConversationMsg struct{}

// SaveConversationMsg triggers saving the current conversation.
type SaveConversationMsg struct {
	Name string
}

// SaveCompleteMsg indicates save completion.
type SaveCompleteMsg struct {
	ID    string
	Name  string
	Error error
}

// ConversationLoadedMsg contains the loaded conversation data.
type ConversationLoadedMsg struct {
	Conversation *storage.StoredConversation
	Error        error
}

// SessionListMsg contains the list of saved conversations.
type SessionListMsg struct {
	Sessions []SessionInfo
	Error    error
}

// ExportConversationMsg triggers exporting the conversation.
type ExportConversationMsg struct {
	Format string // "json", "markdown", "html"
}

// ExportCompleteMsg indicates export completion.
type ExportCompleteMsg struct {
	Path  string
	Error error
}

// ToggleColumnMsg flips a table column's visibility.
type ToggleColumnMsg struct {
	Column string
}

// ChartRequestMsg asks the app to chart the last structured result.
type ChartRequestMsg struct{}

// ChartReleaseMsg drops the live chart.
type ChartReleaseMsg struct{}

// ModeSwitchMsg indicates an agent mode switch request.
type ModeSwitchMsg struct {
	Mode string
}

// QuerySavedMsg indicates a /keep completed.
type QuerySavedMsg struct {
	Query *storage.SavedQuery
	Error error
}

// QueryListMsg contains saved queries for display.
type QueryListMsg struct {
	Queries []storage.SavedQuery
	Error   error
}

// QueryRecalledMsg carries a recalled saved query.
type QueryRecalledMsg struct {
	Query *storage.SavedQuery
	Error error
}

// QueryDeletedMsg indicates a /forget completed.
type QueryDeletedMsg struct {
	Name  string
	Error error
}

// ShowStatusMsg triggers showing detailed status.
type ShowStatusMsg struct{}

// ErrorMsg indicates an error occurred.
type ErrorMsg struct {
	Title   string
	Message string
	Tip     string
}

// SystemMessageMsg adds a system message to the chat.
type SystemMessageMsg struct {
	Content string
}

// =============================================================================
// NAVIGATION HANDLERS
// =============================================================================

// HandleHelp shows help information.
func HandleHelp(ctx *Context, args []string) tea.Cmd {
	topic := ""
	if len(args) > 0 {
		topic = args[0]
	}
	return func() tea.Msg {
		return ShowHelpMsg{Topic: topic}
	}
}

// HandleQuit exits the application.
func HandleQuit(ctx *Context, args []string) tea.Cmd {
	return tea.Quit
}

// =============================================================================
// CONVERSATION HANDLERS
// =============================================================================

// HandleNew starts a new conversation.
func HandleNew(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ClearConversationMsg{}
	}
}

// HandleClear clears the conversation history.
func HandleClear(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ClearConversationMsg{}
	}
}

// HandleSave saves the current conversation.
func HandleSave(ctx *Context, args []string) tea.Cmd {
	name := ""
	if len(args) > 0 {
		name = strings.Join(args, " ")
	}
	return func() tea.Msg {
		return SaveConversationMsg{Name: name}
	}
}

// HandleLoad loads a saved conversation. Without an ID it falls back to
// the session list.
func HandleLoad(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return HandleSessions(ctx, args)
	}

	sessionID := args[0]

	if ctx == nil || ctx.Storage == nil {
		return errorCmd("Storage unavailable", "conversation store is not configured", "")
	}

	store := ctx.Storage
	return func() tea.Msg {
		conv, err := store.Load(sessionID)
		if err != nil {
			return ConversationLoadedMsg{Error: err}
		}
		return ConversationLoadedMsg{Conversation: conv}
	}
}

// HandleSessions shows the saved conversation list.
func HandleSessions(ctx *Context, args []string) tea.Cmd {
	if ctx == nil || ctx.Storage == nil {
		return errorCmd("Storage unavailable", "conversation store is not configured", "")
	}

	store := ctx.Storage
	return func() tea.Msg {
		metas, err := store.List()
		if err != nil {
			return SessionListMsg{Error: err}
		}

		sessions := make([]SessionInfo, len(metas))
		for i, m := range metas {
			sessions[i] = SessionInfo{
				ID:        m.ID,
				Title:     m.Summary,
				Mode:      m.AgentMode,
				Preview:   m.Preview,
				UpdatedAt: m.UpdatedAt.Format("2006-01-02 15:04"),
				MsgCount:  m.MessageCount,
			}
		}

		return SessionListMsg{Sessions: sessions}
	}
}

// HandleExport exports the conversation.
func HandleExport(ctx *Context, args []string) tea.Cmd {
	format := "markdown"
	if len(args) > 0 {
		format = strings.ToLower(args[0])
		if format == "md" {
			format = "markdown"
		} else if format == "htm" {
			format = "html"
		}
	}

	switch format {
	case "markdown", "html", "json":
	default:
		return errorCmd(
			"Invalid export format",
			fmt.Sprintf("Unknown format: %s", format),
			"Supported formats: markdown, html, json",
		)
	}

	return func() tea.Msg {
		return ExportConversationMsg{Format: format}
	}
}

// =============================================================================
// TABLE AND CHART HANDLERS
// =============================================================================

// HandleToggle flips a table column's visibility.
func HandleToggle(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Missing column", "usage: /toggle <column>", "")
	}
	column := args[0]
	return func() tea.Msg {
		return ToggleColumnMsg{Column: column}
	}
}

// HandleChart charts the last result, or releases the chart with "off".
func HandleChart(ctx *Context, args []string) tea.Cmd {
	if len(args) > 0 && strings.EqualFold(args[0], "off") {
		return func() tea.Msg {
			return ChartReleaseMsg{}
		}
	}
	return func() tea.Msg {
		return ChartRequestMsg{}
	}
}

// =============================================================================
// SAVED QUERY HANDLERS
// =============================================================================

// HandleKeep saves the most recent SQL answer under a name.
func HandleKeep(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Missing name", "usage: /keep <name>", "")
	}
	if ctx == nil || ctx.Queries == nil {
		return errorCmd("Query store unavailable", "saved queries are not configured", "")
	}
	if ctx.HandlerCtx == nil || ctx.HandlerCtx.LastSQL == "" {
		return errorCmd(
			"Nothing to keep",
			"no SQL answer in this conversation yet",
			"Ask a question that produces a SQL statement first.",
		)
	}

	name := args[0]
	sqlText := ctx.HandlerCtx.LastSQL
	queries := ctx.Queries

	return func() tea.Msg {
		qctx, cancel := context.WithTimeout(context.Background(), queryStoreTimeout)
		defer cancel()

		q, err := queries.Save(qctx, name, sqlText)
		return QuerySavedMsg{Query: q, Error: err}
	}
}

// HandleQueries lists saved queries, optionally filtered.
func HandleQueries(ctx *Context, args []string) tea.Cmd {
	if ctx == nil || ctx.Queries == nil {
		return errorCmd("Query store unavailable", "saved queries are not configured", "")
	}

	search := strings.Join(args, " ")
	queries := ctx.Queries

	return func() tea.Msg {
		qctx, cancel := context.WithTimeout(context.Background(), queryStoreTimeout)
		defer cancel()

		list, err := queries.Search(qctx, search)
		return QueryListMsg{Queries: list, Error: err}
	}
}

// HandleRecall recalls a saved query by name, bumping its use count.
func HandleRecall(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Missing name", "usage: /recall <name>", "")
	}
	if ctx == nil || ctx.Queries == nil {
		return errorCmd("Query store unavailable", "saved queries are not configured", "")
	}

	name := args[0]
	queries := ctx.Queries

	return func() tea.Msg {
		qctx, cancel := context.WithTimeout(context.Background(), queryStoreTimeout)
		defer cancel()

		q, err := queries.Get(qctx, name)
		if err != nil {
			return QueryRecalledMsg{Error: err}
		}
		if err := queries.MarkUsed(qctx, name); err != nil {
			return QueryRecalledMsg{Error: err}
		}
		return QueryRecalledMsg{Query: q}
	}
}

// HandleForget deletes a saved query.
func HandleForget(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return errorCmd("Missing name", "usage: /forget <name>", "")
	}
	if ctx == nil || ctx.Queries == nil {
		return errorCmd("Query store unavailable", "saved queries are not configured", "")
	}

	name := args[0]
	queries := ctx.Queries

	return func() tea.Msg {
		qctx, cancel := context.WithTimeout(context.Background(), queryStoreTimeout)
		defer cancel()

		err := queries.Delete(qctx, name)
		return QueryDeletedMsg{Name: name, Error: err}
	}
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// HandleMode switches or shows the agent mode.
func HandleMode(ctx *Context, args []string) tea.Cmd {
	if len(args) == 0 {
		current := ""
		if ctx != nil && ctx.HandlerCtx != nil {
			current = ctx.HandlerCtx.CurrentMode
		}

		var sb strings.Builder
		sb.WriteString("Agent modes:\n\n")
		for _, name := range model.ModeNames() {
			info := model.GetMode(name)
			marker := "  "
			if strings.EqualFold(name, current) {
				marker = "* "
			}
			sb.WriteString(fmt.Sprintf("  %s%s\n", marker, info.Describe()))
		}
		sb.WriteString("\nUsage: /mode <name> to switch")

		return func() tea.Msg {
			return SystemMessageMsg{Content: sb.String()}
		}
	}

	if !model.IsValidMode(args[0]) {
		return errorCmd(
			"Unknown mode",
			fmt.Sprintf("%q is not an agent mode", args[0]),
			"Modes: "+strings.Join(model.ModeNames(), ", "),
		)
	}

	// Carry the canonical name regardless of how the user typed it.
	name := model.GetMode(args[0]).Name
	return func() tea.Msg {
		return ModeSwitchMsg{Mode: name}
	}
}

// HandleStatus shows detailed status.
func HandleStatus(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ShowStatusMsg{}
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func errorCmd(title, message, tip string) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Title: title, Message: message, Tip: tip}
	}
}
