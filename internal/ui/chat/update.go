// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deskchat-tui/internal/backend"
	"github.com/jeranaias/deskchat-tui/internal/commands"
	"github.com/jeranaias/deskchat-tui/internal/export"
	"github.com/jeranaias/deskchat-tui/internal/extract"
	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/storage"
	"github.com/jeranaias/deskchat-tui/internal/ui/components"
	"github.com/jeranaias/deskchat-tui/internal/view"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles all incoming messages for the chat interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TurnResultMsg:
		return m.handleTurnResult(msg)

	case BackendHealthMsg:
		m.statusBar.SetBackend(m.client.BaseURL(), msg.Online)
		return m, nil

	case commands.ShowHelpMsg:
		m.showHelp = true
		return m, nil

	case commands.ClearConversationMsg:
		return m.handleClear(), nil

	case commands.SaveConversationMsg:
		return m.handleSave(msg.Name), nil

	case commands.SaveCompleteMsg:
		if msg.Error != nil {
			return m.systemMessage("Save failed: " + msg.Error.Error()), nil
		}
		return m.systemMessage("Conversation saved as " + msg.ID + "."), nil

	case commands.ConversationLoadedMsg:
		return m.handleLoaded(msg), nil

	case commands.SessionListMsg:
		return m.handleSessionList(msg), nil

	case commands.ExportConversationMsg:
		return m.handleExport(msg.Format), nil

	case commands.ExportCompleteMsg:
		if msg.Error != nil {
			return m.systemMessage("Export failed: " + msg.Error.Error()), nil
		}
		return m.systemMessage("Exported to " + msg.Path), nil

	case commands.ToggleColumnMsg:
		return m.handleToggle(msg.Column), nil

	case commands.ChartRequestMsg:
		return m.handleChartRequest(), nil

	case commands.ChartReleaseMsg:
		m.chartPanel.Release()
		m.chartView = ""
		return m.systemMessage("Chart released."), nil

	case commands.ModeSwitchMsg:
		return m.handleModeSwitch(msg.Mode), nil

	case commands.QuerySavedMsg:
		if msg.Error != nil {
			return m.systemMessage("Could not save query: " + msg.Error.Error()), nil
		}
		return m.systemMessage(fmt.Sprintf("Kept query %q.", msg.Query.Name)), nil

	case commands.QueryListMsg:
		return m.handleQueryList(msg), nil

	case commands.QueryRecalledMsg:
		return m.handleQueryRecalled(msg), nil

	case commands.QueryDeletedMsg:
		if msg.Error != nil {
			return m.systemMessage("Could not forget query: " + msg.Error.Error()), nil
		}
		return m.systemMessage(fmt.Sprintf("Forgot query %q.", msg.Name)), nil

	case commands.ShowStatusMsg:
		return m.handleStatus(), nil

	case commands.ErrorMsg:
		return m.handleError(msg), nil

	case commands.SystemMessageMsg:
		return m.systemMessage(msg.Content), nil
	}

	// Everything else feeds the text input and viewport.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// LAYOUT
// =============================================================================

// verticalChrome is the height consumed by the input line, spinner slot,
// status bar, and spacing around the message viewport.
const verticalChrome = 7

// handleResize recalculates component layout for a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	m.theme.SetSize(msg.Width, msg.Height)
	m.statusBar.SetWidth(msg.Width)
	m.welcome.SetSize(msg.Width, msg.Height)
	m.chartPanel.SetWidth(msg.Width)
	m.input.Width = max(msg.Width-4, 20)

	vpHeight := max(msg.Height-verticalChrome, 3)
	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}

	m.refreshViewport()
	return m
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.showHelp = false
		if m.state == StateError {
			m.state = StateReady
			m.statusBar.SetStatus(components.StatusReady)
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		return m.handleClear(), nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// PROMPT SUBMISSION
// =============================================================================

// submit dispatches the input line: slash commands run immediately,
// anything else becomes a backend turn. Only one turn runs at a time.
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return m, nil
	}

	if commands.IsCommand(raw) {
		m.input.Reset()
		return m.executeCommand(raw)
	}

	if m.state == StateWaiting {
		// A turn is already in flight; hold the prompt in the input.
		return m, nil
	}

	if !m.client.IsConfigured() {
		m.input.Reset()
		return m.systemMessage("No backend configured. Set backend.url in the config file or DESKCHAT_BACKEND_URL."), nil
	}

	m.input.Reset()
	m.conversation.AddUserMessage(raw)

	turnID := backend.NewTurnID()
	m.conversation.AddAssistantMessage(turnID)

	m.state = StateWaiting
	m.statusBar.SetStatus(components.StatusThinking)
	m.statusBar.SetMessageCount(m.conversation.MessageCount())
	m.refreshViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.spinner.Start(),
		AskCmd(m.client, turnID, raw, m.askTimeout()),
	)
}

// executeCommand parses and runs a slash command.
func (m Model) executeCommand(raw string) (tea.Model, tea.Cmd) {
	result := m.parser.Parse(raw)
	if result.Command == nil {
		return m.systemMessage("Unknown command: /" + result.CommandName + ". Type /help for the command list."), nil
	}

	if err := commands.ValidateArgs(result.Command, result.Args); err != nil {
		return m.systemMessage(err.Error() + "\nUsage: " + result.Command.Usage), nil
	}

	return m, result.Command.Handler(m.cmdCtx, result.Args)
}

// =============================================================================
// TURN RESULTS
// =============================================================================

// handleTurnResult finalizes a backend turn. Results for turns that are
// no longer active (conversation cleared, session switched) are dropped
// without touching the transcript.
func (m Model) handleTurnResult(msg TurnResultMsg) (tea.Model, tea.Cmd) {
	if !m.conversation.IsTurnActive(msg.TurnID) {
		return m, nil
	}
	m.conversation.FinishTurn(msg.TurnID)

	m.spinner.Stop()
	m.state = StateReady

	pending := m.conversation.MessageForTurn(msg.TurnID)
	if pending == nil {
		return m, nil
	}

	if msg.Err != nil {
		pending.Fail(msg.Err.Error())
		m.lastErr = msg.Err
		m.state = StateError
		m.statusBar.SetStatus(components.StatusError)
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	format, table := extract.Extract(msg.Result.Response)
	pending.Complete(msg.Result.Response, format.String(), msg.Elapsed)
	m.lastFormat = format.String()
	m.handlerCtx.LastResponse = msg.Result.Response

	switch {
	case table != nil:
		m.tableState = view.NewState(table)
	case format == extract.FormatTrade || format == extract.FormatPnlDictionary:
		// Tabular markers with no extractable rows. The previous table
		// no longer matches the latest answer, so drop it rather than
		// render it under this response.
		m.tableState = nil
	}
	if format == extract.FormatSQL {
		if stmt := extract.StatementText(extract.SQLLines(msg.Result.Response)); stmt != "" {
			m.handlerCtx.LastSQL = stmt
		}
	}

	m.statusBar.SetStatus(components.StatusReady)
	m.statusBar.SetMessageCount(m.conversation.MessageCount())
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// =============================================================================
// COMMAND MESSAGE HANDLERS
// =============================================================================

func (m Model) handleClear() Model {
	m.conversation.ClearHistory()
	m.tableState = nil
	m.chartPanel.Release()
	m.chartView = ""
	m.lastErr = nil
	m.handlerCtx.LastSQL = ""
	m.handlerCtx.LastResponse = ""
	m.spinner.Stop()
	m.state = StateReady
	m.statusBar.SetStatus(components.StatusReady)
	m.statusBar.SetMessageCount(0)
	m.refreshViewport()
	return m
}

func (m Model) handleSave(name string) Model {
	if m.store == nil || !m.cfg.History.Enabled {
		return m.systemMessage("History is disabled; nothing was saved.")
	}
	if m.conversation.IsEmpty() {
		return m.systemMessage("Nothing to save yet.")
	}

	stored := storage.FromModel(m.conversation)
	if name != "" {
		stored.Summary = name
	}
	id, err := m.store.Save(stored)
	if err != nil {
		return m.systemMessage("Save failed: " + err.Error())
	}
	m.handlerCtx.ConversationID = id
	return m.systemMessage("Conversation saved as " + id + ".")
}

func (m Model) handleLoaded(msg commands.ConversationLoadedMsg) Model {
	if msg.Error != nil {
		return m.systemMessage("Load failed: " + msg.Error.Error())
	}

	m.conversation = msg.Conversation.ToModel()
	m.handlerCtx.ConversationID = msg.Conversation.ID
	if m.conversation.AgentMode != "" {
		// Older saves may carry a non-canonical casing.
		mode := model.GetMode(m.conversation.AgentMode).Name
		m.conversation.AgentMode = mode
		m.handlerCtx.CurrentMode = mode
		m.statusBar.SetAgentMode(mode)
	}
	m.tableState = nil
	m.chartPanel.Release()
	m.chartView = ""
	m.statusBar.SetMessageCount(m.conversation.MessageCount())
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m
}

func (m Model) handleSessionList(msg commands.SessionListMsg) Model {
	if msg.Error != nil {
		return m.systemMessage("Could not list sessions: " + msg.Error.Error())
	}
	if len(msg.Sessions) == 0 {
		return m.systemMessage("No saved conversations. Use /save to keep this one.")
	}

	var sb strings.Builder
	sb.WriteString("Saved conversations:\n")
	for i, s := range msg.Sessions {
		fmt.Fprintf(&sb, "  %d. %s  [%s]  %d msgs  %s\n",
			i+1, s.Title, s.Mode, s.MsgCount, s.UpdatedAt)
	}
	sb.WriteString("Use /load <id> to resume one.")
	return m.systemMessage(sb.String())
}

func (m Model) handleExport(format string) Model {
	if m.conversation.IsEmpty() {
		return m.systemMessage("Nothing to export yet.")
	}

	stored := storage.FromModel(m.conversation)
	opts := export.DefaultOptions()
	opts.OpenAfterExport = false

	var path string
	var err error
	switch format {
	case "json":
		path, err = export.ExportJSON(stored, opts)
	case "html":
		path, err = export.ExportHTML(stored, opts)
	default:
		path, err = export.ExportMarkdown(stored, opts)
	}
	if err != nil {
		return m.systemMessage("Export failed: " + err.Error())
	}
	return m.systemMessage("Exported to " + path)
}

func (m Model) handleToggle(column string) Model {
	if m.tableState == nil {
		return m.systemMessage("No table on screen. Toggle works on the latest tabular answer.")
	}

	m.tableState.Toggle(column)
	m.refreshViewport()
	return m
}

// handleChartRequest charts the latest tabular answer: the first visible
// column becomes the label axis, the second the value axis.
func (m Model) handleChartRequest() Model {
	if m.tableState == nil {
		return m.systemMessage("No table on screen. Chart works on the latest tabular answer.")
	}

	cols := m.tableState.VisibleColumns()
	if len(cols) < 2 {
		return m.systemMessage("Need at least two visible columns to chart.")
	}

	labelCol, valueCol := cols[0], cols[1]
	rows := m.tableState.Table().Rows
	input := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		input = append(input, map[string]any{
			"label": row[labelCol],
			"value": row[valueCol],
		})
	}

	m.chartView = m.chartPanel.Draw(input, valueCol+" by "+labelCol)
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m
}

func (m Model) handleModeSwitch(mode string) Model {
	mode = model.GetMode(mode).Name
	m.client = m.client.WithAgentMode(mode)
	m.cfg.Backend.AgentMode = mode
	m.handlerCtx.CurrentMode = mode
	m.conversation.AgentMode = mode
	m.statusBar.SetAgentMode(mode)
	m.welcome.SetMode(mode)
	return m.systemMessage("Agent mode set to " + mode + ".")
}

func (m Model) handleQueryList(msg commands.QueryListMsg) Model {
	if msg.Error != nil {
		return m.systemMessage("Could not list queries: " + msg.Error.Error())
	}
	if len(msg.Queries) == 0 {
		return m.systemMessage("No saved queries. Use /keep <name> after a SQL answer.")
	}

	var sb strings.Builder
	sb.WriteString("Saved queries:\n")
	for _, q := range msg.Queries {
		fmt.Fprintf(&sb, "  %s  (used %d times)\n    %s\n", q.Name, q.UseCount, firstLine(q.SQL))
	}
	sb.WriteString("Use /recall <name> to bring one back.")
	return m.systemMessage(sb.String())
}

func (m Model) handleQueryRecalled(msg commands.QueryRecalledMsg) Model {
	if msg.Error != nil {
		return m.systemMessage("Could not recall query: " + msg.Error.Error())
	}

	m.handlerCtx.LastSQL = msg.Query.SQL
	return m.systemMessage(fmt.Sprintf("Recalled %q:\n%s", msg.Query.Name, msg.Query.SQL))
}

func (m Model) handleStatus() Model {
	var sb strings.Builder
	sb.WriteString("Status:\n")
	if m.client.IsConfigured() {
		fmt.Fprintf(&sb, "  Backend:  %s\n", m.client.BaseURL())
	} else {
		sb.WriteString("  Backend:  not configured\n")
	}
	fmt.Fprintf(&sb, "  Mode:     %s\n", m.handlerCtx.CurrentMode)
	fmt.Fprintf(&sb, "  Messages: %d\n", m.conversation.MessageCount())
	fmt.Fprintf(&sb, "  History:  %s\n", enabledLabel(m.cfg.History.Enabled && m.store != nil))
	fmt.Fprintf(&sb, "  Queries:  %s", enabledLabel(m.cfg.Queries.Enabled && m.queries != nil))
	return m.systemMessage(sb.String())
}

func (m Model) handleError(msg commands.ErrorMsg) Model {
	text := msg.Title
	if msg.Message != "" {
		text += ": " + msg.Message
	}
	if msg.Tip != "" {
		text += "\nTip: " + msg.Tip
	}
	return m.systemMessage(text)
}

// =============================================================================
// HELPERS
// =============================================================================

// systemMessage appends a system line to the transcript and refreshes.
func (m Model) systemMessage(content string) Model {
	m.conversation.AddSystemMessage(content)
	m.statusBar.SetMessageCount(m.conversation.MessageCount())
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func enabledLabel(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
