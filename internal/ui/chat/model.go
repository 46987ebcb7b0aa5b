// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deskchat-tui/internal/backend"
	"github.com/jeranaias/deskchat-tui/internal/commands"
	"github.com/jeranaias/deskchat-tui/internal/config"
	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/storage"
	"github.com/jeranaias/deskchat-tui/internal/ui/components"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
	"github.com/jeranaias/deskchat-tui/internal/view"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// State represents the chat session's interaction state.
type State int

const (
	// StateReady accepts input.
	StateReady State = iota

	// StateWaiting has a turn in flight; input is held until the
	// result (or timeout) comes back.
	StateWaiting

	// StateError is showing a dismissable error.
	StateError
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the root bubbletea model for the chat interface.
type Model struct {
	// Wiring
	cfg     *config.Config
	theme   *styles.Theme
	client  *backend.Client
	store   *storage.ConversationStore
	queries *storage.QueryStore

	// Conversation state
	conversation *model.Conversation
	tableState   *view.State
	lastFormat   string
	chartView    string
	lastErr      error

	// Command dispatch
	registry   *commands.Registry
	parser     *commands.Parser
	cmdCtx     *commands.Context
	handlerCtx *commands.HandlerContext

	// Components
	keys       KeyMap
	viewport   viewport.Model
	input      textinput.Model
	spinner    components.Spinner
	statusBar  *components.StatusBar
	welcome    components.Welcome
	chartPanel *components.ChartPanel

	// Layout
	width  int
	height int
	ready  bool

	// Flags
	state    State
	showHelp bool
	version  string
}

// New creates the chat model. store and queries may be nil when the
// corresponding feature is disabled in config.
func New(cfg *config.Config, client *backend.Client, store *storage.ConversationStore, queries *storage.QueryStore) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask about trades, P&L, or type /help"
	input.CharLimit = 4096
	input.Width = 76
	input.Focus()

	// The config may carry any casing; the canonical ModeInfo.Name is
	// what gets stored, compared, and sent to the backend.
	mode := model.GetMode(cfg.Backend.AgentMode).Name

	registry := commands.NewRegistry()
	handlerCtx := &commands.HandlerContext{
		CurrentMode: mode,
	}
	cmdCtx := commands.NewContext(cfg, client, store, queries).
		WithHandlerContext(handlerCtx)

	statusBar := components.NewStatusBar(theme)
	statusBar.SetAgentMode(mode)
	statusBar.SetBackend(client.BaseURL(), false)

	welcome := components.NewWelcome(theme)
	welcome.SetBackendURL(client.BaseURL())
	welcome.SetMode(mode)

	return Model{
		cfg:          cfg,
		theme:        theme,
		client:       client,
		store:        store,
		queries:      queries,
		conversation: model.NewConversationWithMode(mode),
		registry:     registry,
		parser:       commands.NewParser(registry),
		cmdCtx:       cmdCtx,
		handlerCtx:   handlerCtx,
		keys:         DefaultKeyMap(),
		input:        input,
		spinner:      components.NewThinkingSpinner(),
		statusBar:    statusBar,
		welcome:      welcome,
		chartPanel:   components.NewChartPanel(80, theme),
		state:        StateReady,
		version:      "dev",
	}
}

// SetVersion records the build version shown on the welcome screen.
func (m *Model) SetVersion(v string) {
	m.version = v
	m.welcome.SetVersion(v)
}

// Conversation exposes the active conversation, mainly for tests.
func (m *Model) Conversation() *model.Conversation {
	return m.conversation
}

// TableState exposes the current table view state, mainly for tests.
func (m *Model) TableState() *view.State {
	return m.tableState
}

// askTimeout converts the configured per-request timeout.
func (m *Model) askTimeout() time.Duration {
	secs := m.cfg.Backend.TimeoutSecs
	if secs <= 0 {
		secs = 120
	}
	return time.Duration(secs) * time.Second
}

// Init starts the cursor blink and probes backend health.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		HealthCmd(m.client),
	)
}
