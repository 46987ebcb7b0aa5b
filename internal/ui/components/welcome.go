// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the welcome screen shown before the first question.
type Welcome struct {
	version    string
	backendURL string
	mode       string

	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		mode:    "balanced",
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetBackendURL sets the backend URL line.
func (w *Welcome) SetBackendURL(url string) {
	w.backendURL = url
}

// SetMode sets the agent mode line.
func (w *Welcome) SetMode(mode string) {
	w.mode = mode
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen, centered in the terminal. Minimum
// 80x24 supported; narrower terminals get a compact logo.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	boxWidth := 62
	if width < 70 {
		boxWidth = width - 8
	}
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	horizontalPadding := 4
	if width < 70 {
		horizontalPadding = 2
	}

	content := w.renderLogo()
	content += "\n\n" + w.renderVersion()
	content += "\n\n" + w.renderSystemInfo()
	content += "\n\n" + w.renderQuickStart()

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Purple).
		Padding(1, horizontalPadding).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(content)

	if lipgloss.Height(box) >= height {
		// Box is taller than the terminal: align top so the header stays
		// visible instead of cutting it off.
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, box)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// renderLogo renders the ASCII art logo, compact for narrow terminals.
func (w Welcome) renderLogo() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	if w.width >= 60 {
		logo := `     _           _        _           _
  __| | ___  ___| | _____| |__   __ _| |_
 / _` + "`" + ` |/ _ \/ __| |/ / __| '_ \ / _` + "`" + ` | __|
| (_| |  __/\__ \   < (__| | | | (_| | |_
 \__,_|\___||___/_|\_\___|_| |_|\__,_|\__|
                                          `
		return logoStyle.Render(logo)
	}

	if w.width >= 40 {
		return logoStyle.Render(`+--------------------+
|      deskchat      |
+--------------------+`)
	}

	return logoStyle.Render("deskchat - Trading Desk Assistant")
}

// renderVersion renders the version subtitle.
func (w Welcome) renderVersion() string {
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("Trading Desk Assistant v" + w.version)
}

// renderSystemInfo renders backend and mode info.
func (w Welcome) renderSystemInfo() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(10)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	backendLine := valueStyle.Render(truncateURL(w.backendURL, 40))
	if w.backendURL == "" {
		backendLine = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true).
			Render("not configured")
	}

	lines := []string{
		labelStyle.Render("Backend: ") + backendLine,
		labelStyle.Render("Mode:    ") + w.theme.ModeStyle(w.mode).Render(w.mode),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderQuickStart renders the quick start tips.
func (w Welcome) renderQuickStart() string {
	bulletStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	tipStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	tips := []string{
		bulletStyle.Render("-") + tipStyle.Render(" Ask about deals, pnl, or positions"),
		bulletStyle.Render("-") + tipStyle.Render(" Use /help to see all commands"),
		bulletStyle.Render("-") + tipStyle.Render(" Use /toggle <column> to pick table columns"),
		bulletStyle.Render("-") + tipStyle.Render(" Press Ctrl+C to quit"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, tips...)
}

// =============================================================================
// KEYBOARD SHORTCUT HELP
// =============================================================================

// KeyboardShortcuts returns a formatted list of keyboard shortcuts.
func KeyboardShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send question"},
		{"Ctrl+C", "Quit"},
		{"Ctrl+L", "Clear conversation"},
		{"Up/Down", "Scroll messages"},
		{"PgUp/PgDn", "Page scroll"},
		{"Esc", "Dismiss"},
	}

	lines := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		lines[i] = keyStyle.Render(s.key) + descStyle.Render(s.desc)
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Bold(true)

	return titleStyle.Render("Keyboard Shortcuts") + "\n" +
		lipgloss.JoinVertical(lipgloss.Left, lines...)
}
