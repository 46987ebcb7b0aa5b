// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
	StatusError
	StatusIdle
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusThinking:
		return "Thinking..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status, distinct from its color
// so colorblind users can still tell states apart.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusThinking:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar: agent mode, backend health,
// conversation size, and keyboard hints.
type StatusBar struct {
	AgentMode     string // balanced/precise/creative
	BackendOnline bool
	BackendURL    string
	MessageCount  int
	Status        Status
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		AgentMode:     "balanced",
		BackendOnline: true,
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetAgentMode updates the displayed agent mode.
func (s *StatusBar) SetAgentMode(mode string) {
	s.AgentMode = mode
}

// SetBackend updates the backend health display.
func (s *StatusBar) SetBackend(url string, online bool) {
	s.BackendURL = url
	s.BackendOnline = online
}

// SetMessageCount updates the conversation size display.
func (s *StatusBar) SetMessageCount(n int) {
	s.MessageCount = n
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// View renders the status bar, choosing a layout for the current width.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: [B] * Ready
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	modeChar := "?"
	if s.AgentMode != "" {
		modeChar = strings.ToUpper(string([]rune(s.AgentMode)[0]))
	}
	parts = append(parts, s.theme.ModeStyle(s.AgentMode).Render(modeChar))

	parts = append(parts, s.renderBackendDot())

	statusText := s.getStatusStyle().Render(s.Status.Icon())
	parts = append(parts, statusText)

	result := strings.Join(parts, " ")

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar.
// Format: balanced | backend up | 12 msgs | Ready
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{
		s.theme.ModeStyle(s.AgentMode).Render(s.AgentMode),
		s.renderBackendBadge(),
		s.renderMessageCount(),
		s.getStatusStyle().Render(s.Status.String()),
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(strings.Join(parts, separator))
}

// viewWide renders the full status bar: mode and backend on the left,
// message count in the center, status and shortcuts on the right.
func (s *StatusBar) viewWide() string {
	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	leftParts := []string{
		s.theme.ModeStyle(s.AgentMode).Render(strings.ToUpper(s.AgentMode)),
		s.renderBackendBadge(),
	}
	if s.BackendURL != "" {
		urlText := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(truncateURL(s.BackendURL, 32))
		leftParts = append(leftParts, urlText)
	}
	leftSection := strings.Join(leftParts, leftSep)

	centerSection := s.renderMessageCount()

	rightParts := []string{s.getStatusStyle().Render(s.Status.String())}
	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}
	rightSection := strings.Join(rightParts, " ")

	leftWidth := lipgloss.Width(leftSection)
	centerWidth := lipgloss.Width(centerSection)
	rightWidth := lipgloss.Width(rightSection)

	spacing := s.Width - leftWidth - centerWidth - rightWidth - 4
	if spacing < 4 {
		spacing = 4
	}
	leftSpace := strings.Repeat(" ", spacing/2)
	rightSpace := strings.Repeat(" ", spacing-spacing/2)

	result := leftSection + leftSpace + centerSection + rightSpace + rightSection

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

func (s *StatusBar) renderBackendBadge() string {
	if s.BackendOnline {
		return s.theme.BackendOnline.Render("backend up")
	}
	return s.theme.BackendDown.Render("backend down")
}

func (s *StatusBar) renderBackendDot() string {
	if s.BackendOnline {
		return s.theme.BackendOnline.Render(styles.StatusIndicators.Success)
	}
	return s.theme.BackendDown.Render(styles.StatusIndicators.Error)
}

func (s *StatusBar) renderMessageCount() string {
	label := "msgs"
	if s.MessageCount == 1 {
		label = "msg"
	}
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(strconv.Itoa(s.MessageCount) + " " + label)
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	shortcuts := []string{
		s.theme.ShortcutKey.Render("/help") + s.theme.ShortcutDesc.Render("cmds"),
		s.theme.ShortcutKey.Render("^C") + s.theme.ShortcutDesc.Render("quit"),
	}
	return strings.Join(shortcuts, " ")
}

// getStatusStyle returns the style for the current status, bold with high
// contrast colors.
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusThinking:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}

// truncateURL shortens a backend URL for display, keeping the host part.
func truncateURL(url string, maxLen int) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	runes := []rune(trimmed)
	if len(runes) <= maxLen {
		return trimmed
	}
	return string(runes[:maxLen-3]) + "..."
}
