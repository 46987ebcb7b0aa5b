// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/ui/components"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
)

// =============================================================================
// VIEW COMPOSITION
// =============================================================================

// View renders the full chat interface.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var sections []string

	if m.conversation.IsEmpty() {
		sections = append(sections, m.welcome.View())
	} else {
		sections = append(sections, m.viewport.View())
	}

	if m.spinner.IsActive() {
		sections = append(sections, m.spinner.View())
	}

	sections = append(sections, m.renderInput())
	sections = append(sections, m.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderInput renders the prompt line.
func (m Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("> ")
	return "\n" + prompt + m.input.View()
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport rebuilds the transcript content after any change to
// the conversation, table state, or chart.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderConversation())
}

// renderConversation renders every message, attaching the structured
// panel (table or SQL block) under the answer it belongs to. Only the
// latest tabular answer is interactive; older ones render as plain text.
func (m *Model) renderConversation() string {
	msgs := m.conversation.Messages
	latestTable := latestTabularIndex(msgs)

	var sb strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			sb.WriteString("\n\n")
		}

		if msg.Role == model.RoleAssistant && msg.IsError {
			panel := components.NewErrorPanel("Request failed", msg.Content, m.theme)
			if i == len(msgs)-1 && m.lastErr != nil {
				panel = components.BackendErrorPanel(m.lastErr, m.theme)
			}
			sb.WriteString(panel.Render())
			continue
		}

		bubble := components.NewMessageBubble(msg, m.theme)
		bubble.SetWidth(m.width)
		sb.WriteString(bubble.View())

		if msg.Role != model.RoleAssistant || msg.Pending {
			continue
		}

		switch msg.Format {
		case "sql":
			block := components.NewSQLBlock(msg.Content)
			block.SetMaxWidth(m.width)
			sb.WriteString("\n")
			sb.WriteString(block.Render())

		case "trade", "pnl":
			if i == latestTable && m.tableState != nil {
				panel := components.NewTablePanel(m.tableState, m.theme)
				sb.WriteString("\n")
				sb.WriteString(panel.Render())
			}
		}
	}

	if m.chartView != "" {
		sb.WriteString("\n\n")
		sb.WriteString(m.chartView)
	}

	return sb.String()
}

// latestTabularIndex finds the most recent completed trade or pnl answer.
func latestTabularIndex(msgs []*model.Message) int {
	for i := len(msgs) - 1; i >= 0; i-- {
		msg := msgs[i]
		if msg.Role != model.RoleAssistant || msg.Pending || msg.IsError {
			continue
		}
		if msg.Format == "trade" || msg.Format == "pnl" {
			return i
		}
	}
	return -1
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// renderHelp shows keyboard shortcuts and the slash command reference.
func (m Model) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true)
	catStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)
	nameStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(22)
	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("deskchat help"))
	sb.WriteString("\n\n")
	sb.WriteString(components.KeyboardShortcuts())
	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("Commands"))
	sb.WriteString("\n")

	byCategory := m.registry.ByCategory()
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		sb.WriteString("\n")
		sb.WriteString(catStyle.Render(cat))
		sb.WriteString("\n")
		for _, cmd := range byCategory[cat] {
			if cmd.Hidden {
				continue
			}
			sb.WriteString("  ")
			sb.WriteString(nameStyle.Render(cmd.Usage))
			sb.WriteString(descStyle.Render(cmd.Description))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(descStyle.Render("Press Esc or F1 to close."))

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 2).
		Render(sb.String())

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
