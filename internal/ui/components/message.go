// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one chat message as a styled bubble. Structured
// assistant answers (tables, SQL, charts) are rendered by their own
// panels; the bubble shows the textual body.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Role: model.RoleSystem}
	}
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderAssistantBubble()
	default:
		return b.renderSystemBubble()
	}
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned feel
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	wrapped := wordWrap(content, b.contentWidth())

	bubble := b.theme.UserBubble.
		Width(minInt(maxLineWidth(wrapped)+4, b.Width-8)).
		Render(wrapped)

	role := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("you")

	return role + b.timestampSuffix() + "\n" + bubble
}

// ==========================================================================
// ASSISTANT BUBBLE - Muted purple tones
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	role := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("assistant")

	if b.Message.Pending {
		pending := b.theme.ThinkingText.Render("thinking...")
		return role + "\n" + pending
	}

	if b.Message.IsError {
		panel := NewErrorPanel("Request failed", b.Message.Content, b.theme)
		return role + b.timestampSuffix() + "\n" + panel.Render()
	}

	wrapped := wordWrap(b.Message.Content, b.contentWidth())
	bubble := b.theme.AssistantBubble.
		Width(minInt(maxLineWidth(wrapped)+4, b.Width-8)).
		Render(wrapped)

	suffix := b.timestampSuffix()
	if b.Message.Elapsed > 0 {
		suffix += " " + b.theme.ThinkingTime.Render("("+b.Message.Elapsed.Round(time.Millisecond).String()+")")
	}

	return role + suffix + "\n" + bubble
}

// ==========================================================================
// SYSTEM BUBBLE - Amber, centered
// ==========================================================================

func (b *MessageBubble) renderSystemBubble() string {
	return b.theme.SystemBubble.Render(b.Message.Content)
}

// ==========================================================================
// HELPERS
// ==========================================================================

func (b *MessageBubble) contentWidth() int {
	w := b.Width - 12 // margins and padding
	if w < 20 {
		w = 20
	}
	return w
}

func (b *MessageBubble) timestampSuffix() string {
	if !b.ShowTimestamp || b.Message.Timestamp.IsZero() {
		return ""
	}
	ts := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(b.Message.Timestamp.Format("15:04"))
	return " " + ts
}

// wordWrap wraps text to a maximum display width, preserving existing
// line breaks. Words longer than the width are left intact.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}

		var current strings.Builder
		for _, word := range strings.Fields(line) {
			if current.Len() == 0 {
				current.WriteString(word)
				continue
			}
			if runewidth.StringWidth(current.String())+1+runewidth.StringWidth(word) > width {
				out = append(out, current.String())
				current.Reset()
				current.WriteString(word)
			} else {
				current.WriteByte(' ')
				current.WriteString(word)
			}
		}
		if current.Len() > 0 {
			out = append(out, current.String())
		}
	}
	return strings.Join(out, "\n")
}

// maxLineWidth returns the widest display line in a block of text.
func maxLineWidth(text string) int {
	widest := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
