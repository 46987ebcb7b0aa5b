// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// TurnID correlates an assistant message with the backend request that
	// produced it. A late response whose turn ID no longer matches the
	// conversation's active turn is discarded rather than rendered.
	TurnID string `json:"turn_id,omitempty"`

	// Format records how the content was classified for rendering:
	// "text", "sql", "trade", or "pnl". Empty for user messages.
	Format string `json:"format,omitempty"`

	// Pending marks an assistant placeholder whose backend request is
	// still in flight. Not persisted.
	Pending bool `json:"-"`

	// IsError marks an assistant message that carries a backend error
	// instead of a real answer.
	IsError bool `json:"is_error,omitempty"`

	// Elapsed is how long the backend took to answer (assistant messages).
	Elapsed time.Duration `json:"elapsed_ns,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a pending assistant placeholder tied to a
// backend turn. Content arrives when the request completes.
func NewAssistantMessage(turnID string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		TurnID:    turnID,
		Pending:   true,
	}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) *Message {
	return NewMessage(RoleSystem, content)
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Complete fills in a pending assistant message with the backend response.
func (m *Message) Complete(content, format string, elapsed time.Duration) {
	m.Content = content
	m.Format = format
	m.Elapsed = elapsed
	m.Pending = false
}

// Fail marks a pending assistant message as errored.
func (m *Message) Fail(errText string) {
	m.Content = errText
	m.IsError = true
	m.Pending = false
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
