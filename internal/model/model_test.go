// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// MODE REGISTRY TESTS
// =============================================================================

func TestGetMode(t *testing.T) {
	tests := []struct {
		name     string
		lookup   string
		wantName string
	}{
		{"canonical", "balanced", "Balanced"},
		{"mixed case", "Precise", "Precise"},
		{"upper case", "CREATIVE", "Creative"},
		{"unknown falls back", "reckless", "Balanced"},
		{"empty falls back", "", "Balanced"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetMode(tc.lookup); got.Name != tc.wantName {
				t.Errorf("GetMode(%q).Name = %q, want %q", tc.lookup, got.Name, tc.wantName)
			}
		})
	}
}

func TestDefaultMode(t *testing.T) {
	if got := DefaultMode(); got.Name != "Balanced" {
		t.Errorf("DefaultMode().Name = %q, want Balanced", got.Name)
	}
}

func TestModeNames_Sorted(t *testing.T) {
	names := ModeNames()
	if len(names) != len(Modes) {
		t.Fatalf("ModeNames() returned %d names, want %d", len(names), len(Modes))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("ModeNames() not sorted: %v", names)
		}
	}
}

func TestModeInfo_Describe(t *testing.T) {
	desc := GetMode("precise").Describe()
	if !strings.Contains(desc, "Precise") || !strings.Contains(desc, "slow") {
		t.Errorf("Describe() = %q", desc)
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessage_Lifecycle(t *testing.T) {
	msg := NewAssistantMessage("turn-1")

	if !msg.Pending {
		t.Error("new assistant message should be pending")
	}
	if msg.TurnID != "turn-1" {
		t.Errorf("TurnID = %q", msg.TurnID)
	}

	msg.Complete("deal_num: 1001", "trade", 250*time.Millisecond)

	if msg.Pending {
		t.Error("completed message still pending")
	}
	if msg.Format != "trade" {
		t.Errorf("Format = %q", msg.Format)
	}
	if msg.IsError {
		t.Error("completed message marked as error")
	}
}

func TestMessage_Fail(t *testing.T) {
	msg := NewAssistantMessage("turn-1")
	msg.Fail("backend unavailable")

	if msg.Pending {
		t.Error("failed message still pending")
	}
	if !msg.IsError {
		t.Error("failed message not marked as error")
	}
	if msg.Content != "backend unavailable" {
		t.Errorf("Content = %q", msg.Content)
	}
}

func TestMessage_Preview(t *testing.T) {
	long := strings.Repeat("x", 100)
	msg := NewUserMessage(long)

	preview := msg.Preview(50)
	if len([]rune(preview)) != 50 {
		t.Errorf("Preview length = %d, want 50", len([]rune(preview)))
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("Preview = %q, want ellipsis suffix", preview)
	}

	// Multi-byte content must not be split mid-rune.
	msg = NewUserMessage(strings.Repeat("世", 100))
	preview = msg.Preview(10)
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("Preview = %q", preview)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_TurnTracking(t *testing.T) {
	conv := NewConversationWithMode("Balanced")
	conv.AddUserMessage("show trades")
	pending := conv.AddAssistantMessage("turn-1")

	if !conv.HasPendingTurn() {
		t.Error("HasPendingTurn = false after AddAssistantMessage")
	}
	if !conv.IsTurnActive("turn-1") {
		t.Error("IsTurnActive(turn-1) = false")
	}
	if conv.IsTurnActive("turn-2") {
		t.Error("IsTurnActive(turn-2) = true for a different turn")
	}

	if got := conv.MessageForTurn("turn-1"); got != pending {
		t.Error("MessageForTurn did not return the pending message")
	}

	conv.FinishTurn("turn-1")
	if conv.HasPendingTurn() {
		t.Error("HasPendingTurn = true after FinishTurn")
	}
}

func TestConversation_FinishTurn_IgnoresStale(t *testing.T) {
	conv := NewConversation()
	conv.AddAssistantMessage("turn-2")

	// Finishing an older turn must not clear the active one.
	conv.FinishTurn("turn-1")
	if !conv.IsTurnActive("turn-2") {
		t.Error("stale FinishTurn cleared the active turn")
	}
}

func TestConversation_AutoTitle(t *testing.T) {
	conv := NewConversation()
	conv.AddSystemMessage("connected")
	if conv.Title != "" {
		t.Errorf("system message set title %q", conv.Title)
	}

	conv.AddUserMessage("what is the ltd pnl on deal 1001?")
	if conv.Title != "what is the ltd pnl on deal 1001?" {
		t.Errorf("Title = %q", conv.Title)
	}

	// First title wins.
	conv.AddUserMessage("another question")
	if conv.Title != "what is the ltd pnl on deal 1001?" {
		t.Errorf("Title changed to %q", conv.Title)
	}
}

func TestConversation_RemoveMessage(t *testing.T) {
	conv := NewConversation()
	msg := conv.AddUserMessage("hello")

	if !conv.RemoveMessage(msg.ID) {
		t.Error("RemoveMessage returned false for existing message")
	}
	if conv.RemoveMessage("msg_nonexistent") {
		t.Error("RemoveMessage returned true for missing message")
	}
	if !conv.IsEmpty() {
		t.Error("conversation not empty after removal")
	}
}

func TestConversation_Clone(t *testing.T) {
	conv := NewConversationWithMode("Precise")
	conv.AddUserMessage("original")

	clone := conv.Clone()
	clone.Messages[0].Content = "mutated"

	if conv.Messages[0].Content != "original" {
		t.Error("mutating clone changed the original")
	}
	if clone.AgentMode != "Precise" {
		t.Errorf("clone AgentMode = %q", clone.AgentMode)
	}
}

func TestConversation_PruneKeepsSystemMessages(t *testing.T) {
	conv := NewConversation()
	conv.AddSystemMessage("session start")

	for i := 0; i < MaxMessages+10; i++ {
		conv.AddUserMessage("q")
	}

	if got := len(conv.Messages); got != MaxMessages+1 {
		t.Errorf("message count after prune = %d, want %d", got, MaxMessages+1)
	}
	if conv.Messages[0].Role != RoleSystem {
		t.Error("system message not preserved at front after prune")
	}
}

func TestGenerateIDs_Unique(t *testing.T) {
	if generateID() == generateID() {
		t.Error("message IDs collide")
	}
	if generateConversationID() == generateConversationID() {
		t.Error("conversation IDs collide")
	}
}
