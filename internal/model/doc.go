// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the
// application for representing chat sessions with the desk assistant
// backend.
//
// # Key Types
//
//   - Conversation: Container for a chat session with messages and metadata
//   - Message: Single message with role, content, timestamp, and turn ID
//   - ModeInfo: Information about a backend agent mode
//   - Role: Message role enumeration (user, assistant, system)
//
// # Turn Tracking
//
// Each backend request gets a turn ID. The assistant message created for
// that request carries the same ID, and the conversation records it as
// the active turn. When a response arrives, it is applied only if its
// turn ID still matches; responses for abandoned turns are dropped.
//
// # Usage
//
// Create a new conversation and run a turn:
//
//	conv := model.NewConversationWithMode("Balanced")
//	conv.AddUserMessage("show me today's gas trades")
//	pending := conv.AddAssistantMessage(turnID)
//	// ... when the backend answers:
//	pending.Complete(resp, "trade", elapsed)
//	conv.FinishTurn(turnID)
package model
