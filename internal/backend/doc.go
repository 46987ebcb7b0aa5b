// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend implements the HTTP client for the desk assistant
// service. The service exposes a single conversational endpoint, POST /ask,
// which takes a prompt and returns the assistant's full response text in one
// shot; there is no streaming. The client adds retries with exponential
// backoff for transient failures, a client-side rate limiter, a response
// size cap, and per-turn IDs so a late response for a superseded turn can be
// recognized and discarded by the UI.
package backend
