// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(url string) *Client {
	// Generous rate limit so tests never sleep on the limiter.
	return NewClient(url).WithRateLimit(1000, 1000)
}

func TestClient_Ask(t *testing.T) {
	var gotBody askRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ask" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(askResponse{Response: "SELECT 1", Status: "success"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	turnID := NewTurnID()

	result, err := client.Ask(context.Background(), turnID, "show me trades")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if result.TurnID != turnID {
		t.Errorf("TurnID = %q, want %q", result.TurnID, turnID)
	}
	if result.Response != "SELECT 1" {
		t.Errorf("Response = %q", result.Response)
	}
	if result.Status != "success" {
		t.Errorf("Status = %q", result.Status)
	}
	if gotBody.Prompt != "show me trades" {
		t.Errorf("sent prompt = %q", gotBody.Prompt)
	}
	if gotBody.AgentMode != DefaultAgentMode {
		t.Errorf("sent agentMode = %q, want %q", gotBody.AgentMode, DefaultAgentMode)
	}
}

// Composed and decomposed spellings of the same prompt must hit the backend
// identically.
func TestClient_Ask_NormalizesPrompt(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Prompt
		json.NewEncoder(w).Encode(askResponse{Response: "ok", Status: "success"})
	}))
	defer server.Close()

	// "é" as 'e' + combining acute accent.
	decomposed := "cafe\u0301"
	composed := "caf\u00e9"

	client := testClient(server.URL)
	if _, err := client.Ask(context.Background(), NewTurnID(), decomposed); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if gotPrompt != composed {
		t.Errorf("prompt = %q, want NFC form %q", gotPrompt, composed)
	}
}

func TestClient_Ask_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "warehouse busy"})
			return
		}
		json.NewEncoder(w).Encode(askResponse{Response: "ok", Status: "success"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	result, err := client.Ask(context.Background(), NewTurnID(), "hi")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if result.Response != "ok" {
		t.Errorf("Response = %q", result.Response)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}

func TestClient_Ask_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "prompt required"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Ask(context.Background(), NewTurnID(), "")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Detail != "prompt required" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d calls, want 1 (no retry on 4xx)", got)
	}
}

func TestClient_Ask_RateLimitedMapsToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := testClient(server.URL).WithMaxRetries(1)
	_, err := client.Ask(context.Background(), NewTurnID(), "hi")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
}

func TestClient_Ask_NotConfigured(t *testing.T) {
	client := NewClient("")
	if _, err := client.Ask(context.Background(), NewTurnID(), "hi"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestClient_Ask_ContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := testClient(server.URL)
	if _, err := client.Ask(ctx, NewTurnID(), "hi"); err == nil {
		t.Fatal("Ask succeeded despite canceled context")
	}
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("health probed %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	if err := testClient(server.URL).Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestClient_Health_Down(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately, so the port refuses connections

	err := testClient(server.URL).Health(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestNewTurnID_Unique(t *testing.T) {
	a, b := NewTurnID(), NewTurnID()
	if a == b || a == "" {
		t.Errorf("turn IDs not unique: %q %q", a, b)
	}
}

func TestCalculateBackoff(t *testing.T) {
	if d := calculateBackoff(1); d != time.Second {
		t.Errorf("attempt 1 = %v, want 1s", d)
	}
	if d := calculateBackoff(10); d != retryMaxDelay {
		t.Errorf("attempt 10 = %v, want cap %v", d, retryMaxDelay)
	}
}
