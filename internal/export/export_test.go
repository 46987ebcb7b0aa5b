// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/deskchat-tui/internal/storage"
)

func sampleConversation() *storage.StoredConversation {
	created := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	return &storage.StoredConversation{
		ID:        "conv-1",
		Summary:   "USD trades review",
		AgentMode: "precise",
		CreatedAt: created,
		UpdatedAt: created.Add(5 * time.Minute),
		Messages: []storage.StoredMessage{
			{
				ID:        "m1",
				Role:      "user",
				Content:   "show my USD trades",
				Timestamp: created,
			},
			{
				ID:        "m2",
				Role:      "assistant",
				Content:   "deal_num: 1001 | currency: USD | pymt: 21250",
				Timestamp: created.Add(time.Second),
				Format:    "trade",
				ElapsedMs: 1200,
			},
			{
				ID:        "m3",
				Role:      "assistant",
				Content:   "SELECT deal_num FROM entity_trade_header",
				Timestamp: created.Add(2 * time.Second),
				Format:    "sql",
			},
		},
	}
}

// =============================================================================
// MARKDOWN
// =============================================================================

func TestMarkdownExport_Structure(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"title: USD trades review",
		"mode: precise",
		"# USD trades review",
		"### [User]",
		"### [Assistant]",
		"```sql\nSELECT deal_num FROM entity_trade_header\n```",
		"Format: trade",
		"Elapsed: 1.20s",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownExport_FencesTabularAnswers(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(out), "```\ndeal_num: 1001 | currency: USD | pymt: 21250\n```") {
		t.Error("trade answer not fenced; pipes would render as a markdown table")
	}
}

func TestMarkdownExport_ErrorMessage(t *testing.T) {
	conv := sampleConversation()
	conv.Messages = append(conv.Messages, storage.StoredMessage{
		ID:        "m4",
		Role:      "assistant",
		Content:   "backend unavailable",
		Timestamp: time.Now(),
		IsError:   true,
	})

	out, err := NewMarkdownExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(out), "> **Error**: backend unavailable") {
		t.Error("error message not rendered as blockquote")
	}
}

func TestMarkdownExport_RejectsEmpty(t *testing.T) {
	conv := sampleConversation()
	conv.Messages = nil
	if _, err := NewMarkdownExporter(nil).Export(conv); err == nil {
		t.Error("expected error for conversation with no messages")
	}
	if _, err := NewMarkdownExporter(nil).Export(nil); err == nil {
		t.Error("expected error for nil conversation")
	}
}

// =============================================================================
// HTML
// =============================================================================

func TestHTMLExport_Structure(t *testing.T) {
	out, err := NewHTMLExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>USD trades review</title>",
		`class="message user"`,
		`class="message assistant"`,
		`<span class="badge">sql</span>`,
		`<pre class="answer-trade">`,
		"<strong>Mode:</strong> precise",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestHTMLExport_EscapesContent(t *testing.T) {
	conv := sampleConversation()
	conv.Messages[0].Content = "<script>alert(1)</script>"

	out, err := NewHTMLExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.Contains(string(out), "<script>alert(1)</script>") {
		t.Error("message content not escaped")
	}
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONExport_RoundTrips(t *testing.T) {
	out, err := NewJSONExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var got storage.StoredConversation
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.ID != "conv-1" || len(got.Messages) != 3 {
		t.Errorf("round trip lost data: id=%q messages=%d", got.ID, len(got.Messages))
	}
	if got.Messages[1].Format != "trade" {
		t.Errorf("Format = %q, want %q", got.Messages[1].Format, "trade")
	}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

func TestExportToFile(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	opts.OpenAfterExport = false

	path, err := ExportMarkdown(sampleConversation(), opts)
	if err != nil {
		t.Fatalf("ExportMarkdown: %v", err)
	}
	if filepath.Ext(path) != ".md" {
		t.Errorf("extension = %q, want .md", filepath.Ext(path))
	}
	if !strings.Contains(filepath.Base(path), "USD_trades_review") {
		t.Errorf("filename %q does not carry the sanitized summary", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Error("exported file is empty")
	}
}

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"USD trades review", "USD_trades_review"},
		{"a/b:c", "a-b-c"},
		{"", "conversation"},
	}

	for _, tc := range testCases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatElapsedMs(t *testing.T) {
	testCases := []struct {
		ms   int64
		want string
	}{
		{500, "500ms"},
		{1200, "1.20s"},
		{65000, "1m 5s"},
	}

	for _, tc := range testCases {
		if got := formatElapsedMs(tc.ms); got != tc.want {
			t.Errorf("formatElapsedMs(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}
