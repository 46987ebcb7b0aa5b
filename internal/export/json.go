// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/deskchat-tui/internal/storage"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports conversations to JSON format.
//
// The output inlines the complete stored conversation so it unmarshals
// straight back into storage.StoredConversation; filtering options are
// ignored on purpose. Per-message answer formats (sql/trade/pnl) travel
// with each message, so downstream tooling can re-extract tables.
type JSONExporter struct {
	options *Options
}

// jsonDocument wraps the conversation with export provenance. The
// embedded pointer keeps the conversation fields at the top level.
type jsonDocument struct {
	*storage.StoredConversation
	Generator  string    `json:"generator"`
	ExportedAt time.Time `json:"exported_at"`
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a conversation to indented JSON.
func (e *JSONExporter) Export(conv *storage.StoredConversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}

	doc := jsonDocument{
		StoredConversation: conv,
		Generator:          "deskchat",
		ExportedAt:         time.Now().UTC(),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
