// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"errors"
	"log"
)

// Extract classifies a response and runs the matching table extractor.
// The returned table is nil when the response carries no structured data:
// either no grammar matched, or a grammar matched its preamble markers but
// produced zero rows. The latter is logged for diagnostics and then treated
// exactly like the former, so the caller falls through to SQL or plain-text
// rendering using the returned format.
func Extract(content string) (Format, *Table) {
	format := Classify(content)

	var (
		table *Table
		err   error
	)
	switch format {
	case FormatTrade:
		table, err = ParseTrade(content)
	case FormatPnlDictionary:
		table, err = ParsePnlDictionary(content)
	default:
		return format, nil
	}

	if err != nil {
		if errors.Is(err, ErrNoTable) {
			log.Printf("[extract] %s markers present but no rows extracted", format)
		}
		return format, nil
	}
	return format, table
}
