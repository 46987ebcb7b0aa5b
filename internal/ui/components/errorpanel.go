// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"

	"github.com/jeranaias/deskchat-tui/internal/backend"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
)

// =============================================================================
// ERROR PANEL
// =============================================================================

// ErrorPanel renders an error with an optional detail section, e.g. the
// raw payload that failed to chart.
type ErrorPanel struct {
	Title   string
	Message string
	Detail  string
	theme   *styles.Theme
}

// NewErrorPanel creates an error panel.
func NewErrorPanel(title, message string, theme *styles.Theme) ErrorPanel {
	return ErrorPanel{Title: title, Message: message, theme: theme}
}

// Render draws the panel.
func (p ErrorPanel) Render() string {
	body := p.theme.ErrorTitle.Render(styles.StatusIndicators.Error+" "+p.Title) + "\n" +
		p.theme.ErrorMessage.Render(p.Message)
	if p.Detail != "" {
		body += "\n" + p.theme.ErrorDetail.Render(p.Detail)
	}
	return p.theme.ErrorBox.Render(body)
}

// =============================================================================
// BACKEND ERROR PRESENTATION
// =============================================================================

// BackendErrorPanel maps a backend failure to a panel the user can act
// on: what went wrong and, where known, what to try.
func BackendErrorPanel(err error, theme *styles.Theme) ErrorPanel {
	panel := NewErrorPanel("Request failed", err.Error(), theme)

	switch {
	case errors.Is(err, backend.ErrNotConfigured):
		panel.Title = "Backend not configured"
		panel.Detail = "Set backend.url in ~/.deskchat/config.toml or DESKCHAT_BACKEND_URL."
	case errors.Is(err, backend.ErrUnavailable):
		panel.Title = "Backend unreachable"
		panel.Detail = "Check that the desk assistant service is running."
	case errors.Is(err, backend.ErrRateLimited):
		panel.Title = "Rate limited"
		panel.Detail = "The backend is throttling requests; wait a moment and retry."
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		panel.Title = "Backend error"
		panel.Message = apiErr.Detail
	}

	return panel
}
