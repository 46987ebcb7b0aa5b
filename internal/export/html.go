// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jeranaias/deskchat-tui/internal/storage"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports conversations to HTML format with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a conversation to HTML format.
func (e *HTMLExporter) Export(conv *storage.StoredConversation) ([]byte, error) {
	// Validate conversation data
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if len(conv.Messages) == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}
	if conv.CreatedAt.IsZero() {
		return nil, fmt.Errorf("conversation has invalid creation timestamp")
	}

	var sb strings.Builder

	// HTML header
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(conv.Summary)))
	sb.WriteString("    <meta name=\"generator\" content=\"deskchat\">\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", conv.CreatedAt.Format(time.RFC3339)))

	// Embedded CSS
	sb.WriteString(e.getCSS())

	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", e.options.Theme))
	sb.WriteString("    <div class=\"container\">\n")

	// Header with metadata
	if e.options.IncludeMetadata {
		sb.WriteString(e.renderHeader(conv))
	}

	// Conversation messages
	sb.WriteString("        <main class=\"conversation\">\n")
	for _, msg := range conv.Messages {
		sb.WriteString(e.renderMessage(&msg))
	}
	sb.WriteString("        </main>\n")

	// Footer
	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>deskchat</strong> on %s</p>\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")

	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

// renderHeader renders the header section with metadata.
func (e *HTMLExporter) renderHeader(conv *storage.StoredConversation) string {
	var sb strings.Builder

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(conv.Summary)))
	sb.WriteString("            <div class=\"metadata\">\n")
	if conv.AgentMode != "" {
		sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Mode:</strong> %s</span>\n", html.EscapeString(conv.AgentMode)))
	}
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Created:</strong> %s</span>\n", formatTimestamp(conv.CreatedAt)))
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Messages:</strong> %d</span>\n", len(conv.Messages)))
	sb.WriteString("            </div>\n")
	sb.WriteString("        </header>\n")

	return sb.String()
}

// renderMessage renders one message as an article. SQL and tabular
// answers get a <pre> block so alignment and pipes survive; everything
// else is escaped prose with preserved line breaks.
func (e *HTMLExporter) renderMessage(msg *storage.StoredMessage) string {
	var sb strings.Builder

	roleClass := msg.Role
	if msg.IsError {
		roleClass += " error"
	}

	sb.WriteString(fmt.Sprintf("            <article class=\"message %s\">\n", roleClass))
	sb.WriteString("                <div class=\"message-header\">\n")
	sb.WriteString(fmt.Sprintf("                    <span class=\"role\">%s</span>\n", roleName(msg.Role)))
	if badge := formatBadge(msg); badge != "" {
		sb.WriteString(fmt.Sprintf("                    <span class=\"badge\">%s</span>\n", badge))
	}
	if e.options.IncludeTimestamps {
		sb.WriteString(fmt.Sprintf("                    <span class=\"timestamp\">%s</span>\n",
			formatShortTimestamp(msg.Timestamp)))
	}
	sb.WriteString("                </div>\n")

	content := html.EscapeString(msg.Content)
	switch msg.Format {
	case "sql", "trade", "pnl":
		sb.WriteString(fmt.Sprintf("                <pre class=\"answer-%s\">%s</pre>\n", msg.Format, content))
	default:
		content = strings.ReplaceAll(content, "\n", "<br>\n")
		sb.WriteString(fmt.Sprintf("                <div class=\"content\">%s</div>\n", content))
	}

	if msg.Role == "assistant" && msg.ElapsedMs > 0 {
		sb.WriteString(fmt.Sprintf("                <div class=\"stats\">%s</div>\n",
			formatElapsedMs(msg.ElapsedMs)))
	}

	sb.WriteString("            </article>\n")
	return sb.String()
}

// roleName maps a stored role to its display label.
func roleName(role string) string {
	switch role {
	case "user":
		return "You"
	case "assistant":
		return "Assistant"
	case "system":
		return "System"
	default:
		return role
	}
}

// formatBadge returns the classification badge text for a message.
func formatBadge(msg *storage.StoredMessage) string {
	switch msg.Format {
	case "sql", "trade", "pnl":
		return msg.Format
	default:
		return ""
	}
}

// =============================================================================
// STYLESHEET
// =============================================================================

// getCSS returns the embedded stylesheet for both themes.
func (e *HTMLExporter) getCSS() string {
	return `    <style>
        :root {
            --bg: #ffffff;
            --fg: #1f2937;
            --muted: #6b7280;
            --surface: #f5f5f5;
            --border: #d4d4d4;
            --user-bg: #dbeafe;
            --assistant-bg: #f5f3ff;
            --system-bg: #fef3c7;
            --error-fg: #dc2626;
            --badge-bg: #e5e5e5;
        }
        body.dark-theme {
            --bg: #1e1e2e;
            --fg: #cdd6f4;
            --muted: #6c7086;
            --surface: #181825;
            --border: #45475a;
            --user-bg: #1d4ed8;
            --assistant-bg: #3b3655;
            --system-bg: #78350f;
            --error-fg: #ef4444;
            --badge-bg: #313244;
        }
        body {
            background: var(--bg);
            color: var(--fg);
            font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
            line-height: 1.6;
            margin: 0;
        }
        .container { max-width: 860px; margin: 0 auto; padding: 2rem 1rem; }
        .header h1 { margin-bottom: 0.25rem; }
        .metadata { color: var(--muted); font-size: 0.9rem; }
        .meta-item { margin-right: 1.25rem; }
        .message {
            border: 1px solid var(--border);
            border-radius: 8px;
            margin: 1rem 0;
            padding: 0.75rem 1rem;
        }
        .message.user { background: var(--user-bg); }
        .message.assistant { background: var(--assistant-bg); }
        .message.system { background: var(--system-bg); font-size: 0.9rem; }
        .message.error .content, .message.error pre { color: var(--error-fg); }
        .message-header {
            display: flex;
            align-items: baseline;
            gap: 0.5rem;
            margin-bottom: 0.5rem;
        }
        .role { font-weight: 600; }
        .badge {
            background: var(--badge-bg);
            border-radius: 4px;
            font-size: 0.75rem;
            padding: 0.1rem 0.4rem;
            text-transform: uppercase;
        }
        .timestamp { color: var(--muted); font-size: 0.8rem; margin-left: auto; }
        pre {
            background: var(--surface);
            border: 1px solid var(--border);
            border-radius: 6px;
            overflow-x: auto;
            padding: 0.75rem;
            font-family: "SF Mono", Consolas, monospace;
            font-size: 0.85rem;
        }
        .stats { color: var(--muted); font-size: 0.8rem; text-align: right; }
        .footer { color: var(--muted); font-size: 0.85rem; margin-top: 2rem; text-align: center; }
    </style>
`
}
