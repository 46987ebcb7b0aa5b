// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the deskchat TUI.
package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deskchat-tui/internal/extract"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
)

// =============================================================================
// SQL BLOCK RENDERER
// =============================================================================

// SQLBlock renders an assistant answer that was classified as SQL: the
// statement lines get syntax highlighting, surrounding prose stays plain.
type SQLBlock struct {
	Content  string
	MaxWidth int
}

// NewSQLBlock creates a SQL block for a classified answer.
func NewSQLBlock(content string) SQLBlock {
	return SQLBlock{
		Content:  content,
		MaxWidth: 80,
	}
}

// SetMaxWidth sets the maximum width for the block.
func (b *SQLBlock) SetMaxWidth(width int) {
	b.MaxWidth = width
}

// Render renders the block: a "sql" badge, highlighted statement lines
// with line numbers, and any non-statement prose below.
func (b SQLBlock) Render() string {
	sqlLines := extract.SQLLines(b.Content)
	statement := extract.StatementText(sqlLines)
	if statement == "" {
		// Classified as SQL but no keyword lines found; show as-is.
		return b.Content
	}

	highlighted := highlightSQL(statement)
	lines := strings.Split(highlighted, "\n")

	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	var renderedLines []string
	for i, line := range lines {
		lineNum := lineNumStyle.Render(strconv.Itoa(i + 1))
		renderedLines = append(renderedLines, lineNum+line)
	}

	badge := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Background(styles.OverlayDim).
		Padding(0, 1).
		Bold(true).
		Render("sql")

	maxWidth := b.MaxWidth - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	block := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(1, 2).
		MaxWidth(maxWidth).
		Render(badge + "\n" + strings.Join(renderedLines, "\n"))

	// Keep prose that accompanied the statement, below the block.
	prose := proseAround(sqlLines)
	if prose != "" {
		return block + "\n" + prose
	}
	return block
}

// proseAround returns the non-statement lines of a SQL answer.
func proseAround(lines []extract.SQLLine) string {
	var prose []string
	for _, l := range lines {
		if l.Keyword || strings.TrimSpace(l.Text) == "" {
			continue
		}
		prose = append(prose, l.Text)
	}
	return strings.Join(prose, "\n")
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightSQL applies ANSI-safe SQL syntax highlighting using chroma.
func highlightSQL(code string) string {
	lexer := lexers.Get("sql")
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code // Fallback to plain text
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// RenderInlineCode renders inline code with a subtle background.
func RenderInlineCode(code string) string {
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.Cyan).
		Padding(0, 1).
		Render(code)
}
