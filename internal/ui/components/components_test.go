// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/deskchat-tui/internal/extract"
	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
	"github.com/jeranaias/deskchat-tui/internal/view"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

func tradeTable(rows int) *extract.Table {
	t := &extract.Table{
		Kind:    extract.KindTrade,
		Columns: []string{"deal_num", "currency", "pymt"},
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, extract.Row{
			"deal_num": "100" + string(rune('0'+i%10)),
			"currency": "USD",
		})
	}
	return t
}

// =============================================================================
// TABLE PANEL
// =============================================================================

func TestTablePanel_RendersHeaderAndRows(t *testing.T) {
	state := view.NewState(tradeTable(2))
	panel := NewTablePanel(state, testTheme())

	out := panel.Render()

	for _, want := range []string{"deal_num", "currency", "1000", "1001"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q", want)
		}
	}
}

func TestTablePanel_MissingCellShowsNull(t *testing.T) {
	state := view.NewState(tradeTable(1)) // no row carries a pymt value

	out := NewTablePanel(state, testTheme()).Render()

	if !strings.Contains(out, extract.NullSentinel) {
		t.Errorf("Render() missing NULL sentinel for absent cell")
	}
}

func TestTablePanel_HiddenRowNotice(t *testing.T) {
	state := view.NewState(tradeTable(view.RowWindow + 3))
	out := NewTablePanel(state, testTheme()).Render()

	if !strings.Contains(out, "+3 more rows") {
		t.Errorf("Render() missing hidden-row notice, got:\n%s", out)
	}
}

func TestTablePanel_NoNoticeWhenAllRowsVisible(t *testing.T) {
	state := view.NewState(tradeTable(2))
	out := NewTablePanel(state, testTheme()).Render()

	if strings.Contains(out, "more rows") {
		t.Errorf("Render() shows hidden-row notice for fully visible table")
	}
}

func TestTablePanel_AllColumnsHidden(t *testing.T) {
	state := view.NewState(tradeTable(1))
	for _, col := range state.AllColumns() {
		if state.Selected(col) {
			state.Toggle(col)
		}
	}

	out := NewTablePanel(state, testTheme()).Render()

	if !strings.Contains(out, "all columns hidden") {
		t.Errorf("Render() = %q, want all-hidden notice", out)
	}
}

func TestTablePanel_HintMarksSelectedColumns(t *testing.T) {
	state := view.NewState(tradeTable(1))
	state.Toggle("currency") // hide

	out := NewTablePanel(state, testTheme()).Render()

	if !strings.Contains(out, "[deal_num]") {
		t.Errorf("hint missing bracketed selected column")
	}
	if strings.Contains(out, "[currency]") {
		t.Errorf("hint brackets a hidden column")
	}
}

// =============================================================================
// SQL BLOCK
// =============================================================================

func TestSQLBlock_PlainWhenNoStatement(t *testing.T) {
	b := NewSQLBlock("just some prose with no statement")
	if got := b.Render(); got != "just some prose with no statement" {
		t.Errorf("Render() = %q, want raw content", got)
	}
}

func TestSQLBlock_RendersStatementWithLineNumbers(t *testing.T) {
	b := NewSQLBlock("Here is the query:\nSELECT deal_num FROM deals\nWHERE currency = 'USD'")
	out := b.Render()

	if !strings.Contains(out, "sql") {
		t.Errorf("Render() missing sql badge")
	}
	if !strings.Contains(out, "1") || !strings.Contains(out, "2") {
		t.Errorf("Render() missing line numbers")
	}
	if !strings.Contains(out, "Here is the query:") {
		t.Errorf("Render() dropped surrounding prose")
	}
}

func TestProseAround_FiltersKeywordLines(t *testing.T) {
	lines := []extract.SQLLine{
		{Text: "intro", Keyword: false},
		{Text: "SELECT 1", Keyword: true},
		{Text: "   ", Keyword: false},
		{Text: "outro", Keyword: false},
	}
	got := proseAround(lines)
	if got != "intro\noutro" {
		t.Errorf("proseAround = %q, want intro/outro only", got)
	}
}

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

func TestMessageBubble_UserView(t *testing.T) {
	msg := model.NewUserMessage("show trades for today")
	b := NewMessageBubble(msg, testTheme())

	out := b.View()
	if !strings.Contains(out, "you") {
		t.Errorf("user bubble missing role indicator")
	}
	if !strings.Contains(out, "show trades for today") {
		t.Errorf("user bubble missing content")
	}
}

func TestMessageBubble_PendingAssistant(t *testing.T) {
	msg := model.NewAssistantMessage("turn_1")
	b := NewMessageBubble(msg, testTheme())

	if out := b.View(); !strings.Contains(out, "thinking") {
		t.Errorf("pending bubble = %q, want thinking indicator", out)
	}
}

func TestMessageBubble_FailedAssistant(t *testing.T) {
	msg := model.NewAssistantMessage("turn_1")
	msg.Fail("backend unreachable")
	b := NewMessageBubble(msg, testTheme())

	out := b.View()
	if !strings.Contains(out, "Request failed") {
		t.Errorf("error bubble missing title")
	}
	if !strings.Contains(out, "backend unreachable") {
		t.Errorf("error bubble missing error text")
	}
}

func TestMessageBubble_NilMessage(t *testing.T) {
	b := NewMessageBubble(nil, testTheme())
	// Must not panic.
	_ = b.View()
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short line untouched", "hello", 10, "hello"},
		{"wraps at width", "one two three", 7, "one two\nthree"},
		{"preserves newlines", "a\nb", 10, "a\nb"},
		{"zero width untouched", "a b c", 0, "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordWrap(tt.text, tt.width); got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

// =============================================================================
// STATUS BAR
// =============================================================================

func TestStatusBar_MediumLayout(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(80)
	bar.SetAgentMode("precise")
	bar.SetBackend("http://localhost:9000", true)
	bar.SetMessageCount(3)

	out := bar.View()
	for _, want := range []string{"precise", "backend up", "3 msgs", "Ready"} {
		if !strings.Contains(out, want) {
			t.Errorf("medium view missing %q", want)
		}
	}
}

func TestStatusBar_BackendDown(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(80)
	bar.SetBackend("http://localhost:9000", false)

	if out := bar.View(); !strings.Contains(out, "backend down") {
		t.Errorf("view missing backend-down badge")
	}
}

func TestStatusBar_WideLayout(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(120)
	bar.SetAgentMode("balanced")
	bar.SetBackend("http://desk.example.com/api", true)
	bar.SetStatus(StatusThinking)

	out := bar.View()
	if !strings.Contains(out, "BALANCED") {
		t.Errorf("wide view missing uppercased mode")
	}
	if !strings.Contains(out, "Thinking") {
		t.Errorf("wide view missing status")
	}
	if !strings.Contains(out, "desk.example.com") {
		t.Errorf("wide view missing backend host")
	}
}

func TestStatusBar_NarrowLayout(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(40)
	bar.SetAgentMode("creative")

	out := bar.View()
	if !strings.Contains(out, "C") {
		t.Errorf("narrow view missing mode initial")
	}
}

func TestStatus_Strings(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusThinking, "Thinking..."},
		{StatusError, "Error"},
		{StatusIdle, "Idle"},
		{Status(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestTruncateURL(t *testing.T) {
	tests := []struct {
		url    string
		maxLen int
		want   string
	}{
		{"http://localhost:9000", 32, "localhost:9000"},
		{"https://desk.example.com", 32, "desk.example.com"},
		{"http://very-long-host.example.internal/api/v2", 20, "very-long-host.ex..."},
	}
	for _, tt := range tests {
		if got := truncateURL(tt.url, tt.maxLen); got != tt.want {
			t.Errorf("truncateURL(%q, %d) = %q, want %q", tt.url, tt.maxLen, got, tt.want)
		}
	}
}

// =============================================================================
// CHART PANEL
// =============================================================================

func TestChartPanel_DrawAndRelease(t *testing.T) {
	panel := NewChartPanel(80, testTheme())

	input := []map[string]any{
		{"label": "USD", "value": 10.0},
		{"label": "EUR", "value": 4.0},
	}
	out := panel.Draw(input, "by currency")

	if !strings.Contains(out, "by currency") {
		t.Errorf("Draw() missing title")
	}
	if !panel.HasChart() {
		t.Errorf("HasChart() = false after successful draw")
	}

	panel.Release()
	if panel.HasChart() {
		t.Errorf("HasChart() = true after release")
	}
}

func TestChartPanel_EmptyInput(t *testing.T) {
	panel := NewChartPanel(80, testTheme())

	out := panel.Draw([]any{}, "empty")
	if !strings.Contains(out, "No data available") {
		t.Errorf("Draw(empty) = %q, want no-data panel", out)
	}
	if panel.HasChart() {
		t.Errorf("failed draw left a live chart")
	}
}

func TestChartPanel_UnsupportedInput(t *testing.T) {
	panel := NewChartPanel(80, testTheme())

	out := panel.Draw("not a sequence", "bad")
	if !strings.Contains(out, "Unsupported data format") {
		t.Errorf("Draw(string) = %q, want unsupported-format panel", out)
	}
	if !strings.Contains(out, "received:") {
		t.Errorf("error panel missing raw input echo")
	}
}

// =============================================================================
// SPINNER
// =============================================================================

func TestSpinner_InactiveRendersNothing(t *testing.T) {
	s := NewThinkingSpinner()
	if got := s.View(); got != "" {
		t.Errorf("inactive View() = %q, want empty", got)
	}
}

func TestSpinner_ActiveShowsMessage(t *testing.T) {
	s := NewThinkingSpinner()
	s.Start()
	defer s.Stop()

	if out := s.View(); !strings.Contains(out, "Thinking") {
		t.Errorf("active View() missing message")
	}
	if s.GetElapsed() < 0 {
		t.Errorf("GetElapsed() negative")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{65 * time.Second, "1m 5s"},
		{0, "0s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// =============================================================================
// WELCOME
// =============================================================================

func TestWelcome_ShowsBackendAndMode(t *testing.T) {
	w := NewWelcome(testTheme())
	w.SetVersion("1.2.0")
	w.SetBackendURL("http://localhost:9000")
	w.SetMode("precise")
	w.SetSize(100, 40)

	out := w.View()
	for _, want := range []string{"1.2.0", "localhost:9000", "precise", "/help"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestWelcome_UnconfiguredBackend(t *testing.T) {
	w := NewWelcome(testTheme())
	w.SetSize(100, 40)

	if out := w.View(); !strings.Contains(out, "not configured") {
		t.Errorf("View() missing not-configured notice")
	}
}
