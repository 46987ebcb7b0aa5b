// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/deskchat-tui/internal/storage"
)

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParse_PlainTextIsNotCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("show me today's trades")
	assert.False(t, result.IsCommand)
	assert.Nil(t, result.Command)
}

func TestParse_KnownCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/toggle currency")
	require.True(t, result.IsCommand)
	require.NotNil(t, result.Command)
	assert.Equal(t, "/toggle", result.CommandName)
	assert.Equal(t, []string{"currency"}, result.Args)
	assert.Equal(t, "currency", result.RawArgs)
}

func TestParse_UnknownCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/frobnicate")
	assert.True(t, result.IsCommand)
	assert.Nil(t, result.Command)
	assert.Equal(t, "/frobnicate", result.CommandName)
}

func TestParse_Alias(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/t pymt")
	require.NotNil(t, result.Command)
	assert.Equal(t, "/toggle", result.Command.Name)
}

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "/keep daily_pnl", []string{"/keep", "daily_pnl"}},
		{"double quoted", `/keep "usd deals today"`, []string{"/keep", "usd deals today"}},
		{"single quoted", "/keep 'eur swaps'", []string{"/keep", "eur swaps"}},
		{"escaped quote", `/keep "it\"s"`, []string{"/keep", `it"s`}},
		{"extra spaces", "/mode   precise", []string{"/mode", "precise"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCommandLine(tt.input))
		})
	}
}

func TestIsCommand(t *testing.T) {
	assert.True(t, IsCommand("/help"))
	assert.True(t, IsCommand("  /help"))
	assert.False(t, IsCommand("help"))
	assert.False(t, IsCommand(""))
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "/toggle", ExtractCommandName("/toggle currency"))
	assert.Equal(t, "/help", ExtractCommandName("/help"))
	assert.Equal(t, "", ExtractCommandName("not a command"))
}

func TestValidateArgs(t *testing.T) {
	r := NewRegistry()

	toggle := r.Get("/toggle")
	require.NotNil(t, toggle)
	assert.Error(t, ValidateArgs(toggle, nil), "missing required column")
	assert.NoError(t, ValidateArgs(toggle, []string{"currency"}))

	export := r.Get("/export")
	require.NotNil(t, export)
	assert.NoError(t, ValidateArgs(export, nil), "format is optional")
	assert.NoError(t, ValidateArgs(export, []string{"json"}))
	assert.Error(t, ValidateArgs(export, []string{"pdf"}), "pdf is not a format")
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		Command:  "/toggle",
		Arg:      "column",
		Message:  "required argument missing",
		Expected: "Column name to toggle",
	}
	msg := err.Error()
	assert.Contains(t, msg, "/toggle")
	assert.Contains(t, msg, "column")
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistry_BuiltinsRegistered(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{
		"/help", "/quit", "/new", "/clear", "/save", "/load", "/sessions",
		"/export", "/toggle", "/chart", "/keep", "/queries", "/recall",
		"/forget", "/mode", "/status",
	} {
		assert.NotNil(t, r.Get(name), "missing builtin %s", name)
	}
}

func TestRegistry_ByCategory(t *testing.T) {
	byCat := NewRegistry().ByCategory()

	assert.NotEmpty(t, byCat["Navigation"])
	assert.NotEmpty(t, byCat["Table"])
	assert.NotEmpty(t, byCat["Queries"])
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

// runCmd executes a handler's tea.Cmd and returns the message it produces.
func runCmd(t *testing.T, ctx *Context, name string, args []string) any {
	t.Helper()
	cmd := NewRegistry().Get(name)
	require.NotNil(t, cmd)
	teaCmd := cmd.Handler(ctx, args)
	require.NotNil(t, teaCmd)
	return teaCmd()
}

func TestHandleToggle(t *testing.T) {
	msg := runCmd(t, nil, "/toggle", []string{"currency"})
	toggle, ok := msg.(ToggleColumnMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "currency", toggle.Column)
}

func TestHandleToggle_MissingColumn(t *testing.T) {
	msg := runCmd(t, nil, "/toggle", nil)
	_, ok := msg.(ErrorMsg)
	assert.True(t, ok, "got %T", msg)
}

func TestHandleChart(t *testing.T) {
	msg := runCmd(t, nil, "/chart", nil)
	_, ok := msg.(ChartRequestMsg)
	assert.True(t, ok, "got %T", msg)

	msg = runCmd(t, nil, "/chart", []string{"off"})
	_, ok = msg.(ChartReleaseMsg)
	assert.True(t, ok, "got %T", msg)
}

func TestHandleMode_Switch(t *testing.T) {
	msg := runCmd(t, nil, "/mode", []string{"Precise"})
	mode, ok := msg.(ModeSwitchMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "Precise", mode.Mode)
}

func TestHandleMode_SwitchCanonicalizesCase(t *testing.T) {
	for _, typed := range []string{"precise", "PRECISE", "pReCiSe"} {
		msg := runCmd(t, nil, "/mode", []string{typed})
		mode, ok := msg.(ModeSwitchMsg)
		require.True(t, ok, "got %T for %q", msg, typed)
		assert.Equal(t, "Precise", mode.Mode)
	}
}

func TestHandleMode_Unknown(t *testing.T) {
	msg := runCmd(t, nil, "/mode", []string{"turbo"})
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok, "got %T", msg)
	assert.Contains(t, errMsg.Tip, "Balanced")
}

func TestHandleMode_ListsModes(t *testing.T) {
	ctx := NewContext(nil, nil, nil, nil).
		WithHandlerContext(&HandlerContext{CurrentMode: "Creative"})

	msg := runCmd(t, ctx, "/mode", nil)
	sysMsg, ok := msg.(SystemMessageMsg)
	require.True(t, ok, "got %T", msg)
	assert.Contains(t, sysMsg.Content, "Precise")
	assert.Contains(t, sysMsg.Content, "* Creative", "current mode not marked")
	assert.NotContains(t, sysMsg.Content, "* Precise")
}

func TestHandleKeep_NoSQLYet(t *testing.T) {
	ctx := queryContext(t)
	ctx.HandlerCtx = &HandlerContext{}

	msg := runCmd(t, ctx, "/keep", []string{"daily"})
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "Nothing to keep", errMsg.Title)
}

func TestHandleKeep_And_Recall(t *testing.T) {
	ctx := queryContext(t)
	ctx.HandlerCtx = &HandlerContext{LastSQL: "SELECT * FROM deals"}

	msg := runCmd(t, ctx, "/keep", []string{"all_deals"})
	saved, ok := msg.(QuerySavedMsg)
	require.True(t, ok, "got %T", msg)
	require.NoError(t, saved.Error)
	assert.Equal(t, "all_deals", saved.Query.Name)

	msg = runCmd(t, ctx, "/recall", []string{"all_deals"})
	recalled, ok := msg.(QueryRecalledMsg)
	require.True(t, ok, "got %T", msg)
	require.NoError(t, recalled.Error)
	assert.Equal(t, "SELECT * FROM deals", recalled.Query.SQL)
}

func TestHandleRecall_Missing(t *testing.T) {
	ctx := queryContext(t)

	msg := runCmd(t, ctx, "/recall", []string{"nope"})
	recalled, ok := msg.(QueryRecalledMsg)
	require.True(t, ok, "got %T", msg)
	assert.ErrorIs(t, recalled.Error, storage.ErrQueryNotFound)
}

func TestHandleForget(t *testing.T) {
	ctx := queryContext(t)
	ctx.HandlerCtx = &HandlerContext{LastSQL: "SELECT 1"}

	runCmd(t, ctx, "/keep", []string{"tmp"})

	msg := runCmd(t, ctx, "/forget", []string{"tmp"})
	deleted, ok := msg.(QueryDeletedMsg)
	require.True(t, ok, "got %T", msg)
	assert.NoError(t, deleted.Error)
	assert.Equal(t, "tmp", deleted.Name)
}

func TestHandleQueries_Unconfigured(t *testing.T) {
	msg := runCmd(t, nil, "/queries", nil)
	_, ok := msg.(ErrorMsg)
	assert.True(t, ok, "got %T", msg)
}

func TestHandleExport_Formats(t *testing.T) {
	msg := runCmd(t, nil, "/export", []string{"md"})
	export, ok := msg.(ExportConversationMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "markdown", export.Format)

	msg = runCmd(t, nil, "/export", []string{"pdf"})
	_, ok = msg.(ErrorMsg)
	assert.True(t, ok, "got %T", msg)
}

func TestHandleSave_JoinsName(t *testing.T) {
	msg := runCmd(t, nil, "/save", []string{"usd", "deals"})
	save, ok := msg.(SaveConversationMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "usd deals", save.Name)
}

// =============================================================================
// TEST HELPERS
// =============================================================================

func queryContext(t *testing.T) *Context {
	t.Helper()
	store, err := storage.OpenQueryStore(filepath.Join(t.TempDir(), "queries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewContext(nil, nil, nil, store)
}
