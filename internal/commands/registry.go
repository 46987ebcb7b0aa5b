// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deskchat-tui/internal/backend"
	"github.com/jeranaias/deskchat-tui/internal/config"
	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/storage"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "/toggle <column>")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Handler is the function that executes the command
	Handler func(ctx *Context, args []string) tea.Cmd

	// Hidden commands don't appear in help
	Hidden bool

	// Category for grouping in help display
	Category string
}

// ArgDef defines an argument for a command.
type ArgDef struct {
	// Name of the argument
	Name string

	// Required indicates if the argument must be provided
	Required bool

	// Type hints what the argument refers to
	Type ArgType

	// Description explains the argument
	Description string

	// Values for enum types
	Values []string
}

// ArgType indicates what kind of value an argument takes.
type ArgType int

const (
	ArgTypeString  ArgType = iota // Free-form string
	ArgTypeColumn                 // Column name from the current table
	ArgTypeSession                // Session ID from saved conversations
	ArgTypeQuery                  // Saved query name
	ArgTypeEnum                   // One of predefined values
)

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// ByCategory returns visible commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.commands {
		if cmd.Hidden {
			continue
		}
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	// Navigation
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show help and available commands",
		Usage:       "/help [topic]",
		Category:    "Navigation",
		Handler:     HandleHelp,
	})

	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Exit deskchat",
		Category:    "Navigation",
		Handler:     HandleQuit,
	})

	// Conversation
	r.Register(&Command{
		Name:        "/new",
		Aliases:     []string{"/n"},
		Description: "Start a new conversation",
		Category:    "Conversation",
		Handler:     HandleNew,
	})

	r.Register(&Command{
		Name:        "/clear",
		Aliases:     []string{"/c"},
		Description: "Clear conversation history",
		Category:    "Conversation",
		Handler:     HandleClear,
	})

	r.Register(&Command{
		Name:        "/save",
		Aliases:     []string{"/s"},
		Description: "Save current conversation",
		Usage:       "/save [name]",
		Args: []ArgDef{
			{Name: "name", Type: ArgTypeString, Description: "Optional name for the conversation"},
		},
		Category: "Conversation",
		Handler:  HandleSave,
	})

	r.Register(&Command{
		Name:        "/load",
		Aliases:     []string{"/l", "/resume"},
		Description: "Load a saved conversation",
		Usage:       "/load <session_id>",
		Args: []ArgDef{
			{Name: "session_id", Required: true, Type: ArgTypeSession, Description: "ID of the conversation to load"},
		},
		Category: "Conversation",
		Handler:  HandleLoad,
	})

	r.Register(&Command{
		Name:        "/sessions",
		Aliases:     []string{"/list"},
		Description: "List saved conversations",
		Category:    "Conversation",
		Handler:     HandleSessions,
	})

	r.Register(&Command{
		Name:        "/export",
		Description: "Export conversation to file",
		Usage:       "/export [format]",
		Args: []ArgDef{
			{Name: "format", Type: ArgTypeEnum, Values: []string{"json", "md", "html"}, Description: "Export format"},
		},
		Category: "Conversation",
		Handler:  HandleExport,
	})

	// Table and chart
	r.Register(&Command{
		Name:        "/toggle",
		Aliases:     []string{"/t"},
		Description: "Show or hide a table column",
		Usage:       "/toggle <column>",
		Args: []ArgDef{
			{Name: "column", Required: true, Type: ArgTypeColumn, Description: "Column name to toggle"},
		},
		Category: "Table",
		Handler:  HandleToggle,
	})

	r.Register(&Command{
		Name:        "/chart",
		Description: "Chart the last result, or release the chart",
		Usage:       "/chart [off]",
		Args: []ArgDef{
			{Name: "action", Type: ArgTypeEnum, Values: []string{"off"}, Description: "off releases the current chart"},
		},
		Category: "Table",
		Handler:  HandleChart,
	})

	// Saved queries
	r.Register(&Command{
		Name:        "/keep",
		Description: "Save the most recent SQL answer under a name",
		Usage:       "/keep <name>",
		Args: []ArgDef{
			{Name: "name", Required: true, Type: ArgTypeString, Description: "Name for the saved query"},
		},
		Category: "Queries",
		Handler:  HandleKeep,
	})

	r.Register(&Command{
		Name:        "/queries",
		Description: "List saved queries",
		Usage:       "/queries [search]",
		Args: []ArgDef{
			{Name: "search", Type: ArgTypeString, Description: "Filter by name or SQL text"},
		},
		Category: "Queries",
		Handler:  HandleQueries,
	})

	r.Register(&Command{
		Name:        "/recall",
		Description: "Recall a saved query by name",
		Usage:       "/recall <name>",
		Args: []ArgDef{
			{Name: "name", Required: true, Type: ArgTypeQuery, Description: "Saved query name"},
		},
		Category: "Queries",
		Handler:  HandleRecall,
	})

	r.Register(&Command{
		Name:        "/forget",
		Description: "Delete a saved query",
		Usage:       "/forget <name>",
		Args: []ArgDef{
			{Name: "name", Required: true, Type: ArgTypeQuery, Description: "Saved query name"},
		},
		Category: "Queries",
		Handler:  HandleForget,
	})

	// Settings
	r.Register(&Command{
		Name:        "/mode",
		Aliases:     []string{"/m"},
		Description: "Switch or show the agent mode",
		Usage:       "/mode [" + modeUsage() + "]",
		Args: []ArgDef{
			{Name: "mode", Type: ArgTypeEnum, Values: model.ModeNames(), Description: "Agent mode"},
		},
		Category: "Settings",
		Handler:  HandleMode,
	})

	r.Register(&Command{
		Name:        "/status",
		Description: "Show backend and session status",
		Category:    "Settings",
		Handler:     HandleStatus,
	})
}

func modeUsage() string {
	names := model.ModeNames()
	usage := ""
	for i, n := range names {
		if i > 0 {
			usage += "|"
		}
		usage += n
	}
	return usage
}

// =============================================================================
// CONTEXT TYPE
// =============================================================================

// Context provides access to application state for command handlers.
// All fields are optional and may be nil; handlers check before use.
type Context struct {
	// Config provides access to application configuration
	Config *config.Config

	// Backend is the desk assistant client
	Backend *backend.Client

	// Storage handles conversation persistence
	Storage *storage.ConversationStore

	// Queries is the saved-query store
	Queries *storage.QueryStore

	// HandlerCtx provides additional runtime context
	HandlerCtx *HandlerContext
}

// NewContext creates a new command context with the given dependencies.
// All parameters can be nil.
func NewContext(cfg *config.Config, client *backend.Client, store *storage.ConversationStore, queries *storage.QueryStore) *Context {
	return &Context{
		Config:  cfg,
		Backend: client,
		Storage: store,
		Queries: queries,
	}
}

// WithHandlerContext attaches a HandlerContext to the Context.
func (c *Context) WithHandlerContext(hctx *HandlerContext) *Context {
	c.HandlerCtx = hctx
	return c
}
