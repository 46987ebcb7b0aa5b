// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the deskchat CLI.
//
// Handles "deskchat chat": a plain readline loop for terminals where the
// full TUI is unwanted (ssh sessions, scripts driving a pty, tmux panes
// kept narrow). Answers render through the same classification pipeline
// as the TUI.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/deskchat-tui/internal/backend"
	"github.com/jeranaias/deskchat-tui/internal/config"
	"github.com/jeranaias/deskchat-tui/internal/extract"
	"github.com/jeranaias/deskchat-tui/internal/model"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
// Arrow keys navigate history; Ctrl+C aborts the current prompt.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		// Fallback to temp directory if config dir unavailable
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "chat_history")

	cli := &ChatCLI{
		line:        line,
		historyFile: historyFile,
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}

	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

const chatHelpText = `Commands:
  /mode [name]   Show or switch the agent mode
  /clear         Forget the local transcript
  /status        Show backend and session info
  /help          Show this help
  /quit          Exit (also Ctrl+D)
`

// RunChat runs the interactive readline chat loop.
func RunChat(args *Args, cfg *config.Config) int {
	if err := RequiresTTY("chat"); err != nil {
		return fatalf("%v", err)
	}

	client := newClient(args, cfg)
	if !client.IsConfigured() {
		return fatalf("no backend configured; set backend.url in ~/.deskchat/config.toml or DESKCHAT_BACKEND_URL")
	}

	mode := cfg.Backend.AgentMode
	if args.Mode != "" {
		mode = args.Mode
	}
	mode = model.GetMode(mode).Name
	conversation := model.NewConversationWithMode(mode)

	input := NewChatCLI()
	defer input.Close()

	if !args.Quiet {
		fmt.Println(TitleStyle.Render("deskchat " + Version))
		fmt.Println(DimStyle.Render("Backend: " + client.BaseURL() + "  Mode: " + mode))
		fmt.Println(DimStyle.Render("Type /help for commands, /quit to exit."))
		fmt.Println()
	}

	for {
		line, err := input.ReadInput("deskchat> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Println(DimStyle.Render("(interrupted; /quit to exit)"))
				continue
			}
			// io.EOF from Ctrl+D ends the session.
			fmt.Println()
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if done := runChatCommand(line, client, conversation, cfg); done {
				break
			}
			continue
		}

		askInChat(line, client, conversation, cfg, args)
	}

	if !args.Quiet && conversation.MessageCount() > 0 {
		fmt.Println(DimStyle.Render(fmt.Sprintf("Session: %d messages", conversation.MessageCount())))
	}
	return 0
}

// runChatCommand handles a slash command; returns true to exit the loop.
func runChatCommand(line string, client *backend.Client, conversation *model.Conversation, cfg *config.Config) bool {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/quit", "/exit", "/q":
		return true

	case "/help", "/h", "/?":
		fmt.Print(chatHelpText)

	case "/clear", "/c":
		conversation.ClearHistory()
		fmt.Println(DimStyle.Render("Transcript cleared."))

	case "/mode", "/m":
		if len(fields) < 2 {
			fmt.Println("Mode: " + HighlightStyle.Render(conversation.AgentMode))
			fmt.Println(DimStyle.Render("Available: " + strings.Join(model.ModeNames(), ", ")))
			break
		}
		if !model.IsValidMode(fields[1]) {
			fmt.Println(ErrorStyle.Render("Unknown mode: ") + fields[1])
			break
		}
		name := model.GetMode(fields[1]).Name
		conversation.AgentMode = name
		client.WithAgentMode(name)
		fmt.Println("Mode set to " + HighlightStyle.Render(name))

	case "/status", "/s":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Health(ctx)
		cancel()
		if err != nil {
			fmt.Println("Backend: " + ErrorStyle.Render("down") + DimStyle.Render(" ("+err.Error()+")"))
		} else {
			fmt.Println("Backend: " + SuccessStyle.Render("up") + DimStyle.Render(" ("+client.BaseURL()+")"))
		}
		fmt.Println(DimStyle.Render(fmt.Sprintf("Mode: %s  Messages: %d",
			conversation.AgentMode, conversation.MessageCount())))

	default:
		fmt.Println(ErrorStyle.Render("Unknown command: ") + cmd + DimStyle.Render("  (/help for commands)"))
	}
	return false
}

// askInChat sends one prompt and prints the classified answer.
func askInChat(prompt string, client *backend.Client, conversation *model.Conversation, cfg *config.Config, args *Args) {
	conversation.AddUserMessage(prompt)
	turnID := backend.NewTurnID()
	pending := conversation.AddAssistantMessage(turnID)

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout(cfg))
	defer cancel()

	start := time.Now()
	result, err := client.Ask(ctx, turnID, prompt)
	elapsed := time.Since(start)
	conversation.FinishTurn(turnID)

	if err != nil {
		pending.Fail(err.Error())
		fmt.Println(ErrorStyle.Render("Error: ") + err.Error())
		return
	}

	format, table := extract.Extract(result.Response)
	pending.Complete(result.Response, format.String(), elapsed)

	fmt.Println(RenderAnswer(result.Response, format, table, cfg))
	if !args.Quiet {
		fmt.Println(DimStyle.Render(fmt.Sprintf("(%s, %s)", format, elapsed.Round(time.Millisecond))))
	}
	fmt.Println()
}
