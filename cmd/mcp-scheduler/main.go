// Command mcp-scheduler exposes the Postly reminder calendar over MCP.
//
// Usage:
//
//	./mcp-scheduler          # Start MCP server (stdio)
//	./mcp-scheduler --help   # Show help
//
// Environment:
//
//	POSTLY_CONFIG  Path to the config file (default: ~/.postly/config.yaml)
//	POSTLY_TOKEN   API access token; otherwise the session saved by `postly login`
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/notexe/postly-cli/internal/app"
	"github.com/notexe/postly-cli/internal/config"
	"github.com/notexe/postly-cli/internal/mcpserver"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	configPath := os.Getenv("POSTLY_CONFIG")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	// stdout carries the protocol, so colors are off and logs go to the
	// configured file or stderr.
	a, err := app.New(configPath, app.Overrides{NoColor: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	s := mcpserver.NewServer(a.Client, a.Location, a.Config.DefaultPlatform(), a.Logger)

	a.Logger.Info("serving MCP over stdio", zap.String("base_url", a.Client.BaseURL()))
	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		a.Close()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Scheduler Server - Postly reminder calendar via MCP protocol

USAGE:
    mcp-scheduler          Start MCP server (communicates via stdio)
    mcp-scheduler --help   Show this help

ENVIRONMENT:
    POSTLY_CONFIG  Path to the config file
                   Default: ~/.postly/config.yaml
    POSTLY_TOKEN   API access token (otherwise run "postly login" first)

TOOLS:
    list_reminders         List reminders (optional month YYYY-MM)
    calendar_month         Day-by-day reminder counts for a month
    add_reminder           Schedule a reminder (date, time, platform, note, notify_email, draft_id)
    delete_reminder        Delete a reminder permanently
    suggest_posting_times  Recommended posting times for a platform
    list_drafts            Content drafts that can be attached to reminders
    generate_plan          Generate an AI posting plan (days)

CONFIGURATION:
    {
      "mcpServers": {
        "postly": {
          "command": "/path/to/mcp-scheduler",
          "args": []
        }
      }
    }`)
}
