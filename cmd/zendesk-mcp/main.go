package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/helpdesk-io/zendesk-mcp/internal/cache"
	"github.com/helpdesk-io/zendesk-mcp/internal/config"
	"github.com/helpdesk-io/zendesk-mcp/internal/kb"
	"github.com/helpdesk-io/zendesk-mcp/internal/mcp"
	"github.com/helpdesk-io/zendesk-mcp/internal/zendesk"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "zendesk-mcp",
	Short: "MCP server exposing Zendesk tickets, knowledge base, and macros to AI assistants",
	Long: `zendesk-mcp speaks the Model Context Protocol over stdin/stdout.

Point an MCP-capable agent runtime at this binary and it gains tools to
fetch tickets, read and post comments, download attachments, search and
apply macros, and browse the help-center knowledge base.

Credentials come from ZENDESK_SUBDOMAIN, ZENDESK_EMAIL, and ZENDESK_API_KEY,
or from a config file passed with --config.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	RunE:  runServe,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := json.MarshalIndent(mcp.ToolRegistry, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (optional)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol; all logging goes to stderr.
	logger := log.New(os.Stderr, "zendesk-mcp ", log.LstdFlags)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := zendesk.NewHTTPClient(
		cfg.Zendesk.Subdomain,
		cfg.Zendesk.Email,
		cfg.Zendesk.APIToken,
		cfg.Zendesk.Timeout,
	)
	store := kb.NewStore(client, cache.New())
	server := mcp.NewServer(client, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Printf("serving %s (zendesk subdomain %s)", rootCmd.Version, cfg.Zendesk.Subdomain)
	return server.ServeStdio(ctx, os.Stdin, os.Stdout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
