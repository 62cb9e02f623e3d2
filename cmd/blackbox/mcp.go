package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hqslab/blackbox/pkg/mcpserver"
)

// runMCP serves the client as MCP tools over stdio. Stdout carries the
// protocol, so logs go to stderr.
func runMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: blackbox mcp [flags]\n\nServe blackbox_chat and blackbox_models as MCP tools over stdio.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "path to configuration file (default: blackbox.yaml if present)")
	envFile := fs.String("env", ".env", "path to .env file (ignored if missing)")
	_ = fs.Parse(args)

	if err := loadDotEnv(*envFile); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client, _, err := buildClient(*configPath)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("serving MCP over stdio", "version", appVersion)

	srv := mcpserver.New(client, "blackbox", appVersion)
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		return err
	}

	logger.Info("shutting down")

	return nil
}
