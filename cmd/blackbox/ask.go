package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hqslab/blackbox/pkg/blackbox"
)

// runAsk sends a single query and prints the answer to stdout. By default the
// answer is echoed line by line as it streams in.
func runAsk(args []string) error {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: blackbox ask [flags] <query>\n\nAsk one question and print the answer.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "path to configuration file (default: blackbox.yaml if present)")
	envFile := fs.String("env", ".env", "path to .env file (ignored if missing)")
	modelName := fs.String("model", "", "model to chat with (overrides config)")
	render := fs.Bool("render", false, "render the answer as markdown instead of echoing raw lines")
	noSources := fs.Bool("no-sources", false, "do not print the sources listing")
	_ = fs.Parse(args)

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fs.Usage()
		return fmt.Errorf("ask: query is required")
	}

	if err := loadDotEnv(*envFile); err != nil {
		return err
	}

	client, defaultModel, err := buildClient(*configPath)
	if err != nil {
		return err
	}

	name := *modelName
	if name == "" {
		name = defaultModel
	}
	if _, err := blackbox.ResolveModel(name); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// In render mode the raw lines stay quiet and the formatted answer is
	// printed once the request completes.
	if !*render {
		client.Echo = os.Stdout
	}

	result, err := client.Chat(ctx, query, name)
	if err != nil {
		return err
	}

	if *render {
		initMarkdownRenderer(100)
		fmt.Println(renderMarkdown(strings.TrimRight(result.StreamingResponse, "\n")))
	}

	if !*noSources {
		if src := renderSources(result.Sources); src != "" {
			fmt.Println()
			fmt.Println("sources:")
			fmt.Println(src)
		}
	}

	return nil
}
