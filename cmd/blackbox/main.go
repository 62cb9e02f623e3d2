package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hqslab/blackbox/pkg/blackbox"
)

const appVersion = "0.1.0"

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "ask":
			if err := runAsk(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "models":
			runModels()

			return
		case "init":
			initCmd := flag.NewFlagSet("init", flag.ExitOnError)
			initCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: blackbox init [flags]\n\nCreate a blackbox.yaml config through an interactive wizard.\n\nFlags:\n")
				initCmd.PrintDefaults()
			}
			out := initCmd.String("o", "blackbox.yaml", "path to write the config file")
			force := initCmd.Bool("force", false, "overwrite an existing config file")
			_ = initCmd.Parse(os.Args[2:])

			if err := runInit(*out, *force); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "mcp":
			if err := runMCP(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: blackbox [flags]\n       blackbox <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  ask     Ask one question and print the answer\n  models  List the available chat models\n  init    Create a blackbox.yaml config through an interactive wizard\n  mcp     Serve the client as MCP tools over stdio\n")
	}

	configPath := flag.String("config", "", "path to configuration file (default: blackbox.yaml if present)")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	modelName := flag.String("model", "", "model to chat with (overrides config)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath, *modelName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, modelName string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, defaultModel, err := buildClient(configPath)
	if err != nil {
		return err
	}

	if modelName == "" {
		modelName = defaultModel
	}
	if _, err := blackbox.ResolveModel(modelName); err != nil {
		return err
	}

	model := newAppModel(ctx, client, modelName)

	flushStdinBuffer()

	p := tea.NewProgram(model, tea.WithFilter(filterStaleEscapes))

	// Send the program reference so the model can wire the stream bridge.
	go func() {
		p.Send(programReadyMsg{program: p})
	}()

	_, err = p.Run()
	return err
}

func runModels() {
	for _, name := range blackbox.ModelNames() {
		m, _ := blackbox.ResolveModel(name)
		fmt.Printf("%-18s %s\n", name, m)
	}
}
