package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/hqslab/blackbox/pkg/blackbox"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// runInit walks through the config wizard and writes the result to outPath.
func runInit(outPath string, force bool) error {
	if !force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("init: %s already exists (use -force to overwrite)", outPath)
		}
	}

	data, err := runWizard()
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil { //nolint:gosec // config file, not a secret
		return fmt.Errorf("init: %w", err)
	}

	fmt.Printf("Wrote %s\n", outPath)

	return nil
}

func runWizard() ([]byte, error) {
	def := blackbox.DefaultConfig()

	modelName := blackbox.DefaultModelName
	maxTokens := strconv.Itoa(def.MaxTokens)
	deepSearch := def.DeepSearchMode
	webSearch := def.WebSearchModePrompt
	timeout := def.Timeout.String()

	modelOpts := lo.Map(blackbox.ModelNames(), func(name string, _ int) huh.Option[string] {
		return huh.NewOption(name, name)
	})

	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Default model").
			Options(modelOpts...).
			Value(&modelName),
		huh.NewInput().Title("Max tokens").Value(&maxTokens).Validate(validatePositiveInt),
		huh.NewConfirm().Title("Enable deep search mode?").Value(&deepSearch),
		huh.NewConfirm().Title("Enable web search mode prompt?").Value(&webSearch),
		huh.NewInput().Title("Request timeout (e.g. 30s, 2m)").Value(&timeout).Validate(validateDuration),
	)).Run(); err != nil {
		return nil, err
	}

	tokens, _ := strconv.Atoi(maxTokens)

	return marshalWizardConfig(wizardYAML{
		Model:               modelName,
		MaxTokens:           tokens,
		DeepSearchMode:      deepSearch,
		WebSearchModePrompt: webSearch,
		Timeout:             timeout,
	})
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}

	return nil
}

func validateDuration(s string) error {
	if s == "" {
		return nil
	}

	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("must be a valid duration (e.g. 1s, 500ms)")
	}

	return nil
}

// YAML output type.

type wizardYAML struct {
	Model               string `yaml:"model"`
	MaxTokens           int    `yaml:"max_tokens"`
	DeepSearchMode      bool   `yaml:"deep_search_mode"`
	WebSearchModePrompt bool   `yaml:"web_search_mode_prompt"`
	Timeout             string `yaml:"timeout"`
	BaseURL             string `yaml:"base_url,omitempty"`
}

func marshalWizardConfig(cfg wizardYAML) ([]byte, error) {
	return yaml.Marshal(cfg)
}
