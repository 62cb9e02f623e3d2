package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hqslab/blackbox/pkg/blackbox"
	"gopkg.in/yaml.v3"
)

// cliConfig is the optional blackbox.yaml configuration. Every field has a
// built-in default, so the file (and any field in it) may be omitted.
type cliConfig struct {
	Model               string `yaml:"model"`
	MaxTokens           int    `yaml:"max_tokens"`
	DeepSearchMode      *bool  `yaml:"deep_search_mode"`
	WebSearchModePrompt *bool  `yaml:"web_search_mode_prompt"`
	Timeout             string `yaml:"timeout"`  // Duration string (e.g. "30s", "2m").
	BaseURL             string `yaml:"base_url"` // Override for proxies and testing.
}

// loadCLIConfig reads a YAML file and returns a cliConfig. Environment
// variables referenced as ${VAR} or $VAR in the YAML are expanded before
// parsing. An empty path returns the zero config.
func loadCLIConfig(path string) (cliConfig, error) {
	if path == "" {
		return cliConfig{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return cliConfig{}, fmt.Errorf("load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg cliConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return cliConfig{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cliConfig{}, err
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c cliConfig) Validate() error {
	if c.Model != "" {
		if _, err := blackbox.ResolveModel(c.Model); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	if c.MaxTokens < 0 {
		return fmt.Errorf("config: max_tokens must not be negative")
	}

	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("config: invalid timeout %q: %w", c.Timeout, err)
		}
	}

	return nil
}

// chatConfig merges the file settings over the built-in defaults.
func (c cliConfig) chatConfig() blackbox.Config {
	conf := blackbox.DefaultConfig()

	if c.MaxTokens > 0 {
		conf.MaxTokens = c.MaxTokens
	}
	if c.DeepSearchMode != nil {
		conf.DeepSearchMode = *c.DeepSearchMode
	}
	if c.WebSearchModePrompt != nil {
		conf.WebSearchModePrompt = *c.WebSearchModePrompt
	}
	if c.Timeout != "" {
		// Validated above.
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			conf.Timeout = d
		}
	}

	return conf
}

// resolveConfigPath returns the config file to use. Priority:
// 1. Explicit --config flag (non-empty)
// 2. blackbox.yaml (if it exists)
// 3. Built-in defaults (empty path)
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat("blackbox.yaml"); err == nil {
		return "blackbox.yaml"
	}

	return ""
}

// buildClient constructs a client from the resolved config file and returns
// it together with the configured default model name.
func buildClient(configPath string) (*blackbox.Client, string, error) {
	cfg, err := loadCLIConfig(resolveConfigPath(configPath))
	if err != nil {
		return nil, "", err
	}

	conf := cfg.chatConfig()
	client := blackbox.New(&conf)

	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = blackbox.DefaultModelName
	}

	return client, modelName, nil
}
