package blackbox

import "time"

// Config controls chat request parameters. The zero value disables every
// option; use DefaultConfig for the settings the upstream web client ships
// with.
type Config struct {
	MaxTokens           int           // Maximum tokens in the generated answer.
	DeepSearchMode      bool          // Ask the upstream for a deeper source search.
	WebSearchModePrompt bool          // Let the upstream rewrite the prompt for web search.
	Timeout             time.Duration // Per-request timeout for both endpoints.
}

// DefaultConfig returns the default chat configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:           1024,
		DeepSearchMode:      true,
		WebSearchModePrompt: true,
		Timeout:             30 * time.Second,
	}
}
