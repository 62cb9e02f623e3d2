package blackbox

import (
	"slices"
	"strings"
)

// Model identifies an upstream chat model by its wire id.
type Model string

// Available chat models.
const (
	GPT4o          Model = "gpt-4o"
	GeminiPro      Model = "gemini-pro"
	ClaudeSonnet35 Model = "claude-sonnet-3.5"
	BlackboxAIPro  Model = "blackboxai-pro"
	BlackboxAI     Model = "blackboxai"
)

// DefaultModelName is the friendly name Chat falls back to when no model is
// given.
const DefaultModelName = "GPT_4O"

// modelNames lists the friendly model names in declaration order. The order
// is part of the ModelNotFoundError message.
var modelNames = []string{
	"GPT_4O",
	"GEMINI_PRO",
	"CLAUDE_SONNET_35",
	"BLACKBOX_AI_PRO",
	"BLACKBOX_AI",
}

var modelsByName = map[string]Model{
	"GPT_4O":           GPT4o,
	"GEMINI_PRO":       GeminiPro,
	"CLAUDE_SONNET_35": ClaudeSonnet35,
	"BLACKBOX_AI_PRO":  BlackboxAIPro,
	"BLACKBOX_AI":      BlackboxAI,
}

// ResolveModel maps a friendly model name to its wire id. Lookup is
// case-insensitive. Unknown names return a *ModelNotFoundError that lists
// every valid name.
func ResolveModel(name string) (Model, error) {
	if m, ok := modelsByName[strings.ToUpper(name)]; ok {
		return m, nil
	}

	return "", &ModelNotFoundError{Name: name}
}

// ModelNames returns the friendly names of every available model in a fixed
// order.
func ModelNames() []string {
	return slices.Clone(modelNames)
}
