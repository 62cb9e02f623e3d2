package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

// filterStaleEscapes is a tea.WithFilter callback that suppresses all
// user-input messages while the input box is disabled (during the post-startup
// drain window). This prevents late-arriving terminal escape sequence
// fragments (e.g. OSC 11 background-color replies, cursor position reports)
// from entering the textarea, regardless of how the parser delivers them.
// Ctrl+C is always allowed through so the user can exit.
func filterStaleEscapes(m tea.Model, msg tea.Msg) tea.Msg {
	var enabled bool
	switch app := m.(type) {
	case appModel:
		enabled = app.inputBox.enabled
	case *appModel:
		enabled = app.inputBox.enabled
	default:
		return msg
	}

	if enabled {
		return msg
	}

	// While input is disabled, suppress key messages — they can only be
	// escape-sequence fragments since the user hasn't been prompted to type
	// yet. Allow Ctrl+C through for emergency exit.
	if key, isKey := msg.(tea.KeyMsg); isKey {
		if key.Type == tea.KeyCtrlC {
			return msg
		}
		return nil
	}

	return msg
}
