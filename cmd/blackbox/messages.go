package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hqslab/blackbox/pkg/blackbox"
)

// streamLineMsg delivers one streamed answer line from the request goroutine.
type streamLineMsg struct {
	line string
}

// chatDoneMsg is returned by the tea.Cmd that runs client.Chat.
type chatDoneMsg struct {
	result   *blackbox.ChatResult
	err      error
	duration time.Duration
}

// inputSubmitMsg carries the text the user submitted from the input box.
type inputSubmitMsg struct {
	text string
}

// programReadyMsg passes the *tea.Program to the model so the stream bridge
// can be wired up.
type programReadyMsg struct {
	program *tea.Program
}

// initDrainMsg fires after a short delay so that stale terminal responses
// (e.g. OSC 11 background-color replies) are discarded before focusing input.
type initDrainMsg struct{}

// tickMsg drives the spinner animation while a request is in flight.
type tickMsg time.Time
