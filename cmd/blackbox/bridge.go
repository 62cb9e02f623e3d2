package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// lineWriter adapts the client's Echo sink to the running bubbletea program.
// The client writes one line per call from the request goroutine; each write
// is forwarded as a streamLineMsg. The goroutine only calls p.Send — it never
// touches model state directly.
type lineWriter struct {
	program *tea.Program
}

func (w *lineWriter) Write(b []byte) (int, error) {
	w.program.Send(streamLineMsg{line: strings.TrimRight(string(b), "\r\n")})
	return len(b), nil
}
