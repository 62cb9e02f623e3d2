package main

import (
	"fmt"
	"strings"
)

// liveTailLines bounds how many streamed lines the live region shows while an
// answer is still arriving. The full answer is committed to the scrollback
// once the request completes.
const liveTailLines = 6

// chatViewModel renders the live portion of the chat: the spinner and the
// tail of the answer streamed so far. Committed content is printed to the
// terminal scrollback via tea.Println and is not part of this view.
type chatViewModel struct {
	processing    bool
	spinnerIdx    int
	processingMsg string
	lines         []string
	height        int
	width         int
}

func newChatView() chatViewModel {
	return chatViewModel{}
}

func (m chatViewModel) View() string {
	if !m.processing {
		return ""
	}

	var sb strings.Builder

	frame := spinnerFrames[m.spinnerIdx%len(spinnerFrames)]
	fmt.Fprintf(&sb, "  %s %s\n",
		spinnerStyle.Render(frame),
		spinnerStyle.Render(m.processingMsg),
	)

	tail := m.lines
	if len(tail) > liveTailLines {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  … %d earlier lines", len(tail)-liveTailLines)))
		sb.WriteString("\n")
		tail = tail[len(tail)-liveTailLines:]
	}

	for _, line := range tail {
		sb.WriteString(streamStyle.Render("  " + line))
		sb.WriteString("\n")
	}

	return sb.String()
}

// addLine appends one streamed answer line to the live region.
func (m *chatViewModel) addLine(line string) {
	m.lines = append(m.lines, line)
}

// reset clears the streamed lines, typically right before the completed
// answer is committed to the scrollback.
func (m *chatViewModel) reset() {
	m.lines = nil
	m.spinnerIdx = 0
}

// setProcessing sets the processing state and picks a spinner message.
func (m *chatViewModel) setProcessing(on bool) {
	m.processing = on
	if on {
		m.processingMsg = randomThinkingMessage()
	}
}

// advanceSpinner increments the spinner frame.
func (m *chatViewModel) advanceSpinner() {
	m.spinnerIdx++
}

func (m *chatViewModel) setSize(width, height int) {
	m.width = width
	m.height = height
}
