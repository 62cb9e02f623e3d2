package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/hqslab/blackbox/pkg/blackbox"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// thinkingMessages are displayed while a chat request is in flight.
var thinkingMessages = []string{
	"Thinking...",
	"Consulting the sources...",
	"Brewing a response...",
	"Crunching tokens...",
	"Searching the web...",
	"Assembling words...",
	"Weaving thoughts...",
	"Exploring possibilities...",
	"Warming up neurons...",
}

// spinnerFrames are braille characters for smooth animation.
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// mdRenderer renders markdown to terminal-formatted output.
var mdRenderer *glamour.TermRenderer

func initMarkdownRenderer(width int) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return
	}
	mdRenderer = r
}

// renderMarkdown converts markdown text to terminal-formatted output.
func renderMarkdown(text string) string {
	if mdRenderer == nil {
		return text
	}
	out, err := mdRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// truncate returns s shortened to at most n runes, with "..." appended if
// truncated. Newlines are replaced with spaces for single-line display.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// fmtDuration formats a duration for display.
func fmtDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	min := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", min, sec)
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// renderUserMessage formats a submitted query for the terminal scrollback,
// indenting continuation lines to align with the first line.
func renderUserMessage(text string) string {
	prefix := userPrefixStyle.Render("you > ")
	lines := strings.Split(text, "\n")
	if len(lines) <= 1 {
		return userBlockStyle.Render(prefix + text)
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(lines[0])
	for _, line := range lines[1:] {
		sb.WriteString("\n      ")
		sb.WriteString(line)
	}
	return userBlockStyle.Render(sb.String())
}

// renderAnswer formats a completed chat result for the terminal scrollback:
// the markdown-rendered answer followed by the sources listing.
func renderAnswer(res *blackbox.ChatResult) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(answerBlockStyle.Render(
		answerPrefixStyle.Render("blackbox > ") + renderMarkdown(strings.TrimRight(res.StreamingResponse, "\n")),
	))

	if src := renderSources(res.Sources); src != "" {
		sb.WriteString("\n\n")
		sb.WriteString(sourceHeaderStyle.Render("sources"))
		sb.WriteString("\n")
		sb.WriteString(src)
	}

	return sb.String()
}

// sourceRef is one entry of the link listing the sources endpoint usually
// returns.
type sourceRef struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// renderSources formats the raw sources JSON for terminal display. The usual
// shape is a list of link objects, rendered as a bullet list; anything else
// is shown as indented JSON so nothing the upstream sends is dropped.
func renderSources(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var refs []sourceRef
	if err := json.Unmarshal(raw, &refs); err == nil {
		refs = lo.Filter(refs, func(r sourceRef, _ int) bool {
			return r.Link != "" || r.Title != ""
		})

		if len(refs) > 0 {
			lines := lo.Map(refs, func(r sourceRef, _ int) string {
				switch {
				case r.Title != "" && r.Link != "":
					return "  • " + r.Title + " (" + r.Link + ")"
				case r.Link != "":
					return "  • " + r.Link
				default:
					return "  • " + r.Title
				}
			})
			return sourceStyle.Render(strings.Join(lines, "\n"))
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "  ", "  "); err != nil {
		return sourceStyle.Render("  " + string(raw))
	}
	return sourceStyle.Render("  " + buf.String())
}

// randomThinkingMessage returns a random thinking message.
func randomThinkingMessage() string {
	return thinkingMessages[rand.IntN(len(thinkingMessages))] //nolint:gosec // cosmetic randomness
}
