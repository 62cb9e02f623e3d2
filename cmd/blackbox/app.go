package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hqslab/blackbox/pkg/blackbox"
)

// appState represents the application state machine.
type appState int

const (
	stateIdle appState = iota
	stateProcessing
)

// appModel is the root bubbletea model.
type appModel struct {
	ctx           context.Context
	client        *blackbox.Client
	modelName     string
	chatView      chatViewModel
	inputBox      inputModel
	statusBar     statusBarModel
	state         appState
	cancelRequest context.CancelFunc
	width         int
	height        int
	sendStart     time.Time
}

func newAppModel(ctx context.Context, client *blackbox.Client, modelName string) appModel {
	return appModel{
		ctx:       ctx,
		client:    client,
		modelName: modelName,
		chatView:  newChatView(),
		inputBox:  newInput(),
		statusBar: newStatusBar(modelName),
		state:     stateIdle,
	}
}

func (m appModel) Init() tea.Cmd {
	// Delay focusing the input so that stale terminal escape-sequence
	// responses (e.g. OSC 11 background-color) are drained first.
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return initDrainMsg{}
	})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case initDrainMsg:
		cmd := m.inputBox.enable()
		return m, cmd

	case programReadyMsg:
		// Route streamed answer lines from the request goroutine into the
		// update loop.
		m.client.Echo = &lineWriter{program: msg.program}
		return m, nil

	case inputSubmitMsg:
		return m.handleSubmit(msg)

	case streamLineMsg:
		if m.state == stateProcessing {
			m.chatView.addLine(msg.line)
			m.recalcLayout()
		}
		return m, nil

	case chatDoneMsg:
		return m.handleChatDone(msg)

	case tickMsg:
		if m.state == stateProcessing {
			m.chatView.advanceSpinner()
			return m, tickCmd()
		}
		return m, nil
	}

	// Delegate to the input box when idle.
	if m.state == stateIdle {
		var cmd tea.Cmd
		m.inputBox, cmd = m.inputBox.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.chatView.View(),
		m.inputBox.View(),
		m.statusBar.View(),
	)
}

func (m *appModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	initMarkdownRenderer(m.width - 4)
	m.inputBox.setWidth(m.width)
	m.recalcLayout()

	return m, nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.cancelRequest != nil {
			m.cancelRequest()
		}
		return m, tea.Quit
	}

	// Esc cancels an in-flight request; the pending chatDoneMsg reports the
	// cancellation.
	if msg.Type == tea.KeyEsc && m.state == stateProcessing {
		if m.cancelRequest != nil {
			m.cancelRequest()
		}
		return m, nil
	}

	// Forward to the input box when idle.
	if m.state == stateIdle {
		var cmd tea.Cmd
		m.inputBox, cmd = m.inputBox.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *appModel) handleSubmit(msg inputSubmitMsg) (tea.Model, tea.Cmd) {
	text := msg.text

	if strings.HasPrefix(text, "/") {
		return m.handleCommand(text)
	}

	return m.startChat(text)
}

func (m *appModel) handleCommand(text string) (tea.Model, tea.Cmd) {
	cmd, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		return m, tea.Quit

	case "/help":
		return m, tea.Println(helpText())

	case "/models":
		return m, tea.Println(modelsText())

	case "/model":
		if arg == "" {
			return m, tea.Println(dimStyle.Render("current model: " + m.modelName))
		}
		if _, err := blackbox.ResolveModel(arg); err != nil {
			return m, tea.Println(errorBlockStyle.Render("error: " + err.Error()))
		}
		m.modelName = strings.ToUpper(arg)
		m.statusBar.modelName = m.modelName
		return m, tea.Println(dimStyle.Render("switched to " + m.modelName))

	default:
		return m, tea.Println(dimStyle.Render("unknown command: " + cmd + " (try /help)"))
	}
}

func (m *appModel) startChat(text string) (tea.Model, tea.Cmd) {
	m.state = stateProcessing
	m.inputBox.disable()
	m.chatView.setProcessing(true)
	m.sendStart = time.Now()

	reqCtx, cancel := context.WithCancel(m.ctx)
	m.cancelRequest = cancel

	// Run the request in a background goroutine via tea.Cmd.
	client := m.client
	modelName := m.modelName
	start := m.sendStart
	sendCmd := func() tea.Msg {
		result, err := client.Chat(reqCtx, text, modelName)
		return chatDoneMsg{result: result, err: err, duration: time.Since(start)}
	}

	return m, tea.Batch(
		tea.Println(renderUserMessage(text)),
		sendCmd,
		tickCmd(),
	)
}

func (m *appModel) handleChatDone(msg chatDoneMsg) (tea.Model, tea.Cmd) {
	if m.cancelRequest != nil {
		m.cancelRequest()
		m.cancelRequest = nil
	}

	m.statusBar.duration = msg.duration
	m.state = stateIdle
	m.chatView.setProcessing(false)
	m.chatView.reset()
	focusCmd := m.inputBox.enable()
	m.recalcLayout()

	var commit tea.Cmd
	switch {
	case msg.err != nil && errors.Is(msg.err, context.Canceled) && m.ctx.Err() == nil:
		commit = tea.Println(dimStyle.Render("(cancelled)"))
	case msg.err != nil && m.ctx.Err() == nil:
		commit = tea.Println(errorBlockStyle.Render("error: " + msg.err.Error()))
	case msg.err == nil:
		commit = tea.Println(renderAnswer(msg.result))
	}

	if commit == nil {
		return m, focusCmd
	}
	return m, tea.Batch(commit, focusCmd)
}

func (m *appModel) recalcLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// Status bar = 1 line, input box ~ border(2) + content lines.
	statusHeight := 1
	inputHeight := lipgloss.Height(m.inputBox.View())
	chatHeight := max(m.height-inputHeight-statusHeight, 1)
	m.chatView.setSize(m.width, chatHeight)
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func helpText() string {
	return dimStyle.Render(
		"Commands:\n" +
			"  /help          Show this help message\n" +
			"  /models        List the available chat models\n" +
			"  /model NAME    Switch to another model\n" +
			"  /quit          Exit the chat\n\n" +
			"Shortcuts:\n" +
			"  Enter          Submit message\n" +
			"  Alt+Enter      New line\n" +
			"  Esc            Cancel the current request\n" +
			"  Ctrl+C         Exit",
	)
}

func modelsText() string {
	var sb strings.Builder
	sb.WriteString("Models:\n")
	for _, name := range blackbox.ModelNames() {
		id, _ := blackbox.ResolveModel(name)
		fmt.Fprintf(&sb, "  %-18s %s\n", name, id)
	}
	return dimStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
