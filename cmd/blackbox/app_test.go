package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hqslab/blackbox/pkg/blackbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() appModel {
	return newAppModel(context.Background(), blackbox.New(nil), blackbox.DefaultModelName)
}

func TestChatViewIdleIsEmpty(t *testing.T) {
	cv := newChatView()
	assert.Empty(t, cv.View())
}

func TestChatViewProcessing(t *testing.T) {
	cv := newChatView()
	cv.setProcessing(true)

	view := cv.View()
	assert.Contains(t, view, cv.processingMsg)
}

func TestChatViewShowsTailOfStreamedLines(t *testing.T) {
	cv := newChatView()
	cv.setProcessing(true)
	for i := 1; i <= 10; i++ {
		cv.addLine(fmt.Sprintf("alpha%02d", i))
	}

	view := cv.View()
	assert.Contains(t, view, "alpha10")
	assert.Contains(t, view, "alpha05")
	assert.NotContains(t, view, "alpha04")
	assert.Contains(t, view, "4 earlier lines")
}

func TestChatViewReset(t *testing.T) {
	cv := newChatView()
	cv.setProcessing(true)
	cv.addLine("something")
	cv.reset()

	assert.Empty(t, cv.lines)
	assert.NotContains(t, cv.View(), "something")
}

func TestStatusBar(t *testing.T) {
	sb := newStatusBar("GPT_4O")
	assert.Contains(t, sb.View(), "model: GPT_4O")

	sb.duration = 2 * time.Second
	assert.Contains(t, sb.View(), "2.0s")
}

func TestHelpText(t *testing.T) {
	help := helpText()
	assert.Contains(t, help, "/help")
	assert.Contains(t, help, "/models")
	assert.Contains(t, help, "/model NAME")
	assert.Contains(t, help, "/quit")
	assert.Contains(t, help, "Esc")
}

func TestModelsText(t *testing.T) {
	out := modelsText()
	for _, name := range blackbox.ModelNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "gpt-4o")
}

func TestAppSwitchesModel(t *testing.T) {
	m := newTestApp()

	updated, cmd := m.handleCommand("/model claude_sonnet_35")
	app := updated.(*appModel)

	assert.Equal(t, "CLAUDE_SONNET_35", app.modelName)
	assert.Equal(t, "CLAUDE_SONNET_35", app.statusBar.modelName)
	assert.NotNil(t, cmd)
}

func TestAppRejectsUnknownModel(t *testing.T) {
	m := newTestApp()

	updated, cmd := m.handleCommand("/model nope")
	app := updated.(*appModel)

	assert.Equal(t, blackbox.DefaultModelName, app.modelName)
	assert.NotNil(t, cmd)
}

func TestAppStartChat(t *testing.T) {
	m := newTestApp()

	updated, cmd := m.startChat("hi")
	app := updated.(*appModel)

	assert.Equal(t, stateProcessing, app.state)
	assert.True(t, app.chatView.processing)
	assert.False(t, app.inputBox.enabled)
	require.NotNil(t, app.cancelRequest)
	assert.NotNil(t, cmd)

	app.cancelRequest()
}

func TestAppChatDone(t *testing.T) {
	m := newTestApp()
	updated, _ := m.startChat("hi")
	app := updated.(*appModel)

	done, cmd := app.handleChatDone(chatDoneMsg{
		result:   &blackbox.ChatResult{StreamingResponse: "answer\n"},
		duration: time.Second,
	})
	appDone := done.(*appModel)

	assert.Equal(t, stateIdle, appDone.state)
	assert.False(t, appDone.chatView.processing)
	assert.Empty(t, appDone.chatView.lines)
	assert.True(t, appDone.inputBox.enabled)
	assert.Equal(t, time.Second, appDone.statusBar.duration)
	assert.NotNil(t, cmd)
}

func TestAppEscCancelsInFlightRequest(t *testing.T) {
	m := newTestApp()
	m.state = stateProcessing

	var called bool
	m.cancelRequest = func() { called = true }

	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, called)
}

func TestAppCollectsStreamLinesWhileProcessing(t *testing.T) {
	m := newTestApp()
	m.state = stateProcessing

	updated, _ := m.Update(streamLineMsg{line: "first"})
	app := updated.(appModel)

	assert.Equal(t, []string{"first"}, app.chatView.lines)
}

func TestAppIgnoresStreamLinesWhenIdle(t *testing.T) {
	m := newTestApp()

	updated, _ := m.Update(streamLineMsg{line: "stale"})
	app := updated.(appModel)

	assert.Empty(t, app.chatView.lines)
}

func TestAppWiresEchoOnProgramReady(t *testing.T) {
	client := blackbox.New(nil)
	m := newAppModel(context.Background(), client, blackbox.DefaultModelName)

	m.Update(programReadyMsg{})

	require.NotNil(t, client.Echo)
	assert.IsType(t, &lineWriter{}, client.Echo)
}
