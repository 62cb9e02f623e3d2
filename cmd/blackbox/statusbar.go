package main

import (
	"fmt"
	"time"
)

// statusBarModel shows the active model and last request timing.
type statusBarModel struct {
	modelName string
	duration  time.Duration
}

func newStatusBar(modelName string) statusBarModel {
	return statusBarModel{modelName: modelName}
}

func (m statusBarModel) View() string {
	if m.duration > 0 {
		return statusStyle.Render(fmt.Sprintf(" model: %s · %s", m.modelName, fmtDuration(m.duration)))
	}
	return statusStyle.Render(fmt.Sprintf(" model: %s", m.modelName))
}
