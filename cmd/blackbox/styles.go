package main

import "github.com/charmbracelet/lipgloss"

// Centralized style definitions for the TUI.
var (
	// User message styles.
	userPrefixStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")) // blue
	userBlockStyle  = lipgloss.NewStyle().PaddingLeft(1)

	// Answer styles.
	answerPrefixStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	answerBlockStyle  = lipgloss.NewStyle().PaddingLeft(1)

	// Sources listing styles.
	sourceHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
	sourceStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// Spinner / animation styles.
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")) // magenta

	// Live streamed text style.
	streamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	// General utility styles.
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray/dim
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// Error block style.
	errorBlockStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("1"))
)
