package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the spinner and fetches the listing and skip segments.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.fetch())
}
