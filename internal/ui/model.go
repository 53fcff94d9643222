// Package ui renders short-lived toast notifications below the main view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pipewatch/pipewatch/style"
)

// Lifetime is how long a toast stays visible.
const Lifetime = 3 * time.Second

// Model holds the current toast. It satisfies playback.Notifier: Notify only records the
// message, so it is safe to call from inside a Bubble Tea Update. The host returns Flush()
// from Update to schedule the toast's removal.
type Model struct {
	notification string
	generation   int
	dirty        bool
}

// NotificationMsg shows a toast when sent into the program from outside Update.
type NotificationMsg string

// ClearNotificationMsg hides the toast it was scheduled for, unless a newer one replaced it.
type ClearNotificationMsg struct {
	generation int
}

// Notify replaces the current toast.
func (m *Model) Notify(message string) {
	m.notification = message
	m.generation++
	m.dirty = true
}

// Flush schedules the removal of a toast raised since the last call.
func (m *Model) Flush() tea.Cmd {
	if !m.dirty {
		return nil
	}
	m.dirty = false

	generation := m.generation
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{generation: generation}
	})
}

// Update handles toast messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.Notify(string(msg))
		return m.Flush()
	case ClearNotificationMsg:
		if msg.generation == m.generation {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the visible toast.
func (m *Model) Current() string {
	return m.notification
}

// View appends the toast to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
