package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pipewatch/pipewatch/catalog"
	"github.com/pipewatch/pipewatch/playback"
	"github.com/samber/mo"
)

// Options encapsulates the runtime configuration of one video view.
type Options struct {
	VideoID string
	// Video is an already fetched listing; the catalog is queried when it is nil.
	Video *catalog.Video
	// Variant overrides the configured format preference.
	Variant    mo.Option[playback.Variant]
	Preference catalog.Preference
	// Continue resumes from the position saved in history.
	Continue bool
	// Platform selects the quirk set: reference, divergent or auto.
	Platform string
}

// Run plays one video until the user quits or the video window is closed.
func Run(options *Options) error {
	bubble := newBubble(options)

	program := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseAllMotion())
	bubble.send = program.Send

	_, err := program.Run()
	bubble.closePipelines()
	return err
}
