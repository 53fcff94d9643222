package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pipewatch/pipewatch/log"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if b.quitting {
		return b, nil
	}

	cmd := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case error:
		log.Error(msg)
		b.raiseError(msg)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, b.quit()
		}
	}

	var next tea.Cmd
	switch b.state {
	case loadingState:
		next = b.updateLoading(msg)
	case playerState:
		next = b.updatePlayer(msg)
	case errorState:
		next = b.updateError(msg)
	}

	// Toasts raised while handling msg are scheduled for removal here, so nothing sends back
	// into the program from inside Update.
	return b, tea.Batch(cmd, next, b.notifier.Flush())
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		return b.start(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	}
	return nil
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg()
		b.afterEvent()
	case tickMsg:
		if !b.alive() {
			log.Info("player window closed")
			return b.quit()
		}
		b.report(b.controller.OnTick())
		return b.tick()
	case idleMsg:
		b.onIdle(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	case tea.MouseMsg:
		switch {
		case msg.Action == tea.MouseActionMotion:
			return b.pointerMoved()
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			return b.click()
		}
	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return nil
}

func (b *statefulBubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		return b.quit()
	case bubblesKey.Matches(msg, b.keymap.playPause):
		b.report(b.controller.Toggle())
	case bubblesKey.Matches(msg, b.keymap.seekBack):
		b.seekBy(-1)
	case bubblesKey.Matches(msg, b.keymap.seekForward):
		b.seekBy(1)
	case bubblesKey.Matches(msg, b.keymap.volumeUp):
		b.changeVolume(volumeStep)
	case bubblesKey.Matches(msg, b.keymap.volumeDown):
		b.changeVolume(-volumeStep)
	case bubblesKey.Matches(msg, b.keymap.nextFormat):
		b.nextFormat()
	case bubblesKey.Matches(msg, b.keymap.fullscreen):
		b.toggleFullscreen()
	case bubblesKey.Matches(msg, b.keymap.fullWindow):
		b.toggleFullWindow()
	case bubblesKey.Matches(msg, b.keymap.openURL):
		b.openWatchPage()
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	default:
		return nil
	}

	// Any handled key counts as activity.
	return b.pointerMoved()
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return b.quit()
	}
	return nil
}
