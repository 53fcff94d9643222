package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/pipewatch/pipewatch/color"
	"github.com/pipewatch/pipewatch/icon"
	"github.com/pipewatch/pipewatch/playback"
	"github.com/pipewatch/pipewatch/style"
	"github.com/pipewatch/pipewatch/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " fetching " + b.options.VideoID,
		},
	)
}

func (b *statefulBubble) viewPlayer() string {
	var (
		clock = b.controller.Clock()
		s     = b.controller.Style()
	)

	timeline := []string{
		b.progressC.ViewAs(clock.Progress()),
		fmt.Sprintf("%s / %s  %s", clock.CurrentText(), clock.DurationText(), b.stateLabel()),
	}

	if s.FullWindow {
		return paddingStyle.Render(strings.Join(timeline, "\n"))
	}

	if !s.ControlsVisible {
		return b.renderLines(false, []string{style.Faint(b.fit(b.video.Title))})
	}

	variant := b.controller.Variant()
	lines := []string{
		titleStyle.Render("Now Playing"),
		"",
		style.Fg(color.Purple)(b.fit(b.video.Title)),
		style.Faint(b.fit(b.video.Uploader)),
		"",
	}
	lines = append(lines, timeline...)
	lines = append(lines,
		"",
		b.fit(fmt.Sprintf("%s %s", trackIcon(variant), variant.Label())),
		fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), int(b.controller.Volume()*100+0.5)),
	)

	if segments := b.controller.Segments(); len(segments) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", icon.Get(icon.Skip), util.Quantify(len(segments), "segment", "segments")))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) stateLabel() string {
	switch b.controller.State() {
	case playback.StatePlaying:
		return icon.Get(icon.Play)
	case playback.StatePaused:
		return icon.Get(icon.Pause)
	case playback.StateLoading:
		return b.spinnerC.View()
	default:
		return style.Faint("ready")
	}
}

func trackIcon(v playback.Variant) string {
	if v.Kind == playback.KindAudioOnly {
		return icon.Get(icon.Audio)
	}
	return icon.Get(icon.Video)
}

// fit shortens s to the view width.
func (b *statefulBubble) fit(s string) string {
	if b.width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(b.width), "…")
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(b.lastError.Error())
	if b.width > 0 {
		errorBody = wrap.String(errorBody, b.width)
	}
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Playback could not start:",
			"",
			errorBody,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
