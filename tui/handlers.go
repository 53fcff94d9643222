package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pipewatch/pipewatch/catalog"
	"github.com/pipewatch/pipewatch/history"
	"github.com/pipewatch/pipewatch/key"
	"github.com/pipewatch/pipewatch/log"
	"github.com/pipewatch/pipewatch/open"
	"github.com/pipewatch/pipewatch/playback"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const (
	tickInterval = 250 * time.Millisecond
	fetchTimeout = 30 * time.Second
	volumeStep   = 0.05
)

type (
	// dispatchMsg carries a pipeline handler onto the loop.
	dispatchMsg func()
	tickMsg     time.Time
	idleMsg     struct{ generation int }
	loadedMsg   struct {
		video    *catalog.Video
		segments []playback.Segment
	}
)

func (b *statefulBubble) fetch() tea.Cmd {
	id := b.options.VideoID
	prefetched := b.options.Video
	streams, segments := b.catalog, b.segments

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		video := prefetched
		if video == nil {
			var err error
			if video, err = streams.Streams(ctx, id); err != nil {
				return fmt.Errorf("fetch streams: %w", err)
			}
		}

		found, err := segments.GetSegments(ctx, id, viper.GetStringSlice(key.SponsorBlockCategories))
		if err != nil {
			log.Warnf("segments for %s: %v", id, err)
		}
		return loadedMsg{video: video, segments: found}
	}
}

func (b *statefulBubble) initialVariant() (playback.Variant, string, error) {
	if variant, ok := b.options.Variant.Get(); ok {
		return variant, variant.Kind.String(), nil
	}

	variant, format, err := catalog.SelectInitial(b.video, b.options.Preference)
	if err != nil {
		return playback.Variant{}, "", err
	}
	if wanted := strings.ToLower(b.options.Preference.Format); wanted != "" && wanted != format {
		b.notifier.Notify(fmt.Sprintf("no %s format available, playing %s", wanted, format))
	}
	return variant, format, nil
}

func (b *statefulBubble) platform() playback.Quirks {
	if b.options.Platform != "" {
		return playback.QuirksFor(b.options.Platform)
	}
	return playback.QuirksFor(viper.GetString(key.PlayerPlatform))
}

// start builds the controller for a fetched listing and attaches the initial variant.
func (b *statefulBubble) start(msg loadedMsg) tea.Cmd {
	b.video = msg.video
	if b.video.Livestream {
		b.raiseError(fmt.Errorf("%s is a livestream", b.video.ID))
		return nil
	}

	variant, format, err := b.initialVariant()
	if err != nil {
		b.raiseError(err)
		return nil
	}
	b.format = format

	b.controller = playback.New(playback.Options{
		Quirks:     b.platform(),
		Notifier:   b.notifier,
		Dispatcher: b.dispatch,
		Autoplay:   viper.GetBool(key.PlayerAutoplay),
		Volume:     mo.Some(viper.GetFloat64(key.PlayerVolume) / 100),
		Segments:   msg.segments,
	})

	b.videoP, b.audioP = b.newPipelines(b.video.Title)
	b.controller.Mount(b.videoP, b.audioP)

	if err := b.controller.Load(variant); err != nil {
		b.raiseError(err)
		return nil
	}

	if b.options.Continue {
		position, err := history.Position(b.video.ID)
		if err != nil {
			log.Warn(err)
		}
		b.resumeAt = position
	}

	b.setState(playerState)
	return tea.Batch(b.tick(), b.scheduleIdle())
}

// afterEvent runs once the controller knows the duration: chapters are drawn and a saved
// position is restored.
func (b *statefulBubble) afterEvent() {
	if b.metadataSeen || b.controller.Clock().Duration <= 0 {
		return
	}
	b.metadataSeen = true

	if segments := b.controller.Segments(); len(segments) > 0 && b.controller.Variant().UsesVideo() {
		if err := b.videoP.SetChapters(segments); err != nil {
			log.Warnf("chapters: %v", err)
		}
	}

	if position, ok := b.resumeAt.Get(); ok {
		b.resumeAt = mo.None[float64]()
		b.report(b.controller.Seek(position))
	}
}

func (b *statefulBubble) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *statefulBubble) scheduleIdle() tea.Cmd {
	b.idleGeneration++
	generation := b.idleGeneration

	return tea.Tick(viper.GetDuration(key.TUIIdleTimeout), func(time.Time) tea.Msg {
		return idleMsg{generation: generation}
	})
}

// pointerMoved reveals the controls and restarts the idle timer.
func (b *statefulBubble) pointerMoved() tea.Cmd {
	s := b.controller.Style()
	s.ControlsVisible = true
	b.controller.SetStyle(s)
	return b.scheduleIdle()
}

func (b *statefulBubble) onIdle(msg idleMsg) {
	if msg.generation != b.idleGeneration || b.controller.State() != playback.StatePlaying {
		return
	}
	s := b.controller.Style()
	s.ControlsVisible = false
	b.controller.SetStyle(s)
}

// click toggles playback unless the controls are hidden, in which case it only reveals them.
func (b *statefulBubble) click() tea.Cmd {
	if b.controller.Style().SwallowClick() {
		return b.pointerMoved()
	}
	b.report(b.controller.Toggle())
	return b.scheduleIdle()
}

// alive reports whether the process carrying the picture, or the sound for audio-only
// variants, is still running.
func (b *statefulBubble) alive() bool {
	if b.controller.Variant().UsesVideo() {
		return b.videoP.IsRunning()
	}
	return b.audioP.IsRunning()
}

func (b *statefulBubble) seekBy(delta float64) {
	step := viper.GetFloat64(key.PlayerSeekStep)
	b.report(b.controller.Seek(b.controller.Clock().Current + delta*step))
}

func (b *statefulBubble) changeVolume(delta float64) {
	volume := math.Round((b.controller.Volume()+delta)*100) / 100
	b.report(b.controller.SetVolume(volume))
}

func (b *statefulBubble) nextFormat() {
	next, ok := catalog.NextVariant(b.video, b.controller.Variant())
	if !ok || next.Equal(b.controller.Variant()) {
		b.notifier.Notify("no other format available")
		return
	}
	if err := b.controller.ChangeFormat(next); err != nil {
		b.report(err)
		return
	}
	b.format = next.Kind.String()
	b.notifier.Notify(next.Label())
}

func (b *statefulBubble) toggleFullscreen() {
	s := b.controller.Style()
	s.Fullscreen = !s.Fullscreen
	if b.controller.Variant().UsesVideo() {
		if err := b.videoP.SetFullscreen(s.Fullscreen); err != nil {
			b.report(err)
			return
		}
	}
	b.controller.SetStyle(s)
}

func (b *statefulBubble) toggleFullWindow() {
	s := b.controller.Style()
	s.FullWindow = !s.FullWindow
	b.controller.SetStyle(s)
}

func (b *statefulBubble) openWatchPage() {
	url := catalog.WatchURL(viper.GetString(key.CatalogFrontend), b.video.ID)
	if err := open.Start(url); err != nil {
		b.report(err)
	}
}

// report logs a failed operation and shows it as a toast. Nothing here changes state.
func (b *statefulBubble) report(err error) {
	if err == nil {
		return
	}
	log.Warn(err)
	b.notifier.Notify(err.Error())
}

func (b *statefulBubble) saveHistory() {
	if b.controller == nil || b.video == nil || !viper.GetBool(key.HistorySave) {
		return
	}

	clock := b.controller.Clock()
	if clock.Current <= 0 {
		return
	}

	err := history.Save(history.SavedVideo{
		ID:       b.video.ID,
		Title:    b.video.Title,
		Uploader: b.video.Uploader,
		Position: clock.Current,
		Duration: clock.Duration,
		Format:   b.format,
	})
	if err != nil {
		log.Error(err)
	}
}

// closePipelines stops both media processes. It is safe to call more than once.
func (b *statefulBubble) closePipelines() {
	if b.controller != nil {
		b.controller.Unmount()
	}
	for _, p := range []pipeline{b.videoP, b.audioP} {
		if p != nil {
			if err := p.Close(); err != nil {
				log.Warn(err)
			}
		}
	}
	b.videoP, b.audioP = nil, nil
}

func (b *statefulBubble) quit() tea.Cmd {
	b.quitting = true
	b.saveHistory()
	b.closePipelines()
	return tea.Quit
}
