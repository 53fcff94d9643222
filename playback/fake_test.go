package playback

import (
	"errors"
	"fmt"
)

var (
	errRejected  = errors.New("rejected by engine")
	errNotLoaded = errors.New("file not loaded yet")
)

// fakePipeline is an in-memory Pipeline that records every native call.
type fakePipeline struct {
	clock    float64
	duration float64
	level    ReadinessLevel
	playing  bool
	volume   float64
	attached *Track

	failPlay, failPause, failFastSeek, failSetClock error
	// failAttach rejects sources whose URL is a key.
	failAttach map[string]error
	// loadsAsync rejects seeks until the attached source reports metadata.
	loadsAsync bool
	loaded     bool

	calls   []string
	handler func(EventKind)
}

func newFakePipeline() *fakePipeline {
	return &fakePipeline{level: HaveEnoughData, duration: 600, loaded: true}
}

func (f *fakePipeline) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakePipeline) Attach(track Track, start float64) error {
	f.record("attach %s", track.URL)
	if err := f.failAttach[track.URL]; err != nil {
		return err
	}
	f.attached = &track
	f.clock = start
	f.playing = false
	f.loaded = !f.loadsAsync
	return nil
}

// finishLoading simulates the engine reporting metadata for the attached source.
func (f *fakePipeline) finishLoading() {
	f.loaded = true
	f.emit(EventMetadataLoaded)
}

func (f *fakePipeline) Detach() error {
	f.record("detach")
	f.attached = nil
	return nil
}

func (f *fakePipeline) Play() error {
	f.record("play")
	if f.failPlay != nil {
		return f.failPlay
	}
	f.playing = true
	return nil
}

func (f *fakePipeline) Pause() error {
	f.record("pause")
	if f.failPause != nil {
		return f.failPause
	}
	f.playing = false
	return nil
}

func (f *fakePipeline) SetClock(seconds float64) error {
	f.record("set-clock %.3f", seconds)
	if !f.loaded {
		return errNotLoaded
	}
	if f.failSetClock != nil {
		return f.failSetClock
	}
	f.clock = seconds
	return nil
}

func (f *fakePipeline) FastSeek(seconds float64) error {
	f.record("fast-seek %.3f", seconds)
	if !f.loaded {
		return errNotLoaded
	}
	if f.failFastSeek != nil {
		return f.failFastSeek
	}
	f.clock = seconds
	return nil
}

func (f *fakePipeline) Clock() (float64, error)    { return f.clock, nil }
func (f *fakePipeline) Duration() (float64, error) { return f.duration, nil }

func (f *fakePipeline) ReadinessLevel() (ReadinessLevel, error) {
	return f.level, nil
}

func (f *fakePipeline) SetVolume(volume float64) error {
	f.record("volume %.2f", volume)
	f.volume = volume
	return nil
}

func (f *fakePipeline) OnEvent(handler func(EventKind)) {
	f.handler = handler
}

func (f *fakePipeline) emit(e EventKind) {
	if f.handler != nil {
		f.handler(e)
	}
}

func (f *fakePipeline) hasCall(call string) bool {
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakePipeline) countPrefix(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

var (
	videoTrack    = Track{URL: "https://proxy.test/video-1080.webm", Codec: "webm", Quality: "1080p"}
	videoTrack720 = Track{URL: "https://proxy.test/video-720.webm", Codec: "webm", Quality: "720p"}
	audioTrack    = Track{URL: "https://proxy.test/audio.webm", Codec: "opus", Quality: "160 kbps"}
	audioTrack128 = Track{URL: "https://proxy.test/audio-128.m4a", Codec: "m4a", Quality: "128 kbps"}
	legacyTrack   = Track{URL: "https://proxy.test/legacy.mp4", Codec: "mp4", Quality: "360p"}
)

type harness struct {
	c      *Controller
	video  *fakePipeline
	audio  *fakePipeline
	toasts []string
}

func newHarness(quirks Quirks, variant Variant, segments ...Segment) *harness {
	h := &harness{video: newFakePipeline(), audio: newFakePipeline()}
	h.c = New(Options{
		Quirks:   quirks,
		Notifier: NotifierFunc(func(m string) { h.toasts = append(h.toasts, m) }),
		Segments: segments,
		Session:  "test",
	})
	h.c.Mount(h.video, h.audio)
	if err := h.c.Load(variant); err != nil {
		panic(err)
	}
	return h
}

// playing drives the harness into StatePlaying at the given clock.
func (h *harness) playing(at float64) *harness {
	_ = h.c.SetVideoReady(true)
	_ = h.c.SetAudioReady(true)
	if err := h.c.Play(); err != nil {
		panic(err)
	}
	h.video.clock, h.audio.clock = at, at
	h.reset()
	return h
}

func (h *harness) reset() {
	h.video.calls, h.audio.calls = nil, nil
}
