package playback

import (
	"errors"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestToggle(t *testing.T) {
	Convey("Given a loaded dual-track controller", t, func() {
		h := newHarness(ReferenceQuirks{}, Dual(videoTrack, audioTrack))

		Convey("Toggle from Initial attempts play", func() {
			_ = h.c.SetVideoReady(true)
			_ = h.c.SetAudioReady(true)
			So(h.c.Toggle(), ShouldBeNil)
			So(h.c.State(), ShouldEqual, StatePlaying)
			So(h.video.playing && h.audio.playing, ShouldBeTrue)
		})

		Convey("Toggle from Initial without readiness leaves the state alone", func() {
			So(h.c.Toggle(), ShouldBeNil)
			So(h.c.State(), ShouldEqual, StateInitial)
			So(h.video.hasCall("play"), ShouldBeFalse)
		})

		Convey("Toggle from Playing pauses", func() {
			h.playing(12)
			So(h.c.Toggle(), ShouldBeNil)
			So(h.c.State(), ShouldEqual, StatePaused)
			So(h.video.hasCall("pause") && h.audio.hasCall("pause"), ShouldBeTrue)
		})

		Convey("Toggle from Paused resumes", func() {
			h.playing(12)
			So(h.c.Pause(), ShouldBeNil)
			h.audio.clock = 11.5
			h.reset()

			So(h.c.Toggle(), ShouldBeNil)
			So(h.c.State(), ShouldEqual, StatePlaying)
			So(h.audio.hasCall("set-clock 12.000"), ShouldBeTrue)
			So(h.audio.clock, ShouldEqual, 12)
		})

		Convey("Toggle from Loading does nothing", func() {
			h.playing(12)
			So(h.c.Seek(40), ShouldBeNil)
			So(h.c.State(), ShouldEqual, StateLoading)
			h.reset()

			So(h.c.Toggle(), ShouldBeNil)
			So(h.c.State(), ShouldEqual, StateLoading)
			So(h.video.calls, ShouldBeEmpty)
			So(h.audio.calls, ShouldBeEmpty)
		})
	})
}

func TestPlay(t *testing.T) {
	Convey("Given a ready dual-track controller", t, func() {
		h := newHarness(ReferenceQuirks{}, Dual(videoTrack, audioTrack))
		_ = h.c.SetVideoReady(true)
		_ = h.c.SetAudioReady(true)
		h.video.clock, h.audio.clock = 4.2, 3.9

		Convey("Play sets the volume, starts both pipelines and aligns audio to video", func() {
			So(h.c.SetVolume(0.4), ShouldBeNil)
			So(h.c.Play(), ShouldBeNil)
			So(h.c.State(), ShouldEqual, StatePlaying)
			So(h.video.volume, ShouldEqual, 0.4)
			So(h.audio.volume, ShouldEqual, 0.4)
			So(h.audio.clock, ShouldEqual, 4.2)
		})

		Convey("A rejected native start leaves the state unchanged", func() {
			h.audio.failPlay = errRejected
			err := h.c.Play()
			So(err, ShouldNotBeNil)
			So(errors.Is(err, errRejected), ShouldBeTrue)

			var perr *PipelineError
			So(errors.As(err, &perr), ShouldBeTrue)
			So(perr.Track, ShouldEqual, TrackAudio)
			So(h.c.State(), ShouldEqual, StateInitial)

			Convey("And pressing play again succeeds once the engine accepts", func() {
				h.audio.failPlay = nil
				So(h.c.Play(), ShouldBeNil)
				So(h.c.State(), ShouldEqual, StatePlaying)
			})
		})

		Convey("A native level below the threshold defers play", func() {
			h.audio.level = HaveCurrentData
			So(h.c.Play(), ShouldBeNil)
			So(h.c.State(), ShouldEqual, StateInitial)
		})
	})

	Convey("Given an audio-only controller", t, func() {
		h := newHarness(ReferenceQuirks{}, AudioOnly(audioTrack))
		_ = h.c.SetAudioReady(true)

		Convey("Only the audio pipeline is driven", func() {
			So(h.c.Play(), ShouldBeNil)
			So(h.c.State(), ShouldEqual, StatePlaying)
			So(h.audio.playing, ShouldBeTrue)
			So(h.video.hasCall("play"), ShouldBeFalse)
		})
	})
}

func TestPause(t *testing.T) {
	Convey("Given a playing controller", t, func() {
		h := newHarness(ReferenceQuirks{}, Dual(videoTrack, audioTrack)).playing(20)

		Convey("A rejected stop keeps it playing", func() {
			h.video.failPause = errRejected
			So(h.c.Pause(), ShouldNotBeNil)
			So(h.c.State(), ShouldEqual, StatePlaying)
		})
	})
}

func TestStallRecovery(t *testing.T) {
	Convey("Given a playing dual-track controller", t, func() {
		h := newHarness(ReferenceQuirks{}, Dual(videoTrack, audioTrack)).playing(20)

		Convey("A stall clears the flag without forcing Loading", func() {
			So(h.c.OnStall(TrackVideo), ShouldBeNil)
			video, audio := h.c.Flags()
			So(video, ShouldBeFalse)
			So(audio, ShouldBeTrue)
			So(h.c.State(), ShouldEqual, StatePlaying)
			So(h.c.Ready(), ShouldBeFalse)

			Convey("Buffering catching up re-syncs and restarts the pipelines", func() {
				h.audio.clock = 19.2
				h.reset()
				So(h.c.OnCanPlay(TrackVideo), ShouldBeNil)
				So(h.c.State(), ShouldEqual, StatePlaying)
				So(h.audio.clock, ShouldEqual, 20)
				So(h.video.hasCall("play"), ShouldBeTrue)
				So(h.audio.hasCall("play"), ShouldBeTrue)
			})
		})

		Convey("A can-play without a prior stall does not touch the pipelines", func() {
			So(h.c.OnCanPlay(TrackAudio), ShouldBeNil)
			So(h.video.calls, ShouldBeEmpty)
			So(h.audio.calls, ShouldBeEmpty)
		})
	})

	Convey("Given a controller in Initial", t, func() {
		h := newHarness(ReferenceQuirks{}, Dual(videoTrack, audioTrack))

		Convey("Readiness alone never starts playback", func() {
			So(h.c.OnCanPlay(TrackVideo), ShouldBeNil)
			So(h.c.OnCanPlay(TrackAudio), ShouldBeNil)
			So(h.c.State(), ShouldEqual, StateInitial)
		})
	})
}

func TestAutoplay(t *testing.T) {
	Convey("Given an autoplaying controller", t, func() {
		video, audio := newFakePipeline(), newFakePipeline()
		c := New(Options{Autoplay: true, Volume: mo.Some(0.5)})
		c.Mount(video, audio)
		So(c.Load(Dual(videoTrack, audioTrack)), ShouldBeNil)

		Convey("It starts once both pipelines report can-play", func() {
			video.emit(EventCanPlay)
			So(c.State(), ShouldEqual, StateInitial)

			audio.emit(EventCanPlay)
			So(c.State(), ShouldEqual, StatePlaying)
			So(video.volume, ShouldEqual, 0.5)
		})
	})

	Convey("Given an autoplaying controller on the divergent platform", t, func() {
		video, audio := newFakePipeline(), newFakePipeline()
		c := New(Options{Autoplay: true, Quirks: DivergentQuirks{}})
		c.Mount(video, audio)
		So(c.Load(Dual(videoTrack, audioTrack)), ShouldBeNil)

		Convey("Native levels start playback on a tick without any can-play event", func() {
			audio.level = HaveMetadata
			So(c.OnTick(), ShouldBeNil)
			So(c.State(), ShouldEqual, StateInitial)

			audio.level = HaveEnoughData
			So(c.OnTick(), ShouldBeNil)
			So(c.State(), ShouldEqual, StatePlaying)
			So(video.playing && audio.playing, ShouldBeTrue)
		})
	})

	Convey("Given a divergent controller without autoplay", t, func() {
		video, audio := newFakePipeline(), newFakePipeline()
		c := New(Options{Quirks: DivergentQuirks{}})
		c.Mount(video, audio)
		So(c.Load(Dual(videoTrack, audioTrack)), ShouldBeNil)

		Convey("Ticks leave it waiting for the user", func() {
			So(c.OnTick(), ShouldBeNil)
			So(c.State(), ShouldEqual, StateInitial)
		})
	})
}

func TestEventDispatch(t *testing.T) {
	Convey("Given a controller with a queueing dispatcher", t, func() {
		var queue []func()
		video, audio := newFakePipeline(), newFakePipeline()
		var toasts []string
		c := New(Options{
			Dispatcher: func(fn func()) { queue = append(queue, fn) },
			Notifier:   NotifierFunc(func(m string) { toasts = append(toasts, m) }),
		})
		c.Mount(video, audio)
		So(c.Load(Dual(videoTrack, audioTrack)), ShouldBeNil)

		Convey("Events only take effect when the host loop runs them", func() {
			video.duration = 321
			video.emit(EventMetadataLoaded)
			So(c.Clock().Duration, ShouldEqual, 0)

			for _, fn := range queue {
				fn()
			}
			So(c.Clock().Duration, ShouldEqual, 321)
		})

		Convey("Handler failures become toasts", func() {
			_ = c.SetVideoReady(true)
			_ = c.SetAudioReady(true)
			So(c.Play(), ShouldBeNil)
			So(c.OnStall(TrackAudio), ShouldBeNil)

			video.failPlay = errRejected
			audio.emit(EventCanPlay)
			for _, fn := range queue {
				fn()
			}
			So(toasts, ShouldHaveLength, 1)
			So(toasts[0], ShouldContainSubstring, "rejected by engine")
		})

		Convey("Unmounted controllers ignore late events", func() {
			handler := video.handler
			c.Unmount()
			handler(EventStalled)
			for _, fn := range queue {
				fn()
			}
			So(toasts, ShouldBeEmpty)
		})
	})
}

func TestNotMounted(t *testing.T) {
	Convey("Given a controller without pipelines", t, func() {
		c := New(Options{})

		Convey("Every pipeline operation reports ErrNotMounted", func() {
			So(c.Play(), ShouldEqual, ErrNotMounted)
			So(c.Resume(), ShouldEqual, ErrNotMounted)
			So(c.Pause(), ShouldEqual, ErrNotMounted)
			So(c.Seek(10), ShouldEqual, ErrNotMounted)
			So(c.ChangeFormat(Dual(videoTrack, audioTrack)), ShouldEqual, ErrNotMounted)
			So(c.Load(Dual(videoTrack, audioTrack)), ShouldEqual, ErrNotMounted)
			So(c.OnTick(), ShouldEqual, ErrNotMounted)
			So(c.SetVolume(0.3), ShouldEqual, ErrNotMounted)
			So(c.Volume(), ShouldEqual, 0.3)
			So(c.State(), ShouldEqual, StateInitial)
		})
	})
}

func TestOnTick(t *testing.T) {
	Convey("Given a playing dual-track controller", t, func() {
		h := newHarness(ReferenceQuirks{}, Dual(videoTrack, audioTrack)).playing(0)

		Convey("The displayed clock follows the video pipeline", func() {
			h.video.clock, h.audio.clock = 75.05, 75.0
			So(h.c.OnTick(), ShouldBeNil)
			So(h.c.Clock().Current, ShouldEqual, 75.05)
			So(h.c.Clock().CurrentText(), ShouldEqual, "0:01:15")
			So(h.c.Clock().Duration, ShouldEqual, 600)
		})
	})

	Convey("Given an audio-only controller", t, func() {
		h := newHarness(ReferenceQuirks{}, AudioOnly(audioTrack))
		_ = h.c.SetAudioReady(true)
		So(h.c.Play(), ShouldBeNil)

		Convey("The audio pipeline is the clock authority", func() {
			h.audio.clock = 33
			h.video.clock = 99
			So(h.c.OnTick(), ShouldBeNil)
			So(h.c.Clock().Current, ShouldEqual, 33)
		})
	})
}
