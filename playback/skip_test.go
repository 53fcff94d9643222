package playback

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSegmentSkip(t *testing.T) {
	sponsor := Segment{Start: 30, End: 45, Category: "sponsor", UUID: "a1"}

	Convey("Given a playing controller with one sponsor segment", t, func() {
		h := newHarness(ReferenceQuirks{}, Dual(videoTrack, audioTrack), sponsor).playing(0)

		tick := func(at float64) {
			h.video.clock, h.audio.clock = at, at
			So(h.c.OnTick(), ShouldBeNil)
		}

		Convey("Crossing into the capture window seeks to the end exactly once", func() {
			tick(29.4)
			So(h.video.countPrefix("fast-seek"), ShouldEqual, 1)
			So(h.video.hasCall("fast-seek 45.000"), ShouldBeTrue)
			So(h.c.Clock().Current, ShouldEqual, 45)
			So(h.toasts, ShouldResemble, []string{"skipped sponsor segment"})

			_ = h.c.SetVideoReady(true)
			_ = h.c.SetAudioReady(true)
			So(h.c.State(), ShouldEqual, StatePlaying)

			tick(30.5)
			So(h.video.countPrefix("fast-seek"), ShouldEqual, 1)
		})

		Convey("Positions inside the segment but past the window do nothing", func() {
			tick(35)
			So(h.video.calls, ShouldBeEmpty)
			So(h.toasts, ShouldBeEmpty)
		})

		Convey("Positions just outside the window do nothing", func() {
			tick(28.9)
			tick(31.1)
			So(h.video.countPrefix("fast-seek"), ShouldEqual, 0)
		})

		Convey("A paused player does not skip", func() {
			So(h.c.Pause(), ShouldBeNil)
			tick(30)
			So(h.video.countPrefix("fast-seek"), ShouldEqual, 0)
		})

		Convey("A skip the pipelines reject is reported, not announced", func() {
			h.video.failFastSeek = errRejected
			h.video.failSetClock = errRejected
			h.video.clock, h.audio.clock = 30, 30

			err := h.c.OnTick()
			So(errors.Is(err, errRejected), ShouldBeTrue)
			So(h.toasts, ShouldBeEmpty)
		})

		Convey("Seeking into the capture window lets it fire again", func() {
			tick(30)
			So(h.c.Seek(29.5), ShouldBeNil)
			_ = h.c.SetVideoReady(true)
			_ = h.c.SetAudioReady(true)
			h.reset()

			tick(29.5)
			So(h.video.hasCall("fast-seek 45.000"), ShouldBeTrue)
			So(h.toasts, ShouldHaveLength, 2)
		})

		Convey("Seeking back before the segment lets it fire again", func() {
			tick(30)
			So(h.c.Seek(10), ShouldBeNil)
			_ = h.c.SetVideoReady(true)
			_ = h.c.SetAudioReady(true)
			h.reset()

			tick(30)
			So(h.video.hasCall("fast-seek 45.000"), ShouldBeTrue)
			So(h.toasts, ShouldHaveLength, 2)
		})
	})
}

func TestSkipEngine(t *testing.T) {
	Convey("Given an engine with unsorted segments", t, func() {
		e := NewSkipEngine([]Segment{
			{Start: 300, End: 320, Category: "outro"},
			{Start: 30, End: 45, Category: "sponsor"},
		})

		Convey("Segments are ordered by start", func() {
			So(e.Segments()[0].Start, ShouldEqual, 30)
			So(e.Segments()[1].Start, ShouldEqual, 300)
		})

		Convey("A segment is reported once per session", func() {
			s, ok := e.Check(30.2)
			So(ok, ShouldBeTrue)
			So(s.End, ShouldEqual, 45)

			_, ok = e.Check(30.2)
			So(ok, ShouldBeFalse)

			Convey("Rearming behind the window makes it available again", func() {
				e.Rearm(50)
				_, ok = e.Check(30.2)
				So(ok, ShouldBeFalse)

				e.Rearm(12)
				_, ok = e.Check(30.2)
				So(ok, ShouldBeTrue)
			})

			Convey("Rearming inside the window makes it available again", func() {
				e.Rearm(30.9)
				_, ok = e.Check(30.9)
				So(ok, ShouldBeTrue)
			})

			Convey("Rearming past the window keeps it skipped", func() {
				e.Rearm(31.5)
				_, ok = e.Check(30.2)
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("A nil engine never matches", t, func() {
		var e *SkipEngine
		_, ok := e.Check(30)
		So(ok, ShouldBeFalse)
		So(e.Segments(), ShouldBeNil)
		So(func() { e.Rearm(0) }, ShouldNotPanic)
	})
}

func TestFilterSegments(t *testing.T) {
	Convey("Given segments of several categories", t, func() {
		segments := []Segment{
			{Start: 10, End: 20, Category: "sponsor"},
			{Start: 40, End: 50, Category: "intro"},
			{Start: 60, End: 60, Category: "sponsor"},
			{Start: 90, End: 80, Category: "sponsor"},
		}

		Convey("Only enabled, well-formed segments remain", func() {
			out := FilterSegments(segments, []string{"sponsor"})
			So(out, ShouldResemble, []Segment{{Start: 10, End: 20, Category: "sponsor"}})
		})

		Convey("No categories means no segments", func() {
			So(FilterSegments(segments, nil), ShouldBeEmpty)
		})
	})
}
