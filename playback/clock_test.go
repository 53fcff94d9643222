package playback

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatTime(t *testing.T) {
	Convey("FormatTime renders H:MM:SS", t, func() {
		So(FormatTime(0), ShouldEqual, "0:00:00")
		So(FormatTime(42.9), ShouldEqual, "0:00:42")
		So(FormatTime(3725), ShouldEqual, "1:02:05")
		So(FormatTime(-3), ShouldEqual, "0:00:00")
		So(FormatTime(math.NaN()), ShouldEqual, "0:00:00")
		So(FormatTime(math.Inf(1)), ShouldEqual, "0:00:00")
	})

	Convey("Progress is bounded", t, func() {
		So(Clock{Current: 30, Duration: 120}.Progress(), ShouldEqual, 0.25)
		So(Clock{Current: 130, Duration: 120}.Progress(), ShouldEqual, 1)
		So(Clock{Current: 30}.Progress(), ShouldEqual, 0)
	})
}

func TestVariant(t *testing.T) {
	Convey("Given variants of every kind", t, func() {
		Convey("Complete variants validate", func() {
			So(Dual(videoTrack, audioTrack).Validate(), ShouldBeNil)
			So(Combined(legacyTrack).Validate(), ShouldBeNil)
			So(AudioOnly(audioTrack).Validate(), ShouldBeNil)
		})

		Convey("Missing tracks fail with ErrNoPlayableVariant", func() {
			So(Variant{Kind: KindDual, Audio: &audioTrack}.Validate(), ShouldEqual, ErrNoPlayableVariant)
			So(Variant{Kind: KindCombined}.Validate(), ShouldEqual, ErrNoPlayableVariant)
			So(AudioOnly(Track{Quality: "128 kbps"}).Validate(), ShouldEqual, ErrNoPlayableVariant)
		})

		Convey("Each kind drives the expected pipelines", func() {
			So(Combined(legacyTrack).UsesAudio(), ShouldBeFalse)
			So(AudioOnly(audioTrack).UsesVideo(), ShouldBeFalse)
			So(Dual(videoTrack, audioTrack).UsesVideo(), ShouldBeTrue)
		})

		Convey("Labels describe the tracks", func() {
			So(Dual(videoTrack, audioTrack).Label(), ShouldEqual, "1080p webm + 160 kbps opus")
			So(Combined(legacyTrack).Label(), ShouldEqual, "360p mp4 (legacy)")
		})
	})
}

func TestStyle(t *testing.T) {
	Convey("Clicks only toggle playback while controls are visible", t, func() {
		So(DefaultStyle().SwallowClick(), ShouldBeFalse)
		So(Style{Fullscreen: true}.SwallowClick(), ShouldBeTrue)
	})
}
