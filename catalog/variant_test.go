package catalog

import (
	"encoding/json"
	"testing"

	"github.com/pipewatch/pipewatch/playback"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() *Video {
	var v Video
	if err := json.Unmarshal([]byte(streamsJSON), &v); err != nil {
		panic(err)
	}
	return &v
}

func TestSelectVariant(t *testing.T) {
	Convey("Given a video with dash, legacy and audio streams", t, func() {
		video := fixture()

		Convey("Dash pairs the matching video with container-compatible audio", func() {
			v, err := SelectVariant(video, Preference{Format: "dash", Quality: "1080p"})
			So(err, ShouldBeNil)
			So(v.Kind, ShouldEqual, playback.KindDual)
			So(v.Video.URL, ShouldEqual, "https://proxy.test/v/1080.webm")
			So(v.Audio.URL, ShouldEqual, "https://proxy.test/a/160.webm")
		})

		Convey("mp4 video gets m4a audio", func() {
			v, err := SelectVariant(video, Preference{Format: "dash", Quality: "1080p60"})
			So(err, ShouldBeNil)
			So(v.Video.URL, ShouldEqual, "https://proxy.test/v/1080.mp4")
			So(v.Audio.URL, ShouldEqual, "https://proxy.test/a/128.m4a")
		})

		Convey("Unavailable qualities fall back to the closest lower one", func() {
			v, err := SelectVariant(video, Preference{Format: "dash", Quality: "900p"})
			So(err, ShouldBeNil)
			So(v.Video.Quality, ShouldEqual, "720p")
		})

		Convey("Partial labels are fuzzy matched", func() {
			v, err := SelectVariant(video, Preference{Format: "dash", Quality: "720"})
			So(err, ShouldBeNil)
			So(v.Video.Quality, ShouldEqual, "720p")
		})

		Convey("Legacy uses the muxed stream", func() {
			v, err := SelectVariant(video, Preference{Format: "legacy"})
			So(err, ShouldBeNil)
			So(v.Kind, ShouldEqual, playback.KindCombined)
			So(v.Video.URL, ShouldEqual, "https://proxy.test/v/360.mp4")
			So(v.Video.Muxed, ShouldBeTrue)
		})

		Convey("Audio picks the best opus stream", func() {
			v, err := SelectVariant(video, Preference{Format: "audio"})
			So(err, ShouldBeNil)
			So(v.Audio.URL, ShouldEqual, "https://proxy.test/a/160.webm")
		})

		Convey("Unknown formats are rejected", func() {
			_, err := SelectVariant(video, Preference{Format: "hls"})
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a video with only a legacy stream", t, func() {
		video := fixture()
		video.VideoStreams = video.VideoStreams[3:]
		video.AudioStreams = nil

		Convey("Dash reports no playable variant", func() {
			_, err := SelectVariant(video, Preference{Format: "dash"})
			So(err, ShouldEqual, playback.ErrNoPlayableVariant)
		})

		Convey("The initial selection falls back to legacy", func() {
			v, format, err := SelectInitial(video, Preference{Format: "dash", Quality: "1080p"})
			So(err, ShouldBeNil)
			So(format, ShouldEqual, FormatLegacy)
			So(v.Kind, ShouldEqual, playback.KindCombined)
		})
	})

	Convey("Given a video without any streams", t, func() {
		_, _, err := SelectInitial(&Video{}, Preference{Format: "audio"})
		So(err, ShouldEqual, playback.ErrNoPlayableVariant)
	})
}

func TestVariants(t *testing.T) {
	Convey("Given a video with every kind of stream", t, func() {
		video := fixture()
		variants := Variants(video)

		Convey("Every stream yields a variant, highest resolution first", func() {
			So(variants, ShouldHaveLength, 7)
			So(variants[0].Kind, ShouldEqual, playback.KindDual)
			So(variants[0].Video.Quality, ShouldStartWith, "1080p")
			So(variants[2].Video.Quality, ShouldEqual, "720p")
			So(variants[3].Kind, ShouldEqual, playback.KindCombined)
			So(variants[4].Kind, ShouldEqual, playback.KindAudioOnly)
		})

		Convey("NextVariant cycles through them", func() {
			next, ok := NextVariant(video, variants[0])
			So(ok, ShouldBeTrue)
			So(next.Equal(variants[1]), ShouldBeTrue)

			next, _ = NextVariant(video, variants[len(variants)-1])
			So(next.Equal(variants[0]), ShouldBeTrue)
		})
	})
}

func TestParseID(t *testing.T) {
	Convey("Video IDs are extracted from the usual link shapes", t, func() {
		for _, input := range []string{
			"dQw4w9WgXcQ",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42",
			"https://youtu.be/dQw4w9WgXcQ",
			"https://piped.video/watch?v=dQw4w9WgXcQ",
			"https://www.youtube.com/shorts/dQw4w9WgXcQ",
			"https://www.youtube.com/embed/dQw4w9WgXcQ",
		} {
			id, ok := ParseID(input)
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "dQw4w9WgXcQ")
		}

		for _, input := range []string{"", "hello", "https://example.com/", "https://youtu.be/short"} {
			_, ok := ParseID(input)
			So(ok, ShouldBeFalse)
		}
	})

	Convey("Watch URLs point at the frontend", t, func() {
		So(WatchURL("https://piped.video/", "dQw4w9WgXcQ"), ShouldEqual, "https://piped.video/watch?v=dQw4w9WgXcQ")
	})
}
