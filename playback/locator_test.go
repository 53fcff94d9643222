package playback

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestValidateLocator(t *testing.T) {
	Convey("Stream URLs and plain paths are accepted", t, func() {
		for _, ok := range []string{"https://proxy.test/v.webm", " http://proxy.test/a.m4a ", "/media/clip.mkv"} {
			So(ValidateLocator(ok), ShouldBeNil)
		}
	})

	Convey("Flags, control characters and other schemes are rejected", t, func() {
		for _, bad := range []string{"", "  ", "--script=x.lua", "https://a.test/\x00x", "file:///etc/passwd", "ytdl://abc"} {
			So(errors.Is(ValidateLocator(bad), ErrInvalidLocator), ShouldBeTrue)
		}
	})

	Convey("A variant with an unusable required track does not validate", t, func() {
		bad := audioTrack
		bad.URL = "--vf=x"
		So(errors.Is(Dual(videoTrack, bad).Validate(), ErrInvalidLocator), ShouldBeTrue)
		So(AudioOnly(audioTrack).Validate(), ShouldBeNil)
	})
}
