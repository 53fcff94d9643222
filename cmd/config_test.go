package cmd

import (
	"encoding/json"
	"testing"

	"github.com/pipewatch/pipewatch/config"
	"github.com/pipewatch/pipewatch/key"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("Given registered config fields", t, func() {
		field := func(k string) config.Field { return config.Default[k] }

		Convey("Booleans and integers are parsed", func() {
			v, err := parseValue(field(key.PlayerAutoplay), []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			v, err = parseValue(field(key.PlayerSeekStep), []string{"10"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 10)

			_, err = parseValue(field(key.PlayerSeekStep), []string{"ten"})
			So(err, ShouldNotBeNil)
		})

		Convey("Volume must stay within 0 and 100", func() {
			_, err := parseValue(field(key.PlayerVolume), []string{"150"})
			So(err, ShouldNotBeNil)
		})

		Convey("Durations and formats are validated", func() {
			_, err := parseValue(field(key.CatalogCacheTTL), []string{"2h"})
			So(err, ShouldBeNil)
			_, err = parseValue(field(key.TUIIdleTimeout), []string{"soon"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(field(key.PlayerFormat), []string{"legacy"})
			So(err, ShouldBeNil)
			_, err = parseValue(field(key.PlayerFormat), []string{"hls"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(field(key.PlayerPlatform), []string{"Divergent"})
			So(err, ShouldBeNil)
		})

		Convey("Categories are normalized and checked", func() {
			v, err := parseValue(field(key.SponsorBlockCategories), []string{"Sponsor", " intro", "sponsor"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"sponsor", "intro"})

			_, err = parseValue(field(key.SponsorBlockCategories), []string{"ads"})
			So(err, ShouldNotBeNil)
		})

		Convey("A missing value is rejected", func() {
			_, err := parseValue(field(key.PlayerQuality), nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFormatOutputs(t *testing.T) {
	Convey("Given a listing", t, func() {
		video := testVideo()

		Convey("Every variant is listed and the preferred one is marked", func() {
			outputs := formatOutputs(video, preferenceFor("dash", "1080p"))
			So(outputs, ShouldHaveLength, 3)
			So(outputs[0].Format, ShouldEqual, "dash")
			So(outputs[0].Default, ShouldBeTrue)
			So(outputs[1].Format, ShouldEqual, "legacy")
			So(outputs[1].Default, ShouldBeFalse)
			So(outputs[2].Format, ShouldEqual, "audio")
		})

		Convey("The schema names the output type", func() {
			data, err := json.Marshal(formatsSchema())
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"Format"`)
			So(string(data), ShouldContainSubstring, `"default"`)
		})
	})
}
