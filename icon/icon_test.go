package icon

import (
	"testing"

	"github.com/pipewatch/pipewatch/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Skip

		Convey("It renders correctly for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					result := Get(target)
					So(result, ShouldNotBeEmpty)
				})
			}
		})

		Convey("It falls back to plain for an unknown variant", func() {
			viper.Set(key.IconsVariant, "plain")
			plainIcon := Get(target)
			viper.Set(key.IconsVariant, "")
			So(Get(target), ShouldEqual, plainIcon)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Every icon has a rendering for every variant", t, func() {
		for i := Fail; i <= Volume; i++ {
			def, ok := icons[i]
			So(ok, ShouldBeTrue)
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				So(def.Get(), ShouldNotBeEmpty)
			}
		}
	})
}
