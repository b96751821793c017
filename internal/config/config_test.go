package config_test

import (
	"testing"
	"time"

	"github.com/okian/mergington/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.EnforceCapacity, convey.ShouldBeFalse)
			convey.So(cfg.MetricsInterval, convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("And the catalog should fall back to the built-in one", func() {
			acts := cfg.Catalog()
			convey.So(acts, convey.ShouldHaveLength, 9)
			convey.So(acts[0].Name, convey.ShouldEqual, "Chess Club")
		})
	})

	convey.Convey("Given a config with activities", t, func() {
		cfg := config.New()
		cfg.Activities = []config.ActivityConfig{
			{Name: "Robotics", Description: "Build robots", Schedule: "Mondays", MaxParticipants: 8, Participants: []string{"a@e.edu"}},
		}

		convey.Convey("Then the catalog should be built from them", func() {
			acts := cfg.Catalog()
			convey.So(acts, convey.ShouldHaveLength, 1)
			convey.So(acts[0].Name, convey.ShouldEqual, "Robotics")
			convey.So(acts[0].MaxParticipants, convey.ShouldEqual, 8)
			convey.So(acts[0].Participants, convey.ShouldResemble, []string{"a@e.edu"})
		})

		convey.Convey("And the catalog should not alias the config slices", func() {
			acts := cfg.Catalog()
			acts[0].Participants[0] = "changed@e.edu"
			convey.So(cfg.Activities[0].Participants[0], convey.ShouldEqual, "a@e.edu")
		})
	})
}
