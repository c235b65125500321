package config_test

import (
	"runtime"
	"testing"

	"github.com/zentro/shadowscout/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.ActivityQueueSize, convey.ShouldEqual, 100_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 250_000)
			convey.So(cfg.MaxTalentLimit, convey.ShouldEqual, 100)
			convey.So(cfg.DefaultSkillWeight, convey.ShouldEqual, 0.1)
			convey.So(cfg.BaseMarketValue, convey.ShouldEqual, 50_000)
			convey.So(cfg.MatchThreshold, convey.ShouldEqual, 70)
		})

		convey.Convey("Then overall weights should favor technical skills", func() {
			convey.So(cfg.OverallWeights["technical"], convey.ShouldEqual, 0.3)
			convey.So(cfg.OverallWeights["problemSolving"], convey.ShouldEqual, 0.25)
			convey.So(cfg.OverallWeights["collaboration"], convey.ShouldEqual, 0.15)
		})
	})
}
