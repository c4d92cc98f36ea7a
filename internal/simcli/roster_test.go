package simcli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	simcli "github.com/okian/laddersim/internal/simcli"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRosterFiles(t *testing.T) {
	Convey("Given roster file persistence", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		path := filepath.Join(dir, "roster.json")

		Convey("When saving and loading a sample roster", func() {
			roster, err := simcli.SampleRoster(ctx, 8, 1000)
			So(err, ShouldBeNil)
			So(simcli.SaveRoster(ctx, path, roster), ShouldBeNil)

			loaded, err := simcli.LoadRoster(ctx, path, 1000)

			Convey("Then the round trip preserves every participant", func() {
				So(err, ShouldBeNil)
				So(loaded.Len(ctx), ShouldEqual, 8)
				So(loaded.IDs(ctx), ShouldResemble, roster.IDs(ctx))

				p, err := loaded.Get(ctx, "player-1")
				So(err, ShouldBeNil)
				So(p.Rating, ShouldEqual, 1000.0)
			})

			Convey("And no temp file is left behind", func() {
				So(err, ShouldBeNil)
				_, statErr := os.Stat(path + ".tmp")
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("When saving over an existing roster file", func() {
			first, err := simcli.SampleRoster(ctx, 4, 1000)
			So(err, ShouldBeNil)
			So(simcli.SaveRoster(ctx, path, first), ShouldBeNil)

			second, err := simcli.SampleRoster(ctx, 6, 1200)
			So(err, ShouldBeNil)
			So(simcli.SaveRoster(ctx, path, second), ShouldBeNil)

			Convey("Then the file holds the newer roster", func() {
				loaded, err := simcli.LoadRoster(ctx, path, 1200)
				So(err, ShouldBeNil)
				So(loaded.Len(ctx), ShouldEqual, 6)
			})
		})

		Convey("When loading a missing file", func() {
			_, err := simcli.LoadRoster(ctx, filepath.Join(dir, "missing.json"), 1000)

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When building a sample roster", func() {
			roster, err := simcli.SampleRoster(ctx, 3, 1500)

			Convey("Then participants are numbered from one at the base rating", func() {
				So(err, ShouldBeNil)
				So(roster.IDs(ctx), ShouldResemble, []string{"player-1", "player-2", "player-3"})

				p, err := roster.Get(ctx, "player-3")
				So(err, ShouldBeNil)
				So(p.Rating, ShouldEqual, 1500.0)
			})
		})
	})
}
