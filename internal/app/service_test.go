package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/laddersim/internal/adapters/repository"
	service "github.com/okian/laddersim/internal/app"
	"github.com/okian/laddersim/internal/domain/model"
	"github.com/okian/laddersim/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func seedPtr(v int64) *int64 {
	return &v
}

func waitForRun(ctx context.Context, svc *service.Service, runID string) (repository.RunRecord, bool) {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		rec, err := svc.Run(ctx, runID)
		if err == nil && (rec.Status == repository.RunCompleted || rec.Status == repository.RunFailed) {
			return rec, true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return repository.RunRecord{}, false
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		ctx := context.Background()

		Convey("When created with default options", func() {
			svc := service.New()

			Convey("Then it starts and stops cleanly", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.Start(ctx), ShouldBeNil)
				svc.Stop()
				svc.Stop()
			})
		})

		Convey("When created with a seeded roster", func() {
			svc := service.New(service.WithSeedRoster(8), service.WithBaseRating(1200))
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the sample participants exist at the base rating", func() {
				snapshot := svc.Snapshot(ctx)
				So(len(snapshot), ShouldEqual, 8)
				for _, p := range snapshot {
					So(p.Rating, ShouldEqual, 1200.0)
				}
			})
		})
	})
}

func TestServiceRunExecution(t *testing.T) {
	Convey("Given a started service with a seeded roster", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithSeedRoster(6),
			service.WithRatingDefaults(32, false, 0, 0, 0),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When submitting a run request", func() {
			req := svc.DefaultRun()
			req.RunID = "run-1"
			req.MatchCount = 100
			req.Seed = seedPtr(42)

			ok := svc.SubmitRun(ctx, req)

			Convey("Then the run executes and commits back to the roster", func() {
				So(ok, ShouldBeTrue)

				rec, done := waitForRun(ctx, svc, "run-1")
				So(done, ShouldBeTrue)
				So(rec.Status, ShouldEqual, repository.RunCompleted)
				So(rec.Summary, ShouldNotBeNil)
				So(rec.Summary.Stats.Contests, ShouldEqual, 100)

				played := 0
				for _, p := range svc.Snapshot(ctx) {
					played += p.MatchesPlayed
				}
				So(played, ShouldEqual, 200)
			})

			Convey("And the leaderboard reflects the committed ratings", func() {
				So(ok, ShouldBeTrue)
				_, done := waitForRun(ctx, svc, "run-1")
				So(done, ShouldBeTrue)

				top, err := svc.TopN(ctx, 3)
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 3)
				So(top[0].Rating, ShouldBeGreaterThanOrEqualTo, top[1].Rating)
				So(top[1].Rating, ShouldBeGreaterThanOrEqualTo, top[2].Rating)

				entry, err := svc.Rank(ctx, top[0].ID)
				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 1)
			})
		})

		Convey("When submitting an invalid run request", func() {
			req := model.RunRequest{RunID: "run-bad", MatchCount: 100, KFactor: -1}

			ok := svc.SubmitRun(ctx, req)

			Convey("Then the run fails without touching the roster", func() {
				So(ok, ShouldBeTrue)

				rec, done := waitForRun(ctx, svc, "run-bad")
				So(done, ShouldBeTrue)
				So(rec.Status, ShouldEqual, repository.RunFailed)
				So(rec.Error, ShouldNotBeEmpty)

				for _, p := range svc.Snapshot(ctx) {
					So(p.MatchesPlayed, ShouldEqual, 0)
				}
			})
		})

		Convey("When tracking run ids through the deduper", func() {
			Convey("Then seen ids are detected and can be released", func() {
				So(svc.SeenAndRecord(ctx, "run-x"), ShouldBeFalse)
				So(svc.SeenAndRecord(ctx, "run-x"), ShouldBeTrue)
				So(svc.Size(ctx), ShouldEqual, 1)

				svc.Unrecord(ctx, "run-x")
				So(svc.SeenAndRecord(ctx, "run-x"), ShouldBeFalse)
			})
		})

		Convey("When reading the service statistics", func() {
			stats := svc.GetStats()

			Convey("Then they describe the running components", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["roster_size"], ShouldEqual, 6)
				So(stats["worker_count"], ShouldEqual, 1)
			})
		})
	})
}

func TestServiceParticipants(t *testing.T) {
	Convey("Given a started service with an empty roster", t, func() {
		ctx := context.Background()
		svc := service.New()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When adding participants", func() {
			So(svc.AddParticipant(ctx, "alice", 1200), ShouldBeNil)
			So(svc.AddParticipant(ctx, "bob", 0), ShouldBeNil)

			Convey("Then they appear in the snapshot with the right ratings", func() {
				snapshot := svc.Snapshot(ctx)
				So(len(snapshot), ShouldEqual, 2)
				So(snapshot[0].Rating, ShouldEqual, 1200.0)
				So(snapshot[1].Rating, ShouldEqual, 1000.0)
			})

			Convey("And duplicates are rejected", func() {
				err := svc.AddParticipant(ctx, "alice", 1500)
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When submitting a run against fewer than two participants", func() {
			req := svc.DefaultRun()
			req.RunID = "run-small"
			req.MatchCount = 10

			So(svc.SubmitRun(ctx, req), ShouldBeTrue)

			Convey("Then the run fails with a roster error", func() {
				rec, done := waitForRun(ctx, svc, "run-small")
				So(done, ShouldBeTrue)
				So(rec.Status, ShouldEqual, repository.RunFailed)
			})
		})
	})
}
