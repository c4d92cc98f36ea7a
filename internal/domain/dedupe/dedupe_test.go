package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/laddersim/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new in-memory deduper", t, func() {
		ctx := context.Background()

		Convey("When recording run ids", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the id is new", func() {
				seen := d.SeenAndRecord(ctx, "run-1")

				Convey("Then it is recorded as unseen", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(ctx), ShouldEqual, 1)
				})
			})

			Convey("And the id was already recorded", func() {
				d.SeenAndRecord(ctx, "run-1")

				seen := d.SeenAndRecord(ctx, "run-1")

				Convey("Then the duplicate is detected", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(ctx), ShouldEqual, 1)
				})
			})

			Convey("And several distinct ids are recorded", func() {
				ids := []string{"run-1", "run-2", "run-3"}
				for _, id := range ids {
					So(d.SeenAndRecord(ctx, id), ShouldBeFalse)
				}

				Convey("Then all of them are tracked", func() {
					So(d.Size(ctx), ShouldEqual, len(ids))
					for _, id := range ids {
						So(d.SeenAndRecord(ctx, id), ShouldBeTrue)
					}
				})
			})
		})

		Convey("When unrecording run ids", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the id exists", func() {
				d.SeenAndRecord(ctx, "run-1")
				d.Unrecord(ctx, "run-1")

				Convey("Then it can be recorded again", func() {
					So(d.Size(ctx), ShouldEqual, 0)
					So(d.SeenAndRecord(ctx, "run-1"), ShouldBeFalse)
				})
			})

			Convey("And the id does not exist", func() {
				d.Unrecord(ctx, "missing")

				Convey("Then nothing changes", func() {
					So(d.Size(ctx), ShouldEqual, 0)
				})
			})
		})

		Convey("When the bound is reached", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

			for _, id := range []string{"run-1", "run-2", "run-3"} {
				So(d.SeenAndRecord(ctx, id), ShouldBeFalse)
			}

			Convey("And one more id is recorded", func() {
				So(d.SeenAndRecord(ctx, "run-4"), ShouldBeFalse)

				Convey("Then the oldest id is evicted", func() {
					So(d.Size(ctx), ShouldEqual, 3)
					So(d.SeenAndRecord(ctx, "run-1"), ShouldBeFalse)
				})
			})
		})

		Convey("When the bound is non-positive", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

			Convey("Then tracking is unbounded", func() {
				const count = 1000
				for i := 0; i < count; i++ {
					So(d.SeenAndRecord(ctx, fmt.Sprintf("run-%d", i)), ShouldBeFalse)
				}
				So(d.Size(ctx), ShouldEqual, count)
			})
		})
	})
}

func TestDeduperConcurrency(t *testing.T) {
	Convey("Given a deduper under concurrent access", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(10000))

		const goroutines = 10
		const perGoroutine = 100

		Convey("When several goroutines record distinct ids", func() {
			var wg sync.WaitGroup
			for g := 0; g < goroutines; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 0; i < perGoroutine; i++ {
						d.SeenAndRecord(ctx, fmt.Sprintf("run-%d-%d", g, i))
					}
				}(g)
			}
			wg.Wait()

			Convey("Then every id is tracked exactly once", func() {
				So(d.Size(ctx), ShouldEqual, goroutines*perGoroutine)
			})
		})
	})
}
