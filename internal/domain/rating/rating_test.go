package rating_test

import (
	"testing"

	rating "github.com/okian/laddersim/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func TestExpectedScore(t *testing.T) {
	Convey("Given the expected score function", t, func() {
		Convey("When both ratings are equal", func() {
			score := rating.ExpectedScore(1000, 1000)

			Convey("Then the expected score is exactly one half", func() {
				So(score, ShouldAlmostEqual, 0.5, tolerance)
			})
		})

		Convey("When one side is rated 400 points higher", func() {
			score := rating.ExpectedScore(1400, 1000)

			Convey("Then it should be favored with 10:1 odds", func() {
				So(score, ShouldAlmostEqual, 10.0/11.0, tolerance)
			})
		})

		Convey("When computing both perspectives of the same pairing", func() {
			a := rating.ExpectedScore(1200, 1000)
			b := rating.ExpectedScore(1000, 1200)

			Convey("Then the two expectations sum to one", func() {
				So(a+b, ShouldAlmostEqual, 1.0, tolerance)
			})
		})

		Convey("When the rating gap grows", func() {
			small := rating.ExpectedScore(1100, 1000)
			large := rating.ExpectedScore(1500, 1000)

			Convey("Then the expected score grows with it", func() {
				So(large, ShouldBeGreaterThan, small)
				So(small, ShouldBeGreaterThan, 0.5)
				So(large, ShouldBeLessThan, 1.0)
			})
		})
	})
}

func TestDelta(t *testing.T) {
	Convey("Given the rating delta function", t, func() {
		Convey("When a favorite wins as expected", func() {
			delta := rating.Delta(32, 1.0, 0.75)

			Convey("Then the gain is small", func() {
				So(delta, ShouldAlmostEqual, 8.0, tolerance)
			})
		})

		Convey("When an underdog wins", func() {
			delta := rating.Delta(32, 1.0, 0.25)

			Convey("Then the gain is large", func() {
				So(delta, ShouldAlmostEqual, 24.0, tolerance)
			})
		})

		Convey("When an even pairing ends decisively", func() {
			winner := rating.Delta(32, 1.0, 0.5)
			loser := rating.Delta(32, 0.0, 0.5)

			Convey("Then winner and loser deltas are opposite", func() {
				So(winner, ShouldAlmostEqual, 16.0, tolerance)
				So(loser, ShouldAlmostEqual, -16.0, tolerance)
			})
		})

		Convey("When the k-factor is zero", func() {
			delta := rating.Delta(0, 1.0, 0.25)

			Convey("Then no rating moves", func() {
				So(delta, ShouldEqual, 0)
			})
		})

		Convey("When a draw is scored against an even expectation", func() {
			delta := rating.Delta(32, 0.5, 0.5)

			Convey("Then the delta is zero", func() {
				So(delta, ShouldAlmostEqual, 0.0, tolerance)
			})
		})
	})
}

func TestStreakBonus(t *testing.T) {
	Convey("Given the streak bonus function", t, func() {
		Convey("When a winner on a three-win streak gets a 0.1 fraction", func() {
			bonus := rating.StreakBonus(16.0, 3, 0.1)

			Convey("Then the base delta is amplified by 30 percent", func() {
				So(bonus, ShouldAlmostEqual, 20.8, tolerance)
			})
		})

		Convey("When the streak is zero", func() {
			bonus := rating.StreakBonus(16.0, 0, 0.1)

			Convey("Then the delta is unchanged", func() {
				So(bonus, ShouldEqual, 16.0)
			})
		})

		Convey("When the bonus fraction is zero", func() {
			bonus := rating.StreakBonus(16.0, 5, 0)

			Convey("Then the delta is unchanged", func() {
				So(bonus, ShouldEqual, 16.0)
			})
		})

		Convey("When the base delta is negative", func() {
			bonus := rating.StreakBonus(-16.0, 5, 0.1)

			Convey("Then the delta is unchanged and keeps its sign", func() {
				So(bonus, ShouldEqual, -16.0)
			})
		})

		Convey("When the base delta is zero", func() {
			bonus := rating.StreakBonus(0, 5, 0.1)

			Convey("Then the delta stays zero", func() {
				So(bonus, ShouldEqual, 0)
			})
		})

		Convey("When the streak grows", func() {
			short := rating.StreakBonus(16.0, 1, 0.1)
			long := rating.StreakBonus(16.0, 4, 0.1)

			Convey("Then the amplification grows with it", func() {
				So(long, ShouldBeGreaterThan, short)
				So(short, ShouldBeGreaterThan, 16.0)
			})
		})
	})
}

func TestDecay(t *testing.T) {
	Convey("Given the inactivity decay function", t, func() {
		Convey("When a participant misses five days at two points per day", func() {
			decayed := rating.Decay(1000, 5, 2, 0)

			Convey("Then ten points are removed", func() {
				So(decayed, ShouldAlmostEqual, 990.0, tolerance)
			})
		})

		Convey("When the decay would cross the floor", func() {
			decayed := rating.Decay(805, 10, 2, 800)

			Convey("Then the rating is clamped at the floor", func() {
				So(decayed, ShouldEqual, 800.0)
			})
		})

		Convey("When the rating is already at the floor", func() {
			decayed := rating.Decay(800, 30, 2, 800)

			Convey("Then it never drops below the floor", func() {
				So(decayed, ShouldEqual, 800.0)
			})
		})

		Convey("When no time has passed", func() {
			decayed := rating.Decay(1000, 0, 2, 0)

			Convey("Then the rating is untouched", func() {
				So(decayed, ShouldEqual, 1000.0)
			})
		})

		Convey("When the per-day amount is zero", func() {
			decayed := rating.Decay(1000, 5, 0, 0)

			Convey("Then the rating is untouched", func() {
				So(decayed, ShouldEqual, 1000.0)
			})
		})

		Convey("When inactivity grows", func() {
			short := rating.Decay(1000, 1, 2, 0)
			long := rating.Decay(1000, 10, 2, 0)

			Convey("Then decay is monotone in days inactive", func() {
				So(long, ShouldBeLessThan, short)
				So(short, ShouldBeLessThan, 1000.0)
			})
		})
	})
}
