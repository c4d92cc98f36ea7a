// Package rating implements the probabilistic skill-update model: expected
// score, per-contest rating delta, win-streak amplification and inactivity
// decay. All functions are pure and stateless; numeric parameters are
// validated at the service boundary, not here.
package rating

import "math"

// scaleDivisor is the rating gap that corresponds to 10:1 expected odds.
const scaleDivisor = 400.0

// ExpectedScore returns the probability-of-winning estimate for a rating of
// a against a rating of b. It is well-defined for any finite pair and is
// exactly 0.5 for equal ratings.
func ExpectedScore(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/scaleDivisor))
}

// Delta returns the rating adjustment k*(actual-expected), where actual is
// 1 for a win, 0.5 for a draw and 0 for a loss.
func Delta(k, actual, expected float64) float64 {
	return k * (actual - expected)
}

// StreakBonus amplifies a winner's positive delta in proportion to the
// current streak length counted before the win is recorded:
// baseDelta + baseDelta*bonusFraction*winStreak. It never changes the sign
// of a delta and is the identity for non-positive deltas, a zero streak or
// a zero fraction.
func StreakBonus(baseDelta float64, winStreak int, bonusFraction float64) float64 {
	if baseDelta <= 0 || winStreak <= 0 || bonusFraction <= 0 {
		return baseDelta
	}
	return baseDelta + baseDelta*bonusFraction*float64(winStreak)
}

// Decay returns the rating reduced by perDay for every day of inactivity,
// clamped so the result never drops below floor. The clamp is deliberate and
// documented, not an error. Applying decay with daysInactive zero is a no-op.
func Decay(rating, daysInactive, perDay, floor float64) float64 {
	if daysInactive <= 0 || perDay <= 0 {
		return rating
	}
	decayed := rating - perDay*daysInactive
	if decayed < floor {
		return floor
	}
	return decayed
}
