package repository

// Option applies a configuration option to the Roster.
type Option func(*Roster)

// WithBaseRating sets the rating assigned to participants added without an
// explicit initial rating.
func WithBaseRating(rating float64) Option {
	return func(r *Roster) {
		if rating > 0 {
			r.baseRating = rating
		}
	}
}
