package engine

import "errors"

// Sentinel kinds for contest resolution errors. These allow errors.Is from
// callers; no participant state is mutated when one of them is returned.
var (
	ErrNilParticipant  = errors.New("nil participant")
	ErrSameParticipant = errors.New("contest requires two distinct participants")
	ErrNonFiniteRating = errors.New("non-finite rating encountered")
	ErrNegativeKFactor = errors.New("k-factor must not be negative")
)
