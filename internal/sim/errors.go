package sim

import "errors"

// Sentinel kinds for batch simulation errors.
var (
	ErrInvalidConfig  = errors.New("invalid simulation config")
	ErrRosterTooSmall = errors.New("roster needs at least two participants")
	ErrRunCancelled   = errors.New("run cancelled")
)
