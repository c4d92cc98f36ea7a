package repository

import "errors"

// Sentinel kinds for roster and run-store errors.
var (
	ErrDuplicateParticipant = errors.New("duplicate participant id")
	ErrUnknownParticipant   = errors.New("unknown participant id")
	ErrInvalidLimit         = errors.New("invalid leaderboard limit")
	ErrUnknownRun           = errors.New("unknown run id")
)
