package brackets

import "errors"

var (
	// ErrEmptyInput: no usable participant names were supplied.
	ErrEmptyInput = errors.New("brackets: no participants")
	// ErrInsufficientParticipants: fewer names than the format needs.
	ErrInsufficientParticipants = errors.New("brackets: not enough participants")
	// ErrDegenerateSingleton: an elimination bracket needs two entrants.
	ErrDegenerateSingleton = errors.New("brackets: single participant cannot form a bracket")
	// ErrInvalidGroupCount: the group policy produced an unusable pool count.
	ErrInvalidGroupCount = errors.New("brackets: invalid group count")

	ErrInvalidCourtCount = errors.New("brackets: court count must be positive")
	ErrOddTeamCount      = errors.New("brackets: court allocation needs an even number of teams")
	ErrUnknownFormat     = errors.New("brackets: unknown format")
)
