package ledger

import "errors"

// Sentinel kinds for ledger errors. Callers match with errors.Is.
var (
	// ErrInvalidOverride covers overrides naming a winner that is not a
	// participant of the game.
	ErrInvalidOverride = errors.New("invalid override")

	// ErrUnknownGame covers overrides referencing a game id that does not
	// exist in the base set.
	ErrUnknownGame = errors.New("unknown game")

	// ErrDuplicateGame covers base sets carrying the same game id twice.
	ErrDuplicateGame = errors.New("duplicate game id")
)
