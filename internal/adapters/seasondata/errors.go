package seasondata

import "errors"

// Sentinel kinds for season data errors.
var (
	ErrSeasonNotFound = errors.New("season not found")
	ErrBadSeasonFile  = errors.New("malformed season file")
)
