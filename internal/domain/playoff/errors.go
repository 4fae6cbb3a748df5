package playoff

import "errors"

// Sentinel kinds for playoff selection errors.
var (
	// ErrInsufficientChampions covers candidate pools with no eligible
	// conference champion at all; auto-bid selection cannot proceed.
	ErrInsufficientChampions = errors.New("insufficient conference champions")
)
