package game

import "errors"

// Engine errors. Every failure is local and deterministic: the engines never
// mutate anything, so a failed call leaves no partial state behind and is
// always safe to retry with corrected input.
var (
	// ErrInvalidInput indicates a handicap index, slope, percentage, or score
	// outside its domain bounds. The API layer validates first; the engines
	// re-check and fail closed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidHoleSet indicates the hole table is not a valid 18-hole set
	// (wrong count, bad par, or stroke indexes not a 1..18 permutation).
	ErrInvalidHoleSet = errors.New("invalid hole set")

	// ErrIncompleteHoleSequence indicates scores were supplied with gaps or
	// out of order relative to the claimed holes played.
	ErrIncompleteHoleSequence = errors.New("incomplete hole sequence")

	// ErrUnsupportedFormatCombination indicates a team-combination rule was
	// requested for a format with no configured percentage pair.
	ErrUnsupportedFormatCombination = errors.New("no team combination configured for format")
)
