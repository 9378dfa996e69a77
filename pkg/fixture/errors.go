package fixture

import "errors"

// Sentinel errors for common error conditions
var (
	// Generator-related errors
	ErrUnknownGenerator = errors.New("unknown generator")
	ErrInvalidCount     = errors.New("count must be positive")

	// Vocabulary errors
	ErrInvalidVocabulary = errors.New("invalid vocabulary")

	// Verification errors
	ErrNotArray      = errors.New("fixture is not a JSON array")
	ErrCountMismatch = errors.New("record count mismatch")
)
