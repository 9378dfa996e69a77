package fixture

import (
	"encoding/json"
	"math/rand/v2"
)

// Generator produces fixture records of one shape
type Generator interface {
	// Init initializes the generator with a per-instance random source.
	// Records must be requested in index order after Init.
	Init(r *rand.Rand)

	// Record returns the i-th record. The result must be JSON-encodable.
	Record(i int) any

	// Check validates the i-th element of a previously written fixture file
	Check(i int, raw json.RawMessage) error

	// Description returns a human-readable description of the record format
	Description() string

	// DefaultCount returns the suggested default number of records to generate
	DefaultCount() int
}
