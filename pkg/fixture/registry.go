package fixture

import (
	"fmt"
	"slices"
)

// DefaultGenerator is used when no generator is named
const DefaultGenerator = "talent"

// Registry maps generator names to generator factory functions.
// Factories take the vocabulary so enumerations can be overridden per run.
var Registry = map[string]func(vocab Vocabulary) Generator{
	"talent":     func(v Vocabulary) Generator { return NewTalentGenerator(v) },
	"credential": func(v Vocabulary) Generator { return NewCredentialGenerator(v) },
}

// Get returns a generator by name. The vocabulary must pass Validate; call
// WithDefaults first to fill in unset fields.
func Get(name string, vocab Vocabulary) (Generator, error) {
	factory, exists := Registry[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGenerator, name)
	}
	if err := vocab.Validate(); err != nil {
		return nil, err
	}
	return factory(vocab), nil
}

// List returns all available generator names, sorted
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
