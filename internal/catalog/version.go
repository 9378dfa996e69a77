package catalog

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// SchemaVersion is the version of the fixture layout and generation rules
// recorded with every run. Bump the major version whenever the same seed would
// produce different records.
const SchemaVersion = "v1.0.0"

// IsCompatibleSchema checks if a recorded schema version can be replayed by
// this build. Compatibility rules:
// - Major version must match exactly.
// - Minor and patch versions can differ.
func IsCompatibleSchema(recorded string) (bool, error) {
	if !semver.IsValid(recorded) {
		return false, fmt.Errorf("invalid schema version: %q", recorded)
	}
	return semver.Major(recorded) == semver.Major(SchemaVersion), nil
}

// CheckSchema returns ErrIncompatibleSchema when recorded cannot be replayed
func CheckSchema(recorded string) error {
	ok, err := IsCompatibleSchema(recorded)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: run has %s, this build requires %s.x.x",
			ErrIncompatibleSchema, recorded, semver.Major(SchemaVersion))
	}
	return nil
}
