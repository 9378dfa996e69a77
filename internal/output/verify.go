package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"pkg.jsn.cam/talentfixtures/pkg/fixture"
)

// maxReported caps the violations kept per file
const maxReported = 50

// ReadFile returns the top-level elements of a fixture file
func ReadFile(path string) ([]json.RawMessage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture %s: %w", path, err)
	}
	defer file.Close()

	var r io.Reader = file
	if IsCompressed(path) {
		zr, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	var elems []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", fixture.ErrNotArray, path, err)
	}
	return elems, nil
}

// Report summarizes the verification of one fixture file
type Report struct {
	Path       string
	Records    int
	Violations int
	Err        error // joined violations, nil when the file is valid
}

// Verify checks every element of the file at path with g. When want > 0 the
// element count must equal want.
func Verify(path string, g fixture.Generator, want int) (*Report, error) {
	elems, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	rep := &Report{Path: path, Records: len(elems)}
	var errs []error
	if want > 0 && len(elems) != want {
		errs = append(errs, fmt.Errorf("%w: got %d, want %d", fixture.ErrCountMismatch, len(elems), want))
		rep.Violations++
	}

	for i, raw := range elems {
		cerr := g.Check(i, raw)
		if cerr == nil {
			continue
		}
		rep.Violations++
		if len(errs) < maxReported {
			errs = append(errs, cerr)
		}
	}

	rep.Err = errors.Join(errs...)
	return rep, nil
}
