package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"pkg.jsn.cam/talentfixtures/pkg/fixture"
)

var runsBucket = []byte("runs")

// Run records one successful fixture generation, enough to regenerate it
type Run struct {
	ID            string             `json:"id"`
	Generator     string             `json:"generator"`
	Count         int                `json:"count"`
	Seed          uint64             `json:"seed"`
	Output        string             `json:"output"`
	Bytes         int64              `json:"bytes"`
	Digest        string             `json:"digest"`
	SchemaVersion string             `json:"schema_version"`
	Vocabulary    fixture.Vocabulary `json:"vocabulary"`
	CreatedAt     time.Time          `json:"created_at"`
	Duration      time.Duration      `json:"duration"`
}

// NewRun returns a run with a fresh ID stamped with the current schema version
func NewRun(generator string, count int, seed uint64, vocab fixture.Vocabulary) *Run {
	return &Run{
		ID:            uuid.NewString(),
		Generator:     generator,
		Count:         count,
		Seed:          seed,
		SchemaVersion: SchemaVersion,
		Vocabulary:    vocab,
		CreatedAt:     time.Now().UTC(),
	}
}

// Store defines the interface for persisting generation runs
type Store interface {
	SaveRun(run *Run) error
	// LoadRun accepts a full run ID or a unique prefix of one
	LoadRun(id string) (*Run, error)
	// ListRuns returns all runs, newest first
	ListRuns() ([]*Run, error)
	Close() error
}

// RunStore implements Store using a Backend
type RunStore struct {
	backend Backend
}

// NewRunStore creates a run store on the given backend
func NewRunStore(backend Backend) (*RunStore, error) {
	if err := backend.EnsureBucket(runsBucket); err != nil {
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &RunStore{backend: backend}, nil
}

// Open opens the bbolt catalog at path
func Open(path string) (*RunStore, error) {
	backend, err := NewBboltBackend(path)
	if err != nil {
		return nil, err
	}
	s, err := NewRunStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return s, nil
}

// OpenExisting opens the bbolt catalog at path, failing with ErrNoCatalog
// instead of creating it when the file does not exist
func OpenExisting(path string) (*RunStore, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoCatalog, path)
		}
		return nil, fmt.Errorf("stat catalog %s: %w", path, err)
	}
	return Open(path)
}

func (s *RunStore) SaveRun(run *Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", run.ID, err)
	}
	return s.backend.Put(runsBucket, []byte(run.ID), data)
}

func (s *RunStore) LoadRun(id string) (*Run, error) {
	data, err := s.backend.Get(runsBucket, []byte(id))
	if err != nil {
		return nil, err
	}
	if data != nil {
		return decodeRun(data)
	}

	var matches []*Run
	err = s.backend.ForEach(runsBucket, func(k, v []byte) error {
		if !strings.HasPrefix(string(k), id) {
			return nil
		}
		run, err := decodeRun(v)
		if err != nil {
			return err
		}
		matches = append(matches, run)
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case id == "" || len(matches) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case len(matches) > 1:
		return nil, fmt.Errorf("%w: %s matches %d runs", ErrAmbiguousRun, id, len(matches))
	}
	return matches[0], nil
}

func (s *RunStore) ListRuns() ([]*Run, error) {
	var runs []*Run
	err := s.backend.ForEach(runsBucket, func(k, v []byte) error {
		run, err := decodeRun(v)
		if err != nil {
			slog.Warn("skipping undecodable run", "id", string(k), "err", err)
			return nil
		}
		runs = append(runs, run)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(runs, func(a, b *Run) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return runs, nil
}

func (s *RunStore) Close() error {
	return s.backend.Close()
}

func decodeRun(data []byte) (*Run, error) {
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &run, nil
}
