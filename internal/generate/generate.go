// Package generate runs fixture generation end to end: pick a seed, write the
// file, record the run in the catalog.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/talentfixtures/internal/catalog"
	"pkg.jsn.cam/talentfixtures/internal/config"
	"pkg.jsn.cam/talentfixtures/internal/output"
	"pkg.jsn.cam/talentfixtures/pkg/fixture"
)

var (
	// ErrDigestMismatch means a replay did not reproduce the recorded bytes
	ErrDigestMismatch = errors.New("replayed fixture differs from recorded digest")
	// ErrCompressionMismatch means the replay target and the recorded output
	// disagree on gzip, so the digests could never match
	ErrCompressionMismatch = errors.New("replay target compression differs from recorded output")
)

// Run generates the fixture described by cfg. When store is non-nil the run is
// recorded in it. A zero cfg.Seed is replaced by a random one; the seed used is
// returned in the run.
func Run(ctx context.Context, cfg config.Config, store catalog.Store, opts output.Options) (*catalog.Run, *output.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = fixture.RandomSeed()
	}

	run := catalog.NewRun(cfg.Generator, cfg.Count, seed, cfg.Vocabulary)
	run.Output = cfg.Output

	res, err := write(ctx, run, opts)
	if err != nil {
		return nil, nil, err
	}

	if store != nil {
		if err := store.SaveRun(run); err != nil {
			return run, res, fmt.Errorf("record run: %w", err)
		}
		slog.Debug("recorded run", "id", run.ID)
	}
	return run, res, nil
}

// Replay regenerates a recorded run into path (the recorded output path when
// empty) and checks the result against the recorded digest. The target must
// use the same compression as the recorded output since the digest covers the
// bytes on disk.
func Replay(ctx context.Context, recorded *catalog.Run, path string, opts output.Options) (*output.Result, error) {
	if err := catalog.CheckSchema(recorded.SchemaVersion); err != nil {
		return nil, err
	}

	replay := *recorded
	if path != "" {
		replay.Output = path
	}
	if output.IsCompressed(replay.Output) != output.IsCompressed(recorded.Output) {
		return nil, fmt.Errorf("%w: run %s was written to %s, replay target is %s",
			ErrCompressionMismatch, recorded.ID, recorded.Output, replay.Output)
	}

	res, err := write(ctx, &replay, opts)
	if err != nil {
		return nil, err
	}
	if res.Digest != recorded.Digest {
		return res, fmt.Errorf("%w: run %s recorded %s, got %s", ErrDigestMismatch, recorded.ID, recorded.Digest, res.Digest)
	}
	return res, nil
}

// write generates run into run.Output and fills in the size, digest and duration
func write(ctx context.Context, run *catalog.Run, opts output.Options) (*output.Result, error) {
	g, err := fixture.Get(run.Generator, run.Vocabulary)
	if err != nil {
		return nil, err
	}
	g.Init(fixture.NewRand(run.Seed))

	slog.Debug("generating fixture",
		"generator", run.Generator, "count", run.Count, "seed", run.Seed, "output", run.Output)

	start := time.Now()
	res, err := output.WriteFile(ctx, run.Output, g, run.Count, opts)
	if err != nil {
		return nil, err
	}

	run.Bytes = res.Bytes
	run.Digest = res.Digest
	run.Duration = time.Since(start)

	slog.Info("wrote fixture",
		"output", res.Path,
		"records", res.Records,
		"size", humanize.Bytes(uint64(res.Bytes)),
		"seed", run.Seed,
		"took", run.Duration.Round(time.Millisecond))
	return res, nil
}
