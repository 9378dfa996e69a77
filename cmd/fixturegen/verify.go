package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pkg.jsn.cam/talentfixtures/internal/config"
	"pkg.jsn.cam/talentfixtures/internal/output"
	"pkg.jsn.cam/talentfixtures/pkg/fixture"
)

var errVerifyFailed = errors.New("fixture verification failed")

type verifyOptions struct {
	configPath string
	generator  string
	count      int
}

func newVerifyCmd() *cobra.Command {
	o := &verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify FILE...",
		Short: "Check fixture files against the generation rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, o, args)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML config file supplying the vocabulary")
	f.StringVarP(&o.generator, "generator", "g", fixture.DefaultGenerator, "Generator the files were written by")
	f.IntVarP(&o.count, "count", "n", 0, "Expected record count; 0 accepts any")
	return cmd
}

func runVerify(cmd *cobra.Command, o *verifyOptions, paths []string) error {
	vocab := fixture.DefaultVocabulary()
	if o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		vocab = cfg.Vocabulary
	}
	if _, err := fixture.Get(o.generator, vocab); err != nil {
		return err
	}

	reports := make([]*output.Report, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gen, err := fixture.Get(o.generator, vocab)
			if err != nil {
				return err
			}
			rep, err := output.Verify(path, gen, o.count)
			if err != nil {
				// Unreadable files are reported with the rest
				rep = &output.Report{Path: path, Err: err}
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, rep := range reports {
		if rep.Err == nil {
			printf(cmd, "ok    %s (%d records)\n", rep.Path, rep.Records)
			continue
		}
		failed++
		if rep.Violations == 0 {
			printf(cmd, "FAIL  %s: %v\n", rep.Path, rep.Err)
			continue
		}
		printf(cmd, "FAIL  %s (%d records, %d violations)\n", rep.Path, rep.Records, rep.Violations)
		for _, line := range unwrapJoined(rep.Err) {
			printf(cmd, "      %v\n", line)
		}
		slog.Debug("verification failed", "path", rep.Path, "violations", rep.Violations)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errVerifyFailed, failed, len(paths))
	}
	return nil
}

// unwrapJoined flattens errors.Join trees into their leaves
func unwrapJoined(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, unwrapJoined(e)...)
	}
	return out
}
