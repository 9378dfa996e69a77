package main

import (
	"github.com/spf13/cobra"

	"pkg.jsn.cam/talentfixtures/internal/catalog"
	"pkg.jsn.cam/talentfixtures/internal/generate"
)

func newReplayCmd() *cobra.Command {
	var (
		catalogPath string
		outputPath  string
		progress    bool
	)
	cmd := &cobra.Command{
		Use:   "replay RUN_ID",
		Short: "Regenerate a recorded run from its seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.OpenExisting(catalogPath)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.LoadRun(args[0])
			if err != nil {
				return err
			}

			opts, done := progressOptions(progress, run.Count, "replaying "+shortID(run.ID))
			res, err := generate.Replay(cmd.Context(), run, outputPath, opts)
			done()
			if err != nil {
				return err
			}
			printf(cmd, "✅ Replayed run %s into %s (%d entries, digest matches)\n", run.ID, res.Path, res.Records)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&catalogPath, "catalog", "fixtures.db", "bbolt catalog file")
	f.StringVarP(&outputPath, "output", "o", "", "Output file (default: the recorded path)")
	f.BoolVar(&progress, "progress", false, "Show a progress bar")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
