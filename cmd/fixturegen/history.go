package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/talentfixtures/internal/catalog"
)

func newHistoryCmd() *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "List recorded runs, or show one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.OpenExisting(catalogPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				run, err := store.LoadRun(args[0])
				if err != nil {
					return err
				}
				printRun(cmd, run)
				return nil
			}
			return listRuns(cmd, store)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "fixtures.db", "bbolt catalog file")
	return cmd
}

func listRuns(cmd *cobra.Command, store catalog.Store) error {
	runs, err := store.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		printf(cmd, "No runs recorded\n")
		return nil
	}

	printf(cmd, "%-36s %-10s %7s %9s %-20s %s\n", "RUN ID", "GENERATOR", "COUNT", "SIZE", "SEED", "CREATED")
	printf(cmd, "─────────────────────────────────────────────────────────────────────────────────────────────────────\n")
	for _, run := range runs {
		printf(cmd, "%-36s %-10s %7d %9s %-20d %s\n",
			run.ID,
			run.Generator,
			run.Count,
			humanize.Bytes(uint64(run.Bytes)),
			run.Seed,
			humanize.Time(run.CreatedAt))
	}
	return nil
}

func printRun(cmd *cobra.Command, run *catalog.Run) {
	printf(cmd, "Run Details:\n")
	printf(cmd, "  ID:         %s\n", run.ID)
	printf(cmd, "  Generator:  %s\n", run.Generator)
	printf(cmd, "  Records:    %s\n", humanize.Comma(int64(run.Count)))
	printf(cmd, "  Seed:       %d\n", run.Seed)
	printf(cmd, "  Output:     %s\n", run.Output)
	printf(cmd, "  Size:       %s\n", humanize.Bytes(uint64(run.Bytes)))
	printf(cmd, "  SHA-256:    %s\n", run.Digest)
	printf(cmd, "  Schema:     %s\n", run.SchemaVersion)
	printf(cmd, "  Created:    %s (%s)\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(run.CreatedAt))
	printf(cmd, "  Duration:   %v\n", run.Duration)
	printf(cmd, "  Skills:     %d-%d of %d\n", run.Vocabulary.MinSkills, run.Vocabulary.MaxSkills, len(run.Vocabulary.Skills))
	if ok, err := catalog.IsCompatibleSchema(run.SchemaVersion); err != nil || !ok {
		printf(cmd, "\nWarning: run cannot be replayed by this build (schema %s)\n", run.SchemaVersion)
	}
}
