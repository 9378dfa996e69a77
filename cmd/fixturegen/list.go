package main

import (
	"github.com/spf13/cobra"

	"pkg.jsn.cam/talentfixtures/pkg/fixture"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available generators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printf(cmd, "%-12s %-8s %s\n", "GENERATOR", "DEFAULT", "DESCRIPTION")
			for _, name := range fixture.List() {
				g, err := fixture.Get(name, fixture.DefaultVocabulary())
				if err != nil {
					return err
				}
				printf(cmd, "%-12s %-8d %s\n", name, g.DefaultCount(), g.Description())
			}
			return nil
		},
	}
}
