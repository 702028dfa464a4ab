package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/MJE43/casino-sim/internal/engine"
	"github.com/MJE43/casino-sim/internal/games"
	"github.com/spf13/cobra"
)

func newGamesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List available games and random sources",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMETRIC")
			for _, spec := range games.ListGames() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", spec.ID, spec.Name, spec.MetricLabel)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "\nRandom sources: %v (default %s)\n", engine.ListSources(), engine.SourceMT64)
			return nil
		},
	}
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, engine.CurrentVersion())
			return nil
		},
	}
}
