package commands

import (
	"os"

	"fbref-transfers/cmd/fbref/globals"
	"fbref-transfers/services/report"
	"fbref-transfers/services/seasonjoin"
	"fbref-transfers/services/statstore"
	"fbref-transfers/services/transfers"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge <ledger.csv>",
	Short: "Joins every transfer with the player's stats from the season before it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		ledger, err := transfers.ReadLedger(args[0])
		if err != nil {
			return err
		}

		store, closer, err := statstore.Open(ctx, g.Config.Stats)
		if err != nil {
			return err
		}
		defer closer.Close()

		merger := seasonjoin.Merger{
			Store:  store,
			Parser: seasonjoin.SeasonParser{Century: g.Config.Merge.Century},
		}
		result, err := merger.Merge(ctx, ledger)
		if err != nil {
			notifyDone(ctx, g.Config, "merge", "", err)
			return err
		}

		files, err := report.WriteMergeOutputs(g.Config.OutputDir, result)
		summary := report.MergeSummary(os.Stdout, result)
		printWritten(files)
		notifyDone(ctx, g.Config, "merge", summary, err)
		return err
	},
}
