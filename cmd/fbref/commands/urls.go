package commands

import (
	"fbref-transfers/cmd/fbref/globals"
	"fbref-transfers/services/transfers"

	"github.com/spf13/cobra"
)

var urlsFlags crawlFlags

func init() {
	urlsFlags.register(urlsCmd)
	RootCmd.AddCommand(urlsCmd)
}

var urlsCmd = &cobra.Command{
	Use:   "urls <ledger.csv>",
	Short: "Finds the fbref url of every player in the ledger: crawls the index, then matches.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		ledger, err := transfers.ReadLedger(args[0])
		if err != nil {
			return err
		}
		players := ledger.UniquePlayers()
		startPerfStats(ctx, g)

		state, plan, summary, err := crawlIndex(ctx, g.Config, players, urlsFlags)
		if err != nil {
			// progress is in the checkpoint, rerunning resumes from it
			notifyDone(ctx, g.Config, "player urls", summary, err)
			return err
		}

		matchSummary, err := matchPlayers(ctx, g.Config, args[0], players, plan.Omitted, state.Players)
		summary += "\n" + matchSummary
		notifyDone(ctx, g.Config, "player urls", summary, err)
		return err
	},
}
