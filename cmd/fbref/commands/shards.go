package commands

import (
	"fmt"
	"os"
	"strings"

	"fbref-transfers/cmd/fbref/globals"
	"fbref-transfers/services/coverage"
	"fbref-transfers/services/report"
	"fbref-transfers/services/transfers"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(shardsCmd)
}

var shardsCmd = &cobra.Command{
	Use:   "shards <ledger.csv>",
	Short: "Lists the index shards the ledger's players fall into, without fetching anything.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		ledger, err := transfers.ReadLedger(args[0])
		if err != nil {
			return err
		}
		players := ledger.UniquePlayers()
		plan := coverage.RequiredShards(players)

		report.PlanSummary(os.Stdout, len(players), plan, g.Config.Fbref.IndexDelayDuration())
		fmt.Println(strings.Join(plan.Shards, " "))
		for _, om := range plan.Omitted {
			fmt.Printf("skipped %q: %v\n", om.Name, om.Err)
		}
		return nil
	},
}
