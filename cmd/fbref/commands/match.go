package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"fbref-transfers/cmd/fbref/config"
	"fbref-transfers/cmd/fbref/globals"
	"fbref-transfers/services/coverage"
	"fbref-transfers/services/indexcrawl"
	"fbref-transfers/services/linker"
	"fbref-transfers/services/report"
	"fbref-transfers/services/transfers"

	"github.com/spf13/cobra"
)

var matchIndexFile string

func init() {
	matchCmd.Flags().StringVar(&matchIndexFile, "index", "", "json object of display name to url to match against instead of the crawl checkpoint")
	RootCmd.AddCommand(matchCmd)
}

var matchCmd = &cobra.Command{
	Use:   "match <ledger.csv>",
	Short: "Matches the ledger's players against an already crawled index.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		ledger, err := transfers.ReadLedger(args[0])
		if err != nil {
			return err
		}

		var index map[string]string
		if matchIndexFile != "" {
			index, err = readPlayerUrls(matchIndexFile)
		} else {
			var state *indexcrawl.CrawlState
			state, err = indexcrawl.CheckpointStore{Path: g.Config.Crawl.Checkpoint}.Load()
			if state != nil {
				index = state.Players
			}
		}
		if err != nil {
			return err
		}

		players := ledger.UniquePlayers()
		plan := coverage.RequiredShards(players)
		_, err = matchPlayers(ctx, g.Config, args[0], players, plan.Omitted, index)
		return err
	},
}

// matchPlayers matches `players` against `index`, writes the match
// outputs and returns the printed summary.
func matchPlayers(ctx context.Context, cfg config.Config, source string, players []string, omitted []coverage.Omission, index map[string]string) (string, error) {
	matcher := linker.Matcher{}
	if cfg.Match.Aliases != "" {
		aliases, err := linker.LoadAliases(cfg.Match.Aliases)
		if err != nil {
			return "", fmt.Errorf("aliases: %w", err)
		}
		matcher.Aliases = aliases
	}

	result := matcher.Match(players, index)
	suggestions := linker.Suggest(result.Unmatched, index, cfg.Match.SuggestThreshold)

	files, err := report.WriteMatchOutputs(cfg.OutputDir, report.MatchOutputs{
		Result:      result,
		Suggestions: suggestions,
		Omitted:     omitted,
		Source:      source,
		Time:        time.Now(),
	})
	if err != nil {
		return "", err
	}
	summary := report.MatchSummary(os.Stdout, result, len(suggestions))
	printWritten(files)
	return summary, nil
}
