package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"fbref-transfers/cmd/fbref/config"
	"fbref-transfers/cmd/fbref/globals"
	"fbref-transfers/services/coverage"
	"fbref-transfers/services/indexcrawl"
	"fbref-transfers/services/report"
	"fbref-transfers/services/transfers"

	"github.com/spf13/cobra"
)

type crawlFlags struct {
	all   bool
	fresh bool
}

func (f *crawlFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.all, "all-shards", false, "crawl all 676 shards instead of the ones the ledger needs")
	cmd.Flags().BoolVar(&f.fresh, "fresh", false, "ignore the checkpoint and start over")
}

var indexFlags crawlFlags

func init() {
	indexFlags.register(indexCmd)
	RootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <ledger.csv>",
	Short: "Crawls the player index pages the ledger's players fall into, resuming from the checkpoint.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		ledger, err := transfers.ReadLedger(args[0])
		if err != nil {
			return err
		}
		startPerfStats(ctx, g)

		_, _, summary, err := crawlIndex(ctx, g.Config, ledger.UniquePlayers(), indexFlags)
		notifyDone(ctx, g.Config, "index crawl", summary, err)
		return err
	},
}

// crawlIndex plans and runs a crawl for `players`, the returned state is
// non-nil whenever some progress was made.
func crawlIndex(ctx context.Context, cfg config.Config, players []string, flags crawlFlags) (*indexcrawl.CrawlState, coverage.Plan, string, error) {
	plan := coverage.RequiredShards(players)
	for _, om := range plan.Omitted {
		slog.WarnContext(ctx, "name cannot be looked up in the index", "name", om.Name, "err", om.Err)
	}
	summary := report.PlanSummary(os.Stdout, len(players), plan, cfg.Fbref.IndexDelayDuration())

	shards := plan.Shards
	if flags.all {
		shards = coverage.AllShards()
	}

	checkpoint := indexcrawl.CheckpointStore{Path: cfg.Crawl.Checkpoint}
	var resume *indexcrawl.CrawlState
	if !flags.fresh {
		state, err := checkpoint.Load()
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.InfoContext(ctx, "no checkpoint found, starting a new crawl", "path", checkpoint.Path)
		case err != nil:
			return nil, plan, summary, err
		default:
			slog.InfoContext(
				ctx, "resuming from checkpoint",
				"path", checkpoint.Path,
				"processed", len(state.Processed),
				"players", len(state.Players),
			)
			resume = state
		}
	}

	client, err := newClient(cfg, cfg.Fbref.IndexDelayDuration())
	if err != nil {
		return nil, plan, summary, err
	}
	crawler := indexcrawl.NewCrawler(client, indexcrawl.Options{
		CheckpointEvery: cfg.Crawl.CheckpointEvery,
		Checkpoint:      checkpoint,
	})

	state, rep, err := crawler.Crawl(ctx, shards, resume)
	if state != nil {
		summary += "\n" + report.CrawlSummary(os.Stdout, rep, state)
	}
	return state, plan, summary, err
}
