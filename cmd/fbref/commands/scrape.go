package commands

import (
	"errors"
	"os"

	"fbref-transfers/cmd/fbref/globals"
	"fbref-transfers/services/playerscrape"
	"fbref-transfers/services/report"
	"fbref-transfers/services/statstore"

	"github.com/spf13/cobra"
)

var scrapeForce bool

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeForce, "force", false, "scrape players whose tables are already stored")
	RootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [player_urls.json]",
	Short: "Downloads the standard and defensive stats tables of every player in a url file.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		input := outputPath(g.Config, report.PlayerUrlsFile)
		if len(args) == 1 {
			input = args[0]
		}
		players, err := readPlayerUrls(input)
		if err != nil {
			return err
		}

		store, closer, err := statstore.Open(ctx, g.Config.Stats)
		if err != nil {
			return err
		}
		defer closer.Close()

		client, err := newClient(g.Config, g.Config.Fbref.PlayerDelayDuration())
		if err != nil {
			return err
		}
		startPerfStats(ctx, g)

		scraper := playerscrape.NewScraper(client, store, playerscrape.Options{Force: scrapeForce})
		rep, err := scraper.Scrape(ctx, players)
		summary := report.ScrapeSummary(os.Stdout, rep)

		// partial runs still list their failures
		files, writeErr := report.WriteScrapeOutputs(g.Config.OutputDir, rep)
		printWritten(files)
		err = errors.Join(err, writeErr)

		notifyDone(ctx, g.Config, "player scrape", summary, err)
		return err
	},
}
