package commands

import (
	"fbref-transfers/cmd/fbref/globals"
	"fbref-transfers/services/playerscrape"
	"fbref-transfers/services/report"

	"github.com/spf13/cobra"
)

var (
	batchCount int
	batchDir   string
)

func init() {
	batchesCmd.Flags().IntVarP(&batchCount, "count", "n", 4, "number of batches")
	batchesCmd.Flags().StringVar(&batchDir, "dir", "", "directory to write the batches to (default output_dir)")
	RootCmd.AddCommand(batchesCmd)
}

var batchesCmd = &cobra.Command{
	Use:   "batches [player_urls.json]",
	Short: "Splits a url file into batches that can be scraped separately.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		input := outputPath(g.Config, report.PlayerUrlsFile)
		if len(args) == 1 {
			input = args[0]
		}
		players, err := readPlayerUrls(input)
		if err != nil {
			return err
		}

		dir := batchDir
		if dir == "" {
			dir = g.Config.OutputDir
		}
		files, err := playerscrape.WriteBatches(dir, players, batchCount)
		printWritten(files)
		return err
	},
}
