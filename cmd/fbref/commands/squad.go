package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"fbref-transfers/cmd/fbref/globals"
	"fbref-transfers/lib/jsonfile"
	"fbref-transfers/services/report"

	"github.com/spf13/cobra"
)

var (
	squadLeague bool
	squadOutput string
	squadAppend bool
)

func init() {
	squadCmd.Flags().BoolVar(&squadLeague, "league", false, "the url is a league's standard stats page instead of a squad page")
	squadCmd.Flags().StringVarP(&squadOutput, "output", "o", "", "output file (default <output_dir>/"+report.PlayerUrlsFile+")")
	squadCmd.Flags().BoolVar(&squadAppend, "append", false, "add to the players already in the output file")
	RootCmd.AddCommand(squadCmd)
}

var squadCmd = &cobra.Command{
	Use:   "squad <url>",
	Short: "Collects the player urls listed on a squad or league stats page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		client, err := newClient(g.Config, g.Config.Fbref.IndexDelayDuration())
		if err != nil {
			return err
		}

		var found map[string]string
		if squadLeague {
			found, err = client.FetchLeagueStats(ctx, args[0])
		} else {
			found, err = client.FetchSquad(ctx, args[0])
		}
		if err != nil {
			return err
		}

		output := squadOutput
		if output == "" {
			output = outputPath(g.Config, report.PlayerUrlsFile)
		}

		players := map[string]string{}
		if squadAppend {
			existing, err := jsonfile.Read[map[string]string](output)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			for name, url := range existing {
				players[name] = url
			}
		}
		added := 0
		for name, url := range found {
			if _, ok := players[name]; ok {
				continue
			}
			players[name] = url
			added++
		}

		err = jsonfile.Write(output, players)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "collected player urls", "found", len(found), "added", added, "total", len(players))
		fmt.Printf("wrote %d players to %s\n", len(players), output)
		return nil
	},
}

