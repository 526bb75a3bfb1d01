package commands

import (
	"context"
	"log/slog"
	"time"

	"fbref-transfers/cmd/fbref/config"
	"fbref-transfers/cmd/fbref/globals"
	"fbref-transfers/lib/configutil"
	"fbref-transfers/lib/telemetry"

	"github.com/spf13/cobra"
)

const serviceName = "fbref"

var (
	configPath string
	debug      bool
	outputDir  string

	active telemetry.Telemetry
)

var RootCmd = &cobra.Command{
	Use:          "fbref",
	Short:        "fbref collects fbref.com player statistics for the players of a transfers ledger.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(debug)

		err := configutil.LoadDotenv()
		if err != nil {
			return err
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}

		tel, err := telemetry.Setup(cmd.Context(), serviceName, cfg.Telemetry)
		if err != nil {
			return err
		}
		if !tel.Enabled() {
			tel, err = telemetry.SetupFromEnv(cmd.Context(), serviceName)
			if err != nil {
				return err
			}
		}
		active = tel

		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Config:    cfg,
			Telemetry: tel,
		}))
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "fbref.json5", "config file, searched for from the working directory upwards")
	RootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "directory for output files, overrides output_dir")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the command line and flushes telemetry afterwards, even
// when the command was interrupted.
func Execute(ctx context.Context) error {
	err := RootCmd.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	shutdownErr := active.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}
	return err
}
