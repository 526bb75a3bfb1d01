package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fbref-transfers/cmd/fbref/config"
	"fbref-transfers/cmd/fbref/globals"
	"fbref-transfers/lib/jsonfile"
	"fbref-transfers/lib/notify"
	"fbref-transfers/lib/scrapers/fbref"
	"fbref-transfers/lib/telemetry"
)

const perfStatsInterval = 15 * time.Second

func newClient(cfg config.Config, delay time.Duration) (*fbref.Client, error) {
	return fbref.NewClient(cfg.Fbref.ClientOptions(delay))
}

// startPerfStats records process gauges for long running commands when
// metrics are exported.
func startPerfStats(ctx context.Context, g *globals.Value) {
	if g.Telemetry.MeterProvider == nil {
		return
	}
	telemetry.InstrumentPerfStats(ctx, perfStatsInterval)
}

// notifyDone mails a finished (or failed) run's summary. Delivery
// failures are logged and never fail the command.
func notifyDone(ctx context.Context, cfg config.Config, subject, body string, runErr error) {
	if !cfg.Notify.Enabled() {
		return
	}
	subject = "fbref: " + subject
	switch {
	case errors.Is(runErr, context.Canceled):
		subject += " interrupted"
	case runErr != nil:
		subject += " failed"
	}
	if runErr != nil {
		body = fmt.Sprintf("%s\nerror: %v\n", body, runErr)
	}
	err := notify.Send(context.WithoutCancel(ctx), cfg.Notify, subject, body)
	if err != nil {
		slog.WarnContext(ctx, "failed to send notification", "err", err)
	}
}

func readPlayerUrls(path string) (map[string]string, error) {
	players, err := jsonfile.Read[map[string]string](path)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%s lists no players", path)
	}
	return players, nil
}

func outputPath(cfg config.Config, name string) string {
	return filepath.Join(cfg.OutputDir, name)
}

func printWritten(files []string) {
	for _, f := range files {
		fmt.Fprintf(os.Stdout, "wrote %s\n", f)
	}
}
