package statstore

import (
	"context"
	"io"
	"log/slog"

	"fbref-transfers/lib/sqliteutil"
)

type Config struct {
	// directory of per-player csv files, used when Database is not configured
	Dir      string            `json:"dir"`
	Database sqliteutil.Config `json:"database"`
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the store selected by the config, the closer releases
// its resources.
func Open(ctx context.Context, config Config) (Store, io.Closer, error) {
	if config.Database.Configured() {
		store, err := OpenSQLStore(ctx, config.Database)
		if err != nil {
			return nil, nil, err
		}
		slog.DebugContext(ctx, "using sql stats store", "file", config.Database.File, "url", config.Database.Url)
		return store, store, nil
	}
	slog.DebugContext(ctx, "using csv stats store", "dir", config.Dir)
	return CSVStore{Dir: config.Dir}, nopCloser{}, nil
}
