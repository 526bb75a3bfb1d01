package indexcrawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"fbref-transfers/lib/chrono"
	"fbref-transfers/lib/jsonfile"
)

type Checkpointer interface {
	Save(ctx context.Context, state *CrawlState) error
}

type checkpointFile struct {
	Players         map[string]string `json:"players"`
	ProcessedCombos []string          `json:"processed_combos"`
	Timestamp       string            `json:"timestamp"`
}

// CheckpointStore persists a CrawlState as a json file that is replaced
// atomically on every save.
type CheckpointStore struct {
	Path string
}

func (c CheckpointStore) Save(ctx context.Context, state *CrawlState) error {
	file := checkpointFile{
		Players:         state.Players,
		ProcessedCombos: state.ProcessedShards(),
		Timestamp:       chrono.Format(state.Timestamp),
	}
	if file.Players == nil {
		file.Players = map[string]string{}
	}
	err := jsonfile.Write(c.Path, file)
	if err != nil {
		return err
	}
	slog.DebugContext(
		ctx, "checkpoint saved",
		"path", c.Path,
		"players", len(state.Players),
		"processed", len(state.Processed),
	)
	return nil
}

// Load reads a checkpoint, the error wraps os.ErrNotExist when there is none.
func (c CheckpointStore) Load() (*CrawlState, error) {
	file, err := jsonfile.Read[checkpointFile](c.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no checkpoint at %s: %w", c.Path, err)
		}
		return nil, err
	}

	state := NewCrawlState()
	for name, url := range file.Players {
		state.Players[name] = url
	}
	for _, shard := range file.ProcessedCombos {
		state.Processed[shard] = struct{}{}
	}
	if file.Timestamp != "" {
		ts, err := chrono.Parse(file.Timestamp)
		if err != nil {
			slog.Warn("ignoring malformed checkpoint timestamp", "path", c.Path, "timestamp", file.Timestamp)
		} else {
			state.Timestamp = ts
		}
	}
	return state, nil
}
