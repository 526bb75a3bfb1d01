// Package indexcrawl walks the alphabetical player index one shard at a
// time, persisting its progress so an interrupted crawl can be resumed
// without fetching any completed shard again.
package indexcrawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"fbref-transfers/lib/chrono"
	"fbref-transfers/lib/scrapers/fbref"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("fbref.services.indexcrawl")

const DefaultCheckpointEvery = 50

type IndexSource interface {
	FetchIndex(ctx context.Context, shard string) ([]fbref.IndexEntry, error)
}

type Options struct {
	// save the state after this many processed shards (and once at the end)
	CheckpointEvery int
	// nil disables checkpointing
	Checkpoint Checkpointer
	Clock      chrono.TimeAPI
}

type Crawler struct {
	source IndexSource
	opts   Options
}

func NewCrawler(source IndexSource, opts Options) *Crawler {
	if opts.CheckpointEvery <= 0 {
		opts.CheckpointEvery = DefaultCheckpointEvery
	}
	if opts.Clock == nil {
		opts.Clock = chrono.NewStandardTime()
	}
	return &Crawler{source: source, opts: opts}
}

type ShardFailure struct {
	Shard string
	Err   error
}

type Report struct {
	// shards fetched during this run, including NotFound
	Processed []string
	NotFound  []string
	// shards skipped because the resumed state already had them
	Skipped      []string
	Failed       []ShardFailure
	EntriesAdded int
}

func (c *Crawler) checkpoint(ctx context.Context, state *CrawlState) error {
	if c.opts.Checkpoint == nil {
		return nil
	}
	state.Timestamp = c.opts.Clock.Now()
	err := c.opts.Checkpoint.Save(ctx, state)
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

func dedupeSorted(shards []string) []string {
	sorted := append([]string(nil), shards...)
	sort.Strings(sorted)
	out := sorted[:0]
	for i, s := range sorted {
		if i > 0 && sorted[i-1] == s {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Crawl fetches every shard not yet processed in `resume` (which may be
// nil and is not modified) in ascending order. A shard whose page
// does not exist counts as processed, any other failure leaves it
// pending for the next run and is listed in the report.
//
// When ctx is cancelled the state is checkpointed and returned along
// with the context's error. Failing to save a checkpoint aborts the crawl.
func (c *Crawler) Crawl(ctx context.Context, shards []string, resume *CrawlState) (*CrawlState, Report, error) {
	ctx, span := tracer.Start(ctx, "Crawl")
	defer span.End()

	state := resume.Clone()
	var report Report

	var remaining []string
	for _, shard := range dedupeSorted(shards) {
		if state.IsProcessed(shard) {
			report.Skipped = append(report.Skipped, shard)
			continue
		}
		remaining = append(remaining, shard)
	}
	span.SetAttributes(
		attribute.Int("remaining", len(remaining)),
		attribute.Int("skipped", len(report.Skipped)),
	)
	slog.InfoContext(
		ctx, "starting index crawl",
		"remaining", len(remaining),
		"already_processed", len(report.Skipped),
		"players", len(state.Players),
	)

	start := time.Now()
	sinceCheckpoint := 0
	for i, shard := range remaining {
		if ctx.Err() != nil {
			return c.stop(ctx, span, state, report, ctx.Err())
		}

		entries, err := c.source.FetchIndex(ctx, shard)
		switch {
		case err == nil:
		case errors.Is(err, fbref.ErrNotFound):
			report.NotFound = append(report.NotFound, shard)
		case ctx.Err() != nil:
			return c.stop(ctx, span, state, report, ctx.Err())
		default:
			slog.WarnContext(ctx, "shard failed, it will be retried on the next run", "shard", shard, "err", err)
			report.Failed = append(report.Failed, ShardFailure{Shard: shard, Err: err})
			continue
		}

		added := 0
		for _, e := range entries {
			if state.merge(e.Name, e.Url) {
				added++
			}
		}
		state.Processed[shard] = struct{}{}
		report.Processed = append(report.Processed, shard)
		report.EntriesAdded += added

		done := i + 1
		perShard := time.Since(start) / time.Duration(done)
		slog.InfoContext(
			ctx, "shard processed",
			"progress", fmt.Sprintf("%d/%d", done, len(remaining)),
			"shard", shard,
			"found", len(entries),
			"added", added,
			"players", len(state.Players),
			"eta", (perShard * time.Duration(len(remaining)-done)).Round(time.Second),
		)

		sinceCheckpoint++
		if sinceCheckpoint >= c.opts.CheckpointEvery {
			sinceCheckpoint = 0
			err := c.checkpoint(ctx, state)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "checkpoint failed")
				return state, report, err
			}
		}
	}

	err := c.checkpoint(ctx, state)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "checkpoint failed")
		return state, report, err
	}

	slog.InfoContext(
		ctx, "index crawl finished",
		"processed", len(report.Processed),
		"not_found", len(report.NotFound),
		"failed", len(report.Failed),
		"players", len(state.Players),
	)
	return state, report, nil
}

func (c *Crawler) stop(ctx context.Context, span trace.Span, state *CrawlState, report Report, cause error) (*CrawlState, Report, error) {
	slog.WarnContext(ctx, "crawl interrupted, saving progress", "processed", len(report.Processed))
	span.SetStatus(codes.Error, "cancelled")

	// the caller's context is already done
	err := c.checkpoint(context.WithoutCancel(ctx), state)
	if err != nil {
		return state, report, errors.Join(cause, err)
	}
	return state, report, cause
}
