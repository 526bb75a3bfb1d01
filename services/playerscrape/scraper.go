// Package playerscrape downloads the stats tables of a list of players,
// one player at a time.
package playerscrape

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"fbref-transfers/lib/scrapers/fbref"
	"fbref-transfers/services/statstore"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("fbref.services.playerscrape")

type PageSource interface {
	FetchPlayer(ctx context.Context, url string) (fbref.PlayerPage, error)
}

type Options struct {
	// scrape players even if the store already has their tables
	Force bool
}

type Scraper struct {
	source PageSource
	store  statstore.Store
	opts   Options
}

func NewScraper(source PageSource, store statstore.Store, opts Options) *Scraper {
	return &Scraper{source: source, store: store, opts: opts}
}

type Failure struct {
	Player string
	Url    string
	Err    error
}

type Report struct {
	Scraped []string
	// players skipped because they were already stored
	Existing []string
	// player -> table kinds absent from their page
	MissingTables map[string][]string
	Failed        []Failure
}

func sortedNames(players map[string]string) []string {
	names := make([]string, 0, len(players))
	for name := range players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scrape fetches every player in name order and stores their tables
// under the name used as the map key. A player that cannot be fetched
// is reported and skipped, a failure to write to the store stops the run.
func (s *Scraper) Scrape(ctx context.Context, players map[string]string) (Report, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	report := Report{MissingTables: map[string][]string{}}
	names := sortedNames(players)
	span.SetAttributes(attribute.Int("players", len(names)))

	start := time.Now()
	for i, name := range names {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		if !s.opts.Force {
			has, err := s.store.Has(ctx, name)
			if err != nil {
				return report, fmt.Errorf("check store for %s: %w", name, err)
			}
			if has {
				report.Existing = append(report.Existing, name)
				continue
			}
		}

		url := players[name]
		page, err := s.source.FetchPlayer(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			slog.WarnContext(ctx, "failed to scrape player", "player", name, "url", url, "err", err)
			report.Failed = append(report.Failed, Failure{Player: name, Url: url, Err: err})
			continue
		}

		for _, t := range fbref.PlayerTables {
			table, ok := page.Tables[t.Kind]
			if !ok {
				report.MissingTables[name] = append(report.MissingTables[name], t.Kind)
				continue
			}
			err := s.store.Put(ctx, name, t.Kind, table)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to store table")
				return report, fmt.Errorf("store %s of %s: %w", t.Kind, name, err)
			}
		}
		report.Scraped = append(report.Scraped, name)

		done := i + 1
		perPlayer := time.Since(start) / time.Duration(done)
		slog.InfoContext(
			ctx, "player scraped",
			"progress", fmt.Sprintf("%d/%d", done, len(names)),
			"player", name,
			"tables", len(page.Tables),
			"eta", (perPlayer * time.Duration(len(names)-done)).Round(time.Second),
		)
	}

	return report, nil
}
