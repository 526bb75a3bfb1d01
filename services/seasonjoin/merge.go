package seasonjoin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fbref-transfers/services/statstore"
	"fbref-transfers/services/transfers"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("fbref.services.seasonjoin")

const (
	StatsPrefix       = "Stats_"
	DefensivePrefix   = "Def_"
	StatsSeasonColumn = "Stats_Season"
)

// NotFound is a transfer without standard stats for the season before it.
type NotFound struct {
	Player         string
	TransferSeason string
	LookingFor     string
}

// Skipped is a transfer that could not be processed at all.
type Skipped struct {
	Player string
	Season string
	Err    error
}

type MergeResult struct {
	Header   []string
	Records  [][]string
	NotFound []NotFound
	Skipped  []Skipped
	Total    int
}

type Merger struct {
	Store  statstore.Store
	Parser SeasonParser
}

type tableKey struct {
	player string
	kind   string
}

type tableCache struct {
	store  statstore.Store
	tables map[tableKey][]Row
}

func (c *tableCache) rows(ctx context.Context, player, kind string) ([]Row, error) {
	key := tableKey{player: player, kind: kind}
	if rows, ok := c.tables[key]; ok {
		return rows, nil
	}
	table, err := c.store.Table(ctx, player, kind)
	if errors.Is(err, statstore.ErrNotFound) {
		c.tables[key] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rows := RowsFromTable(player, table)
	c.tables[key] = rows
	return rows, nil
}

type columnSet struct {
	order []string
	seen  map[string]bool
}

func (s *columnSet) add(column string) {
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	if s.seen[column] {
		return
	}
	s.seen[column] = true
	s.order = append(s.order, column)
}

// Merge appends to every transfer the player's standard stats (prefixed
// "Stats_") and defensive stats (prefixed "Def_") from the season before
// the transfer. The output header is the ledger's header followed by every
// stats column seen, records lacking a column leave it empty.
func (m Merger) Merge(ctx context.Context, ledger transfers.Ledger) (MergeResult, error) {
	ctx, span := tracer.Start(ctx, "Merge")
	defer span.End()

	list, err := ledger.Transfers()
	if err != nil {
		return MergeResult{}, err
	}

	cache := &tableCache{store: m.Store, tables: map[tableKey][]Row{}}
	result := MergeResult{Total: len(list)}
	var statsColumns, defColumns columnSet
	var merged []map[string]string
	var mergedTransfers []transfers.Transfer

	for i, t := range list {
		if ctx.Err() != nil {
			return MergeResult{}, ctx.Err()
		}
		if (i+1)%100 == 0 {
			slog.InfoContext(ctx, "merging transfers", "progress", fmt.Sprintf("%d/%d", i+1, len(list)))
		}

		previous, err := m.Parser.PreviousSeason(t.Season)
		if err != nil {
			slog.WarnContext(ctx, "skipping transfer", "player", t.Player, "season", t.Season, "err", err)
			result.Skipped = append(result.Skipped, Skipped{Player: t.Player, Season: t.Season, Err: err})
			continue
		}

		values, found, err := m.mergeOne(ctx, cache, t.Player, previous, &statsColumns, &defColumns)
		if err != nil {
			slog.WarnContext(ctx, "failed to read stats, skipping transfer", "player", t.Player, "err", err)
			result.Skipped = append(result.Skipped, Skipped{Player: t.Player, Season: t.Season, Err: err})
			continue
		}
		if !found {
			result.NotFound = append(result.NotFound, NotFound{
				Player:         t.Player,
				TransferSeason: t.Season,
				LookingFor:     previous,
			})
			continue
		}
		merged = append(merged, values)
		mergedTransfers = append(mergedTransfers, t)
	}

	result.Header = append([]string{}, ledger.Header...)
	result.Header = append(result.Header, statsColumns.order...)
	result.Header = append(result.Header, defColumns.order...)
	result.Header = append(result.Header, StatsSeasonColumn)

	for i, values := range merged {
		record := make([]string, len(result.Header))
		copy(record, mergedTransfers[i].Record)
		for j := len(ledger.Header); j < len(result.Header); j++ {
			record[j] = values[result.Header[j]]
		}
		result.Records = append(result.Records, record)
	}

	span.SetAttributes(
		attribute.Int("merged", len(result.Records)),
		attribute.Int("not_found", len(result.NotFound)),
		attribute.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (m Merger) mergeOne(ctx context.Context, cache *tableCache, player, season string, statsColumns, defColumns *columnSet) (map[string]string, bool, error) {
	standardRows, err := cache.rows(ctx, player, statstore.KindStandard)
	if err != nil {
		return nil, false, err
	}
	standard, found := LookupStats(player, season, standardRows)
	if !found {
		return nil, false, nil
	}
	defensiveRows, err := cache.rows(ctx, player, statstore.KindDefensive)
	if err != nil {
		return nil, false, err
	}

	values := map[string]string{}
	for i, column := range standard.Columns {
		if column == SeasonColumn {
			continue
		}
		name := StatsPrefix + column
		statsColumns.add(name)
		values[name] = standard.Values[i]
	}
	if defensive, found := LookupStats(player, season, defensiveRows); found {
		for i, column := range defensive.Columns {
			switch column {
			case SeasonColumn, SquadColumn, CompColumn:
				continue
			}
			name := DefensivePrefix + column
			defColumns.add(name)
			values[name] = defensive.Values[i]
		}
	}
	values[StatsSeasonColumn] = season
	return values, true, nil
}
