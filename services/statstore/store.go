// Package statstore persists the stats tables scraped for each player.
package statstore

import (
	"context"
	"errors"

	"fbref-transfers/lib/htmlutil"
	"fbref-transfers/lib/scrapers/fbref"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("fbref.services.statstore")

const (
	KindStandard  = fbref.KindStandard
	KindDefensive = fbref.KindDefensive
)

// Kinds lists every table kind a store may hold.
var Kinds = []string{KindStandard, KindDefensive}

var ErrNotFound = errors.New("stats table not found")

type Store interface {
	// Put replaces the table of the given kind for a player.
	Put(ctx context.Context, player, kind string, table htmlutil.Table) error
	// Table returns ErrNotFound when the player has no table of that kind.
	Table(ctx context.Context, player, kind string) (htmlutil.Table, error)
	// Has reports whether any table was stored for the player.
	Has(ctx context.Context, player string) (bool, error)
}
