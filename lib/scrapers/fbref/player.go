package fbref

import (
	"context"

	"fbref-transfers/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	KindStandard  = "standard_stats"
	KindDefensive = "defensive_actions"
)

// PlayerTable names a stats table scraped from a player's page.
type PlayerTable struct {
	Kind string
	Id   string
}

// PlayerTables are the domestic league tables collected for every player.
var PlayerTables = []PlayerTable{
	{Kind: KindStandard, Id: "stats_standard_dom_lg"},
	{Kind: KindDefensive, Id: "stats_defense_dom_lg"},
}

type PlayerPage struct {
	// the page's h1, may be empty
	Name string
	// tables keyed by kind, absent tables are missing
	Tables map[string]htmlutil.Table
}

func ParsePlayerPage(ctx context.Context, doc *goquery.Document) PlayerPage {
	ctx, span := tracer.Start(ctx, "ParsePlayerPage")
	defer span.End()

	page := PlayerPage{
		Name:   htmlutil.CleanText(doc.Find("h1").First().Text()),
		Tables: map[string]htmlutil.Table{},
	}
	for _, t := range PlayerTables {
		table, ok := htmlutil.ExtractTable(ctx, doc, t.Id)
		if !ok {
			span.AddEvent("table missing", trace.WithAttributes(attribute.String("table_id", t.Id)))
			continue
		}
		page.Tables[t.Kind] = table
	}
	return page
}

func (c *Client) FetchPlayer(ctx context.Context, playerUrl string) (PlayerPage, error) {
	ctx, span := tracer.Start(ctx, "FetchPlayer", trace.WithAttributes(
		attribute.String("url", playerUrl),
	))
	defer span.End()

	doc, err := c.Fetch(ctx, playerUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch player page")
		return PlayerPage{}, err
	}
	return ParsePlayerPage(ctx, doc), nil
}
