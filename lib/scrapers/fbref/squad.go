package fbref

import (
	"context"
	"net/url"
	"strings"

	"fbref-transfers/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// links on squad pages that point to per-player pages which are not profiles
var squadSkipTerms = []string{"Matches", "matchlogs", "all_comps"}

// ParseSquadPage maps every player linked from a team roster page to
// their -Stats page.
func ParseSquadPage(ctx context.Context, doc *goquery.Document, baseUrl *url.URL) map[string]string {
	ctx, span := tracer.Start(ctx, "ParseSquadPage")
	defer span.End()

	players := map[string]string{}
outer:
	for _, a := range htmlutil.GetAnchors(ctx, doc.Find("a[href]")) {
		if a.Name == "" || strings.Contains(a.Href, "-Stats") {
			continue
		}
		path, ok := parsePlayerPath(a.Href)
		if !ok {
			continue
		}
		statsUrl := normalizeUrl(baseUrl, path.statsPath())
		for _, term := range squadSkipTerms {
			if strings.Contains(statsUrl, term) {
				continue outer
			}
		}
		if _, exists := players[a.Name]; exists {
			continue
		}
		players[a.Name] = statsUrl
	}

	span.SetAttributes(attribute.Int("players", len(players)))
	return players
}

const leagueStatsTableId = "stats_standard"

// ParseLeagueStatsPage maps the players of a league's standard stats
// table to their profile urls.
func ParseLeagueStatsPage(ctx context.Context, doc *goquery.Document, baseUrl *url.URL) map[string]string {
	ctx, span := tracer.Start(ctx, "ParseLeagueStatsPage")
	defer span.End()

	players := map[string]string{}
	table := htmlutil.FindTable(ctx, doc, leagueStatsTableId)
	if table.Length() == 0 {
		span.AddEvent("stats table missing")
		return players
	}

	cells := table.Find(`th[data-stat="player"] a[href]`)
	for _, a := range htmlutil.GetAnchors(ctx, cells) {
		if a.Name == "" || !strings.Contains(a.Href, "/players/") {
			continue
		}
		if _, exists := players[a.Name]; exists {
			continue
		}
		players[a.Name] = normalizeUrl(baseUrl, a.Href)
	}

	span.SetAttributes(attribute.Int("players", len(players)))
	return players
}

func (c *Client) FetchSquad(ctx context.Context, squadUrl string) (map[string]string, error) {
	ctx, span := tracer.Start(ctx, "FetchSquad")
	defer span.End()

	doc, err := c.Fetch(ctx, squadUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch squad page")
		return nil, err
	}
	return ParseSquadPage(ctx, doc, c.BaseUrl), nil
}

func (c *Client) FetchLeagueStats(ctx context.Context, statsUrl string) (map[string]string, error) {
	ctx, span := tracer.Start(ctx, "FetchLeagueStats")
	defer span.End()

	doc, err := c.Fetch(ctx, statsUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch league stats page")
		return nil, err
	}
	return ParseLeagueStatsPage(ctx, doc, c.BaseUrl), nil
}
