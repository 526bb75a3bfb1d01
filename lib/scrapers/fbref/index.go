package fbref

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"fbref-transfers/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// IndexEntry is a player listed on an index page, Url points to the
// player's -Stats page.
type IndexEntry struct {
	Name string
	Url  string
}

// IndexURL is the path of the alphabetical player index page for a
// two-letter shard.
func IndexURL(shard string) string {
	return "/en/players/" + shard + "/"
}

// anchors shorter than this are navigation links
const minIndexNameLength = 3

// ParseIndexPage lists the players linked from an index page in document
// order, a name linked twice keeps its first url.
func ParseIndexPage(ctx context.Context, doc *goquery.Document, baseUrl *url.URL) []IndexEntry {
	ctx, span := tracer.Start(ctx, "ParseIndexPage")
	defer span.End()

	var entries []IndexEntry
	seen := map[string]bool{}
	for _, a := range htmlutil.GetAnchors(ctx, doc.Find("a[href]")) {
		if strings.Contains(a.Href, "-Stats") || strings.Contains(a.Href, "matchlogs") {
			continue
		}
		path, ok := parsePlayerPath(a.Href)
		if !ok {
			continue
		}
		if utf8.RuneCountInString(a.Name) < minIndexNameLength {
			continue
		}
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		entries = append(entries, IndexEntry{
			Name: a.Name,
			Url:  normalizeUrl(baseUrl, path.statsPath()),
		})
	}

	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries
}

func (c *Client) FetchIndex(ctx context.Context, shard string) ([]IndexEntry, error) {
	ctx, span := tracer.Start(ctx, "FetchIndex", trace.WithAttributes(
		attribute.String("shard", shard),
	))
	defer span.End()

	doc, err := c.Fetch(ctx, IndexURL(shard))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch index page")
		return nil, err
	}
	return ParseIndexPage(ctx, doc, c.BaseUrl), nil
}
