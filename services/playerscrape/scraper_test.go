package playerscrape

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"fbref-transfers/lib/htmlutil"
	"fbref-transfers/lib/jsonfile"
	"fbref-transfers/lib/scrapers/fbref"
	"fbref-transfers/services/statstore"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pages map[string]fbref.PlayerPage
	calls []string
	after func()
}

func (f *fakeSource) FetchPlayer(ctx context.Context, url string) (fbref.PlayerPage, error) {
	f.calls = append(f.calls, url)
	if f.after != nil {
		defer f.after()
	}
	page, ok := f.pages[url]
	if !ok {
		return fbref.PlayerPage{}, &fbref.TransientError{URL: url, Status: 500, Err: errors.New("boom")}
	}
	return page, nil
}

func table(season string) htmlutil.Table {
	return htmlutil.Table{
		Columns: []string{"Season", "Squad"},
		Rows:    [][]string{{season, "Club"}},
	}
}

func TestScrape(t *testing.T) {
	ctx := context.Background()
	store := statstore.CSVStore{Dir: t.TempDir()}
	require.NoError(t, store.Put(ctx, "Already Here", statstore.KindStandard, table("2019-2020")))

	source := &fakeSource{pages: map[string]fbref.PlayerPage{
		"url-mbappe": {Name: "Kylian Mbappé Lottin", Tables: map[string]htmlutil.Table{
			fbref.KindStandard:  table("2016-2017"),
			fbref.KindDefensive: table("2016-2017"),
		}},
		"url-keeper": {Name: "Keeper", Tables: map[string]htmlutil.Table{
			fbref.KindStandard: table("2020-2021"),
		}},
	}}
	players := map[string]string{
		"Kylian Mbappé": "url-mbappe",
		"Already Here":  "url-here",
		"Broken":        "url-broken",
		"Goal Keeper":   "url-keeper",
	}

	report, err := NewScraper(source, store, Options{}).Scrape(ctx, players)
	require.NoError(t, err)

	require.Equal(t, []string{"url-broken", "url-keeper", "url-mbappe"}, source.calls)
	require.Equal(t, []string{"Goal Keeper", "Kylian Mbappé"}, report.Scraped)
	require.Equal(t, []string{"Already Here"}, report.Existing)
	require.Equal(t, map[string][]string{"Goal Keeper": {fbref.KindDefensive}}, report.MissingTables)
	require.Len(t, report.Failed, 1)
	require.Equal(t, "Broken", report.Failed[0].Player)
	require.True(t, fbref.IsTransient(report.Failed[0].Err))

	// stored under the requested name, not the page's heading
	stored, err := store.Table(ctx, "Kylian Mbappé", statstore.KindDefensive)
	require.NoError(t, err)
	require.Equal(t, table("2016-2017"), stored)

	source.calls = nil
	report, err = NewScraper(source, store, Options{Force: true}).Scrape(ctx, map[string]string{"Already Here": "url-keeper"})
	require.NoError(t, err)
	require.Equal(t, []string{"url-keeper"}, source.calls)
	require.Equal(t, []string{"Already Here"}, report.Scraped)
}

func TestScrapeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &fakeSource{
		pages: map[string]fbref.PlayerPage{"a": {}, "b": {}},
		after: cancel,
	}
	report, err := NewScraper(source, statstore.CSVStore{Dir: t.TempDir()}, Options{}).
		Scrape(ctx, map[string]string{"A": "a", "B": "b"})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []string{"a"}, source.calls)
	require.Equal(t, []string{"A"}, report.Scraped)
}

func TestSplitBatches(t *testing.T) {
	players := map[string]string{}
	for i := 0; i < 10; i++ {
		players[fmt.Sprintf("Player %02d", i)] = fmt.Sprintf("url-%d", i)
	}

	batches := SplitBatches(players, 4)
	require.Len(t, batches, 4)
	sizes := []int{len(batches[0]), len(batches[1]), len(batches[2]), len(batches[3])}
	require.Equal(t, []int{3, 3, 3, 1}, sizes)
	require.Contains(t, batches[0], "Player 00")
	require.Contains(t, batches[3], "Player 09")

	total := 0
	for _, b := range batches {
		total += len(b)
	}
	require.Equal(t, len(players), total)

	require.Len(t, SplitBatches(map[string]string{}, 4), 4)
}

func TestWriteBatches(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteBatches(dir, map[string]string{"A": "1", "B": "2", "C": "3"}, 2)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "batch_1_player_urls.json"),
		filepath.Join(dir, "batch_2_player_urls.json"),
	}, paths)

	second, err := jsonfile.Read[map[string]string](paths[1])
	require.NoError(t, err)
	require.Equal(t, map[string]string{"C": "3"}, second)
}
