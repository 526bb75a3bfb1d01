package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fbref-transfers/lib/jsonfile"
	"fbref-transfers/services/coverage"
	"fbref-transfers/services/indexcrawl"
	"fbref-transfers/services/linker"
	"fbref-transfers/services/playerscrape"
	"fbref-transfers/services/seasonjoin"

	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	require.Equal(t, "0.0%", Percent(0, 0))
	require.Equal(t, "33.3%", Percent(1, 3))
	require.Equal(t, "100.0%", Percent(4, 4))
}

func read(t testing.TB, path string) string {
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(contents)
}

func TestWriteMatchOutputs(t *testing.T) {
	dir := t.TempDir()
	written, err := WriteMatchOutputs(dir, MatchOutputs{
		Result: linker.Result{
			Matched:   map[string]string{"Kylian Mbappé": "url1"},
			Unmatched: []string{"Zlatan Ibrahimović", "Erling Haaland"},
		},
		Suggestions: []linker.Suggestion{
			{Query: "Erling Haaland", Candidate: "Erling Braut Haaland", Url: "url2", Similarity: 0.93},
		},
		Omitted: []coverage.Omission{{Name: "X", Err: coverage.ErrNameTooShort}},
		Source:  "transfers_1.csv",
		Time:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	require.Len(t, written, 5)

	urls, err := jsonfile.Read[map[string]string](filepath.Join(dir, PlayerUrlsFile))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"Kylian Mbappé": "url1"}, urls)

	require.Equal(t, "Erling Haaland\nZlatan Ibrahimović\n", read(t, filepath.Join(dir, UnmatchedFile)))

	summary := read(t, filepath.Join(dir, SummaryFile))
	require.Contains(t, summary, "Date: 2024-05-01 09:00:00")
	require.Contains(t, summary, "Total unique players in CSV: 3")
	require.Contains(t, summary, "Successfully matched: 1 (33.3%)")
	require.Contains(t, summary, "Kylian Mbappé\n  -> url1")

	require.Contains(t, read(t, filepath.Join(dir, SuggestionsFile)), "Erling Haaland -> Erling Braut Haaland (0.930)")
	require.Equal(t, "X\n", read(t, filepath.Join(dir, TooShortFile)))
}

func TestWriteMergeOutputs(t *testing.T) {
	dir := t.TempDir()
	written, err := WriteMergeOutputs(dir, seasonjoin.MergeResult{
		Header:   []string{"Player", "Season", "Stats_Gls", "Stats_Season"},
		Records:  [][]string{{"Kylian Mbappé", "17/18", "15", "2016-2017"}},
		NotFound: []seasonjoin.NotFound{{Player: "Nobody", TransferSeason: "10/11", LookingFor: "2009-2010"}},
		Total:    2,
	})
	require.NoError(t, err)
	require.Len(t, written, 2)

	records, err := csv.NewReader(strings.NewReader(read(t, filepath.Join(dir, MergedFile)))).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Player", "Season", "Stats_Gls", "Stats_Season"},
		{"Kylian Mbappé", "17/18", "15", "2016-2017"},
	}, records)

	require.Equal(t,
		"Player,Transfer_Season,Looking_For\nNobody,10/11,2009-2010\n",
		read(t, filepath.Join(dir, MergeNotFoundFile)),
	)
	_, err = os.Stat(filepath.Join(dir, MergeSkippedFile))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSummaries(t *testing.T) {
	var out bytes.Buffer

	rendered := MatchSummary(&out, linker.Result{
		Matched:   map[string]string{"A": "1", "B": "2", "C": "3"},
		Unmatched: []string{"D"},
	}, 1)
	require.Contains(t, rendered, "75.0%")
	require.Contains(t, out.String(), "Player matching")

	state := indexcrawl.NewCrawlState()
	state.Players["A"] = "1"
	rendered = CrawlSummary(nil, indexcrawl.Report{
		Processed: []string{"aa"},
		Failed:    []indexcrawl.ShardFailure{{Shard: "ab", Err: errors.New("503")}},
	}, state)
	require.Contains(t, rendered, "ab")

	rendered = MergeSummary(nil, seasonjoin.MergeResult{
		Header: []string{"Player", "Stats_Gls", "Stats_Ast", "Def_Tkl", "Stats_Season"},
		Total:  0,
	})
	require.Contains(t, rendered, "Stats_* columns: 2, Def_* columns: 1")
}

func TestWriteScrapeOutputs(t *testing.T) {
	dir := t.TempDir()
	written, err := WriteScrapeOutputs(dir, playerscrape.Report{
		Scraped: []string{"Kylian Mbappé"},
		MissingTables: map[string][]string{
			"Manuel Neuer": {"defensive_actions"},
		},
		Failed: []playerscrape.Failure{{
			Player: "Erling Haaland",
			Url:    "https://fbref.com/en/players/1f44ac21/Erling-Haaland-Stats",
			Err:    errors.New("fbref: 503 Service Unavailable"),
		}},
	})
	require.NoError(t, err)
	require.Len(t, written, 2)

	require.Equal(t,
		"Player,Url,Reason\nErling Haaland,https://fbref.com/en/players/1f44ac21/Erling-Haaland-Stats,fbref: 503 Service Unavailable\n",
		read(t, filepath.Join(dir, ScrapeFailedFile)),
	)
	require.Equal(t,
		"Player,Missing_Tables\nManuel Neuer,defensive_actions\n",
		read(t, filepath.Join(dir, MissingTablesFile)),
	)

	// a clean rerun must not leave the previous failures behind
	written, err = WriteScrapeOutputs(dir, playerscrape.Report{Scraped: []string{"Erling Haaland"}})
	require.NoError(t, err)
	require.Empty(t, written)
	for _, name := range []string{ScrapeFailedFile, MissingTablesFile} {
		_, err = os.Stat(filepath.Join(dir, name))
		require.ErrorIs(t, err, os.ErrNotExist, name)
	}
}

func TestSideFilesRemovedOnCleanRun(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteMatchOutputs(dir, MatchOutputs{
		Result:      linker.Result{Matched: map[string]string{}, Unmatched: []string{"Erling Haaland"}},
		Suggestions: []linker.Suggestion{{Query: "Erling Haaland", Candidate: "Erling Braut Haaland", Url: "url2", Similarity: 0.93}},
		Omitted:     []coverage.Omission{{Name: "X", Err: coverage.ErrNameTooShort}},
	})
	require.NoError(t, err)
	_, err = WriteMergeOutputs(dir, seasonjoin.MergeResult{
		Header:   []string{"Player", "Season"},
		NotFound: []seasonjoin.NotFound{{Player: "Nobody", TransferSeason: "10/11", LookingFor: "2009-2010"}},
		Skipped:  []seasonjoin.Skipped{{Player: "Someone", Season: "x", Err: errors.New("bad season")}},
		Total:    2,
	})
	require.NoError(t, err)

	_, err = WriteMatchOutputs(dir, MatchOutputs{
		Result: linker.Result{Matched: map[string]string{"Erling Haaland": "url2"}, Unmatched: []string{}},
	})
	require.NoError(t, err)
	_, err = WriteMergeOutputs(dir, seasonjoin.MergeResult{
		Header:  []string{"Player", "Season"},
		Records: [][]string{{"Erling Haaland", "20/21"}},
		Total:   1,
	})
	require.NoError(t, err)

	for _, name := range []string{SuggestionsFile, TooShortFile, MergeNotFoundFile, MergeSkippedFile} {
		_, err = os.Stat(filepath.Join(dir, name))
		require.ErrorIs(t, err, os.ErrNotExist, name)
	}
	require.Equal(t, "", read(t, filepath.Join(dir, UnmatchedFile)))
}
