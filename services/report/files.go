// Package report writes the side files and console summaries produced
// at the end of each workflow.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fbref-transfers/lib/chrono"
	"fbref-transfers/lib/jsonfile"
	"fbref-transfers/services/coverage"
	"fbref-transfers/services/linker"
	"fbref-transfers/services/playerscrape"
	"fbref-transfers/services/seasonjoin"
)

const (
	PlayerUrlsFile     = "player_urls.json"
	UnmatchedFile      = "unmatched_players.txt"
	SummaryFile        = "player_url_summary.txt"
	SuggestionsFile    = "match_suggestions.txt"
	TooShortFile       = "too_short_names.txt"
	MergedFile         = "merged_transfer_stats.csv"
	MergeNotFoundFile  = "merge_not_found.csv"
	MergeSkippedFile   = "merge_skipped.csv"
	ScrapeFailedFile   = "scrape_failed.csv"
	MissingTablesFile  = "scrape_missing_tables.csv"
	summarySampleCount = 10
)

type MatchOutputs struct {
	Result      linker.Result
	Suggestions []linker.Suggestion
	Omitted     []coverage.Omission
	// the ledger the names came from
	Source string
	Time   time.Time
}

// removeStale deletes a side file left by an earlier run when this run
// has nothing to put in it.
func removeStale(dir, name string) error {
	err := os.Remove(filepath.Join(dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func lines(items []string) []byte {
	if len(items) == 0 {
		return nil
	}
	return []byte(strings.Join(items, "\n") + "\n")
}

// WriteMatchOutputs writes the matched urls, the unmatched names and a
// human readable summary to dir.
func WriteMatchOutputs(dir string, o MatchOutputs) ([]string, error) {
	var written []string
	write := func(name string, contents []byte) error {
		path := filepath.Join(dir, name)
		err := jsonfile.WriteAtomic(path, contents)
		if err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	urls, err := jsonfile.Marshal(o.Result.Matched)
	if err != nil {
		return nil, err
	}
	if err := write(PlayerUrlsFile, urls); err != nil {
		return written, err
	}

	unmatched := append([]string(nil), o.Result.Unmatched...)
	sort.Strings(unmatched)
	if err := write(UnmatchedFile, lines(unmatched)); err != nil {
		return written, err
	}

	if err := write(SummaryFile, []byte(matchSummaryText(o))); err != nil {
		return written, err
	}

	if len(o.Suggestions) > 0 {
		var suggestions []string
		for _, s := range o.Suggestions {
			suggestions = append(suggestions, fmt.Sprintf("%s -> %s (%.3f)\n  %s", s.Query, s.Candidate, s.Similarity, s.Url))
		}
		if err := write(SuggestionsFile, lines(suggestions)); err != nil {
			return written, err
		}
	} else if err := removeStale(dir, SuggestionsFile); err != nil {
		return written, err
	}

	if len(o.Omitted) > 0 {
		var omitted []string
		for _, om := range o.Omitted {
			omitted = append(omitted, om.Name)
		}
		if err := write(TooShortFile, lines(omitted)); err != nil {
			return written, err
		}
	} else if err := removeStale(dir, TooShortFile); err != nil {
		return written, err
	}

	return written, nil
}

func matchSummaryText(o MatchOutputs) string {
	matched := len(o.Result.Matched)
	unmatched := len(o.Result.Unmatched)
	total := matched + unmatched
	rule := strings.Repeat("=", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nPlayer URL Extraction Summary\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Date: %s\n", chrono.Format(o.Time))
	fmt.Fprintf(&b, "CSV File: %s\n\n", o.Source)
	fmt.Fprintf(&b, "Total unique players in CSV: %d\n", total)
	fmt.Fprintf(&b, "Successfully matched: %d (%s)\n", matched, Percent(matched, total))
	fmt.Fprintf(&b, "Not found: %d (%s)\n\n", unmatched, Percent(unmatched, total))

	names := make([]string, 0, matched)
	for name := range o.Result.Matched {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > summarySampleCount {
		names = names[:summarySampleCount]
	}
	fmt.Fprintf(&b, "Sample matched URLs (first %d):\n%s\n", summarySampleCount, strings.Repeat("-", 60))
	for _, name := range names {
		fmt.Fprintf(&b, "%s\n  -> %s\n", name, o.Result.Matched[name])
	}
	return b.String()
}

func encodeCsv(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := w.Write(header)
	if err != nil {
		return nil, err
	}
	err = w.WriteAll(records)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCsv(dir, name string, header []string, records [][]string) (string, error) {
	contents, err := encodeCsv(header, records)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	return path, jsonfile.WriteAtomic(path, contents)
}

// WriteMergeOutputs writes the merged dataset plus the transfers that
// were not found or skipped. Side files are only written when non-empty.
func WriteMergeOutputs(dir string, result seasonjoin.MergeResult) ([]string, error) {
	var written []string
	write := func(name string, header []string, records [][]string) error {
		path, err := writeCsv(dir, name, header, records)
		if err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := write(MergedFile, result.Header, result.Records); err != nil {
		return written, err
	}

	if len(result.NotFound) > 0 {
		records := make([][]string, len(result.NotFound))
		for i, nf := range result.NotFound {
			records[i] = []string{nf.Player, nf.TransferSeason, nf.LookingFor}
		}
		if err := write(MergeNotFoundFile, []string{"Player", "Transfer_Season", "Looking_For"}, records); err != nil {
			return written, err
		}
	} else if err := removeStale(dir, MergeNotFoundFile); err != nil {
		return written, err
	}

	if len(result.Skipped) > 0 {
		records := make([][]string, len(result.Skipped))
		for i, s := range result.Skipped {
			records[i] = []string{s.Player, s.Season, s.Err.Error()}
		}
		if err := write(MergeSkippedFile, []string{"Player", "Season", "Reason"}, records); err != nil {
			return written, err
		}
	} else if err := removeStale(dir, MergeSkippedFile); err != nil {
		return written, err
	}

	return written, nil
}

// WriteScrapeOutputs lists the players that could not be scraped and
// the players whose page lacked a stats table, for manual follow up.
func WriteScrapeOutputs(dir string, rep playerscrape.Report) ([]string, error) {
	var written []string

	if len(rep.Failed) > 0 {
		records := make([][]string, len(rep.Failed))
		for i, f := range rep.Failed {
			records[i] = []string{f.Player, f.Url, f.Err.Error()}
		}
		path, err := writeCsv(dir, ScrapeFailedFile, []string{"Player", "Url", "Reason"}, records)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	} else if err := removeStale(dir, ScrapeFailedFile); err != nil {
		return written, err
	}

	if len(rep.MissingTables) > 0 {
		names := make([]string, 0, len(rep.MissingTables))
		for name := range rep.MissingTables {
			names = append(names, name)
		}
		sort.Strings(names)
		records := make([][]string, len(names))
		for i, name := range names {
			records[i] = []string{name, strings.Join(rep.MissingTables[name], " ")}
		}
		path, err := writeCsv(dir, MissingTablesFile, []string{"Player", "Missing_Tables"}, records)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	} else if err := removeStale(dir, MissingTablesFile); err != nil {
		return written, err
	}

	return written, nil
}
