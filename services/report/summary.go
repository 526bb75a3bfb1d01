package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fbref-transfers/services/coverage"
	"fbref-transfers/services/indexcrawl"
	"fbref-transfers/services/linker"
	"fbref-transfers/services/playerscrape"
	"fbref-transfers/services/seasonjoin"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Each summary renders to `out` and returns the rendered text so it can
// be reused in a notification.

func PlanSummary(out io.Writer, players int, plan coverage.Plan, delay time.Duration) string {
	t := NewTable(out)
	t.SetTitle("Crawl plan")
	t.AppendRows([]table.Row{
		{"Unique players", players},
		{"Shards to crawl", fmt.Sprintf("%d of %d", len(plan.Shards), coverage.ShardCount)},
		{"Shards saved", plan.Saved()},
		{"Names too short", len(plan.Omitted)},
		{"Estimated time", plan.Estimate(delay).Round(time.Second).String()},
	})
	return t.Render()
}

func CrawlSummary(out io.Writer, report indexcrawl.Report, state *indexcrawl.CrawlState) string {
	t := NewTable(out)
	t.SetTitle("Index crawl")
	t.AppendRows([]table.Row{
		{"Shards fetched", len(report.Processed)},
		{"Shards not found", len(report.NotFound)},
		{"Shards already done", len(report.Skipped)},
		{"Shards failed", len(report.Failed)},
		{"Players added", report.EntriesAdded},
		{"Players in index", len(state.Players)},
	})
	if len(report.Failed) > 0 {
		var failed []string
		for _, f := range report.Failed {
			failed = append(failed, f.Shard)
		}
		t.AppendRow(table.Row{"Retry on next run", strings.Join(failed, " ")})
	}
	return t.Render()
}

func MatchSummary(out io.Writer, result linker.Result, suggestions int) string {
	total := len(result.Matched) + len(result.Unmatched)
	t := NewTable(out)
	t.SetTitle("Player matching")
	t.AppendHeader(table.Row{"", "Players", "Share"})
	t.AppendRows([]table.Row{
		{"Matched", len(result.Matched), Percent(len(result.Matched), total)},
		{"Not found", len(result.Unmatched), Percent(len(result.Unmatched), total)},
		{"Suggestions", suggestions, Percent(suggestions, total)},
	})
	t.AppendFooter(table.Row{"Total", total, ""})
	return t.Render()
}

func ScrapeSummary(out io.Writer, report playerscrape.Report) string {
	total := len(report.Scraped) + len(report.Existing) + len(report.Failed)
	t := NewTable(out)
	t.SetTitle("Player scrape")
	t.AppendHeader(table.Row{"", "Players", "Share"})
	t.AppendRows([]table.Row{
		{"Scraped", len(report.Scraped), Percent(len(report.Scraped), total)},
		{"Already stored", len(report.Existing), Percent(len(report.Existing), total)},
		{"Failed", len(report.Failed), Percent(len(report.Failed), total)},
		{"Missing a table", len(report.MissingTables), Percent(len(report.MissingTables), total)},
	})
	t.AppendFooter(table.Row{"Total", total, ""})
	return t.Render()
}

func MergeSummary(out io.Writer, result seasonjoin.MergeResult) string {
	statsColumns, defColumns := 0, 0
	for _, h := range result.Header {
		switch {
		case h == seasonjoin.StatsSeasonColumn:
		case strings.HasPrefix(h, seasonjoin.StatsPrefix):
			statsColumns++
		case strings.HasPrefix(h, seasonjoin.DefensivePrefix):
			defColumns++
		}
	}

	t := NewTable(out)
	t.SetTitle("Merge")
	t.AppendHeader(table.Row{"", "Transfers", "Share"})
	t.AppendRows([]table.Row{
		{"Matched", len(result.Records), Percent(len(result.Records), result.Total)},
		{"Not found", len(result.NotFound), Percent(len(result.NotFound), result.Total)},
		{"Skipped", len(result.Skipped), Percent(len(result.Skipped), result.Total)},
	})
	t.AppendFooter(table.Row{"Total", result.Total, ""})
	rendered := t.Render()

	columns := fmt.Sprintf("Stats_* columns: %d, Def_* columns: %d", statsColumns, defColumns)
	if out != nil {
		fmt.Fprintln(out, columns)
	}
	return rendered + "\n" + columns
}
