package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parse(t testing.TB, body string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

const groupedTable = `<html><body>
<table id="stats_standard_dom_lg">
<thead>
	<tr class="over_header">
		<th colspan="3"></th>
		<th colspan="2">Performance</th>
	</tr>
	<tr>
		<th>Season</th><th>Squad</th><th>Comp</th><th>Gls</th><th>Ast</th>
	</tr>
</thead>
<tbody>
	<tr><th>2009-2010</th><td>Monaco</td><td>Ligue 1</td><td>5</td><td>1</td></tr>
	<tr class="thead"><th>Season</th><th>Squad</th><th>Comp</th><th>Gls</th><th>Ast</th></tr>
	<tr class="spacer"><td colspan="5"></td></tr>
	<tr><th>2010-2011</th><td>Paris&nbsp;S-G</td><td>Ligue 1</td><td>1,204</td><td></td></tr>
</tbody>
<tfoot><tr><th>2 Seasons</th><td></td><td></td><td>1,209</td><td>1</td></tr></tfoot>
</table>
</body></html>`

func TestExtractTableGroupedHeaders(t *testing.T) {
	doc := parse(t, groupedTable)

	table, ok := ExtractTable(context.Background(), doc, "stats_standard_dom_lg")
	require.True(t, ok)

	diff := cmp.Diff(Table{
		Columns: []string{"Season", "Squad", "Comp", "Performance_Gls", "Performance_Ast"},
		Rows: [][]string{
			{"2009-2010", "Monaco", "Ligue 1", "5", "1"},
			{"2010-2011", "Paris S-G", "Ligue 1", "1,204", ""},
		},
	}, table)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, 3, table.Column("Performance_Gls"))
	require.Equal(t, -1, table.Column("xG"))
}

func TestExtractTableInsideComment(t *testing.T) {
	doc := parse(t, `<html><body>
<div id="all_stats_defense_dom_lg">
<!--
<table id="stats_defense_dom_lg">
<thead><tr><th>Season</th><th>Squad</th><th>Tkl</th></tr></thead>
<tbody><tr><th>2019-2020</th><td>Dortmund</td><td>12</td></tr></tbody>
</table>
-->
</div>
</body></html>`)

	table, ok := ExtractTable(context.Background(), doc, "stats_defense_dom_lg")
	require.True(t, ok)
	require.Equal(t, []string{"Season", "Squad", "Tkl"}, table.Columns)
	require.Equal(t, [][]string{{"2019-2020", "Dortmund", "12"}}, table.Rows)
}

func TestExtractTableAbsent(t *testing.T) {
	doc := parse(t, groupedTable)
	_, ok := ExtractTable(context.Background(), doc, "stats_shooting_dom_lg")
	require.False(t, ok)
}

func TestGetAnchors(t *testing.T) {
	doc := parse(t, `<p>
		<a href="/en/players/42fd9c7f/Kylian-Mbappe">  Kylian
			Mbappé </a>
		<a>no link</a>
		<a href="/en/squads/">Squads</a>
	</p>`)

	anchors := GetAnchors(context.Background(), doc.Find("a"))
	require.Equal(t, []Anchor{
		{Name: "Kylian Mbappé", Href: "/en/players/42fd9c7f/Kylian-Mbappe"},
		{Name: "Squads", Href: "/en/squads/"},
	}, anchors)
}
