package seasonjoin

import (
	"testing"

	"fbref-transfers/lib/htmlutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var columns = []string{"Season", "Age", "Squad", "Country", "Comp", "MP", "Gls", "Per90_xG", "Matches"}

func row(values ...string) Row {
	return Row{Player: "Ángel Di María", Columns: columns, Values: values}
}

func TestLookupStatsAbsentAndSingle(t *testing.T) {
	rows := []Row{
		row("2009-2010", "21", "Benfica", "POR", "Primeira Liga", "28", "5", "0.21", "Matches"),
		row("2010-2011", "22", "Real Madrid", "ESP", "La Liga", "35", "6", "0.18", "Matches"),
	}

	_, found := LookupStats("Ángel Di María", "2011-2012", rows)
	require.False(t, found)
	_, found = LookupStats("Someone Else", "2009-2010", rows)
	require.False(t, found)

	single, found := LookupStats("Ángel Di María", "2010-2011", rows)
	require.True(t, found)
	require.Equal(t, rows[1], single)
}

func TestLookupStatsCombinesClubs(t *testing.T) {
	rows := []Row{
		row("2014-2015", "26", "Real Madrid", "ESP", "La Liga", "1", "5", "0.25", "Matches"),
		row("2014-2015", "26", "Manchester Utd", "ENG", "Premier League", "1,027", "7", "0.1", "Matches"),
		row("2014-2015", "26", "Loan Club", "ENG", "Championship", "", "", "", "Matches"),
	}

	combined, found := LookupStats("Ángel Di María", "2014-2015", rows)
	require.True(t, found)

	diff := cmp.Diff(
		[]string{"2014-2015", "78", "Combined", "ESP", "Combined", "1028", "12", "0.35", "Matches"},
		combined.Values,
	)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, columns, combined.Columns)
}

func TestRowsFromTable(t *testing.T) {
	rows := RowsFromTable("Kylian Mbappé", htmlutil.Table{
		Columns: []string{"Season", "Gls"},
		Rows:    [][]string{{"2016-2017", "5"}, {"2016-2017", "7"}},
	})
	require.Len(t, rows, 2)
	require.Equal(t, "5", rows[0].Get("Gls"))
	require.Equal(t, "", rows[0].Get("Ast"))

	combined, found := LookupStats("Kylian Mbappé", "2016-2017", rows)
	require.True(t, found)
	require.Equal(t, "12", combined.Get("Gls"))
}
