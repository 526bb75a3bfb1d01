// Package seasonjoin joins transfers with the player's statistics from
// the season before the transfer.
package seasonjoin

import (
	"strconv"
	"strings"

	"fbref-transfers/lib/htmlutil"
)

const (
	SeasonColumn = "Season"
	SquadColumn  = "Squad"
	CompColumn   = "Comp"
)

// CombinedLabel replaces the club and competition of rows summed across clubs.
const CombinedLabel = "Combined"

// Row is one season at one club for a player.
type Row struct {
	Player  string
	Columns []string
	Values  []string
}

func (r Row) Get(column string) string {
	for i, c := range r.Columns {
		if c == column && i < len(r.Values) {
			return r.Values[i]
		}
	}
	return ""
}

func RowsFromTable(player string, table htmlutil.Table) []Row {
	rows := make([]Row, 0, len(table.Rows))
	for _, values := range table.Rows {
		rows = append(rows, Row{
			Player:  player,
			Columns: table.Columns,
			Values:  values,
		})
	}
	return rows
}

// LookupStats returns the player's row for a season. A player who played
// for several clubs in the season has the rows combined: numeric columns
// are summed, other columns keep the first row's value, and the club and
// competition become CombinedLabel.
func LookupStats(player, season string, rows []Row) (Row, bool) {
	var matched []Row
	for _, r := range rows {
		if r.Player == player && r.Get(SeasonColumn) == season {
			matched = append(matched, r)
		}
	}

	switch len(matched) {
	case 0:
		return Row{}, false
	case 1:
		return matched[0], true
	}
	return combine(season, matched), true
}

func combine(season string, rows []Row) Row {
	first := rows[0]
	out := Row{
		Player:  first.Player,
		Columns: first.Columns,
		Values:  make([]string, len(first.Columns)),
	}

	for i, column := range first.Columns {
		switch column {
		case SeasonColumn:
			out.Values[i] = season
			continue
		case SquadColumn, CompColumn:
			out.Values[i] = CombinedLabel
			continue
		}

		values := make([]string, len(rows))
		for j, r := range rows {
			values[j] = r.Get(column)
		}
		if sum, ok := sumNumeric(values); ok {
			out.Values[i] = sum
			continue
		}
		out.Values[i] = values[0]
	}
	return out
}

func cleanNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

func decimals(s string) int {
	_, frac, found := strings.Cut(s, ".")
	if !found {
		return 0
	}
	return len(frac)
}

// sumNumeric sums the values when every non-empty one is a number, empty
// cells count as zero. The sum keeps the largest number of decimals found.
func sumNumeric(values []string) (string, bool) {
	var sum float64
	precision := 0
	numeric := false
	for _, v := range values {
		v = cleanNumber(v)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "", false
		}
		numeric = true
		sum += n
		precision = max(precision, decimals(v))
	}
	if !numeric {
		return "", false
	}
	return strconv.FormatFloat(sum, 'f', precision, 64), true
}
