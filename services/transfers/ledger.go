// Package transfers reads the transfer ledger, a csv file with one row
// per transfer.
package transfers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const (
	PlayerColumn = "Player"
	SeasonColumn = "Season"
)

var ErrMissingColumn = errors.New("missing column")

// Ledger keeps every column of the input in its original order.
type Ledger struct {
	Header  []string
	Records [][]string
}

type Transfer struct {
	Player string
	// "YY/YY"
	Season string
	// the full input row, aligned with Ledger.Header
	Record []string
}

func ReadLedger(path string) (Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return Ledger{}, err
	}
	defer f.Close()

	ledger, err := ParseLedger(f)
	if err != nil {
		return Ledger{}, fmt.Errorf("read ledger %s: %w", path, err)
	}
	return ledger, nil
}

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

func ParseLedger(r io.Reader) (Ledger, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return Ledger{}, err
	}
	contents = bytes.TrimPrefix(contents, utf8Bom)

	reader := csv.NewReader(bytes.NewReader(contents))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return Ledger{}, err
	}
	if len(rows) == 0 {
		return Ledger{}, fmt.Errorf("%w: %s (empty file)", ErrMissingColumn, PlayerColumn)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	ledger := Ledger{Header: header}
	if ledger.Column(PlayerColumn) < 0 {
		return Ledger{}, fmt.Errorf("%w: %s", ErrMissingColumn, PlayerColumn)
	}

	for _, row := range rows[1:] {
		record := make([]string, len(header))
		copy(record, row)
		ledger.Records = append(ledger.Records, record)
	}
	return ledger, nil
}

// Column returns the index of a header or -1.
func (l Ledger) Column(name string) int {
	for i, h := range l.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// UniquePlayers returns the distinct non-blank player names, sorted.
func (l Ledger) UniquePlayers() []string {
	col := l.Column(PlayerColumn)
	set := map[string]struct{}{}
	for _, record := range l.Records {
		name := strings.Join(strings.Fields(record[col]), " ")
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}

	players := make([]string, 0, len(set))
	for name := range set {
		players = append(players, name)
	}
	sort.Strings(players)
	return players
}

// Transfers returns one entry per record, it requires the Season column.
func (l Ledger) Transfers() ([]Transfer, error) {
	playerCol := l.Column(PlayerColumn)
	seasonCol := l.Column(SeasonColumn)
	if seasonCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, SeasonColumn)
	}

	transfers := make([]Transfer, 0, len(l.Records))
	for _, record := range l.Records {
		transfers = append(transfers, Transfer{
			Player: strings.Join(strings.Fields(record[playerCol]), " "),
			Season: strings.TrimSpace(record[seasonCol]),
			Record: record,
		})
	}
	return transfers, nil
}
