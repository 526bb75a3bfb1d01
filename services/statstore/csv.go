package statstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fbref-transfers/lib/htmlutil"
	"fbref-transfers/lib/jsonfile"
	"fbref-transfers/lib/textutil"
)

// CSVStore keeps one csv file per player and kind in Dir, named
// "<Player_Name>_<kind>.csv".
type CSVStore struct {
	Dir string
}

func (s CSVStore) Path(player, kind string) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s_%s.csv", textutil.FilenameFromName(player), kind))
}

func (s CSVStore) Put(ctx context.Context, player, kind string, table htmlutil.Table) error {
	_, span := tracer.Start(ctx, "CSVStore.Put")
	defer span.End()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := w.Write(table.Columns)
	if err != nil {
		return err
	}
	err = w.WriteAll(table.Rows)
	if err != nil {
		return err
	}
	return jsonfile.WriteAtomic(s.Path(player, kind), buf.Bytes())
}

func (s CSVStore) Table(ctx context.Context, player, kind string) (htmlutil.Table, error) {
	_, span := tracer.Start(ctx, "CSVStore.Table")
	defer span.End()

	path := s.Path(player, kind)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return htmlutil.Table{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return htmlutil.Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return htmlutil.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return htmlutil.Table{}, nil
	}

	table := htmlutil.Table{Columns: records[0]}
	for _, record := range records[1:] {
		row := make([]string, len(table.Columns))
		copy(row, record)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func (s CSVStore) Has(ctx context.Context, player string) (bool, error) {
	for _, kind := range Kinds {
		_, err := os.Stat(s.Path(player, kind))
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return false, err
		}
	}
	return false, nil
}
