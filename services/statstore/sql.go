package statstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fbref-transfers/lib/chrono"
	"fbref-transfers/lib/htmlutil"
	"fbref-transfers/lib/sqliteutil"
	"fbref-transfers/services/statstore/db"

	"go.opentelemetry.io/otel/codes"
)

// SQLStore keeps tables in a sqlite (or libsql) database, one row per
// table row with cells encoded as a json array.
type SQLStore struct {
	db    *sql.DB
	qry   *db.Queries
	clock chrono.TimeAPI
}

func NewSQLStore(database *sql.DB) SQLStore {
	return SQLStore{
		db:    database,
		qry:   db.New(database),
		clock: chrono.NewStandardTime(),
	}
}

// OpenSQLStore connects to the configured database and creates the tables.
func OpenSQLStore(ctx context.Context, config sqliteutil.Config) (SQLStore, error) {
	database, err := config.Open(ctx, db.Schema)
	if err != nil {
		return SQLStore{}, err
	}
	return NewSQLStore(database), nil
}

func (s SQLStore) Close() error {
	return s.db.Close()
}

func (s SQLStore) Put(ctx context.Context, player, kind string, table htmlutil.Table) error {
	ctx, span := tracer.Start(ctx, "SQLStore.Put")
	defer span.End()

	columns, err := json.Marshal(table.Columns)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to begin transaction")
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteRows(ctx, db.DeleteRowsParams{Player: player, Kind: kind})
	if err != nil {
		return err
	}
	err = txqry.PutTable(ctx, db.PutTableParams{
		Player:    player,
		Kind:      kind,
		Columns:   string(columns),
		ScrapedAt: s.clock.Now().Unix(),
	})
	if err != nil {
		return err
	}
	for i, row := range table.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		err = txqry.InsertRow(ctx, db.InsertRowParams{
			Player:   player,
			Kind:     kind,
			RowIndex: int64(i),
			Data:     string(data),
		})
		if err != nil {
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to commit")
		return err
	}
	return nil
}

func (s SQLStore) Table(ctx context.Context, player, kind string) (htmlutil.Table, error) {
	ctx, span := tracer.Start(ctx, "SQLStore.Table")
	defer span.End()

	stored, err := s.qry.GetTable(ctx, db.GetTableParams{Player: player, Kind: kind})
	if errors.Is(err, sql.ErrNoRows) {
		return htmlutil.Table{}, fmt.Errorf("%w: %s (%s)", ErrNotFound, player, kind)
	}
	if err != nil {
		return htmlutil.Table{}, err
	}

	var table htmlutil.Table
	err = json.Unmarshal([]byte(stored.Columns), &table.Columns)
	if err != nil {
		return htmlutil.Table{}, fmt.Errorf("decode columns of %s (%s): %w", player, kind, err)
	}

	rows, err := s.qry.GetRows(ctx, db.GetRowsParams{Player: player, Kind: kind})
	if err != nil {
		return htmlutil.Table{}, err
	}
	for _, data := range rows {
		var row []string
		err := json.Unmarshal([]byte(data), &row)
		if err != nil {
			return htmlutil.Table{}, fmt.Errorf("decode row of %s (%s): %w", player, kind, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func (s SQLStore) Has(ctx context.Context, player string) (bool, error) {
	count, err := s.qry.HasPlayer(ctx, player)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
