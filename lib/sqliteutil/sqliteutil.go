package sqliteutil

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Config selects a database: a local sqlite file or, when Url is set, a
// remote libsql server.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (c Config) Configured() bool {
	return c.File != "" || c.Url != ""
}

// Open connects to the configured database and applies `schema`, which
// must consist of idempotent statements (CREATE ... IF NOT EXISTS).
func (c Config) Open(ctx context.Context, schema string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch {
	case c.Url != "":
		dsn := c.Url
		if c.AuthToken != "" {
			u, err := url.Parse(c.Url)
			if err != nil {
				return nil, fmt.Errorf("parse libsql url: %w", err)
			}
			q := u.Query()
			q.Set("authToken", c.AuthToken)
			u.RawQuery = q.Encode()
			dsn = u.String()
		}
		db, err = sql.Open("libsql", dsn)
	case c.File != "":
		db, err = OpenFile(c.File)
	default:
		return nil, fmt.Errorf("no database file or url configured")
	}
	if err != nil {
		return nil, err
	}

	if schema != "" {
		_, err = db.ExecContext(ctx, schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}

// OpenFile opens a local sqlite database, creating its parent directory.
// ":memory:" is passed through.
func OpenFile(path string) (*sql.DB, error) {
	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0755)
		if err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// modernc sqlite does not share in-memory databases across connections,
	// on disk a single writer avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)
	if path != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
