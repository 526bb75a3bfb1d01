package sqliteutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSchema = `
create table if not exists kv (
	k text primary key,
	v text not null
);`

func TestOpenFileAppliesSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "stats.db")

	db, err := Config{File: path}.Open(ctx, testSchema)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "insert into kv (k, v) values (?, ?)", "a", "1")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopening keeps data, the schema is idempotent
	db, err = Config{File: path}.Open(ctx, testSchema)
	require.NoError(t, err)
	defer db.Close()

	var v string
	require.NoError(t, db.QueryRowContext(ctx, "select v from kv where k = ?", "a").Scan(&v))
	require.Equal(t, "1", v)
}

func TestOpenUnconfigured(t *testing.T) {
	require.False(t, Config{}.Configured())
	_, err := Config{}.Open(context.Background(), testSchema)
	require.Error(t, err)
}
