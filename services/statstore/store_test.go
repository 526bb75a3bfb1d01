package statstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fbref-transfers/lib/htmlutil"
	"fbref-transfers/lib/sqliteutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var standardTable = htmlutil.Table{
	Columns: []string{"Season", "Squad", "Comp", "Performance_Gls"},
	Rows: [][]string{
		{"2016-2017", "Monaco", "Ligue 1", "15"},
		{"2017-2018", "Paris S-G", "Ligue 1", "1,013"},
	},
}

func testStore(t *testing.T, store Store) {
	ctx := context.Background()
	player := "N'Golo Kanté"

	has, err := store.Has(ctx, player)
	require.NoError(t, err)
	require.False(t, has)

	_, err = store.Table(ctx, player, KindStandard)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, player, KindStandard, standardTable))

	has, err = store.Has(ctx, player)
	require.NoError(t, err)
	require.True(t, has)

	table, err := store.Table(ctx, player, KindStandard)
	require.NoError(t, err)
	if diff := cmp.Diff(standardTable, table); diff != "" {
		t.Fatal(diff)
	}

	_, err = store.Table(ctx, player, KindDefensive)
	require.ErrorIs(t, err, ErrNotFound)

	// a second put replaces the table
	replacement := htmlutil.Table{
		Columns: []string{"Season", "Squad"},
		Rows:    [][]string{{"2020-2021", "Chelsea"}},
	}
	require.NoError(t, store.Put(ctx, player, KindStandard, replacement))
	table, err = store.Table(ctx, player, KindStandard)
	require.NoError(t, err)
	if diff := cmp.Diff(replacement, table); diff != "" {
		t.Fatal(diff)
	}
}

func TestCSVStore(t *testing.T) {
	dir := t.TempDir()
	store := CSVStore{Dir: dir}
	testStore(t, store)

	_, err := os.Stat(filepath.Join(dir, "NGolo_Kanté_standard_stats.csv"))
	require.NoError(t, err)
}

func TestSQLStore(t *testing.T) {
	store, err := OpenSQLStore(context.Background(), sqliteutil.Config{
		File: filepath.Join(t.TempDir(), "stats.db"),
	})
	require.NoError(t, err)
	defer store.Close()

	testStore(t, store)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, closer, err := Open(ctx, Config{Dir: dir})
	require.NoError(t, err)
	require.IsType(t, CSVStore{}, store)
	require.NoError(t, closer.Close())

	store, closer, err = Open(ctx, Config{
		Dir:      dir,
		Database: sqliteutil.Config{File: filepath.Join(dir, "stats.db")},
	})
	require.NoError(t, err)
	require.IsType(t, SQLStore{}, store)
	require.NoError(t, closer.Close())
}
