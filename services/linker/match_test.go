package linker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMatchEndToEnd(t *testing.T) {
	result := Match(
		[]string{"Kylian Mbappé", "Erling Haaland"},
		map[string]string{"Kylian Mbappe": "url1"},
	)

	diff := cmp.Diff(Result{
		Matched:   map[string]string{"Kylian Mbappé": "url1"},
		Unmatched: []string{"Erling Haaland"},
	}, result)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestMatchPartitionsQueries(t *testing.T) {
	queries := []string{"Zlatan", "JOSE MOURINHO", "  kylian   mbappé", "Zlatan", "Ángel Di María", "Nobody"}
	index := map[string]string{
		"José Mourinho":  "url-jose",
		"Kylian Mbappé":  "url-kylian",
		"Angel Di Maria": "url-angel",
	}

	result := Match(queries, index)
	require.Equal(t, []string{"Zlatan", "Nobody"}, result.Unmatched)
	require.Equal(t, map[string]string{
		"JOSE MOURINHO":     "url-jose",
		"  kylian   mbappé": "url-kylian",
		"Ángel Di María":    "url-angel",
	}, result.Matched)

	for _, q := range queries {
		_, matched := result.Matched[q]
		unmatched := 0
		for _, u := range result.Unmatched {
			if u == q {
				unmatched++
			}
		}
		require.True(t, (matched && unmatched == 0) || (!matched && unmatched == 1), q)
	}
}

func TestMatchCollisionIsDeterministic(t *testing.T) {
	index := map[string]string{
		"Rodri": "url-a",
		"RODRI": "url-b",
		"Rodrí": "url-c",
	}
	// sorted: "RODRI" < "Rodri" < "Rodrí", the last one wins
	for i := 0; i < 10; i++ {
		result := Match([]string{"rodri"}, index)
		require.Equal(t, "url-c", result.Matched["rodri"])
	}
}

func TestMatchAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.json5")
	err := os.WriteFile(path, []byte(`{
		// ledger name: index name
		"Son Heung-min": "Heung-min Son",
		"Vini Jr": "vinicius junior",
	}`), 0644)
	require.NoError(t, err)

	aliases, err := LoadAliases(path)
	require.NoError(t, err)

	index := map[string]string{
		"Heung-min Son":   "url-son",
		"Vinícius Júnior": "url-vini",
	}
	result := Matcher{Aliases: aliases}.Match([]string{"Son Heung-min", "Vini Jr", "Pelé"}, index)
	require.Equal(t, map[string]string{
		"Son Heung-min": "url-son",
		"Vini Jr":       "url-vini",
	}, result.Matched)
	require.Equal(t, []string{"Pelé"}, result.Unmatched)
}
