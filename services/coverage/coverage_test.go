package coverage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestShardOf(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
		err      error
	}{
		{name: "Kylian Mbappé", expected: "ky"},
		{name: "Émile Smith Rowe", expected: "em"},
		{name: "  o'shea", expected: "os"},
		{name: "Ødegaard", expected: "od"},
		{name: "Łukasz Fabiański", expected: "lu"},
		{name: "J. Smith", expected: "js"},
		{name: "9 Xavi", expected: "xa"},
		{name: "X", err: ErrNameTooShort},
		{name: "", err: ErrNameTooShort},
		{name: "李", err: ErrNameTooShort},
	}

	for _, test := range testCases {
		shard, err := ShardOf(test.name)
		if test.err != nil {
			require.ErrorIs(t, err, test.err, test.name)
			continue
		}
		require.NoError(t, err, test.name)
		require.Equal(t, test.expected, shard, test.name)
	}
}

func TestRequiredShards(t *testing.T) {
	plan := RequiredShards([]string{"Kylian Mbappé"})
	require.Equal(t, []string{"ky"}, plan.Shards)
	require.Empty(t, plan.Omitted)

	plan = RequiredShards([]string{
		"Erling Haaland",
		"Kylian Mbappé",
		"Kyle Walker",
		"Eden Hazard",
		"X",
		"Erling Haaland",
	})
	require.Equal(t, []string{"ed", "er", "ky"}, plan.Shards)

	diff := cmp.Diff(
		[]Omission{{Name: "X", Err: ErrNameTooShort}},
		plan.Omitted,
		cmpopts.EquateErrors(),
	)
	if diff != "" {
		t.Fatal(diff)
	}

	require.Equal(t, 673, plan.Saved())
	require.Equal(t, 24*time.Second, plan.Estimate(8*time.Second))
}

func TestAllShards(t *testing.T) {
	shards := AllShards()
	require.Len(t, shards, ShardCount)
	require.Equal(t, "aa", shards[0])
	require.Equal(t, "az", shards[25])
	require.Equal(t, "zz", shards[len(shards)-1])
	require.True(t, sortedUnique(shards))
}

func sortedUnique(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] >= s[i] {
			return false
		}
	}
	return true
}
