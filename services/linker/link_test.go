package linker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestCreateImplicitLinks(t *testing.T) {
	testCases := []struct {
		left  []string
		right []string
		// if ImplicitLink.Correlation == 0
		// the test will not assert the correlation to be equal
		expected []ImplicitLink
	}{
		{
			left:  []string{"a", "b", "c"},
			right: []string{"a", "b"},
			expected: []ImplicitLink{
				{Left: "a", Right: "a", Correlation: 1},
				{Left: "b", Right: "b", Correlation: 1},
			},
		},
		{
			left:  []string{"foo", "bar", "baz"},
			right: []string{"foob", "bar", "barr"},
			expected: []ImplicitLink{
				{Left: "bar", Right: "bar", Correlation: 1},
				{Left: "baz", Right: "barr"},
				{Left: "foo", Right: "foob"},
			},
		},
		{
			left:     []string{"foo", "bar", "baz"},
			right:    []string{},
			expected: nil,
		},
		{
			left:     []string{},
			right:    []string{},
			expected: nil,
		},
		{
			left:  []string{"foo", "bar", "baz"},
			right: []string{"baa"},
			expected: []ImplicitLink{
				{Left: "bar", Right: "baa"},
			},
		},
	}

	for _, test := range testCases {
		links := CreateImplicitLinks(test.left, test.right, 0)
		diff := cmp.Diff(
			test.expected,
			links,
			cmpopts.SortSlices(func(a, b ImplicitLink) bool {
				return a.Left < b.Left
			}),
			cmpopts.IgnoreFields(ImplicitLink{}, "Correlation"),
		)
		if diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestCreateImplicitLinksThreshold(t *testing.T) {
	links := CreateImplicitLinks([]string{"zlatan ibrahimovic"}, []string{"kylian mbappe"}, 0.9)
	require.Empty(t, links)
}

func TestSuggest(t *testing.T) {
	index := map[string]string{
		"Heung-min Son":  "url-son",
		"Kylian Mbappé":  "url-mbappe",
		"Erling Haaland": "url-haaland",
	}

	suggestions := Suggest([]string{"Erling Braut Haaland", "Heung Min Son", "Zzz"}, index, 0.85)

	diff := cmp.Diff(
		[]Suggestion{
			{Query: "Erling Braut Haaland", Candidate: "Erling Haaland", Url: "url-haaland"},
			{Query: "Heung Min Son", Candidate: "Heung-min Son", Url: "url-son"},
		},
		suggestions,
		cmpopts.IgnoreFields(Suggestion{}, "Similarity"),
	)
	if diff != "" {
		t.Fatal(diff)
	}
	for _, s := range suggestions {
		require.GreaterOrEqual(t, s.Similarity, 0.85)
		require.Less(t, s.Similarity, 1.0)
	}
}
