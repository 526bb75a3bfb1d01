// Package linker joins player names from the transfer ledger with the
// names listed on the player index.
package linker

import (
	"sort"

	"fbref-transfers/lib/configutil"
	"fbref-transfers/lib/textutil"
)

type Result struct {
	// query name -> profile url
	Matched map[string]string
	// in input order
	Unmatched []string
}

// Matcher looks names up by their normalized form. Aliases map a query
// name to the display name it is listed under on the index, for players
// whose names differ beyond accents and casing.
type Matcher struct {
	Aliases map[string]string
}

// LoadAliases reads a json5 object of query name -> index display name.
func LoadAliases(path string) (map[string]string, error) {
	return configutil.ReadConfig[map[string]string](path)
}

func buildLookup(index map[string]string) map[string]string {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)

	// on a key collision the last name in sorted order wins
	lookup := make(map[string]string, len(index))
	for _, name := range names {
		lookup[textutil.NormalizeName(name)] = index[name]
	}
	return lookup
}

// Match places every distinct query in exactly one of Result.Matched
// and Result.Unmatched.
func (m Matcher) Match(queries []string, index map[string]string) Result {
	lookup := buildLookup(index)
	result := Result{
		Matched:   map[string]string{},
		Unmatched: []string{},
	}
	seen := map[string]bool{}

	for _, q := range queries {
		if seen[q] {
			continue
		}
		seen[q] = true

		if target, ok := m.Aliases[q]; ok {
			if url, ok := index[target]; ok {
				result.Matched[q] = url
				continue
			}
			if url, ok := lookup[textutil.NormalizeName(target)]; ok {
				result.Matched[q] = url
				continue
			}
		}
		if url, ok := lookup[textutil.NormalizeName(q)]; ok {
			result.Matched[q] = url
			continue
		}
		result.Unmatched = append(result.Unmatched, q)
	}
	return result
}

func Match(queries []string, index map[string]string) Result {
	return Matcher{}.Match(queries, index)
}
