package linker

import (
	"sort"

	"fbref-transfers/lib/textutil"

	"github.com/antzucaro/matchr"
)

type ImplicitLink struct {
	Left        string
	Right       string
	Correlation float64
}

// CreateImplicitLinks pairs the two lists one to one. Identical entries
// are paired first, then every remaining left entry takes its most
// similar remaining right entry by Jaro-Winkler similarity. Pairs with a
// correlation below `minCorrelation` are not returned.
func CreateImplicitLinks(leftList, rightList []string, minCorrelation float64) []ImplicitLink {
	swapped := false
	if len(rightList) < len(leftList) {
		leftList, rightList = rightList, leftList
		swapped = true
	}

	var result []ImplicitLink
	matchedLeft := make(map[string]struct{})
	matchedRight := make(map[string]struct{})

	link := func(left, right string, correlation float64) {
		l := ImplicitLink{Left: left, Right: right, Correlation: correlation}
		if swapped {
			l.Left, l.Right = right, left
		}
		result = append(result, l)
		matchedLeft[left] = struct{}{}
		matchedRight[right] = struct{}{}
	}

	rightSet := make(map[string]struct{}, len(rightList))
	for _, right := range rightList {
		rightSet[right] = struct{}{}
	}
	for _, left := range leftList {
		if _, exists := rightSet[left]; !exists {
			continue
		}
		if _, isMatchedRight := matchedRight[left]; isMatchedRight {
			continue
		}
		link(left, left, 1)
	}

	for _, left := range leftList {
		if _, isMatchedLeft := matchedLeft[left]; isMatchedLeft {
			continue
		}

		var mostSimilarity float64
		var mostSimilarRight string
		for _, right := range rightList {
			if _, isMatchedRight := matchedRight[right]; isMatchedRight {
				continue
			}
			similarity := matchr.JaroWinkler(left, right, false)
			if similarity > mostSimilarity {
				mostSimilarity = similarity
				mostSimilarRight = right
			}
		}

		if mostSimilarity > 0 && mostSimilarity >= minCorrelation {
			link(left, mostSimilarRight, mostSimilarity)
		}
	}

	return result
}

// Suggestion proposes an index entry for a name that had no exact match.
type Suggestion struct {
	Query      string
	Candidate  string
	Url        string
	Similarity float64
}

// Suggest finds the closest index name for each unmatched query,
// comparing normalized names. Suggestions are sorted by query.
func Suggest(unmatched []string, index map[string]string, threshold float64) []Suggestion {
	queriesByKey := map[string][]string{}
	var queryKeys []string
	for _, q := range unmatched {
		key := textutil.NormalizeName(q)
		if key == "" {
			continue
		}
		if _, seen := queriesByKey[key]; !seen {
			queryKeys = append(queryKeys, key)
		}
		queriesByKey[key] = append(queriesByKey[key], q)
	}

	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)

	candidateByKey := map[string]string{}
	var candidateKeys []string
	for _, name := range names {
		key := textutil.NormalizeName(name)
		if _, seen := candidateByKey[key]; seen {
			continue
		}
		candidateByKey[key] = name
		candidateKeys = append(candidateKeys, key)
	}

	var suggestions []Suggestion
	for _, l := range CreateImplicitLinks(queryKeys, candidateKeys, threshold) {
		candidate := candidateByKey[l.Right]
		for _, q := range queriesByKey[l.Left] {
			suggestions = append(suggestions, Suggestion{
				Query:      q,
				Candidate:  candidate,
				Url:        index[candidate],
				Similarity: l.Correlation,
			})
		}
	}
	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Query < suggestions[j].Query
	})
	return suggestions
}
