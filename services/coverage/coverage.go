// Package coverage picks the alphabetical index pages that have to be
// crawled to find a set of players.
//
// The player index is sharded by the first two letters of a player's
// name ("/en/players/ky/" lists every player whose name starts with
// "Ky"), crawling only the shards the input names fall into avoids
// visiting all 676 of them.
package coverage

import (
	"errors"
	"sort"
	"strings"
	"time"

	"fbref-transfers/lib/textutil"
)

// ErrNameTooShort is reported for names with less than two letters.
var ErrNameTooShort = errors.New("name has fewer than two letters")

const ShardCount = 26 * 26

// letters that survive diacritic removal but still have a plain latin
// spelling on the index
var asciiFold = strings.NewReplacer(
	"ø", "o",
	"ł", "l",
	"đ", "d",
	"ð", "d",
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ı", "i",
	"þ", "th",
)

// ShardOf returns the two-letter shard a name is listed under.
func ShardOf(name string) (string, error) {
	key := asciiFold.Replace(textutil.NormalizeName(name))
	var letters []byte
	for i := 0; i < len(key) && len(letters) < 2; i++ {
		c := key[i]
		if c >= 'a' && c <= 'z' {
			letters = append(letters, c)
		}
	}
	if len(letters) < 2 {
		return "", ErrNameTooShort
	}
	return string(letters), nil
}

type Omission struct {
	Name string
	Err  error
}

type Plan struct {
	// sorted, deduplicated
	Shards  []string
	Omitted []Omission
}

// RequiredShards returns the shards covering every name, names that
// cannot be assigned a shard are listed in Plan.Omitted in input order.
func RequiredShards(names []string) Plan {
	set := map[string]struct{}{}
	var plan Plan
	for _, name := range names {
		shard, err := ShardOf(name)
		if err != nil {
			plan.Omitted = append(plan.Omitted, Omission{Name: name, Err: err})
			continue
		}
		set[shard] = struct{}{}
	}

	plan.Shards = make([]string, 0, len(set))
	for shard := range set {
		plan.Shards = append(plan.Shards, shard)
	}
	sort.Strings(plan.Shards)
	return plan
}

// AllShards returns "aa" through "zz".
func AllShards() []string {
	shards := make([]string, 0, ShardCount)
	for a := 'a'; a <= 'z'; a++ {
		for b := 'a'; b <= 'z'; b++ {
			shards = append(shards, string([]rune{a, b}))
		}
	}
	return shards
}

// Estimate is the minimum time needed to crawl the plan with `delay`
// between requests.
func (p Plan) Estimate(delay time.Duration) time.Duration {
	return time.Duration(len(p.Shards)) * delay
}

// Saved is the number of shards skipped compared to a full crawl.
func (p Plan) Saved() int {
	return ShardCount - len(p.Shards)
}
