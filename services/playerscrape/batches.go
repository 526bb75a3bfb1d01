package playerscrape

import (
	"fmt"
	"path/filepath"

	"fbref-transfers/lib/jsonfile"
)

// SplitBatches splits players, in name order, into n batches of
// ceil(len/n) players. Trailing batches may be empty.
func SplitBatches(players map[string]string, n int) []map[string]string {
	if n < 1 {
		n = 1
	}
	names := sortedNames(players)
	size := (len(names) + n - 1) / n

	batches := make([]map[string]string, n)
	for i := range batches {
		batches[i] = map[string]string{}
		lo := min(i*size, len(names))
		hi := min(lo+size, len(names))
		for _, name := range names[lo:hi] {
			batches[i][name] = players[name]
		}
	}
	return batches
}

func BatchFilename(i int) string {
	return fmt.Sprintf("batch_%d_player_urls.json", i)
}

// WriteBatches writes the batches to dir as batch_<i>_player_urls.json
// (1-based) and returns the paths.
func WriteBatches(dir string, players map[string]string, n int) ([]string, error) {
	var paths []string
	for i, batch := range SplitBatches(players, n) {
		path := filepath.Join(dir, BatchFilename(i+1))
		err := jsonfile.Write(path, batch)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
