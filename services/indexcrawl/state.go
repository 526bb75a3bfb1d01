package indexcrawl

import (
	"sort"
	"time"
)

// CrawlState is everything a crawl has learned so far. A shard is in
// Processed only if its page was fetched successfully or does not exist.
type CrawlState struct {
	// display name -> profile url
	Players   map[string]string
	Processed map[string]struct{}
	Timestamp time.Time
}

func NewCrawlState() *CrawlState {
	return &CrawlState{
		Players:   map[string]string{},
		Processed: map[string]struct{}{},
	}
}

func (s *CrawlState) Clone() *CrawlState {
	out := NewCrawlState()
	if s == nil {
		return out
	}
	for name, url := range s.Players {
		out.Players[name] = url
	}
	for shard := range s.Processed {
		out.Processed[shard] = struct{}{}
	}
	out.Timestamp = s.Timestamp
	return out
}

func (s *CrawlState) IsProcessed(shard string) bool {
	_, ok := s.Processed[shard]
	return ok
}

// ProcessedShards returns the processed shards in ascending order.
func (s *CrawlState) ProcessedShards() []string {
	shards := make([]string, 0, len(s.Processed))
	for shard := range s.Processed {
		shards = append(shards, shard)
	}
	sort.Strings(shards)
	return shards
}

// merge adds entries that are not known yet, returning how many were added.
func (s *CrawlState) merge(name, url string) bool {
	if _, exists := s.Players[name]; exists {
		return false
	}
	s.Players[name] = url
	return true
}
