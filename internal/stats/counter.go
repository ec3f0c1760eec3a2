package stats

import (
	"sort"

	"github.com/screendapp/screend-server/internal/domain"
)

// counter accumulates counts while remembering first-encounter order.
// Rankings derived from it are deterministic: ties resolve toward the
// key seen first.
type counter struct {
	keys   []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

func (c *counter) Len() int {
	return len(c.keys)
}

// Max returns the first-encountered key holding the highest count.
func (c *counter) Max() (string, int) {
	var (
		bestKey   string
		bestCount int
	)
	for _, k := range c.keys {
		if c.counts[k] > bestCount {
			bestKey, bestCount = k, c.counts[k]
		}
	}
	return bestKey, bestCount
}

// Entries returns all key/count pairs in first-encounter order.
func (c *counter) Entries() []domain.NameCount {
	out := make([]domain.NameCount, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, domain.NameCount{Name: k, Count: c.counts[k]})
	}
	return out
}

// Top returns the n highest-count entries, descending, with ties in
// first-encounter order.
func (c *counter) Top(n int) []domain.NameCount {
	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
