package game

import "sync"

type cacheKey struct {
	first  string
	second string
	turns  int
	game   string
}

// DeterministicCache memoizes per-turn score pairs for matches whose outcome
// is fully determined by the participants, the turn count and the payoff
// matrix. Keys are ordered: (first, second) and (second, first) are distinct.
type DeterministicCache struct {
	mu      sync.Mutex
	entries map[cacheKey][2]float64
}

func NewDeterministicCache() *DeterministicCache {
	return &DeterministicCache{entries: make(map[cacheKey][2]float64)}
}

func (c *DeterministicCache) Get(first, second string, turns int, g Game) ([2]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scores, ok := c.entries[cacheKey{first: first, second: second, turns: turns, game: g.Fingerprint()}]
	return scores, ok
}

func (c *DeterministicCache) Put(first, second string, turns int, g Game, scores [2]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{first: first, second: second, turns: turns, game: g.Fingerprint()}] = scores
}

func (c *DeterministicCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
