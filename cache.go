package stockroom

// queryCache stores resolved archetype-id lists keyed by the hash of the
// required component signature. Soundness rests on a conservative
// invalidation policy: every structural mutation (entity create/destroy,
// component add/remove, archetype creation) clears the whole cache, so no
// mutation can ever sit between a cache population and a later read.
type queryCache struct {
	results     [][]archetypeID
	resultIdxs  map[uint64]int
	maxCapacity int
}

func newQueryCache(capacity int) *queryCache {
	return &queryCache{
		resultIdxs:  make(map[uint64]int),
		maxCapacity: capacity,
	}
}

func (c *queryCache) get(key uint64) ([]archetypeID, bool) {
	idx, ok := c.resultIdxs[key]
	if !ok {
		return nil, false
	}
	return c.results[idx], true
}

// put records a resolved query. When the cache is full it is cleared and
// the new entry inserted.
func (c *queryCache) put(key uint64, ids []archetypeID) {
	if _, exists := c.resultIdxs[key]; exists {
		return
	}
	if len(c.results) >= c.maxCapacity {
		c.clear()
	}
	c.resultIdxs[key] = len(c.results)
	c.results = append(c.results, ids)
}

func (c *queryCache) clear() {
	if len(c.results) == 0 {
		return
	}
	c.results = c.results[:0]
	clear(c.resultIdxs)
}

func (c *queryCache) len() int {
	return len(c.results)
}
