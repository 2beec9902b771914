package temporal

import "sync"

// Cache memoizes match lists keyed by the exact input string.
// It is safe for concurrent use; a lost insert under contention is
// harmless because matching is deterministic
type Cache struct {
	mu  sync.RWMutex
	max int
	m   map[string][]MatchRecord
}

// DefaultCacheSize bounds the memoization cache when callers pass 0
const DefaultCacheSize = 4096

// NewCache returns a bounded cache. max <= 0 selects DefaultCacheSize
func NewCache(max int) *Cache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &Cache{max: max, m: make(map[string][]MatchRecord)}
}

func (c *Cache) get(key string) ([]MatchRecord, bool) {
	c.mu.RLock()
	v, ok := c.m[key]
	c.mu.RUnlock()
	return v, ok
}

func (c *Cache) put(key string, v []MatchRecord) {
	c.mu.Lock()
	if len(c.m) >= c.max {
		// evict an arbitrary entry; fairness does not matter for a memo table
		for k := range c.m {
			delete(c.m, k)
			break
		}
	}
	c.m[key] = v
	c.mu.Unlock()
}

// Len reports the number of memoized inputs
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Matcher applies the rule catalog to input text and enforces the
// precedence rules between overlapping rule kinds. It is a pure function
// of its input apart from the injected memo cache
type Matcher struct {
	rules []Rule
	cache *Cache
}

// NewMatcher builds a Matcher over the package catalog.
// A nil cache gets a fresh bounded one, so tests can isolate memoization
// by passing their own
func NewMatcher(cache *Cache) *Matcher {
	if cache == nil {
		cache = NewCache(0)
	}
	return &Matcher{rules: Catalog(), cache: cache}
}

// Match returns the tagged matches for input in catalog-priority order.
// Unmatched input yields an empty list; that is not an error, it means
// no temporal information was found. The returned slice is shared with
// the memo cache and must not be mutated
func (m *Matcher) Match(input string) []MatchRecord {
	if input == "" {
		return nil
	}
	if cached, ok := m.cache.get(input); ok {
		return cached
	}

	var out []MatchRecord

	// pass 1: time ranges win over any loose clock time in the same phrase
	rangeFound := false
	for _, r := range m.rules {
		if r.Kind != KindTimeRange {
			continue
		}
		if ms := r.re.FindStringSubmatch(input); ms != nil {
			rangeFound = true
			out = append(out, r.extract(ms))
		}
	}

	// suppression probes evaluated once per input
	endOfWeek := reEndOfWeek.MatchString(input)
	explicitDay := reExplicitWeekday.MatchString(input)
	monthly := reMonthlyOrdinal.MatchString(input)

	// pass 2: everything else in catalog order
	for _, r := range m.rules {
		switch {
		case r.Kind == KindTimeRange:
			continue
		case r.Kind == KindSpecificTime && rangeFound:
			// the range start time positions the instant
			continue
		case r.Kind == KindRelativeWeekDay && endOfWeek:
			// "end of week" wins over a bare weekday mention
			continue
		case r.Kind == KindRelativeWeekDay && monthly:
			// monthly recurrence wins over a one-off weekday reading
			continue
		case r.Kind == KindRelativeWeek && explicitDay:
			// an explicit weekday wins over the generic end-of-period default
			continue
		case r.Kind == KindSpecificDay && explicitDay:
			// already represented by the qualified weekday match
			continue
		}
		if ms := r.re.FindStringSubmatch(input); ms != nil {
			out = append(out, r.extract(ms))
		}
	}

	m.cache.put(input, out)
	return out
}
