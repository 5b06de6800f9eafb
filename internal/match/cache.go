package match

// Cache memoizes the most recent Match call. It is keyed on the query and
// the identity of the options slice, so callers must replace (not mutate)
// the slice when the option set changes.
type Cache struct {
	Matcher Matcher

	query   string
	options []Option
	result  []Option
	valid   bool
}

// Match returns the cached result when query and options are unchanged.
func (c *Cache) Match(query string, options []Option) []Option {
	if c.valid && c.query == query && sameSlice(c.options, options) {
		return c.result
	}
	c.query = query
	c.options = options
	c.result = c.Matcher.Match(query, options)
	c.valid = true
	return c.result
}

// Reset drops the cached entry.
func (c *Cache) Reset() {
	c.valid = false
	c.options = nil
	c.result = nil
}

func sameSlice(a, b []Option) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
