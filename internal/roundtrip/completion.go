package roundtrip

import "sync"

// Completion tracks whether a round-trip item has been answered yet, and
// with what result. The mutex guards only these two scalars; it is
// record-scoped so resolving one item never blocks producers of others.
type Completion struct {
	mu       sync.Mutex
	resolved bool
	result   bool
}

// NewCompletion returns an unresolved record.
func NewCompletion() *Completion { return &Completion{} }

// Resolve registers the result for this record. It is the only legitimate
// setter. The meaningful transition happens at most once: the first call
// returns true, every later call is rejected with false and leaves the
// stored result untouched.
func (c *Completion) Resolve(result bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved {
		return false
	}
	c.resolved = true
	c.result = result
	return true
}

// State reads the record under its mutex. result is meaningful only when
// resolved is true.
func (c *Completion) State() (resolved, result bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolved, c.result
}
