package roundtrip

import (
	"github.com/rzbill/relay/pkg/id"
)

// Resolved is one harvested registry entry.
type Resolved struct {
	Token  id.Token
	Result bool
}

// Registry is a producer-owned set of outstanding completions, keyed by
// token. It is deliberately not goroutine-safe: only the producer that
// created it may call its methods. The completions it hands out may be
// resolved from any goroutine.
type Registry struct {
	gen     *id.Generator
	pending map[id.Token]*Completion
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		gen:     id.NewGenerator(),
		pending: make(map[id.Token]*Completion),
	}
}

// Track mints a token, registers a fresh unresolved completion under it, and
// returns both. The record stays tracked until harvested by TakeResolved or
// dropped by Abandon, so the resolving side can never reach a record the
// producer has let go of.
func (r *Registry) Track() (id.Token, *Completion) {
	token := r.gen.Next()
	c := NewCompletion()
	r.pending[token] = c
	return token, c
}

// TakeResolved scans every outstanding record and removes those that have
// been resolved, returning them. The scan is exhaustive because resolution
// order carries no relation to emission order.
func (r *Registry) TakeResolved() []Resolved {
	var out []Resolved
	for token, c := range r.pending {
		resolved, result := c.State()
		if !resolved {
			continue
		}
		delete(r.pending, token)
		out = append(out, Resolved{Token: token, Result: result})
	}
	return out
}

// Outstanding returns the number of records not yet harvested.
func (r *Registry) Outstanding() int { return len(r.pending) }

// Abandon drops every outstanding record and returns how many were dropped.
// Called when the producer stops before all answers arrive; late Resolve
// calls against abandoned records are harmless no-ops on records nothing
// reads anymore.
func (r *Registry) Abandon() int {
	n := len(r.pending)
	clear(r.pending)
	return n
}
