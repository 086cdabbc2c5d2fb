package binding

import (
	"sync"

	"github.com/dshills/keychord/chord"
)

// Registry stores bindings in insertion order and maintains an exact-match
// index from single-press combos to bindings.
//
// A binding whose press half has K bits set is exploded into K index
// entries, one per press alternative, all pointing at the same Binding.
// Later additions silently take over colliding index slots; Add returns
// the displaced bindings so callers can report the collision advisorily.
type Registry struct {
	mu      sync.RWMutex
	entries []*Binding
	index   map[chord.Combo]*Binding
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[chord.Combo]*Binding)}
}

// Add stores b and indexes it under each of its press alternatives. It
// returns the distinct previously indexed bindings whose slots b took
// over. Displaced bindings stay in the insertion-order list; they are
// shadowed in the index until a rebuild restores them.
func (r *Registry) Add(b *Binding) []*Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, b)
	return r.indexBinding(b)
}

// Remove deletes every binding whose original combo equals c, then
// rebuilds the index from the survivors. It reports whether anything was
// removed. Alternatives of an exploded binding cannot be removed
// individually; removal goes by the combo the binding was added with.
func (r *Registry) Remove(c chord.Combo) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := make([]*Binding, 0, len(r.entries))
	for _, b := range r.entries {
		if b.Combo != c {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(r.entries) {
		return false
	}
	r.entries = kept
	r.rebuild()
	return true
}

// Lookup finds the binding indexed under exactly c. There is no subset or
// superset matching; catch-all fallbacks are the caller's second probe.
func (r *Registry) Lookup(c chord.Combo) (*Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.index[c]
	return b, ok
}

// Bindings returns the stored bindings in insertion order, shadowed
// entries included. The slice is a copy; the bindings are live and must
// not be modified.
func (r *Registry) Bindings() []*Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Binding, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of stored bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear removes every binding.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.index = make(map[chord.Combo]*Binding)
}

// indexBinding writes b's exploded entries, collecting bindings it
// displaces. Callers hold the write lock.
func (r *Registry) indexBinding(b *Binding) []*Binding {
	var displaced []*Binding
	seen := make(map[*Binding]bool)
	for _, c := range explode(b.Combo) {
		if prev, ok := r.index[c]; ok && prev != b && !seen[prev] {
			seen[prev] = true
			displaced = append(displaced, prev)
		}
		r.index[c] = b
	}
	return displaced
}

// rebuild reindexes every entry in insertion order. Callers hold the
// write lock.
func (r *Registry) rebuild() {
	r.index = make(map[chord.Combo]*Binding, len(r.entries))
	for _, b := range r.entries {
		r.indexBinding(b)
	}
}

// explode splits a combo into one single-press combo per press bit. A
// combo with an empty press half is indexed as-is; it can never match a
// dispatched key, only a direct lookup.
func explode(c chord.Combo) []chord.Combo {
	bits := c.Press.Bits()
	if len(bits) <= 1 {
		return []chord.Combo{c}
	}
	out := make([]chord.Combo, 0, len(bits))
	for _, bit := range bits {
		out = append(out, chord.Combo{Hold: c.Hold, Press: chord.BitMask(bit)})
	}
	return out
}
