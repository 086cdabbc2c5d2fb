package keychord

import "github.com/dshills/keychord/chord"

// tracker is the live set of held key names. It is not locked; the
// owning engine serializes access.
type tracker struct {
	keys map[string]struct{}
}

func newTracker() *tracker {
	return &tracker{keys: make(map[string]struct{})}
}

// down records a key as held. Idempotent.
func (t *tracker) down(name string) {
	t.keys[name] = struct{}{}
}

// up removes a key. Unknown names are a no-op.
func (t *tracker) up(name string) {
	delete(t.keys, name)
}

// has reports whether the key is currently held.
func (t *tracker) has(name string) bool {
	_, ok := t.keys[name]
	return ok
}

// clear empties the held set.
func (t *tracker) clear() {
	clear(t.keys)
}

// mask ORs the hold bit of every held key name.
func (t *tracker) mask() chord.Mask {
	var m chord.Mask
	for name := range t.keys {
		m = m.Or(chord.BitMask(chord.Bit(name)))
	}
	return m
}
