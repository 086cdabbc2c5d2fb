package keychord

import "sync"

// dispatcher is the process-wide registry of attached engines. Events
// fan out to every engine in attachment order; each engine applies its
// own active and scope filters.
type dispatcher struct {
	mu      sync.RWMutex
	order   []*Engine
	byScope map[Target][]*Engine
}

var proc = &dispatcher{byScope: make(map[Target][]*Engine)}

func attach(e *Engine) {
	proc.mu.Lock()
	defer proc.mu.Unlock()
	proc.order = append(proc.order, e)
	proc.byScope[e.scope] = append(proc.byScope[e.scope], e)
}

func detach(e *Engine) {
	proc.mu.Lock()
	defer proc.mu.Unlock()
	proc.order = remove(proc.order, e)
	if scoped := remove(proc.byScope[e.scope], e); len(scoped) > 0 {
		proc.byScope[e.scope] = scoped
	} else {
		delete(proc.byScope, e.scope)
	}
}

func remove(engines []*Engine, e *Engine) []*Engine {
	for i, cur := range engines {
		if cur == e {
			return append(engines[:i:i], engines[i+1:]...)
		}
	}
	return engines
}

// snapshot copies the attachment-order engine list.
func (d *dispatcher) snapshot() []*Engine {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Engine, len(d.order))
	copy(out, d.order)
	return out
}
