package keychord

import "github.com/dshills/keychord/binding"

// DispatchKeyDown delivers a keydown to every attached engine in
// attachment order and reports whether any binding consumed it. Delivery
// does not stop at the first consumer.
func DispatchKeyDown(ev *Event) bool {
	consumed := false
	for _, e := range proc.snapshot() {
		if e.handleKeyDown(ev) {
			consumed = true
		}
	}
	return consumed
}

// DispatchKeyUp delivers a key release to every attached engine.
func DispatchKeyUp(ev *Event) {
	for _, e := range proc.snapshot() {
		e.handleKeyUp(ev)
	}
}

// DispatchBlur tells every attached engine the window lost focus: held
// keys and typed sequences are cleared across the process.
func DispatchBlur() {
	for _, e := range proc.snapshot() {
		e.handleBlur()
	}
}

// KeyDown dispatches a keydown for the named key at a target and reports
// whether a binding consumed it.
func KeyDown(name string, target Target) bool {
	return DispatchKeyDown(NewEvent(name, target))
}

// KeyUp dispatches a key release for the named key at a target.
func KeyUp(name string, target Target) {
	DispatchKeyUp(NewEvent(name, target))
}

// ActiveBinding pairs a binding with its owning engine's identity.
type ActiveBinding struct {
	Binding binding.Binding
	Label   string
	Scope   Target
}

// ActiveBindings lists the bindings of active engines in attachment
// order. A nil target lists every active engine's bindings; a non-nil
// target lists those of engines scoped to exactly that target.
func ActiveBindings(target Target) []ActiveBinding {
	proc.mu.RLock()
	var engines []*Engine
	if target == nil {
		engines = make([]*Engine, len(proc.order))
		copy(engines, proc.order)
	} else {
		engines = make([]*Engine, len(proc.byScope[target]))
		copy(engines, proc.byScope[target])
	}
	proc.mu.RUnlock()

	var out []ActiveBinding
	for _, e := range engines {
		if !e.IsActive() {
			continue
		}
		for _, b := range e.Bindings() {
			out = append(out, ActiveBinding{Binding: b, Label: e.label, Scope: e.scope})
		}
	}
	return out
}
