package keychord

// Event is one key occurrence on its way through dispatch.
type Event struct {
	name     string
	target   Target
	consumed bool
}

// NewEvent builds an event for the named key at a target. A nil target
// means the event originates at the window.
func NewEvent(name string, target Target) *Event {
	return &Event{name: name, target: target}
}

// Name returns the key name as the host delivered it.
func (e *Event) Name() string {
	return e.name
}

// Target returns where the event originated.
func (e *Event) Target() Target {
	return e.target
}

// Consume marks the event handled; hosts then suppress their default
// processing of the keystroke. The dispatcher consumes automatically when
// a binding fires.
func (e *Event) Consume() {
	e.consumed = true
}

// Consumed reports whether the event was consumed.
func (e *Event) Consumed() bool {
	return e.consumed
}
