package binding

import (
	"time"

	"github.com/dshills/keychord/chord"
)

// Handler is invoked when a binding's chord lands. Consumption of the
// triggering event is the dispatcher's job, so handlers take no arguments.
type Handler func()

// Binding associates a chord with a handler.
type Binding struct {
	// Combo is the chord that triggers the binding. A multi-bit press
	// half means any one of the alternatives completes it.
	Combo chord.Combo

	// Handler runs when the chord lands. Required for any non-zero combo.
	Handler Handler

	// Label names the binding for introspection and conflict reports.
	Label string

	// Delay postpones the handler after the chord lands. The timer is
	// fire-and-forget: it is not cancelled by unbinding.
	Delay time.Duration

	// Repeat lets auto-repeated keydowns of the pressed key re-fire the
	// handler while the chord stays down.
	Repeat bool
}
