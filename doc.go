// Package keychord dispatches chord-based keyboard shortcuts: multi-key
// combinations, typed character sequences, and live key-state reporting,
// across any number of independently scoped shortcut engines.
//
// # Engines and targets
//
// An Engine is one shortcut instance: a set of bindings, a sequence
// detector, and the keys currently held within it. Engines attach to a
// process-wide dispatcher when created and detach on Destroy. Each engine
// has a scope (a Target in the host's focus tree) and only acts on
// events at or below it; a nil scope means the whole window.
//
//	save := binding.Binding{
//	    Combo:   chord.Hold("ctrl").Or(chord.Press("s")),
//	    Handler: func() { saveFile() },
//	    Label:   "Save",
//	}
//	eng, err := keychord.New(keychord.Config{Label: "editor", Bindings: []binding.Binding{save}})
//
// # Dispatch
//
// Hosts feed key events through DispatchKeyDown, DispatchKeyUp, and
// DispatchBlur (or the KeyDown/KeyUp conveniences). Every attached engine
// receives every event in attachment order; a binding hit consumes the
// event so the host can suppress its default handling. Chord resolution
// is exact-match over the held-key mask plus the pressed key, with a
// catch-all fallback for bindings on the "any" press.
//
// # Presses without releases
//
// Hosts that never observe key release (terminals) wrap dispatch in an
// AutoRelease, which synthesizes releases from press timing and
// reconciles modifier holds per event. The backend and teakey packages
// do this for tcell and Bubble Tea programs.
//
// # Callbacks
//
// OnUpdate subscribers follow the live key mask; OnChange subscribers
// follow registration state. Handlers and subscribers run without engine
// locks held and may re-enter the API; panics from handlers propagate to
// the dispatching caller. The library itself never logs.
package keychord
