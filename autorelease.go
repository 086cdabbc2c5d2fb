package keychord

import (
	"sync"
	"time"
)

// DefaultReleaseGap is the idle window after which AutoRelease
// synthesizes a key release.
const DefaultReleaseGap = 300 * time.Millisecond

// AutoRelease turns a press-only key stream into down/up pairs.
//
// Terminal hosts observe key presses but never key releases. AutoRelease
// dispatches a keydown for every press and arms a per-key timer that
// dispatches the matching keyup once the press stream goes quiet. A
// repeated press inside the gap re-arms the timer, so engines see it as
// an auto-repeat of a held key. Modifier keys are reconciled separately
// from each event's reported modifier set and stay held until the host
// reports them gone.
type AutoRelease struct {
	mu     sync.Mutex
	target Target
	gap    time.Duration
	timers map[string]*time.Timer
	mods   []string
	closed bool
}

// NewAutoRelease creates an AutoRelease dispatching at target. A
// non-positive gap means DefaultReleaseGap.
func NewAutoRelease(target Target, gap time.Duration) *AutoRelease {
	if gap <= 0 {
		gap = DefaultReleaseGap
	}
	return &AutoRelease{
		target: target,
		gap:    gap,
		timers: make(map[string]*time.Timer),
	}
}

// SetTarget changes where synthesized events originate.
func (a *AutoRelease) SetTarget(t Target) {
	a.mu.Lock()
	a.target = t
	a.mu.Unlock()
}

// Press dispatches a keydown for the named key and (re)arms its release
// timer. It reports whether a binding consumed the press.
func (a *AutoRelease) Press(name string) bool {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return false
	}
	if t, ok := a.timers[name]; ok {
		t.Stop()
	}
	a.timers[name] = time.AfterFunc(a.gap, func() { a.release(name) })
	target := a.target
	a.mu.Unlock()

	return KeyDown(name, target)
}

// SetModifiers reconciles the synthesized modifier holds with the set
// the host just reported: vanished modifiers are released, new ones
// pressed. Modifier names are dispatched as ordinary key events.
func (a *AutoRelease) SetModifiers(names ...string) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	held := make(map[string]bool, len(a.mods))
	var ups, downs, kept []string
	for _, n := range a.mods {
		held[n] = true
		if want[n] {
			kept = append(kept, n)
		} else {
			ups = append(ups, n)
		}
	}
	for _, n := range names {
		if !held[n] {
			downs = append(downs, n)
			kept = append(kept, n)
		}
	}
	a.mods = kept
	target := a.target
	a.mu.Unlock()

	for _, n := range ups {
		KeyUp(n, target)
	}
	for _, n := range downs {
		KeyDown(n, target)
	}
}

// Blur drops all synthesized state and dispatches a window blur.
func (a *AutoRelease) Blur() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.resetLocked()
	a.mu.Unlock()

	DispatchBlur()
}

// Close stops every pending timer and dispatches a final blur. Safe to
// call more than once; a closed AutoRelease ignores further presses.
func (a *AutoRelease) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.resetLocked()
	a.mu.Unlock()

	DispatchBlur()
}

// release fires when a key's press stream went quiet.
func (a *AutoRelease) release(name string) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	delete(a.timers, name)
	target := a.target
	a.mu.Unlock()

	KeyUp(name, target)
}

// resetLocked stops timers and forgets held modifiers. Callers hold the
// lock.
func (a *AutoRelease) resetLocked() {
	for name, t := range a.timers {
		t.Stop()
		delete(a.timers, name)
	}
	a.mods = nil
}
