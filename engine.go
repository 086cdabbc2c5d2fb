package keychord

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keychord/binding"
	"github.com/dshills/keychord/chord"
	"github.com/dshills/keychord/sequence"
)

// DefaultSequenceTimeout is the idle window for sequences registered
// without an explicit timeout.
const DefaultSequenceTimeout = sequence.DefaultTimeout

// Config configures a new Engine.
type Config struct {
	// Scope limits dispatch to events at or below this target. Nil
	// means the whole window.
	Scope Target

	// Label names the engine in ActiveBindings and conflict reports.
	Label string

	// Bindings are registered at creation. Invalid entries fail New.
	Bindings []binding.Binding

	// SequenceTimeout is the default idle timeout for sequences
	// registered without WithTimeout. Zero means DefaultSequenceTimeout.
	SequenceTimeout time.Duration

	// OnConflict receives advisory conflict reports. Nil disables
	// reporting; colliding registrations then silently follow
	// last-write-wins.
	OnConflict func(Conflict)
}

// Engine is one shortcut instance: a scope, a binding registry, a
// sequence detector, and the live key state feeding them. Engines attach
// to the process dispatcher at creation and receive every dispatched key
// event; their own active and scope filters decide what they act on.
//
// All methods are safe for concurrent use. Handler and subscriber
// callbacks run without the engine lock and may re-enter any method.
type Engine struct {
	id    string
	label string
	scope Target

	mu         sync.Mutex
	active     bool
	destroyed  bool
	tracker    *tracker
	seqTimeout time.Duration
	onConflict func(Conflict)

	nextSubID  uint64
	changeSubs map[uint64]func()
	updateSubs map[uint64]func(chord.Combo)

	reg      *binding.Registry
	detector *sequence.Detector
}

// New creates an engine, registers its configured bindings, and attaches
// it to the process dispatcher. Engines start active.
func New(cfg Config) (*Engine, error) {
	for i := range cfg.Bindings {
		if err := validateBinding(&cfg.Bindings[i]); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		id:         uuid.NewString(),
		label:      cfg.Label,
		scope:      cfg.Scope,
		active:     true,
		tracker:    newTracker(),
		seqTimeout: cfg.SequenceTimeout,
		onConflict: cfg.OnConflict,
		changeSubs: make(map[uint64]func()),
		updateSubs: make(map[uint64]func(chord.Combo)),
		reg:        binding.NewRegistry(),
		detector:   sequence.NewDetector(),
	}
	if e.seqTimeout <= 0 {
		e.seqTimeout = DefaultSequenceTimeout
	}

	var conflicts []Conflict
	for i := range cfg.Bindings {
		b := cfg.Bindings[i]
		conflicts = append(conflicts, e.addBindingLocked(&b)...)
	}
	attach(e)
	e.report(conflicts)
	return e, nil
}

// ID returns the engine's unique id.
func (e *Engine) ID() string { return e.id }

// Label returns the engine's configured label.
func (e *Engine) Label() string { return e.label }

// Scope returns the engine's configured scope; nil means the window.
func (e *Engine) Scope() Target { return e.scope }

// Bind validates and registers bindings. A non-zero combo without a
// handler fails with ErrNilHandler before anything is registered. Change
// subscribers are notified once per call; index collisions are reported
// through OnConflict.
func (e *Engine) Bind(bs ...binding.Binding) error {
	if len(bs) == 0 {
		return nil
	}
	for i := range bs {
		if err := validateBinding(&bs[i]); err != nil {
			return err
		}
	}

	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return ErrDestroyed
	}
	var conflicts []Conflict
	for i := range bs {
		b := bs[i]
		conflicts = append(conflicts, e.addBindingLocked(&b)...)
	}
	changes := e.changeSnapshotLocked()
	e.mu.Unlock()

	e.report(conflicts)
	for _, fn := range changes {
		fn()
	}
	return nil
}

// Unbind removes every binding registered with one of the given combos.
// Unbinding something never bound is a silent no-op; change subscribers
// are notified only when a binding was actually removed.
func (e *Engine) Unbind(combos ...chord.Combo) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	removed := false
	for _, c := range combos {
		if e.reg.Remove(c) {
			removed = true
		}
	}
	var changes []func()
	if removed {
		changes = e.changeSnapshotLocked()
	}
	e.mu.Unlock()

	for _, fn := range changes {
		fn()
	}
}

// Bindings returns a snapshot of the registered bindings in registration
// order, shadowed entries included.
func (e *Engine) Bindings() []binding.Binding {
	ptrs := e.reg.Bindings()
	out := make([]binding.Binding, len(ptrs))
	for i, b := range ptrs {
		out[i] = *b
	}
	return out
}

// SetActive activates or deactivates the engine. Deactivation clears the
// held-key state and sequence buffer and notifies update subscribers with
// the zero combo. A call that does not change the state does nothing.
func (e *Engine) SetActive(active bool) {
	e.mu.Lock()
	if e.destroyed || e.active == active {
		e.mu.Unlock()
		return
	}
	e.active = active
	var updates []func(chord.Combo)
	if !active {
		e.tracker.clear()
		updates = e.updateSnapshotLocked()
	}
	changes := e.changeSnapshotLocked()
	e.mu.Unlock()

	if !active {
		e.detector.Reset()
		for _, fn := range updates {
			fn(chord.Combo{})
		}
	}
	for _, fn := range changes {
		fn()
	}
}

// IsActive reports whether the engine is active and not destroyed.
func (e *Engine) IsActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active && !e.destroyed
}

// SequenceOption adjusts a sequence registration.
type SequenceOption func(*sequenceOptions)

type sequenceOptions struct {
	timeout time.Duration
}

// WithTimeout overrides the engine's default sequence idle timeout.
func WithTimeout(d time.Duration) SequenceOption {
	return func(o *sequenceOptions) {
		o.timeout = d
	}
}

// Sequence registers a typed sequence like "gg". The handler fires when
// the sequence is typed within the idle timeout. Duplicate or shadowing
// sequences are reported through OnConflict and registered anyway. The
// returned Subscription unregisters the sequence.
func (e *Engine) Sequence(text string, h sequence.Handler, opts ...SequenceOption) (*Subscription, error) {
	if text == "" {
		return nil, ErrEmptySequence
	}
	if h == nil {
		return nil, ErrNilHandler
	}
	var o sequenceOptions
	for _, opt := range opts {
		opt(&o)
	}

	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return nil, ErrDestroyed
	}
	timeout := o.timeout
	if timeout <= 0 {
		timeout = e.seqTimeout
	}
	var conflicts []Conflict
	folded := strings.ToLower(text)
	for _, existing := range e.detector.Sequences() {
		if strings.HasSuffix(existing, folded) || strings.HasSuffix(folded, existing) {
			conflicts = append(conflicts, Conflict{
				Kind:     ConflictSequence,
				Sequence: text,
				Existing: existing,
			})
		}
	}
	id, err := e.detector.Add(text, h, timeout)
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}
	changes := e.changeSnapshotLocked()
	e.mu.Unlock()

	e.report(conflicts)
	for _, fn := range changes {
		fn()
	}
	return &Subscription{cancel: func() { e.removeSequence(id) }}, nil
}

// OnChange subscribes to registration-state changes: any bind or unbind,
// sequence add or remove, an actual active flip, and Destroy.
func (e *Engine) OnChange(fn func()) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return &Subscription{}
	}
	e.nextSubID++
	id := e.nextSubID
	e.changeSubs[id] = fn
	e.mu.Unlock()

	return &Subscription{cancel: func() {
		e.mu.Lock()
		delete(e.changeSubs, id)
		e.mu.Unlock()
	}}
}

// OnUpdate subscribes to the live key mask: on each first keydown the
// full hold-plus-press combo, on each keyup the remaining hold-only
// combo, on blur or deactivation the zero combo.
func (e *Engine) OnUpdate(fn func(chord.Combo)) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return &Subscription{}
	}
	e.nextSubID++
	id := e.nextSubID
	e.updateSubs[id] = fn
	e.mu.Unlock()

	return &Subscription{cancel: func() {
		e.mu.Lock()
		delete(e.updateSubs, id)
		e.mu.Unlock()
	}}
}

// Destroy detaches the engine from the dispatcher, clears its bindings,
// sequences and key state, notifies change subscribers one last time, and
// drops every subscription. Destroy is idempotent; mutating calls after
// it return ErrDestroyed.
func (e *Engine) Destroy() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.destroyed = true
	e.active = false
	e.tracker.clear()
	changes := e.changeSnapshotLocked()
	e.changeSubs = make(map[uint64]func())
	e.updateSubs = make(map[uint64]func(chord.Combo))
	e.mu.Unlock()

	e.reg.Clear()
	e.detector.Clear()
	detach(e)
	for _, fn := range changes {
		fn()
	}
}

// handleKeyDown runs the keydown algorithm for this engine and reports
// whether a binding consumed the event.
func (e *Engine) handleKeyDown(ev *Event) bool {
	e.mu.Lock()
	if e.destroyed || !e.active || !contains(e.scope, ev.Target()) {
		e.mu.Unlock()
		return false
	}
	name := ev.Name()
	repeat := e.tracker.has(name)
	hold := e.tracker.mask() // before this key joins the held set
	combo := chord.Combo{Hold: hold, Press: chord.BitMask(chord.Bit(name))}

	b, ok := e.reg.Lookup(combo)
	if !ok {
		// Exact misses fall through to the catch-all press.
		b, ok = e.reg.Lookup(chord.Combo{Hold: hold, Press: chord.BitMask(chord.AnyBit)})
	}
	fired := ok && (!repeat || b.Repeat)
	var updates []func(chord.Combo)
	if !repeat {
		updates = e.updateSnapshotLocked()
	}
	e.mu.Unlock()

	e.detector.Feed(name)
	for _, fn := range updates {
		fn(combo)
	}
	if fired {
		ev.Consume()
		if b.Delay > 0 {
			time.AfterFunc(b.Delay, b.Handler)
		} else {
			b.Handler()
		}
	}

	// The handler may have deactivated or destroyed the engine; only a
	// still-active engine records the key as held.
	e.mu.Lock()
	if !e.destroyed && e.active && !repeat {
		e.tracker.down(name)
	}
	e.mu.Unlock()
	return fired
}

// handleKeyUp removes the key from the held set and notifies update
// subscribers with the remaining hold mask.
func (e *Engine) handleKeyUp(ev *Event) {
	e.mu.Lock()
	if e.destroyed || !e.active || !contains(e.scope, ev.Target()) {
		e.mu.Unlock()
		return
	}
	e.tracker.up(ev.Name())
	hold := e.tracker.mask()
	updates := e.updateSnapshotLocked()
	e.mu.Unlock()

	for _, fn := range updates {
		fn(chord.Combo{Hold: hold})
	}
}

// handleBlur clears the held set and sequence buffer, active or not, and
// notifies update subscribers with the zero combo.
func (e *Engine) handleBlur() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.tracker.clear()
	updates := e.updateSnapshotLocked()
	e.mu.Unlock()

	e.detector.Reset()
	for _, fn := range updates {
		fn(chord.Combo{})
	}
}

// addBindingLocked registers one binding and converts displaced index
// entries into conflict reports. Callers hold the engine lock or own the
// engine exclusively.
func (e *Engine) addBindingLocked(b *binding.Binding) []Conflict {
	displaced := e.reg.Add(b)
	if len(displaced) == 0 {
		return nil
	}
	conflicts := make([]Conflict, 0, len(displaced))
	for _, prev := range displaced {
		conflicts = append(conflicts, Conflict{
			Kind:     ConflictOverwrite,
			Combo:    b.Combo,
			Existing: bindingName(prev),
		})
	}
	return conflicts
}

// report delivers conflicts to the configured reporter, if any.
func (e *Engine) report(conflicts []Conflict) {
	if e.onConflict == nil {
		return
	}
	for _, c := range conflicts {
		e.onConflict(c)
	}
}

// changeSnapshotLocked copies the change subscribers for invocation
// outside the lock.
func (e *Engine) changeSnapshotLocked() []func() {
	if len(e.changeSubs) == 0 {
		return nil
	}
	out := make([]func(), 0, len(e.changeSubs))
	for _, fn := range e.changeSubs {
		out = append(out, fn)
	}
	return out
}

// updateSnapshotLocked copies the update subscribers for invocation
// outside the lock.
func (e *Engine) updateSnapshotLocked() []func(chord.Combo) {
	if len(e.updateSubs) == 0 {
		return nil
	}
	out := make([]func(chord.Combo), 0, len(e.updateSubs))
	for _, fn := range e.updateSubs {
		out = append(out, fn)
	}
	return out
}

// removeSequence unregisters a sequence by detector id.
func (e *Engine) removeSequence(id uint64) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	removed := e.detector.Remove(id)
	var changes []func()
	if removed {
		changes = e.changeSnapshotLocked()
	}
	e.mu.Unlock()

	for _, fn := range changes {
		fn()
	}
}

// validateBinding rejects bindings that could fire but have no handler.
func validateBinding(b *binding.Binding) error {
	if !b.Combo.IsZero() && b.Handler == nil {
		return fmt.Errorf("bind %s: %w", b.Combo, ErrNilHandler)
	}
	return nil
}

// bindingName identifies a binding in conflict reports.
func bindingName(b *binding.Binding) string {
	if b.Label != "" {
		return b.Label
	}
	return b.Combo.String()
}
