// Package backend drives engines from a tcell terminal.
//
// Terminals report key presses but never key releases, and modifiers
// only as flags on each press. Terminal reconciles both through a
// keychord.AutoRelease so engines see the same down/up stream a
// browser host would produce.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord"
)

// Terminal owns a tcell screen and feeds its key events into the
// process dispatcher.
type Terminal struct {
	screen tcell.Screen
	ar     *keychord.AutoRelease
	target keychord.Target
	gap    time.Duration

	mu      sync.Mutex
	resize  func(width, height int)
	stopped bool
	done    chan struct{}
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithTarget sets the target synthesized events originate from. The
// default is the window.
func WithTarget(t keychord.Target) Option {
	return func(term *Terminal) {
		term.target = t
	}
}

// WithReleaseGap sets the idle window after which a pressed key is
// considered released.
func WithReleaseGap(d time.Duration) Option {
	return func(term *Terminal) {
		term.gap = d
	}
}

// NewTerminal creates a terminal host on a new tcell screen.
func NewTerminal(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, opts...), nil
}

// NewTerminalWithScreen creates a terminal host on the given screen.
// Tests use this with a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen, opts ...Option) *Terminal {
	t := &Terminal{
		screen: screen,
		gap:    keychord.DefaultReleaseGap,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.ar = keychord.NewAutoRelease(t.target, t.gap)
	return t
}

// Init initializes the screen and enables focus reporting.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableFocus()
	return nil
}

// Fini restores the terminal.
func (t *Terminal) Fini() {
	t.screen.Fini()
}

// Screen exposes the underlying screen for drawing.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// OnResize registers a callback for terminal resize events.
func (t *Terminal) OnResize(fn func(width, height int)) {
	t.mu.Lock()
	t.resize = fn
	t.mu.Unlock()
}

// Run polls the screen until ctx is canceled or Stop is called. Key
// events are translated and pressed through the AutoRelease; focus loss
// dispatches a window blur.
func (t *Terminal) Run(ctx context.Context) error {
	events := t.startPolling()

	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.handleEvent(ev)
		}
	}
}

// Stop ends Run and releases all synthesized key state. The screen is
// left alive; the caller owns Fini. PollEvent may stay blocked until
// the screen is finalized.
func (t *Terminal) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	close(t.done)
	t.mu.Unlock()

	t.ar.Close()
}

// startPolling pumps screen events into a channel. PollEvent is
// blocking; a finalized screen returns nil and ends the pump.
func (t *Terminal) startPolling() <-chan tcell.Event {
	events := make(chan tcell.Event, 64)

	go func() {
		defer close(events)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-t.done:
				return
			}
		}
	}()

	return events
}

// handleEvent routes a single tcell event.
func (t *Terminal) handleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		name, mods, ok := translateKey(e)
		if !ok {
			return
		}
		t.ar.SetModifiers(mods...)
		t.ar.Press(name)

	case *tcell.EventFocus:
		if !e.Focused {
			t.ar.Blur()
		}

	case *tcell.EventResize:
		w, h := e.Size()
		t.screen.Sync()
		t.mu.Lock()
		fn := t.resize
		t.mu.Unlock()
		if fn != nil {
			fn(w, h)
		}
	}
}
