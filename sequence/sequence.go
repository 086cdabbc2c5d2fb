// Package sequence detects literal typed strings, like "gg" or ":wq", in
// a stream of key names.
package sequence

import (
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// DefaultTimeout is the idle window before the typed buffer resets.
const DefaultTimeout = time.Second

// minBufferRunes is the floor for the rolling buffer length.
const minBufferRunes = 50

// Handler runs when a registered sequence has been typed.
type Handler func()

// ErrEmptyText is returned by Add for an empty sequence.
var ErrEmptyText = errors.New("empty sequence text")

type entry struct {
	id      uint64
	text    []rune // case-folded
	handler Handler
	timeout time.Duration
}

// Detector matches registered sequences against fed key names.
//
// Only single-rune names enter the rolling buffer; named keys like
// "Shift" or "ArrowUp" pass through unseen. Matching is case-insensitive
// and scans entries in registration order; the first entry whose text is
// a suffix of the buffer fires and resets the buffer, so one keystroke
// never completes two sequences. The buffer also resets after an idle
// timeout, the largest timeout among registered entries.
type Detector struct {
	mu      sync.Mutex
	entries []*entry
	buffer  []rune
	nextID  uint64
	timer   *time.Timer
}

// NewDetector returns an empty detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Add registers a sequence and returns its id. A non-positive timeout
// means DefaultTimeout.
func (d *Detector) Add(text string, h Handler, timeout time.Duration) (uint64, error) {
	if text == "" {
		return 0, ErrEmptyText
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.entries = append(d.entries, &entry{
		id:      d.nextID,
		text:    []rune(strings.ToLower(text)),
		handler: h,
		timeout: timeout,
	})
	return d.nextID, nil
}

// Remove unregisters the sequence with the given id and reports whether
// it was present.
func (d *Detector) Remove(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, e := range d.entries {
		if e.id == id {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Feed processes one keydown name. If a sequence completes, its handler
// runs after the detector lock is released; handlers may re-enter.
func (d *Detector) Feed(name string) {
	if utf8.RuneCountInString(name) != 1 {
		return
	}
	r, _ := utf8.DecodeRuneInString(strings.ToLower(name))

	d.mu.Lock()
	d.buffer = append(d.buffer, r)
	if limit := d.limitLocked(); len(d.buffer) > limit {
		d.buffer = d.buffer[len(d.buffer)-limit:]
	}
	var h Handler
	for _, e := range d.entries {
		if hasSuffix(d.buffer, e.text) {
			h = e.handler
			d.buffer = d.buffer[:0]
			break
		}
	}
	d.resetTimerLocked()
	d.mu.Unlock()

	if h != nil {
		h()
	}
}

// Reset clears the typed buffer and stops the idle timer.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buffer = d.buffer[:0]
	d.stopTimerLocked()
}

// Clear unregisters every sequence and resets the buffer.
func (d *Detector) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = nil
	d.buffer = d.buffer[:0]
	d.stopTimerLocked()
}

// Sequences returns the registered texts in registration order.
func (d *Detector) Sequences() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.entries))
	for i, e := range d.entries {
		out[i] = string(e.text)
	}
	return out
}

// Len returns the number of registered sequences.
func (d *Detector) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// limitLocked returns the rolling buffer cap. Callers hold the lock.
func (d *Detector) limitLocked() int {
	limit := minBufferRunes
	for _, e := range d.entries {
		if len(e.text) > limit {
			limit = len(e.text)
		}
	}
	return limit
}

// resetTimerLocked restarts the idle timer at the largest registered
// timeout; a shorter per-entry timeout cannot shrink the shared buffer's
// window without cutting longer sequences off. Callers hold the lock.
func (d *Detector) resetTimerLocked() {
	d.stopTimerLocked()
	var timeout time.Duration
	for _, e := range d.entries {
		if e.timeout > timeout {
			timeout = e.timeout
		}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d.timer = time.AfterFunc(timeout, d.handleTimeout)
}

// stopTimerLocked stops the idle timer. Callers hold the lock.
func (d *Detector) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// handleTimeout fires when no rune arrived within the idle window.
func (d *Detector) handleTimeout() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buffer = d.buffer[:0]
	d.timer = nil
}

func hasSuffix(buf, text []rune) bool {
	if len(text) == 0 || len(text) > len(buf) {
		return false
	}
	off := len(buf) - len(text)
	for i, r := range text {
		if buf[off+i] != r {
			return false
		}
	}
	return true
}
