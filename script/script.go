// Package script exposes an engine to Lua through a keychord module.
package script

import (
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keychord"
	"github.com/dshills/keychord/binding"
	"github.com/dshills/keychord/chord"
)

// Host connects one engine to one Lua state.
//
// Scripts and key dispatch must run on the goroutine that owns the
// LState. Handlers fired from timers (delayed bindings, synthesized
// releases) are serialized against each other by the host lock.
type Host struct {
	mu sync.Mutex
	L  *lua.LState
	e  *keychord.Engine

	// OnError receives failures raised by Lua handlers. When nil the
	// failure panics out of dispatch.
	OnError func(error)
}

// Install registers the keychord module on L, bound to e:
//
//	keychord.bind("ctrl+s", function() ... end, {label = "Save"})
//	keychord.unbind("ctrl+s")
//	cancel = keychord.sequence("gg", function() ... end, 1500)
//	keychord.set_active(false)
//	keychord.is_active()
//	keychord.label()
//
// bind accepts an options table with label, repeat and delay_ms.
// sequence returns a function that unregisters the sequence.
func Install(L *lua.LState, e *keychord.Engine) *Host {
	h := &Host{L: L, e: e}
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"bind":       h.bind,
		"unbind":     h.unbind,
		"sequence":   h.sequence,
		"set_active": h.setActive,
		"is_active":  h.isActive,
		"label":      h.label,
	})
	L.SetGlobal("keychord", mod)
	return h
}

func (h *Host) bind(L *lua.LState) int {
	text := L.CheckString(1)
	fn := L.CheckFunction(2)

	combo, err := chord.Parse(text)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}

	b := binding.Binding{Combo: combo, Handler: h.handler(fn)}
	if opts := L.OptTable(3, nil); opts != nil {
		if label, ok := opts.RawGetString("label").(lua.LString); ok {
			b.Label = string(label)
		}
		if repeat, ok := opts.RawGetString("repeat").(lua.LBool); ok {
			b.Repeat = bool(repeat)
		}
		if ms, ok := opts.RawGetString("delay_ms").(lua.LNumber); ok {
			b.Delay = time.Duration(ms) * time.Millisecond
		}
	}

	if err := h.e.Bind(b); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (h *Host) unbind(L *lua.LState) int {
	text := L.CheckString(1)

	combo, err := chord.Parse(text)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	h.e.Unbind(combo)
	return 0
}

func (h *Host) sequence(L *lua.LState) int {
	text := L.CheckString(1)
	fn := L.CheckFunction(2)

	var opts []keychord.SequenceOption
	if ms := L.OptNumber(3, 0); ms > 0 {
		opts = append(opts, keychord.WithTimeout(time.Duration(ms)*time.Millisecond))
	}

	sub, err := h.e.Sequence(text, h.handler(fn), opts...)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(L.NewFunction(func(*lua.LState) int {
		sub.Unsubscribe()
		return 0
	}))
	return 1
}

func (h *Host) setActive(L *lua.LState) int {
	h.e.SetActive(L.CheckBool(1))
	return 0
}

func (h *Host) isActive(L *lua.LState) int {
	L.Push(lua.LBool(h.e.IsActive()))
	return 1
}

func (h *Host) label(L *lua.LState) int {
	L.Push(lua.LString(h.e.Label()))
	return 1
}

// handler wraps a Lua function as a binding handler. The callback runs
// via PCall under the host lock; failures go to OnError or panic.
func (h *Host) handler(fn *lua.LFunction) binding.Handler {
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		h.L.Push(fn)
		if err := h.L.PCall(0, 0, nil); err != nil {
			if h.OnError != nil {
				h.OnError(err)
				return
			}
			panic(err)
		}
	}
}
