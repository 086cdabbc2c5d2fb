package script

import (
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keychord"
)

func newHost(t *testing.T) (*lua.LState, *Host, *keychord.Engine) {
	t.Helper()

	L := lua.NewState()
	t.Cleanup(L.Close)

	e, err := keychord.New(keychord.Config{Label: "scripted"})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	t.Cleanup(e.Destroy)

	return L, Install(L, e), e
}

func TestLuaBind(t *testing.T) {
	L, _, e := newHost(t)

	err := L.DoString(`
		hits = 0
		keychord.bind("ctrl+s", function() hits = hits + 1 end, {label = "Save"})
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	keychord.KeyDown("Control", nil)
	keychord.KeyDown("s", nil)
	keychord.KeyUp("s", nil)
	keychord.KeyUp("Control", nil)

	if got := L.GetGlobal("hits"); got != lua.LNumber(1) {
		t.Errorf("hits = %v, want 1", got)
	}

	bs := e.Bindings()
	if len(bs) != 1 || bs[0].Label != "Save" {
		t.Errorf("Bindings() = %+v, want one labeled Save", bs)
	}
}

func TestLuaBindOptions(t *testing.T) {
	L, _, e := newHost(t)

	err := L.DoString(`
		keychord.bind("x", function() end, {["repeat"] = true, delay_ms = 250})
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	bs := e.Bindings()
	if len(bs) != 1 {
		t.Fatalf("len(Bindings()) = %d, want 1", len(bs))
	}
	if !bs[0].Repeat || bs[0].Delay != 250*time.Millisecond {
		t.Errorf("binding = %+v, want repeat with 250ms delay", bs[0])
	}
}

func TestLuaUnbind(t *testing.T) {
	L, _, _ := newHost(t)

	err := L.DoString(`
		hits = 0
		keychord.bind("x", function() hits = hits + 1 end)
		keychord.unbind("x")
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	keychord.KeyDown("x", nil)
	keychord.KeyUp("x", nil)
	if got := L.GetGlobal("hits"); got != lua.LNumber(0) {
		t.Errorf("hits = %v, want 0 after unbind", got)
	}
}

func TestLuaSequence(t *testing.T) {
	L, _, _ := newHost(t)

	err := L.DoString(`
		hits = 0
		cancel = keychord.sequence("gg", function() hits = hits + 1 end, 1500)
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	tap := func(name string) {
		keychord.KeyDown(name, nil)
		keychord.KeyUp(name, nil)
	}
	tap("g")
	tap("g")
	if got := L.GetGlobal("hits"); got != lua.LNumber(1) {
		t.Errorf("hits = %v, want 1", got)
	}

	if err := L.DoString(`cancel()`); err != nil {
		t.Fatalf("cancel error = %v", err)
	}
	tap("g")
	tap("g")
	if got := L.GetGlobal("hits"); got != lua.LNumber(1) {
		t.Errorf("hits = %v, want 1 after cancel", got)
	}
}

func TestLuaActiveAndLabel(t *testing.T) {
	L, _, e := newHost(t)

	err := L.DoString(`
		was = keychord.is_active()
		keychord.set_active(false)
		now = keychord.is_active()
		who = keychord.label()
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	if L.GetGlobal("was") != lua.LTrue || L.GetGlobal("now") != lua.LFalse {
		t.Errorf("is_active = %v then %v, want true then false",
			L.GetGlobal("was"), L.GetGlobal("now"))
	}
	if got := L.GetGlobal("who"); got != lua.LString("scripted") {
		t.Errorf("label = %v, want scripted", got)
	}
	if e.IsActive() {
		t.Error("engine still active after set_active(false)")
	}
}

func TestLuaBadChordRaises(t *testing.T) {
	L, _, _ := newHost(t)

	err := L.DoString(`
		ok, err = pcall(function() keychord.bind("ctrl++x", function() end) end)
	`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}
	if L.GetGlobal("ok") != lua.LFalse {
		t.Error("bind with a malformed chord did not raise")
	}
	if msg := L.GetGlobal("err").String(); !strings.Contains(msg, "empty chord") {
		t.Errorf("raised %q, want mention of the empty chord", msg)
	}
}

func TestLuaHandlerErrorGoesToOnError(t *testing.T) {
	L, h, _ := newHost(t)

	var got error
	h.OnError = func(err error) { got = err }

	err := L.DoString(`keychord.bind("x", function() error("boom") end)`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	keychord.KeyDown("x", nil)
	keychord.KeyUp("x", nil)

	if got == nil || !strings.Contains(got.Error(), "boom") {
		t.Errorf("OnError got %v, want the boom failure", got)
	}
}

func TestLuaHandlerErrorPanicsByDefault(t *testing.T) {
	L, _, _ := newHost(t)

	err := L.DoString(`keychord.bind("x", function() error("boom") end)`)
	if err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("handler failure did not panic")
		}
		keychord.KeyUp("x", nil)
	}()
	keychord.KeyDown("x", nil)
}
