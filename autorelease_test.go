package keychord

import (
	"testing"
	"time"

	"github.com/dshills/keychord/binding"
	"github.com/dshills/keychord/chord"
)

// waitCombo drains updates until the wanted mask appears.
func waitCombo(t *testing.T, updates <-chan chord.Combo, want chord.Combo) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case c := <-updates:
			if c == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for mask %v", want)
		}
	}
}

func TestPressSynthesizesRelease(t *testing.T) {
	fired := 0
	updates := make(chan chord.Combo, 32)
	e := newEngine(t, Config{})
	e.Bind(bindOf(chord.Press("x"), &fired))
	e.OnUpdate(func(c chord.Combo) { updates <- c })

	ar := NewAutoRelease(nil, 30*time.Millisecond)
	defer ar.Close()

	if !ar.Press("x") {
		t.Error("Press(x) = false, want consumed")
	}
	waitCombo(t, updates, chord.Combo{})

	if !ar.Press("x") {
		t.Error("second Press(x) = false after the synthesized release")
	}
	if fired != 2 {
		t.Errorf("fired = %d, want 2 (release happened in between)", fired)
	}
}

func TestPressesWithinGapAreRepeats(t *testing.T) {
	fired, repeated := 0, 0
	e := newEngine(t, Config{})
	e.Bind(bindOf(chord.Press("x"), &fired))
	e.Bind(binding.Binding{Combo: chord.Press("y"), Handler: func() { repeated++ }, Repeat: true})

	ar := NewAutoRelease(nil, time.Minute)
	defer ar.Close()

	ar.Press("x")
	ar.Press("x")
	ar.Press("x")
	if fired != 1 {
		t.Errorf("fired = %d, want 1 (later presses are repeats)", fired)
	}

	ar.Press("y")
	ar.Press("y")
	if repeated != 2 {
		t.Errorf("repeated = %d, want 2 for a repeat binding", repeated)
	}
}

func TestSetModifiersReconciles(t *testing.T) {
	saved, plain := 0, 0
	updates := make(chan chord.Combo, 32)
	e := newEngine(t, Config{})
	e.Bind(bindOf(chord.Hold("ctrl").Or(chord.Press("s")), &saved))
	e.Bind(bindOf(chord.Press("d"), &plain))
	e.OnUpdate(func(c chord.Combo) { updates <- c })

	ar := NewAutoRelease(nil, 40*time.Millisecond)
	defer ar.Close()

	ar.SetModifiers("Control")
	ar.Press("s")
	if saved != 1 {
		t.Errorf("saved = %d, want 1 with ctrl reported held", saved)
	}
	waitCombo(t, updates, chord.Hold("ctrl"))

	ar.Press("d")
	if plain != 0 {
		t.Errorf("plain = %d, want 0 while ctrl is held", plain)
	}

	ar.SetModifiers()
	waitCombo(t, updates, chord.Combo{})

	ar.Press("d")
	if plain != 1 {
		t.Errorf("plain = %d, want 1 after ctrl was released", plain)
	}
}

func TestBlurDropsSynthesizedState(t *testing.T) {
	var last chord.Combo
	e := newEngine(t, Config{})
	e.OnUpdate(func(c chord.Combo) { last = c })

	ar := NewAutoRelease(nil, time.Minute)
	defer ar.Close()

	ar.SetModifiers("Control", "Alt")
	if want := chord.Hold("ctrl").Or(chord.Press("alt")); last != want {
		t.Errorf("mask = %v, want %v", last, want)
	}

	ar.Blur()
	if !last.IsZero() {
		t.Errorf("mask after Blur = %v, want zero", last)
	}

	// Blur forgot the held modifiers, so the next report presses fresh.
	ar.SetModifiers("Control")
	if want := chord.Press("Control"); last != want {
		t.Errorf("mask after re-report = %v, want %v", last, want)
	}
}

func TestCloseStopsSynthesis(t *testing.T) {
	fired := 0
	e := newEngine(t, Config{})
	e.Bind(bindOf(chord.Press("x"), &fired))

	ar := NewAutoRelease(nil, time.Minute)
	ar.SetModifiers("Control")
	ar.Close()
	ar.Close()

	if ar.Press("x") {
		t.Error("Press after Close = true, want false")
	}
	if fired != 0 {
		t.Errorf("fired = %d, want 0 after Close", fired)
	}

	// The closing blur released the synthesized ctrl hold.
	KeyDown("x", nil)
	if fired != 1 {
		t.Errorf("fired = %d, want 1 once the closing blur cleared holds", fired)
	}
	KeyUp("x", nil)
}

func TestSetTarget(t *testing.T) {
	pane := NewNode(nil, "pane")
	fired := 0
	e := newEngine(t, Config{Scope: pane})
	e.Bind(bindOf(chord.Press("x"), &fired))

	ar := NewAutoRelease(nil, time.Minute)
	defer ar.Close()

	ar.Press("x")
	if fired != 0 {
		t.Errorf("fired = %d, want 0 for a window-target press", fired)
	}

	ar.SetTarget(pane)
	ar.Press("x")
	if fired != 1 {
		t.Errorf("fired = %d, want 1 after targeting the pane", fired)
	}
}

func TestReleaseGapDefault(t *testing.T) {
	ar := NewAutoRelease(nil, 0)
	defer ar.Close()
	if ar.gap != DefaultReleaseGap {
		t.Errorf("gap = %v, want %v", ar.gap, DefaultReleaseGap)
	}
}
