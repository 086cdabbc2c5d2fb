package chord

import "testing"

func TestHoldPressConstructors(t *testing.T) {
	c := Hold("ctrl", "shift").Or(Press("s"))

	if !c.Hold.Test(Bit("Control")) || !c.Hold.Test(Bit("Shift")) {
		t.Errorf("hold half = %v, want Control and Shift set", c.Hold.Bits())
	}
	if c.Hold.Count() != 2 {
		t.Errorf("hold half has %d bits, want 2", c.Hold.Count())
	}
	if !c.Press.Test(Bit("s")) || c.Press.Count() != 1 {
		t.Errorf("press half = %v, want only s", c.Press.Bits())
	}
}

func TestPressAlternatives(t *testing.T) {
	c := Press("o", "p")

	if c.Press.Count() != 2 {
		t.Errorf("press half has %d bits, want 2", c.Press.Count())
	}
	if !c.Press.Test(Bit("o")) || !c.Press.Test(Bit("p")) {
		t.Errorf("press half = %v, want o and p", c.Press.Bits())
	}
}

func TestKeyStroke(t *testing.T) {
	s := Key("ctrl")

	if !s.Hold.Hold.Test(Bit("Control")) || !s.Hold.Press.IsZero() {
		t.Errorf("Key(ctrl).Hold = %+v, want hold-only Control", s.Hold)
	}
	if !s.Press.Press.Test(Bit("Control")) || !s.Press.Hold.IsZero() {
		t.Errorf("Key(ctrl).Press = %+v, want press-only Control", s.Press)
	}

	combined := Key("ctrl").Hold.Or(Key("s").Press)
	if combined != Hold("ctrl").Or(Press("s")) {
		t.Errorf("stroke composition = %+v, want Hold(ctrl)|Press(s)", combined)
	}
}

func TestComboAsMapKey(t *testing.T) {
	m := map[Combo]string{
		Hold("ctrl").Or(Press("s")): "save",
		Press("Escape"):             "cancel",
	}

	if got := m[Hold("control").Or(Press("S"))]; got != "save" {
		t.Errorf("lookup by alias-built combo = %q, want %q", got, "save")
	}
	if got := m[Press("esc")]; got != "cancel" {
		t.Errorf("lookup Press(esc) = %q, want %q", got, "cancel")
	}
}

func TestComboAddEqualsOr(t *testing.T) {
	a := Hold("ctrl")
	b := Press("s")

	if a.Add(b) != a.Or(b) {
		t.Errorf("Add = %+v, Or = %+v", a.Add(b), a.Or(b))
	}
}

func TestAnySentinels(t *testing.T) {
	if !AnyPress.Press.Test(AnyBit) || AnyPress.Press.Count() != 1 || !AnyPress.Hold.IsZero() {
		t.Errorf("AnyPress = %+v", AnyPress)
	}
	if !AnyHold.Hold.Test(AnyBit) || AnyHold.Hold.Count() != 1 || !AnyHold.Press.IsZero() {
		t.Errorf("AnyHold = %+v", AnyHold)
	}
	if Press("any") != AnyPress {
		t.Errorf("Press(any) = %+v, want AnyPress", Press("any"))
	}
}

func TestComboHas(t *testing.T) {
	full := Hold("ctrl", "shift").Or(Press("s"))

	if !full.Has(Hold("ctrl")) {
		t.Error("Has(hold subset) = false")
	}
	if !full.Has(Press("s")) {
		t.Error("Has(press subset) = false")
	}
	if full.Has(Hold("alt")) {
		t.Error("Has(absent hold) = true")
	}
}
