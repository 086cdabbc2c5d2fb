package chord

import "testing"

func TestComboString(t *testing.T) {
	tests := []struct {
		combo Combo
		want  string
	}{
		{Hold("ctrl").Or(Press("s")), "Control+s"},
		{Hold("ctrl", "shift").Or(Press("s")), "Control+Shift+s"},
		{Hold("meta", "alt", "shift", "ctrl").Or(Press("x")), "Control+Shift+Alt+Meta+x"},
		{Press("s"), "s"},
		{Hold("ctrl").Or(AnyPress), "Control+any"},
		{Hold("ctrl").Or(Press("o", "p")), "Control+o+p"},
		{Hold("ctrl").Or(Press("space")), "Control+Space"},
		{Press("Enter"), "Enter"},
		{Combo{}, ""},
	}

	for _, tt := range tests {
		if got := tt.combo.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Combo
	}{
		{"ctrl+s", Hold("ctrl").Or(Press("s"))},
		{"CTRL+S", Hold("ctrl").Or(Press("s"))},
		{"ctrl + s", Hold("ctrl").Or(Press("s"))},
		{"ctrl+shift+p", Hold("ctrl", "shift").Or(Press("p"))},
		{"s", Press("s")},
		{"Escape", Press("Escape")},
		{"ctrl+any", Hold("ctrl").Or(AnyPress)},
		{"ctrl+plus", Hold("ctrl").Or(Press("+"))},
		{"cmd+shift+z", Hold("meta", "shift").Or(Press("z"))},
	}

	for _, tt := range tests {
		got, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"", "ctrl+", "+s", "ctrl++s", "  "} {
		if _, err := Parse(spec); err == nil {
			t.Errorf("Parse(%q) error = nil, want error", spec)
		}
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	combos := []Combo{
		Hold("ctrl").Or(Press("s")),
		Hold("ctrl", "shift").Or(Press("p")),
		Press("Escape"),
		Hold("ctrl").Or(AnyPress),
	}

	for _, c := range combos {
		got, err := Parse(c.String())
		if err != nil {
			t.Errorf("Parse(%q) error = %v", c.String(), err)
			continue
		}
		if got != c {
			t.Errorf("Parse(%q) = %+v, want %+v", c.String(), got, c)
		}
	}
}
