package chord

import "testing"

func TestBitNamedKeys(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"Backspace", 8},
		{"Tab", 9},
		{"Enter", 13},
		{"Shift", 16},
		{"Control", 17},
		{"Alt", 18},
		{"Meta", 19},
		{"CapsLock", 20},
		{"Escape", 27},
		{"ArrowLeft", 28},
		{"ArrowUp", 29},
		{"ArrowRight", 30},
		{"ArrowDown", 31},
		{"Space", 32},
		{"Delete", 127},
		{"F1", 228},
		{"F12", 239},
		{"F24", 251},
		{"any", AnyBit},
	}

	for _, tt := range tests {
		if got := Bit(tt.name); got != tt.want {
			t.Errorf("Bit(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestBitAliases(t *testing.T) {
	tests := []struct {
		alias     string
		canonical string
	}{
		{"ctrl", "Control"},
		{"CTRL", "Control"},
		{"control", "Control"},
		{"cmd", "Meta"},
		{"win", "Meta"},
		{"super", "Meta"},
		{"option", "Alt"},
		{"esc", "Escape"},
		{"return", "Enter"},
		{"del", "Delete"},
		{"pgup", "PageUp"},
		{"up", "ArrowUp"},
		{"left", "ArrowLeft"},
		{"spacebar", "Space"},
		{" space ", "Space"},
		{"plus", "+"},
	}

	for _, tt := range tests {
		if got, want := Bit(tt.alias), Bit(tt.canonical); got != want {
			t.Errorf("Bit(%q) = %d, want Bit(%q) = %d", tt.alias, got, tt.canonical, want)
		}
	}
}

func TestBitPrintableASCII(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"a", 97},
		{"A", 97}, // letters case-fold
		{"z", 122},
		{"0", 48},
		{"9", 57},
		{"/", 47},
		{"+", 43},
		{" ", 32},
		{"~", 126},
	}

	for _, tt := range tests {
		if got := Bit(tt.name); got != tt.want {
			t.Errorf("Bit(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestBitFallbackBucket(t *testing.T) {
	names := []string{"MediaPlayPause", "VolumeUp", "é", "漢", "NoSuchKey"}

	for _, name := range names {
		got := Bit(name)
		if got < 128 || got >= 228 {
			t.Errorf("Bit(%q) = %d, want bucket position in [128, 228)", name, got)
		}
		if again := Bit(name); again != got {
			t.Errorf("Bit(%q) not deterministic: %d then %d", name, got, again)
		}
	}
}

func TestBitNeverProducesAny(t *testing.T) {
	names := []string{"a", "Z", "Enter", "ctrl", "F24", "MediaPlayPause", "é"}

	for _, name := range names {
		if got := Bit(name); got == AnyBit {
			t.Errorf("Bit(%q) = %d, the sentinel position", name, got)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		bit  int
		want string
	}{
		{32, "Space"}, // named entry wins over the raw character
		{97, "a"},
		{47, "/"},
		{8, "Backspace"},
		{17, "Control"},
		{228, "F1"},
		{251, "F24"},
		{255, "any"},
		{0, "key0"},
		{140, "key140"},
	}

	for _, tt := range tests {
		if got := Name(tt.bit); got != tt.want {
			t.Errorf("Name(%d) = %q, want %q", tt.bit, got, tt.want)
		}
	}
}

func TestNameBitRoundTrip(t *testing.T) {
	names := []string{"a", "/", "Enter", "Control", "Space", "F7", "ArrowDown"}

	for _, name := range names {
		if got := Name(Bit(name)); got != name {
			t.Errorf("Name(Bit(%q)) = %q", name, got)
		}
	}
}
