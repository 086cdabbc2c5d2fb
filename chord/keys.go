package chord

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Bit positions for named keys. Printable ASCII keys use their character
// code directly, so named keys occupy the ASCII control range, DEL, and the
// band above the fallback bucket.
const (
	bitBackspace   = 8
	bitTab         = 9
	bitNumLock     = 10
	bitScrollLock  = 11
	bitPrintScreen = 12
	bitEnter       = 13
	bitContextMenu = 14
	bitPause       = 15
	bitShift       = 16
	bitControl     = 17
	bitAlt         = 18
	bitMeta        = 19
	bitCapsLock    = 20
	bitInsert      = 21
	bitHome        = 22
	bitEnd         = 23
	bitPageUp      = 24
	bitPageDown    = 25
	bitEscape      = 27
	bitArrowLeft   = 28
	bitArrowUp     = 29
	bitArrowRight  = 30
	bitArrowDown   = 31
	bitDelete      = 127
	bitF1          = 228

	// AnyBit is the position of the catch-all sentinel. It is never
	// produced for a real key name.
	AnyBit = 255

	// Names that resolve through neither the static table nor the
	// printable-ASCII rule hash into [bucketBase, bucketBase+bucketSize).
	bucketBase = 128
	bucketSize = 100
)

// namedKeys assigns fixed bit positions to the named keys. The display
// casing here is what Name and Combo.String render.
var namedKeys = []struct {
	name string
	bit  int
}{
	{"Backspace", bitBackspace},
	{"Tab", bitTab},
	{"NumLock", bitNumLock},
	{"ScrollLock", bitScrollLock},
	{"PrintScreen", bitPrintScreen},
	{"Enter", bitEnter},
	{"ContextMenu", bitContextMenu},
	{"Pause", bitPause},
	{"Shift", bitShift},
	{"Control", bitControl},
	{"Alt", bitAlt},
	{"Meta", bitMeta},
	{"CapsLock", bitCapsLock},
	{"Insert", bitInsert},
	{"Home", bitHome},
	{"End", bitEnd},
	{"PageUp", bitPageUp},
	{"PageDown", bitPageDown},
	{"Escape", bitEscape},
	{"ArrowLeft", bitArrowLeft},
	{"ArrowUp", bitArrowUp},
	{"ArrowRight", bitArrowRight},
	{"ArrowDown", bitArrowDown},
	{"Space", ' '},
	{"Delete", bitDelete},
	{"any", AnyBit},
}

// keyAliases maps alternate spellings (lowercase) to canonical names.
var keyAliases = map[string]string{
	"ctrl":     "control",
	"cmd":      "meta",
	"command":  "meta",
	"win":      "meta",
	"super":    "meta",
	"option":   "alt",
	"opt":      "alt",
	"esc":      "escape",
	"return":   "enter",
	"cr":       "enter",
	"bs":       "backspace",
	"del":      "delete",
	"ins":      "insert",
	"pgup":     "pageup",
	"pgdn":     "pagedown",
	"pgdown":   "pagedown",
	"up":       "arrowup",
	"down":     "arrowdown",
	"left":     "arrowleft",
	"right":    "arrowright",
	"menu":     "contextmenu",
	"spacebar": "space",
	"plus":     "+",
	"minus":    "-",
	"comma":    ",",
	"period":   ".",
	"dot":      ".",
	"slash":    "/",
	"star":     "*",
}

// keyBits maps lowercase canonical names to bit positions.
var keyBits = map[string]int{}

// bitNames is the inverse table. Printable-ASCII identities are filled
// first so that named entries override them (bit 32 renders "Space").
var bitNames [256]string

func init() {
	for c := ' '; c <= '~'; c++ {
		bitNames[c] = string(c)
	}
	for _, k := range namedKeys {
		keyBits[strings.ToLower(k.name)] = k.bit
		bitNames[k.bit] = k.name
	}
	for i := 0; i < 24; i++ {
		name := "F" + strconv.Itoa(i+1)
		keyBits[strings.ToLower(name)] = bitF1 + i
		bitNames[bitF1+i] = name
	}
}

// Bit returns the bit position for a key name. The mapping is total and
// deterministic: aliases and case variants resolve to the same position,
// single printable-ASCII characters map to their character code, and any
// other name hashes into the lossy fallback bucket.
func Bit(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	if canon, ok := keyAliases[name]; ok {
		name = canon
	}
	if bit, ok := keyBits[name]; ok {
		return bit
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if r >= ' ' && r <= '~' {
			return int(r)
		}
	}
	r, _ := utf8.DecodeRuneInString(name)
	return int(r)%bucketSize + bucketBase
}

// Name returns the descriptive name for a bit position: the named-key
// spelling where one exists, the printable character otherwise. Positions
// with no assigned key render as "key<bit>" and do not round-trip through
// Bit.
func Name(bit int) string {
	if bit >= 0 && bit < len(bitNames) && bitNames[bit] != "" {
		return bitNames[bit]
	}
	return "key" + strconv.Itoa(bit)
}

// isModifier reports whether bit is one of the four modifier positions.
func isModifier(bit int) bool {
	return bit == bitControl || bit == bitShift || bit == bitAlt || bit == bitMeta
}

// modifierOrder is the canonical rendering order for modifiers.
var modifierOrder = [...]int{bitControl, bitShift, bitAlt, bitMeta}
