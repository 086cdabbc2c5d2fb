package chord

import (
	"sort"
	"strings"
)

// String renders the combo as a "+"-joined key list: modifiers first in
// canonical order (Control, Shift, Alt, Meta), then the remaining keys
// alphabetically. A key present in both halves renders once. The zero
// combo renders as "".
func (c Combo) String() string {
	union := c.Hold.Or(c.Press)
	if union.IsZero() {
		return ""
	}
	var parts []string
	for _, bit := range modifierOrder {
		if union.Test(bit) {
			parts = append(parts, bitNames[bit])
		}
	}
	var rest []string
	for _, bit := range union.Bits() {
		if !isModifier(bit) {
			rest = append(rest, Name(bit))
		}
	}
	sort.Strings(rest)
	return strings.Join(append(parts, rest...), "+")
}
