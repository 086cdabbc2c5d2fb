package chord

import (
	"fmt"
	"strings"
)

// Parse builds a Combo from a chord string like "ctrl+shift+s". Every
// token except the last contributes to the hold half; the last token is
// the press. Tokens are case-insensitive and alias-aware, and surrounding
// spaces are ignored. The literal plus key is spelled "plus". Unknown
// tokens resolve through the fallback rules and never fail; an empty
// string or empty token does.
func Parse(s string) (Combo, error) {
	tokens := strings.Split(s, "+")
	var c Combo
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Combo{}, fmt.Errorf("chord %q: %w", s, ErrEmptyChord)
		}
		bit := BitMask(Bit(tok))
		if i == len(tokens)-1 {
			c.Press = c.Press.Or(bit)
		} else {
			c.Hold = c.Hold.Or(bit)
		}
	}
	return c, nil
}
