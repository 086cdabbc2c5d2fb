package chord

// Combo is a chord: the keys that must already be held down and the key
// (or keys) whose press completes it. Combos are comparable and are used
// directly as registry map keys.
type Combo struct {
	Hold  Mask
	Press Mask
}

// AnyPress matches any pressed key under a given hold mask. AnyHold is the
// reserved hold-half sentinel.
var (
	AnyPress = Combo{Press: BitMask(AnyBit)}
	AnyHold  = Combo{Hold: BitMask(AnyBit)}
)

// Or returns the union of both halves.
func (c Combo) Or(d Combo) Combo {
	return Combo{Hold: c.Hold.Or(d.Hold), Press: c.Press.Or(d.Press)}
}

// Add sums both halves with carry. Interchangeable with Or when the
// operands share no bits.
func (c Combo) Add(d Combo) Combo {
	return Combo{Hold: c.Hold.Add(d.Hold), Press: c.Press.Add(d.Press)}
}

// Has reports whether every bit of d is present in c.
func (c Combo) Has(d Combo) bool {
	return c.Hold.Has(d.Hold) && c.Press.Has(d.Press)
}

// IsZero reports whether both halves are empty.
func (c Combo) IsZero() bool {
	return c.Hold.IsZero() && c.Press.IsZero()
}

// Hold returns a combo requiring the named keys to be held.
func Hold(names ...string) Combo {
	var m Mask
	for _, n := range names {
		m = m.Or(BitMask(Bit(n)))
	}
	return Combo{Hold: m}
}

// Press returns a combo completed by pressing any one of the named keys.
// Multiple names build a multi-bit press half, which binding registries
// explode into one entry per alternative.
func Press(names ...string) Combo {
	var m Mask
	for _, n := range names {
		m = m.Or(BitMask(Bit(n)))
	}
	return Combo{Press: m}
}

// Stroke carries both chord forms of a single key.
type Stroke struct {
	Hold  Combo
	Press Combo
}

// Key returns the hold and press forms of one key for fluent composition:
//
//	save := chord.Key("ctrl").Hold.Or(chord.Key("s").Press)
func Key(name string) Stroke {
	bit := BitMask(Bit(name))
	return Stroke{
		Hold:  Combo{Hold: bit},
		Press: Combo{Press: bit},
	}
}
