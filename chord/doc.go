// Package chord maps key names to bit positions and encodes key
// combinations as fixed-size bit masks.
//
// # Key identity
//
// Every key name resolves to a bit in [0, 256) through Bit. The mapping is
// pure and total: named keys (modifiers, navigation, function keys) have
// fixed positions disjoint from printable characters, single printable
// ASCII characters map to their character code with letters case-folded,
// and everything else hashes into a lossy fallback bucket. Typos therefore
// resolve to a bit rather than an error; they just never match a real key.
//
// # Combos
//
// A Combo is a pair of 256-bit halves: Hold for keys that must already be
// down, Press for the key whose arrival completes the chord. Combos are
// plain comparable values, so they index maps directly:
//
//	save := chord.Hold("ctrl").Or(chord.Press("s"))
//	open := chord.Hold("ctrl").Or(chord.Press("o", "p")) // either key
//
// Bit 255 of each half is a sentinel never assigned to a real key; the
// press-half sentinel (AnyPress) is the catch-all used by dispatchers as a
// fallback probe.
//
// Combining with Add instead of Or is equivalent while the operands share
// no bits, which is always the case for distinct single keys.
package chord
