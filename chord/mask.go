package chord

import "math/bits"

// Mask is a 256-bit key set. Word i holds bits 64*i through 64*i+63.
// Masks are comparable and safe to use as map keys.
type Mask [4]uint64

// BitMask returns a Mask with the single given bit set. Out-of-range
// positions produce the zero Mask.
func BitMask(pos int) Mask {
	var m Mask
	if pos < 0 || pos > 255 {
		return m
	}
	m[pos/64] = 1 << (uint(pos) % 64)
	return m
}

// Or returns the bitwise union of m and n.
func (m Mask) Or(n Mask) Mask {
	for i := range m {
		m[i] |= n[i]
	}
	return m
}

// Add returns the 256-bit sum of m and n, carrying across words and
// discarding overflow past bit 255. For masks with disjoint bits Add and
// Or produce the same result.
func (m Mask) Add(n Mask) Mask {
	var carry uint64
	for i := range m {
		sum, c1 := bits.Add64(m[i], n[i], carry)
		m[i] = sum
		carry = c1
	}
	return m
}

// Has reports whether every bit of n is set in m.
func (m Mask) Has(n Mask) bool {
	for i := range m {
		if m[i]&n[i] != n[i] {
			return false
		}
	}
	return true
}

// Test reports whether the single given bit is set.
func (m Mask) Test(pos int) bool {
	if pos < 0 || pos > 255 {
		return false
	}
	return m[pos/64]&(1<<(uint(pos)%64)) != 0
}

// IsZero reports whether no bits are set.
func (m Mask) IsZero() bool {
	return m == Mask{}
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	n := 0
	for i := range m {
		n += bits.OnesCount64(m[i])
	}
	return n
}

// Bits returns the set bit positions in ascending order.
func (m Mask) Bits() []int {
	out := make([]int, 0, m.Count())
	for i, w := range m {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, i*64+b)
			w &^= 1 << uint(b)
		}
	}
	return out
}
