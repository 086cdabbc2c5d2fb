package keychord

import "github.com/dshills/keychord/chord"

// ConflictKind classifies advisory conflict reports.
type ConflictKind int

const (
	// ConflictOverwrite indicates a new binding took index entries from
	// an existing one.
	ConflictOverwrite ConflictKind = iota

	// ConflictSequence indicates a sequence equals an existing one or is
	// in a suffix relation with it; first-match-wins makes one of the
	// two unreachable.
	ConflictSequence
)

// String returns the conflict kind name.
func (k ConflictKind) String() string {
	switch k {
	case ConflictOverwrite:
		return "overwrite"
	case ConflictSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Conflict describes a registration that collides with an earlier one.
// Conflicts are advisory: registration proceeds last-write-wins whether
// or not anyone listens.
type Conflict struct {
	// Kind is the collision class.
	Kind ConflictKind

	// Combo is the new binding's chord for overwrite conflicts.
	Combo chord.Combo

	// Sequence is the new text for sequence conflicts.
	Sequence string

	// Existing names what the registration collides with: the displaced
	// binding's label (or chord) or the conflicting sequence text.
	Existing string
}
