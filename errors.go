package keychord

import (
	"errors"

	"github.com/dshills/keychord/sequence"
)

var (
	// ErrNilHandler is returned when a binding or sequence with a
	// non-zero trigger has no handler.
	ErrNilHandler = errors.New("handler is required")

	// ErrDestroyed is returned by mutating calls on a destroyed engine.
	ErrDestroyed = errors.New("engine destroyed")

	// ErrEmptySequence is returned for an empty sequence text.
	ErrEmptySequence = sequence.ErrEmptyText
)
