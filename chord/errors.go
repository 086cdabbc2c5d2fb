package chord

import "errors"

// ErrEmptyChord is returned by Parse for an empty string or empty token.
var ErrEmptyChord = errors.New("empty chord")
