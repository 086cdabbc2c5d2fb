package keymap

import "errors"

var (
	// ErrUnknownAction indicates a definition names an action the
	// caller supplied no handler for.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidJSON indicates keybinding JSON that is not an array of
	// objects.
	ErrInvalidJSON = errors.New("keybindings must be a json array")
)
