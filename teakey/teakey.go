// Package teakey feeds Bubble Tea key messages into a keychord
// AutoRelease, so programs built on tea.Program share bindings with
// every other attached engine.
//
// Call Dispatch from the model's Update before the message reaches the
// rest of the program:
//
//	case tea.KeyMsg:
//		if teakey.Dispatch(msg, m.keys) {
//			return m, nil
//		}
//
// Focus reporting must be enabled with tea.WithReportFocus for blur
// messages to arrive; without it holds persist until the release gap
// expires.
package teakey

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/keychord"
)

type keyName struct {
	name  string
	ctrl  bool
	shift bool
}

// namedKeys translates key types that carry no rune. The low control
// codes double as the ctrl-letter family, so any entry here wins over
// the ctrl-range translation below: ctrl+i arrives as Tab, ctrl+m as
// Enter, ctrl+? as Backspace.
var namedKeys = map[tea.KeyType]keyName{
	tea.KeyEnter:          {name: "Enter"},
	tea.KeyTab:            {name: "Tab"},
	tea.KeyBackspace:      {name: "Backspace"},
	tea.KeyEscape:         {name: "Escape"},
	tea.KeySpace:          {name: "Space"},
	tea.KeyDelete:         {name: "Delete"},
	tea.KeyInsert:         {name: "Insert"},
	tea.KeyHome:           {name: "Home"},
	tea.KeyEnd:            {name: "End"},
	tea.KeyPgUp:           {name: "PageUp"},
	tea.KeyPgDown:         {name: "PageDown"},
	tea.KeyUp:             {name: "ArrowUp"},
	tea.KeyDown:           {name: "ArrowDown"},
	tea.KeyLeft:           {name: "ArrowLeft"},
	tea.KeyRight:          {name: "ArrowRight"},
	tea.KeyShiftTab:       {name: "Tab", shift: true},
	tea.KeyCtrlAt:         {name: "Space", ctrl: true},
	tea.KeyCtrlUp:         {name: "ArrowUp", ctrl: true},
	tea.KeyCtrlDown:       {name: "ArrowDown", ctrl: true},
	tea.KeyCtrlLeft:       {name: "ArrowLeft", ctrl: true},
	tea.KeyCtrlRight:      {name: "ArrowRight", ctrl: true},
	tea.KeyCtrlHome:       {name: "Home", ctrl: true},
	tea.KeyCtrlEnd:        {name: "End", ctrl: true},
	tea.KeyCtrlPgUp:       {name: "PageUp", ctrl: true},
	tea.KeyCtrlPgDown:     {name: "PageDown", ctrl: true},
	tea.KeyShiftUp:        {name: "ArrowUp", shift: true},
	tea.KeyShiftDown:      {name: "ArrowDown", shift: true},
	tea.KeyShiftLeft:      {name: "ArrowLeft", shift: true},
	tea.KeyShiftRight:     {name: "ArrowRight", shift: true},
	tea.KeyCtrlShiftUp:    {name: "ArrowUp", ctrl: true, shift: true},
	tea.KeyCtrlShiftDown:  {name: "ArrowDown", ctrl: true, shift: true},
	tea.KeyCtrlShiftLeft:  {name: "ArrowLeft", ctrl: true, shift: true},
	tea.KeyCtrlShiftRight: {name: "ArrowRight", ctrl: true, shift: true},
	tea.KeyCtrlShiftHome:  {name: "Home", ctrl: true, shift: true},
	tea.KeyCtrlShiftEnd:   {name: "End", ctrl: true, shift: true},
}

// Dispatch feeds one Bubble Tea message into the release tracker and
// reports whether a binding consumed it. Key messages press through ar;
// blur messages clear its holds. Anything else, including keys with no
// stable name and bracketed paste chunks, dispatches nothing.
func Dispatch(msg tea.Msg, ar *keychord.AutoRelease) bool {
	switch m := msg.(type) {
	case tea.KeyMsg:
		name, mods, ok := translateKey(m)
		if !ok {
			return false
		}
		ar.SetModifiers(mods...)
		return ar.Press(name)
	case tea.BlurMsg:
		ar.Blur()
	}
	return false
}

// translateKey maps a key message to a key name plus modifier names.
func translateKey(msg tea.KeyMsg) (string, []string, bool) {
	var (
		name  string
		ctrl  bool
		shift bool
	)
	k := msg.Type
	switch {
	case k == tea.KeyRunes:
		if msg.Paste || len(msg.Runes) != 1 {
			return "", nil, false
		}
		name = string(msg.Runes[0])
	case namedKeys[k].name != "":
		nk := namedKeys[k]
		name, ctrl, shift = nk.name, nk.ctrl, nk.shift
	case k <= tea.KeyF1 && k >= tea.KeyF20:
		name = "F" + strconv.Itoa(int(tea.KeyF1-k)+1)
	case k >= tea.KeyCtrlA && k <= tea.KeyCtrlZ:
		name = string(rune('a' + int(k-tea.KeyCtrlA)))
		ctrl = true
	default:
		return "", nil, false
	}

	var mods []string
	if ctrl {
		mods = append(mods, "Control")
	}
	if shift {
		mods = append(mods, "Shift")
	}
	if msg.Alt {
		mods = append(mods, "Alt")
	}
	return name, mods, true
}
