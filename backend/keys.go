package backend

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// namedKeys maps tcell named keys to engine key names. The low control
// codes double as the ctrl-letter family, so any entry here wins over
// the ctrl-range translation below: ctrl+h arrives as Backspace, ctrl+i
// as Tab, ctrl+m as Enter, exactly as terminals report them.
var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyEscape:     "Escape",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyPrint:      "PrintScreen",
	tcell.KeyPause:      "Pause",
}

// translateKey resolves a tcell key event to an engine key name plus
// the full modifier name set, folding in modifiers the key itself
// implies (the ctrl-letter family, backtab).
func translateKey(ev *tcell.EventKey) (string, []string, bool) {
	var name string
	var ctrl, shift bool

	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		name = string(ev.Rune())
	case namedKeys[k] != "":
		name = namedKeys[k]
	case k >= tcell.KeyF1 && k <= tcell.KeyF64:
		name = fmt.Sprintf("F%d", int(k-tcell.KeyF1)+1)
	case k == tcell.KeyBacktab:
		name, shift = "Tab", true
	case k == tcell.KeyCtrlSpace:
		name, ctrl = "Space", true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		name, ctrl = string(rune('a'+int(k-tcell.KeyCtrlA))), true
	default:
		return "", nil, false
	}

	m := ev.Modifiers()
	var mods []string
	if ctrl || m&tcell.ModCtrl != 0 {
		mods = append(mods, "Control")
	}
	if shift || m&tcell.ModShift != 0 {
		mods = append(mods, "Shift")
	}
	if m&tcell.ModAlt != 0 {
		mods = append(mods, "Alt")
	}
	if m&tcell.ModMeta != 0 {
		mods = append(mods, "Meta")
	}
	return name, mods, true
}
