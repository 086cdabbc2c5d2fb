package keymap

import (
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ParseJSON parses VS Code style keybindings:
//
//	[{"key": "ctrl+s", "command": "save"}]
//
// Optional per-entry fields label, repeat and delay_ms are honored.
// Sequences have no JSON form.
func ParseJSON(data []byte) (*Map, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, ErrInvalidJSON
	}

	m := &Map{}
	doc.ForEach(func(_, item gjson.Result) bool {
		def := BindingDef{
			Keys:   item.Get("key").String(),
			Action: item.Get("command").String(),
			Label:  item.Get("label").String(),
			Repeat: item.Get("repeat").Bool(),
		}
		if ms := item.Get("delay_ms"); ms.Exists() {
			def.Delay = time.Duration(ms.Int()) * time.Millisecond
		}
		m.Bindings = append(m.Bindings, def)
		return true
	})
	return m, nil
}

// JSON renders the bindings in the VS Code keybindings shape. Sequences
// are skipped.
func (m *Map) JSON() ([]byte, error) {
	out := []byte("[]")
	for _, def := range m.Bindings {
		entry := map[string]any{
			"key":     def.Keys,
			"command": def.Action,
		}
		if def.Label != "" {
			entry["label"] = def.Label
		}
		if def.Repeat {
			entry["repeat"] = true
		}
		if def.Delay > 0 {
			entry["delay_ms"] = def.Delay.Milliseconds()
		}
		var err error
		out, err = sjson.SetBytes(out, "-1", entry)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
