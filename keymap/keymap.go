// Package keymap loads declarative keymaps and applies them to engines.
//
// A keymap file names actions; the program supplies the handlers at apply
// time. TOML is the native format. VS Code style keybinding JSON imports
// and exports through the same Map.
package keymap

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keychord"
	"github.com/dshills/keychord/binding"
	"github.com/dshills/keychord/chord"
)

// BindingDef is one chord-to-action entry.
type BindingDef struct {
	// Keys is the chord text, e.g. "ctrl+s".
	Keys string

	// Action names the handler to run.
	Action string

	// Label is an optional display name for the binding.
	Label string

	// Repeat lets the binding fire on key auto-repeat.
	Repeat bool

	// Delay postpones the handler after the chord matches.
	Delay time.Duration
}

// SequenceDef is one typed-text-to-action entry.
type SequenceDef struct {
	// Text is the literal run of keystrokes, e.g. "gg".
	Text string

	// Action names the handler to run.
	Action string

	// Timeout is the idle window for this sequence. Zero means the
	// engine default.
	Timeout time.Duration
}

// Map is a parsed keymap.
type Map struct {
	Label     string
	Bindings  []BindingDef
	Sequences []SequenceDef
}

// Load reads and parses a TOML keymap file.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	return m, nil
}

// Parse parses TOML keymap data.
func Parse(data []byte) (*Map, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	m := &Map{}
	if label, ok := raw["label"].(string); ok {
		m.Label = label
	}
	for _, entry := range tables(raw["binding"]) {
		m.Bindings = append(m.Bindings, parseBindingDef(entry))
	}
	for _, entry := range tables(raw["sequence"]) {
		m.Sequences = append(m.Sequences, parseSequenceDef(entry))
	}
	return m, nil
}

// Apply binds every definition on the engine, resolving action names
// through actions. Unknown actions and unparseable chords fail before
// anything is bound.
func (m *Map) Apply(e *keychord.Engine, actions map[string]binding.Handler) error {
	var missing []string
	for _, def := range m.Bindings {
		if _, ok := actions[def.Action]; !ok {
			missing = append(missing, def.Action)
		}
	}
	for _, def := range m.Sequences {
		if _, ok := actions[def.Action]; !ok {
			missing = append(missing, def.Action)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		missing = slices.Compact(missing)
		return fmt.Errorf("%w: %s", ErrUnknownAction, strings.Join(missing, ", "))
	}

	bindings := make([]binding.Binding, 0, len(m.Bindings))
	for _, def := range m.Bindings {
		combo, err := chord.Parse(def.Keys)
		if err != nil {
			return err
		}
		bindings = append(bindings, binding.Binding{
			Combo:   combo,
			Handler: actions[def.Action],
			Label:   def.Label,
			Repeat:  def.Repeat,
			Delay:   def.Delay,
		})
	}
	if err := e.Bind(bindings...); err != nil {
		return err
	}
	for _, def := range m.Sequences {
		if _, err := e.Sequence(def.Text, actions[def.Action], keychord.WithTimeout(def.Timeout)); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the keymap as TOML.
func (m *Map) Save(path string) error {
	data, err := m.TOML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// TOML renders the keymap as TOML. Optional fields at their zero value
// are omitted.
func (m *Map) TOML() ([]byte, error) {
	doc := map[string]any{}
	if m.Label != "" {
		doc["label"] = m.Label
	}
	if len(m.Bindings) > 0 {
		bindings := make([]map[string]any, 0, len(m.Bindings))
		for _, def := range m.Bindings {
			entry := map[string]any{
				"keys":   def.Keys,
				"action": def.Action,
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
			bindings = append(bindings, entry)
		}
		doc["binding"] = bindings
	}
	if len(m.Sequences) > 0 {
		sequences := make([]map[string]any, 0, len(m.Sequences))
		for _, def := range m.Sequences {
			entry := map[string]any{
				"text":   def.Text,
				"action": def.Action,
			}
			if def.Timeout > 0 {
				entry["timeout_ms"] = def.Timeout.Milliseconds()
			}
			sequences = append(sequences, entry)
		}
		doc["sequence"] = sequences
	}
	return toml.Marshal(doc)
}

// tables accepts the array-of-tables shapes a TOML decode can produce.
func tables(v any) []map[string]any {
	switch arr := v.(type) {
	case []map[string]any:
		return arr
	case []any:
		out := make([]map[string]any, 0, len(arr))
		for _, item := range arr {
			if entry, ok := item.(map[string]any); ok {
				out = append(out, entry)
			}
		}
		return out
	}
	return nil
}

// parseBindingDef parses a single [[binding]] table.
func parseBindingDef(data map[string]any) BindingDef {
	def := BindingDef{}
	if keys, ok := data["keys"].(string); ok {
		def.Keys = keys
	}
	if action, ok := data["action"].(string); ok {
		def.Action = action
	}
	if label, ok := data["label"].(string); ok {
		def.Label = label
	}
	if repeat, ok := data["repeat"].(bool); ok {
		def.Repeat = repeat
	}
	if ms, ok := asInt(data["delay_ms"]); ok {
		def.Delay = time.Duration(ms) * time.Millisecond
	}
	return def
}

// parseSequenceDef parses a single [[sequence]] table.
func parseSequenceDef(data map[string]any) SequenceDef {
	def := SequenceDef{}
	if text, ok := data["text"].(string); ok {
		def.Text = text
	}
	if action, ok := data["action"].(string); ok {
		def.Action = action
	}
	if ms, ok := asInt(data["timeout_ms"]); ok {
		def.Timeout = time.Duration(ms) * time.Millisecond
	}
	return def
}

// asInt accepts the integer shapes a TOML decode can produce.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
