// Package main is a terminal playground for the keychord engine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord"
	"github.com/dshills/keychord/backend"
	"github.com/dshills/keychord/binding"
	"github.com/dshills/keychord/chord"
	"github.com/dshills/keychord/keymap"
)

func main() {
	os.Exit(run())
}

func run() int {
	var keymapPath string
	var gap time.Duration
	flag.StringVar(&keymapPath, "keymap", "", "TOML keymap to load and reload on change")
	flag.DurationVar(&gap, "gap", keychord.DefaultReleaseGap, "synthesized key release window")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keychord-demo - interactive shortcut HUD\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keychord-demo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPress ctrl+q (or type :q) to quit.\n")
	}
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := newDemo(cancel)
	if err := d.install(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to register bindings: %v\n", err)
		return 1
	}
	defer d.close()

	if keymapPath != "" {
		d.applyKeymap(keymap.Load(keymapPath))
		w, err := keymap.Watch(keymapPath, d.applyKeymap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch %s: %v\n", keymapPath, err)
			return 1
		}
		defer w.Close()
	}

	term, err := backend.NewTerminal(backend.WithReleaseGap(gap))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init terminal: %v\n", err)
		return 1
	}
	defer term.Fini()
	term.OnResize(func(int, int) { d.redraw() })
	d.setScreen(term.Screen())

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	runErr := term.Run(ctx)
	term.Fini()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}
	return 0
}

// demo owns the HUD state and the engines behind it. The main engine
// carries the built-in bindings; a second one is rebuilt on every keymap
// reload so stale file bindings never linger.
type demo struct {
	quit    func()
	actions map[string]binding.Handler

	mu      sync.Mutex
	screen  tcell.Screen
	engine  *keychord.Engine
	km      *keychord.Engine
	held    chord.Combo
	counter int
	status  string
	statusN int
	kmLine  string
}

func newDemo(quit func()) *demo {
	d := &demo{quit: quit}
	d.actions = map[string]binding.Handler{
		"save":          func() { d.flash("saved") },
		"palette":       func() { d.flash("palette") },
		"scroll-top":    func() { d.flash("top") },
		"scroll-bottom": func() { d.flash("bottom") },
		"quit":          quit,
	}
	return d
}

func (d *demo) install() error {
	e, err := keychord.New(keychord.Config{
		Label:      "demo",
		OnConflict: func(c keychord.Conflict) { d.flash("conflict: shadows " + c.Existing) },
	})
	if err != nil {
		return err
	}
	err = e.Bind(
		binding.Binding{Combo: chord.Hold("ctrl").Or(chord.Press("q")), Label: "Quit", Handler: d.quit},
		binding.Binding{Combo: chord.Hold("ctrl").Or(chord.Press("s")), Label: "Save", Handler: d.actions["save"]},
		binding.Binding{Combo: chord.Hold("ctrl").Or(chord.Press("p", "o")), Label: "Palette", Handler: d.actions["palette"]},
		binding.Binding{Combo: chord.Hold("ctrl", "shift").Or(chord.Press("any")), Label: "Count", Repeat: true, Handler: d.count},
	)
	if err != nil {
		e.Destroy()
		return err
	}
	if _, err := e.Sequence("gg", d.actions["scroll-top"]); err != nil {
		e.Destroy()
		return err
	}
	if _, err := e.Sequence(":q", d.quit, keychord.WithTimeout(2*time.Second)); err != nil {
		e.Destroy()
		return err
	}
	e.OnUpdate(d.setHeld)
	e.OnChange(d.redraw)
	d.engine = e
	return nil
}

func (d *demo) close() {
	d.mu.Lock()
	e, km := d.engine, d.km
	d.engine, d.km = nil, nil
	d.mu.Unlock()
	if km != nil {
		km.Destroy()
	}
	if e != nil {
		e.Destroy()
	}
}

// applyKeymap swaps the keymap engine for one built from the reloaded
// file. Runs on the watcher goroutine.
func (d *demo) applyKeymap(m *keymap.Map, err error) {
	d.mu.Lock()
	old := d.km
	d.km = nil
	d.mu.Unlock()
	if old != nil {
		old.Destroy()
	}
	if err != nil {
		d.setKeymapLine("keymap: " + err.Error())
		return
	}

	label := m.Label
	if label == "" {
		label = "keymap"
	}
	e, err := keychord.New(keychord.Config{Label: label})
	if err != nil {
		d.setKeymapLine("keymap: " + err.Error())
		return
	}
	if err := m.Apply(e, d.actions); err != nil {
		e.Destroy()
		d.setKeymapLine("keymap: " + err.Error())
		return
	}
	d.mu.Lock()
	d.km = e
	d.mu.Unlock()
	d.setKeymapLine(fmt.Sprintf("keymap %q: %d bindings, %d sequences", label, len(m.Bindings), len(m.Sequences)))
}

func (d *demo) count() {
	d.mu.Lock()
	d.counter++
	d.mu.Unlock()
	d.redraw()
}

func (d *demo) setHeld(c chord.Combo) {
	d.mu.Lock()
	d.held = c
	d.mu.Unlock()
	d.redraw()
}

func (d *demo) setScreen(s tcell.Screen) {
	d.mu.Lock()
	d.screen = s
	d.mu.Unlock()
	d.redraw()
}

func (d *demo) setKeymapLine(line string) {
	d.mu.Lock()
	d.kmLine = line
	d.mu.Unlock()
	d.redraw()
}

// flash shows a status line for two seconds. A newer flash supersedes
// the pending clear.
func (d *demo) flash(msg string) {
	d.mu.Lock()
	d.status = msg
	d.statusN++
	n := d.statusN
	d.mu.Unlock()
	d.redraw()

	time.AfterFunc(2*time.Second, func() {
		d.mu.Lock()
		if d.statusN == n {
			d.status = ""
		}
		d.mu.Unlock()
		d.redraw()
	})
}

func (d *demo) redraw() {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.screen
	if s == nil {
		return
	}

	s.Clear()
	base := tcell.StyleDefault
	bold := base.Bold(true)
	drawText(s, 0, 0, bold, "keychord demo")
	drawText(s, 0, 1, base, "hold ctrl+shift and mash keys; type gg; :q or ctrl+q quits")

	row := 3
	for _, ab := range keychord.ActiveBindings(nil) {
		line := "  " + ab.Binding.Combo.String()
		if ab.Binding.Label != "" {
			line += "  " + ab.Binding.Label
		}
		if ab.Label != "" {
			line += "  [" + ab.Label + "]"
		}
		drawText(s, 0, row, base, line)
		row++
	}

	row++
	held := d.held.String()
	if held == "" {
		held = "(none)"
	}
	drawText(s, 0, row, base, "held: "+held)
	row++
	drawText(s, 0, row, base, fmt.Sprintf("ctrl+shift presses: %d", d.counter))
	row++
	if d.kmLine != "" {
		drawText(s, 0, row, base, d.kmLine)
		row++
	}
	if d.status != "" {
		drawText(s, 0, row+1, bold, "* "+d.status)
	}
	s.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
