package keymap

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces editor save bursts into one reload.
const debounceDelay = 100 * time.Millisecond

// Watcher re-parses a keymap file whenever it changes on disk.
type Watcher struct {
	fw   *fsnotify.Watcher
	path string
	fn   func(*Map, error)

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	closeCh chan struct{}
	wg      sync.WaitGroup
}

// Watch watches path and calls fn with the re-parsed keymap after each
// change settles. The containing directory is watched, so editors that
// replace the file on save still trigger a reload. When the new contents
// do not parse, fn receives the error and a nil Map; the caller decides
// whether to keep the previous keymap. fn runs on the watcher's
// goroutines.
func Watch(path string, fn func(*Map, error)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		fw:      fw,
		path:    absPath,
		fn:      fn,
		closeCh: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. A reload pending inside the debounce window
// is dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fw.Close()
	w.wg.Wait()
	return err
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.fn(nil, err)
		}
	}
}

// handleEvent schedules a debounced reload when the watched file
// changed.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Reset(debounceDelay)
		return
	}
	w.timer = time.AfterFunc(debounceDelay, w.reload)
}

// reload re-parses the file once a change burst settles.
func (w *Watcher) reload() {
	w.mu.Lock()
	w.timer = nil
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	w.fn(Load(w.path))
}
