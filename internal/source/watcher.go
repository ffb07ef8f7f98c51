package source

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long a file must be quiet before its change is emitted.
const debounce = 100 * time.Millisecond

// Change reports that one of the watched documents was written, created or
// removed.
type Change struct {
	File string
}

// Watcher reports changes to a fixed set of files. It watches their parent
// directories so editors that replace files on save are seen too.
type Watcher struct {
	Changes <-chan Change

	changes chan Change
	done    chan struct{}
	started bool
	files   map[string]bool
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given files.
func NewWatcher(files ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		files:   make(map[string]bool, len(files)),
		watcher: fw,
	}
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
	}
	return w, nil
}

// Start adds the files' directories and begins watching. On error the
// watcher is closed and must not be started again.
func (w *Watcher) Start() error {
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.watcher.Close()
			return err
		}
	}

	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. It is safe to call on a
// watcher that was never started.
func (w *Watcher) Stop() {
	w.watcher.Close()
	if w.started {
		<-w.done
	}
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.changes <- Change{File: file}
				}
				return
			}
			if !w.watched(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case now := <-ticker.C:
			for file, t := range pending {
				if now.Sub(t) >= debounce {
					w.changes <- Change{File: file}
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

func (w *Watcher) watched(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
