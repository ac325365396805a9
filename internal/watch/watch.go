// Package watch triggers full rebuilds when the content tree changes.
// Every change means a full pass; the pipeline is linear in document count,
// so incremental invalidation is not worth its complexity here.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/doctree/internal/logfields"
)

// Watcher monitors a content root recursively and invokes a callback after a
// debounced burst of filesystem events.
type Watcher struct {
	root     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// New creates a watcher over the content root.
func New(root string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		root:     abs,
		debounce: debounce,
		fsw:      fsw,
	}
	if err := w.addRecursive(abs); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks, invoking onChange after each debounced event burst, until the
// context is canceled.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer func() { _ = w.fsw.Close() }()

	slog.Info("Watching content root", logfields.Path(w.root))

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// New directories must be added while the burst is still running,
			// or files created inside them are missed.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
			}
			slog.Debug("Content change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))

		case <-timerC:
			timer = nil
			timerC = nil
			onChange()
		}
	}
}

// relevant filters editor temp files and hidden paths out of rebuild triggers.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return false
	}
	return event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename)
}

// addRecursive registers a directory and all its subdirectories.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The path may have vanished between the event and the walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); strings.HasPrefix(name, ".") && path != dir {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}
