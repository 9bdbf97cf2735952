package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce batches the burst of events an editor save produces.
const defaultDebounce = 200 * time.Millisecond

// deckWatcher reruns a build when any of a fixed set of files changes.
//
// It watches the parent directories rather than the files themselves, since
// many editors save by writing a temporary file and renaming it over the
// original, which drops a watch placed on the file.
type deckWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *log.Logger
	files    map[string]bool
	debounce time.Duration
	rebuild  func(context.Context) error
}

// newDeckWatcher watches paths and calls rebuild once per debounced burst
// of changes.
func newDeckWatcher(logger *log.Logger, paths []string, debounce time.Duration, rebuild func(context.Context) error) (*deckWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &deckWatcher{
		watcher:  fw,
		logger:   logger,
		files:    make(map[string]bool, len(paths)),
		debounce: debounce,
		rebuild:  rebuild,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
		logger.Debug("watching directory", "dir", dir)
	}
	return w, nil
}

// Run processes events until ctx is cancelled. Build failures are logged and
// the watcher keeps going, so fixing the deck triggers the next build.
func (w *deckWatcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)

		case <-fire:
			fire = nil
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("rebuild failed", "error", err)
			}
		}
	}
}

// relevant reports whether event touches a watched file in a way that can
// change what a build reads. Removals count: a deleted config means the
// defaults apply again.
func (w *deckWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

// Close stops the underlying watcher.
func (w *deckWatcher) Close() error {
	return w.watcher.Close()
}
