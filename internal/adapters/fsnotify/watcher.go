// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It follows a single knowledge base file by watching its parent directory, so
// editors that save by writing a temp file and renaming it over the original keep
// triggering reloads. Bursts of events (truncate, write, chmod) settle into one callback.
package fsnotify

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/corey/faq/internal/ports"
)

// DefaultSettle is how long the file must stay quiet before onChange fires.
const DefaultSettle = 100 * time.Millisecond

// Editor scratch files that share the target's directory.
var ignoreSuffixes = []string{".swp", ".swx", "~", ".tmp"}

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw     *fsnotify.Watcher
	settle time.Duration
	done   chan struct{}
	wg     sync.WaitGroup

	mu       sync.Mutex
	watching bool
	stopped  bool
}

var _ ports.Watcher = (*Watcher)(nil)

// NewWatcher creates a new file watcher. settle <= 0 uses DefaultSettle.
func NewWatcher(settle time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{
		fw:     fw,
		settle: settle,
		done:   make(chan struct{}),
	}, nil
}

// Watch starts monitoring path. onChange is called with the absolute path
// once per settled burst of writes, creates, renames or removals. A Watcher
// follows one file; a second Watch call is an error.
func (w *Watcher) Watch(path string, onChange func(filePath string)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return errors.New("watcher stopped")
	}
	if w.watching {
		return errors.New("watcher already following a file")
	}
	if err := w.fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	w.watching = true

	w.wg.Add(1)
	go w.loop(target, onChange)
	return nil
}

func (w *Watcher) loop(target string, onChange func(string)) {
	defer w.wg.Done()

	// Trailing debounce: every relevant event pushes the deadline out.
	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || shouldIgnorePath(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				timer.Reset(w.settle)
			}

		case <-timer.C:
			select {
			case <-w.done:
				return
			default:
			}
			onChange(target)

		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// Errors are swallowed; fsnotify recovers automatically

		case <-w.done:
			return
		}
	}
}

// Stop ends monitoring and releases all resources. It waits for an
// in-flight callback to return, so no callback runs after Stop.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.done)
	err := w.fw.Close()
	w.mu.Unlock()

	w.wg.Wait()
	return err
}

// shouldIgnorePath returns true for editor swap and backup files.
func shouldIgnorePath(path string) bool {
	base := filepath.Base(path)
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}
