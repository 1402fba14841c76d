package monitor

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Shahfarzane/CursorFocus/scanner"
	"github.com/fsnotify/fsnotify"
)

// debounceWindow is the quiet period after a burst of file system events.
const debounceWindow = 500 * time.Millisecond

// FileWatcher nudges the poll loop when the project changes between polls.
// It is an optimization only: polling remains the source of truth, so a
// missed event costs at most one update interval of staleness.
type FileWatcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	rootDir   string
	ignore    *scanner.IgnoreMatcher
}

// NewFileWatcher creates a recursive watcher over all non-ignored
// directories under rootDir.
func NewFileWatcher(rootDir string, ignore *scanner.IgnoreMatcher) (*FileWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &FileWatcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(debounceWindow),
		rootDir:   rootDir,
		ignore:    ignore,
	}

	err = filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are simply not watched
		}
		if !d.IsDir() {
			return nil
		}
		if path != rootDir && w.ignoredDir(path) {
			return filepath.SkipDir
		}
		if watchErr := fsWatcher.Add(path); watchErr != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, watchErr)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Changes returns the channel receiving debounced change batches.
func (w *FileWatcher) Changes() <-chan []Change {
	return w.debouncer.Batches()
}

// Start consumes fsnotify events until the watcher is closed. Run it in a
// goroutine.
func (w *FileWatcher) Start() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: watcher error: %v", err)
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// New directories must join the watch set before their contents change.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.ignoredDir(path) {
				if err := w.fsWatcher.Add(path); err != nil {
					log.Printf("Warning: failed to watch new directory %s: %v", path, err)
				}
			}
			return
		}
	}

	if w.ignoredFile(path) {
		return
	}

	var op ChangeOp
	switch {
	case event.Has(fsnotify.Create):
		op = ChangeCreate
	case event.Has(fsnotify.Write):
		op = ChangeWrite
	case event.Has(fsnotify.Remove):
		op = ChangeRemove
	case event.Has(fsnotify.Rename):
		op = ChangeRename
	default:
		return
	}

	w.debouncer.Record(path, op)
}

// Close stops the watcher and releases its resources.
func (w *FileWatcher) Close() error {
	return w.fsWatcher.Close()
}

func (w *FileWatcher) ignoredDir(path string) bool {
	rel, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return true
	}
	return w.ignore.IgnoreDir(filepath.Base(path), filepath.ToSlash(rel))
}

func (w *FileWatcher) ignoredFile(path string) bool {
	rel, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return true
	}
	return w.ignore.IgnoreFile(filepath.Base(path), filepath.ToSlash(rel))
}
