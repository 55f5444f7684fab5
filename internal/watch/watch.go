// Package watch keeps an index live by reindexing files as they
// change on disk. Every actual index mutation runs on one goroutine,
// preserving the single-threaded invariant the rest of textdex
// assumes (see internal/index); fsnotify events are merely debounced
// and handed off to it.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/singleflight"

	"github.com/standardbeagle/textdex/internal/diag"
	"github.com/standardbeagle/textdex/internal/index"
	"github.com/standardbeagle/textdex/internal/scan"
)

// Watcher reindexes files under Root as fsnotify reports changes.
type Watcher struct {
	idx      *index.Index
	root     string
	includes []string
	excludes []string
	debounce time.Duration

	fsw   *fsnotify.Watcher
	group singleflight.Group
	apply chan string
}

// New creates a Watcher and registers fsnotify watches on root and
// every subdirectory beneath it.
func New(idx *index.Index, root string, includes, excludes []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		idx:      idx,
		root:     root,
		includes: includes,
		excludes: excludes,
		debounce: debounce,
		fsw:      fsw,
		apply:    make(chan string, 64),
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers a watch on root and every subdirectory beneath
// it; fsnotify watches are not recursive on their own.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			diag.Watch("watch: cannot visit %q: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			diag.Watch("watch: cannot watch %q: %v", path, err)
		}
		return nil
	})
}

// Run processes fsnotify events until ctx is canceled or the watcher
// is closed. It blocks; callers typically run it in its own goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	go w.applyLoop(ctx)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			diag.Watch("fsnotify error: %v", err)
		case <-ctx.Done():
			return w.fsw.Close()
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	if !scan.Match(rel, w.includes, w.excludes) {
		return
	}

	path := ev.Name
	go func() {
		w.group.Do(path, func() (any, error) {
			time.Sleep(w.debounce)
			w.apply <- path
			return nil, nil
		})
	}()
}

func (w *Watcher) applyLoop(ctx context.Context) {
	for {
		select {
		case path := <-w.apply:
			w.reindex(path)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) reindex(path string) {
	if err := w.idx.RemoveByName(path); err != nil {
		diag.Watch("watch: %q was not indexed, nothing to remove before reinsert", path)
	}
	if err := w.idx.Add(path); err != nil {
		diag.Watch("watch: failed to reindex %q: %v", path, err)
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
