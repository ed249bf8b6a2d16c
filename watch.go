package mapedit

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce drops repeated events for the same file within this window.
const watchDebounce = 100 * time.Millisecond

// FileWatcher reports changes to map files made outside the editor. Attach
// it with Editor.AttachWatcher; the editor then watches the directory of
// every open map.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once

	mu   sync.Mutex
	dirs map[string]int // watched directory -> open map files in it
}

// NewFileWatcher starts a watcher with no directories.
func NewFileWatcher() (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FileWatcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		dirs:    make(map[string]int),
	}
	go fw.run()
	return fw, nil
}

// Watch starts reporting changes to the directory holding path.
func (w *FileWatcher) Watch(path string) error {
	dir := filepath.Dir(filepath.Clean(path))
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	return nil
}

// Unwatch undoes one Watch of path.
func (w *FileWatcher) Unwatch(path string) {
	dir := filepath.Dir(filepath.Clean(path))
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.dirs[dir] {
	case 0:
		return
	case 1:
		delete(w.dirs, dir)
		_ = w.watcher.Remove(dir)
	default:
		w.dirs[dir]--
	}
}

// Close stops the watcher and closes Events and Errors.
func (w *FileWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *FileWatcher) run() {
	defer close(w.Events)
	defer close(w.Errors)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isMapFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- filepath.Clean(event.Name):
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isMapFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

// AttachWatcher makes the editor watch the files of its open maps. Changes
// are applied by Update: a clean map is reloaded from disk, a dirty map
// keeps its state and the conflict is logged.
func (e *Editor) AttachWatcher(w *FileWatcher) {
	e.watcher = w
	for _, m := range e.openMaps {
		if err := w.Watch(m.path); err != nil {
			Logger().Warn("watch map file", "map", m.name, "error", err)
		}
	}
}

func (e *Editor) processFileEvents() {
	w := e.watcher
	if w == nil {
		return
	}
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				e.watcher = nil
				return
			}
			e.applyFileChange(path)
		case err, ok := <-w.Errors:
			if !ok {
				e.watcher = nil
				return
			}
			Logger().Warn("file watcher", "error", err)
		default:
			return
		}
	}
}

func (e *Editor) applyFileChange(path string) {
	for _, m := range e.openMaps {
		if filepath.Clean(m.path) != path {
			continue
		}
		if m.dirty {
			Logger().Warn("map file changed on disk while it has unsaved edits", "map", m.name, "path", path)
			continue
		}
		if err := m.Reload(); err != nil {
			Logger().Error("reload map", "map", m.name, "error", err)
			continue
		}
		Logger().Info("reloaded map", "map", m.name)
		if m == e.active {
			e.Render()
		}
	}
}
