// Package watcher reports debounced file changes, used to hot reload schema and content.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches files and directories and triggers callbacks
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	mu       sync.Mutex
	files    map[string]func(string)
	dirs     map[string]dirWatch
	debounce time.Duration
	timers   map[string]*time.Timer
	closed   bool
}

type dirWatch struct {
	ext      string
	callback func(string)
}

// NewFileWatcher creates a new file watcher. A nil logger means slog.Default().
func NewFileWatcher(debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		files:    make(map[string]func(string)),
		dirs:     make(map[string]dirWatch),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Watch starts watching the specified files
// callback will be called with the path of the file that changed
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		if err := fw.watcher.Add(absPath); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}

		fw.files[absPath] = callback
	}

	return nil
}

// WatchDir watches every file directly inside dir whose name ends in ext (any file if
// ext is empty). Bursts of changes in the directory collapse into one callback.
func (fw *FileWatcher) WatchDir(dir, ext string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}
	if err := fw.watcher.Add(absDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absDir, err)
	}

	fw.dirs[absDir] = dirWatch{ext: strings.ToLower(ext), callback: callback}
	return nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}

				// Only trigger on write, create or rename events
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					fw.handleFileChange(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.logger.Warn("watcher error", "error", err)
			}
		}
	}()
}

// handleFileChange handles a file change event with debouncing
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.closed {
		return
	}

	// Get the callback for this file, or for its directory
	key := filePath
	callback, exists := fw.files[filePath]
	if !exists {
		dir := filepath.Dir(filePath)
		w, ok := fw.dirs[dir]
		if !ok || (w.ext != "" && !strings.HasSuffix(strings.ToLower(filePath), w.ext)) {
			return
		}
		key, callback = dir, w.callback
	}

	// Cancel existing timer if any
	if timer, exists := fw.timers[key]; exists {
		timer.Stop()
	}

	fw.logger.Debug("file changed", "path", filePath)
	fw.timers[key] = time.AfterFunc(fw.debounce, func() {
		callback(filePath)
	})
}

// Close stops the watcher and any pending callbacks
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	fw.closed = true
	for _, t := range fw.timers {
		t.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}

// RemoveAll removes all watched files and directories
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for file := range fw.files {
		if err := fw.watcher.Remove(file); err != nil {
			return err
		}
	}
	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil {
			return err
		}
	}

	for _, t := range fw.timers {
		t.Stop()
	}
	fw.files = make(map[string]func(string))
	fw.dirs = make(map[string]dirWatch)
	fw.timers = make(map[string]*time.Timer)
	return nil
}
