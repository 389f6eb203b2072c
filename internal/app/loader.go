package app

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"

	"github.com/philipparndt/gotetra/internal/scene"
	"github.com/philipparndt/gotetra/pkg/watcher"
)

const watchDebounce = 500 * time.Millisecond

// setupFileWatcher reloads the schema and the current document when their files change
func (a *App) setupFileWatcher() error {
	if a.opts.SchemaPath == "" && a.opts.ContentDir == "" {
		return nil
	}

	fw, err := watcher.NewFileWatcher(watchDebounce, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if a.opts.SchemaPath != "" {
		err := fw.Watch([]string{a.opts.SchemaPath}, func(changed string) {
			a.logger.Info("schema changed", "file", changed)
			fyne.Do(a.reloadSchema)
		})
		if err != nil {
			fw.Close()
			return fmt.Errorf("failed to watch schema: %w", err)
		}
		a.logger.Info("watching schema for changes", "file", a.opts.SchemaPath)
	}

	if a.opts.ContentDir != "" {
		err := fw.WatchDir(a.opts.ContentDir, ".md", func(changed string) {
			a.logger.Info("content changed", "file", changed)
			fyne.Do(a.reloadContent)
		})
		if err != nil {
			fw.Close()
			return fmt.Errorf("failed to watch content: %w", err)
		}
		a.logger.Info("watching content for changes", "dir", a.opts.ContentDir)
	}

	fw.Start()
	a.fileWatcher = fw
	return nil
}

// reloadSchema rebuilds the scene. A broken schema keeps the current scene running.
func (a *App) reloadSchema() {
	sc, err := scene.LoadSchema(a.opts.SchemaPath)
	if err == nil {
		err = a.apply(sc)
	}
	if err != nil {
		a.logger.Error("failed to reload schema", "error", err)
		a.status.SetText("Reload failed: " + err.Error())
		return
	}
	a.logger.Info("schema reloaded")
}

func (a *App) reloadContent() {
	if a.loader != nil {
		a.loader.Reload()
	}
}
