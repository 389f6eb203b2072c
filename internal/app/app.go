// Package app is the desktop viewer: the tetrahedron, a toolbar and the content pane.
package app

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gotetra/internal/scene"
	"github.com/philipparndt/gotetra/pkg/content"
	"github.com/philipparndt/gotetra/pkg/schema"
	"github.com/philipparndt/gotetra/pkg/stl"
	"github.com/philipparndt/gotetra/pkg/viewer"
	"github.com/philipparndt/gotetra/pkg/watcher"
)

const (
	appID         = "io.github.philipparndt.gotetra"
	initialKey    = "overview"
	frameInterval = time.Second / 60
	maxFrameStep  = 0.1
)

// Options configures the viewer
type Options struct {
	// SchemaPath is a .json, .yaml or .toml schema; empty uses the built-in schema
	SchemaPath string
	// ContentDir holds the markdown documents; empty serves schema notes only
	ContentDir string
	// Watch reloads the schema and the content when their files change
	Watch  bool
	Logger *slog.Logger
}

// App holds the window and the current scene
type App struct {
	opts   Options
	logger *slog.Logger

	fyneApp fyne.App
	window  fyne.Window

	scene  *scene.Scene
	view   *viewer.TetraView
	source *content.DirSource
	loader *content.Loader
	notes  *NotesStore

	pane       *contentPane
	split      *container.Split
	status     *widget.Label
	spinButton *widget.Button

	fileWatcher *watcher.FileWatcher

	stop     chan struct{}
	stopOnce sync.Once
}

// Run opens the viewer and blocks until the window is closed
func Run(opts Options) error {
	a := New(fyneapp.NewWithID(appID), opts)
	a.window.Resize(fyne.NewSize(1200, 800))
	if opts.Watch {
		if err := a.setupFileWatcher(); err != nil {
			a.logger.Warn("file watching disabled", "error", err)
		}
	}
	a.Start()
	a.window.ShowAndRun()
	a.Close()
	return nil
}

// New creates the window and loads the schema. A schema that fails to load leaves the
// window open with the error shown inline.
func New(fa fyne.App, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		opts:    opts,
		logger:  logger,
		fyneApp: fa,
		window:  fa.NewWindow("gotetra"),
		notes:   NewNotesStore(fa.Preferences(), nil),
		status:  widget.NewLabel(""),
		stop:    make(chan struct{}),
	}

	a.pane = newContentPane(a.loadKey, a.notes.Save)
	a.split = container.NewHSplit(widget.NewLabel(""), a.pane.object)
	a.split.Offset = 0.62

	a.window.SetContent(container.NewBorder(a.toolbar(), a.status, nil, nil, a.split))

	sc, err := scene.LoadSchema(opts.SchemaPath)
	if err == nil {
		err = a.apply(sc)
	}
	if err != nil {
		a.fail(err)
	}
	return a
}

func (a *App) toolbar() fyne.CanvasObject {
	reset := widget.NewButton("Reset view", a.resetView)
	a.spinButton = widget.NewButton("Pause", a.toggleSpin)
	clearSel := widget.NewButton("Show all faces", func() { a.selectFace("") })
	export := widget.NewButton("Export STL", a.showExportDialog)
	return container.NewHBox(reset, a.spinButton, clearSel, export)
}

// apply replaces the scene with one built from sc
func (a *App) apply(sc *schema.Schema) error {
	s, err := scene.Build(sc, a.logger)
	if err != nil {
		return err
	}
	for _, w := range s.Warnings {
		a.logger.Warn("label warning", "key", w.Key, "message", w.Message)
	}

	key := initialKey
	if a.loader != nil {
		if last := a.loader.LastKey(); last != "" {
			key = last
		}
		a.loader.Close()
	}

	a.scene = s
	a.source = content.NewDirSource(a.opts.ContentDir, sc)
	a.loader = content.NewLoader(a.source, a.deliver, a.logger)
	a.notes.SetDefaults(sc.Notes)

	a.view = viewer.NewTetraView(s.Solid, s.Layout, s.State, s.Engine, s.Picker(a.loader))
	a.view.SetOnPick(func(hit viewer.Hit) {
		a.logger.Debug("picked", "kind", hit.Kind, "key", hit.Key)
		a.updateSpinButton()
	})
	a.view.SetOnSelect(func(string) { a.updateStatus() })

	a.split.Leading = a.view
	a.split.Refresh()
	a.pane.setTOC(a.source.Entries())
	a.updateSpinButton()
	a.updateStatus()

	a.loader.LoadKey(key)
	return nil
}

// fail shows a construction error in place of the content
func (a *App) fail(err error) {
	a.logger.Error("failed to build scene", "error", err)
	a.status.SetText("Error: " + err.Error())
	a.pane.title.SetText("Error")
	a.pane.showMessage(err.Error())
}

// deliver runs on the loader goroutine and hands the document to the UI thread
func (a *App) deliver(key string, doc content.Document, err error) {
	fyne.Do(func() {
		if err != nil {
			a.pane.showError(key, err, a.notes.Load(key))
			return
		}
		a.pane.show(doc, a.notes.Load(key))
	})
}

func (a *App) loadKey(key string) {
	if a.loader != nil {
		a.loader.LoadKey(key)
	}
}

func (a *App) resetView() {
	if a.scene == nil {
		return
	}
	a.scene.State.ResetDefaultView()
	a.view.Step(0)
}

func (a *App) toggleSpin() {
	if a.scene == nil {
		return
	}
	a.scene.State.ToggleSpin()
	a.updateSpinButton()
}

func (a *App) selectFace(face string) {
	if a.scene == nil {
		return
	}
	a.scene.State.Select(face)
	a.view.Step(0)
	a.updateStatus()
}

func (a *App) updateSpinButton() {
	if a.scene != nil && !a.scene.State.Spinning {
		a.spinButton.SetText("Spin")
		return
	}
	a.spinButton.SetText("Pause")
}

func (a *App) updateStatus() {
	if a.scene == nil {
		return
	}
	text := a.scene.Title()
	if sel := a.scene.State.Selected; sel != "" {
		text += " | selected: " + sel
	}
	a.status.SetText(text)
}

func (a *App) showExportDialog() {
	if a.scene == nil {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		model := stl.FromSolid(a.scene.Title(), a.scene.Solid)
		if err := stl.WriteBinary(writer, model); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export STL: %w", err), a.window)
			return
		}
		a.logger.Info("exported STL", "uri", writer.URI().String())
	}, a.window)
	d.SetFileName("tetrahedron.stl")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".stl"}))
	d.Show()
}

// Start runs the frame loop until Close
func (a *App) Start() {
	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-a.stop:
				return
			case now := <-ticker.C:
				dt := now.Sub(last).Seconds()
				last = now
				if dt > maxFrameStep {
					dt = maxFrameStep
				}
				fyne.Do(func() { a.step(dt) })
			}
		}
	}()
}

func (a *App) step(dt float64) {
	if a.view != nil {
		a.view.Step(dt)
	}
}

// Close stops the frame loop, the watcher and pending loads
func (a *App) Close() {
	a.stopOnce.Do(func() {
		close(a.stop)
		if a.fileWatcher != nil {
			if err := a.fileWatcher.Close(); err != nil {
				a.logger.Warn("failed to close file watcher", "error", err)
			}
		}
		if a.loader != nil {
			a.loader.Close()
		}
	})
}
