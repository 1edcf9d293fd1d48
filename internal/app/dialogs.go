package app

import (
	"errors"
	"path/filepath"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/boxedit/internal/editor"
)

type dialogKind int

const (
	dialogSave dialogKind = iota
	dialogOpen
)

type dialogResult struct {
	kind dialogKind
	path string
	err  error
}

// dialogs runs native file choosers off the main loop and hands the chosen
// path back through a channel. At most one dialog is open at a time.
type dialogs struct {
	results chan dialogResult
	open    bool
}

func newDialogs() *dialogs {
	return &dialogs{results: make(chan dialogResult, 1)}
}

func (d *dialogs) start(kind dialogKind, current string) bool {
	if d.open {
		return false
	}
	d.open = true

	go func() {
		b := dialog.File().
			Filter("JSON files", "json").
			Filter("All Files", "*")
		if current != "" {
			b = b.SetStartDir(filepath.Dir(current)).SetStartFile(filepath.Base(current))
		}

		var r dialogResult
		r.kind = kind
		if kind == dialogSave {
			r.path, r.err = b.Title("Export transforms").Save()
		} else {
			r.path, r.err = b.Title("Open solids").Load()
		}
		d.results <- r
	}()
	return true
}

func (d *dialogs) poll() (dialogResult, bool) {
	select {
	case r := <-d.results:
		d.open = false
		return r, true
	default:
		return dialogResult{}, false
	}
}

func (a *App) pollDialogs() {
	r, ok := a.dialogs.poll()
	if !ok {
		return
	}
	if r.err != nil {
		if !errors.Is(r.err, dialog.ErrCancelled) {
			a.log.Error("file dialog failed", zap.Error(r.err))
			a.setStatus("file dialog failed")
		}
		return
	}

	switch r.kind {
	case dialogSave:
		a.export(r.path)
	case dialogOpen:
		a.startLoad(r.path)
	}
}

// export writes every transform to path, or to the configured export path
// when path is empty.
func (a *App) export(path string) {
	if a.dispatcher == nil {
		a.setStatus("nothing to export")
		return
	}
	if err := a.dispatcher.Dispatch(editor.Event{Kind: editor.EventExport, Path: path}); err != nil {
		a.log.Error("export failed", zap.Error(err))
		a.setStatus("export failed")
		return
	}
	if path == "" {
		path = a.cfg.Data.ExportPath
	}
	a.setStatus("exported " + filepath.Base(path))
}
