package app

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/boxedit/internal/editor"
	"github.com/Faultbox/boxedit/internal/engine/input"
	"github.com/Faultbox/boxedit/internal/engine/picking"
)

// clickSlop is the mouse travel, in pixels, below which a press and
// release count as a click rather than an orbit drag.
const clickSlop = 4

// axisKeys maps nudge keys to (axis, direction).
var axisKeys = map[sdl.Scancode][2]int{
	sdl.SCANCODE_Q: {0, +1},
	sdl.SCANCODE_A: {0, -1},
	sdl.SCANCODE_W: {1, +1},
	sdl.SCANCODE_S: {1, -1},
	sdl.SCANCODE_E: {2, +1},
	sdl.SCANCODE_D: {2, -1},
}

var modeKeys = map[sdl.Scancode]editor.Mode{
	sdl.SCANCODE_1: editor.ModeTranslate,
	sdl.SCANCODE_2: editor.ModeRotate,
	sdl.SCANCODE_3: editor.ModeScale,
}

func (a *App) handleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		w, h := a.window.GetDrawableSize()
		a.renderer.Resize(w, h)

	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_LEFT {
			a.mouseDown = true
			a.dragged = 0
		}

	case input.EventMouseMove:
		if a.mouseDown {
			a.camera.HandleDrag(float64(ev.DeltaX), float64(ev.DeltaY))
			a.dragged += abs(ev.DeltaX) + abs(ev.DeltaY)
		}

	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_LEFT && a.mouseDown {
			a.mouseDown = false
			if a.dragged < clickSlop {
				a.pick(ev.MouseX, ev.MouseY)
			}
		}

	case input.EventMouseWheel:
		a.camera.HandleZoom(float64(ev.DeltaY))

	case input.EventKeyDown:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev input.Event) {
	if ev.Ctrl() {
		switch ev.Key {
		case sdl.SCANCODE_S:
			if ev.Shift() {
				a.dialogs.start(dialogSave, a.cfg.Data.ExportPath)
			} else {
				a.export("")
			}
		case sdl.SCANCODE_O:
			a.dialogs.start(dialogOpen, a.inputPath)
		case sdl.SCANCODE_Q:
			a.running = false
		}
		return
	}

	if axis, ok := axisKeys[ev.Key]; ok {
		dir := float64(axis[1])
		if ev.Shift() {
			dir *= 10
		}
		a.nudge(axis[0], dir)
		return
	}
	if m, ok := modeKeys[ev.Key]; ok {
		a.mode = m
		return
	}

	switch ev.Key {
	case sdl.SCANCODE_TAB:
		a.mode = (a.mode + 1) % 3
	case sdl.SCANCODE_ESCAPE:
		a.dispatch(editor.Event{Kind: editor.EventDeselect})
	case sdl.SCANCODE_BACKSPACE:
		a.resetSelected()
	case sdl.SCANCODE_F:
		if a.scene != nil {
			a.placeCamera()
		}
	case sdl.SCANCODE_B:
		a.showGrid = !a.showGrid
	case sdl.SCANCODE_F2:
		a.dialogs.start(dialogSave, a.cfg.Data.ExportPath)
	case sdl.SCANCODE_F3:
		a.dialogs.start(dialogOpen, a.inputPath)
	case sdl.SCANCODE_F5:
		if !ev.Repeat {
			a.startLoad(a.inputPath)
		}
	case sdl.SCANCODE_F12:
		a.screenshotRequested = true
	}
}

// pick hit-tests the solids under the cursor and selects the nearest one,
// or clears the selection on a miss.
func (a *App) pick(x, y int) {
	if a.scene == nil || a.session == nil {
		return
	}
	w, h := a.window.GetSize()
	if w == 0 || h == 0 {
		return
	}
	inv := a.camera.ViewProjection(float64(w) / float64(h)).Inverse()
	ray := picking.ScreenToRay(float64(x), float64(y), float64(w), float64(h), inv)

	hit, ok := a.scene.Pick(ray, a.session.States())
	a.dispatch(editor.Event{Kind: editor.EventPick, Index: hit.Index, Hit: ok})
}

func (a *App) nudge(axis int, dir float64) {
	if a.session == nil {
		return
	}
	if _, ok := a.session.Selected(); !ok {
		a.setStatus("select a solid first")
		return
	}
	e, err := a.controls.Nudge(a.mode, axis, dir)
	if err != nil {
		a.log.Error("nudge failed", zap.Error(err))
		return
	}
	a.dispatch(editor.Event{Kind: editor.EventEdit, Edit: e})
}

func (a *App) resetSelected() {
	if a.session == nil {
		return
	}
	i, ok := a.session.Selected()
	if !ok {
		return
	}
	if err := a.session.Reset(); err != nil {
		a.log.Error("reset failed", zap.Error(err))
		return
	}
	st, _ := a.session.State(i)
	a.controls.Sync(st)
}

func (a *App) dispatch(e editor.Event) {
	if a.dispatcher == nil {
		return
	}
	if err := a.dispatcher.Dispatch(e); err != nil {
		a.log.Warn("event rejected", zap.Stringer("event", e.Kind), zap.Error(err))
		a.setStatus(err.Error())
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
