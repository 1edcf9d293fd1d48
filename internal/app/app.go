// Package app implements the interactive editor: the main loop that ties
// the window, input, camera and renderer to the edit session.
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/boxedit/internal/config"
	"github.com/Faultbox/boxedit/internal/editor"
	"github.com/Faultbox/boxedit/internal/engine/camera"
	"github.com/Faultbox/boxedit/internal/engine/debug"
	"github.com/Faultbox/boxedit/internal/engine/input"
	"github.com/Faultbox/boxedit/internal/engine/renderer"
	"github.com/Faultbox/boxedit/internal/engine/window"
	"github.com/Faultbox/boxedit/internal/logger"
	"github.com/Faultbox/boxedit/internal/scene"
	"github.com/Faultbox/boxedit/pkg/geom"
	"github.com/Faultbox/boxedit/pkg/math"
)

const title = "boxedit"

// App is the editor instance.
type App struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	camera      *camera.OrbitCamera
	screenshots *debug.ScreenshotCapture

	builder    *geom.Builder
	normalizer *geom.Normalizer

	// Loaded data. scene is nil until the loader resolves.
	inputPath  string
	loader     *scene.Loader
	scene      *scene.Scene
	session    *editor.Session
	controls   *editor.Controls
	dispatcher *editor.Dispatcher
	loadErr    error

	// Interaction state
	mode       editor.Mode
	mouseDown  bool
	dragged    int
	showGrid   bool
	status     string
	statusTime time.Time

	screenshotRequested bool
	dialogs             *dialogs
}

// New creates the window and renderer and starts loading the input file.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")
	log.Info("initializing editor",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("input", cfg.Data.InputPath),
	)

	normalizer, err := geom.NewNormalizer(cfg.Calibration)
	if err != nil {
		return nil, fmt.Errorf("calibration: %w", err)
	}

	a := &App{
		cfg:         cfg,
		log:         log,
		input:       input.New(),
		camera:      camera.NewOrbitCamera(),
		screenshots: debug.NewScreenshotCapture(cfg.Data.ScreenshotDir, title),
		builder:     geom.NewBuilder(cfg.Editor.OrthoTolerance),
		normalizer:  normalizer,
		controls: editor.NewControls(editor.Steps{
			Translate: cfg.Editor.TranslateStep,
			Rotate:    cfg.Editor.RotateStep,
			Scale:     cfg.Editor.ScaleStep,
		}),
		showGrid: true,
		dialogs:  newDialogs(),
	}
	a.camera.FieldOfView = math.DegToRad(cfg.Graphics.FieldOfView)
	a.camera.Near = cfg.Graphics.Near
	a.camera.Far = cfg.Graphics.Far
	a.camera.MaxDistance = cfg.Graphics.Far

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.GetDrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.startLoad(cfg.Data.InputPath)

	log.Info("editor initialized")
	return a, nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true
	lastTitle := ""

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		a.pollLoader()
		a.pollDialogs()

		for _, ev := range a.input.Events() {
			a.handleEvent(ev)
		}

		a.camera.Update()
		a.render()

		if a.screenshotRequested {
			a.screenshotRequested = false
			a.captureScreenshot()
		}

		a.window.SwapBuffers()

		if t := a.title(); t != lastTitle {
			a.window.SetTitle(t)
			lastTitle = t
		}
	}

	return nil
}

// Close releases the renderer and window.
func (a *App) Close() {
	a.log.Info("closing editor")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// startLoad begins an asynchronous load. The current scene stays on
// screen until the new one resolves.
func (a *App) startLoad(path string) {
	a.inputPath = path
	a.loader = scene.LoadAsync(path, a.builder, a.normalizer)
	a.setStatus("loading " + filepath.Base(path))
}

func (a *App) pollLoader() {
	if a.loader == nil {
		return
	}
	res, ok := a.loader.Poll()
	if !ok {
		return
	}
	a.loader = nil

	if res.Err != nil {
		a.loadErr = res.Err
		a.scene = nil
		a.session = nil
		a.dispatcher = nil
		a.renderer.ClearMeshes()
		a.setStatus("load failed")
		return
	}

	a.loadErr = nil
	a.scene = res.Scene
	a.session = editor.NewSession(res.Scene.Len())
	a.controls.Sync(editor.IdentityTransform())
	a.dispatcher = editor.NewSessionDispatcher(a.session, a.controls, editor.FileExporter, a.cfg.Data.ExportPath)

	geometries := make([]*geom.Geometry, res.Scene.Len())
	for i := range res.Scene.Solids {
		geometries[i] = res.Scene.Solids[i].Geometry
	}
	a.renderer.SetMeshes(geometries)

	a.placeCamera()

	if res.Scene.BuildErr != nil {
		skipped := res.Scene.Len() - res.Scene.Built()
		a.log.Warn("some solids were skipped", zap.Int("skipped", skipped), zap.Error(res.Scene.BuildErr))
		a.setStatus(fmt.Sprintf("loaded, %d skipped", skipped))
	} else {
		a.setStatus("loaded")
	}
}

// placeCamera puts the camera at the scene anchor, looking at the world
// origin. Without a usable anchor it frames the scene bounds instead.
func (a *App) placeCamera() {
	a.camera.Target = math.Vec3{}
	if a.scene.HasAnchor && a.camera.PlaceAt(a.scene.Anchor) {
		a.log.Debug("camera anchored",
			zap.Float64("x", a.scene.Anchor.X),
			zap.Float64("y", a.scene.Anchor.Y),
			zap.Float64("z", a.scene.Anchor.Z),
		)
		return
	}
	a.camera.FitToBounds(a.scene.Bounds)
}

func (a *App) render() {
	a.renderer.Begin()
	defer a.renderer.End()

	viewProj := a.camera.ViewProjection(a.renderer.Aspect())

	if a.showGrid {
		a.renderer.DrawLines(viewProj, debug.OriginAxes(0.25))
		if a.scene != nil {
			a.renderer.DrawLines(viewProj, debug.GroundGrid(a.scene.Bounds, 0.1, a.scene.Bounds.Min.Y, 200))
		}
	}

	if a.scene == nil || a.session == nil {
		return
	}

	selected, hasSel := a.session.Selected()
	for i := range a.scene.Solids {
		sol := &a.scene.Solids[i]
		if sol.Skipped() {
			continue
		}
		st, _ := a.session.State(i)
		a.renderer.DrawMesh(i, viewProj, st.Matrix(), hasSel && i == selected)
	}

	if hasSel && !a.scene.Solids[selected].Skipped() {
		st, _ := a.session.State(selected)
		corners := a.scene.Solids[selected].Geometry.Transformed(st.Matrix())
		a.renderer.DrawLines(viewProj, debug.BoxWireframe(corners, renderer.Highlight, debug.DefaultSelectionPadding))
	}
}

func (a *App) captureScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		a.setStatus("screenshot failed")
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
	a.setStatus("saved " + filepath.Base(path))
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusTime = time.Now()
}

// title summarizes the editor state. Load errors replace everything else.
func (a *App) title() string {
	name := filepath.Base(a.inputPath)
	if a.loadErr != nil {
		return fmt.Sprintf("%s - %s - error: %v", title, name, a.loadErr)
	}
	if a.scene == nil {
		return fmt.Sprintf("%s - %s - loading", title, name)
	}

	t := fmt.Sprintf("%s - %s - %d solids", title, name, a.scene.Len())
	if i, ok := a.session.Selected(); ok {
		st, _ := a.session.State(i)
		t += fmt.Sprintf(" - selected %d [%s] %s", i, a.mode, st)
	} else {
		t += " - nothing selected"
	}
	if a.status != "" && time.Since(a.statusTime) < 4*time.Second {
		t += " - " + a.status
	}
	return t
}
