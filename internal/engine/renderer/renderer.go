// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/boxedit/internal/engine/debug"
	"github.com/Faultbox/boxedit/internal/engine/shader"
	"github.com/Faultbox/boxedit/internal/logger"
	"github.com/Faultbox/boxedit/pkg/geom"
	"github.com/Faultbox/boxedit/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Highlight tints the selected solid.
var Highlight = geom.Color{R: 1, G: 1, B: 1}

const highlightMix = 0.35

// mesh is the GPU copy of one box.
type mesh struct {
	vao, positions, colors, indices uint32
	count                           int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program *shader.Program

	meshes []*mesh // indexed like the scene, nil for skipped solids

	lineVAO, lineVBO uint32
	lineCapacity     int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Box winding flips with the handedness of the input normals.
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewProgram(shader.FlatVertex, shader.FlatFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	stride := int32(debug.LineVertexFloats * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.ClearMeshes()
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float64 {
	if r.config.Height == 0 {
		return 1
	}
	return float64(r.config.Width) / float64(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// SetMeshes uploads one mesh per geometry, replacing any previous set.
// Nil entries stay empty and are never drawn.
func (r *Renderer) SetMeshes(geometries []*geom.Geometry) {
	r.ClearMeshes()
	r.meshes = make([]*mesh, len(geometries))
	for i, g := range geometries {
		if g != nil {
			r.meshes[i] = uploadMesh(g)
		}
	}
	logger.Debug("meshes uploaded", zap.Int("count", len(geometries)))
}

// ClearMeshes releases every uploaded mesh.
func (r *Renderer) ClearMeshes() {
	for _, m := range r.meshes {
		if m == nil {
			continue
		}
		gl.DeleteVertexArrays(1, &m.vao)
		buffers := []uint32{m.positions, m.colors, m.indices}
		gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	}
	r.meshes = nil
}

// DrawMesh draws mesh i with the given model matrix. Highlighted meshes are
// tinted.
func (r *Renderer) DrawMesh(i int, viewProj, model math.Mat4, highlighted bool) {
	if i < 0 || i >= len(r.meshes) || r.meshes[i] == nil {
		return
	}
	m := r.meshes[i]

	r.program.Use()
	r.program.SetMat4("uMVP", viewProj.Mul(model).Float32())
	r.program.SetVec3("uTint", float32(Highlight.R), float32(Highlight.G), float32(Highlight.B))
	if highlighted {
		r.program.SetFloat("uTintMix", highlightMix)
	} else {
		r.program.SetFloat("uTintMix", 0)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
}

// DrawLines draws debug lines in world space.
func (r *Renderer) DrawLines(viewProj math.Mat4, lines []debug.LineVertex) {
	if len(lines) == 0 {
		return
	}
	data := debug.Flatten(lines)

	r.program.Use()
	r.program.SetMat4("uMVP", viewProj.Float32())
	r.program.SetFloat("uTintMix", 0)

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	size := len(data) * 4
	if size > r.lineCapacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(data), gl.DYNAMIC_DRAW)
		r.lineCapacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(data))
	}
	gl.DrawArrays(gl.LINES, 0, int32(len(lines)))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// ReadPixels reads back the current framebuffer as RGBA, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

func uploadMesh(g *geom.Geometry) *mesh {
	positions := g.Positions()
	colors := g.Colors()
	indices := g.Indices()

	m := &mesh{count: int32(len(indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	// Position attribute (location = 0)
	gl.GenBuffers(1, &m.positions)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.positions)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.GenBuffers(1, &m.colors)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.colors)
	gl.BufferData(gl.ARRAY_BUFFER, len(colors)*4, gl.Ptr(colors), gl.STATIC_DRAW)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &m.indices)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}
