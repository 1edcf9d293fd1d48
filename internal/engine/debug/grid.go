package debug

import (
	gomath "math"

	"github.com/Faultbox/boxedit/pkg/geom"
	"github.com/Faultbox/boxedit/pkg/math"
)

// LineVertex is one endpoint of a debug line.
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// LineVertexFloats is the number of float32 values per LineVertex.
const LineVertexFloats = 6

func vertexAt(p math.Vec3, c geom.Color) LineVertex {
	return LineVertex{
		float32(p.X), float32(p.Y), float32(p.Z),
		float32(c.R), float32(c.G), float32(c.B),
	}
}

// Flatten interleaves vertices as [x, y, z, r, g, b] for upload.
func Flatten(vertices []LineVertex) []float32 {
	out := make([]float32, 0, len(vertices)*LineVertexFloats)
	for _, v := range vertices {
		out = append(out, v.X, v.Y, v.Z, v.R, v.G, v.B)
	}
	return out
}

var (
	gridColor = geom.Color{R: 0.35, G: 0.35, B: 0.35}
	axisX     = geom.Color{R: 0.9, G: 0.2, B: 0.2}
	axisY     = geom.Color{R: 0.2, G: 0.9, B: 0.2}
	axisZ     = geom.Color{R: 0.2, G: 0.4, B: 0.9}
)

// GroundGrid generates grid lines on the plane y = height covering the XZ
// footprint of b, snapped outward to multiples of step. Returns nil for an
// empty box or a non-positive step. At most maxLines lines are generated
// per direction; the step grows to stay within it.
func GroundGrid(b math.Bounds3, step, height float64, maxLines int) []LineVertex {
	if b.IsEmpty() || step <= 0 || maxLines < 2 {
		return nil
	}

	for (b.Max.X-b.Min.X)/step > float64(maxLines-1) || (b.Max.Z-b.Min.Z)/step > float64(maxLines-1) {
		step *= 2
	}

	minX := gomath.Floor(b.Min.X/step) * step
	maxX := gomath.Ceil(b.Max.X/step) * step
	minZ := gomath.Floor(b.Min.Z/step) * step
	maxZ := gomath.Ceil(b.Max.Z/step) * step

	var vertices []LineVertex

	// Lines along Z
	for x := minX; x <= maxX+step/2; x += step {
		vertices = append(vertices,
			vertexAt(math.Vec3{X: x, Y: height, Z: minZ}, gridColor),
			vertexAt(math.Vec3{X: x, Y: height, Z: maxZ}, gridColor),
		)
	}

	// Lines along X
	for z := minZ; z <= maxZ+step/2; z += step {
		vertices = append(vertices,
			vertexAt(math.Vec3{X: minX, Y: height, Z: z}, gridColor),
			vertexAt(math.Vec3{X: maxX, Y: height, Z: z}, gridColor),
		)
	}

	return vertices
}

// OriginAxes generates the three world axes from the origin, colored
// X red, Y green and Z blue.
func OriginAxes(length float64) []LineVertex {
	o := math.Vec3{}
	return []LineVertex{
		vertexAt(o, axisX), vertexAt(math.Vec3{X: length}, axisX),
		vertexAt(o, axisY), vertexAt(math.Vec3{Y: length}, axisY),
		vertexAt(o, axisZ), vertexAt(math.Vec3{Z: length}, axisZ),
	}
}
