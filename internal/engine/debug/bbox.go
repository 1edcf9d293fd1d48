// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/boxedit/pkg/geom"
	"github.com/Faultbox/boxedit/pkg/math"
)

// BoxEdgeCount is the number of edges of a box.
const BoxEdgeCount = 12

// BoxWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoxWireframeVertexCount = BoxEdgeCount * 2

// DefaultSelectionPadding pushes the selection outline off the faces so it
// does not z-fight with them.
const DefaultSelectionPadding = 0.01

// boxEdges pairs corners whose signs differ on exactly one axis.
var boxEdges = func() [BoxEdgeCount][2]int {
	var edges [BoxEdgeCount][2]int
	n := 0
	for i := 0; i < geom.CornerCount; i++ {
		for j := i + 1; j < geom.CornerCount; j++ {
			a, b := geom.CornerSigns(i), geom.CornerSigns(j)
			diff := 0
			for k := range a {
				if a[k] != b[k] {
					diff++
				}
			}
			if diff == 1 {
				edges[n] = [2]int{i, j}
				n++
			}
		}
	}
	return edges
}()

// BoxEdges returns the corner pairs forming the 12 edges of a box built by
// geom.Builder.
func BoxEdges() [BoxEdgeCount][2]int {
	return boxEdges
}

// BoxWireframe creates line vertices for an oriented box given its 8
// corners. Each corner is pushed away from the box center by padding.
func BoxWireframe(corners [geom.CornerCount]math.Vec3, color geom.Color, padding float64) []LineVertex {
	center := math.Vec3{}
	for _, c := range corners {
		center = center.Add(c)
	}
	center = center.Scale(1.0 / geom.CornerCount)

	if padding != 0 {
		for i, c := range corners {
			corners[i] = c.Add(c.Sub(center).Normalize().Scale(padding))
		}
	}

	vertices := make([]LineVertex, 0, BoxWireframeVertexCount)
	for _, e := range boxEdges {
		vertices = append(vertices,
			vertexAt(corners[e[0]], color),
			vertexAt(corners[e[1]], color),
		)
	}
	return vertices
}

// AABBWireframe creates line vertices for an axis-aligned box.
// Returns nil for an empty box.
func AABBWireframe(b math.Bounds3, color geom.Color) []LineVertex {
	if b.IsEmpty() {
		return nil
	}
	var corners [geom.CornerCount]math.Vec3
	center := b.Center()
	half := b.Size().Scale(0.5)
	for i := range corners {
		s := geom.CornerSigns(i)
		corners[i] = center.Add(math.Vec3{X: s[0] * half.X, Y: s[1] * half.Y, Z: s[2] * half.Z})
	}
	return BoxWireframe(corners, color, 0)
}
