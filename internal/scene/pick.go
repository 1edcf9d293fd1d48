package scene

import (
	gomath "math"

	"github.com/Faultbox/boxedit/internal/editor"
	"github.com/Faultbox/boxedit/internal/engine/picking"
	"github.com/Faultbox/boxedit/pkg/geom"
	"github.com/Faultbox/boxedit/pkg/math"
)

// Hit is the nearest solid along a ray.
type Hit struct {
	Index    int
	Distance float64
	Point    math.Vec3
}

// Pick returns the nearest solid hit by ray, testing each mesh under its
// current transform. Skipped solids are never hit. The states slice is
// indexed like Solids; a missing state means identity.
func (s *Scene) Pick(ray picking.Ray, states []editor.TransformState) (Hit, bool) {
	best := Hit{Index: -1, Distance: gomath.Inf(1)}
	indices := geom.BoxIndices()

	for i := range s.Solids {
		sol := &s.Solids[i]
		if sol.Skipped() {
			continue
		}
		st := editor.IdentityTransform()
		if i < len(states) {
			st = states[i]
		}
		corners := sol.Geometry.Transformed(st.Matrix())

		// Broad phase
		if _, ok := ray.IntersectAABB(math.BoundsOf(corners[:]...)); !ok {
			continue
		}

		// Narrow phase
		t, ok := ray.IntersectMesh(corners[:], indices)
		if ok && t < best.Distance {
			best = Hit{Index: i, Distance: t}
		}
	}

	if best.Index < 0 {
		return Hit{Index: -1}, false
	}
	best.Point = ray.At(best.Distance)
	return best, true
}
