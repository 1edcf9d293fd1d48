// Package picking provides ray casting and object picking utilities.
package picking

import (
	gomath "math"

	"github.com/Faultbox/boxedit/pkg/math"
)

// triangleEpsilon rejects rays parallel to a triangle's plane.
const triangleEpsilon = 1e-12

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{Origin: nearWorld, Direction: farWorld.Sub(nearWorld).Normalize()}
}

func unproject(inv math.Mat4, ndc math.Vec4) math.Vec3 {
	p := inv.MulVec4(ndc)
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box math.Bounds3) (t float64, hit bool) {
	if box.IsEmpty() {
		return 0, false
	}

	tmin := gomath.Inf(-1)
	tmax := gomath.Inf(1)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the distance to triangle (a, b, c) using the
// Möller-Trumbore test. Both faces are hit, since box winding depends on
// the handedness of its normals.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float64, hit bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if gomath.Abs(det) < triangleEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectMesh returns the nearest hit among the indexed triangles.
func (r Ray) IntersectMesh(vertices []math.Vec3, indices []uint32) (t float64, hit bool) {
	best := gomath.Inf(1)
	for i := 0; i+2 < len(indices); i += 3 {
		ia, ib, ic := indices[i], indices[i+1], indices[i+2]
		if int(ia) >= len(vertices) || int(ib) >= len(vertices) || int(ic) >= len(vertices) {
			continue
		}
		if d, ok := r.IntersectTriangle(vertices[ia], vertices[ib], vertices[ic]); ok && d < best {
			best = d
			hit = true
		}
	}
	if !hit {
		return 0, false
	}
	return best, true
}
