package geom

import (
	gomath "math"

	"github.com/Faultbox/boxedit/pkg/math"
)

// CornerCount is the number of vertices of a box mesh.
const CornerCount = 8

// IndexCount is the number of indices of a box mesh (12 triangles).
const IndexCount = 36

// DefaultOrthoTolerance is the largest |cos| accepted between two normals.
const DefaultOrthoTolerance = 1e-4

// cornerSigns is the fixed corner order. Normal 0 splits the box into the
// first and last four corners; normals 1 and 2 walk a loop inside each half.
// BoxIndices depends on this order.
var cornerSigns = [CornerCount][3]float64{
	{+1, +1, +1},
	{+1, +1, -1},
	{+1, -1, -1},
	{+1, -1, +1},
	{-1, +1, +1},
	{-1, +1, -1},
	{-1, -1, -1},
	{-1, -1, +1},
}

// boxIndices lists two triangles per face. Winding is counter-clockwise seen
// from outside when the normals form a right-handed frame. The +n0 and +n2
// faces run against the plain corner walk (0-1-2-3, 0-3-7-4); walking them
// that way winds those two faces inward while the other four face out.
var boxIndices = [IndexCount]uint32{
	0, 3, 2, 2, 1, 0, // +n0
	4, 5, 6, 6, 7, 4, // -n0
	0, 1, 5, 5, 4, 0, // +n1
	2, 3, 7, 7, 6, 2, // -n1
	0, 4, 7, 7, 3, 0, // +n2
	1, 2, 6, 6, 5, 1, // -n2
}

// BoxIndices returns a copy of the index list shared by every box.
func BoxIndices() []uint32 {
	out := make([]uint32, IndexCount)
	copy(out, boxIndices[:])
	return out
}

// CornerSigns returns the sign pattern of corner i.
func CornerSigns(i int) [3]float64 {
	return cornerSigns[i]
}

// SolidRecord describes one input solid.
type SolidRecord struct {
	Center  math.Vec3
	Extents [3]float64
	Normals [3]math.Vec3
}

// Geometry is the mesh of one solid. Corners are owned by the Geometry;
// the index list is shared and must not be modified.
type Geometry struct {
	Corners [CornerCount]math.Vec3
	Color   Color
}

// Indices returns the shared triangle list.
func (g *Geometry) Indices() []uint32 {
	return boxIndices[:]
}

// Positions returns the corners as a flat xyz buffer.
func (g *Geometry) Positions() []float32 {
	out := make([]float32, 0, CornerCount*3)
	for _, c := range g.Corners {
		out = append(out, float32(c.X), float32(c.Y), float32(c.Z))
	}
	return out
}

// Colors returns the per-vertex rgb buffer. Every vertex has the same color.
func (g *Geometry) Colors() []float32 {
	out := make([]float32, 0, CornerCount*3)
	for range g.Corners {
		out = append(out, float32(g.Color.R), float32(g.Color.G), float32(g.Color.B))
	}
	return out
}

// Bounds returns the axis-aligned box around the corners.
func (g *Geometry) Bounds() math.Bounds3 {
	return math.BoundsOf(g.Corners[:]...)
}

// Transformed returns the corners mapped through m.
func (g *Geometry) Transformed(m math.Mat4) [CornerCount]math.Vec3 {
	var out [CornerCount]math.Vec3
	for i, c := range g.Corners {
		out[i] = m.TransformPoint(c)
	}
	return out
}

// Builder constructs box meshes.
type Builder struct {
	// OrthoTolerance is the largest |cos| accepted between two normals.
	// Zero means DefaultOrthoTolerance.
	OrthoTolerance float64
}

// NewBuilder returns a Builder with the given orthogonality tolerance.
func NewBuilder(tolerance float64) *Builder {
	return &Builder{OrthoTolerance: tolerance}
}

// Build computes the corners center ± e0*n0 ± e1*n1 ± e2*n2 in the fixed
// corner order. Normals need not be unit length; they are scaled by the
// extents as given.
func (b *Builder) Build(center math.Vec3, extents [3]float64, normals [3]math.Vec3, color Color) (*Geometry, error) {
	if err := b.Validate(center, extents, normals); err != nil {
		return nil, err
	}

	var offsets [3]math.Vec3
	for k := range offsets {
		offsets[k] = normals[k].Scale(extents[k])
	}

	g := &Geometry{Color: color}
	for i, s := range cornerSigns {
		g.Corners[i] = center.
			Add(offsets[0].Scale(s[0])).
			Add(offsets[1].Scale(s[1])).
			Add(offsets[2].Scale(s[2]))
	}
	return g, nil
}

// BuildRecord builds the mesh of a SolidRecord.
func (b *Builder) BuildRecord(r SolidRecord, color Color) (*Geometry, error) {
	return b.Build(r.Center, r.Extents, r.Normals, color)
}

// Validate checks that a box can be built from the inputs.
func (b *Builder) Validate(center math.Vec3, extents [3]float64, normals [3]math.Vec3) error {
	if !center.IsFinite() {
		return domainErr("build box", ErrInvalidCenter, "%v", center)
	}
	for k, e := range extents {
		if gomath.IsNaN(e) || gomath.IsInf(e, 0) || e < 0 {
			return domainErr("build box", ErrInvalidExtent, "extent %d is %g", k, e)
		}
	}

	var lengths [3]float64
	for k, n := range normals {
		lengths[k] = n.Length()
		if !n.IsFinite() || lengths[k] == 0 {
			return domainErr("build box", ErrInvalidNormal, "normal %d is %v", k, n)
		}
	}

	tol := b.OrthoTolerance
	if tol <= 0 {
		tol = DefaultOrthoTolerance
	}
	for _, pair := range [3][2]int{{0, 1}, {0, 2}, {1, 2}} {
		i, j := pair[0], pair[1]
		cos := normals[i].Dot(normals[j]) / (lengths[i] * lengths[j])
		if gomath.Abs(cos) > tol {
			return domainErr("build box", ErrNonOrthogonal, "normals %d and %d have cos %.6g", i, j, cos)
		}
	}
	return nil
}

// RightHanded reports whether (n0, n1, n2) is a right-handed frame, in which
// case the shared index list winds outward.
func RightHanded(normals [3]math.Vec3) bool {
	return normals[0].Cross(normals[1]).Dot(normals[2]) > 0
}
