package geom

import (
	gomath "math"

	"github.com/Faultbox/boxedit/pkg/math"
)

// Normalizer maps arbitrary axis-aligned ranges into the fixed normalized
// box, one axis at a time. It is immutable and safe to share.
type Normalizer struct {
	params CalibrationParameters
	bounds NormalizedBounds
}

// NewNormalizer validates the calibration and derives its bounds.
func NewNormalizer(p CalibrationParameters) (*Normalizer, error) {
	b, err := p.Bounds()
	if err != nil {
		return nil, err
	}
	return &Normalizer{params: p, bounds: b}, nil
}

// Calibration returns the parameters the normalizer was built from.
func (n *Normalizer) Calibration() CalibrationParameters {
	return n.params
}

// Bounds returns the derived normalized ranges.
func (n *Normalizer) Bounds() NormalizedBounds {
	return n.bounds
}

// Transform maps (X, Y, Z) from the given input ranges into the target
// ranges. Every input range must satisfy max > min with a finite span, and
// the point must be finite. Outputs are not clamped: points outside an input
// range land outside the matching target range.
func (n *Normalizer) Transform(X, Y, Z, xMin, xMax, yMin, yMax, zMin, zMax float64) (u, v, w float64, err error) {
	if !(math.Vec3{X: X, Y: Y, Z: Z}).IsFinite() {
		return 0, 0, 0, domainErr("transform", ErrInvalidPoint, "(%g, %g, %g)", X, Y, Z)
	}
	if err := checkRange("x", xMin, xMax); err != nil {
		return 0, 0, 0, err
	}
	if err := checkRange("y", yMin, yMax); err != nil {
		return 0, 0, 0, err
	}
	if err := checkRange("z", zMin, zMax); err != nil {
		return 0, 0, 0, err
	}

	b := n.bounds
	u = b.X.Span()*((X-xMin)/(xMax-xMin)) + b.X.Min
	v = b.Y.Span()*((Y-yMin)/(yMax-yMin)) + b.Y.Min
	w = b.Depth.Span()*((Z-zMin)/(zMax-zMin)) + b.Depth.Min
	return u, v, w, nil
}

// TransformPoint is Transform over a point and a bounding box.
func (n *Normalizer) TransformPoint(p math.Vec3, box math.Bounds3) (math.Vec3, error) {
	u, v, w, err := n.Transform(p.X, p.Y, p.Z,
		box.Min.X, box.Max.X, box.Min.Y, box.Max.Y, box.Min.Z, box.Max.Z)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: u, Y: v, Z: w}, nil
}

// FindCenter returns where the world origin lands in the normalized frame
// defined by the bounding box of the three coordinate collections. This is
// the camera anchor; it is not the normalized centroid of the cloud.
func (n *Normalizer) FindCenter(xs, ys, zs []float64) (ox, oy, oz float64, err error) {
	xMin, xMax, err := minMax("x", xs)
	if err != nil {
		return 0, 0, 0, err
	}
	yMin, yMax, err := minMax("y", ys)
	if err != nil {
		return 0, 0, 0, err
	}
	zMin, zMax, err := minMax("z", zs)
	if err != nil {
		return 0, 0, 0, err
	}
	return n.Transform(0, 0, 0, xMin, xMax, yMin, yMax, zMin, zMax)
}

// FindCenterPoints is FindCenter over a list of points.
func (n *Normalizer) FindCenterPoints(points []math.Vec3) (math.Vec3, error) {
	if len(points) == 0 {
		return math.Vec3{}, domainErr("find center", ErrEmptyPointSet, "no points")
	}
	return n.TransformPoint(math.Zero, math.BoundsOf(points...))
}

// checkRange also rejects finite bounds whose span overflows to +Inf.
func checkRange(axis string, lo, hi float64) error {
	if !(hi > lo) || gomath.IsInf(hi-lo, 0) || gomath.IsNaN(hi-lo) {
		return domainErr("transform", ErrDegenerateRange, "%s range [%g, %g]", axis, lo, hi)
	}
	return nil
}

func minMax(axis string, values []float64) (lo, hi float64, err error) {
	if len(values) == 0 {
		return 0, 0, domainErr("find center", ErrEmptyPointSet, "no %s coordinates", axis)
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = gomath.Min(lo, v)
		hi = gomath.Max(hi, v)
	}
	return lo, hi, nil
}
