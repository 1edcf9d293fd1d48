package math

import "math"

// Euler holds rotation angles in radians, applied in XYZ order
// (the matrix is Rx * Ry * Rz).
type Euler struct {
	X, Y, Z float64
}

// Matrix returns the rotation matrix for e.
func (e Euler) Matrix() Mat4 {
	return RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
}

// Vec3 returns the angles as a vector.
func (e Euler) Vec3() Vec3 {
	return Vec3{e.X, e.Y, e.Z}
}

// IsFinite reports whether no angle is NaN or infinite.
func (e Euler) IsFinite() bool {
	return e.Vec3().IsFinite()
}

// Degrees returns the angles converted to degrees.
func (e Euler) Degrees() Vec3 {
	return Vec3{RadToDeg(e.X), RadToDeg(e.Y), RadToDeg(e.Z)}
}

// EulerFromDegrees builds an Euler from angles in degrees.
func EulerFromDegrees(d Vec3) Euler {
	return Euler{DegToRad(d.X), DegToRad(d.Y), DegToRad(d.Z)}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
