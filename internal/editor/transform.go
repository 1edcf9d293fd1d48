// Package editor holds the per-solid edit state: the selection state
// machine, the transform of every loaded solid, the slider model that turns
// user input into edits, and the event dispatch table that ties them to the
// viewer.
package editor

import (
	"fmt"

	"github.com/Faultbox/boxedit/pkg/math"
)

// TransformState is the edit applied on top of a solid's built geometry.
// Rotation is in radians and applied in XYZ order.
type TransformState struct {
	Position math.Vec3
	Rotation math.Euler
	Scale    math.Vec3
}

// IdentityTransform returns the state every solid starts in.
func IdentityTransform() TransformState {
	return TransformState{Scale: math.One}
}

// Matrix returns the object-to-world matrix T * R * S.
func (t TransformState) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Rotation, t.Scale)
}

// IsIdentity reports whether t leaves geometry unchanged.
func (t TransformState) IsIdentity() bool {
	return t == IdentityTransform()
}

// IsFinite reports whether every component is a finite number.
func (t TransformState) IsFinite() bool {
	return t.Position.IsFinite() && t.Rotation.IsFinite() && t.Scale.IsFinite()
}

func (t TransformState) String() string {
	d := t.Rotation.Degrees()
	return fmt.Sprintf("pos(%.3f %.3f %.3f) rot(%.1f° %.1f° %.1f°) scale(%.3f %.3f %.3f)",
		t.Position.X, t.Position.Y, t.Position.Z,
		d.X, d.Y, d.Z,
		t.Scale.X, t.Scale.Y, t.Scale.Z)
}

// Edit carries new absolute values for the selected solid.
// Nil fields are left untouched.
type Edit struct {
	Position *math.Vec3
	Rotation *math.Euler
	Scale    *math.Vec3
}

// FullEdit returns an edit that sets every field of t.
func FullEdit(t TransformState) Edit {
	return Edit{Position: &t.Position, Rotation: &t.Rotation, Scale: &t.Scale}
}

func (e Edit) validate() error {
	if e.Position != nil && !e.Position.IsFinite() {
		return fmt.Errorf("%w: position %v", ErrInvalidEdit, *e.Position)
	}
	if e.Rotation != nil && !e.Rotation.IsFinite() {
		return fmt.Errorf("%w: rotation %v", ErrInvalidEdit, *e.Rotation)
	}
	if e.Scale != nil && !e.Scale.IsFinite() {
		return fmt.Errorf("%w: scale %v", ErrInvalidEdit, *e.Scale)
	}
	return nil
}

func (e Edit) applyTo(t TransformState) TransformState {
	if e.Position != nil {
		t.Position = *e.Position
	}
	if e.Rotation != nil {
		t.Rotation = *e.Rotation
	}
	if e.Scale != nil {
		t.Scale = *e.Scale
	}
	return t
}
