package editor

import (
	"errors"
	"fmt"

	"github.com/Faultbox/boxedit/pkg/math"
)

// ErrInvalidAxis is returned for an axis outside 0..2.
var ErrInvalidAxis = errors.New("axis must be 0, 1 or 2")

// Mode selects which slider group an input adjusts.
type Mode int

const (
	ModeTranslate Mode = iota
	ModeRotate
	ModeScale
)

func (m Mode) String() string {
	switch m {
	case ModeTranslate:
		return "translate"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Steps is the increment of one Nudge per mode. Rotate is in degrees.
type Steps struct {
	Translate float64
	Rotate    float64
	Scale     float64
}

// DefaultSteps returns the increments used when none are configured.
func DefaultSteps() Steps {
	return Steps{Translate: 0.01, Rotate: 1, Scale: 0.05}
}

// Controls models the nine transform sliders: translate, rotate and scale,
// one per axis. Rotation sliders hold degrees. Every change produces a full
// absolute Edit, so the selected solid always matches what the sliders show.
type Controls struct {
	Mode  Mode
	steps Steps

	translate math.Vec3
	rotate    math.Vec3 // degrees
	scale     math.Vec3
}

// NewControls returns sliders at identity.
func NewControls(steps Steps) *Controls {
	c := &Controls{steps: steps}
	c.Sync(IdentityTransform())
	return c
}

// Sync loads the slider values from a solid's transform. Call it whenever
// the selection changes.
func (c *Controls) Sync(t TransformState) {
	c.translate = t.Position
	c.rotate = t.Rotation.Degrees()
	c.scale = t.Scale
}

// Values returns the slider values of mode m.
func (c *Controls) Values(m Mode) math.Vec3 {
	switch m {
	case ModeRotate:
		return c.rotate
	case ModeScale:
		return c.scale
	default:
		return c.translate
	}
}

// Set moves one slider to v and returns the resulting edit.
func (c *Controls) Set(m Mode, axis int, v float64) (Edit, error) {
	target, err := c.slider(m, axis)
	if err != nil {
		return Edit{}, err
	}
	*target = v
	return c.Edit(), nil
}

// Nudge moves one slider by dir steps of its mode and returns the
// resulting edit.
func (c *Controls) Nudge(m Mode, axis int, dir float64) (Edit, error) {
	target, err := c.slider(m, axis)
	if err != nil {
		return Edit{}, err
	}
	*target += dir * c.step(m)
	return c.Edit(), nil
}

// Edit returns the absolute edit described by all nine sliders.
func (c *Controls) Edit() Edit {
	pos := c.translate
	rot := math.EulerFromDegrees(c.rotate)
	scale := c.scale
	return Edit{Position: &pos, Rotation: &rot, Scale: &scale}
}

func (c *Controls) step(m Mode) float64 {
	switch m {
	case ModeRotate:
		return c.steps.Rotate
	case ModeScale:
		return c.steps.Scale
	default:
		return c.steps.Translate
	}
}

func (c *Controls) slider(m Mode, axis int) (*float64, error) {
	var v *math.Vec3
	switch m {
	case ModeTranslate:
		v = &c.translate
	case ModeRotate:
		v = &c.rotate
	case ModeScale:
		v = &c.scale
	default:
		return nil, fmt.Errorf("unknown mode %v", m)
	}
	switch axis {
	case 0:
		return &v.X, nil
	case 1:
		return &v.Y, nil
	case 2:
		return &v.Z, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidAxis, axis)
}
