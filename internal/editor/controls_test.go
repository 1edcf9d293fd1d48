package editor

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/boxedit/pkg/math"
)

func TestControlsSyncAndEdit(t *testing.T) {
	c := NewControls(DefaultSteps())

	st := TransformState{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Rotation: math.Euler{X: gomath.Pi / 2},
		Scale:    math.Vec3{X: 2, Y: 2, Z: 2},
	}
	c.Sync(st)

	if got := c.Values(ModeRotate); !got.ApproxEqual(math.Vec3{X: 90}, 1e-9) {
		t.Errorf("rotate sliders = %v, want 90 degrees on X", got)
	}

	e := c.Edit()
	if *e.Position != st.Position || *e.Scale != st.Scale {
		t.Errorf("Edit() = %v %v, want %v %v", *e.Position, *e.Scale, st.Position, st.Scale)
	}
	if !e.Rotation.Vec3().ApproxEqual(st.Rotation.Vec3(), 1e-12) {
		t.Errorf("Edit() rotation = %v, want %v", *e.Rotation, st.Rotation)
	}
}

func TestControlsSetAndNudge(t *testing.T) {
	c := NewControls(Steps{Translate: 0.5, Rotate: 10, Scale: 0.25})

	tests := []struct {
		name string
		do   func() (Edit, error)
		mode Mode
		want math.Vec3
	}{
		{"set translate y", func() (Edit, error) { return c.Set(ModeTranslate, 1, 3) }, ModeTranslate, math.Vec3{Y: 3}},
		{"nudge translate y up", func() (Edit, error) { return c.Nudge(ModeTranslate, 1, 1) }, ModeTranslate, math.Vec3{Y: 3.5}},
		{"nudge rotate z down", func() (Edit, error) { return c.Nudge(ModeRotate, 2, -1) }, ModeRotate, math.Vec3{Z: -10}},
		{"nudge scale x twice", func() (Edit, error) { return c.Nudge(ModeScale, 0, 2) }, ModeScale, math.Vec3{X: 1.5, Y: 1, Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.do()
			if err != nil {
				t.Fatal(err)
			}
			if got := c.Values(tt.mode); !got.ApproxEqual(tt.want, 1e-12) {
				t.Errorf("%v sliders = %v, want %v", tt.mode, got, tt.want)
			}
			if e.Position == nil || e.Rotation == nil || e.Scale == nil {
				t.Error("controls must produce a full edit")
			}
		})
	}

	e := c.Edit()
	if got := e.Rotation.Z; gomath.Abs(got-math.DegToRad(-10)) > 1e-12 {
		t.Errorf("rotation edit Z = %g rad, want -10 degrees", got)
	}
}

func TestControlsInvalidAxis(t *testing.T) {
	c := NewControls(DefaultSteps())
	for _, axis := range []int{-1, 3} {
		if _, err := c.Set(ModeScale, axis, 1); !errors.Is(err, ErrInvalidAxis) {
			t.Errorf("axis %d: got %v, want ErrInvalidAxis", axis, err)
		}
	}
	if _, err := c.Nudge(Mode(7), 0, 1); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestControlsDriveSession(t *testing.T) {
	s := NewSession(2)
	c := NewControls(DefaultSteps())

	s.Select(0)
	e, _ := c.Set(ModeTranslate, 0, 4)
	if err := s.ApplyEdit(e); err != nil {
		t.Fatal(err)
	}

	// Selecting another solid resyncs the sliders from its own state.
	s.Select(1)
	st, _ := s.State(1)
	c.Sync(st)
	e, _ = c.Set(ModeTranslate, 2, 1)
	if err := s.ApplyEdit(e); err != nil {
		t.Fatal(err)
	}

	st0, _ := s.State(0)
	st1, _ := s.State(1)
	if st0.Position != (math.Vec3{X: 4}) {
		t.Errorf("solid 0 position = %v", st0.Position)
	}
	if st1.Position != (math.Vec3{Z: 1}) {
		t.Errorf("solid 1 position = %v", st1.Position)
	}
}
