package editor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boxedit/internal/logger"
	"github.com/Faultbox/boxedit/pkg/formats"
)

// Session errors.
var (
	ErrIndexOutOfRange = errors.New("solid index out of range")
	ErrNoSelection     = errors.New("no solid selected")
	ErrInvalidEdit     = errors.New("edit values must be finite")
	ErrRestoreLength   = errors.New("restored document does not match the loaded solids")
)

const noSelection = -1

// Session is the edit state of one loaded data set. It holds one
// TransformState per solid, in load order, and at most one selection.
// Session is not safe for concurrent use; the event loop owns it.
type Session struct {
	states   []TransformState
	selected int
}

// NewSession returns a session of n solids at identity, with nothing selected.
func NewSession(n int) *Session {
	if n < 0 {
		n = 0
	}
	states := make([]TransformState, n)
	for i := range states {
		states[i] = IdentityTransform()
	}
	return &Session{states: states, selected: noSelection}
}

// Len returns the number of solids.
func (s *Session) Len() int {
	return len(s.states)
}

// State returns the transform of solid i.
func (s *Session) State(i int) (TransformState, error) {
	if err := s.checkIndex(i); err != nil {
		return TransformState{}, err
	}
	return s.states[i], nil
}

// States returns a copy of every transform in load order.
func (s *Session) States() []TransformState {
	out := make([]TransformState, len(s.states))
	copy(out, s.states)
	return out
}

// Select makes solid i the selection, replacing any previous one.
func (s *Session) Select(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if s.selected != i {
		logger.Debug("solid selected", zap.Int("solid", i))
	}
	s.selected = i
	return nil
}

// Deselect clears the selection. It is a no-op when nothing is selected.
func (s *Session) Deselect() {
	if s.selected != noSelection {
		logger.Debug("selection cleared", zap.Int("solid", s.selected))
	}
	s.selected = noSelection
}

// Selected returns the selected index, if any.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected != noSelection
}

// Pick applies the result of a hit test: a hit selects index, a miss
// deselects.
func (s *Session) Pick(index int, hit bool) error {
	if !hit {
		s.Deselect()
		return nil
	}
	return s.Select(index)
}

// ApplyEdit overwrites the selected solid's transform with the non-nil
// fields of e. Nothing changes if the edit is rejected.
func (s *Session) ApplyEdit(e Edit) error {
	if s.selected == noSelection {
		return ErrNoSelection
	}
	if err := e.validate(); err != nil {
		return err
	}
	s.states[s.selected] = e.applyTo(s.states[s.selected])
	return nil
}

// Reset returns the selected solid to identity.
func (s *Session) Reset() error {
	if s.selected == noSelection {
		return ErrNoSelection
	}
	s.states[s.selected] = IdentityTransform()
	return nil
}

// Export snapshots every transform in load order, regardless of selection.
func (s *Session) Export() *formats.ExportDocument {
	doc := formats.NewExportDocument(len(s.states))
	for _, t := range s.states {
		doc.Append(t.Position, t.Scale, t.Rotation)
	}
	return doc
}

// Restore replaces every transform with those of a previously exported
// document. The selection is cleared.
func (s *Session) Restore(doc *formats.ExportDocument) error {
	if doc.Len() != len(s.states) {
		return fmt.Errorf("%w: %d transforms for %d solids", ErrRestoreLength, doc.Len(), len(s.states))
	}
	restored := make([]TransformState, len(s.states))
	for i := range restored {
		pos, scale, rot := doc.At(i)
		t := TransformState{Position: pos, Rotation: rot, Scale: scale}
		if !t.IsFinite() {
			return fmt.Errorf("%w: solid %d", ErrInvalidEdit, i)
		}
		restored[i] = t
	}
	s.states = restored
	s.selected = noSelection
	return nil
}

func (s *Session) checkIndex(i int) error {
	if i < 0 || i >= len(s.states) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(s.states))
	}
	return nil
}
