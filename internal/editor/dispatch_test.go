package editor

import (
	"errors"
	"testing"

	"github.com/Faultbox/boxedit/pkg/formats"
	"github.com/Faultbox/boxedit/pkg/math"
)

type recordingExporter struct {
	path string
	doc  *formats.ExportDocument
	err  error
}

func (r *recordingExporter) Export(path string, doc *formats.ExportDocument) error {
	r.path = path
	r.doc = doc
	return r.err
}

func TestDispatchUnhandled(t *testing.T) {
	d := NewDispatcher()
	err := d.Dispatch(Event{Kind: EventExport})
	if !errors.Is(err, ErrUnhandledEvent) {
		t.Fatalf("got %v, want ErrUnhandledEvent", err)
	}
}

func TestDispatchRegisterReplaces(t *testing.T) {
	d := NewDispatcher()
	calls := ""
	d.Register(EventDeselect, func(Event) error { calls += "a"; return nil })
	d.Register(EventDeselect, func(Event) error { calls += "b"; return nil })

	if err := d.Dispatch(Event{Kind: EventDeselect}); err != nil {
		t.Fatal(err)
	}
	if calls != "b" {
		t.Errorf("calls = %q, want only the latest handler", calls)
	}
}

func TestSessionDispatcher(t *testing.T) {
	s := NewSession(3)
	c := NewControls(DefaultSteps())
	exp := &recordingExporter{}
	d := NewSessionDispatcher(s, c, exp, "modified_data.json")

	// Give solid 2 a state so the sliders have something to sync from.
	s.Select(2)
	s.ApplyEdit(Edit{Position: vec(0, 0, 9)})
	s.Deselect()

	if err := d.Dispatch(Event{Kind: EventPick, Index: 2, Hit: true}); err != nil {
		t.Fatal(err)
	}
	if got := c.Values(ModeTranslate); got != (math.Vec3{Z: 9}) {
		t.Errorf("controls not synced on pick: %v", got)
	}

	e, _ := c.Nudge(ModeScale, 1, 2)
	if err := d.Dispatch(Event{Kind: EventEdit, Edit: e}); err != nil {
		t.Fatal(err)
	}

	if err := d.Dispatch(Event{Kind: EventPick, Hit: false}); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Selected(); ok {
		t.Error("miss should deselect")
	}
	if err := d.Dispatch(Event{Kind: EventEdit, Edit: e}); !errors.Is(err, ErrNoSelection) {
		t.Errorf("edit after miss: got %v, want ErrNoSelection", err)
	}

	if err := d.Dispatch(Event{Kind: EventPick, Index: 5, Hit: true}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("pick out of range: got %v", err)
	}

	if err := d.Dispatch(Event{Kind: EventExport}); err != nil {
		t.Fatal(err)
	}
	if exp.path != "modified_data.json" {
		t.Errorf("default export path = %q", exp.path)
	}
	if exp.doc.Len() != 3 {
		t.Fatalf("exported %d solids, want 3", exp.doc.Len())
	}
	if got := math.Vec3FromArray(exp.doc.Offset[2]); !got.ApproxEqual(math.Vec3{X: 1, Y: 1.1, Z: 1}, 1e-12) {
		t.Errorf("solid 2 scale = %v, want [1 1.1 1]", exp.doc.Offset[2])
	}

	if err := d.Dispatch(Event{Kind: EventExport, Path: "elsewhere.json"}); err != nil {
		t.Fatal(err)
	}
	if exp.path != "elsewhere.json" {
		t.Errorf("explicit export path = %q", exp.path)
	}
}

func TestSessionDispatcherExportFailure(t *testing.T) {
	s := NewSession(1)
	failure := errors.New("disk full")
	d := NewSessionDispatcher(s, nil, &recordingExporter{err: failure}, "out.json")

	s.Select(0)
	if err := d.Dispatch(Event{Kind: EventExport}); !errors.Is(err, failure) {
		t.Fatalf("got %v, want export failure", err)
	}
	if i, ok := s.Selected(); !ok || i != 0 {
		t.Error("failed export must not change the selection")
	}
}
