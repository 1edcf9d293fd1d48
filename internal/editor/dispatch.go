package editor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/boxedit/internal/logger"
	"github.com/Faultbox/boxedit/pkg/formats"
)

// ErrUnhandledEvent is returned when no handler is registered for an event.
var ErrUnhandledEvent = errors.New("no handler registered for event")

// EventKind identifies an editor event.
type EventKind uint8

const (
	EventPick EventKind = iota
	EventDeselect
	EventEdit
	EventExport
)

func (k EventKind) String() string {
	switch k {
	case EventPick:
		return "pick"
	case EventDeselect:
		return "deselect"
	case EventEdit:
		return "edit"
	case EventExport:
		return "export"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is one user action after the viewer has interpreted raw input.
// Only the fields relevant to Kind are read.
type Event struct {
	Kind EventKind

	Index int    // EventPick: hit solid
	Hit   bool   // EventPick: false for a miss
	Edit  Edit   // EventEdit
	Path  string // EventExport: destination, empty for the default
}

// Handler handles one event.
type Handler func(Event) error

// Dispatcher routes events to handlers by kind.
type Dispatcher struct {
	handlers map[EventKind]Handler
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventKind]Handler)}
}

// Register sets the handler for kind, replacing any previous one.
func (d *Dispatcher) Register(kind EventKind, h Handler) {
	d.handlers[kind] = h
}

// Dispatch runs the handler registered for e.Kind.
func (d *Dispatcher) Dispatch(e Event) error {
	h, ok := d.handlers[e.Kind]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnhandledEvent, e.Kind)
	}
	return h(e)
}

// Exporter writes an export document to path.
type Exporter interface {
	Export(path string, doc *formats.ExportDocument) error
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(path string, doc *formats.ExportDocument) error

// Export calls f.
func (f ExporterFunc) Export(path string, doc *formats.ExportDocument) error {
	return f(path, doc)
}

// FileExporter writes export documents atomically to disk.
var FileExporter Exporter = ExporterFunc(formats.WriteExport)

// NewSessionDispatcher wires the standard handlers of s. Edits update
// controls as well so the sliders follow the selection. Exports with an
// empty path go to defaultPath.
func NewSessionDispatcher(s *Session, c *Controls, exp Exporter, defaultPath string) *Dispatcher {
	d := NewDispatcher()

	d.Register(EventPick, func(e Event) error {
		if err := s.Pick(e.Index, e.Hit); err != nil {
			return err
		}
		if i, ok := s.Selected(); ok && c != nil {
			st, _ := s.State(i)
			c.Sync(st)
		}
		return nil
	})

	d.Register(EventDeselect, func(Event) error {
		s.Deselect()
		return nil
	})

	d.Register(EventEdit, func(e Event) error {
		return s.ApplyEdit(e.Edit)
	})

	d.Register(EventExport, func(e Event) error {
		path := e.Path
		if path == "" {
			path = defaultPath
		}
		if err := exp.Export(path, s.Export()); err != nil {
			return err
		}
		logger.Info("transforms exported", zap.String("path", path), zap.Int("solids", s.Len()))
		return nil
	})

	return d
}
