// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Modifier keys held during a key event.
const (
	ModShift uint16 = 1 << iota
	ModCtrl
	ModAlt
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Mods   uint16
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int // mouse motion or wheel
	DeltaY int
	Button uint8
}

// Ctrl reports whether a control (or command) key was held.
func (e Event) Ctrl() bool {
	return e.Mods&ModCtrl != 0
}

// Shift reports whether a shift key was held.
func (e Event) Shift() bool {
	return e.Mods&ModShift != 0
}

// Input handles all input processing.
type Input struct {
	events  []Event
	buttons map[uint8]bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		buttons: make(map[uint8]bool),
	}
}

// Update polls SDL events and converts them to editor events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := Event{
				Key:    e.Keysym.Scancode,
				Mods:   translateMods(sdl.Keymod(e.Keysym.Mod)),
				Repeat: e.Repeat != 0,
			}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			} else {
				ev.Type = EventKeyUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			ev := Event{
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = EventMouseDown
				i.buttons[e.Button] = true
			} else {
				ev.Type = EventMouseUp
				i.buttons[e.Button] = false
			}
			i.events = append(i.events, ev)

		case *sdl.MouseWheelEvent:
			dy := int(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			i.events = append(i.events, Event{
				Type:   EventMouseWheel,
				DeltaX: int(e.X),
				DeltaY: dy,
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsButtonDown reports whether a mouse button is currently held.
func (i *Input) IsButtonDown(button uint8) bool {
	return i.buttons[button]
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

func translateMods(m sdl.Keymod) uint16 {
	var mods uint16
	if m&sdl.KMOD_SHIFT != 0 {
		mods |= ModShift
	}
	if m&(sdl.KMOD_CTRL|sdl.KMOD_GUI) != 0 {
		mods |= ModCtrl
	}
	if m&sdl.KMOD_ALT != 0 {
		mods |= ModAlt
	}
	return mods
}
