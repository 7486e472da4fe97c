package input

// EventKind identifies pointer events.
type EventKind int

const (
	EventEnter EventKind = iota
	EventLeave
	EventDown
	EventMove
	EventUp
	EventWheel
)

func (k EventKind) String() string {
	switch k {
	case EventEnter:
		return "enter"
	case EventLeave:
		return "leave"
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventWheel:
		return "wheel"
	}
	return "unknown"
}

// Event is a pointer event in screen pixels.
type Event struct {
	Kind  EventKind
	X     float64
	Y     float64
	Delta float64
	Touch bool
}

// Sample is the raw pointer state read once per frame.
type Sample struct {
	X       float64
	Y       float64
	Pressed bool
	Inside  bool
	Touch   bool
	Wheel   float64
}

// Tracker turns successive samples into discrete events.
type Tracker struct {
	inside  bool
	pressed bool
	x, y    float64
	seen    bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Pressed reports whether the last sample held the primary button or a touch.
func (t *Tracker) Pressed() bool { return t.pressed }

func (t *Tracker) Update(s Sample) []Event {
	var out []Event
	at := func(kind EventKind) Event {
		return Event{Kind: kind, X: s.X, Y: s.Y, Touch: s.Touch}
	}

	inside := s.Inside || s.Touch
	if inside && !t.inside {
		out = append(out, at(EventEnter))
	}

	moved := !t.seen || s.X != t.x || s.Y != t.y
	if inside && moved {
		out = append(out, at(EventMove))
	}

	switch {
	case s.Pressed && !t.pressed && inside:
		out = append(out, at(EventDown))
		t.pressed = true
	case !s.Pressed && t.pressed:
		out = append(out, at(EventUp))
		t.pressed = false
	}

	if s.Wheel != 0 && inside {
		ev := at(EventWheel)
		ev.Delta = s.Wheel
		out = append(out, ev)
	}

	if !inside && t.inside {
		out = append(out, at(EventLeave))
	}

	t.inside = inside
	t.x, t.y = s.X, s.Y
	t.seen = true
	return out
}
