package timing

// FrameFunc runs once on the next scheduler pass. It receives the clock time of
// that pass.
type FrameFunc func(now float64)

// TimerID identifies a pending deferred callback.
type TimerID uint64

type timer struct {
	id  TimerID
	due float64
	fn  func()
}

// Scheduler is a single-threaded replacement for animation-frame requests and
// one-shot timeouts. Nothing runs until Run is called, normally once per frame.
type Scheduler struct {
	clock  Clock
	frames []FrameFunc
	timers []timer
	nextID TimerID
}

func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// RequestFrame queues fn for the next Run. Callbacks queued while Run is
// executing wait for the following pass.
func (s *Scheduler) RequestFrame(fn FrameFunc) {
	if s == nil || fn == nil {
		return
	}
	s.frames = append(s.frames, fn)
}

// After queues fn to run on the first Run at or past now+delay seconds.
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	if s == nil || fn == nil {
		return 0
	}
	s.nextID++
	s.timers = append(s.timers, timer{id: s.nextID, due: s.clock.Elapsed() + delay, fn: fn})
	return s.nextID
}

func (s *Scheduler) Cancel(id TimerID) bool {
	if s == nil {
		return false
	}
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Run fires due timers in schedule order, then the frame callbacks queued
// before this pass.
func (s *Scheduler) Run() {
	if s == nil {
		return
	}
	now := s.clock.Elapsed()

	var due []timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.due <= now {
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	s.timers = kept
	for _, t := range due {
		t.fn()
	}

	frames := s.frames
	s.frames = nil
	for _, fn := range frames {
		fn(now)
	}
}

func (s *Scheduler) Pending() (frames, timers int) {
	if s == nil {
		return 0, 0
	}
	return len(s.frames), len(s.timers)
}

// Reset drops every queued callback.
func (s *Scheduler) Reset() {
	if s == nil {
		return
	}
	s.frames = nil
	s.timers = nil
}
