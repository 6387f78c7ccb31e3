// Package breathing drives the timed guided-breathing sequence.
package breathing

import (
	"sync"
	"time"
)

// Step is one phase of a breathing cycle.
type Step int

const (
	Inhale Step = iota
	HoldIn
	Exhale
	HoldOut
	stepCount
)

// Label returns the user-facing instruction for the step.
func (s Step) Label() string {
	switch s {
	case Inhale:
		return "Breathe in slowly"
	case HoldIn:
		return "Hold your breath"
	case Exhale:
		return "Breathe out slowly"
	case HoldOut:
		return "Hold, lungs empty"
	}
	return ""
}

// Emoji returns the icon shown next to the step.
func (s Step) Emoji() string {
	switch s {
	case Inhale:
		return "🌬️"
	case HoldIn:
		return "⏸️"
	case Exhale:
		return "😮‍💨"
	case HoldOut:
		return "⏸️"
	}
	return ""
}

// Options tunes the timing; zero values get the standard 1s/4s/3 schedule.
// Tests shorten the intervals.
type Options struct {
	InitialDelay time.Duration
	StepInterval time.Duration
	Cycles       int
}

func (o Options) withDefaults() Options {
	if o.InitialDelay <= 0 {
		o.InitialDelay = time.Second
	}
	if o.StepInterval <= 0 {
		o.StepInterval = 4 * time.Second
	}
	if o.Cycles <= 0 {
		o.Cycles = 3
	}
	return o
}

// TickFunc renders one step. cycle and step are zero-based; cycles counts
// the total. Returning an error aborts the sequence without credit, which is
// how the caller discards a tick that arrives after the session left the
// breathing state.
type TickFunc func(userID int64, cycle, cycles int, step Step) error

// DoneFunc runs once when all cycles complete. It is never called for a
// stopped or aborted sequence.
type DoneFunc func(userID int64)

type handle struct {
	cancel chan struct{}
	once   sync.Once
}

func (h *handle) stop() {
	h.once.Do(func() { close(h.cancel) })
}

// Sequencer runs at most one timed sequence per user. Handles live only in
// this registry; nothing about them is persisted.
type Sequencer struct {
	opts   Options
	onTick TickFunc
	onDone DoneFunc

	mu     sync.Mutex
	active map[int64]*handle
}

// NewSequencer builds a sequencer with the given callbacks.
func NewSequencer(opts Options, onTick TickFunc, onDone DoneFunc) *Sequencer {
	return &Sequencer{
		opts:   opts.withDefaults(),
		onTick: onTick,
		onDone: onDone,
		active: make(map[int64]*handle),
	}
}

// Start launches a sequence for the user. A prior active sequence for the
// same user is cancelled first, so at most one timer chain runs per user.
func (s *Sequencer) Start(userID int64) {
	h := &handle{cancel: make(chan struct{})}

	s.mu.Lock()
	if prev, ok := s.active[userID]; ok {
		prev.stop()
	}
	s.active[userID] = h
	s.mu.Unlock()

	go s.run(userID, h)
}

// Stop cancels the user's active sequence without completion credit.
// It reports whether a sequence was running.
func (s *Sequencer) Stop(userID int64) bool {
	s.mu.Lock()
	h, ok := s.active[userID]
	if ok {
		delete(s.active, userID)
	}
	s.mu.Unlock()
	if ok {
		h.stop()
	}
	return ok
}

// Active reports whether the user has a running sequence.
func (s *Sequencer) Active(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[userID]
	return ok
}

// StopAll cancels every running sequence; used on shutdown.
func (s *Sequencer) StopAll() {
	s.mu.Lock()
	handles := make([]*handle, 0, len(s.active))
	for _, h := range s.active {
		handles = append(handles, h)
	}
	s.active = make(map[int64]*handle)
	s.mu.Unlock()
	for _, h := range handles {
		h.stop()
	}
}

func (s *Sequencer) run(userID int64, h *handle) {
	if !s.wait(h, s.opts.InitialDelay) {
		return
	}

	for cycle := 0; cycle < s.opts.Cycles; cycle++ {
		for step := Step(0); step < stepCount; step++ {
			if s.stale(userID, h) {
				return
			}
			if err := s.onTick(userID, cycle, s.opts.Cycles, step); err != nil {
				s.release(userID, h)
				return
			}
			if !s.wait(h, s.opts.StepInterval) {
				return
			}
		}
	}

	// Credit only if this handle is still the user's current sequence.
	if s.release(userID, h) {
		s.onDone(userID)
	}
}

// wait sleeps for d, returning false if the handle was cancelled first.
func (s *Sequencer) wait(h *handle, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-h.cancel:
		return false
	case <-timer.C:
		return true
	}
}

// stale reports whether the handle has been superseded or cancelled.
func (s *Sequencer) stale(userID int64, h *handle) bool {
	select {
	case <-h.cancel:
		return true
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[userID] != h
}

// release removes the handle from the registry if it is still current.
func (s *Sequencer) release(userID int64, h *handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[userID] != h {
		return false
	}
	delete(s.active, userID)
	return true
}
