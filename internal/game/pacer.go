package game

import (
	"errors"
	"sync"
	"time"
)

// PacerState is the auto-advance timer's lifecycle state.
type PacerState int

const (
	PacerIdle PacerState = iota
	PacerScheduled
	PacerPaused
	PacerCancelled
)

func (s PacerState) String() string {
	switch s {
	case PacerIdle:
		return "idle"
	case PacerScheduled:
		return "scheduled"
	case PacerPaused:
		return "paused"
	case PacerCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

var (
	// ErrTimerPending is returned when Schedule is called while a timer is
	// already armed. At most one timer may be pending at a time.
	ErrTimerPending = errors.New("game: pacer already scheduled")

	// ErrPacerCancelled is returned on any use of a cancelled pacer.
	// A cancelled pacer is terminal; create a new one for a new session.
	ErrPacerCancelled = errors.New("game: pacer cancelled")

	errNotScheduled = errors.New("game: pacer not scheduled")
	errNotPaused    = errors.New("game: pacer not paused")
)

// Pacer schedules the auto-advance callback for intermediate-and-above
// tiers. Pausing drops the remaining time deliberately: resume re-arms a
// fresh full-length delay. A generation counter turns callbacks from
// stopped timers into no-ops so a stale fire can never touch replaced
// session state.
type Pacer struct {
	mu         sync.Mutex
	state      PacerState
	timer      *time.Timer
	generation uint64
	callback   func()
	delay      time.Duration
}

// NewPacer creates an idle pacer.
func NewPacer() *Pacer {
	return &Pacer{state: PacerIdle}
}

// Schedule arms a one-shot timer that fires callback after delay. Valid
// from idle or paused only; a pending timer is never replaced.
func (p *Pacer) Schedule(callback func(), delay time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case PacerCancelled:
		return ErrPacerCancelled
	case PacerScheduled:
		return ErrTimerPending
	}

	p.callback = callback
	p.delay = delay
	p.arm()
	return nil
}

// Pause cancels the pending timer without remembering the remaining time.
// Valid only while scheduled.
func (p *Pacer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == PacerCancelled {
		return ErrPacerCancelled
	}
	if p.state != PacerScheduled {
		return errNotScheduled
	}

	p.disarm()
	p.state = PacerPaused
	return nil
}

// Resume re-arms the timer with the full configured delay. Valid only
// while paused.
func (p *Pacer) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == PacerCancelled {
		return ErrPacerCancelled
	}
	if p.state != PacerPaused {
		return errNotPaused
	}

	p.arm()
	return nil
}

// Cancel clears any pending timer and makes the pacer terminal. Safe to
// call from any state and idempotent.
func (p *Pacer) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.disarm()
	p.state = PacerCancelled
}

// State returns the current lifecycle state.
func (p *Pacer) State() PacerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// arm starts the timer; caller holds the lock.
func (p *Pacer) arm() {
	gen := p.generation
	cb := p.callback
	p.state = PacerScheduled
	p.timer = time.AfterFunc(p.delay, func() {
		p.fire(gen, cb)
	})
}

// disarm stops the pending timer and invalidates in-flight fires; caller
// holds the lock.
func (p *Pacer) disarm() {
	p.generation++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Pacer) fire(gen uint64, callback func()) {
	p.mu.Lock()
	if p.generation != gen || p.state != PacerScheduled {
		// Stale timer from a paused/cancelled schedule.
		p.mu.Unlock()
		return
	}
	p.state = PacerIdle
	p.timer = nil
	p.mu.Unlock()

	callback()
}
