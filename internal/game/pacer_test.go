package game

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPacerScheduleWhilePendingRejected(t *testing.T) {
	pacer := NewPacer()
	defer pacer.Cancel()

	var fires int32
	callback := func() { atomic.AddInt32(&fires, 1) }

	if err := pacer.Schedule(callback, 30*time.Millisecond); err != nil {
		t.Fatalf("first Schedule: %v", err)
	}
	if err := pacer.Schedule(callback, time.Millisecond); err != ErrTimerPending {
		t.Fatalf("second Schedule error = %v, want ErrTimerPending", err)
	}

	time.Sleep(100 * time.Millisecond)
	if n := atomic.LoadInt32(&fires); n != 1 {
		t.Errorf("fires = %d, want exactly 1 per accepted schedule", n)
	}
	if pacer.State() != PacerIdle {
		t.Errorf("state after fire = %v, want idle", pacer.State())
	}
}

func TestPacerPauseResumeUsesFullDelay(t *testing.T) {
	pacer := NewPacer()
	defer pacer.Cancel()

	var fires int32
	fired := make(chan time.Time, 4)
	callback := func() {
		atomic.AddInt32(&fires, 1)
		fired <- time.Now()
	}

	const delay = 60 * time.Millisecond

	if err := pacer.Schedule(callback, delay); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	// Pause before the timer can fire.
	time.Sleep(10 * time.Millisecond)
	if err := pacer.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if pacer.State() != PacerPaused {
		t.Fatalf("state = %v, want paused", pacer.State())
	}

	// Nothing fires while paused.
	time.Sleep(2 * delay)
	if n := atomic.LoadInt32(&fires); n != 0 {
		t.Fatalf("fires while paused = %d, want 0", n)
	}

	resumedAt := time.Now()
	if err := pacer.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}

	select {
	case at := <-fired:
		// The resumed timer runs the full delay, not the remainder.
		if elapsed := at.Sub(resumedAt); elapsed < delay-5*time.Millisecond {
			t.Errorf("fired %v after resume, want >= full delay %v", elapsed, delay)
		}
	case <-time.After(time.Second):
		t.Fatal("timer never fired after resume")
	}

	time.Sleep(2 * delay)
	if n := atomic.LoadInt32(&fires); n != 1 {
		t.Errorf("total fires = %d, want exactly 1", n)
	}
}

func TestPacerPauseOnlyValidFromScheduled(t *testing.T) {
	pacer := NewPacer()
	defer pacer.Cancel()

	if err := pacer.Pause(); err == nil {
		t.Error("Pause from idle should fail")
	}
	if err := pacer.Resume(); err == nil {
		t.Error("Resume from idle should fail")
	}
}

func TestPacerCancelIsTerminal(t *testing.T) {
	pacer := NewPacer()

	var fires int32
	if err := pacer.Schedule(func() { atomic.AddInt32(&fires, 1) }, 20*time.Millisecond); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	pacer.Cancel()
	pacer.Cancel() // idempotent

	time.Sleep(60 * time.Millisecond)
	if n := atomic.LoadInt32(&fires); n != 0 {
		t.Errorf("fires after cancel = %d, want 0", n)
	}

	if err := pacer.Schedule(func() {}, time.Millisecond); err != ErrPacerCancelled {
		t.Errorf("Schedule after cancel = %v, want ErrPacerCancelled", err)
	}
	if err := pacer.Resume(); err != ErrPacerCancelled {
		t.Errorf("Resume after cancel = %v, want ErrPacerCancelled", err)
	}
	if pacer.State() != PacerCancelled {
		t.Errorf("state = %v, want cancelled", pacer.State())
	}
}
