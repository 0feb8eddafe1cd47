package game

import (
	"testing"
	"time"
)

// stepClock returns a time source that advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(step)
		return t
	}
}

func TestClockOpenClose(t *testing.T) {
	clock := NewClockAt(stepClock(time.Unix(0, 0), time.Second))

	clock.OpenUnit("casa")
	if !clock.HasOpen() {
		t.Fatal("expected an open record after OpenUnit")
	}

	clock.CloseCurrent()
	if clock.HasOpen() {
		t.Fatal("expected no open record after CloseCurrent")
	}

	records := clock.Records()
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if got := records[0].Elapsed(); got != time.Second {
		t.Errorf("Elapsed() = %v, want 1s", got)
	}
	if records[0].UnitRef != "casa" {
		t.Errorf("UnitRef = %q, want %q", records[0].UnitRef, "casa")
	}
}

func TestClockCloseWithoutOpenIsNoop(t *testing.T) {
	clock := NewClock()

	// Idempotent finish paths call CloseCurrent without an open record.
	clock.CloseCurrent()
	if clock.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", clock.Count())
	}

	clock.OpenUnit("perro")
	clock.CloseCurrent()
	clock.CloseCurrent()

	if clock.Records()[0].IsOpen() {
		t.Error("record should stay closed after repeated CloseCurrent")
	}
}

func TestClockDoubleOpenPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when opening over an open record")
		}
	}()

	clock := NewClock()
	clock.OpenUnit("gato")
	clock.OpenUnit("sol")
}

func TestClockTotalElapsedIgnoresOpenRecord(t *testing.T) {
	clock := NewClockAt(stepClock(time.Unix(0, 0), 500*time.Millisecond))

	clock.OpenUnit("luna")
	clock.CloseCurrent()
	clock.OpenUnit("agua")

	if got := clock.TotalElapsed(); got != 500*time.Millisecond {
		t.Errorf("TotalElapsed() = %v, want 500ms", got)
	}
}
