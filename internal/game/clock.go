package game

import (
	"fmt"
	"time"
)

// TimingRecord tracks how long one unit (word or question) was on screen.
// EndedAt stays zero while the record is open.
type TimingRecord struct {
	UnitRef   string
	StartedAt time.Time
	EndedAt   time.Time
}

// IsOpen reports whether the record has not been closed yet.
func (r TimingRecord) IsOpen() bool {
	return r.EndedAt.IsZero()
}

// Elapsed returns the time the unit was presented. Only valid on closed
// records; callers must not ask for the elapsed time of an open record.
func (r TimingRecord) Elapsed() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Clock owns the per-unit timing ledger for one session. At most one record
// is open at any instant; records close strictly in presentation order.
type Clock struct {
	now     func() time.Time
	records []TimingRecord
}

// NewClock creates a ledger using wall-clock time.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockAt creates a ledger with an injected time source, used by tests.
func NewClockAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// OpenUnit appends a new open record for the given unit. Opening while a
// record is still open is a programming error, not a runtime condition.
func (c *Clock) OpenUnit(unitRef string) {
	if n := len(c.records); n > 0 && c.records[n-1].IsOpen() {
		panic(fmt.Sprintf("game: OpenUnit(%q) called with record %q still open", unitRef, c.records[n-1].UnitRef))
	}
	c.records = append(c.records, TimingRecord{
		UnitRef:   unitRef,
		StartedAt: c.now(),
	})
}

// CloseCurrent stamps the end time on the open record. No-op when nothing
// is open, so finish paths can call it idempotently.
func (c *Clock) CloseCurrent() {
	n := len(c.records)
	if n == 0 || !c.records[n-1].IsOpen() {
		return
	}
	c.records[n-1].EndedAt = c.now()
}

// HasOpen reports whether a record is currently open.
func (c *Clock) HasOpen() bool {
	n := len(c.records)
	return n > 0 && c.records[n-1].IsOpen()
}

// Records returns the ledger in presentation order.
func (c *Clock) Records() []TimingRecord {
	return c.records
}

// Count returns the number of records, open or closed.
func (c *Clock) Count() int {
	return len(c.records)
}

// TotalElapsed sums the elapsed time of all closed records.
func (c *Clock) TotalElapsed() time.Duration {
	var total time.Duration
	for _, r := range c.records {
		if !r.IsOpen() {
			total += r.Elapsed()
		}
	}
	return total
}
