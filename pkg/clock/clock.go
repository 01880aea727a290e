// Package clock provides sources of timestamps counted from a calendar's
// epoch.
//
// Three sources cover the needs of etime's callers:
//
//	System     reads the wall clock and converts it through a calendar.
//	Manual     holds a reading that only changes when told to (tests, --at).
//	Monotonic  wraps another source and never goes backwards: each reading
//	           is max(last, current), so a wall clock stepped back by NTP
//	           cannot reorder timestamps taken in sequence.
//
// Note: Manual and Monotonic are not goroutine-safe. Each instance is meant
// to be owned by one caller, e.g. one CLI invocation.
package clock

import (
	"time"

	"github.com/daviddao/etime/pkg/model"
)

// Source yields the current timestamp.
type Source interface {
	Now() model.Timestamp
}

// Converter turns Unix seconds into a timestamp. *etime.Calendar satisfies it.
type Converter interface {
	FromUnix(sec int64) model.Timestamp
	Epoch() model.Epoch
}

// System reads the wall clock through a calendar. Instants before the
// calendar's epoch read as 0.
type System struct {
	Calendar Converter

	// now defaults to time.Now.
	now func() time.Time
}

// NewSystem returns a wall-clock source for cal.
func NewSystem(cal Converter) *System {
	return &System{Calendar: cal, now: time.Now}
}

// Now implements Source.
func (s *System) Now() model.Timestamp {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	sec := now().Unix()
	if sec < s.Calendar.Epoch().UnixOffset {
		return 0
	}
	return s.Calendar.FromUnix(sec)
}

// Manual is a clock that only moves when Set, Tick or Advance is called.
// Not goroutine-safe; see package doc.
type Manual struct {
	ts model.Timestamp
}

// Tick advances the clock by one second and returns the new reading.
func (m *Manual) Tick() model.Timestamp {
	m.ts++
	return m.ts
}

// Advance moves the clock forward by d, truncated to whole seconds.
// Negative durations are ignored. Returns the new reading.
func (m *Manual) Advance(d time.Duration) model.Timestamp {
	if d > 0 {
		m.ts += model.Timestamp(d / time.Second)
	}
	return m.ts
}

// Value returns the current reading without advancing it.
func (m *Manual) Value() model.Timestamp { return m.ts }

// Now implements Source.
func (m *Manual) Now() model.Timestamp { return m.ts }

// Set moves the clock to ts, forwards or backwards.
func (m *Manual) Set(ts model.Timestamp) { m.ts = ts }

// Monotonic wraps a Source so readings never decrease.
// Not goroutine-safe; see package doc.
type Monotonic struct {
	src  Source
	last model.Timestamp
}

// NewMonotonic wraps src.
func NewMonotonic(src Source) *Monotonic {
	return &Monotonic{src: src}
}

// Now returns max(last reading, src.Now()).
func (m *Monotonic) Now() model.Timestamp {
	if ts := m.src.Now(); ts > m.last {
		m.last = ts
	}
	return m.last
}
