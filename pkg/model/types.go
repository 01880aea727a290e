// Package model defines the core domain types for etime.
//
// etime converts between two representations of an instant:
//
//   - Timestamp: an unsigned count of seconds since a configured epoch.
//     The epoch is always January 1, 00:00:00 of some base year, with no
//     time zone and no daylight saving applied.
//
//   - Tm: the broken-down calendar record (year, month, day, hour, minute,
//     second, weekday, day-of-year), laid out like C's struct tm so callers
//     porting from a libc environment see familiar fields.
//
// The Epoch record is the build-time configuration both conversions share.
// Changing it changes the meaning of every Timestamp.
package model

import "time"

// Timestamp is a count of seconds since the epoch of a calendar.
type Timestamp uint64

// Tm is a broken-down proleptic Gregorian time.
//
// Year is expressed in years since 1900, Mon is zero-based and MDay is
// one-based, matching struct tm. WDay and YDay are derived values: they are
// filled in by decomposition and ignored by composition. IsDST is always false.
type Tm struct {
	Sec   int   `json:"sec"`   // [0,59]
	Min   int   `json:"min"`   // [0,59]
	Hour  int   `json:"hour"`  // [0,23]
	MDay  int   `json:"mday"`  // [1,31]
	Mon   int   `json:"mon"`   // [0,11]
	Year  int64 `json:"year"`  // years since 1900
	WDay  int   `json:"wday"`  // [0,6], 0 = Sunday
	YDay  int   `json:"yday"`  // [0,365]
	IsDST bool  `json:"isdst"` // always false
}

// FullYear returns the calendar year (Year + 1900).
func (tm Tm) FullYear() int64 { return tm.Year + 1900 }

// Time returns the same wall-clock fields as a UTC time.Time. Years outside
// the range of int are truncated.
func (tm Tm) Time() time.Time {
	return time.Date(int(tm.FullYear()), time.Month(tm.Mon+1), tm.MDay, tm.Hour, tm.Min, tm.Sec, 0, time.UTC)
}

// Weekday returns WDay as a time.Weekday.
func (tm Tm) Weekday() time.Weekday { return time.Weekday(tm.WDay) }

// Equal reports whether tm and other name the same calendar second:
// year, month, day, hour, minute and second. Derived fields are ignored.
func (tm Tm) Equal(other Tm) bool {
	return tm.Year == other.Year && tm.Mon == other.Mon && tm.MDay == other.MDay &&
		tm.Hour == other.Hour && tm.Min == other.Min && tm.Sec == other.Sec
}

// Before returns true if tm is strictly earlier than other, comparing the
// calendar fields lexicographically from year down to second.
func (tm Tm) Before(other Tm) bool {
	if tm.Year != other.Year {
		return tm.Year < other.Year
	}
	a := [...]int{tm.Mon, tm.MDay, tm.Hour, tm.Min, tm.Sec}
	b := [...]int{other.Mon, other.MDay, other.Hour, other.Min, other.Sec}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Epoch is the build-time configuration of a calendar.
//
// The epoch instant is January 1 of Year at 00:00:00. Weekday is the weekday
// of that instant (0 = Sunday), LeapDelta the number of years from Year to the
// first leap year at or after it, and UnixOffset the Unix time of the epoch
// instant, used to translate to and from the external Unix representation.
type Epoch struct {
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Weekday    int    `json:"weekday"`
	LeapDelta  int    `json:"leap_delta"`
	UnixOffset int64  `json:"unix_offset"`
}
