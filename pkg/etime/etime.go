// Package etime converts between timestamps and broken-down calendar time
// without a time zone database or the time package's calendar.
//
// A Calendar is built once from a model.Epoch and exposes two pure
// conversions:
//
//	Decompose  timestamp -> model.Tm
//	Compose    year, month, day, hour, min, sec -> timestamp
//
// Both use closed-form proleptic Gregorian arithmetic: the day count is
// reduced by whole 400-, 100- and 4-year cycles instead of stepping year by
// year, and the only loop is the month lookup over a 12-entry table. For
// every timestamp t, Compose applied to the fields of Decompose(t) returns t.
// Years are int64 so this holds on 32-bit targets as well.
//
// Neither conversion validates its input. Out-of-range fields produce
// deterministic but meaningless results, and values outside the uint64
// range wrap around. Instants before the epoch are not supported.
//
// The package-level functions use the Unix calendar.
package etime

import "github.com/daviddao/etime/pkg/model"

// Decompose converts Unix seconds into broken-down time.
func Decompose(t model.Timestamp) model.Tm { return Unix.Decompose(t) }

// Compose converts broken-down time into Unix seconds. year counts from
// 1900 and mon is zero-based.
func Compose(year int64, mon, day, hour, min, sec int) model.Timestamp {
	return Unix.Compose(year, mon, day, hour, min, sec)
}
