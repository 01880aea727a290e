// Package refcal provides reference calendars used to cross-check etime.
//
// Three references are available:
//
//	stdlib  the time package in UTC
//	carbon  github.com/dromara/carbon in UTC
//	sqlite  SQLite's strftime, through modernc.org/sqlite
package refcal

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/daviddao/etime/pkg/model"
)

var (
	// ErrOutOfRange is returned for instants a reference cannot represent.
	ErrOutOfRange = errors.New("instant outside reference range")

	// ErrUnknownReference is returned by Open for an unrecognised name.
	ErrUnknownReference = errors.New("unknown reference calendar")
)

// Names lists the references Open accepts.
func Names() []string { return []string{"stdlib", "carbon", "sqlite"} }

// Open returns the reference called name. dsn is only used by sqlite and
// defaults to an in-memory database.
func Open(name, dsn string) (Reference, error) {
	switch strings.ToLower(name) {
	case "stdlib", "time":
		return NewStdlib(), nil
	case "carbon":
		return NewCarbon(), nil
	case "sqlite":
		return NewSQLite(dsn)
	default:
		return nil, errors.Wrapf(ErrUnknownReference, "%q (want one of %s)", name, strings.Join(Names(), ", "))
	}
}

// Year 1 through year 9999, the span every reference agrees on.
var (
	minYear1    = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxYear9999 = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

func checkRange(r Reference, unixSec int64) error {
	lo, hi := r.Range()
	if unixSec < lo || unixSec > hi {
		return errors.Wrapf(ErrOutOfRange, "%s: %d not in [%d, %d]", r.Name(), unixSec, lo, hi)
	}
	return nil
}

// fields builds a model.Tm from one-based month and day-of-year values.
func fields(year, month, day, hour, min, sec, wday, yday int) model.Tm {
	return model.Tm{
		Sec:  sec,
		Min:  min,
		Hour: hour,
		MDay: day,
		Mon:  month - 1,
		Year: int64(year - 1900),
		WDay: wday,
		YDay: yday - 1,
	}
}
