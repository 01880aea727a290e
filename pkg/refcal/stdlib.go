package refcal

import (
	"context"
	"time"

	"github.com/daviddao/etime/pkg/model"
)

// stdlibMax keeps time.Unix well inside its internal int64 range.
const stdlibMax = 1 << 56

// Stdlib is the time package's calendar in UTC.
type Stdlib struct{}

// NewStdlib returns the time package reference.
func NewStdlib() *Stdlib { return &Stdlib{} }

func (*Stdlib) Name() string { return "stdlib" }

func (*Stdlib) Range() (int64, int64) { return minYear1, stdlibMax }

func (s *Stdlib) Decompose(_ context.Context, unixSec int64) (model.Tm, error) {
	if err := checkRange(s, unixSec); err != nil {
		return model.Tm{}, err
	}
	t := time.Unix(unixSec, 0).UTC()
	return fields(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(),
		int(t.Weekday()), t.YearDay()), nil
}

func (*Stdlib) Close() error { return nil }
