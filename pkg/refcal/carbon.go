package refcal

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/dromara/carbon/v2"

	"github.com/daviddao/etime/pkg/model"
)

// Carbon is github.com/dromara/carbon in UTC, limited to four-digit years.
type Carbon struct{}

// NewCarbon returns the carbon reference.
func NewCarbon() *Carbon { return &Carbon{} }

func (*Carbon) Name() string { return "carbon" }

func (*Carbon) Range() (int64, int64) { return minYear1, maxYear9999 }

func (c *Carbon) Decompose(_ context.Context, unixSec int64) (model.Tm, error) {
	if err := checkRange(c, unixSec); err != nil {
		return model.Tm{}, err
	}
	t := carbon.CreateFromTimestamp(unixSec, "UTC")
	if t.Error != nil {
		return model.Tm{}, errors.Wrapf(t.Error, "carbon: timestamp %d", unixSec)
	}
	return fields(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
		t.DayOfWeek(), t.DayOfYear()), nil
}

func (*Carbon) Close() error { return nil }
