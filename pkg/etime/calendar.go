package etime

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/daviddao/etime/pkg/model"
)

var (
	// ErrInvalidEpoch marks errors returned by New for inconsistent epochs.
	ErrInvalidEpoch = errors.New("invalid epoch")
	// ErrUnknownEpoch is returned by Lookup for names with no profile.
	ErrUnknownEpoch = errors.New("unknown epoch")
)

// Built-in epoch configurations.
var (
	UnixEpoch     = model.Epoch{Name: "unix", Year: 1970, Weekday: 4, LeapDelta: 2, UnixOffset: 0}
	NTPEpoch      = model.Epoch{Name: "ntp", Year: 1900, Weekday: 1, LeapDelta: 4, UnixOffset: -2208988800}
	HFSEpoch      = model.Epoch{Name: "hfs", Year: 1904, Weekday: 5, LeapDelta: 0, UnixOffset: -2082844800}
	FileTimeEpoch = model.Epoch{Name: "filetime", Year: 1601, Weekday: 1, LeapDelta: 3, UnixOffset: -11644473600}
	Y2KEpoch      = model.Epoch{Name: "y2k", Year: 2000, Weekday: 6, LeapDelta: 0, UnixOffset: 946684800}
)

// Calendars for the built-in epochs.
var (
	Unix     = MustNew(UnixEpoch)
	NTP      = MustNew(NTPEpoch)
	HFS      = MustNew(HFSEpoch)
	FileTime = MustNew(FileTimeEpoch)
	Y2K      = MustNew(Y2KEpoch)
)

// Calendar converts between timestamps counted from one epoch and
// broken-down time. It is immutable and safe for concurrent use.
type Calendar struct {
	epoch     model.Epoch
	constants Constants
}

// Constants are the cycle offsets derived from an epoch. The peeling in
// Decompose and Compose starts by jumping from the epoch year to the nearest
// 400-year boundary, 100-year boundary or first leap year, whichever the
// timestamp reaches.
type Constants struct {
	YearsTo400    int    `json:"years_to_400"`
	DaysTo400     uint64 `json:"days_to_400"`
	YearsTo100    int    `json:"years_to_100"`
	DaysTo100     uint64 `json:"days_to_100"`
	LeapDeltaDays uint64 `json:"leap_delta_days"`
}

// New validates e and derives its cycle constants.
func New(e model.Epoch) (*Calendar, error) {
	if err := validate(e); err != nil {
		return nil, err
	}
	return &Calendar{epoch: e, constants: derive(e)}, nil
}

// MustNew is like New but panics if e is invalid.
func MustNew(e model.Epoch) *Calendar {
	c, err := New(e)
	if err != nil {
		panic(err)
	}
	return c
}

// Epoch returns the configuration the calendar was built from.
func (c *Calendar) Epoch() model.Epoch { return c.epoch }

// Constants returns the derived cycle offsets.
func (c *Calendar) Constants() Constants { return c.constants }

// Name returns the epoch name.
func (c *Calendar) Name() string { return c.epoch.Name }

// Profiles returns the built-in calendars in a stable order.
func Profiles() []*Calendar {
	return []*Calendar{Unix, NTP, HFS, FileTime, Y2K}
}

// Lookup returns the built-in calendar with the given name, ignoring case.
// A decimal year such as "1750" selects ForYear.
func Lookup(name string) (*Calendar, error) {
	for _, c := range Profiles() {
		if strings.EqualFold(c.epoch.Name, name) {
			return c, nil
		}
	}
	if year, err := strconv.Atoi(name); err == nil {
		return ForYear(year)
	}
	return nil, errors.Wrapf(ErrUnknownEpoch, "%q", name)
}

// ForYear returns a calendar whose epoch is January 1 of year, named after
// the year.
func ForYear(year int) (*Calendar, error) {
	e := model.Epoch{Name: strconv.Itoa(year), Year: year}
	if year >= 1 && int64(year) <= maxEpochYear {
		e.Weekday = weekdayOfJan1(year)
		e.LeapDelta = firstLeapDelta(year)
		e.UnixOffset = (daysBeforeYear(year) - daysBeforeYear(1970)) * secsPerDay
	}
	return New(e)
}

func derive(e model.Epoch) Constants {
	y400 := (e.Year+cycle400Years-1)/cycle400Years*cycle400Years - e.Year
	y100 := (e.Year+cycle100Years-1)/cycle100Years*cycle100Years - e.Year

	// Neither span crosses a leap century: the only centuries inside
	// [Year, Year+y400) are non-leap, and there are none before Year+y100.
	d400 := uint64(y400/leapCycleYears)*daysPerLeapCycle +
		uint64(y400%leapCycleYears)*daysPerYear - uint64(y400/cycle100Years)
	d100 := uint64(y100/leapCycleYears)*daysPerLeapCycle +
		uint64(y100%leapCycleYears)*daysPerYear

	return Constants{
		YearsTo400:    y400,
		DaysTo400:     d400,
		YearsTo100:    y100,
		DaysTo100:     d100,
		LeapDeltaDays: uint64(e.LeapDelta) * daysPerYear,
	}
}

// maxEpochYear is the last year whose January 1 has a Unix time that fits
// in int64.
const maxEpochYear int64 = 292277026596

func validate(e model.Epoch) error {
	if e.Year < 1 {
		return errors.Mark(errors.Newf("epoch %q: base year %d is before year 1", e.Name, e.Year), ErrInvalidEpoch)
	}
	if int64(e.Year) > maxEpochYear {
		return errors.Mark(errors.Newf("epoch %q: base year %d is after year %d, the last with an int64 unix offset",
			e.Name, e.Year, maxEpochYear), ErrInvalidEpoch)
	}

	var err error
	if e.Weekday < 0 || e.Weekday >= daysPerWeek {
		err = errors.CombineErrors(err, errors.Newf("weekday %d out of range [0,6]", e.Weekday))
	} else if want := weekdayOfJan1(e.Year); e.Weekday != want {
		err = errors.CombineErrors(err, errors.Newf("weekday %d, but %d-01-01 is weekday %d", e.Weekday, e.Year, want))
	}
	if want := firstLeapDelta(e.Year); e.LeapDelta != want {
		err = errors.CombineErrors(err, errors.Newf("leap delta %d, but the first leap year is %d", e.LeapDelta, e.Year+want))
	}
	if want := (daysBeforeYear(e.Year) - daysBeforeYear(1970)) * secsPerDay; e.UnixOffset != want {
		err = errors.CombineErrors(err, errors.Newf("unix offset %d, want %d", e.UnixOffset, want))
	}
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "epoch %q", e.Name), ErrInvalidEpoch)
	}
	return nil
}

// weekdayOfJan1 returns the weekday (0 = Sunday) of January 1 of year.
// 0001-01-01 was a Monday.
func weekdayOfJan1(year int) int {
	return int((daysBeforeYear(year) + 1) % daysPerWeek)
}

func firstLeapDelta(year int) int {
	d := 0
	for !isLeap(year + d) {
		d++
	}
	return d
}
