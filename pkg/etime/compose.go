package etime

import "github.com/daviddao/etime/pkg/model"

// Compose converts a calendar date and time into a timestamp. year counts
// from 1900 and mon is zero-based, as in model.Tm.
//
// Inputs are not validated. A month outside [0,11] is folded into the year;
// other out-of-range fields carry into the next unit through the arithmetic
// (day 32 of January is February 1). Years before the epoch and results past
// the end of the uint64 range wrap around.
func (c *Calendar) Compose(year int64, mon, day, hour, min, sec int) model.Timestamp {
	carry, mon := floorDiv(mon, monthsPerYear)
	y := year + int64(carry) + tmBaseYear - int64(c.epoch.Year)

	var days int64
	var c100, c400, aligned bool

	k := &c.constants
	switch {
	case y >= int64(k.YearsTo400):
		y -= int64(k.YearsTo400)
		days += int64(k.DaysTo400)
		c100, c400, aligned = true, true, true
	case y >= int64(k.YearsTo100):
		y -= int64(k.YearsTo100)
		days += int64(k.DaysTo100)
		c100 = true
	case y >= int64(c.epoch.LeapDelta):
		y -= int64(c.epoch.LeapDelta)
		days += int64(k.LeapDeltaDays)
		aligned = true
	}

	days += y / cycle400Years * cycle400Days
	y %= cycle400Years

	if y >= cycle100Years {
		days += y / cycle100Years * cycle100Days
		y %= cycle100Years
		if c400 {
			days++
			c400 = false
		}
		aligned = false
	}

	if c100 && !c400 && y >= leapCycleYears {
		y -= leapCycleYears
		days += daysPerCommon
		c100 = false
		aligned = true
	}

	days += y * daysPerYear
	if y >= leapCycleYears {
		days += y / leapCycleYears
		y %= leapCycleYears
		aligned = true
	}

	// Count the leap day of the current cycle once it is behind us.
	if aligned && (y > 0 || (y == 0 && mon > 1)) {
		days++
	}

	days += int64(monthDays[mon])
	days += int64(day) - 1

	return model.Timestamp(uint64(((days*24+int64(hour))*60+int64(min))*60 + int64(sec)))
}

// ComposeTm composes the calendar fields of tm. WDay, YDay and IsDST are
// ignored.
func (c *Calendar) ComposeTm(tm model.Tm) model.Timestamp {
	return c.Compose(tm.Year, tm.Mon, tm.MDay, tm.Hour, tm.Min, tm.Sec)
}

// ToUnix converts a timestamp counted from the calendar's epoch into Unix
// time.
func (c *Calendar) ToUnix(t model.Timestamp) int64 {
	return int64(t) + c.epoch.UnixOffset
}
