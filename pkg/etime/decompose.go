package etime

import "github.com/daviddao/etime/pkg/model"

// Decompose converts t into broken-down time.
//
// The day count is reduced by whole calendar cycles, largest first, so the
// cost is a fixed number of divisions regardless of how far t is from the
// epoch. Three flags track where the remaining day count starts:
//
//	c400    on a 400-year boundary (a leap year)
//	c100    on a 100-year boundary (a non-leap year unless c400)
//	aligned on the first year of a leap cycle, or a century leading into one
//
// No time zone or daylight saving adjustment is applied.
func (c *Calendar) Decompose(t model.Timestamp) model.Tm {
	var tm model.Tm

	days := uint64(t) / secsPerDay
	work := uint64(t) % secsPerDay

	tm.Hour = int(work / secsPerHour)
	work %= secsPerHour
	tm.Min = int(work / secsPerMin)
	tm.Sec = int(work % secsPerMin)

	tm.WDay = int((uint64(c.epoch.Weekday) + days%daysPerWeek) % daysPerWeek)

	// int64 keeps the year exact for every uint64 timestamp on 32-bit targets.
	year := int64(c.epoch.Year)
	var c100, c400, aligned bool

	k := &c.constants
	switch {
	case days >= k.DaysTo400:
		days -= k.DaysTo400
		year += int64(k.YearsTo400)
		c100, c400, aligned = true, true, true
	case days >= k.DaysTo100:
		days -= k.DaysTo100
		year += int64(k.YearsTo100)
		c100, aligned = true, true
	case days >= k.LeapDeltaDays:
		days -= k.LeapDeltaDays
		year += int64(c.epoch.LeapDelta)
		aligned = true
	}

	year += int64(days/cycle400Days) * cycle400Years
	days %= cycle400Days

	if c400 {
		// The first century after a 400-year boundary has the extra day.
		if days > cycle100Days {
			days--
			year += int64(days/cycle100Days) * cycle100Years
			days %= cycle100Days
			c400 = false
		}
	} else if days >= cycle100Days {
		year += int64(days/cycle100Days) * cycle100Years
		days %= cycle100Days
	}

	// A century that is not a 400-year boundary opens with four common years.
	if c100 && !c400 && days >= daysPerCommon {
		days -= daysPerCommon
		year += leapCycleYears
		c100 = false
	}

	if days >= daysPerLeapCycle {
		year += int64(days/daysPerLeapCycle) * leapCycleYears
		days %= daysPerLeapCycle
		c100, c400 = false, false
	}

	leap := false
	if aligned && (c400 || !c100) {
		if days >= daysPerLeapYear {
			days -= daysPerLeapYear
			year++
		} else {
			leap = true
		}
	}

	table := &monthDays
	if leap {
		table = &monthDaysLeap
	} else {
		year += int64(days / daysPerYear)
		days %= daysPerYear
	}

	d := int(days)
	tm.YDay = d

	i := 0
	for i < len(table) && d >= table[i] {
		i++
	}
	i--
	tm.Mon = i
	tm.MDay = d + 1 - table[i]

	tm.Year = year - tmBaseYear
	tm.IsDST = false
	return tm
}

// DecomposeUnix converts a Unix time into the calendar's epoch and
// decomposes it. Unix times before the epoch wrap around.
func (c *Calendar) DecomposeUnix(sec int64) model.Tm {
	return c.Decompose(c.FromUnix(sec))
}

// FromUnix converts a Unix time into a timestamp counted from the
// calendar's epoch. Unix times before the epoch wrap around.
func (c *Calendar) FromUnix(sec int64) model.Timestamp {
	return model.Timestamp(uint64(sec - c.epoch.UnixOffset))
}
