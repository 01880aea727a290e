package etime

import "golang.org/x/exp/constraints"

const (
	secsPerMin  = 60
	secsPerHour = 60 * secsPerMin
	secsPerDay  = 24 * secsPerHour

	daysPerWeek     = 7
	daysPerYear     = 365
	daysPerLeapYear = 366

	// A leap cycle is four years starting with a leap year. A common cycle
	// is the four years following a century that is not a multiple of 400.
	leapCycleYears   = 4
	daysPerLeapCycle = 3*daysPerYear + daysPerLeapYear
	daysPerCommon    = 4 * daysPerYear

	// The 100-year cycle length holds for centuries starting on a non-leap
	// year. A century starting on a 400-year boundary is one day longer.
	cycle100Years = 100
	cycle100Days  = 24*daysPerLeapYear + 76*daysPerYear
	cycle400Years = 400
	cycle400Days  = 4*cycle100Days + 1

	// tm.Year counts from this year.
	tmBaseYear = 1900

	monthsPerYear = 12
)

// Cumulative days before the start of each month.
var (
	monthDays     = [monthsPerYear]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
	monthDaysLeap = [monthsPerYear]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335}
)

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// floorDiv divides a by a positive b, rounding the quotient toward negative
// infinity so the remainder is always in [0,b).
func floorDiv[T constraints.Signed](a, b T) (q, r T) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

// daysBeforeYear returns the number of days from 0001-01-01 to January 1
// of year in the proleptic Gregorian calendar.
func daysBeforeYear(year int) int64 {
	y := int64(year) - 1
	return y*daysPerYear + y/4 - y/100 + y/400
}
