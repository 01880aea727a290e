package etime

import "testing"

func TestFloorDiv(t *testing.T) {
	cases := []struct {
		a, b, q, r int
	}{
		{0, 12, 0, 0},
		{11, 12, 0, 11},
		{12, 12, 1, 0},
		{25, 12, 2, 1},
		{-1, 12, -1, 11},
		{-12, 12, -1, 0},
		{-13, 12, -2, 11},
	}
	for _, tc := range cases {
		q, r := floorDiv(tc.a, tc.b)
		if q != tc.q || r != tc.r {
			t.Fatalf("floorDiv(%d, %d) = %d, %d, want %d, %d", tc.a, tc.b, q, r, tc.q, tc.r)
		}
	}

	q, r := floorDiv(int64(-86401), 86400)
	if q != -2 || r != 86399 {
		t.Fatalf("floorDiv(-86401, 86400) = %d, %d, want -2, 86399", q, r)
	}
}

func TestMonthTables(t *testing.T) {
	lengths := [monthsPerYear]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	sum := 0
	for i, n := range lengths {
		if monthDays[i] != sum {
			t.Fatalf("monthDays[%d]: got %d, want %d", i, monthDays[i], sum)
		}
		leap := sum
		if i > 1 {
			leap++
		}
		if monthDaysLeap[i] != leap {
			t.Fatalf("monthDaysLeap[%d]: got %d, want %d", i, monthDaysLeap[i], leap)
		}
		sum += n
	}
	if sum != daysPerYear {
		t.Fatalf("month lengths sum to %d, want %d", sum, daysPerYear)
	}
}

func TestCycleLengths(t *testing.T) {
	if cycle400Days != 146097 {
		t.Fatalf("cycle400Days: got %d, want 146097", cycle400Days)
	}
	if cycle100Days != 36524 {
		t.Fatalf("cycle100Days: got %d, want 36524", cycle100Days)
	}
	if daysPerLeapCycle != 1461 {
		t.Fatalf("daysPerLeapCycle: got %d, want 1461", daysPerLeapCycle)
	}
}

func TestWeekdayOfJan1(t *testing.T) {
	cases := map[int]int{1: 1, 1601: 1, 1900: 1, 1904: 5, 1970: 4, 2000: 6, 2100: 5}
	for year, want := range cases {
		if got := weekdayOfJan1(year); got != want {
			t.Fatalf("weekdayOfJan1(%d): got %d, want %d", year, got, want)
		}
	}
}
