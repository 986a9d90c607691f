// Package calendar decides which days count as working time and turns a
// requested effort into a completion date. Everything here is a pure
// function of the date, the capacity mode and the fixed holiday table.
package calendar

import (
	"math"
	"time"

	"cellplan/internal/models"
)

// easterMonday computes Easter Monday for a year using the Gauss algorithm
// (Easter Sunday + 1 day).
func easterMonday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := (19*a + b - b/4 - ((b-(b+8)/25+1)/3) + 15) % 30
	e := (32 + 2*(b%4) + 2*(c/4) - d - (c % 4)) % 7
	f := d + e - 7*((a+11*d+22*e)/451) + 114
	month := f / 31
	day := f%31 + 1
	sunday := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return sunday.AddDate(0, 0, 1)
}

// Holidays returns the public holidays for a year.
func Holidays(year int) []time.Time {
	fixed := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []time.Time{
		fixed(time.January, 1),
		easterMonday(year),
		fixed(time.May, 1),
		fixed(time.May, 8),
		fixed(time.July, 5),
		fixed(time.July, 6),
		fixed(time.September, 28),
		fixed(time.October, 28),
		fixed(time.November, 17),
		fixed(time.December, 24),
		fixed(time.December, 25),
		fixed(time.December, 26),
	}
}

// IsHoliday reports whether d falls on a public holiday. Around the turn of
// the year the adjacent year's table is consulted too, so that lookahead
// from late December and lookbehind from early January stay correct.
func IsHoliday(d time.Time) bool {
	d = midnight(d)
	table := Holidays(d.Year())
	if d.Month() == time.January {
		table = append(table, Holidays(d.Year()-1)...)
	}
	if d.Month() == time.December {
		table = append(table, Holidays(d.Year()+1)...)
	}
	for _, h := range table {
		if d.Equal(h) {
			return true
		}
	}
	return false
}

// IsWorkingDay reports whether d counts toward the task's effort under the
// given mode. Standard excludes weekends and holidays; Continuous runs
// through weekends and only stops for holidays.
func IsWorkingDay(d time.Time, mode models.CapacityMode) bool {
	if mode != models.Continuous {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return false
		}
	}
	return !IsHoliday(d)
}

// CalculateEndDate walks forward from start, counting only working days,
// and returns the day on which the required effort is exhausted. The result
// is always itself a working day. A non-positive hours value yields the
// zero time; callers treat that as "no end date".
func CalculateEndDate(start time.Time, hours float64, mode models.CapacityMode) time.Time {
	if hours <= 0 {
		return time.Time{}
	}
	daysNeeded := int(math.Ceil(hours / mode.HoursPerDay()))
	current := midnight(start)
	counted := 0
	for {
		if IsWorkingDay(current, mode) {
			counted++
			if counted == daysNeeded {
				return current
			}
		}
		current = current.AddDate(0, 0, 1)
	}
}

// NextWorkingDayAfter returns the first working day strictly after d.
func NextWorkingDayAfter(d time.Time, mode models.CapacityMode) time.Time {
	current := midnight(d).AddDate(0, 0, 1)
	for !IsWorkingDay(current, mode) {
		current = current.AddDate(0, 0, 1)
	}
	return current
}

func midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
