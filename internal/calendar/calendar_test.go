package calendar

import (
	"math"
	"testing"
	"time"

	"cellplan/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// Holidays
// ---------------------------------------------------------------------------

func TestEasterMonday(t *testing.T) {
	// Easter Sunday falls on 5 April 2026 and 28 March 2027.
	cases := map[int]time.Time{
		2024: date(2024, time.April, 1),
		2025: date(2025, time.April, 21),
		2026: date(2026, time.April, 6),
		2027: date(2027, time.March, 29),
	}
	for year, want := range cases {
		if got := easterMonday(year); !got.Equal(want) {
			t.Errorf("easterMonday(%d) = %s, want %s", year, got.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
}

func TestIsHolidayFixedDays(t *testing.T) {
	for _, d := range []time.Time{
		date(2026, time.January, 1),
		date(2026, time.May, 1),
		date(2026, time.May, 8),
		date(2026, time.July, 5),
		date(2026, time.July, 6),
		date(2026, time.September, 28),
		date(2026, time.October, 28),
		date(2026, time.November, 17),
		date(2026, time.December, 24),
		date(2026, time.December, 25),
		date(2026, time.December, 26),
		date(2026, time.April, 6), // Easter Monday
	} {
		if !IsHoliday(d) {
			t.Errorf("IsHoliday(%s) = false, want true", d.Format("2006-01-02"))
		}
	}
	if IsHoliday(date(2026, time.January, 5)) {
		t.Error("2026-01-05 should not be a holiday")
	}
}

// ---------------------------------------------------------------------------
// Working days
// ---------------------------------------------------------------------------

func TestStandardExcludesWeekends(t *testing.T) {
	// Every Saturday and Sunday of 2026 is a non-working day in standard mode.
	d := date(2026, time.January, 1)
	for d.Year() == 2026 {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			if IsWorkingDay(d, models.Standard) {
				t.Fatalf("IsWorkingDay(%s, standard) = true on a weekend", d.Format("2006-01-02"))
			}
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestContinuousCountsWeekends(t *testing.T) {
	sat := date(2026, time.January, 10)
	if !IsWorkingDay(sat, models.Continuous) {
		t.Error("continuous mode should count Saturdays")
	}
	if IsWorkingDay(sat, models.Standard) {
		t.Error("standard mode should not count Saturdays")
	}
}

func TestHolidayStopsBothModes(t *testing.T) {
	mayday := date(2026, time.May, 1) // a Friday
	if IsWorkingDay(mayday, models.Standard) {
		t.Error("standard mode should not count holidays")
	}
	if IsWorkingDay(mayday, models.Continuous) {
		t.Error("continuous mode should not count holidays")
	}
}

// ---------------------------------------------------------------------------
// End-date calculation
// ---------------------------------------------------------------------------

func TestCalculateEndDateStandard(t *testing.T) {
	// 15 hours at 7.5 h/day needs two working days: Mon 5.1. and Tue 6.1.
	got := CalculateEndDate(date(2026, time.January, 5), 15, models.Standard)
	if want := date(2026, time.January, 6); !got.Equal(want) {
		t.Errorf("end = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestCalculateEndDateContinuous(t *testing.T) {
	// 15 hours at 24 h/day fits in one day.
	got := CalculateEndDate(date(2026, time.January, 5), 15, models.Continuous)
	if want := date(2026, time.January, 5); !got.Equal(want) {
		t.Errorf("end = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestCalculateEndDateSkipsWeekend(t *testing.T) {
	// Thu 8.1. + 15 hours standard: Thu and Fri count, end is Friday.
	got := CalculateEndDate(date(2026, time.January, 8), 15, models.Standard)
	if want := date(2026, time.January, 9); !got.Equal(want) {
		t.Errorf("end = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	// Fri 9.1. + 15 hours standard: Friday counts, weekend skipped, end Monday.
	got = CalculateEndDate(date(2026, time.January, 9), 15, models.Standard)
	if want := date(2026, time.January, 12); !got.Equal(want) {
		t.Errorf("end = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestCalculateEndDateContinuousOverWeekendAndHoliday(t *testing.T) {
	// Sat 4.7. counts in continuous mode; 5.7. and 6.7. are holidays, so
	// 48 hours land on Tuesday 7.7.
	got := CalculateEndDate(date(2026, time.July, 4), 48, models.Continuous)
	if want := date(2026, time.July, 7); !got.Equal(want) {
		t.Errorf("end = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestCalculateEndDateStartOnNonWorkingDay(t *testing.T) {
	// Starting on a Saturday in standard mode: the walk begins counting on
	// Monday.
	got := CalculateEndDate(date(2026, time.January, 3), 7.5, models.Standard)
	if want := date(2026, time.January, 5); !got.Equal(want) {
		t.Errorf("end = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestCalculateEndDateNonPositiveHours(t *testing.T) {
	if got := CalculateEndDate(date(2026, time.January, 5), 0, models.Standard); !got.IsZero() {
		t.Errorf("zero hours should yield the zero time, got %s", got)
	}
	if got := CalculateEndDate(date(2026, time.January, 5), -3, models.Continuous); !got.IsZero() {
		t.Errorf("negative hours should yield the zero time, got %s", got)
	}
}

func TestCalculateEndDateProperties(t *testing.T) {
	// The result is always a working day, and the working days in
	// [start, result] match the required count.
	starts := []time.Time{
		date(2026, time.January, 5),
		date(2026, time.April, 3), // just before Easter
		date(2026, time.June, 30),
		date(2026, time.December, 22),
	}
	for _, start := range starts {
		for _, mode := range []models.CapacityMode{models.Standard, models.Continuous} {
			for _, hours := range []float64{1, 7.5, 15, 40, 100} {
				end := CalculateEndDate(start, hours, mode)
				if !IsWorkingDay(end, mode) {
					t.Fatalf("end %s is not a working day (%s, %.1fh)", end.Format("2006-01-02"), mode, hours)
				}
				needed := int(math.Ceil(hours / mode.HoursPerDay()))
				counted := 0
				for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
					if IsWorkingDay(d, mode) {
						counted++
					}
				}
				if counted != needed {
					t.Fatalf("start %s mode %s hours %.1f: counted %d working days, want %d",
						start.Format("2006-01-02"), mode, hours, counted, needed)
				}
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Next working day
// ---------------------------------------------------------------------------

func TestNextWorkingDayAfter(t *testing.T) {
	// Tue 6.1. -> Wed 7.1.
	got := NextWorkingDayAfter(date(2026, time.January, 6), models.Standard)
	if want := date(2026, time.January, 7); !got.Equal(want) {
		t.Errorf("next = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	// Fri 9.1. -> Mon 12.1. in standard, Sat 10.1. in continuous.
	got = NextWorkingDayAfter(date(2026, time.January, 9), models.Standard)
	if want := date(2026, time.January, 12); !got.Equal(want) {
		t.Errorf("next = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	got = NextWorkingDayAfter(date(2026, time.January, 9), models.Continuous)
	if want := date(2026, time.January, 10); !got.Equal(want) {
		t.Errorf("next = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	// 23.12. -> 28.12. in standard: 24.-26. are holidays, 27. is a Sunday.
	got = NextWorkingDayAfter(date(2026, time.December, 23), models.Standard)
	if want := date(2026, time.December, 28); !got.Equal(want) {
		t.Errorf("next = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}
