// Package dates converts between the display date form (d.m.yyyy, also
// accepted with - or / separators) and the ISO calendar form used
// everywhere inside the engine and the store.
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISO is the internal wire layout for calendar dates.
const ISO = "2006-01-02"

// Display is the layout shown to and typed by users.
const Display = "02.01.2006"

// ErrInvalidDate indicates input that is not a calendar date in display form.
var ErrInvalidDate = errors.New("invalid date, use e.g. 1.1.2026 or 01.01.2026")

// Normalize trims the input and unifies the accepted separators to dashes.
// Empty input stays empty.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "-")
	return strings.ReplaceAll(s, "/", "-")
}

// split breaks normalized display input into day, month, year.
func split(s string) (day, month, year int, err error) {
	parts := strings.Split(Normalize(s), "-")
	if len(parts) != 3 {
		return 0, 0, 0, ErrInvalidDate
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, ErrInvalidDate
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

// Valid reports whether s is an acceptable display-form date. The empty
// string is valid; it stands for "no date".
func Valid(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	day, month, year, err := split(s)
	if err != nil {
		return false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 2000 || year > 2100 {
		return false
	}
	return true
}

// Parse converts display-form input into a date at midnight UTC. Empty input
// yields a nil date and no error.
func Parse(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	day, month, year, err := split(s)
	if err != nil {
		return nil, err
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, ErrInvalidDate
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. 31.4. becomes 1.5.); reject that.
	if d.Day() != day || d.Month() != time.Month(month) {
		return nil, fmt.Errorf("%w: no such day %d.%d.%d", ErrInvalidDate, day, month, year)
	}
	return &d, nil
}

// ParseISO converts an ISO date string into a date at midnight UTC.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(ISO, s)
}

// FormatISO renders a nil-able date in ISO form, empty when unset.
func FormatISO(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(ISO)
}

// FormatDisplay renders a nil-able date in display form, empty when unset.
func FormatDisplay(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(Display)
}
