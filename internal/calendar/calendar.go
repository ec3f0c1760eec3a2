// Package calendar provides timezone-independent calendar dates for
// diary and watch-log entries. Export dates are naked YYYY-MM-DD
// strings; parsing them through a generic datetime parser assumes UTC
// midnight and shifts the day under a negative offset, so all date
// handling in the pipeline goes through this package instead.
package calendar

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date: a (year, month, day) triple with no time of
// day and no timezone. The zero value is not a valid date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Parse converts a raw export date string to a Date. The input must be
// three dash-separated numeric parts (zero padding optional). Malformed
// or empty input reports ok=false, never a default date.
func Parse(raw string) (Date, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return Date{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return Date{}, false
		}
		nums[i] = n
	}

	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if d.Month > 12 || d.Day > 31 {
		return Date{}, false
	}
	// time.Date normalizes overflow ("2024-02-31" becomes March 2), so a
	// changed day after the round trip means the date does not exist.
	if t := d.time(); t.Day() != d.Day || t.Month() != time.Month(d.Month) {
		return Date{}, false
	}
	return d, true
}

// String renders the date in zero-padded YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare orders two dates numerically by (year, month, day).
// It returns -1, 0, or +1.
func (d Date) Compare(o Date) int {
	if c := cmp.Compare(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, o.Day)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool { return d.Compare(o) == 0 }

// Weekday returns the day of the week for this date.
func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

// MonthLabel returns the "Jan 2006" style month/year bucket label used
// by the monthly time series.
func (d Date) MonthLabel() string {
	return d.time().Format("Jan 2006")
}

// DaysUntil returns the number of whole days from d to o. The result
// is negative when o is earlier than d.
func (d Date) DaysUntil(o Date) int {
	return int(o.time().Sub(d.time()) / (24 * time.Hour))
}

// time materializes the date at noon UTC for calendar arithmetic.
// The value never leaves this package.
func (d Date) time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 12, 0, 0, 0, time.UTC)
}
