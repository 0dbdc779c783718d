// Package holiday computes the calendar of commemorative dates used to anchor
// marketing plans: national observances (fixed, Easter-relative and
// weekday-relative) merged with region-specific overlays.
package holiday

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// dateLayout is the fixed-width layout of Holiday.Date. Lexicographic order on
// strings in this layout is chronological order.
const dateLayout = "2006-01-02"

// nameSeparator joins the names of observances that fall on the same date.
const nameSeparator = " / "

// Holiday is a named observance on a calendar date.
type Holiday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

// Time returns the holiday date as midnight UTC.
func (h Holiday) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, h.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing holiday date %q: %w", h.Date, err)
	}
	return t, nil
}

// InMonth reports whether the holiday falls in the month identified by a
// "YYYY-MM" key.
func (h Holiday) InMonth(monthKey string) bool {
	return strings.HasPrefix(h.Date, monthKey+"-")
}

// Date is a proleptic Gregorian calendar date without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes year, month and day the way time.Date does, so day 32 of
// January becomes February 1.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// AddDays returns the date n days later (earlier when n is negative).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MonthKey formats a year and month as "YYYY-MM".
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseMonthKey parses a "YYYY-MM" key.
func ParseMonthKey(key string) (int, time.Month, error) {
	yearStr, monthStr, ok := strings.Cut(key, "-")
	if !ok || len(yearStr) != 4 || len(monthStr) != 2 {
		return 0, 0, fmt.Errorf("month key %q must have the form YYYY-MM", key)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, fmt.Errorf("month key %q: invalid year: %w", key, err)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month key %q: month must be 01-12", key)
	}
	return year, time.Month(month), nil
}

// mergeName appends name to existing unless existing already contains it,
// compared with Unicode case folding.
func mergeName(existing, name string) string {
	if strings.Contains(foldCase(existing), foldCase(name)) {
		return existing
	}
	return existing + nameSeparator + name
}

// foldCase builds a fresh Caser per call; Casers carry state and must not be
// shared between goroutines.
func foldCase(s string) string {
	return cases.Fold().String(s)
}
