package holiday

import "time"

// Easter returns the date of Easter Sunday in the Gregorian calendar using the
// anonymous (Meeus/Jones/Butcher) algorithm. Exact for every year from 1583.
func Easter(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return Date{Year: year, Month: time.Month(month), Day: day}
}

// NthWeekday returns the n-th occurrence of weekday in the given month.
//
// No bounds check is applied: an n past the last occurrence rolls into the
// following month (the 5th Monday of a month with four Mondays lands in the
// next month). Use NthWeekdayInMonth when n is not known to fit.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) Date {
	first := NewDate(year, month, 1).Weekday()
	day := 1 + (int(weekday)-int(first)+7)%7
	day += (n - 1) * 7
	return NewDate(year, month, day)
}

// NthWeekdayInMonth is NthWeekday with a bounds check. ok is false when n is
// below 1 or the month has fewer than n occurrences of weekday.
func NthWeekdayInMonth(year int, month time.Month, weekday time.Weekday, n int) (d Date, ok bool) {
	if n < 1 {
		return Date{}, false
	}
	d = NthWeekday(year, month, weekday, n)
	if d.Month != month || d.Year != year {
		return Date{}, false
	}
	return d, true
}
