package holiday

import (
	"fmt"
	"testing"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEaster_ReferenceVectors(t *testing.T) {
	cases := map[int]string{
		1583: "1583-04-10",
		1818: "1818-03-22",
		2000: "2000-04-23",
		2008: "2008-03-23",
		2011: "2011-04-24",
		2019: "2019-04-21",
		2023: "2023-04-09",
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
		2038: "2038-04-25",
		2285: "2285-03-22",
	}
	for year, want := range cases {
		t.Run(fmt.Sprint(year), func(t *testing.T) {
			assert.Equal(t, want, Easter(year).String())
		})
	}
}

func TestEaster_AlwaysSundayWithinBounds(t *testing.T) {
	for year := 1583; year <= 3000; year++ {
		e := Easter(year)
		require.Equal(t, time.Sunday, e.Weekday(), "year %d", year)

		earliest := Date{Year: year, Month: time.March, Day: 22}
		latest := Date{Year: year, Month: time.April, Day: 25}
		require.GreaterOrEqual(t, e.String(), earliest.String(), "year %d", year)
		require.LessOrEqual(t, e.String(), latest.String(), "year %d", year)
	}
}

func TestEasterRule_MovableOffsets2024(t *testing.T) {
	assert.Equal(t, "2024-02-13", EasterRule{Offset: CarnivalOffset}.On(2024).String())
	assert.Equal(t, "2024-03-29", EasterRule{Offset: GoodFridayOffset}.On(2024).String())
	assert.Equal(t, "2024-05-30", EasterRule{Offset: CorpusChristiOffset}.On(2024).String())
}

func TestEasterRule_CarnivalAlwaysTuesday(t *testing.T) {
	for year := 1900; year <= 2200; year++ {
		d := EasterRule{Offset: CarnivalOffset}.On(year)
		require.Equal(t, time.Tuesday, d.Weekday(), "year %d", year)
	}
}

func TestNthWeekday_Vectors2024(t *testing.T) {
	assert.Equal(t, "2024-05-12", NthWeekday(2024, time.May, time.Sunday, 2).String())
	assert.Equal(t, "2024-08-11", NthWeekday(2024, time.August, time.Sunday, 2).String())
	assert.Equal(t, "2024-11-28", NthWeekday(2024, time.November, time.Thursday, 4).String())
}

func TestNthWeekday_FirstOfMonthIsTarget(t *testing.T) {
	// 2024-05-01 is a Wednesday.
	assert.Equal(t, "2024-05-01", NthWeekday(2024, time.May, time.Wednesday, 1).String())
	assert.Equal(t, "2024-05-08", NthWeekday(2024, time.May, time.Wednesday, 2).String())
}

func TestNthWeekday_OverflowRollsIntoNextMonth(t *testing.T) {
	// February 2024 has four Fridays; the fifth is March 1.
	assert.Equal(t, "2024-03-01", NthWeekday(2024, time.February, time.Friday, 5).String())
	// ...but five Thursdays, the last on the leap day.
	assert.Equal(t, "2024-02-29", NthWeekday(2024, time.February, time.Thursday, 5).String())
}

func TestNthWeekdayInMonth_BoundsCheck(t *testing.T) {
	d, ok := NthWeekdayInMonth(2024, time.February, time.Thursday, 5)
	require.True(t, ok)
	assert.Equal(t, "2024-02-29", d.String())

	_, ok = NthWeekdayInMonth(2024, time.February, time.Friday, 5)
	assert.False(t, ok)

	_, ok = NthWeekdayInMonth(2024, time.February, time.Friday, 0)
	assert.False(t, ok)

	_, ok = NthWeekdayInMonth(2024, time.December, time.Tuesday, 6)
	assert.False(t, ok)
}

func TestWeekdayRule_BlackFridayMatchesThanksgiving(t *testing.T) {
	thanksgiving := cal.NewBusinessCalendar()
	thanksgiving.AddHoliday(us.ThanksgivingDay)

	rule := WeekdayRule{Month: time.November, Weekday: time.Thursday, N: 4, Offset: 1}
	for year := 1990; year <= 2100; year++ {
		bf := rule.On(year)
		require.Equal(t, time.Friday, bf.Weekday(), "year %d", year)

		eve := bf.AddDays(-1)
		actual, _, _ := thanksgiving.IsHoliday(time.Date(eve.Year, eve.Month, eve.Day, 12, 0, 0, 0, time.UTC))
		require.True(t, actual, "year %d: %s should be Thanksgiving", year, eve)
	}
}

func TestDate_AddDaysCrossesYear(t *testing.T) {
	d := Date{Year: 2024, Month: time.December, Day: 31}
	assert.Equal(t, "2025-01-01", d.AddDays(1).String())
	assert.Equal(t, "2024-12-01", d.AddDays(-30).String())
}
