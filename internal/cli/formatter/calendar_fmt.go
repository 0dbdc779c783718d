package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
)

// gridCell is the width of one day column in the month grid.
const gridCell = 11

var weekdayAbbr = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatHolidayList renders holidays as a date, weekday and name table.
func FormatHolidayList(title string, holidays []holiday.Holiday) string {
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n\n")

	if len(holidays) == 0 {
		b.WriteString(Dim("No commemorative dates."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		day, weekday := h.Date, ""
		if t, err := h.Time(); err == nil {
			day = t.Format("02/01")
			weekday = weekdayAbbr[t.Weekday()]
		}
		rows = append(rows, []string{StyleYellow.Render(day), Dim(weekday), h.Name})
	}
	b.WriteString(RenderTable([]string{"DATE", "DAY", "OBSERVANCE"}, rows))
	b.WriteString(Dim(fmt.Sprintf("%d dates", len(holidays))))
	b.WriteString("\n")
	return b.String()
}

// FormatMonthGrid renders a Sunday-first month calendar. Days with an
// observance are highlighted and carry the truncated observance name below
// the day number; the full names follow the grid.
func FormatMonthGrid(year int, month time.Month, holidays []holiday.Holiday) string {
	byDay := make(map[int]holiday.Holiday, len(holidays))
	for _, h := range holidays {
		if t, err := h.Time(); err == nil && t.Year() == year && t.Month() == month {
			byDay[t.Day()] = h
		}
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s %d", domain.MonthTitle(month), year)))
	b.WriteString("\n\n")

	for _, d := range weekdayAbbr {
		b.WriteString(PadRight(Dim(d), gridCell))
	}
	b.WriteString("\n")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	col := int(first.Weekday())

	numbers := make([]string, 7)
	names := make([]string, 7)
	reset := func() {
		for i := range numbers {
			numbers[i] = PadRight("", gridCell)
			names[i] = PadRight("", gridCell)
		}
	}
	flush := func() {
		b.WriteString(strings.TrimRight(strings.Join(numbers, ""), " "))
		b.WriteString("\n")
		if line := strings.TrimRight(strings.Join(names, ""), " "); line != "" {
			b.WriteString(line)
			b.WriteString("\n")
		}
		reset()
	}
	reset()

	for day := 1; day <= days; day++ {
		label := strconv.Itoa(day)
		if h, ok := byDay[day]; ok {
			numbers[col] = PadRight(StyleYellow.Bold(true).Render(label+"*"), gridCell)
			names[col] = PadRight(StyleYellow.Render(Truncate(h.Name, gridCell-1)), gridCell)
		} else {
			numbers[col] = PadRight(label, gridCell)
		}
		col++
		if col == 7 {
			flush()
			col = 0
		}
	}
	if col > 0 {
		flush()
	}

	if len(holidays) > 0 {
		b.WriteString("\n")
		for _, h := range holidays {
			day := h.Date
			if t, err := h.Time(); err == nil {
				day = t.Format("02/01")
			}
			fmt.Fprintf(&b, "%s  %s\n", StyleYellow.Render(day), h.Name)
		}
	}
	return b.String()
}

// FormatRegions lists the federative units and marks the ones with a
// regional calendar.
func FormatRegions(regions []domain.Region, hasOverlay func(code string) bool) string {
	rows := make([][]string, 0, len(regions))
	for _, r := range regions {
		overlay := Dim("--")
		if hasOverlay != nil && hasOverlay(r.Code) {
			overlay = StyleGreen.Render("yes")
		}
		rows = append(rows, []string{Bold(r.Code), r.Name, overlay})
	}
	return RenderTable([]string{"CODE", "NAME", "REGIONAL DATES"}, rows)
}
