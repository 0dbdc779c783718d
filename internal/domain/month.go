package domain

import (
	"time"

	"github.com/alexanderramin/pauta/internal/holiday"
)

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the Portuguese name for a two-digit month number
// ("01".."12"), or "" when out of range.
func MonthName(number string) string {
	if len(number) != 2 || number[0] < '0' || number[0] > '1' || number[1] < '0' || number[1] > '9' {
		return ""
	}
	n := int(number[0]-'0')*10 + int(number[1]-'0')
	if n < 1 || n > 12 {
		return ""
	}
	return monthNames[n-1]
}

// MonthTitle returns the Portuguese name of month.
func MonthTitle(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthNames[month-1]
}

// MonthsToDisplay returns n consecutive "YYYY-MM" keys starting with the month
// of now.
func MonthsToDisplay(now time.Time, n int) []string {
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		d := time.Date(now.Year(), now.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		keys = append(keys, holiday.MonthKey(d.Year(), d.Month()))
	}
	return keys
}
