package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
)

// FormatIdeas renders cached content ideas, one block per commemorative date.
func FormatIdeas(records []*domain.IdeaRecord) string {
	if len(records) == 0 {
		return Dim("No commemorative dates in this period.") + "\n"
	}

	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		day := r.Date
		if t, err := (holiday.Holiday{Date: r.Date}).Time(); err == nil {
			day = t.Format("02/01")
		}
		fmt.Fprintf(&b, "%s  %s\n", StyleYellow.Bold(true).Render(day), Bold(r.HolidayName))

		switch r.Status {
		case domain.StatusSuccess:
			for _, idea := range r.Ideas {
				fmt.Fprintf(&b, "  %s %s\n", StylePurple.Render("•"), idea)
			}
		case domain.StatusError:
			fmt.Fprintf(&b, "  %s %s\n", StatusPill(r.Status), StyleRed.Render(r.Error))
		default:
			fmt.Fprintf(&b, "  %s\n", StatusPill(r.Status))
		}
	}
	return b.String()
}
