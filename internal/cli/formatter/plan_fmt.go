package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
)

// FormatPlan renders a plan record: the dates it was planned against, then
// one block per week.
func FormatPlan(rec *domain.PlanRecord) string {
	if rec == nil {
		return Dim("No plan.") + "\n"
	}

	var b strings.Builder
	title := rec.MonthKey
	if rec.Data != nil && rec.Data.Month != "" {
		title = fmt.Sprintf("%s (%s)", rec.Data.Month, rec.MonthKey)
	}
	b.WriteString(Header("Plan " + title))
	b.WriteString("\n")

	switch rec.Status {
	case domain.StatusError:
		fmt.Fprintf(&b, "\n%s %s\n", StatusPill(rec.Status), StyleRed.Render(rec.Error))
		return b.String()
	case domain.StatusLoading:
		fmt.Fprintf(&b, "\n%s\n", StatusPill(rec.Status))
		return b.String()
	}

	if len(rec.Holidays) > 0 {
		b.WriteString("\n")
		b.WriteString(Bold("Commemorative dates"))
		b.WriteString("\n")
		for _, h := range rec.Holidays {
			day := h.Date
			if t, err := h.Time(); err == nil {
				day = t.Format("02/01")
			}
			fmt.Fprintf(&b, "  %s  %s\n", StyleYellow.Render(day), h.Name)
		}
	}

	if rec.Data == nil {
		return b.String()
	}
	for _, w := range rec.Data.Weeks {
		b.WriteString("\n")
		b.WriteString(FormatWeek(w))
	}
	return b.String()
}

// FormatWeek renders one week of a plan inside a box.
func FormatWeek(w domain.WeeklyPlan) string {
	var b strings.Builder

	if len(w.Holidays) > 0 {
		fmt.Fprintf(&b, "%s %s\n\n", Dim("Dates:"), StyleYellow.Render(strings.Join(w.Holidays, ", ")))
	}

	b.WriteString(Bold("Content ideas"))
	b.WriteString("\n")
	for _, idea := range w.GuideIdeas {
		fmt.Fprintf(&b, "  %s %s\n", StylePurple.Render("•"), idea)
	}

	tc := w.TrafficCampaign
	fmt.Fprintf(&b, "\n%s %s\n", Bold("Traffic campaign"), StyleBlue.Render(string(tc.Platform)))
	fmt.Fprintf(&b, "  %s %s\n", Dim("Objective:"), tc.Objective)
	ta := tc.TargetAudience
	fmt.Fprintf(&b, "  %s %s\n", Dim("Audience: "), ta.Description)
	if ta.Location != "" || ta.Age != "" {
		fmt.Fprintf(&b, "  %s %s\n", Dim("          "), Dim(strings.Trim(ta.Location+" · "+ta.Age, " ·")))
	}
	if len(ta.Interests) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", Dim("Interests:"), strings.Join(ta.Interests, ", "))
	}
	if len(tc.Keywords) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", Dim("Keywords: "), strings.Join(tc.Keywords, ", "))
	}
	fmt.Fprintf(&b, "  %s %q", Dim("Ad copy:  "), tc.AdCopySuggestion)

	return RenderBox(fmt.Sprintf("Week %d: %s", w.Week, w.Theme), b.String())
}

// FormatPlanList renders the stored plans of a briefing.
func FormatPlanList(plans []*domain.PlanRecord) string {
	if len(plans) == 0 {
		return Dim("No plans yet.") + "\n"
	}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		month := ""
		if p.Data != nil {
			month = p.Data.Month
		}
		rows = append(rows, []string{Bold(p.MonthKey), month, StatusPill(p.Status), Dim(HumanTimestamp(p.UpdatedAt))})
	}
	return RenderTable([]string{"MONTH", "NAME", "STATUS", "UPDATED"}, rows)
}
