package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
)

// FormatBriefingList renders briefings as a table, newest first as given.
func FormatBriefingList(briefings []*domain.Briefing) string {
	if len(briefings) == 0 {
		return Dim("No briefings yet. Create one with `pauta briefing new`.") + "\n"
	}

	rows := make([][]string, 0, len(briefings))
	for _, b := range briefings {
		region := b.RegionName()
		if region == "" {
			region = Dim("national")
		}
		rows = append(rows, []string{
			TruncID(b.ID),
			b.Summary(48),
			region,
			Dim(HumanTimestamp(b.CreatedAt)),
		})
	}
	return RenderTable([]string{"ID", "COMPANY", "REGION", "CREATED"}, rows)
}

// BriefingOverview summarizes the generation state of one briefing.
type BriefingOverview struct {
	Briefing *domain.Briefing
	Analysis *domain.AnalysisRecord
	Plans    []*domain.PlanRecord
}

// FormatBriefingDetail renders a briefing with its analysis and plan states.
func FormatBriefingDetail(o BriefingOverview) string {
	b := o.Briefing
	var sb strings.Builder

	region := b.RegionName()
	if region == "" {
		region = "national only"
	}
	fmt.Fprintf(&sb, "%s %s\n", Dim("ID:      "), b.ID)
	fmt.Fprintf(&sb, "%s %s\n", Dim("Region:  "), region)
	if b.Model != "" {
		fmt.Fprintf(&sb, "%s %s\n", Dim("Model:   "), b.Model)
	}
	fmt.Fprintf(&sb, "%s %s\n\n", Dim("Created: "), ShortDate(b.CreatedAt))
	sb.WriteString(Wrap(b.Description, 72))
	sb.WriteString("\n\n")

	var status domain.GenerationStatus
	if o.Analysis != nil {
		status = o.Analysis.Status
	}
	fmt.Fprintf(&sb, "%s %s\n", Dim("Analysis:"), StatusPill(status))
	if o.Analysis != nil && o.Analysis.Status == domain.StatusError {
		fmt.Fprintf(&sb, "          %s\n", StyleRed.Render(o.Analysis.Error))
	}

	if len(o.Plans) == 0 {
		fmt.Fprintf(&sb, "%s %s", Dim("Plans:   "), StatusPill(""))
	} else {
		sb.WriteString(Dim("Plans:"))
		for _, p := range o.Plans {
			fmt.Fprintf(&sb, "\n  %s  %s", Bold(p.MonthKey), StatusPill(p.Status))
		}
	}

	return RenderBox(b.Summary(40), sb.String())
}
