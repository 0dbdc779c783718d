package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatAnalysis renders the three sections of a market analysis.
func FormatAnalysis(a *domain.MarketAnalysis) string {
	if a == nil {
		return Dim("No market analysis.") + "\n"
	}

	var b strings.Builder

	ov := a.MarketOverview
	b.WriteString(Header(ov.Title))
	b.WriteString("\n")
	writeFacts(&b, "Opportunities", StyleGreen, ov.Opportunities)
	writeFacts(&b, "Challenges", StyleRed, ov.Challenges)
	writeFacts(&b, "Trends", StyleBlue, ov.Trends)

	pp := a.PsychographicProfile
	b.WriteString("\n")
	b.WriteString(Header(pp.Title))
	b.WriteString("\n")
	writeFacts(&b, "Values", StylePurple, pp.Values)
	writeFacts(&b, "Lifestyle", StylePurple, pp.Lifestyle)
	writeFacts(&b, "Pains", StyleYellow, pp.Pains)

	ba := a.BehavioralAnalysis
	b.WriteString("\n")
	b.WriteString(Header(ba.Title))
	b.WriteString("\n")
	for i, stage := range ba.PurchaseJourney {
		fmt.Fprintf(&b, "\n%s %s\n", StyleHeader.Render(fmt.Sprintf("%d.", i+1)), Bold(string(stage.Stage)))
		fmt.Fprintf(&b, "   %s\n", stage.Description)
		if len(stage.Touchpoints) > 0 {
			fmt.Fprintf(&b, "   %s %s\n", Dim("Touchpoints:"), strings.Join(stage.Touchpoints, ", "))
		}
	}
	return b.String()
}

func writeFacts(b *strings.Builder, label string, bullet lipgloss.Style, facts []domain.MarketFact) {
	if len(facts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", Bold(label))
	for _, f := range facts {
		fmt.Fprintf(b, "  %s %s\n", bullet.Render("•"), Bold(f.Point))
		if f.Description != "" {
			fmt.Fprintf(b, "    %s\n", f.Description)
		}
	}
}
