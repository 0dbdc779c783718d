// Package export renders a briefing's analysis and plan as a Markdown report
// and, through goldmark, as a standalone HTML page.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// FilePrefix is the base of every exported file name.
const FilePrefix = "Plano_Estrategico_"

// Raw HTML in model output is escaped; WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Report is everything that goes into an export. Plan may be nil when only
// the analysis exists.
type Report struct {
	Briefing    *domain.Briefing
	Analysis    *domain.MarketAnalysis
	Plan        *domain.PlanRecord
	Ideas       []*domain.IdeaRecord
	GeneratedAt time.Time
}

// FileName returns Plano_Estrategico_<YYYY-MM-DD>.<ext> for the given day.
func FileName(day time.Time, ext string) string {
	return FilePrefix + day.Format("2006-01-02") + "." + strings.TrimPrefix(ext, ".")
}

// Markdown renders the report.
func Markdown(r Report) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Plano Estratégico\n\n")
	if r.Briefing != nil {
		fmt.Fprintf(&b, "**Empresa:** %s\n\n", oneLine(r.Briefing.Description))
		if r.Briefing.RegionCode != "" {
			fmt.Fprintf(&b, "**Região:** %s\n\n", r.Briefing.RegionName())
		}
	}
	fmt.Fprintf(&b, "_Gerado em %s_\n\n", r.GeneratedAt.Format("02/01/2006"))

	if r.Analysis != nil {
		writeAnalysis(&b, r.Analysis)
	}
	if r.Plan != nil && r.Plan.Data != nil {
		writePlan(&b, r.Plan)
	}
	if len(r.Ideas) > 0 {
		writeIdeas(&b, r.Ideas)
	}
	return b.Bytes()
}

// HTML converts the Markdown rendering of the report into a complete page.
func HTML(r Report) ([]byte, error) {
	var body bytes.Buffer
	if err := mdRenderer.Convert(Markdown(r), &body); err != nil {
		return nil, fmt.Errorf("rendering html: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(title(r)))
	page.WriteString("<style>body{font-family:sans-serif;max-width:52rem;margin:2rem auto;line-height:1.5}h2{border-bottom:1px solid #ddd}</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

func title(r Report) string {
	if r.Plan != nil && r.Plan.Data != nil && r.Plan.Data.Month != "" {
		return "Plano Estratégico - " + r.Plan.Data.Month
	}
	return "Plano Estratégico"
}

func writeAnalysis(b *bytes.Buffer, a *domain.MarketAnalysis) {
	b.WriteString("## Análise de Mercado\n\n")

	writeFactSection(b, a.MarketOverview.Title, []factGroup{
		{"Oportunidades", a.MarketOverview.Opportunities},
		{"Desafios", a.MarketOverview.Challenges},
		{"Tendências", a.MarketOverview.Trends},
	})
	writeFactSection(b, a.PsychographicProfile.Title, []factGroup{
		{"Valores", a.PsychographicProfile.Values},
		{"Estilo de vida", a.PsychographicProfile.Lifestyle},
		{"Dores", a.PsychographicProfile.Pains},
	})

	fmt.Fprintf(b, "### %s\n\n", a.BehavioralAnalysis.Title)
	for _, s := range a.BehavioralAnalysis.PurchaseJourney {
		fmt.Fprintf(b, "- **%s:** %s", s.Stage, oneLine(s.Description))
		if len(s.Touchpoints) > 0 {
			fmt.Fprintf(b, " (pontos de contato: %s)", strings.Join(s.Touchpoints, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

type factGroup struct {
	label string
	facts []domain.MarketFact
}

func writeFactSection(b *bytes.Buffer, heading string, groups []factGroup) {
	fmt.Fprintf(b, "### %s\n\n", heading)
	for _, g := range groups {
		if len(g.facts) == 0 {
			continue
		}
		fmt.Fprintf(b, "**%s**\n\n", g.label)
		for _, f := range g.facts {
			fmt.Fprintf(b, "- **%s:** %s\n", oneLine(f.Point), oneLine(f.Description))
		}
		b.WriteString("\n")
	}
}

func writePlan(b *bytes.Buffer, rec *domain.PlanRecord) {
	p := rec.Data
	fmt.Fprintf(b, "## Planejamento de %s\n\n", p.Month)

	if len(rec.Holidays) > 0 {
		b.WriteString("**Datas do mês**\n\n")
		for _, h := range rec.Holidays {
			fmt.Fprintf(b, "- %s: %s\n", displayDate(h), h.Name)
		}
		b.WriteString("\n")
	}

	for _, w := range p.Weeks {
		fmt.Fprintf(b, "### Semana %d: %s\n\n", w.Week, oneLine(w.Theme))
		if len(w.Holidays) > 0 {
			fmt.Fprintf(b, "**Datas:** %s\n\n", strings.Join(w.Holidays, ", "))
		}
		b.WriteString("**Ideias de conteúdo**\n\n")
		for i, idea := range w.GuideIdeas {
			fmt.Fprintf(b, "%d. %s\n", i+1, oneLine(idea))
		}
		b.WriteString("\n")

		c := w.TrafficCampaign
		fmt.Fprintf(b, "**Campanha de tráfego (%s)**\n\n", c.Platform)
		fmt.Fprintf(b, "- Objetivo: %s\n", oneLine(c.Objective))
		fmt.Fprintf(b, "- Público: %s (%s, %s)\n", oneLine(c.TargetAudience.Description), c.TargetAudience.Location, c.TargetAudience.Age)
		if len(c.TargetAudience.Interests) > 0 {
			fmt.Fprintf(b, "- Interesses: %s\n", strings.Join(c.TargetAudience.Interests, ", "))
		}
		fmt.Fprintf(b, "- Anúncio: %s\n", oneLine(c.AdCopySuggestion))
		if len(c.Keywords) > 0 {
			fmt.Fprintf(b, "- Palavras-chave: %s\n", strings.Join(c.Keywords, ", "))
		}
		b.WriteString("\n")
	}
}

func writeIdeas(b *bytes.Buffer, records []*domain.IdeaRecord) {
	b.WriteString("## Ideias para Datas Comemorativas\n\n")
	for _, rec := range records {
		if !rec.Reusable() || len(rec.Ideas) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s (%s)\n\n", rec.HolidayName, displayDate(holiday.Holiday{Date: rec.Date}))
		for _, idea := range rec.Ideas {
			fmt.Fprintf(b, "- %s\n", oneLine(idea))
		}
		b.WriteString("\n")
	}
}

// displayDate formats a holiday date as DD/MM, or the raw value when it
// does not parse.
func displayDate(h holiday.Holiday) string {
	t, err := h.Time()
	if err != nil {
		return h.Date
	}
	return t.Format("02/01")
}

// oneLine collapses line breaks so model text cannot break list items.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
