package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits", "Finados", 10, "Finados"},
		{"exact", "0123456789", 10, "0123456789"},
		{"ascii", "Dia das Crianças", 10, "Dia das C…"},
		{"accented", "Proclamação da República", 10, "Proclamaç…"},
		{"combining mark stays whole", "Cafe\u0301 com leite", 5, "Cafe\u0301…"},
		{"wide emoji", "🎉🎉🎉", 4, "🎉…"},
		{"zero width", "Natal", 0, ""},
		{"one cell", "Natal", 1, "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.width))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
	assert.Equal(t, "São  ", PadRight("São", 5), "pads by cells, not bytes")
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2024, 11, 20, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", humanTimestampFrom(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", humanTimestampFrom(now.Add(-5*time.Minute), now))
	assert.Equal(t, "2h ago", humanTimestampFrom(now.Add(-2*time.Hour), now))
	assert.Equal(t, "Yesterday", humanTimestampFrom(now.Add(-30*time.Hour), now))
	assert.Equal(t, "Nov 10, 2024", humanTimestampFrom(now.AddDate(0, 0, -10), now))
	assert.Equal(t, "--", humanTimestampFrom(time.Time{}, now))
}

func TestShortDate(t *testing.T) {
	assert.Equal(t, "05/03/2024", ShortDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "--", ShortDate(time.Time{}))
}

func TestStatusPill(t *testing.T) {
	assert.Contains(t, StatusPill(domain.StatusSuccess), "Ready")
	assert.Contains(t, StatusPill(domain.StatusLoading), "Generating")
	assert.Contains(t, StatusPill(domain.StatusError), "Failed")
	assert.Contains(t, StatusPill(""), "None")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "BB"}, [][]string{{"xxx", "y"}, {"z"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, "A    BB", lines[0])
	assert.Equal(t, "───  ──", lines[1])
	assert.Equal(t, "xxx  y", lines[2])
	assert.Equal(t, "z    ", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestFormatHolidayList(t *testing.T) {
	holidays := []holiday.Holiday{
		{Date: "2024-11-02", Name: "Finados"},
		{Date: "2024-11-15", Name: "Proclamação da República"},
	}
	out := FormatHolidayList("November 2024", holidays)

	assert.Contains(t, out, "NOVEMBER 2024")
	assert.Contains(t, out, "02/11")
	assert.Contains(t, out, "Sat")
	assert.Contains(t, out, "Proclamação da República")
	assert.Contains(t, out, "2 dates")
}

func TestFormatHolidayList_Empty(t *testing.T) {
	assert.Contains(t, FormatHolidayList("x", nil), "No commemorative dates")
}

func TestFormatMonthGrid_November2024(t *testing.T) {
	holidays := []holiday.Holiday{
		{Date: "2024-11-02", Name: "Finados"},
		{Date: "2024-11-15", Name: "Proclamação da República"},
	}
	out := FormatMonthGrid(2024, time.November, holidays)

	assert.Contains(t, out, "NOVEMBRO 2024")
	assert.Contains(t, out, "Sun        Mon")
	// 1 November 2024 is a Friday: five empty cells come first.
	assert.Contains(t, out, strings.Repeat(" ", 5*gridCell)+"1          2*")
	assert.Contains(t, out, "15*")
	assert.Contains(t, out, "30")
	assert.NotContains(t, out, "31")
	assert.Contains(t, out, "Proclamaç…")
	assert.Contains(t, out, "15/11  Proclamação da República")
}

func TestFormatMonthGrid_IgnoresOtherMonths(t *testing.T) {
	out := FormatMonthGrid(2024, time.February, []holiday.Holiday{{Date: "2024-11-02", Name: "Finados"}})
	assert.NotContains(t, out, "*")
}

func TestFormatRegions(t *testing.T) {
	regions := []domain.Region{{Code: "SP", Name: "São Paulo"}, {Code: "AC", Name: "Acre"}}
	out := FormatRegions(regions, func(code string) bool { return code == "SP" })

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[2], "SP")
	assert.Contains(t, lines[2], "yes")
	assert.Contains(t, lines[3], "--")
}

func TestFormatBriefingList(t *testing.T) {
	b := testutil.NewTestBriefing("Padaria artesanal com fermentação natural", testutil.WithRegion("SP"))
	national := testutil.NewTestBriefing("Consultoria de marketing", testutil.WithRegion(""))

	out := FormatBriefingList([]*domain.Briefing{b, national})
	assert.Contains(t, out, b.ID[:8])
	assert.NotContains(t, out, b.ID)
	assert.Contains(t, out, "São Paulo")
	assert.Contains(t, out, "national")
}

func TestFormatBriefingList_Empty(t *testing.T) {
	assert.Contains(t, FormatBriefingList(nil), "briefing new")
}

func TestFormatBriefingDetail(t *testing.T) {
	b := testutil.NewTestBriefing("Padaria artesanal com fermentação natural", testutil.WithRegion("RJ"))
	out := FormatBriefingDetail(BriefingOverview{
		Briefing: b,
		Analysis: &domain.AnalysisRecord{Status: domain.StatusError, Error: "llm request timed out"},
		Plans: []*domain.PlanRecord{
			{MonthKey: "2024-11", Status: domain.StatusSuccess},
		},
	})

	assert.Contains(t, out, b.ID)
	assert.Contains(t, out, "Rio de Janeiro")
	assert.Contains(t, out, "Failed")
	assert.Contains(t, out, "llm request timed out")
	assert.Contains(t, out, "2024-11")
	assert.Contains(t, out, "Ready")
}

func TestFormatAnalysis(t *testing.T) {
	out := FormatAnalysis(testutil.NewTestAnalysis())

	assert.Contains(t, out, "PANORAMA DO MERCADO")
	assert.Contains(t, out, "Opportunities")
	assert.Contains(t, out, string(domain.StageLoyalty))
	assert.Contains(t, FormatAnalysis(nil), "No market analysis")
}

func TestFormatPlan(t *testing.T) {
	rec := &domain.PlanRecord{
		MonthKey: "2024-11",
		Status:   domain.StatusSuccess,
		Data:     testutil.NewTestPlan("Novembro", 2),
		Holidays: []holiday.Holiday{{Date: "2024-11-20", Name: "Dia da Consciência Negra"}},
	}
	out := FormatPlan(rec)

	assert.Contains(t, out, "PLAN NOVEMBRO (2024-11)")
	assert.Contains(t, out, "20/11  Dia da Consciência Negra")
	assert.Contains(t, out, "WEEK 1: TEMA DA SEMANA 1")
	assert.Contains(t, out, "WEEK 2: TEMA DA SEMANA 2")
	assert.Contains(t, out, "Enquete nos stories")
	assert.Contains(t, out, string(domain.PlatformMeta))
	assert.Contains(t, out, "São Paulo · 25-45")
}

func TestFormatPlan_Error(t *testing.T) {
	out := FormatPlan(&domain.PlanRecord{MonthKey: "2024-11", Status: domain.StatusError, Error: "invalid llm output format"})

	assert.Contains(t, out, "PLAN 2024-11")
	assert.Contains(t, out, "Failed")
	assert.Contains(t, out, "invalid llm output format")
	assert.NotContains(t, out, "WEEK")
}

func TestFormatPlanList(t *testing.T) {
	out := FormatPlanList([]*domain.PlanRecord{
		{MonthKey: "2024-12", Status: domain.StatusLoading},
		{MonthKey: "2024-11", Status: domain.StatusSuccess, Data: &domain.MonthlyPlan{Month: "Novembro"}},
	})
	assert.Contains(t, out, "Generating")
	assert.Contains(t, out, "Novembro")
	assert.Contains(t, FormatPlanList(nil), "No plans")
}

func TestFormatIdeas(t *testing.T) {
	out := FormatIdeas([]*domain.IdeaRecord{
		{Date: "2024-11-02", HolidayName: "Finados", Status: domain.StatusSuccess, Ideas: []string{"Post de homenagem", "Carrossel"}},
		{Date: "2024-11-15", HolidayName: "Proclamação da República", Status: domain.StatusError, Error: "llm server unavailable"},
	})

	assert.Contains(t, out, "02/11  Finados")
	assert.Contains(t, out, "• Carrossel")
	assert.Contains(t, out, "llm server unavailable")
	assert.Contains(t, FormatIdeas(nil), "No commemorative dates")
}

func TestFormatTranscript_HidesSystemTurns(t *testing.T) {
	out := FormatTranscript([]domain.ChatMessage{
		{Role: domain.RoleSystem, Text: "contexto secreto"},
		{Role: domain.RoleAssistant, Text: "Olá!"},
		{Role: domain.RoleUser, Text: "Qual o foco da semana 2?"},
	}, 0)

	assert.NotContains(t, out, "contexto secreto")
	assert.Contains(t, out, "Assistant\n  Olá!")
	assert.Contains(t, out, "You\n  Qual o foco da semana 2?")
}

func TestFormatChatMessage_Wraps(t *testing.T) {
	m := domain.ChatMessage{Role: domain.RoleAssistant, Text: "uma resposta bastante longa para quebrar"}
	out := FormatChatMessage(m, 20)

	for _, line := range strings.Split(out, "\n")[1:] {
		assert.LessOrEqual(t, len([]rune(line)), 20)
	}
}
