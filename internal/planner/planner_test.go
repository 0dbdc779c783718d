package planner

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	response string
	err      error
	lastReq  llm.GenerateRequest
	calls    int
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "gpt-4o-mini"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func sampleAnalysis() *domain.MarketAnalysis {
	return &domain.MarketAnalysis{
		MarketOverview: domain.MarketOverview{
			Title:         "Visão Geral do Mercado de Panificação em São Paulo",
			Opportunities: []domain.MarketFact{{Point: "Delivery", Description: "Crescimento de pedidos por app."}},
		},
		PsychographicProfile: domain.PsychographicProfile{Title: "Raio-X do Cliente Ideal"},
		BehavioralAnalysis: domain.BehavioralAnalysis{
			Title: "Jornada de Compra Comportamental",
			PurchaseJourney: []domain.PurchaseJourneyStage{
				{Stage: domain.StageAwareness, Description: "Instagram", Touchpoints: []string{"Reels"}},
				{Stage: domain.StageConsideration},
				{Stage: domain.StageDecision},
				{Stage: domain.StageLoyalty},
			},
		},
	}
}

func week(n int, platform domain.AdPlatform) domain.WeeklyPlan {
	return domain.WeeklyPlan{
		Week:       n,
		Theme:      "Tema da semana",
		Holidays:   []string{},
		GuideIdeas: []string{"a", "b", "c", "d"},
		TrafficCampaign: domain.TrafficCampaign{
			Platform:  platform,
			Objective: "Alcance",
		},
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestAnalysisService_Generate(t *testing.T) {
	client := &mockLLMClient{response: "```json\n" + mustJSON(t, sampleAnalysis()) + "\n```"}
	svc := NewAnalysisService(client)

	got, err := svc.Generate(context.Background(), AnalysisInput{
		Description: "Padaria artesanal com foco em fermentação natural",
		RegionName:  "São Paulo",
		Model:       "gpt-4o",
	})

	require.NoError(t, err)
	assert.Equal(t, sampleAnalysis(), got)
	assert.Equal(t, llm.TaskAnalysis, client.lastReq.Task)
	assert.Equal(t, "gpt-4o", client.lastReq.Model)
	assert.True(t, client.lastReq.JSON)
	assert.Contains(t, client.lastReq.UserPrompt, "Padaria artesanal")
	assert.Contains(t, client.lastReq.UserPrompt, "Visão Geral do Mercado de [Setor] em São Paulo")
	assert.NotContains(t, client.lastReq.UserPrompt, "%!")
}

func TestAnalysisService_LLMError(t *testing.T) {
	svc := NewAnalysisService(&mockLLMClient{err: llm.ErrTimeout})

	_, err := svc.Generate(context.Background(), AnalysisInput{Description: "x", RegionName: "SP"})

	assert.ErrorIs(t, err, llm.ErrTimeout)
	assert.Contains(t, err.Error(), "market analysis generation failed")
}

func TestAnalysisService_ReportsEveryViolation(t *testing.T) {
	bad := sampleAnalysis()
	bad.MarketOverview.Title = ""
	bad.BehavioralAnalysis.PurchaseJourney[1].Stage = "Compra"
	svc := NewAnalysisService(&mockLLMClient{response: mustJSON(t, bad)})

	_, err := svc.Generate(context.Background(), AnalysisInput{Description: "x", RegionName: "SP"})

	require.ErrorIs(t, err, llm.ErrInvalidOutput)
	assert.Contains(t, err.Error(), "marketOverview.title is required")
	assert.Contains(t, err.Error(), `unknown stage "Compra"`)
}

func TestPlanService_Generate(t *testing.T) {
	plan := domain.MonthlyPlan{Month: "Maio", Weeks: []domain.WeeklyPlan{
		week(1, domain.PlatformMeta), week(2, "google ads"), week(3, domain.PlatformTikTok), week(4, "LinkedIn"),
	}}
	client := &mockLLMClient{response: mustJSON(t, plan)}
	svc := NewPlanService(client)

	got, err := svc.Generate(context.Background(), PlanInput{
		Description: "Padaria artesanal",
		RegionName:  "São Paulo",
		MonthKey:    "2024-05",
		Holidays: []holiday.Holiday{
			{Date: "2024-05-01", Name: "Dia do Trabalho"},
			{Date: "2024-05-12", Name: "Dia das Mães"},
		},
		Analysis: sampleAnalysis(),
	})

	require.NoError(t, err)
	require.Len(t, got.Weeks, 4)
	assert.Equal(t, domain.PlatformGoogle, got.Weeks[1].TrafficCampaign.Platform)
	assert.Equal(t, domain.PlatformLinkedIn, got.Weeks[3].TrafficCampaign.Platform)

	prompt := client.lastReq.UserPrompt
	assert.Equal(t, llm.TaskPlan, client.lastReq.Task)
	assert.Contains(t, prompt, "**Mês do Planejamento:** Maio")
	assert.Contains(t, prompt, "- Dia do Trabalho\n- Dia das Mães")
	assert.Contains(t, prompt, `"month": "Maio"`)
	assert.Contains(t, prompt, "Cidades principais de São Paulo")
	assert.Contains(t, prompt, "Panificação", "analysis is embedded as context")
	assert.NotContains(t, prompt, "%!")
}

func TestPlanService_NoHolidays(t *testing.T) {
	client := &mockLLMClient{response: mustJSON(t, domain.MonthlyPlan{Weeks: []domain.WeeklyPlan{week(1, domain.PlatformMeta)}})}
	svc := NewPlanService(client)

	got, err := svc.Generate(context.Background(), PlanInput{MonthKey: "2024-03", Analysis: sampleAnalysis()})

	require.NoError(t, err)
	assert.Equal(t, "Março", got.Month, "missing month name is filled from the key")
	assert.Contains(t, client.lastReq.UserPrompt, "Nenhuma data principal.")
}

func TestPlanService_RequiresAnalysis(t *testing.T) {
	client := &mockLLMClient{}
	_, err := NewPlanService(client).Generate(context.Background(), PlanInput{MonthKey: "2024-03"})

	require.Error(t, err)
	assert.Equal(t, 0, client.calls)
}

func TestPlanService_InvalidPlan(t *testing.T) {
	w := week(0, "Orkut Ads")
	w.GuideIdeas = w.GuideIdeas[:2]
	svc := NewPlanService(&mockLLMClient{response: mustJSON(t, domain.MonthlyPlan{Weeks: []domain.WeeklyPlan{w}})})

	_, err := svc.Generate(context.Background(), PlanInput{MonthKey: "2024-08", Analysis: sampleAnalysis()})

	require.ErrorIs(t, err, llm.ErrInvalidOutput)
	msg := err.Error()
	assert.Contains(t, msg, "Agosto")
	assert.Contains(t, msg, "week number must be positive")
	assert.Contains(t, msg, "want 4 ideiasGuia, got 2")
	assert.Contains(t, msg, `unknown platform "Orkut Ads"`)
}

func TestPlanService_EmptyWeeks(t *testing.T) {
	svc := NewPlanService(&mockLLMClient{response: `{"month":"Agosto","weeks":[]}`})
	_, err := svc.Generate(context.Background(), PlanInput{MonthKey: "2024-08", Analysis: sampleAnalysis()})
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestIdeasService_Generate(t *testing.T) {
	client := &mockLLMClient{response: `{"ideias": ["  Live com confeiteiros ", "Carrossel de receitas", "Oferta de 24h"]}`}
	svc := NewIdeasService(client)

	ideas, err := svc.Generate(context.Background(), "Padaria artesanal",
		holiday.Holiday{Date: "2024-05-12", Name: "Dia das Mães"}, "")

	require.NoError(t, err)
	assert.Equal(t, []string{"Live com confeiteiros", "Carrossel de receitas", "Oferta de 24h"}, ideas)
	assert.Equal(t, llm.TaskIdeas, client.lastReq.Task)
	assert.Contains(t, client.lastReq.UserPrompt, "- Nome: Dia das Mães")
	assert.Contains(t, client.lastReq.UserPrompt, "- Data: 2024-05-12")
	assert.Empty(t, client.lastReq.SystemPrompt)
}

func TestIdeasService_ReturnsWhatModelGives(t *testing.T) {
	svc := NewIdeasService(&mockLLMClient{response: `["Uma", "Duas", "Três", "Quatro"]`})

	ideas, err := svc.Generate(context.Background(), "x", holiday.Holiday{Date: "2024-12-25", Name: "Natal"}, "")

	require.NoError(t, err)
	assert.Len(t, ideas, 4)
}

func TestIdeasService_RejectsNonArray(t *testing.T) {
	svc := NewIdeasService(&mockLLMClient{response: `{"ideia": "sozinha"}`})

	_, err := svc.Generate(context.Background(), "x", holiday.Holiday{Name: "Natal"}, "")

	require.ErrorIs(t, err, llm.ErrInvalidOutput)
	assert.Contains(t, err.Error(), "content ideas for Natal failed")
}

func TestIdeasService_RejectsBlankIdeas(t *testing.T) {
	svc := NewIdeasService(&mockLLMClient{response: `["ok", "   "]`})
	_, err := svc.Generate(context.Background(), "x", holiday.Holiday{Name: "Natal"}, "")
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestAssistantService_NewConversation(t *testing.T) {
	svc := NewAssistantService(&mockLLMClient{})
	plan := &domain.MonthlyPlan{Month: "Maio", Weeks: []domain.WeeklyPlan{week(1, domain.PlatformMeta)}}

	history, err := svc.NewConversation(sampleAnalysis(), plan)

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleSystem, history[0].Role)
	assert.Contains(t, history[0].Text, AssistantName)
	assert.Contains(t, history[0].Text, `"marketAnalysis"`)
	assert.Contains(t, history[0].Text, `"ideiasGuia"`)
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleAssistant, Text: WelcomeMessage}, history[1])
}

func TestAssistantService_Reply(t *testing.T) {
	client := &mockLLMClient{response: "  Na semana 2, foque em remarketing.  "}
	svc := NewAssistantService(client)
	history, err := svc.NewConversation(sampleAnalysis(), &domain.MonthlyPlan{})
	require.NoError(t, err)

	reply, err := svc.Reply(context.Background(), "gpt-4o", history, "Como melhorar a semana 2?")

	require.NoError(t, err)
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleAssistant, Text: "Na semana 2, foque em remarketing."}, reply)

	req := client.lastReq
	assert.Equal(t, llm.TaskChat, req.Task)
	assert.Equal(t, "gpt-4o", req.Model)
	assert.False(t, req.JSON)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, llm.RoleAssistant, req.Messages[1].Role)
	assert.Equal(t, "Como melhorar a semana 2?", req.UserPrompt)
}

func TestAssistantService_EmptyReply(t *testing.T) {
	svc := NewAssistantService(&mockLLMClient{response: "   "})
	reply, err := svc.Reply(context.Background(), "", nil, "oi")
	require.NoError(t, err)
	assert.Equal(t, "Não recebi uma resposta.", reply.Text)
}

func TestAssistantService_ErrorBecomesAssistantTurn(t *testing.T) {
	svc := NewAssistantService(&mockLLMClient{err: llm.ErrUnavailable})

	reply, err := svc.Reply(context.Background(), "", nil, "oi")

	require.ErrorIs(t, err, llm.ErrUnavailable)
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	assert.True(t, strings.HasPrefix(reply.Text, "assistant reply failed"))
}

func TestNormalizePlatform(t *testing.T) {
	assert.Equal(t, domain.PlatformMeta, normalizePlatform("Meta Ads"))
	assert.Equal(t, domain.PlatformMeta, normalizePlatform(" meta "))
	assert.Equal(t, domain.PlatformTikTok, normalizePlatform("TIKTOK ADS"))
	assert.Equal(t, domain.AdPlatform("Kwai"), normalizePlatform("Kwai"))
	assert.Equal(t, domain.AdPlatform(""), normalizePlatform(""))
}

func TestHolidayLines(t *testing.T) {
	assert.Equal(t, "Nenhuma data principal.", holidayLines(nil))
	assert.Equal(t, "- Natal", holidayLines([]holiday.Holiday{{Date: "2024-12-25", Name: "Natal"}}))
}
