package testutil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/google/uuid"
)

// Briefing options
type BriefingOption func(*domain.Briefing)

func WithRegion(code string) BriefingOption {
	return func(b *domain.Briefing) {
		b.RegionCode = code
	}
}

func WithModel(model string) BriefingOption {
	return func(b *domain.Briefing) {
		b.Model = model
	}
}

func WithCreatedAt(t time.Time) BriefingOption {
	return func(b *domain.Briefing) {
		b.CreatedAt = t
		b.UpdatedAt = t
	}
}

func NewTestBriefing(description string, opts ...BriefingOption) *domain.Briefing {
	now := time.Now().UTC()
	b := &domain.Briefing{
		ID:          uuid.New().String(),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewTestAnalysis returns a market analysis that passes validation.
func NewTestAnalysis() *domain.MarketAnalysis {
	fact := func(p string) domain.MarketFact {
		return domain.MarketFact{Point: p, Description: "Descrição de " + p}
	}
	journey := make([]domain.PurchaseJourneyStage, 0, len(domain.JourneyStages))
	for _, s := range domain.JourneyStages {
		journey = append(journey, domain.PurchaseJourneyStage{
			Stage:       s,
			Description: "Etapa " + string(s),
			Touchpoints: []string{"Instagram", "Loja física"},
		})
	}
	return &domain.MarketAnalysis{
		MarketOverview: domain.MarketOverview{
			Title:         "Panorama do Mercado",
			Opportunities: []domain.MarketFact{fact("Delivery")},
			Challenges:    []domain.MarketFact{fact("Concorrência")},
			Trends:        []domain.MarketFact{fact("Fermentação natural")},
		},
		PsychographicProfile: domain.PsychographicProfile{
			Title:     "Perfil Psicográfico",
			Values:    []domain.MarketFact{fact("Qualidade")},
			Lifestyle: []domain.MarketFact{fact("Rotina corrida")},
			Pains:     []domain.MarketFact{fact("Falta de tempo")},
		},
		BehavioralAnalysis: domain.BehavioralAnalysis{
			Title:           "Análise Comportamental",
			PurchaseJourney: journey,
		},
	}
}

// NewTestPlan returns a monthly plan with the given number of weeks that
// passes validation.
func NewTestPlan(month string, weeks int) *domain.MonthlyPlan {
	p := &domain.MonthlyPlan{Month: month}
	for i := 1; i <= weeks; i++ {
		p.Weeks = append(p.Weeks, domain.WeeklyPlan{
			Week:     i,
			Theme:    fmt.Sprintf("Tema da semana %d", i),
			Holidays: []string{},
			GuideIdeas: []string{
				"Bastidores da produção",
				"Depoimento de cliente",
				"Receita da semana",
				"Enquete nos stories",
			},
			TrafficCampaign: domain.TrafficCampaign{
				Platform:  domain.PlatformMeta,
				Objective: "Tráfego para o perfil",
				TargetAudience: domain.TargetAudience{
					Description: "Moradores do bairro",
					Location:    "São Paulo",
					Age:         "25-45",
					Interests:   []string{"gastronomia"},
				},
				AdCopySuggestion: "Pão quentinho todo dia.",
			},
		})
	}
	return p
}

// MustJSON encodes v or panics. It is meant for canned LLM responses.
func MustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
