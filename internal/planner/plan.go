package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/llm"
)

// PlanInput is everything a monthly plan is generated from.
type PlanInput struct {
	Description string
	RegionName  string
	MonthKey    string // YYYY-MM
	Holidays    []holiday.Holiday
	Analysis    *domain.MarketAnalysis
	Model       string
}

// PlanService generates the tactical plan for one month.
type PlanService interface {
	Generate(ctx context.Context, in PlanInput) (*domain.MonthlyPlan, error)
}

type planService struct {
	client llm.LLMClient
}

// NewPlanService creates a PlanService backed by an LLM client.
func NewPlanService(client llm.LLMClient) PlanService {
	return &planService{client: client}
}

func (s *planService) Generate(ctx context.Context, in PlanInput) (*domain.MonthlyPlan, error) {
	if in.Analysis == nil {
		return nil, fmt.Errorf("monthly plan for %s: market analysis is required", in.MonthKey)
	}
	analysisJSON, err := json.MarshalIndent(in.Analysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding market analysis: %w", err)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPlan,
		Model:        in.Model,
		SystemPrompt: planSystemPrompt,
		UserPrompt:   buildPlanPrompt(in, string(analysisJSON)),
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("monthly plan generation for %s failed: %w", monthNameForKey(in.MonthKey), err)
	}

	normalize := func(p domain.MonthlyPlan) error {
		return validatePlan(normalizedPlan(p, in.MonthKey))
	}
	plan, err := llm.ExtractJSON(resp.Text, normalize)
	if err != nil {
		return nil, fmt.Errorf("monthly plan generation for %s failed: %w", monthNameForKey(in.MonthKey), err)
	}

	plan = normalizedPlan(plan, in.MonthKey)
	return &plan, nil
}

// normalizedPlan fills the month name when missing and canonicalizes
// platform names. Slices are copied, never shared with p.
func normalizedPlan(p domain.MonthlyPlan, monthKey string) domain.MonthlyPlan {
	out := domain.MonthlyPlan{
		Month: domain.CoalesceStr(p.Month, monthNameForKey(monthKey)),
		Weeks: make([]domain.WeeklyPlan, len(p.Weeks)),
	}
	for i, w := range p.Weeks {
		w.TrafficCampaign.Platform = normalizePlatform(w.TrafficCampaign.Platform)
		out.Weeks[i] = w
	}
	return out
}
