// Package planner turns briefings into market analyses, monthly plans,
// holiday content ideas and assistant replies by prompting an LLM.
package planner

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/llm"
)

// AnalysisInput describes the company to analyze.
type AnalysisInput struct {
	Description string
	RegionName  string
	Model       string // empty uses the configured model
}

// AnalysisService generates the structured market analysis of a briefing.
type AnalysisService interface {
	Generate(ctx context.Context, in AnalysisInput) (*domain.MarketAnalysis, error)
}

type analysisService struct {
	client llm.LLMClient
}

// NewAnalysisService creates an AnalysisService backed by an LLM client.
func NewAnalysisService(client llm.LLMClient) AnalysisService {
	return &analysisService{client: client}
}

func (s *analysisService) Generate(ctx context.Context, in AnalysisInput) (*domain.MarketAnalysis, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAnalysis,
		Model:        in.Model,
		SystemPrompt: analysisSystemPrompt,
		UserPrompt:   buildAnalysisPrompt(in.Description, in.RegionName),
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("market analysis generation failed: %w", err)
	}

	analysis, err := llm.ExtractJSON(resp.Text, validateAnalysis)
	if err != nil {
		return nil, fmt.Errorf("market analysis generation failed: %w", err)
	}
	return &analysis, nil
}
