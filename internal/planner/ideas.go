package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/llm"
)

// IdeasService generates short content ideas for a single holiday.
type IdeasService interface {
	Generate(ctx context.Context, description string, h holiday.Holiday, model string) ([]string, error)
}

type ideasService struct {
	client llm.LLMClient
}

// NewIdeasService creates an IdeasService backed by an LLM client.
func NewIdeasService(client llm.LLMClient) IdeasService {
	return &ideasService{client: client}
}

func (s *ideasService) Generate(ctx context.Context, description string, h holiday.Holiday, model string) ([]string, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskIdeas,
		Model:      model,
		UserPrompt: buildIdeasPrompt(description, h),
		JSON:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("content ideas for %s failed: %w", h.Name, err)
	}

	ideas, err := llm.ExtractJSONArray(resp.Text, validateIdeas)
	if err != nil {
		return nil, fmt.Errorf("content ideas for %s failed: %w", h.Name, err)
	}
	for i := range ideas {
		ideas[i] = strings.TrimSpace(ideas[i])
	}
	return ideas, nil
}
