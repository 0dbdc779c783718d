package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/llm"
)

// AssistantService answers questions about a generated analysis and plan.
type AssistantService interface {
	// NewConversation returns the opening transcript: the system instruction
	// carrying the analysis and plan, then the welcome message.
	NewConversation(analysis *domain.MarketAnalysis, plan *domain.MonthlyPlan) ([]domain.ChatMessage, error)

	// Reply sends history plus the user's text and returns the assistant turn.
	// On failure the returned turn carries the error text, so it can be shown
	// in the transcript, and the error is returned as well.
	Reply(ctx context.Context, model string, history []domain.ChatMessage, text string) (domain.ChatMessage, error)
}

type assistantService struct {
	client llm.LLMClient
}

// NewAssistantService creates an AssistantService backed by an LLM client.
func NewAssistantService(client llm.LLMClient) AssistantService {
	return &assistantService{client: client}
}

// assistantContext is the JSON document embedded in the system instruction.
type assistantContext struct {
	MarketAnalysis *domain.MarketAnalysis `json:"marketAnalysis"`
	Plan           *domain.MonthlyPlan    `json:"plan"`
}

func (s *assistantService) NewConversation(analysis *domain.MarketAnalysis, plan *domain.MonthlyPlan) ([]domain.ChatMessage, error) {
	data, err := json.MarshalIndent(assistantContext{MarketAnalysis: analysis, Plan: plan}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding assistant context: %w", err)
	}
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Text: fmt.Sprintf(assistantSystemTemplate, AssistantName, data)},
		{Role: domain.RoleAssistant, Text: WelcomeMessage},
	}, nil
}

func (s *assistantService) Reply(ctx context.Context, model string, history []domain.ChatMessage, text string) (domain.ChatMessage, error) {
	messages := make([]llm.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, llm.Message{Role: string(m.Role), Content: m.Text})
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskChat,
		Model:      model,
		Messages:   messages,
		UserPrompt: text,
	})
	if err != nil {
		err = fmt.Errorf("assistant reply failed: %w", err)
		return domain.ChatMessage{Role: domain.RoleAssistant, Text: err.Error()}, err
	}

	reply := strings.TrimSpace(resp.Text)
	if reply == "" {
		reply = emptyReplyText
	}
	return domain.ChatMessage{Role: domain.RoleAssistant, Text: reply}, nil
}
