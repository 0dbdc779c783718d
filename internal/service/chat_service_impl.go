package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/planner"
	"github.com/alexanderramin/pauta/internal/repository"
)

type chatService struct {
	briefings repository.BriefingRepo
	chats     repository.ChatRepo
	assistant planner.AssistantService
	now       func() time.Time
	observer  UseCaseObserver
}

func NewChatService(
	briefings repository.BriefingRepo,
	chats repository.ChatRepo,
	assistant planner.AssistantService,
	observers ...UseCaseObserver,
) ChatService {
	return &chatService{
		briefings: briefings,
		chats:     chats,
		assistant: assistant,
		now:       time.Now,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *chatService) History(ctx context.Context, briefingID string) ([]domain.ChatMessage, error) {
	return s.chats.List(ctx, briefingID)
}

func (s *chatService) SendMessage(ctx context.Context, briefingID, text string) (reply *domain.ChatMessage, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	defer observe(ctx, s.observer, "send-message", time.Now().UTC(), map[string]any{"briefing": briefingID}, &err)

	b, err := s.briefings.GetByID(ctx, briefingID)
	if err != nil {
		return nil, err
	}
	history, err := s.chats.List(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("briefing %s: %w", b.DisplayID(), ErrNoPlan)
	}

	userMsg := domain.ChatMessage{Role: domain.RoleUser, Text: text, CreatedAt: s.now().UTC()}
	answer, replyErr := s.assistant.Reply(ctx, b.Model, history, text)
	answer.CreatedAt = s.now().UTC()

	// Failed replies stay in the transcript as assistant turns.
	if err := s.chats.Append(context.WithoutCancel(ctx), b.ID, userMsg, answer); err != nil {
		return nil, err
	}
	return &answer, replyErr
}
