package repository

import (
	"context"

	"github.com/alexanderramin/pauta/internal/domain"
)

type BriefingRepo interface {
	Create(ctx context.Context, b *domain.Briefing) error
	GetByID(ctx context.Context, id string) (*domain.Briefing, error)
	// Resolve finds a briefing by full ID or by a unique ID prefix.
	Resolve(ctx context.Context, idOrPrefix string) (*domain.Briefing, error)
	List(ctx context.Context) ([]*domain.Briefing, error)
	Delete(ctx context.Context, id string) error
}

type AnalysisRepo interface {
	Upsert(ctx context.Context, a *domain.AnalysisRecord) error
	Get(ctx context.Context, briefingID string) (*domain.AnalysisRecord, error)
	Delete(ctx context.Context, briefingID string) error
}

type PlanRepo interface {
	Upsert(ctx context.Context, p *domain.PlanRecord) error
	Get(ctx context.Context, briefingID, monthKey string) (*domain.PlanRecord, error)
	ListByBriefing(ctx context.Context, briefingID string) ([]*domain.PlanRecord, error)
	// Latest returns the most recently updated successful plan.
	Latest(ctx context.Context, briefingID string) (*domain.PlanRecord, error)
	DeleteByBriefing(ctx context.Context, briefingID string) error
}

type IdeaRepo interface {
	Upsert(ctx context.Context, r *domain.IdeaRecord) error
	Get(ctx context.Context, briefingID, date string) (*domain.IdeaRecord, error)
	ListByMonth(ctx context.Context, briefingID, monthKey string) ([]*domain.IdeaRecord, error)
	DeleteByBriefing(ctx context.Context, briefingID string) error
}

type ChatRepo interface {
	Append(ctx context.Context, briefingID string, msgs ...domain.ChatMessage) error
	List(ctx context.Context, briefingID string) ([]domain.ChatMessage, error)
	DeleteByBriefing(ctx context.Context, briefingID string) error
}
