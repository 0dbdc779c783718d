package service

import (
	"context"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/export"
)

type BriefingService interface {
	// Create validates and stores a new briefing. regionCode may be empty for
	// a national-only calendar.
	Create(ctx context.Context, description, regionCode, model string) (*domain.Briefing, error)
	Resolve(ctx context.Context, idOrPrefix string) (*domain.Briefing, error)
	List(ctx context.Context) ([]*domain.Briefing, error)
	Delete(ctx context.Context, id string) error
}

type StrategyService interface {
	// Analyze resets the briefing's plans, ideas and chat, then generates a
	// fresh market analysis. A generation failure is stored on the record and
	// also returned.
	Analyze(ctx context.Context, briefingID string) (*domain.AnalysisRecord, error)
	Analysis(ctx context.Context, briefingID string) (*domain.AnalysisRecord, error)

	// GeneratePlan builds the plan for monthKey ("YYYY-MM"; empty means the
	// current month) and seeds the assistant conversation with it.
	GeneratePlan(ctx context.Context, briefingID, monthKey string) (*domain.PlanRecord, error)
	Plan(ctx context.Context, briefingID, monthKey string) (*domain.PlanRecord, error)
	Plans(ctx context.Context, briefingID string) ([]*domain.PlanRecord, error)
}

type IdeaService interface {
	// HolidayIdeas returns cached ideas for the observance on date, generating
	// them when missing or previously failed.
	HolidayIdeas(ctx context.Context, briefingID, date string) (*domain.IdeaRecord, error)
	// MonthIdeas does the same for every observance of monthKey, concurrently.
	// Failed entries are returned alongside an error listing them.
	MonthIdeas(ctx context.Context, briefingID, monthKey string) ([]*domain.IdeaRecord, error)
}

type ChatService interface {
	History(ctx context.Context, briefingID string) ([]domain.ChatMessage, error)
	// SendMessage returns nil without calling the model for blank text.
	SendMessage(ctx context.Context, briefingID, text string) (*domain.ChatMessage, error)
}

type ExportService interface {
	Report(ctx context.Context, briefingID string) (*export.Report, error)
}
