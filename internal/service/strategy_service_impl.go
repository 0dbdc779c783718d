package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/planner"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/google/uuid"
)

type strategyService struct {
	briefings repository.BriefingRepo
	analyses  repository.AnalysisRepo
	plans     repository.PlanRepo
	uow       db.UnitOfWork
	analyst   planner.AnalysisService
	planner   planner.PlanService
	assistant planner.AssistantService
	calendar  *holiday.Calendar
	now       func() time.Time
	observer  UseCaseObserver
}

func NewStrategyService(
	briefings repository.BriefingRepo,
	analyses repository.AnalysisRepo,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	analyst planner.AnalysisService,
	plan planner.PlanService,
	assistant planner.AssistantService,
	calendar *holiday.Calendar,
	observers ...UseCaseObserver,
) StrategyService {
	return &strategyService{
		briefings: briefings,
		analyses:  analyses,
		plans:     plans,
		uow:       uow,
		analyst:   analyst,
		planner:   plan,
		assistant: assistant,
		calendar:  calendar,
		now:       time.Now,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *strategyService) Analyze(ctx context.Context, briefingID string) (rec *domain.AnalysisRecord, err error) {
	fields := map[string]any{"briefing": briefingID}
	defer observe(ctx, s.observer, "analyze", time.Now().UTC(), fields, &err)

	b, err := s.briefings.GetByID(ctx, briefingID)
	if err != nil {
		return nil, err
	}

	rec = &domain.AnalysisRecord{
		BriefingID: b.ID,
		Status:     domain.StatusLoading,
		UpdatedAt:  s.now().UTC(),
	}
	// A new analysis invalidates everything derived from the old one.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLitePlanRepo(tx).DeleteByBriefing(ctx, b.ID); err != nil {
			return err
		}
		if err := repository.NewSQLiteIdeaRepo(tx).DeleteByBriefing(ctx, b.ID); err != nil {
			return err
		}
		if err := repository.NewSQLiteChatRepo(tx).DeleteByBriefing(ctx, b.ID); err != nil {
			return err
		}
		return repository.NewSQLiteAnalysisRepo(tx).Upsert(ctx, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("resetting briefing %s: %w", b.DisplayID(), err)
	}

	analysis, genErr := s.analyst.Generate(ctx, planner.AnalysisInput{
		Description: b.Description,
		RegionName:  b.RegionName(),
		Model:       b.Model,
	})
	if genErr != nil {
		return s.failAnalysis(ctx, rec, genErr)
	}

	rec.Status = domain.StatusSuccess
	rec.Data = analysis
	rec.UpdatedAt = s.now().UTC()
	if err = s.analyses.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// failAnalysis stores the error state even when ctx was cancelled, then
// returns the generation error.
func (s *strategyService) failAnalysis(ctx context.Context, rec *domain.AnalysisRecord, genErr error) (*domain.AnalysisRecord, error) {
	rec.Status = domain.StatusError
	rec.Error = genErr.Error()
	rec.UpdatedAt = s.now().UTC()
	if err := s.analyses.Upsert(context.WithoutCancel(ctx), rec); err != nil {
		return nil, errors.Join(genErr, err)
	}
	return rec, genErr
}

func (s *strategyService) Analysis(ctx context.Context, briefingID string) (*domain.AnalysisRecord, error) {
	return s.analyses.Get(ctx, briefingID)
}

func (s *strategyService) GeneratePlan(ctx context.Context, briefingID, monthKey string) (rec *domain.PlanRecord, err error) {
	if monthKey == "" {
		monthKey = domain.MonthsToDisplay(s.now(), 1)[0]
	}
	fields := map[string]any{"briefing": briefingID, "month": monthKey}
	defer observe(ctx, s.observer, "generate-plan", time.Now().UTC(), fields, &err)

	year, month, err := holiday.ParseMonthKey(monthKey)
	if err != nil {
		return nil, err
	}
	b, err := s.briefings.GetByID(ctx, briefingID)
	if err != nil {
		return nil, err
	}
	analysis, err := s.readyAnalysis(ctx, b)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec = &domain.PlanRecord{
		ID:         uuid.New().String(),
		BriefingID: b.ID,
		MonthKey:   monthKey,
		RegionCode: b.RegionCode,
		Status:     domain.StatusLoading,
		Holidays:   s.calendar.Month(year, month, b.RegionCode),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if existing, getErr := s.plans.Get(ctx, b.ID, monthKey); getErr == nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else if !errors.Is(getErr, repository.ErrNotFound) {
		return nil, getErr
	}
	fields["holidays"] = len(rec.Holidays)
	if err = s.plans.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	plan, genErr := s.planner.Generate(ctx, planner.PlanInput{
		Description: b.Description,
		RegionName:  b.RegionName(),
		MonthKey:    monthKey,
		Holidays:    rec.Holidays,
		Analysis:    analysis,
		Model:       b.Model,
	})
	if genErr != nil {
		rec.Status = domain.StatusError
		rec.Error = genErr.Error()
		rec.UpdatedAt = s.now().UTC()
		if err := s.plans.Upsert(context.WithoutCancel(ctx), rec); err != nil {
			return nil, errors.Join(genErr, err)
		}
		return rec, genErr
	}

	conversation, err := s.assistant.NewConversation(analysis, plan)
	if err != nil {
		return nil, err
	}
	rec.Status = domain.StatusSuccess
	rec.Data = plan
	rec.Error = ""
	rec.UpdatedAt = s.now().UTC()
	for i := range conversation {
		conversation[i].CreatedAt = rec.UpdatedAt
	}

	// The assistant always discusses the most recent plan.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLitePlanRepo(tx).Upsert(ctx, rec); err != nil {
			return err
		}
		chats := repository.NewSQLiteChatRepo(tx)
		if err := chats.DeleteByBriefing(ctx, b.ID); err != nil {
			return err
		}
		return chats.Append(ctx, b.ID, conversation...)
	})
	if err != nil {
		return nil, fmt.Errorf("storing plan for %s: %w", monthKey, err)
	}
	fields["weeks"] = len(plan.Weeks)
	return rec, nil
}

func (s *strategyService) readyAnalysis(ctx context.Context, b *domain.Briefing) (*domain.MarketAnalysis, error) {
	rec, err := s.analyses.Get(ctx, b.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("briefing %s: %w", b.DisplayID(), ErrNoAnalysis)
		}
		return nil, err
	}
	if !rec.Ready() {
		return nil, fmt.Errorf("briefing %s (analysis %s): %w", b.DisplayID(), rec.Status, ErrNoAnalysis)
	}
	return rec.Data, nil
}

func (s *strategyService) Plan(ctx context.Context, briefingID, monthKey string) (*domain.PlanRecord, error) {
	if monthKey == "" {
		return s.plans.Latest(ctx, briefingID)
	}
	return s.plans.Get(ctx, briefingID, monthKey)
}

func (s *strategyService) Plans(ctx context.Context, briefingID string) ([]*domain.PlanRecord, error) {
	return s.plans.ListByBriefing(ctx, briefingID)
}
