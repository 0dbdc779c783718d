package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	cerrors "cloudeng.io/errors"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/planner"
	"github.com/alexanderramin/pauta/internal/repository"
	"golang.org/x/sync/errgroup"
)

// DefaultIdeaConcurrency bounds concurrent generations in MonthIdeas.
const DefaultIdeaConcurrency = 3

type ideaService struct {
	briefings   repository.BriefingRepo
	ideas       repository.IdeaRepo
	generator   planner.IdeasService
	calendar    *holiday.Calendar
	concurrency int
	now         func() time.Time
	observer    UseCaseObserver
}

func NewIdeaService(
	briefings repository.BriefingRepo,
	ideas repository.IdeaRepo,
	generator planner.IdeasService,
	calendar *holiday.Calendar,
	concurrency int,
	observers ...UseCaseObserver,
) IdeaService {
	if concurrency <= 0 {
		concurrency = DefaultIdeaConcurrency
	}
	return &ideaService{
		briefings:   briefings,
		ideas:       ideas,
		generator:   generator,
		calendar:    calendar,
		concurrency: concurrency,
		now:         time.Now,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *ideaService) HolidayIdeas(ctx context.Context, briefingID, date string) (rec *domain.IdeaRecord, err error) {
	fields := map[string]any{"briefing": briefingID, "date": date}
	defer observe(ctx, s.observer, "holiday-ideas", time.Now().UTC(), fields, &err)

	b, err := s.briefings.GetByID(ctx, briefingID)
	if err != nil {
		return nil, err
	}
	h, err := s.findHoliday(b, date)
	if err != nil {
		return nil, err
	}
	rec, cached, err := s.ideasFor(ctx, b, h)
	fields["cached"] = cached
	return rec, err
}

func (s *ideaService) MonthIdeas(ctx context.Context, briefingID, monthKey string) (records []*domain.IdeaRecord, err error) {
	fields := map[string]any{"briefing": briefingID, "month": monthKey}
	defer observe(ctx, s.observer, "month-ideas", time.Now().UTC(), fields, &err)

	year, month, err := holiday.ParseMonthKey(monthKey)
	if err != nil {
		return nil, err
	}
	b, err := s.briefings.GetByID(ctx, briefingID)
	if err != nil {
		return nil, err
	}
	holidays := s.calendar.Month(year, month, b.RegionCode)
	fields["holidays"] = len(holidays)

	records = make([]*domain.IdeaRecord, len(holidays))
	failed := &cerrors.M{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, h := range holidays {
		g.Go(func() error {
			rec, _, err := s.ideasFor(gctx, b, h)
			if rec == nil {
				// Storage failure; nothing to show for this date.
				return err
			}
			records[i] = rec
			failed.Append(err)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return records, failed.Err()
}

// ideasFor serves the cached entry for h when reusable, otherwise generates
// and stores a new one. A generation failure is stored and returned with the
// record; a storage failure returns a nil record.
func (s *ideaService) ideasFor(ctx context.Context, b *domain.Briefing, h holiday.Holiday) (*domain.IdeaRecord, bool, error) {
	cached, err := s.ideas.Get(ctx, b.ID, h.Date)
	switch {
	case err == nil && cached.Reusable():
		return cached, true, nil
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, false, err
	}

	rec := &domain.IdeaRecord{
		BriefingID:  b.ID,
		Date:        h.Date,
		HolidayName: h.Name,
		Status:      domain.StatusLoading,
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.ideas.Upsert(ctx, rec); err != nil {
		return nil, false, err
	}

	ideas, genErr := s.generator.Generate(ctx, b.Description, h, b.Model)
	if genErr != nil {
		rec.Status = domain.StatusError
		rec.Error = genErr.Error()
	} else {
		rec.Status = domain.StatusSuccess
		rec.Ideas = ideas
	}
	rec.UpdatedAt = s.now().UTC()
	if err := s.ideas.Upsert(context.WithoutCancel(ctx), rec); err != nil {
		return nil, false, errors.Join(genErr, err)
	}
	return rec, false, genErr
}

func (s *ideaService) findHoliday(b *domain.Briefing, date string) (holiday.Holiday, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("date %q must have the form YYYY-MM-DD", date)
	}
	for _, h := range s.calendar.Month(t.Year(), t.Month(), b.RegionCode) {
		if h.Date == date {
			return h, nil
		}
	}
	return holiday.Holiday{}, fmt.Errorf("%s: %w", date, ErrNoHoliday)
}
