package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pauta/internal/export"
	"github.com/alexanderramin/pauta/internal/repository"
)

type exportService struct {
	briefings repository.BriefingRepo
	analyses  repository.AnalysisRepo
	plans     repository.PlanRepo
	ideas     repository.IdeaRepo
	now       func() time.Time
}

func NewExportService(
	briefings repository.BriefingRepo,
	analyses repository.AnalysisRepo,
	plans repository.PlanRepo,
	ideas repository.IdeaRepo,
) ExportService {
	return &exportService{
		briefings: briefings,
		analyses:  analyses,
		plans:     plans,
		ideas:     ideas,
		now:       time.Now,
	}
}

// Report collects the analysis, the latest successful plan (if any) and the
// cached ideas of that plan's month.
func (s *exportService) Report(ctx context.Context, briefingID string) (*export.Report, error) {
	b, err := s.briefings.GetByID(ctx, briefingID)
	if err != nil {
		return nil, err
	}
	analysis, err := s.analyses.Get(ctx, b.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if !analysis.Ready() {
		return nil, fmt.Errorf("briefing %s: %w", b.DisplayID(), ErrNoAnalysis)
	}

	r := &export.Report{
		Briefing:    b,
		Analysis:    analysis.Data,
		GeneratedAt: s.now(),
	}
	plan, err := s.plans.Latest(ctx, b.ID)
	switch {
	case err == nil:
		r.Plan = plan
		if r.Ideas, err = s.ideas.ListByMonth(ctx, b.ID, plan.MonthKey); err != nil {
			return nil, err
		}
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return r, nil
}
