package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/google/uuid"
)

type briefingService struct {
	briefings repository.BriefingRepo
	observer  UseCaseObserver
}

func NewBriefingService(briefings repository.BriefingRepo, observers ...UseCaseObserver) BriefingService {
	return &briefingService{
		briefings: briefings,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *briefingService) Create(ctx context.Context, description, regionCode, model string) (b *domain.Briefing, err error) {
	defer observe(ctx, s.observer, "create-briefing", time.Now().UTC(), map[string]any{"region": regionCode}, &err)

	now := time.Now().UTC()
	b = &domain.Briefing{
		ID:          uuid.New().String(),
		Description: strings.TrimSpace(description),
		RegionCode:  domain.NormalizeRegionCode(regionCode),
		Model:       strings.TrimSpace(model),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = b.ValidateDescription(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDescriptionTooShort, err)
	}
	if b.RegionCode != "" {
		if _, ok := domain.LookupRegion(b.RegionCode); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, regionCode)
		}
	}
	if err = s.briefings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *briefingService) Resolve(ctx context.Context, idOrPrefix string) (*domain.Briefing, error) {
	return s.briefings.Resolve(ctx, strings.TrimSpace(idOrPrefix))
}

func (s *briefingService) List(ctx context.Context) ([]*domain.Briefing, error) {
	return s.briefings.List(ctx)
}

func (s *briefingService) Delete(ctx context.Context, id string) error {
	return s.briefings.Delete(ctx, id)
}
