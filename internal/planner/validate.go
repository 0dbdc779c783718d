package planner

import (
	"fmt"
	"strings"

	"cloudeng.io/errors"

	"github.com/alexanderramin/pauta/internal/domain"
)

// validateAnalysis reports every structural problem in a generated analysis.
func validateAnalysis(a domain.MarketAnalysis) error {
	errs := errors.M{}
	if strings.TrimSpace(a.MarketOverview.Title) == "" {
		errs.Append(fmt.Errorf("marketOverview.title is required"))
	}
	if strings.TrimSpace(a.PsychographicProfile.Title) == "" {
		errs.Append(fmt.Errorf("psychographicProfile.title is required"))
	}
	if len(a.BehavioralAnalysis.PurchaseJourney) == 0 {
		errs.Append(fmt.Errorf("behavioralAnalysis.purchaseJourney must not be empty"))
	}
	for i, stage := range a.BehavioralAnalysis.PurchaseJourney {
		if !domain.ValidJourneyStages[stage.Stage] {
			errs.Append(fmt.Errorf("purchaseJourney[%d]: unknown stage %q", i, stage.Stage))
		}
	}
	return errs.Err()
}

// validatePlan reports every structural problem in a generated plan.
func validatePlan(p domain.MonthlyPlan) error {
	errs := errors.M{}
	if len(p.Weeks) == 0 {
		errs.Append(fmt.Errorf("weeks must not be empty"))
	}
	for i, w := range p.Weeks {
		if w.Week < 1 {
			errs.Append(fmt.Errorf("weeks[%d]: week number must be positive, got %d", i, w.Week))
		}
		if strings.TrimSpace(w.Theme) == "" {
			errs.Append(fmt.Errorf("weeks[%d]: theme is required", i))
		}
		if len(w.GuideIdeas) != domain.GuideIdeasPerWeek {
			errs.Append(fmt.Errorf("weeks[%d]: want %d ideiasGuia, got %d", i, domain.GuideIdeasPerWeek, len(w.GuideIdeas)))
		}
		if !domain.ValidAdPlatforms[w.TrafficCampaign.Platform] {
			errs.Append(fmt.Errorf("weeks[%d]: unknown platform %q", i, w.TrafficCampaign.Platform))
		}
	}
	return errs.Err()
}

func validateIdeas(ideas []string) error {
	errs := errors.M{}
	if len(ideas) == 0 {
		errs.Append(fmt.Errorf("ideas must not be empty"))
	}
	for i, idea := range ideas {
		if strings.TrimSpace(idea) == "" {
			errs.Append(fmt.Errorf("ideas[%d] is blank", i))
		}
	}
	return errs.Err()
}

// normalizePlatform maps loose platform names such as "meta ads" or
// "Google" onto the canonical set. Unknown names are returned unchanged.
func normalizePlatform(p domain.AdPlatform) domain.AdPlatform {
	name := strings.ToLower(strings.TrimSpace(string(p)))
	if name == "" {
		return p
	}
	for canonical := range domain.ValidAdPlatforms {
		if strings.HasPrefix(strings.ToLower(string(canonical)), name) {
			return canonical
		}
	}
	return p
}
