package domain

import (
	"time"

	"github.com/alexanderramin/pauta/internal/holiday"
)

// GuideIdeasPerWeek is the number of guide ideas each week must carry.
const GuideIdeasPerWeek = 4

type TargetAudience struct {
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Age         string   `json:"age"`
	Interests   []string `json:"interests"`
}

type TrafficCampaign struct {
	Platform         AdPlatform     `json:"platform"`
	Objective        string         `json:"objective"`
	TargetAudience   TargetAudience `json:"targetAudience"`
	AdCopySuggestion string         `json:"adCopySuggestion"`
	Keywords         []string       `json:"keywords,omitempty"`
}

type WeeklyPlan struct {
	Week            int             `json:"week"`
	Theme           string          `json:"theme"`
	Holidays        []string        `json:"holidays"`
	GuideIdeas      []string        `json:"ideiasGuia"`
	TrafficCampaign TrafficCampaign `json:"trafficCampaign"`
}

// MonthlyPlan is the tactical plan for one month. Month is the display name
// of the month, e.g. "Agosto".
type MonthlyPlan struct {
	Month string       `json:"month"`
	Weeks []WeeklyPlan `json:"weeks"`
}

// PlanRecord is the persisted state of a plan for one briefing and month.
// Holidays are the observances the plan was generated against, for the
// region in RegionCode.
type PlanRecord struct {
	ID         string
	BriefingID string
	MonthKey   string
	RegionCode string
	Status     GenerationStatus
	Data       *MonthlyPlan
	Holidays   []holiday.Holiday
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IdeaRecord caches the content ideas for one holiday of a briefing.
type IdeaRecord struct {
	BriefingID  string
	Date        string
	HolidayName string
	Status      GenerationStatus
	Ideas       []string
	Error       string
	UpdatedAt   time.Time
}

// Reusable reports whether the cached entry can be served without
// regenerating. Failed entries are retried, and so are entries left in
// loading by an interrupted run.
func (r *IdeaRecord) Reusable() bool {
	return r != nil && r.Status == StatusSuccess
}
