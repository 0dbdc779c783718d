package domain

import "time"

// MarketFact is a single headline point with its explanation.
type MarketFact struct {
	Point       string `json:"point"`
	Description string `json:"description"`
}

type PurchaseJourneyStage struct {
	Stage       JourneyStage `json:"stage"`
	Description string       `json:"description"`
	Touchpoints []string     `json:"touchpoints"`
}

type MarketOverview struct {
	Title         string       `json:"title"`
	Opportunities []MarketFact `json:"opportunities"`
	Challenges    []MarketFact `json:"challenges"`
	Trends        []MarketFact `json:"trends"`
}

type PsychographicProfile struct {
	Title     string       `json:"title"`
	Values    []MarketFact `json:"values"`
	Lifestyle []MarketFact `json:"lifestyle"`
	Pains     []MarketFact `json:"pains"`
}

type BehavioralAnalysis struct {
	Title           string                 `json:"title"`
	PurchaseJourney []PurchaseJourneyStage `json:"purchaseJourney"`
}

// MarketAnalysis is the structured market study generated for a briefing.
type MarketAnalysis struct {
	MarketOverview       MarketOverview       `json:"marketOverview"`
	PsychographicProfile PsychographicProfile `json:"psychographicProfile"`
	BehavioralAnalysis   BehavioralAnalysis   `json:"behavioralAnalysis"`
}

// AnalysisRecord is the persisted state of a briefing's market analysis.
// Data is set only when Status is StatusSuccess.
type AnalysisRecord struct {
	BriefingID string
	Status     GenerationStatus
	Data       *MarketAnalysis
	Error      string
	UpdatedAt  time.Time
}

// Ready reports whether the analysis can feed a plan.
func (r *AnalysisRecord) Ready() bool {
	return r != nil && r.Status == StatusSuccess && r.Data != nil
}
