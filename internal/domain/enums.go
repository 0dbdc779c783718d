package domain

// GenerationStatus tracks an LLM-backed artifact through its lifecycle.
type GenerationStatus string

const (
	StatusLoading GenerationStatus = "loading"
	StatusSuccess GenerationStatus = "success"
	StatusError   GenerationStatus = "error"
)

type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type JourneyStage string

const (
	StageAwareness     JourneyStage = "Reconhecimento"
	StageConsideration JourneyStage = "Consideração"
	StageDecision      JourneyStage = "Decisão"
	StageLoyalty       JourneyStage = "Fidelização"
)

// JourneyStages lists the purchase journey stages in funnel order.
var JourneyStages = []JourneyStage{StageAwareness, StageConsideration, StageDecision, StageLoyalty}

// ValidJourneyStages is the canonical set of accepted stage names.
var ValidJourneyStages = map[JourneyStage]bool{
	StageAwareness: true, StageConsideration: true,
	StageDecision: true, StageLoyalty: true,
}

type AdPlatform string

const (
	PlatformMeta     AdPlatform = "Meta Ads (Instagram/Facebook)"
	PlatformGoogle   AdPlatform = "Google Ads"
	PlatformTikTok   AdPlatform = "TikTok Ads"
	PlatformLinkedIn AdPlatform = "LinkedIn Ads"
)

// ValidAdPlatforms is the canonical set of accepted campaign platforms.
var ValidAdPlatforms = map[AdPlatform]bool{
	PlatformMeta: true, PlatformGoogle: true,
	PlatformTikTok: true, PlatformLinkedIn: true,
}
