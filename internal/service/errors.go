package service

import "errors"

var (
	// ErrDescriptionTooShort is returned when a briefing description is under
	// domain.MinDescriptionLength characters.
	ErrDescriptionTooShort = errors.New("description too short")

	// ErrUnknownRegion is returned for a region code that is not a Brazilian
	// federative unit.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrNoAnalysis is returned when a plan or export needs a successful
	// market analysis and the briefing has none.
	ErrNoAnalysis = errors.New("briefing has no market analysis")

	// ErrNoPlan is returned when the assistant is used before any plan seeded
	// its conversation.
	ErrNoPlan = errors.New("briefing has no plan")

	// ErrNoHoliday is returned when ideas are requested for a date with no
	// observance in the briefing's calendar.
	ErrNoHoliday = errors.New("no commemorative date")
)
