package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MinDescriptionLength is the shortest company description, in characters
// after trimming, that can be analyzed.
const MinDescriptionLength = 10

// Briefing is a company description anchored to a region. Every analysis,
// plan, idea and chat transcript hangs off a briefing.
type Briefing struct {
	ID          string
	Description string
	RegionCode  string
	Model       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateDescription checks that the description is long enough to analyze.
func (b *Briefing) ValidateDescription() error {
	n := utf8.RuneCountInString(strings.TrimSpace(b.Description))
	if n < MinDescriptionLength {
		return fmt.Errorf("description must have at least %d characters (got %d)", MinDescriptionLength, n)
	}
	return nil
}

// RegionName returns the display name of the briefing region.
func (b *Briefing) RegionName() string {
	return RegionName(b.RegionCode)
}

// DisplayID returns the first 8 characters of the ID.
func (b *Briefing) DisplayID() string {
	if len(b.ID) >= 8 {
		return b.ID[:8]
	}
	return b.ID
}

// Summary returns the first line of the description, cut to max runes.
func (b *Briefing) Summary(max int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(b.Description), "\n")
	if utf8.RuneCountInString(line) <= max {
		return line
	}
	runes := []rune(line)
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
