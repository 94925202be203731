// Package factcheck validates NPC statements against the world model,
// tracking lies and omissions so deceptions are recorded rather than lost.
package factcheck

import (
	"regexp"

	"github.com/zhephyr/dialogue-engine/internal/domain"
)

// Extractor turns a free-text statement into checkable claims. Extraction is
// best-effort: missed claims are acceptable, invented ones are not. The
// interface exists so a grammar- or model-backed extractor can replace the
// regex one without touching validation.
type Extractor interface {
	Extract(statement string) []domain.Claim
}

// CharacterRegistry is the slice of the world model the extractor needs:
// person mentions are only kept for registered characters.
type CharacterRegistry interface {
	HasCharacter(name string) bool
}

var (
	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:I (?:was|am)|he (?:was|is)|she (?:was|is)|they (?:were|are)) (?:in|at) (?:the )?(\w+)`),
		regexp.MustCompile(`(?i)(?:saw|found|met) (?:\w+ )?(?:in|at) (?:the )?(\w+)`),
	}
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)at (\d{1,2}(?::\d{2})?\s*(?:am|pm))`),
		regexp.MustCompile(`(?i)(last night|this morning|yesterday|tonight)`),
	}
	personPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:saw|met|spoke with|talked to) (\w+)`),
		regexp.MustCompile(`(?i)(\w+) (?:was|is) (?:there|here|present)`),
	}
)

// Claim keys produced by the regex extractor.
const (
	KeyMentionedLocation = "mentioned_location"
	KeyMentionedTime     = "mentioned_time"
	KeyMentionedPerson   = "mentioned_person"
)

// RegexExtractor is the shallow pattern-matching extractor. It proposes
// claims, it does not parse semantics.
type RegexExtractor struct {
	characters CharacterRegistry
}

func NewRegexExtractor(characters CharacterRegistry) *RegexExtractor {
	return &RegexExtractor{characters: characters}
}

func (x *RegexExtractor) Extract(statement string) []domain.Claim {
	var claims []domain.Claim

	for _, p := range locationPatterns {
		for _, m := range p.FindAllStringSubmatch(statement, -1) {
			claims = append(claims, domain.Claim{
				Text:     m[0],
				Category: domain.ClaimLocation,
				Key:      KeyMentionedLocation,
				Value:    m[1],
			})
		}
	}

	for _, p := range timePatterns {
		for _, m := range p.FindAllStringSubmatch(statement, -1) {
			claims = append(claims, domain.Claim{
				Text:     m[0],
				Category: domain.ClaimTime,
				Key:      KeyMentionedTime,
				Value:    m[1],
			})
		}
	}

	for _, p := range personPatterns {
		for _, m := range p.FindAllStringSubmatch(statement, -1) {
			// Unregistered names are dropped, not flagged.
			if !x.characters.HasCharacter(m[1]) {
				continue
			}
			claims = append(claims, domain.Claim{
				Text:     m[0],
				Category: domain.ClaimPerson,
				Key:      KeyMentionedPerson,
				Value:    m[1],
			})
		}
	}

	return claims
}
