package domain

import "context"

// KnownFact is a fact as seen from one character's point of view.
type KnownFact struct {
	Key      string `json:"key"`
	Value    Value  `json:"value"`
	Category string `json:"category"`
}

// KnownEvent is an event the character participated in or witnessed.
type KnownEvent struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Location    string `json:"location"`
}

// KnownRelationship describes a relationship from the character's side.
type KnownRelationship struct {
	With        string `json:"with"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CharacterKnowledge is the briefing bundle for one character: everything
// they are entitled to reference when speaking. Consumed when constructing
// a generation prompt.
type CharacterKnowledge struct {
	Character     string              `json:"character"`
	Facts         []KnownFact         `json:"known_facts"`
	Events        []KnownEvent        `json:"known_events"`
	Relationships []KnownRelationship `json:"relationships"`
	Schedule      []ScheduleEntry     `json:"schedule"`
}

// WorldSummary is a coarse census of the world state.
type WorldSummary struct {
	TotalFacts         int      `json:"total_facts"`
	TotalEvents        int      `json:"total_events"`
	TotalRelationships int      `json:"total_relationships"`
	Locations          []string `json:"locations"`
	Characters         []string `json:"characters"`
	PublicFacts        int      `json:"public_facts"`
	PrivateFacts       int      `json:"private_facts"`
}

// DialogueClient generates in-character dialogue from an assembled prompt.
// Implementations wrap an external text-generation service.
type DialogueClient interface {
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}
