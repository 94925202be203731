package domain

import (
	"time"

	"github.com/google/uuid"
)

// MemoryKind classifies entries in an NPC's memory log.
type MemoryKind string

const (
	MemoryConversation MemoryKind = "conversation"
	MemoryObservation  MemoryKind = "observation"
	MemoryLie          MemoryKind = "lie"
	MemoryOmission     MemoryKind = "omission"
	MemoryEvent        MemoryKind = "event"
)

func ValidMemoryKind(k string) bool {
	switch MemoryKind(k) {
	case MemoryConversation, MemoryObservation, MemoryLie, MemoryOmission, MemoryEvent:
		return true
	}
	return false
}

// MemoryEntry is one timestamped record in an NPC's memory.
// EmotionalImpact is a -10..+10 scale.
type MemoryEntry struct {
	Timestamp       time.Time      `json:"timestamp"`
	Kind            MemoryKind     `json:"type"`
	Content         string         `json:"content"`
	Context         map[string]any `json:"context,omitempty"`
	EmotionalImpact int            `json:"emotional_impact"`
}

// CharacterTrait is a named personality trait with a 1-10 intensity.
type CharacterTrait struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Intensity   int    `json:"intensity" yaml:"intensity"`
}

// ConversationTurn is one utterance in a player/NPC exchange.
type ConversationTurn struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Speaker   string    `json:"speaker"`
	Message   string    `json:"message"`
}
