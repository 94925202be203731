package world

import (
	"sort"

	"github.com/zhephyr/dialogue-engine/internal/domain"
)

// Knows reports whether the character is entitled to know the fact under key:
// the fact is public or the character is a witness. Unknown keys are not known
// to anyone. Recomputed from current state on every call.
func (s *State) Knows(character, factKey string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.facts[factKey]
	if !ok {
		return false
	}
	return f.KnownTo(character)
}

// ExportCharacterKnowledge bundles everything the character is entitled to
// reference: known facts, events they took part in or witnessed, their
// relationships, and their full schedule. This is the single briefing handed
// to the text-generation caller.
func (s *State) ExportCharacterKnowledge(character string) domain.CharacterKnowledge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var facts []domain.KnownFact
	for _, key := range s.factKeys() {
		f := s.facts[key]
		if !f.KnownTo(character) {
			continue
		}
		facts = append(facts, domain.KnownFact{
			Key:      f.Key,
			Value:    f.Value,
			Category: f.Category,
		})
	}

	var events []domain.KnownEvent
	for _, e := range s.eventsWith(character) {
		events = append(events, domain.KnownEvent{
			ID:          e.ID,
			Description: e.Description,
			Timestamp:   e.Timestamp,
			Location:    e.Location,
		})
	}

	var rels []domain.KnownRelationship
	for _, r := range s.relationshipsOf(character) {
		rels = append(rels, domain.KnownRelationship{
			With:        r.Other(character),
			Type:        r.Type,
			Description: r.Description,
		})
	}

	return domain.CharacterKnowledge{
		Character:     character,
		Facts:         facts,
		Events:        events,
		Relationships: rels,
		Schedule:      s.schedule(character, 0),
	}
}

// factKeys returns fact keys in a stable order for deterministic exports.
func (s *State) factKeys() []string {
	keys := make([]string, 0, len(s.facts))
	for k := range s.facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
