// Package world holds the authoritative in-memory model of the game world:
// facts, events, relationships, locations, characters, and per-character
// schedules. It is the ground truth NPC statements are validated against.
package world

import (
	"strings"
	"sync"

	"github.com/zhephyr/dialogue-engine/internal/domain"
)

// State is the single owner of all world data. All mutation goes through its
// methods under one lock, so the append order of schedules and validation
// inputs stays stable even with concurrent callers.
type State struct {
	mu             sync.RWMutex
	facts          map[string]domain.Fact
	events         map[string]domain.Event
	eventOrder     []string
	relationships  []domain.Relationship
	locations      map[string]struct{}
	locationOrder  []string
	characters     map[string]struct{}
	characterOrder []string
	schedules      map[string][]domain.ScheduleEntry
}

func New() *State {
	return &State{
		facts:      make(map[string]domain.Fact),
		events:     make(map[string]domain.Event),
		locations:  make(map[string]struct{}),
		characters: make(map[string]struct{}),
		schedules:  make(map[string][]domain.ScheduleEntry),
	}
}

// AddFact inserts or overwrites a fact by key. Empty category and source
// fall back to "general" and "world".
func (s *State) AddFact(f domain.Fact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Category == "" {
		f.Category = "general"
	}
	if f.Source == "" {
		f.Source = "world"
	}
	s.facts[f.Key] = f
}

// Fact returns the value stored under key. The second return is false when
// no fact exists; lookup misses are never errors.
func (s *State) Fact(key string) (domain.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.facts[key]
	if !ok {
		return domain.Value{}, false
	}
	return f.Value, true
}

// FactDetails returns the full fact record, or nil when absent.
func (s *State) FactDetails(key string) *domain.Fact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.facts[key]
	if !ok {
		return nil
	}
	return &f
}

// QueryFacts filters facts by category and/or visibility. Empty category
// matches all categories; nil public matches both visibilities.
func (s *State) QueryFacts(category string, public *bool) []domain.Fact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Fact
	for _, f := range s.facts {
		if category != "" && f.Category != category {
			continue
		}
		if public != nil && f.Public != *public {
			continue
		}
		out = append(out, f)
	}
	return out
}

// AddEvent inserts or overwrites an event by id, and registers its location
// and every participant and witness.
func (s *State) AddEvent(e domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[e.ID]; !exists {
		s.eventOrder = append(s.eventOrder, e.ID)
	}
	s.events[e.ID] = e

	s.addLocation(e.Location)
	for _, c := range e.Participants {
		s.addCharacter(c)
	}
	for _, c := range e.Witnesses {
		s.addCharacter(c)
	}
}

// Event returns the event with the given id, or nil when absent.
func (s *State) Event(id string) *domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil
	}
	return &e
}

// Events returns all events in insertion order.
func (s *State) Events() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Event, 0, len(s.eventOrder))
	for _, id := range s.eventOrder {
		out = append(out, s.events[id])
	}
	return out
}

// EventsAt returns all events recorded at the location, in insertion order.
func (s *State) EventsAt(location string) []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Event
	for _, id := range s.eventOrder {
		if e := s.events[id]; e.Location == location {
			out = append(out, e)
		}
	}
	return out
}

// EventsWith returns all events the character participated in or witnessed,
// in insertion order.
func (s *State) EventsWith(character string) []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.eventsWith(character)
}

func (s *State) eventsWith(character string) []domain.Event {
	var out []domain.Event
	for _, id := range s.eventOrder {
		e := s.events[id]
		if e.Involves(character) {
			out = append(out, e)
		}
	}
	return out
}

// AddRelationship records a relationship between two characters and registers
// both. A zero strength defaults to 5; out-of-range values are clamped to 1-10.
func (s *State) AddRelationship(r domain.Relationship) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case r.Strength == 0:
		r.Strength = 5
	case r.Strength < 1:
		r.Strength = 1
	case r.Strength > 10:
		r.Strength = 10
	}

	s.relationships = append(s.relationships, r)
	s.addCharacter(r.CharacterA)
	s.addCharacter(r.CharacterB)
}

// Relationships returns all relationships involving the character.
func (s *State) Relationships(character string) []domain.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.relationshipsOf(character)
}

func (s *State) relationshipsOf(character string) []domain.Relationship {
	var out []domain.Relationship
	for _, r := range s.relationships {
		if r.Involves(character) {
			out = append(out, r)
		}
	}
	return out
}

// RelationshipsBetween returns relationships linking the two characters,
// in either order.
func (s *State) RelationshipsBetween(a, b string) []domain.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Relationship
	for _, r := range s.relationships {
		if r.Between(a, b) {
			out = append(out, r)
		}
	}
	return out
}

// AddLocation registers a location name. Idempotent.
func (s *State) AddLocation(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocation(name)
}

func (s *State) addLocation(name string) {
	if name == "" {
		return
	}
	if _, ok := s.locations[name]; ok {
		return
	}
	s.locations[name] = struct{}{}
	s.locationOrder = append(s.locationOrder, name)
}

// HasLocation reports whether a location with the given name exists,
// ignoring case.
func (s *State) HasLocation(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for loc := range s.locations {
		if strings.EqualFold(loc, name) {
			return true
		}
	}
	return false
}

// Locations returns all registered locations in registration order.
func (s *State) Locations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.locationOrder))
	copy(out, s.locationOrder)
	return out
}

// AddCharacter registers a character name. Idempotent.
func (s *State) AddCharacter(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addCharacter(name)
}

func (s *State) addCharacter(name string) {
	if name == "" {
		return
	}
	if _, ok := s.characters[name]; ok {
		return
	}
	s.characters[name] = struct{}{}
	s.characterOrder = append(s.characterOrder, name)
}

// HasCharacter reports whether the exact character name is registered.
func (s *State) HasCharacter(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.characters[name]
	return ok
}

// Characters returns all registered characters in registration order.
func (s *State) Characters() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.characterOrder))
	copy(out, s.characterOrder)
	return out
}

// Summary returns a census of the world state.
func (s *State) Summary() domain.WorldSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	public := 0
	for _, f := range s.facts {
		if f.Public {
			public++
		}
	}

	locations := make([]string, len(s.locationOrder))
	copy(locations, s.locationOrder)
	characters := make([]string, len(s.characterOrder))
	copy(characters, s.characterOrder)

	return domain.WorldSummary{
		TotalFacts:         len(s.facts),
		TotalEvents:        len(s.events),
		TotalRelationships: len(s.relationships),
		Locations:          locations,
		Characters:         characters,
		PublicFacts:        public,
		PrivateFacts:       len(s.facts) - public,
	}
}
