package world

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zhephyr/dialogue-engine/internal/domain"
)

// ErrInvalidPeriod is returned when a schedule entry names a period outside
// the canonical set. The rejected call leaves all state untouched.
var ErrInvalidPeriod = errors.New("invalid schedule period")

// AddScheduleEntry appends an entry to the character's timeline. The witness
// set becomes the union of the explicit witnesses, the character, and all
// companions. Multiple entries may share a (character, day, period) slot;
// no overlap check is applied.
func (s *State) AddScheduleEntry(e domain.ScheduleEntry) error {
	if e.Period.Index() < 0 {
		return fmt.Errorf("%w: %q (valid: %v)", ErrInvalidPeriod, e.Period, domain.Periods())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.Witnesses = witnessUnion(e.Witnesses, e.Character, e.Companions)

	s.addCharacter(e.Character)
	if _, ok := s.schedules[e.Character]; !ok {
		s.schedules[e.Character] = nil
	}
	s.schedules[e.Character] = append(s.schedules[e.Character], e)
	return nil
}

func witnessUnion(explicit []string, character string, companions []string) []string {
	seen := make(map[string]struct{}, len(explicit)+len(companions)+1)
	var out []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, w := range explicit {
		add(w)
	}
	add(character)
	for _, c := range companions {
		add(c)
	}
	return out
}

// Schedule returns the character's entries sorted by (day, period), optionally
// filtered to a single day when day > 0. Unknown characters yield an empty
// slice, not an error.
func (s *State) Schedule(character string, day int) []domain.ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.schedule(character, day)
}

func (s *State) schedule(character string, day int) []domain.ScheduleEntry {
	var out []domain.ScheduleEntry
	for _, e := range s.schedules[character] {
		if day > 0 && e.Day != day {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Block().Before(out[j].Block())
	})
	return out
}

// LocationAt returns the character's location during the given slot, taken
// from the first matching entry. The second return is false when no entry
// covers the slot.
func (s *State) LocationAt(character string, day int, period domain.Period) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.locationAt(character, day, period)
}

func (s *State) locationAt(character string, day int, period domain.Period) (string, bool) {
	for _, e := range s.schedules[character] {
		if e.Day == day && e.Period == period {
			return e.Location, true
		}
	}
	return "", false
}

// CharactersAt returns all registered characters scheduled at the location
// during the given slot.
func (s *State) CharactersAt(location string, day int, period domain.Period) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for _, c := range s.characterOrder {
		if loc, ok := s.locationAt(c, day, period); ok && strings.EqualFold(loc, location) {
			out = append(out, c)
		}
	}
	return out
}

// VerifyClaim checks a claimed location for a character at a slot against the
// schedule. With no entry for the slot it returns (true, ""); absence of
// data is never treated as contradiction. Otherwise it returns whether the
// actual location matches the claim ignoring case, along with the actual
// location.
func (s *State) VerifyClaim(character, claimedLocation string, day int, period domain.Period) (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actual, ok := s.locationAt(character, day, period)
	if !ok {
		return true, ""
	}
	return strings.EqualFold(actual, claimedLocation), actual
}
