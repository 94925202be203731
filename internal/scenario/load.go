package scenario

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zhephyr/dialogue-engine/internal/domain"
	"github.com/zhephyr/dialogue-engine/internal/npc"
	"github.com/zhephyr/dialogue-engine/internal/world"
)

// Load reads and validates a scenario file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("loading scenario: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("loading scenario: %w", err)
	}
	return &doc, nil
}

func validate(doc *Document) error {
	if strings.TrimSpace(doc.Name) == "" {
		return fmt.Errorf("scenario name is required")
	}
	for i, f := range doc.Facts {
		if strings.TrimSpace(f.Key) == "" {
			return fmt.Errorf("facts[%d]: key is required", i)
		}
		if f.SchedulePeriod != "" && !domain.ValidPeriod(domain.Period(f.SchedulePeriod)) {
			return fmt.Errorf("facts[%d]: unknown period %q", i, f.SchedulePeriod)
		}
	}
	for i, e := range doc.Events {
		if strings.TrimSpace(e.ID) == "" {
			return fmt.Errorf("events[%d]: id is required", i)
		}
	}
	for i, r := range doc.Relationships {
		if r.CharacterA == "" || r.CharacterB == "" {
			return fmt.Errorf("relationships[%d]: both characters are required", i)
		}
	}
	for i, s := range doc.Schedule {
		if s.Character == "" {
			return fmt.Errorf("schedule[%d]: character is required", i)
		}
		if !domain.ValidPeriod(domain.Period(s.Period)) {
			return fmt.Errorf("schedule[%d]: unknown period %q", i, s.Period)
		}
	}
	names := make(map[string]bool, len(doc.NPCs))
	for i, p := range doc.NPCs {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("npcs[%d]: name is required", i)
		}
		key := strings.ToLower(p.Name)
		if names[key] {
			return fmt.Errorf("npcs[%d]: duplicate npc %q", i, p.Name)
		}
		names[key] = true
	}
	for i, k := range doc.Knowledge {
		if k.Character == "" {
			return fmt.Errorf("knowledge[%d]: character is required", i)
		}
	}
	return nil
}

// BuildWorld constructs a world state from the document.
func (doc *Document) BuildWorld() (*world.State, error) {
	w := world.New()

	for _, loc := range doc.Locations {
		w.AddLocation(loc)
	}
	for _, c := range doc.Characters {
		w.AddCharacter(c)
	}
	for _, e := range doc.Events {
		w.AddEvent(domain.Event{
			ID:            e.ID,
			Description:   e.Description,
			Timestamp:     e.Timestamp,
			Location:      e.Location,
			Participants:  e.Participants,
			Witnesses:     e.Witnesses,
			Details:       e.Details,
			SequenceOrder: e.SequenceOrder,
			CausedBy:      e.CausedBy,
		})
	}
	for _, f := range doc.Facts {
		fact := domain.Fact{
			Key:       f.Key,
			Value:     domain.ValueOf(f.Value),
			Category:  f.Category,
			Source:    f.Source,
			Timestamp: f.Timestamp,
			Public:    f.Public,
			Witnesses: f.Witnesses,
			EventID:   f.EventID,
		}
		if f.SchedulePeriod != "" {
			fact.Anchor = &domain.TimeBlock{Day: f.ScheduleDay, Period: domain.Period(f.SchedulePeriod)}
		}
		w.AddFact(fact)
	}
	for _, r := range doc.Relationships {
		w.AddRelationship(domain.Relationship{
			CharacterA:  r.CharacterA,
			CharacterB:  r.CharacterB,
			Type:        r.Type,
			Description: r.Description,
			Strength:    r.Strength,
			Public:      r.Public,
		})
	}
	for _, s := range doc.Schedule {
		err := w.AddScheduleEntry(domain.ScheduleEntry{
			Character:  s.Character,
			Day:        s.Day,
			Period:     domain.Period(s.Period),
			Location:   s.Location,
			Activity:   s.Activity,
			Companions: s.Companions,
			Public:     s.Public,
			Witnesses:  s.Witnesses,
			Notes:      s.Notes,
		})
		if err != nil {
			return nil, fmt.Errorf("schedule entry for %s: %w", s.Character, err)
		}
	}
	return w, nil
}

// BuildAgents constructs the scenario's NPCs and seeds their authored
// private knowledge.
func (doc *Document) BuildAgents() []*npc.Agent {
	agents := make([]*npc.Agent, 0, len(doc.NPCs))
	byName := make(map[string]*npc.Agent, len(doc.NPCs))
	for _, p := range doc.NPCs {
		a := npc.NewAgent(p)
		agents = append(agents, a)
		byName[strings.ToLower(p.Name)] = a
	}
	for _, k := range doc.Knowledge {
		a, ok := byName[strings.ToLower(k.Character)]
		if !ok {
			continue
		}
		keys := make([]string, 0, len(k.Facts))
		for key := range k.Facts {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			a.AddKnownFact(key, domain.ValueOf(k.Facts[key]))
		}
		for _, ev := range k.Events {
			a.AddWitnessedEvent(ev)
		}
	}
	return agents
}
