// Package scenario loads authored mystery scenarios from YAML and turns
// them into a populated world plus a set of ready-to-play NPCs.
package scenario

import "github.com/zhephyr/dialogue-engine/internal/npc"

// Document is the top-level YAML schema for a scenario file.
type Document struct {
	Name          string              `yaml:"name"`
	Description   string              `yaml:"description"`
	Scene         string              `yaml:"scene"`
	Locations     []string            `yaml:"locations"`
	Characters    []string            `yaml:"characters"`
	Facts         []FactDoc           `yaml:"facts"`
	Events        []EventDoc          `yaml:"events"`
	Relationships []RelationshipDoc   `yaml:"relationships"`
	Schedule      []ScheduleDoc       `yaml:"schedule"`
	NPCs          []npc.Profile       `yaml:"npcs"`
	Knowledge     []CharacterFactsDoc `yaml:"knowledge"`
}

// FactDoc is one authored fact. Value is decoded loosely so authors can
// write strings, booleans, or numbers without quoting gymnastics.
type FactDoc struct {
	Key            string   `yaml:"key"`
	Value          any      `yaml:"value"`
	Category       string   `yaml:"category"`
	Source         string   `yaml:"source"`
	Timestamp      string   `yaml:"timestamp"`
	Public         bool     `yaml:"is_public"`
	Witnesses      []string `yaml:"witnesses"`
	EventID        string   `yaml:"event_id"`
	ScheduleDay    int      `yaml:"schedule_day"`
	SchedulePeriod string   `yaml:"schedule_period"`
}

type EventDoc struct {
	ID            string         `yaml:"id"`
	Description   string         `yaml:"description"`
	Timestamp     string         `yaml:"timestamp"`
	Location      string         `yaml:"location"`
	Participants  []string       `yaml:"participants"`
	Witnesses     []string       `yaml:"witnesses"`
	Details       map[string]any `yaml:"details"`
	SequenceOrder int            `yaml:"sequence_order"`
	CausedBy      string         `yaml:"caused_by"`
}

type RelationshipDoc struct {
	CharacterA  string `yaml:"character_a"`
	CharacterB  string `yaml:"character_b"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Strength    int    `yaml:"strength"`
	Public      bool   `yaml:"is_public"`
}

type ScheduleDoc struct {
	Character  string   `yaml:"character"`
	Day        int      `yaml:"day"`
	Period     string   `yaml:"period"`
	Location   string   `yaml:"location"`
	Activity   string   `yaml:"activity"`
	Companions []string `yaml:"companions"`
	Public     bool     `yaml:"is_public"`
	Witnesses  []string `yaml:"witnesses"`
	Notes      string   `yaml:"notes"`
}

// CharacterFactsDoc seeds private knowledge directly onto one NPC, on top
// of whatever the world-model sync would give them.
type CharacterFactsDoc struct {
	Character string         `yaml:"character"`
	Facts     map[string]any `yaml:"facts"`
	Events    []string       `yaml:"events"`
}
