// Package npc models an in-game character: profile, memory, conversation
// history, and the lie/omission bookkeeping the fact checker feeds.
package npc

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zhephyr/dialogue-engine/internal/domain"
)

// Profile holds the authored character sheet used to create an Agent.
type Profile struct {
	Name           string                  `json:"name" yaml:"name"`
	Personality    string                  `json:"personality" yaml:"personality"`
	Background     string                  `json:"background,omitempty" yaml:"background"`
	Goals          []string                `json:"goals,omitempty" yaml:"goals"`
	Fears          []string                `json:"fears,omitempty" yaml:"fears"`
	Secrets        []string                `json:"secrets,omitempty" yaml:"secrets"`
	Traits         []domain.CharacterTrait `json:"traits,omitempty" yaml:"traits"`
	Relationships  map[string]string       `json:"relationships,omitempty" yaml:"relationships"`
	Location       string                  `json:"location,omitempty" yaml:"location"`
	EmotionalState string                  `json:"emotional_state,omitempty" yaml:"emotional_state"`
}

// Status is a point-in-time snapshot of an agent.
type Status struct {
	Name              string   `json:"name"`
	Location          string   `json:"location"`
	EmotionalState    string   `json:"emotional_state"`
	ConversationTurns int      `json:"conversation_turns"`
	Memories          int      `json:"memories"`
	LiesTold          int      `json:"lies_told"`
	OmissionsMade     int      `json:"omissions_made"`
	Secrets           []string `json:"secrets"`
	Goals             []string `json:"goals"`
}

// Agent is one NPC. Lies and omissions are tracked separately from the main
// memory log so they can be surfaced directly and replayed into later prompts.
type Agent struct {
	mu sync.Mutex

	profile        Profile
	location       string
	emotionalState string

	memory       []domain.MemoryEntry
	conversation []domain.ConversationTurn
	lies         []domain.MemoryEntry
	omissions    []domain.MemoryEntry

	knownFacts      map[string]domain.Value
	knownFactOrder  []string
	witnessedEvents []string

	now func() time.Time
}

func NewAgent(p Profile) *Agent {
	location := p.Location
	if location == "" {
		location = "unknown"
	}
	state := p.EmotionalState
	if state == "" {
		state = "neutral"
	}
	return &Agent{
		profile:        p,
		location:       location,
		emotionalState: state,
		knownFacts:     make(map[string]domain.Value),
		now:            time.Now,
	}
}

func (a *Agent) Name() string { return a.profile.Name }

func (a *Agent) Secrets() []string {
	out := make([]string, len(a.profile.Secrets))
	copy(out, a.profile.Secrets)
	return out
}

func (a *Agent) Location() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

func (a *Agent) EmotionalState() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.emotionalState
}

// AddMemory appends a timestamped entry to the agent's memory log. Lie and
// omission entries are additionally tracked in their own logs.
func (a *Agent) AddMemory(kind domain.MemoryKind, content string, context map[string]any, emotionalImpact int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.addMemory(kind, content, context, emotionalImpact)
}

func (a *Agent) addMemory(kind domain.MemoryKind, content string, context map[string]any, emotionalImpact int) {
	entry := domain.MemoryEntry{
		Timestamp:       a.now(),
		Kind:            kind,
		Content:         content,
		Context:         context,
		EmotionalImpact: emotionalImpact,
	}
	a.memory = append(a.memory, entry)

	switch kind {
	case domain.MemoryLie:
		a.lies = append(a.lies, entry)
	case domain.MemoryOmission:
		a.omissions = append(a.omissions, entry)
	}
}

// AddConversationTurn records one utterance and mirrors it into the memory log.
func (a *Agent) AddConversationTurn(speaker, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.conversation = append(a.conversation, domain.ConversationTurn{
		ID:        uuid.New(),
		Timestamp: a.now(),
		Speaker:   speaker,
		Message:   message,
	})
	a.addMemory(domain.MemoryConversation, speaker+": "+message, map[string]any{"speaker": speaker}, 0)
}

// RecentConversation returns up to n most recent turns, oldest first.
func (a *Agent) RecentConversation(n int) []domain.ConversationTurn {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.recentConversation(n)
}

func (a *Agent) recentConversation(n int) []domain.ConversationTurn {
	if n <= 0 || n > len(a.conversation) {
		n = len(a.conversation)
	}
	out := make([]domain.ConversationTurn, n)
	copy(out, a.conversation[len(a.conversation)-n:])
	return out
}

// AddKnownFact stores a fact in the agent's personal knowledge base.
func (a *Agent) AddKnownFact(key string, value domain.Value) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.knownFacts[key]; !ok {
		a.knownFactOrder = append(a.knownFactOrder, key)
	}
	a.knownFacts[key] = value
}

func (a *Agent) KnowsFact(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, ok := a.knownFacts[key]
	return ok
}

// AddWitnessedEvent records an event id once.
func (a *Agent) AddWitnessedEvent(eventID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, id := range a.witnessedEvents {
		if id == eventID {
			return
		}
	}
	a.witnessedEvents = append(a.witnessedEvents, eventID)
}

func (a *Agent) WitnessedEvents() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]string, len(a.witnessedEvents))
	copy(out, a.witnessedEvents)
	return out
}

// Lies returns all lie entries, oldest first.
func (a *Agent) Lies() []domain.MemoryEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]domain.MemoryEntry, len(a.lies))
	copy(out, a.lies)
	return out
}

// Omissions returns all omission entries, oldest first.
func (a *Agent) Omissions() []domain.MemoryEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]domain.MemoryEntry, len(a.omissions))
	copy(out, a.omissions)
	return out
}

// SetEmotionalState updates the state and records the change as an observation.
func (a *Agent) SetEmotionalState(state string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.emotionalState
	a.emotionalState = state
	a.addMemory(domain.MemoryObservation, "emotional state changed to: "+state,
		map[string]any{"previous_state": previous}, 0)
}

// SetLocation moves the agent and records the move as an observation.
func (a *Agent) SetLocation(location string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.location
	a.location = location
	a.addMemory(domain.MemoryObservation, "moved from "+previous+" to "+location,
		map[string]any{"from": previous, "to": location}, 0)
}

// ResetConversation clears the conversation history. Memory, lies, and
// omissions are kept; only the dialogue window restarts.
func (a *Agent) ResetConversation() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.conversation = nil
}

func (a *Agent) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Status{
		Name:              a.profile.Name,
		Location:          a.location,
		EmotionalState:    a.emotionalState,
		ConversationTurns: len(a.conversation),
		Memories:          len(a.memory),
		LiesTold:          len(a.lies),
		OmissionsMade:     len(a.omissions),
		Secrets:           append([]string(nil), a.profile.Secrets...),
		Goals:             append([]string(nil), a.profile.Goals...),
	}
}
