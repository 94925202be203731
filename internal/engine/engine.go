// Package engine orchestrates conversations between the player and NPCs:
// prompt assembly, text generation, fact checking, and memory updates.
package engine

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/zhephyr/dialogue-engine/internal/domain"
	"github.com/zhephyr/dialogue-engine/internal/factcheck"
	"github.com/zhephyr/dialogue-engine/internal/npc"
	"github.com/zhephyr/dialogue-engine/internal/world"
	"go.uber.org/zap"
)

var (
	ErrNPCNotFound  = errors.New("npc not found")
	ErrNPCConflict  = errors.New("npc already registered")
	ErrEmptyMessage = errors.New("player message is required")
)

// TurnResult is the outcome of one conversation turn: the NPC's reply plus
// the fact-check verdicts and deception signals for it.
type TurnResult struct {
	NPCName           string                    `json:"npc_name"`
	Response          string                    `json:"response"`
	ValidationEnabled bool                      `json:"validation_enabled"`
	Valid             bool                      `json:"is_valid"`
	Results           []domain.ValidationResult `json:"validation_results,omitempty"`
	LikelyLies        []string                  `json:"likely_lies,omitempty"`
	LikelyOmissions   []string                  `json:"likely_omissions,omitempty"`
}

// Stats summarizes the engine for monitoring views.
type Stats struct {
	TotalNPCs    int                       `json:"total_npcs"`
	NPCNames     []string                  `json:"npc_names"`
	World        domain.WorldSummary       `json:"world_state"`
	Provider     string                    `json:"ai_provider"`
	FactChecking *domain.ValidationSummary `json:"fact_checking,omitempty"`
}

// Engine manages all NPC conversations against one world instance.
// Conversation turns are serialized under a single lock so the
// validation-history and per-agent memory logs keep a stable order.
type Engine struct {
	world    *world.State
	checker  *factcheck.Checker
	client   domain.DialogueClient
	provider string
	logger   *zap.Logger

	mu       sync.Mutex
	npcs     map[string]*npc.Agent
	npcOrder []string
	scene    string
}

// New creates an engine with fact checking enabled. Pass the provider name
// used to build the client; it is surfaced in stats.
func New(w *world.State, client domain.DialogueClient, provider string, logger *zap.Logger) *Engine {
	return &Engine{
		world:    w,
		checker:  factcheck.New(w, logger),
		client:   client,
		provider: provider,
		logger:   logger,
		npcs:     make(map[string]*npc.Agent),
	}
}

// DisableFactChecking turns statement validation off for this engine.
func (e *Engine) DisableFactChecking() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checker = nil
}

// World exposes the engine's world model.
func (e *Engine) World() *world.State {
	return e.world
}

// Checker exposes the engine's fact checker, or nil when disabled.
func (e *Engine) Checker() *factcheck.Checker {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checker
}

// AddNPC registers an agent and its character in the world.
func (e *Engine) AddNPC(a *npc.Agent) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := strings.ToLower(a.Name())
	if _, exists := e.npcs[key]; exists {
		return ErrNPCConflict
	}
	e.npcs[key] = a
	e.npcOrder = append(e.npcOrder, key)
	e.world.AddCharacter(a.Name())

	e.logger.Info("registered npc", zap.String("name", a.Name()))
	return nil
}

// NPC returns the agent by name, case-insensitively.
func (e *Engine) NPC(name string) (*npc.Agent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.npcs[strings.ToLower(name)]
	return a, ok
}

// NPCNames returns registered NPC display names in registration order.
func (e *Engine) NPCNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.npcNames()
}

func (e *Engine) npcNames() []string {
	out := make([]string, 0, len(e.npcOrder))
	for _, key := range e.npcOrder {
		out = append(out, e.npcs[key].Name())
	}
	return out
}

// SetScene updates the scene description included in every prompt.
func (e *Engine) SetScene(description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene = description
}

func (e *Engine) Scene() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene
}

// SyncNPCKnowledge pushes everything the character is entitled to know from
// the world into the agent's personal knowledge base.
func (e *Engine) SyncNPCKnowledge(a *npc.Agent) {
	e.syncKnowledge(a)
}

func (e *Engine) syncKnowledge(a *npc.Agent) {
	knowledge := e.world.ExportCharacterKnowledge(a.Name())
	for _, f := range knowledge.Facts {
		a.AddKnownFact(f.Key, f.Value)
	}
	for _, ev := range knowledge.Events {
		a.AddWitnessedEvent(ev.ID)
	}
}

// Converse runs one player/NPC turn. The NPC's knowledge is synced first, the
// response is generated by the external client, then fact-checked; lie and
// omission verdicts are persisted into the agent's memory.
func (e *Engine) Converse(ctx context.Context, npcName, playerName, playerMessage string) (*TurnResult, error) {
	if playerMessage == "" {
		return nil, ErrEmptyMessage
	}
	if playerName == "" {
		playerName = "Player"
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.npcs[strings.ToLower(npcName)]
	if !ok {
		return nil, ErrNPCNotFound
	}

	e.syncKnowledge(a)
	a.AddConversationTurn(playerName, playerMessage)

	prompt := a.DialoguePrompt(playerMessage, e.scene)
	response, err := e.client.GenerateResponse(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.AddConversationTurn(a.Name(), response)

	result := &TurnResult{
		NPCName:           a.Name(),
		Response:          response,
		ValidationEnabled: e.checker != nil,
		Valid:             true,
	}

	if e.checker != nil {
		result.LikelyLies, result.LikelyOmissions = factcheck.AnalyzeForDeception(response, a.Secrets())

		// Marked lies/omissions would come from the generation side; the
		// current provider contract does not supply them.
		valid, results := e.checker.ValidateStatement(response, a.Name(), nil, nil)
		result.Valid = valid
		result.Results = results

		for _, r := range results {
			switch {
			case r.Lie:
				a.AddMemory(domain.MemoryLie, "lied: "+r.Claim.Text,
					map[string]any{"player_message": playerMessage, "reason": r.Reason}, 0)
			case r.Omission:
				a.AddMemory(domain.MemoryOmission, "omitted information related to: "+r.Claim.Text,
					map[string]any{"player_message": playerMessage}, 0)
			}
		}

		if !valid {
			e.logger.Warn("npc statement contradicts world state",
				zap.String("npc", a.Name()),
				zap.String("response", response))
		}
	}

	return result, nil
}

// ConversationHistory returns up to n recent turns with the NPC. Unknown NPCs
// yield an empty history.
func (e *Engine) ConversationHistory(npcName string, n int) []domain.ConversationTurn {
	a, ok := e.NPC(npcName)
	if !ok {
		return nil
	}
	return a.RecentConversation(n)
}

// ResetConversation clears the dialogue window with an NPC. Reports whether
// the NPC exists.
func (e *Engine) ResetConversation(npcName string) bool {
	a, ok := e.NPC(npcName)
	if !ok {
		return false
	}
	a.ResetConversation()
	return true
}

// Stats returns a monitoring snapshot of the engine.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Stats{
		TotalNPCs: len(e.npcs),
		NPCNames:  e.npcNames(),
		World:     e.world.Summary(),
		Provider:  e.provider,
	}
	if e.checker != nil {
		summary := e.checker.Summary()
		s.FactChecking = &summary
	}
	return s
}
