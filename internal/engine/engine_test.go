package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zhephyr/dialogue-engine/internal/domain"
	"github.com/zhephyr/dialogue-engine/internal/llm"
	"github.com/zhephyr/dialogue-engine/internal/npc"
	"github.com/zhephyr/dialogue-engine/internal/world"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) (*Engine, *world.State, *llm.MockClient) {
	t.Helper()
	w := world.New()
	client := llm.NewMockClient()
	e := New(w, client, llm.ProviderMock, zap.NewNop())
	return e, w, client
}

func addNathan(t *testing.T, e *Engine) *npc.Agent {
	t.Helper()
	a := npc.NewAgent(npc.Profile{
		Name:        "Nathan Cross",
		Personality: "Charming, calculating",
		Secrets:     []string{"I poisoned the wine"},
	})
	if err := e.AddNPC(a); err != nil {
		t.Fatalf("add npc: %v", err)
	}
	return a
}

func TestAddNPCRegistersCharacter(t *testing.T) {
	e, w, _ := newTestEngine(t)
	addNathan(t, e)

	if !w.HasCharacter("Nathan Cross") {
		t.Error("adding an NPC should register the character in the world")
	}
	if _, ok := e.NPC("nathan cross"); !ok {
		t.Error("NPC lookup should ignore case")
	}

	dup := npc.NewAgent(npc.Profile{Name: "Nathan Cross"})
	if err := e.AddNPC(dup); !errors.Is(err, ErrNPCConflict) {
		t.Errorf("expected ErrNPCConflict, got %v", err)
	}
}

func TestConverseUnknownNPC(t *testing.T) {
	e, _, _ := newTestEngine(t)

	_, err := e.Converse(context.Background(), "Stranger", "Player", "Hello?")
	if !errors.Is(err, ErrNPCNotFound) {
		t.Fatalf("expected ErrNPCNotFound, got %v", err)
	}
}

func TestConverseEmptyMessage(t *testing.T) {
	e, _, _ := newTestEngine(t)
	addNathan(t, e)

	_, err := e.Converse(context.Background(), "Nathan Cross", "Player", "")
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestConverseRecordsTurnsAndSyncsKnowledge(t *testing.T) {
	e, w, client := newTestEngine(t)
	a := addNathan(t, e)

	w.AddFact(domain.Fact{Key: "victim", Value: domain.StringValue("Elias Morven"), Public: true})
	client.Response = "A tragedy. I hardly knew him."

	result, err := e.Converse(context.Background(), "Nathan Cross", "Investigator", "What happened tonight?")
	if err != nil {
		t.Fatalf("converse: %v", err)
	}
	if result.Response != "A tragedy. I hardly knew him." {
		t.Errorf("unexpected response %q", result.Response)
	}
	if !result.ValidationEnabled || !result.Valid {
		t.Errorf("unexpected validation state: %+v", result)
	}

	turns := e.ConversationHistory("Nathan Cross", 0)
	if len(turns) != 2 {
		t.Fatalf("expected player and npc turns, got %d", len(turns))
	}
	if turns[0].Speaker != "Investigator" || turns[1].Speaker != "Nathan Cross" {
		t.Errorf("unexpected speakers: %+v", turns)
	}

	if !a.KnowsFact("victim") {
		t.Error("public fact should be synced into the agent before the turn")
	}
	if len(client.Calls) != 1 {
		t.Fatalf("expected one generation call, got %d", len(client.Calls))
	}
}

func TestConversePersistsLieMemory(t *testing.T) {
	e, w, client := newTestEngine(t)
	a := addNathan(t, e)

	// A recorded time fact lets a time claim contradict ground truth.
	w.AddFact(domain.Fact{Key: "mentioned_time", Value: domain.StringValue("9pm"), Public: true})
	client.Response = "I left at 11pm."

	result, err := e.Converse(context.Background(), "Nathan Cross", "Investigator", "When did you leave?")
	if err != nil {
		t.Fatalf("converse: %v", err)
	}
	if len(result.Results) != 1 || !result.Results[0].Lie {
		t.Fatalf("expected a contradiction flagged as lie, got %+v", result.Results)
	}
	// Recorded lies do not fail the statement overall.
	if !result.Valid {
		t.Errorf("recorded lie should not fail the statement: %+v", result)
	}
	if got := len(a.Lies()); got != 1 {
		t.Errorf("expected lie persisted into agent memory, got %d", got)
	}
}

func TestConverseInvalidStatement(t *testing.T) {
	e, _, client := newTestEngine(t)
	a := addNathan(t, e)

	client.Response = "I was in the cellar."

	result, err := e.Converse(context.Background(), "Nathan Cross", "Investigator", "Where were you?")
	if err != nil {
		t.Fatalf("converse: %v", err)
	}
	if result.Valid {
		t.Errorf("statement naming an unknown location should fail: %+v", result.Results)
	}
	// Invalid-but-not-lie results are not persisted as lie memories.
	if got := len(a.Lies()); got != 0 {
		t.Errorf("expected no lie memories, got %d", got)
	}
}

func TestConverseFlagsOmissionSignals(t *testing.T) {
	e, _, client := newTestEngine(t)
	addNathan(t, e)

	client.Response = "We drank wine together, nothing more."

	result, err := e.Converse(context.Background(), "Nathan Cross", "Investigator", "Tell me about the evening.")
	if err != nil {
		t.Fatalf("converse: %v", err)
	}
	if len(result.LikelyOmissions) != 1 {
		t.Errorf("expected one omission signal, got %v", result.LikelyOmissions)
	}
	if len(result.LikelyLies) != 0 {
		t.Errorf("lie detection is a placeholder, got %v", result.LikelyLies)
	}
}

func TestConverseGenerationError(t *testing.T) {
	e, _, client := newTestEngine(t)
	addNathan(t, e)

	client.Err = errors.New("provider unavailable")
	if _, err := e.Converse(context.Background(), "Nathan Cross", "Investigator", "Hello?"); err == nil {
		t.Fatal("expected generation error to propagate")
	}
}

func TestDisableFactChecking(t *testing.T) {
	e, _, client := newTestEngine(t)
	addNathan(t, e)
	e.DisableFactChecking()

	client.Response = "I was in the cellar."
	result, err := e.Converse(context.Background(), "Nathan Cross", "Investigator", "Where were you?")
	if err != nil {
		t.Fatalf("converse: %v", err)
	}
	if result.ValidationEnabled || !result.Valid || len(result.Results) != 0 {
		t.Errorf("unexpected result with fact checking disabled: %+v", result)
	}
}

func TestSceneFlowsIntoPrompt(t *testing.T) {
	e, _, client := newTestEngine(t)
	addNathan(t, e)
	e.SetScene("The gallery is silent.")

	if _, err := e.Converse(context.Background(), "Nathan Cross", "Investigator", "Hello."); err != nil {
		t.Fatalf("converse: %v", err)
	}
	if len(client.Calls) != 1 {
		t.Fatalf("expected one call, got %d", len(client.Calls))
	}
	if want := "The gallery is silent."; !strings.Contains(client.Calls[0], want) {
		t.Errorf("prompt should include the scene %q", want)
	}
}

func TestResetConversation(t *testing.T) {
	e, _, _ := newTestEngine(t)
	addNathan(t, e)

	if _, err := e.Converse(context.Background(), "Nathan Cross", "Investigator", "Hello."); err != nil {
		t.Fatalf("converse: %v", err)
	}
	if !e.ResetConversation("nathan cross") {
		t.Error("reset should succeed for a known NPC")
	}
	if got := len(e.ConversationHistory("Nathan Cross", 0)); got != 0 {
		t.Errorf("expected empty history after reset, got %d", got)
	}
	if e.ResetConversation("Stranger") {
		t.Error("reset should fail for an unknown NPC")
	}
}

func TestStats(t *testing.T) {
	e, w, client := newTestEngine(t)
	addNathan(t, e)
	w.AddLocation("Library")

	client.Response = "I was in the library."
	if _, err := e.Converse(context.Background(), "Nathan Cross", "Investigator", "Where were you?"); err != nil {
		t.Fatalf("converse: %v", err)
	}

	stats := e.Stats()
	if stats.TotalNPCs != 1 || stats.Provider != llm.ProviderMock {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.FactChecking == nil || stats.FactChecking.TotalValidations == 0 {
		t.Errorf("expected validation summary in stats: %+v", stats.FactChecking)
	}
	if stats.World.Characters[0] != "Nathan Cross" {
		t.Errorf("expected Nathan registered in world summary: %+v", stats.World)
	}
}
