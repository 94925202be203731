package npc

import (
	"fmt"
	"strings"

	"github.com/zhephyr/dialogue-engine/internal/domain"
)

const (
	recentLieWindow  = 5
	recentTurnWindow = 5
)

// DialoguePrompt assembles the full generation prompt for one conversation
// turn: character sheet, current knowledge, recent deceptions, conversation
// window, scene, and the player's message. The external text-generation
// client consumes this as-is.
func (a *Agent) DialoguePrompt(playerMessage, scene string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, an NPC in a murder mystery game.\n\n", a.profile.Name)

	b.WriteString("CHARACTER PROFILE:\n")
	fmt.Fprintf(&b, "- Personality: %s\n", a.profile.Personality)
	fmt.Fprintf(&b, "- Background: %s\n", a.profile.Background)
	fmt.Fprintf(&b, "- Current Location: %s\n", a.location)
	fmt.Fprintf(&b, "- Emotional State: %s\n", a.emotionalState)

	writeList(&b, "GOALS", a.profile.Goals)
	writeList(&b, "FEARS", a.profile.Fears)
	writeList(&b, "SECRETS (things you want to hide)", a.profile.Secrets)

	b.WriteString("\nRELATIONSHIPS:\n")
	for name, desc := range a.profile.Relationships {
		fmt.Fprintf(&b, "- %s: %s\n", name, desc)
	}

	b.WriteString("\nWHAT YOU KNOW (facts you're aware of):\n")
	for _, key := range a.knownFactOrder {
		fmt.Fprintf(&b, "- %s: %s\n", key, a.knownFacts[key].String())
	}

	b.WriteString("\nLIES YOU'VE TOLD RECENTLY:\n")
	for _, lie := range tail(a.lies, recentLieWindow) {
		fmt.Fprintf(&b, "- %s\n", lie.Content)
	}

	b.WriteString("\nTHINGS YOU'VE DELIBERATELY OMITTED:\n")
	for _, omit := range tail(a.omissions, recentLieWindow) {
		fmt.Fprintf(&b, "- %s\n", omit.Content)
	}

	b.WriteString("\nRECENT CONVERSATION:\n")
	for _, turn := range tailTurns(a.conversation, recentTurnWindow) {
		fmt.Fprintf(&b, "%s: %s\n", turn.Speaker, turn.Message)
	}

	b.WriteString("\nCURRENT SCENE:\n")
	if scene != "" {
		b.WriteString(scene + "\n")
	} else {
		b.WriteString("No specific scene details.\n")
	}

	b.WriteString("\nPLAYER'S QUESTION/STATEMENT:\n")
	b.WriteString(playerMessage + "\n")

	b.WriteString("\nINSTRUCTIONS:\n")
	fmt.Fprintf(&b, "1. Respond in character as %s\n", a.profile.Name)
	b.WriteString("2. Stay true to your personality, goals, and fears\n")
	b.WriteString("3. You may choose to lie or omit information to protect your secrets or achieve your goals\n")
	b.WriteString("4. If you make a claim about facts, it should align with what you know OR be a deliberate deception\n")
	b.WriteString("5. Be natural and conversational\n")
	b.WriteString("6. Keep responses relatively brief (1-3 sentences typically)\n")

	fmt.Fprintf(&b, "\nYOUR RESPONSE (as %s):", a.profile.Name)

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	b.WriteString("\n" + heading + ":\n")
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func tail(entries []domain.MemoryEntry, n int) []domain.MemoryEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

func tailTurns(turns []domain.ConversationTurn, n int) []domain.ConversationTurn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
