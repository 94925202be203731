package domain

// Event is a recorded occurrence in the world timeline. SequenceOrder breaks
// ties among events sharing a display timestamp. CausedBy references another
// event id; the reference is not checked for existence or acyclicity.
type Event struct {
	ID            string         `json:"id"`
	Description   string         `json:"description"`
	Timestamp     string         `json:"timestamp"`
	Location      string         `json:"location"`
	Participants  []string       `json:"participants,omitempty"`
	Witnesses     []string       `json:"witnesses,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	SequenceOrder int            `json:"sequence_order,omitempty"`
	CausedBy      string         `json:"caused_by,omitempty"`
}

// Involves reports whether the character participated in or witnessed the event.
func (e *Event) Involves(character string) bool {
	for _, p := range e.Participants {
		if p == character {
			return true
		}
	}
	for _, w := range e.Witnesses {
		if w == character {
			return true
		}
	}
	return false
}
