package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zhephyr/dialogue-engine/internal/domain"
	"github.com/zhephyr/dialogue-engine/internal/world"
)

type WorldHandler struct {
	world *world.State
}

func NewWorldHandler(w *world.State) *WorldHandler {
	return &WorldHandler{world: w}
}

type createFactRequest struct {
	Key            string   `json:"key"`
	Value          any      `json:"value"`
	Category       string   `json:"category"`
	Source         string   `json:"source"`
	Timestamp      string   `json:"timestamp"`
	Public         bool     `json:"is_public"`
	Witnesses      []string `json:"witnesses"`
	EventID        string   `json:"event_id"`
	ScheduleDay    int      `json:"schedule_day"`
	SchedulePeriod string   `json:"schedule_period"`
}

func (h *WorldHandler) CreateFact(w http.ResponseWriter, r *http.Request) {
	var req createFactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}
	if req.SchedulePeriod != "" && !domain.ValidPeriod(domain.Period(req.SchedulePeriod)) {
		writeError(w, http.StatusBadRequest, "invalid schedule_period")
		return
	}

	fact := domain.Fact{
		Key:       req.Key,
		Value:     domain.ValueOf(req.Value),
		Category:  req.Category,
		Source:    req.Source,
		Timestamp: req.Timestamp,
		Public:    req.Public,
		Witnesses: req.Witnesses,
		EventID:   req.EventID,
	}
	if req.SchedulePeriod != "" {
		fact.Anchor = &domain.TimeBlock{Day: req.ScheduleDay, Period: domain.Period(req.SchedulePeriod)}
	}

	h.world.AddFact(fact)
	writeJSON(w, http.StatusCreated, h.world.FactDetails(req.Key))
}

// ListFacts supports ?category= and ?public= filters.
func (h *WorldHandler) ListFacts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var public *bool
	if p := r.URL.Query().Get("public"); p != "" {
		v, err := strconv.ParseBool(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid public filter")
			return
		}
		public = &v
	}

	facts := h.world.QueryFacts(category, public)
	writeJSON(w, http.StatusOK, map[string]any{
		"facts": facts,
		"count": len(facts),
	})
}

func (h *WorldHandler) GetFact(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	fact := h.world.FactDetails(key)
	if fact == nil {
		writeError(w, http.StatusNotFound, "fact not found")
		return
	}
	writeJSON(w, http.StatusOK, fact)
}

func (h *WorldHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var e domain.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if e.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	h.world.AddEvent(e)
	writeJSON(w, http.StatusCreated, h.world.Event(e.ID))
}

// ListEvents supports ?location= and ?character= filters.
func (h *WorldHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	var events []domain.Event
	switch {
	case r.URL.Query().Get("location") != "":
		events = h.world.EventsAt(r.URL.Query().Get("location"))
	case r.URL.Query().Get("character") != "":
		events = h.world.EventsWith(r.URL.Query().Get("character"))
	default:
		events = h.world.Events()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}

func (h *WorldHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event := h.world.Event(id)
	if event == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *WorldHandler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	var rel domain.Relationship
	if err := json.NewDecoder(r.Body).Decode(&rel); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if rel.CharacterA == "" || rel.CharacterB == "" {
		writeError(w, http.StatusBadRequest, "both characters are required")
		return
	}

	h.world.AddRelationship(rel)
	writeJSON(w, http.StatusCreated, rel)
}

// ListRelationships supports ?character= and ?with= filters.
func (h *WorldHandler) ListRelationships(w http.ResponseWriter, r *http.Request) {
	character := r.URL.Query().Get("character")
	if character == "" {
		writeError(w, http.StatusBadRequest, "character is required")
		return
	}

	var rels []domain.Relationship
	if other := r.URL.Query().Get("with"); other != "" {
		rels = h.world.RelationshipsBetween(character, other)
	} else {
		rels = h.world.Relationships(character)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"relationships": rels,
		"count":         len(rels),
	})
}

type createNameRequest struct {
	Name string `json:"name"`
}

func (h *WorldHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req createNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	h.world.AddLocation(req.Name)
	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

func (h *WorldHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations := h.world.Locations()
	writeJSON(w, http.StatusOK, map[string]any{
		"locations": locations,
		"count":     len(locations),
	})
}

func (h *WorldHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req createNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	h.world.AddCharacter(req.Name)
	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

func (h *WorldHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	characters := h.world.Characters()
	writeJSON(w, http.StatusOK, map[string]any{
		"characters": characters,
		"count":      len(characters),
	})
}

func (h *WorldHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.world.Summary())
}

// GetKnowledge exports everything one character is entitled to know.
func (h *WorldHandler) GetKnowledge(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.world.HasCharacter(name) {
		writeError(w, http.StatusNotFound, "character not found")
		return
	}
	writeJSON(w, http.StatusOK, h.world.ExportCharacterKnowledge(name))
}
