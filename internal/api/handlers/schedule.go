package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zhephyr/dialogue-engine/internal/domain"
	"github.com/zhephyr/dialogue-engine/internal/world"
)

type ScheduleHandler struct {
	world *world.State
}

func NewScheduleHandler(w *world.State) *ScheduleHandler {
	return &ScheduleHandler{world: w}
}

type createScheduleRequest struct {
	Character  string   `json:"character"`
	Day        int      `json:"day"`
	Period     string   `json:"period"`
	Location   string   `json:"location"`
	Activity   string   `json:"activity"`
	Companions []string `json:"companions"`
	Public     bool     `json:"is_public"`
	Witnesses  []string `json:"witnesses"`
	Notes      string   `json:"notes"`
}

func (h *ScheduleHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Character == "" {
		writeError(w, http.StatusBadRequest, "character is required")
		return
	}

	entry := domain.ScheduleEntry{
		Character:  req.Character,
		Day:        req.Day,
		Period:     domain.Period(req.Period),
		Location:   req.Location,
		Activity:   req.Activity,
		Companions: req.Companions,
		Public:     req.Public,
		Witnesses:  req.Witnesses,
		Notes:      req.Notes,
	}

	if err := h.world.AddScheduleEntry(entry); err != nil {
		if errors.Is(err, world.ErrInvalidPeriod) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add schedule entry")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// GetSchedule returns a character's timeline, optionally filtered by ?day=.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	character := chi.URLParam(r, "name")

	day := 0
	if d := r.URL.Query().Get("day"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid day")
			return
		}
		day = parsed
	}

	entries := h.world.Schedule(character, day)
	writeJSON(w, http.StatusOK, map[string]any{
		"character": character,
		"entries":   entries,
		"count":     len(entries),
	})
}

// GetWhereabouts answers either "where was X" (?character=) or
// "who was at X" (?location=) for one time block.
func (h *ScheduleHandler) GetWhereabouts(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(r.URL.Query().Get("day"))
	if err != nil || day <= 0 {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}
	period := domain.Period(r.URL.Query().Get("period"))
	if !domain.ValidPeriod(period) {
		writeError(w, http.StatusBadRequest, "invalid period")
		return
	}

	if character := r.URL.Query().Get("character"); character != "" {
		location, found := h.world.LocationAt(character, day, period)
		writeJSON(w, http.StatusOK, map[string]any{
			"character": character,
			"day":       day,
			"period":    period,
			"location":  location,
			"known":     found,
		})
		return
	}

	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "character or location is required")
		return
	}
	present := h.world.CharactersAt(location, day, period)
	writeJSON(w, http.StatusOK, map[string]any{
		"location":   location,
		"day":        day,
		"period":     period,
		"characters": present,
		"count":      len(present),
	})
}

type verifyClaimRequest struct {
	Character string `json:"character"`
	Location  string `json:"claimed_location"`
	Day       int    `json:"day"`
	Period    string `json:"period"`
}

// VerifyClaim checks an alibi claim against the schedule index.
func (h *ScheduleHandler) VerifyClaim(w http.ResponseWriter, r *http.Request) {
	var req verifyClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Character == "" || req.Location == "" {
		writeError(w, http.StatusBadRequest, "character and claimed_location are required")
		return
	}
	period := domain.Period(req.Period)
	if !domain.ValidPeriod(period) {
		writeError(w, http.StatusBadRequest, "invalid period")
		return
	}

	matches, actual := h.world.VerifyClaim(req.Character, req.Location, req.Day, period)
	writeJSON(w, http.StatusOK, map[string]any{
		"character":        req.Character,
		"claimed_location": req.Location,
		"matches":          matches,
		"actual_location":  actual,
	})
}
