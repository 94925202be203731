package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zhephyr/dialogue-engine/internal/engine"
	"github.com/zhephyr/dialogue-engine/internal/npc"
)

type NPCHandler struct {
	engine *engine.Engine
}

func NewNPCHandler(eng *engine.Engine) *NPCHandler {
	return &NPCHandler{engine: eng}
}

func (h *NPCHandler) Create(w http.ResponseWriter, r *http.Request) {
	var profile npc.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if profile.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	agent := npc.NewAgent(profile)
	if err := h.engine.AddNPC(agent); err != nil {
		if errors.Is(err, engine.ErrNPCConflict) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add npc")
		return
	}

	writeJSON(w, http.StatusCreated, agent.Status())
}

func (h *NPCHandler) List(w http.ResponseWriter, r *http.Request) {
	names := h.engine.NPCNames()
	writeJSON(w, http.StatusOK, map[string]any{
		"npcs":  names,
		"count": len(names),
	})
}

func (h *NPCHandler) Get(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.engine.NPC(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "npc not found")
		return
	}
	writeJSON(w, http.StatusOK, agent.Status())
}

type converseRequest struct {
	Message string `json:"message"`
	Speaker string `json:"speaker"`
}

func (h *NPCHandler) Converse(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req converseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Speaker == "" {
		req.Speaker = "Player"
	}

	result, err := h.engine.Converse(r.Context(), name, req.Speaker, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNPCNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, engine.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadGateway, "dialogue generation failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetConversation returns the last ?limit= turns (all when unset).
func (h *NPCHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := h.engine.NPC(name); !ok {
		writeError(w, http.StatusNotFound, "npc not found")
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	turns := h.engine.ConversationHistory(name, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"npc":   name,
		"turns": turns,
		"count": len(turns),
	})
}

func (h *NPCHandler) GetLies(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.engine.NPC(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "npc not found")
		return
	}
	lies := agent.Lies()
	writeJSON(w, http.StatusOK, map[string]any{
		"npc":   agent.Name(),
		"lies":  lies,
		"count": len(lies),
	})
}

func (h *NPCHandler) GetOmissions(w http.ResponseWriter, r *http.Request) {
	agent, ok := h.engine.NPC(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "npc not found")
		return
	}
	omissions := agent.Omissions()
	writeJSON(w, http.StatusOK, map[string]any{
		"npc":       agent.Name(),
		"omissions": omissions,
		"count":     len(omissions),
	})
}

func (h *NPCHandler) ResetConversation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.engine.ResetConversation(name) {
		writeError(w, http.StatusNotFound, "npc not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
