package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zhephyr/dialogue-engine/internal/engine"
)

// GameHandler covers engine-level state: the scene and aggregate stats.
type GameHandler struct {
	engine *engine.Engine
}

func NewGameHandler(eng *engine.Engine) *GameHandler {
	return &GameHandler{engine: eng}
}

func (h *GameHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Stats())
}

func (h *GameHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"scene": h.engine.Scene()})
}

type setSceneRequest struct {
	Description string `json:"description"`
}

func (h *GameHandler) SetScene(w http.ResponseWriter, r *http.Request) {
	var req setSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	h.engine.SetScene(req.Description)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
