package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zhephyr/dialogue-engine/internal/factcheck"
)

type ValidationHandler struct {
	checker *factcheck.Checker
}

func NewValidationHandler(checker *factcheck.Checker) *ValidationHandler {
	return &ValidationHandler{checker: checker}
}

type validateStatementRequest struct {
	Speaker   string   `json:"speaker"`
	Statement string   `json:"statement"`
	Lies      []string `json:"intended_lies"`
	Omissions []string `json:"intended_omissions"`
}

// ValidateStatement runs an arbitrary statement through the claim pipeline
// without involving an NPC turn. Useful for testing authored dialogue.
func (h *ValidationHandler) ValidateStatement(w http.ResponseWriter, r *http.Request) {
	if h.checker == nil {
		writeError(w, http.StatusServiceUnavailable, "fact checking is disabled")
		return
	}

	var req validateStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Statement == "" {
		writeError(w, http.StatusBadRequest, "statement is required")
		return
	}

	valid, results := h.checker.ValidateStatement(req.Statement, req.Speaker, req.Lies, req.Omissions)
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":   valid,
		"results": results,
		"count":   len(results),
	})
}

func (h *ValidationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if h.checker == nil {
		writeError(w, http.StatusServiceUnavailable, "fact checking is disabled")
		return
	}
	writeJSON(w, http.StatusOK, h.checker.Summary())
}

func (h *ValidationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.checker == nil {
		writeError(w, http.StatusServiceUnavailable, "fact checking is disabled")
		return
	}
	history := h.checker.History()
	writeJSON(w, http.StatusOK, map[string]any{
		"results": history,
		"count":   len(history),
	})
}
