package api

import (
	"encoding/json"
	"net/http"

	"github.com/peerlink/matchmaker/internal/api/respond"
	"github.com/peerlink/matchmaker/internal/api/validate"
	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/services"
)

type MatchHandler struct {
	svc *services.MatchService
}

func NewMatchHandler(svc *services.MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

type matchResponse struct {
	Matches []model.MatchResult `json:"matches"`
}

// FindMatches handles POST /api/ai-match
func (h *MatchHandler) FindMatches(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.UserID(in.UserID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	matches, err := h.svc.FindMatches(r.Context(), in.UserID)
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	if matches == nil {
		matches = []model.MatchResult{}
	}
	respond.WriteJSON(w, http.StatusOK, matchResponse{Matches: matches})
}
