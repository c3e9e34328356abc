package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/peerlink/matchmaker/internal/api/respond"
	"github.com/peerlink/matchmaker/internal/api/validate"
	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/services"
)

type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	p, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

// PutProfile replaces the profile at the path id. A body userId, if present,
// must agree with the path.
func (h *ProfileHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	var in model.Profile
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.UserID != "" && in.UserID != userID {
		respond.WriteBadRequest(w, "userId in body does not match path")
		return
	}
	in.UserID = userID

	out, err := h.svc.Update(r.Context(), &in)
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
