package api

import (
	"net/http"
	"strings"

	"github.com/peerlink/matchmaker/internal/api/respond"
	"github.com/peerlink/matchmaker/internal/api/validate"
	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/services"
)

type MentorHandler struct {
	svc *services.DirectoryService
}

func NewMentorHandler(svc *services.DirectoryService) *MentorHandler {
	return &MentorHandler{svc: svc}
}

// ListMentors handles GET /api/mentors
func (h *MentorHandler) ListMentors(w http.ResponseWriter, r *http.Request) {
	q, err := parseMentorQuery(r)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	page, err := h.svc.ListMentors(q)
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, page)
}

func parseMentorQuery(r *http.Request) (services.MentorQuery, error) {
	v := r.URL.Query()
	var q services.MentorQuery
	var err error

	if q.Page, err = validate.OptionalInt("page", v.Get("page")); err != nil {
		return q, err
	}
	if q.Limit, err = validate.OptionalInt("limit", v.Get("limit")); err != nil {
		return q, err
	}
	if q.Reset, err = validate.OptionalBool("reset", v.Get("reset")); err != nil {
		return q, err
	}
	years := strings.TrimSpace(v.Get("yearsExperience"))
	if err = validate.YearsBucket(years); err != nil {
		return q, err
	}
	email, err := validate.EmailPresence(v.Get("email"))
	if err != nil {
		return q, err
	}

	q.SessionID = strings.TrimSpace(v.Get("session"))
	q.Criteria = model.FilterCriteria{
		Search:          v.Get("search"),
		State:           v.Get("state"),
		Company:         v.Get("company"),
		JobTitle:        v.Get("jobTitle"),
		YearsExperience: years,
		Email:           email,
	}
	return q, nil
}
