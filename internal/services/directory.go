package services

import (
	"fmt"

	"github.com/peerlink/matchmaker/internal/core/directory"
	"github.com/peerlink/matchmaker/internal/metrics"
	"github.com/peerlink/matchmaker/internal/model"
)

// MentorQuery is one directory listing request.
type MentorQuery struct {
	SessionID string
	Reset     bool
	Criteria  model.FilterCriteria
	Page      int
	Limit     int
}

// MentorPage is the response to a MentorQuery.
type MentorPage struct {
	Mentors    []model.MentorRecord `json:"mentors"`
	Pagination model.Pagination     `json:"pagination"`
	Session    string               `json:"session"`
}

// DirectoryService serves the mentor directory through browsing sessions.
type DirectoryService struct {
	sessions        *directory.Sessions
	defaultPageSize int
}

func NewDirectoryService(sessions *directory.Sessions, defaultPageSize int) *DirectoryService {
	if defaultPageSize <= 0 {
		defaultPageSize = directory.DefaultPageSize
	}
	return &DirectoryService{sessions: sessions, defaultPageSize: defaultPageSize}
}

// ListMentors filters and pages the session's shuffled snapshot. An unknown
// or empty session id starts a new session; its id is returned.
func (s *DirectoryService) ListMentors(q MentorQuery) (*MentorPage, error) {
	c := q.Criteria
	if c.YearsExperience != "" && !directory.ValidYearsBucket(c.YearsExperience) {
		return nil, fmt.Errorf("%w: yearsExperience must be one of %v", model.ErrValidation, directory.YearsBuckets)
	}
	switch c.Email {
	case model.EmailAny, model.EmailRequired, model.EmailExcluded:
	default:
		return nil, fmt.Errorf("%w: unknown email filter %q", model.ErrValidation, c.Email)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultPageSize
	}

	sess := s.sessions.Acquire(q.SessionID, q.Reset)
	page := sess.Query(c, q.Page, limit)

	metrics.DirectoryQueries.Inc()
	metrics.DirectorySessions.Set(float64(s.sessions.Len()))

	return &MentorPage{Mentors: page.Items, Pagination: page.Pagination, Session: sess.ID}, nil
}

// Total is the number of mentors in the directory.
func (s *DirectoryService) Total() int { return s.sessions.Total() }
