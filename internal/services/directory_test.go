package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlink/matchmaker/internal/core/directory"
	"github.com/peerlink/matchmaker/internal/model"
)

func mentors(n int) []model.MentorRecord {
	out := make([]model.MentorRecord, n)
	for i := range out {
		state := "NY"
		if i%2 == 0 {
			state = "CA"
		}
		out[i] = model.MentorRecord{Name: fmt.Sprintf("mentor-%02d", i), State: state, YearsExperience: "3-5"}
	}
	return out
}

func TestDirectoryService_ListMentors(t *testing.T) {
	svc := NewDirectoryService(directory.NewSessions(mentors(30), 10, time.Hour), 12)
	assert.Equal(t, 30, svc.Total())

	first, err := svc.ListMentors(MentorQuery{Page: 1})
	require.NoError(t, err)
	require.NotEmpty(t, first.Session)
	assert.Len(t, first.Mentors, 12)
	assert.Equal(t, model.Pagination{Page: 1, Limit: 12, Total: 30, TotalPages: 3, HasNext: true}, first.Pagination)

	// same session, next page continues the same order
	second, err := svc.ListMentors(MentorQuery{SessionID: first.Session, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, first.Session, second.Session)
	seen := map[string]bool{}
	for _, m := range append(first.Mentors, second.Mentors...) {
		assert.False(t, seen[m.Name], "duplicate %s across pages", m.Name)
		seen[m.Name] = true
	}

	filtered, err := svc.ListMentors(MentorQuery{SessionID: first.Session, Criteria: model.FilterCriteria{State: "ca"}, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 15, filtered.Pagination.Total)
	assert.Equal(t, 50, filtered.Pagination.Limit)
}

func TestDirectoryService_Reset(t *testing.T) {
	svc := NewDirectoryService(directory.NewSessions(mentors(40), 10, time.Hour), 40)
	first, err := svc.ListMentors(MentorQuery{})
	require.NoError(t, err)

	again, err := svc.ListMentors(MentorQuery{SessionID: first.Session})
	require.NoError(t, err)
	assert.Equal(t, first.Mentors, again.Mentors)

	reset, err := svc.ListMentors(MentorQuery{SessionID: first.Session, Reset: true})
	require.NoError(t, err)
	assert.Equal(t, first.Session, reset.Session)
	assert.NotEqual(t, first.Mentors, reset.Mentors)
}

func TestDirectoryService_Validation(t *testing.T) {
	svc := NewDirectoryService(directory.NewSessions(mentors(3), 10, time.Hour), 0)

	_, err := svc.ListMentors(MentorQuery{Criteria: model.FilterCriteria{YearsExperience: "7"}})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.ListMentors(MentorQuery{Criteria: model.FilterCriteria{Email: "maybe"}})
	assert.ErrorIs(t, err, model.ErrValidation)

	page, err := svc.ListMentors(MentorQuery{Criteria: model.FilterCriteria{YearsExperience: "3-5", Email: model.EmailExcluded}})
	require.NoError(t, err)
	assert.Len(t, page.Mentors, 3)
	assert.Equal(t, directory.DefaultPageSize, page.Pagination.Limit)
}
