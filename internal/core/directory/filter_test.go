package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerlink/matchmaker/internal/model"
)

func sampleMentors() []model.MentorRecord {
	return []model.MentorRecord{
		{Name: "Ada Park", Company: "Stripe", JobTitle: "Staff Engineer", Email: "ada@example.com", YearsExperience: "10+", State: "CA"},
		{Name: "Ben Ortiz", Company: "Acme Robotics", JobTitle: "Product Manager", YearsExperience: "3-5", State: "NY"},
		{Name: "Cleo Hart", Company: "Stripe", JobTitle: "Designer", Email: "  ", YearsExperience: "6-10", State: "ca"},
		{Name: "Dev Rao", Company: "Northwind", JobTitle: "Software Engineer", Email: "dev@example.com", YearsExperience: "0-2", State: "TX"},
		{Name: "Eli Stone", Company: "Globex", JobTitle: "Engineering Manager", Email: "eli@example.com", YearsExperience: "10+", State: "CA"},
	}
}

func names(recs []model.MentorRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

func TestFilter_EmptyCriteriaKeepsEverything(t *testing.T) {
	in := sampleMentors()
	got := Filter(in, model.FilterCriteria{})
	assert.Equal(t, in, got)
}

func TestFilter_StatePreservesOrder(t *testing.T) {
	got := Filter(sampleMentors(), model.FilterCriteria{State: "CA"})
	assert.Equal(t, []string{"Ada Park", "Cleo Hart", "Eli Stone"}, names(got))
}

func TestFilter_SearchAcrossNameCompanyTitle(t *testing.T) {
	recs := sampleMentors()

	assert.Equal(t, []string{"Ada Park", "Dev Rao", "Eli Stone"}, names(Filter(recs, model.FilterCriteria{Search: "ENGINEER"})))
	assert.Equal(t, []string{"Ada Park", "Cleo Hart"}, names(Filter(recs, model.FilterCriteria{Search: "stripe"})))
	assert.Equal(t, []string{"Ben Ortiz"}, names(Filter(recs, model.FilterCriteria{Search: "ortiz"})))
	assert.Empty(t, Filter(recs, model.FilterCriteria{Search: "nobody"}))
}

func TestFilter_CompanyAndTitleSubstrings(t *testing.T) {
	recs := sampleMentors()
	got := Filter(recs, model.FilterCriteria{Company: "stri", JobTitle: "design"})
	assert.Equal(t, []string{"Cleo Hart"}, names(got))
}

func TestFilter_YearsBucket(t *testing.T) {
	got := Filter(sampleMentors(), model.FilterCriteria{YearsExperience: "10+"})
	assert.Equal(t, []string{"Ada Park", "Eli Stone"}, names(got))
}

func TestFilter_EmailPresence(t *testing.T) {
	recs := sampleMentors()

	assert.Equal(t, []string{"Ada Park", "Dev Rao", "Eli Stone"},
		names(Filter(recs, model.FilterCriteria{Email: model.EmailRequired})))
	assert.Equal(t, []string{"Ben Ortiz", "Cleo Hart"},
		names(Filter(recs, model.FilterCriteria{Email: model.EmailExcluded})))
}

func TestFilter_CombinedCriteriaAreConjunctive(t *testing.T) {
	got := Filter(sampleMentors(), model.FilterCriteria{State: "ca", Search: "engineer", Email: model.EmailRequired})
	assert.Equal(t, []string{"Ada Park", "Eli Stone"}, names(got))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := sampleMentors()
	before := append([]model.MentorRecord(nil), in...)
	_ = Filter(in, model.FilterCriteria{State: "NY"})
	assert.Equal(t, before, in)
}

func TestValidYearsBucket(t *testing.T) {
	for _, b := range YearsBuckets {
		assert.True(t, ValidYearsBucket(b), b)
	}
	assert.False(t, ValidYearsBucket("11-20"))
	assert.False(t, ValidYearsBucket(""))
}
