// Package directory filters, shuffles and pages the read-only mentor directory.
package directory

import (
	"strings"

	"github.com/peerlink/matchmaker/internal/model"
)

// Years-of-experience buckets accepted by the yearsExperience filter.
const (
	Years0to2   = "0-2"
	Years3to5   = "3-5"
	Years6to10  = "6-10"
	YearsOver10 = "10+"
)

// YearsBuckets lists the valid bucket tokens in ascending order.
var YearsBuckets = []string{Years0to2, Years3to5, Years6to10, YearsOver10}

// ValidYearsBucket reports whether token is a known bucket.
func ValidYearsBucket(token string) bool {
	for _, b := range YearsBuckets {
		if b == token {
			return true
		}
	}
	return false
}

// Filter returns the records matching every set field of c, in input order.
// Records are copied by value; the input slice is not modified.
func Filter(records []model.MentorRecord, c model.FilterCriteria) []model.MentorRecord {
	m := newMatcher(c)
	out := make([]model.MentorRecord, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// matcher holds the lower-cased criteria so each record is folded once.
type matcher struct {
	search, state, company, jobTitle string
	years                            string
	email                            model.EmailPresence
}

func newMatcher(c model.FilterCriteria) matcher {
	return matcher{
		search:   fold(c.Search),
		state:    fold(c.State),
		company:  fold(c.Company),
		jobTitle: fold(c.JobTitle),
		years:    strings.TrimSpace(c.YearsExperience),
		email:    c.Email,
	}
}

func (m matcher) match(r model.MentorRecord) bool {
	if m.search != "" &&
		!strings.Contains(fold(r.Name), m.search) &&
		!strings.Contains(fold(r.Company), m.search) &&
		!strings.Contains(fold(r.JobTitle), m.search) {
		return false
	}
	if m.state != "" && fold(r.State) != m.state {
		return false
	}
	if m.company != "" && !strings.Contains(fold(r.Company), m.company) {
		return false
	}
	if m.jobTitle != "" && !strings.Contains(fold(r.JobTitle), m.jobTitle) {
		return false
	}
	if m.years != "" && r.YearsExperience != m.years {
		return false
	}
	hasEmail := strings.TrimSpace(r.Email) != ""
	switch m.email {
	case model.EmailRequired:
		return hasEmail
	case model.EmailExcluded:
		return !hasEmail
	}
	return true
}

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
