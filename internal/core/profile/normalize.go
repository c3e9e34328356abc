// Package profile turns a structured profile into the text that is embedded
// for similarity matching.
package profile

import (
	"fmt"
	"strings"

	"github.com/peerlink/matchmaker/internal/model"
)

const (
	partSeparator = " | "
	listSeparator = ", "
)

// Normalize serializes p into a single line in a fixed field order:
// first name, last name, bio, skills, roles, experience level, time
// commitment, collaboration styles, location and competition interests.
// Blank parts are dropped. The result depends only on p's field values.
func Normalize(p *model.Profile) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%w: profile is nil", model.ErrValidation)
	}
	if strings.TrimSpace(p.UserID) == "" {
		return "", fmt.Errorf("%w: profile has no user id", model.ErrValidation)
	}

	parts := []string{
		p.FirstName,
		p.LastName,
		p.Bio,
		joinList(p.Skills),
		joinList(p.Roles),
		string(p.ExperienceLevel),
		p.TimeCommitment,
		joinList(p.CollaborationStyles),
		p.Location,
		joinInterests(p.CompetitionInterests),
	}

	kept := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, partSeparator), nil
}

func joinList(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return strings.Join(out, listSeparator)
}

func joinInterests(interests []model.CompetitionInterest) string {
	out := make([]string, 0, len(interests))
	for _, ci := range interests {
		id := strings.TrimSpace(ci.CompetitionID)
		if id == "" {
			continue
		}
		out = append(out, id+":"+string(ci.Interest))
	}
	return strings.Join(out, listSeparator)
}
