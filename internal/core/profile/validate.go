package profile

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/peerlink/matchmaker/internal/model"
)

const (
	maxNameLen  = 100
	maxBioLen   = 2000
	maxFieldLen = 200
	maxListLen  = 50
)

var userIDRx = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,64}$`)

// Validate checks a profile submitted for update. Errors wrap model.ErrValidation.
func Validate(p *model.Profile) error {
	if p == nil {
		return fmt.Errorf("%w: profile is required", model.ErrValidation)
	}
	if !userIDRx.MatchString(p.UserID) {
		return fmt.Errorf("%w: userId must match %s", model.ErrValidation, userIDRx.String())
	}
	for field, v := range map[string]string{"firstName": p.FirstName, "lastName": p.LastName} {
		if err := maxLen(field, v, maxNameLen); err != nil {
			return err
		}
	}
	if err := maxLen("bio", p.Bio, maxBioLen); err != nil {
		return err
	}
	for field, v := range map[string]string{"timeCommitment": p.TimeCommitment, "location": p.Location} {
		if err := maxLen(field, v, maxFieldLen); err != nil {
			return err
		}
	}
	for field, list := range map[string][]string{"skills": p.Skills, "roles": p.Roles, "collaborationStyles": p.CollaborationStyles} {
		if len(list) > maxListLen {
			return fmt.Errorf("%w: %s has more than %d items", model.ErrValidation, field, maxListLen)
		}
		for _, v := range list {
			if err := maxLen(field, v, maxFieldLen); err != nil {
				return err
			}
		}
	}
	if !p.ExperienceLevel.Valid() {
		return fmt.Errorf("%w: unknown experienceLevel %q", model.ErrValidation, p.ExperienceLevel)
	}
	for _, ci := range p.CompetitionInterests {
		if ci.CompetitionID == "" {
			return fmt.Errorf("%w: competition interest without competitionId", model.ErrValidation)
		}
		if !ci.Interest.Valid() {
			return fmt.Errorf("%w: unknown interest %q for competition %s", model.ErrValidation, ci.Interest, ci.CompetitionID)
		}
	}
	return nil
}

func maxLen(field, v string, limit int) error {
	if utf8.RuneCountInString(v) > limit {
		return fmt.Errorf("%w: %s exceeds %d characters", model.ErrValidation, field, limit)
	}
	return nil
}
