package model

import "time"

// InterestKind describes why a user follows a competition.
type InterestKind string

const (
	InterestCompeting         InterestKind = "competing"
	InterestLookingForPartner InterestKind = "looking_for_partner"
	InterestLookingForMentor  InterestKind = "looking_for_mentor"
)

// Valid reports whether k is one of the known interest kinds.
func (k InterestKind) Valid() bool {
	switch k {
	case InterestCompeting, InterestLookingForPartner, InterestLookingForMentor:
		return true
	}
	return false
}

// ExperienceLevel is the self-reported experience of a profile owner.
type ExperienceLevel string

const (
	ExperienceUnset        ExperienceLevel = ""
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

// Valid reports whether l is empty or one of the known levels.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceUnset, ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert:
		return true
	}
	return false
}

// CompetitionInterest links a profile to a competition.
type CompetitionInterest struct {
	CompetitionID string       `json:"competitionId"`
	Interest      InterestKind `json:"interest"`
}

// Profile is a user's structured self-description.
type Profile struct {
	UserID               string                `json:"userId"`
	FirstName            string                `json:"firstName"`
	LastName             string                `json:"lastName"`
	Bio                  string                `json:"bio"`
	Skills               []string              `json:"skills"`
	Roles                []string              `json:"roles"`
	ExperienceLevel      ExperienceLevel       `json:"experienceLevel"`
	TimeCommitment       string                `json:"timeCommitment"`
	CollaborationStyles  []string              `json:"collaborationStyles"`
	Location             string                `json:"location"`
	CompetitionInterests []CompetitionInterest `json:"competitionInterests"`
	UpdateTime           time.Time             `json:"updateTime"`
}

// Summary returns the public projection of p.
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		UserID:          p.UserID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Bio:             p.Bio,
		Skills:          nonNil(p.Skills),
		Roles:           nonNil(p.Roles),
		ExperienceLevel: p.ExperienceLevel,
		Location:        p.Location,
	}
}

// ProfileSummary is the part of a profile exposed to other users.
type ProfileSummary struct {
	UserID          string          `json:"userId"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Bio             string          `json:"bio"`
	Skills          []string        `json:"skills"`
	Roles           []string        `json:"roles"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	Location        string          `json:"location"`
}

// MatchResult is a ranked candidate. Similarity lies in [-1, 1].
type MatchResult struct {
	ProfileSummary
	Similarity float64 `json:"similarity"`
}

// StoredEmbedding is the persisted vector of one profile together with the
// model that produced it.
type StoredEmbedding struct {
	ProfileID    string    `json:"profileId"`
	Model        string    `json:"model"`
	Vector       []float32 `json:"vector"`
	CreationTime time.Time `json:"creationTime"`
}

// MentorRecord is a read-only directory entry. Absent values are empty strings.
type MentorRecord struct {
	Name            string `json:"name"`
	LinkedIn        string `json:"linkedin"`
	Company         string `json:"company"`
	JobTitle        string `json:"jobTitle"`
	Email           string `json:"email"`
	YearsExperience string `json:"yearsExperience"`
	State           string `json:"state"`
}

// EmailPresence is the tri-state email filter.
type EmailPresence string

const (
	EmailAny      EmailPresence = ""
	EmailRequired EmailPresence = "required"
	EmailExcluded EmailPresence = "excluded"
)

// FilterCriteria selects mentor records. Unset (empty) fields match everything.
type FilterCriteria struct {
	Search          string
	State           string
	Company         string
	JobTitle        string
	YearsExperience string
	Email           EmailPresence
}

// Pagination describes one page window of a listing.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
