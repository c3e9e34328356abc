package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/peerlink/matchmaker/internal/core/directory"
	"github.com/peerlink/matchmaker/internal/model"
)

// UserID must be letters, digits, underscore or hyphen, 1-64 chars
var userIDRx = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,64}$`)

// UserID validates a user id taken from a request.
func UserID(v string) error {
	if v == "" {
		return fmt.Errorf("userId is required")
	}
	if !userIDRx.MatchString(v) {
		return fmt.Errorf("userId must match %s", userIDRx.String())
	}
	return nil
}

// OptionalInt parses a non-negative integer query parameter; empty yields 0.
func OptionalInt(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", field)
	}
	return n, nil
}

// OptionalBool accepts the forms understood by strconv.ParseBool; empty is false.
func OptionalBool(field, raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", field)
	}
	return b, nil
}

// YearsBucket accepts an empty value or one of the directory buckets.
func YearsBucket(v string) error {
	if v == "" || directory.ValidYearsBucket(v) {
		return nil
	}
	return fmt.Errorf("yearsExperience must be one of %s", strings.Join(directory.YearsBuckets, ", "))
}

// EmailPresence parses the email filter: empty or "any", "required"
// ("true", "yes"), "excluded" ("false", "no").
func EmailPresence(raw string) (model.EmailPresence, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "any":
		return model.EmailAny, nil
	case "required", "true", "yes":
		return model.EmailRequired, nil
	case "excluded", "false", "no":
		return model.EmailExcluded, nil
	}
	return model.EmailAny, fmt.Errorf("email must be one of any, required, excluded")
}
