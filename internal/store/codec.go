package store

import (
	"encoding/json"
	"fmt"

	"github.com/peerlink/matchmaker/internal/model"
)

// EncodeList serializes a string list column; nil becomes "[]".
func EncodeList(v []string) ([]byte, error) {
	if v == nil {
		v = []string{}
	}
	return json.Marshal(v)
}

// DecodeList parses a string list column; empty input yields nil.
func DecodeList(b []byte) ([]string, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// EncodeInterests serializes competition interests.
func EncodeInterests(v []model.CompetitionInterest) ([]byte, error) {
	if v == nil {
		v = []model.CompetitionInterest{}
	}
	return json.Marshal(v)
}

// DecodeInterests parses competition interests; empty input yields nil.
func DecodeInterests(b []byte) ([]model.CompetitionInterest, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var out []model.CompetitionInterest
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode interests: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
