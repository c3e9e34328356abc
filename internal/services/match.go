package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/peerlink/matchmaker/internal/core/profile"
	"github.com/peerlink/matchmaker/internal/core/ranking"
	"github.com/peerlink/matchmaker/internal/embeddings"
	"github.com/peerlink/matchmaker/internal/embedstore"
	"github.com/peerlink/matchmaker/internal/metrics"
	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/store"
)

// MatchService ranks other profiles by similarity to a user's profile.
type MatchService struct {
	store   store.Store
	gateway *embedstore.Gateway
	topK    int
	log     zerolog.Logger
}

// NewMatchService builds a MatchService returning at most topK matches;
// topK <= 0 selects ranking.DefaultTopK.
func NewMatchService(s store.Store, g *embedstore.Gateway, topK int, log zerolog.Logger) *MatchService {
	if topK <= 0 {
		topK = ranking.DefaultTopK
	}
	return &MatchService{store: s, gateway: g, topK: topK, log: log}
}

// FindMatches returns the top matches for userID, best first. Missing
// vectors are computed and stored on the way. Errors wrap model.ErrValidation,
// model.ErrNotFound or model.ErrUpstream.
func (s *MatchService) FindMatches(ctx context.Context, userID string) (matches []model.MatchResult, err error) {
	start := time.Now()
	defer func() {
		metrics.MatchRequests.WithLabelValues(matchOutcome(err)).Inc()
		if err == nil {
			metrics.MatchLatency.Observe(time.Since(start).Seconds())
		}
	}()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}

	target, err := s.store.Profiles().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, upstream("load profile", err)
	}

	query, err := s.gateway.Resolve(ctx, userID, textOf(target))
	if err != nil {
		if errors.Is(err, embeddings.ErrEmptyInput) {
			return nil, fmt.Errorf("%w: profile %s has no content to match on", model.ErrValidation, userID)
		}
		return nil, upstream("embed profile "+userID, err)
	}

	profiles, err := s.store.Profiles().ListCandidates(ctx, userID)
	if err != nil {
		return nil, upstream("list candidates", err)
	}

	candidates := make([]ranking.Candidate, 0, len(profiles))
	for _, p := range profiles {
		vec, err := s.gateway.Resolve(ctx, p.UserID, textOf(p))
		if errors.Is(err, embeddings.ErrEmptyInput) {
			metrics.CandidatesSkipped.WithLabelValues("empty_profile").Inc()
			s.log.Debug().Str("profile_id", p.UserID).Msg("candidate has no text to embed, skipped")
			continue
		}
		if err != nil {
			return nil, upstream("embed candidate "+p.UserID, err)
		}
		candidates = append(candidates, ranking.Candidate{Profile: p.Summary(), Vector: vec})
	}

	matches, excluded := ranking.RankWithExclusions(query, candidates, s.topK)
	if excluded > 0 {
		metrics.CandidatesSkipped.WithLabelValues("incomparable").Add(float64(excluded))
		s.log.Debug().Int("excluded", excluded).Str("user_id", userID).Msg("incomparable candidates excluded")
	}
	s.log.Debug().Str("user_id", userID).Int("candidates", len(candidates)).Int("matches", len(matches)).Msg("match computed")
	return matches, nil
}

func textOf(p *model.Profile) embedstore.TextFunc {
	return func(context.Context) (string, error) { return profile.Normalize(p) }
}

// upstream tags err with ErrUpstream while keeping it inspectable.
func upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", model.ErrUpstream, op, err)
}

func matchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrNotFound):
		return "not_found"
	case errors.Is(err, model.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
