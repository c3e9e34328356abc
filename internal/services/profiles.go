package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/peerlink/matchmaker/internal/core/profile"
	"github.com/peerlink/matchmaker/internal/embedstore"
	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/store"
)

// ProfileService reads and replaces profiles. A replaced profile loses its
// stored embedding so the next match recomputes it.
type ProfileService struct {
	store   store.Store
	gateway *embedstore.Gateway
	log     zerolog.Logger
}

// NewProfileService builds a ProfileService over s that invalidates vectors through g.
func NewProfileService(s store.Store, g *embedstore.Gateway, log zerolog.Logger) *ProfileService {
	return &ProfileService{store: s, gateway: g, log: log}
}

// Get returns the profile of userID. Errors wrap model.ErrValidation,
// model.ErrNotFound or model.ErrUpstream.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	p, err := s.store.Profiles().Get(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, upstream("load profile", err)
	}
	return p, err
}

// Update validates and stores p, then invalidates its embedding. Errors wrap
// model.ErrValidation or model.ErrUpstream.
func (s *ProfileService) Update(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	if err := profile.Validate(p); err != nil {
		return nil, err
	}
	saved, err := s.store.Profiles().Upsert(ctx, p)
	if err != nil {
		return nil, upstream("save profile", err)
	}
	if err := s.gateway.Invalidate(ctx, p.UserID); err != nil {
		s.log.Error().Err(err).Str("user_id", p.UserID).Msg("stale embedding left after profile update")
		return nil, upstream("invalidate embedding", err)
	}
	return saved, nil
}
