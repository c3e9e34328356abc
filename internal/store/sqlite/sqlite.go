// Package sqlite is the single-node store used by the local build target.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/store"
)

// NewWithDB wraps an open database. Call EnsureSchema first.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Profiles() store.Profiles     { return &profiles{db: s.db} }
func (s *sqliteStore) Embeddings() store.Embeddings { return &embeddings{db: s.db} }

func (s *sqliteStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

type profiles struct{ db *sql.DB }

const profileColumns = `user_id, first_name, last_name, bio, skills, roles, experience_level,
        time_commitment, collaboration_styles, location, competition_interests, update_time`

type rowScanner interface{ Scan(dest ...any) error }

func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		p                                   model.Profile
		level                               string
		skills, roles, styles, interestsRaw string
		updated                             int64
	)
	if err := row.Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Bio, &skills, &roles, &level,
		&p.TimeCommitment, &styles, &p.Location, &interestsRaw, &updated); err != nil {
		return nil, err
	}
	p.ExperienceLevel = model.ExperienceLevel(level)
	p.UpdateTime = fromUnixNano(updated)
	var err error
	if p.Skills, err = store.DecodeList([]byte(skills)); err != nil {
		return nil, err
	}
	if p.Roles, err = store.DecodeList([]byte(roles)); err != nil {
		return nil, err
	}
	if p.CollaborationStyles, err = store.DecodeList([]byte(styles)); err != nil {
		return nil, err
	}
	if p.CompetitionInterests, err = store.DecodeInterests([]byte(interestsRaw)); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profiles) Get(ctx context.Context, userID string) (*model.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id=?`, userID)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", userID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return p, nil
}

func (r *profiles) ListCandidates(ctx context.Context, excludeID string) ([]*model.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id <> ? ORDER BY user_id`, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []*model.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *profiles) Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	skills, err := store.EncodeList(p.Skills)
	if err != nil {
		return nil, err
	}
	roles, err := store.EncodeList(p.Roles)
	if err != nil {
		return nil, err
	}
	styles, err := store.EncodeList(p.CollaborationStyles)
	if err != nil {
		return nil, err
	}
	interests, err := store.EncodeInterests(p.CompetitionInterests)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO profiles (`+profileColumns+`)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT (user_id) DO UPDATE SET
            first_name=excluded.first_name, last_name=excluded.last_name, bio=excluded.bio,
            skills=excluded.skills, roles=excluded.roles, experience_level=excluded.experience_level,
            time_commitment=excluded.time_commitment, collaboration_styles=excluded.collaboration_styles,
            location=excluded.location, competition_interests=excluded.competition_interests,
            update_time=excluded.update_time
    `, p.UserID, p.FirstName, p.LastName, p.Bio, string(skills), string(roles), string(p.ExperienceLevel),
		p.TimeCommitment, string(styles), p.Location, string(interests), now.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("upsert profile %s: %w", p.UserID, err)
	}
	out := *p
	out.UpdateTime = fromUnixNano(now.UnixNano())
	return &out, nil
}

type embeddings struct{ db *sql.DB }

func (r *embeddings) Get(ctx context.Context, profileID string) (*model.StoredEmbedding, error) {
	var (
		out     model.StoredEmbedding
		blob    []byte
		created int64
	)
	row := r.db.QueryRowContext(ctx, `
        SELECT profile_id, model, embedding, creation_time FROM profile_embeddings WHERE profile_id=?
    `, profileID)
	if err := row.Scan(&out.ProfileID, &out.Model, &blob, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("embedding %s: %w", profileID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("get embedding %s: %w", profileID, err)
	}
	vec, err := store.DecodeVector(blob)
	if err != nil {
		return nil, fmt.Errorf("embedding %s: %w", profileID, err)
	}
	out.Vector = vec
	out.CreationTime = fromUnixNano(created)
	return &out, nil
}

func (r *embeddings) Put(ctx context.Context, e *model.StoredEmbedding) error {
	created := e.CreationTime
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO profile_embeddings (profile_id, model, embedding, creation_time)
        VALUES (?,?,?,?)
        ON CONFLICT (profile_id) DO UPDATE SET
            model=excluded.model, embedding=excluded.embedding, creation_time=excluded.creation_time
    `, e.ProfileID, e.Model, store.EncodeVector(e.Vector), created.UnixNano())
	if err != nil {
		return fmt.Errorf("put embedding %s: %w", e.ProfileID, err)
	}
	return nil
}

func (r *embeddings) Delete(ctx context.Context, profileID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profile_embeddings WHERE profile_id=?`, profileID); err != nil {
		return fmt.Errorf("delete embedding %s: %w", profileID, err)
	}
	return nil
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
