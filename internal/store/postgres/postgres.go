package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pgvector/pgvector-go"

	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Bootstrap applies the schema. Every statement is idempotent.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Profiles() store.Profiles     { return &profiles{db: s.db} }
func (s *pgStore) Embeddings() store.Embeddings { return &embeddings{db: s.db} }

// HealthPing implements health.HealthPinger for Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Profiles ---
type profiles struct{ db *sql.DB }

const profileColumns = `user_id, first_name, last_name, bio, skills, roles, experience_level,
        time_commitment, collaboration_styles, location, competition_interests, update_time`

type rowScanner interface{ Scan(dest ...any) error }

func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		p                                   model.Profile
		level                               string
		skills, roles, styles, interestsRaw []byte
	)
	if err := row.Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Bio, &skills, &roles, &level,
		&p.TimeCommitment, &styles, &p.Location, &interestsRaw, &p.UpdateTime); err != nil {
		return nil, err
	}
	p.ExperienceLevel = model.ExperienceLevel(level)
	var err error
	if p.Skills, err = store.DecodeList(skills); err != nil {
		return nil, err
	}
	if p.Roles, err = store.DecodeList(roles); err != nil {
		return nil, err
	}
	if p.CollaborationStyles, err = store.DecodeList(styles); err != nil {
		return nil, err
	}
	if p.CompetitionInterests, err = store.DecodeInterests(interestsRaw); err != nil {
		return nil, err
	}
	p.UpdateTime = p.UpdateTime.UTC()
	return &p, nil
}

func (r *profiles) Get(ctx context.Context, userID string) (*model.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id=$1`, userID)
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
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id <> $1 ORDER BY user_id`, excludeID)
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
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        ON CONFLICT (user_id) DO UPDATE SET
            first_name=EXCLUDED.first_name, last_name=EXCLUDED.last_name, bio=EXCLUDED.bio,
            skills=EXCLUDED.skills, roles=EXCLUDED.roles, experience_level=EXCLUDED.experience_level,
            time_commitment=EXCLUDED.time_commitment, collaboration_styles=EXCLUDED.collaboration_styles,
            location=EXCLUDED.location, competition_interests=EXCLUDED.competition_interests,
            update_time=EXCLUDED.update_time
    `, p.UserID, p.FirstName, p.LastName, p.Bio, string(skills), string(roles), string(p.ExperienceLevel),
		p.TimeCommitment, string(styles), p.Location, string(interests), now)
	if err != nil {
		return nil, fmt.Errorf("upsert profile %s: %w", p.UserID, err)
	}
	out := *p
	out.UpdateTime = now
	return &out, nil
}

// --- Embeddings ---
type embeddings struct{ db *sql.DB }

func (r *embeddings) Get(ctx context.Context, profileID string) (*model.StoredEmbedding, error) {
	var (
		out model.StoredEmbedding
		vec pgvector.Vector
	)
	row := r.db.QueryRowContext(ctx, `
        SELECT profile_id, model, embedding, creation_time FROM profile_embeddings WHERE profile_id=$1
    `, profileID)
	if err := row.Scan(&out.ProfileID, &out.Model, &vec, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("embedding %s: %w", profileID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("get embedding %s: %w", profileID, err)
	}
	out.Vector = vec.Slice()
	out.CreationTime = out.CreationTime.UTC()
	return &out, nil
}

func (r *embeddings) Put(ctx context.Context, e *model.StoredEmbedding) error {
	created := e.CreationTime
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO profile_embeddings (profile_id, model, embedding, creation_time)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (profile_id) DO UPDATE SET
            model=EXCLUDED.model, embedding=EXCLUDED.embedding, creation_time=EXCLUDED.creation_time
    `, e.ProfileID, e.Model, pgvector.NewVector(e.Vector), created)
	if err != nil {
		return fmt.Errorf("put embedding %s: %w", e.ProfileID, err)
	}
	return nil
}

func (r *embeddings) Delete(ctx context.Context, profileID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profile_embeddings WHERE profile_id=$1`, profileID); err != nil {
		return fmt.Errorf("delete embedding %s: %w", profileID, err)
	}
	return nil
}
