package factory

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/peerlink/matchmaker/internal/config"
	storepkg "github.com/peerlink/matchmaker/internal/store"
	storepg "github.com/peerlink/matchmaker/internal/store/postgres"
	storesqlite "github.com/peerlink/matchmaker/internal/store/sqlite"
)

// NewStore opens the store selected by cfg.DBDriver and applies its schema
// within the bootstrap timeout. The returned closer releases the connection pool.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, io.Closer, error) {
	bootstrapCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.BootstrapTimeoutSeconds)*time.Second)
	defer cancel()

	var (
		db        *sql.DB
		err       error
		bootstrap func(context.Context, *sql.DB) error
		newStore  func(*sql.DB) storepkg.Store
	)
	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, nil, fmt.Errorf("%s_POSTGRES_DSN is required when DB_DRIVER=postgres", config.EnvPrefix)
		}
		db, err = storepg.Open(cfg.PostgresDSN)
		bootstrap, newStore = storepg.Bootstrap, storepg.NewWithDB
	case "sqlite":
		db, err = storesqlite.Open(cfg.SQLitePath)
		bootstrap, newStore = storesqlite.EnsureSchema, storesqlite.NewWithDB
	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := bootstrap(bootstrapCtx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("%s schema bootstrap: %w", cfg.DBDriver, err)
	}
	log.Debug().Str("driver", cfg.DBDriver).Msg("store bootstrap completed")
	return newStore(db), db, nil
}
