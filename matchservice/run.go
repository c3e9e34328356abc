package matchservice

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/peerlink/matchmaker/internal/api"
	"github.com/peerlink/matchmaker/internal/config"
	"github.com/peerlink/matchmaker/internal/core/directory"
	emb "github.com/peerlink/matchmaker/internal/embeddings"
	"github.com/peerlink/matchmaker/internal/embedstore"
	"github.com/peerlink/matchmaker/internal/factory"
	"github.com/peerlink/matchmaker/internal/health"
	"github.com/peerlink/matchmaker/internal/logger"
	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/services"
	"github.com/peerlink/matchmaker/internal/store"
)

// dependencies are the long-lived components shared by all requests.
type dependencies struct {
	store    store.Store
	embedder *factory.Embedder
	cache    embedstore.Cache
	mentors  []model.MentorRecord
	closers  []func() error
}

func (d *dependencies) close(log zerolog.Logger) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			log.Warn().Err(err).Msg("closing dependency")
		}
	}
}

// Run starts the match service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("match-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	return RunWithConfig(cfg, log)
}

// RunWithConfig is Run with an already resolved configuration.
func RunWithConfig(cfg *config.Config, log zerolog.Logger) error {
	logger.SetLevel(cfg.LogLevel)

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("embed_provider", cfg.EmbedProvider).
		Str("embed_model", cfg.EmbedModel).
		Str("cache_driver", cfg.CacheDriver).
		Msg("Match service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	// Initialize dependencies (store, embedder, cache, mentor directory)
	deps, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close(log)

	// Start health checkers
	svcHealth := startHealthCheckers(ctx, cfg, log, deps)

	router := api.NewRouter(buildServices(cfg, log, deps, svcHealth), log)

	// Block startup until dependencies report healthy; fail fast otherwise
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	// HTTP server and serve
	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies constructs required components and enforces fail-fast on missing deps.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	st, dbCloser, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return nil, err
	}
	deps.store = st
	deps.closers = append(deps.closers, dbCloser.Close)

	deps.embedder, err = factory.NewEmbeddingProvider(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Embedding provider unavailable")
		deps.close(log)
		return nil, err
	}

	cache, cacheClose, err := factory.NewEmbeddingCache(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Embedding cache unavailable")
		deps.close(log)
		return nil, err
	}
	deps.cache = cache
	deps.closers = append(deps.closers, cacheClose)

	deps.mentors, err = loadMentors(cfg.MentorsCSVPath, log)
	if err != nil {
		deps.close(log)
		return nil, err
	}
	return deps, nil
}

// loadMentors reads the directory CSV. A missing file yields an empty
// directory; a malformed one is fatal.
func loadMentors(path string, log zerolog.Logger) ([]model.MentorRecord, error) {
	if path == "" {
		log.Warn().Msg("no mentors CSV configured; directory is empty")
		return []model.MentorRecord{}, nil
	}
	records, err := directory.LoadCSVFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("mentors CSV not found; directory is empty")
		return []model.MentorRecord{}, nil
	}
	if err != nil {
		log.Error().Stack().Err(err).Str("path", path).Msg("Failed to load mentors CSV")
		return nil, fmt.Errorf("load mentors from %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("mentors", len(records)).Msg("mentor directory loaded")
	return records, nil
}

func buildServices(cfg *config.Config, log zerolog.Logger, deps *dependencies, svcHealth *health.ServiceHealthChecker) api.Services {
	gw := embedstore.NewGateway(deps.store.Embeddings(), deps.embedder.Provider, cfg.EmbedModel, deps.cache, log)
	sessions := directory.NewSessions(deps.mentors, cfg.DirectoryMaxSessions,
		time.Duration(cfg.DirectorySessionTTLMinutes)*time.Minute)

	return api.Services{
		Match:     services.NewMatchService(deps.store, gw, cfg.MatchTopK, log),
		Profiles:  services.NewProfileService(deps.store, gw, log),
		Directory: services.NewDirectoryService(sessions, cfg.DirectoryPageSize),
		Health:    svcHealth,
	}
}

// startHealthCheckers starts component checkers and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, deps *dependencies) *health.ServiceHealthChecker {
	var checkers []health.HealthChecker
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewHealthChecker(deps.store, log, probeTimeout)
	go storeChecker.Start(ctx, interval)
	checkers = append(checkers, storeChecker)

	embChecker := emb.NewHealthChecker(deps.embedder.Base, log, probeTimeout)
	go embChecker.Start(ctx, interval)
	checkers = append(checkers, embChecker)

	if p, ok := deps.cache.(health.HealthPinger); ok {
		cacheChecker := health.NewComponentChecker("cache", p, log, probeTimeout)
		go cacheChecker.Start(ctx, interval)
		checkers = append(checkers, cacheChecker)
	}

	svcHealth := health.NewServiceHealthChecker(log, checkers...)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth interface{ IsHealthy() bool }) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
