package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/peerlink/matchmaker/internal/api/recovery"
	"github.com/peerlink/matchmaker/internal/services"
)

// Services groups what the router serves. Health may be nil in tests.
type Services struct {
	Match     *services.MatchService
	Profiles  *services.ProfileService
	Directory *services.DirectoryService
	Health    ServiceHealth
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(svc Services, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares; recovery runs innermost so panics are logged with the request id
	router.Use(hlog.NewHandler(log))
	router.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	router.Use(hlog.AccessHandler(accessLog))
	router.Use(recovery.Middleware)

	healthHandler := NewHealthHandler(svc.Health)
	matchHandler := NewMatchHandler(svc.Match)
	mentorHandler := NewMentorHandler(svc.Directory)
	profileHandler := NewProfileHandler(svc.Profiles)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/api/ai-match", matchHandler.FindMatches).Methods("POST")
	router.HandleFunc("/api/mentors", mentorHandler.ListMentors).Methods("GET")

	router.HandleFunc("/api/profiles/{userId}", profileHandler.GetProfile).Methods("GET")
	router.HandleFunc("/api/profiles/{userId}", profileHandler.PutProfile).Methods("PUT")

	return router
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	ev := hlog.FromRequest(r).Info()
	if status >= http.StatusInternalServerError {
		ev = hlog.FromRequest(r).Warn()
	}
	ev.Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}
