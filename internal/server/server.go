// Package server exposes the practice engine over a local JSON API for
// presentation layers. The engine itself has no network semantics; this is
// strictly an adapter over its in-process entry points.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quietroom/rehearse/internal/engine"
	"github.com/quietroom/rehearse/internal/store"
)

// Server is the rehearse HTTP API server.
type Server struct {
	db      *store.DB
	eng     *engine.Engine
	ledger  *engine.EmotionLedger
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server over the given engine and database.
func New(db *store.DB, eng *engine.Engine, ledger *engine.EmotionLedger, version string) *Server {
	s := &Server{
		db:      db,
		eng:     eng,
		ledger:  ledger,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/skills", s.handleListSkills)
		r.Get("/skills/{skillID}", s.handleGetSkill)

		r.Post("/session", s.handleStartSession)
		r.Get("/session", s.handleGetSession)
		r.Delete("/session", s.handleDiscardSession)
		r.Post("/session/messages", s.handleAddMessage)
		r.Post("/session/pause", s.handlePauseSession)
		r.Post("/session/resume", s.handleResumeSession)
		r.Post("/session/end", s.handleEndSession)
		r.Post("/session/save", s.handleSaveSession)
		r.Post("/session/goals/{goalID}/toggle", s.handleToggleGoal)
		r.Post("/session/techniques", s.handleMarkTechnique)

		r.Get("/hints", s.handleListHints)
		r.Delete("/hints/{hintID}", s.handleDismissHint)
		r.Post("/hints/panel", s.handleTogglePanel)

		r.Get("/progress/{skillID}", s.handleGetProgress)
		r.Get("/sessions", s.handleListSessions)

		r.Get("/emotions", s.handleListEmotions)
		r.Post("/emotions", s.handleAddEmotion)
		r.Post("/emotions/decay", s.handleDecayEmotions)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps the engine's precondition errors to HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrNoSession):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrSessionActive),
		errors.Is(err, engine.ErrSessionPaused),
		errors.Is(err, engine.ErrSessionEnded),
		errors.Is(err, engine.ErrSessionNotEnded):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
