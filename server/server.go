// Package server implements nmmsd, a small REST daemon exposing the
// reasoner's ask/tell operations over HTTP: chi routing, JWT bearer auth
// gating the mutating tell endpoint, chi request IDs, grounded on
// tunaq's server package but scoped down from its full multi-user/game
// DAO suite to the one bootstrap admin account and three stateless
// routes this domain needs (see DESIGN.md).
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/dekarrin/nmms"
	"github.com/dekarrin/nmms/internal/persist"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

// PathPrefix is the prefix of every route the daemon serves, matching
// tunaq's server/api.PathPrefix convention.
const PathPrefix = "/api/v1"

// Server holds the daemon's live reasoner plus its auth configuration.
// All HTTP handlers are methods on Server.
type Server struct {
	mu       sync.RWMutex
	reasoner *nmms.Reasoner
	mode     sentence.Mode
	cfg      Config
}

// New builds a Server over an already-configured reasoner.
func New(r *nmms.Reasoner, mode sentence.Mode, cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Server{reasoner: r, mode: mode, cfg: cfg}, nil
}

// HashPassword bcrypt-hashes a plaintext admin password for use in Config.
func HashPassword(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
}

// Router builds the daemon's HTTP handler: request-ID logging middleware
// wrapping the three domain routes, the way tunaq's server.go builds its
// chi router around server/api's handlers.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route(PathPrefix, func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Get("/base", s.handleGetBase)
		r.Post("/ask", s.handleAsk)
		r.With(s.requireAuth).Post("/tell", s.handleTell)
	})

	return r
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if body.Username != s.cfg.AdminUser {
		time.Sleep(s.cfg.UnauthDelay())
		writeError(w, http.StatusUnauthorized, "incorrect username/password")
		return
	}
	if err := bcrypt.CompareHashAndPassword(s.cfg.AdminPasswordHash, []byte(body.Password)); err != nil {
		time.Sleep(s.cfg.UnauthDelay())
		writeError(w, http.StatusUnauthorized, "incorrect username/password")
		return
	}

	tok, err := s.generateJWT()
	if err != nil {
		log.Printf("generate jwt: %v", err)
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: tok})
}

func (s *Server) handleGetBase(w http.ResponseWriter, req *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := persist.ToJSON(s.reasoner.Base)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type askRequest struct {
	Sequent string `json:"sequent"`
	Trace   bool   `json:"trace"`
}

type askResponse struct {
	Derivable    bool     `json:"derivable"`
	DepthReached int      `json:"depth_reached"`
	CacheHits    int      `json:"cache_hits"`
	Trace        []string `json:"trace,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, req *http.Request) {
	var body askRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.mu.RLock()
	result, err := s.reasoner.Ask(body.Sequent, s.mode)
	s.mu.RUnlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := askResponse{Derivable: result.Derivable, DepthReached: result.DepthReached, CacheHits: result.CacheHits}
	if body.Trace {
		resp.Trace = result.Trace
	}
	writeJSON(w, http.StatusOK, resp)
}

type tellRequest struct {
	Statement string `json:"statement"`
}

func (s *Server) handleTell(w http.ResponseWriter, req *http.Request) {
	var body tellRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.mu.Lock()
	err := s.reasoner.Tell(body.Statement, s.mode)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}
