// Package apitest provides an in-memory notes API for tests. It speaks the
// same routes and response envelope as the remote service.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nzaccagnino/notely/internal/api"
)

// Route keys, used to inject failures or hold requests.
const (
	RouteRegister      = "POST /register"
	RouteLogin         = "POST /login"
	RouteMe            = "GET /users/me"
	RouteActiveNotes   = "GET /notes"
	RouteArchivedNotes = "GET /notes/archived"
	RouteGetNote       = "GET /notes/{id}"
	RouteAddNote       = "POST /notes"
	RouteDeleteNote    = "DELETE /notes/{id}"
	RouteArchiveNote   = "POST /notes/{id}/archive"
	RouteUnarchiveNote = "POST /notes/{id}/unarchive"
)

type Server struct {
	store  *store
	tokens *tokenManager
	router *chi.Mux

	mu       sync.Mutex
	failures map[string]failure
	holds    map[string]chan struct{}
	hits     map[string]int
	limiter  *RateLimiter
}

type failure struct {
	status   int
	message  string
	raw      string
	verbatim bool
}

type Option func(*Server)

// WithRateLimit rejects requests beyond limit per window with 429.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(s *Server) {
		s.limiter = NewRateLimiter(limit, window)
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		store:    newStore(),
		tokens:   newTokenManager("apitest-secret", time.Hour),
		router:   chi.NewRouter(),
		failures: make(map[string]failure),
		holds:    make(map[string]chan struct{}),
		hits:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

// Start serves s on a loopback listener until the test ends.
func Start(t testing.TB, opts ...Option) (*Server, *httptest.Server) {
	s := New(opts...)
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return s, ts
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recoverer)
	if s.limiter != nil {
		s.router.Use(s.limiter.Middleware)
	}

	s.handle(s.router, RouteRegister, s.registerHandler)
	s.handle(s.router, RouteLogin, s.loginHandler)

	s.router.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		s.handle(r, RouteMe, s.meHandler)
		s.handle(r, RouteActiveNotes, s.listNotesHandler(false))
		s.handle(r, RouteArchivedNotes, s.listNotesHandler(true))
		s.handle(r, RouteGetNote, s.getNoteHandler)
		s.handle(r, RouteAddNote, s.addNoteHandler)
		s.handle(r, RouteDeleteNote, s.deleteNoteHandler)
		s.handle(r, RouteArchiveNote, s.setArchivedHandler(true))
		s.handle(r, RouteUnarchiveNote, s.setArchivedHandler(false))
	})
}

func (s *Server) handle(r chi.Router, route string, h http.HandlerFunc) {
	method, pattern, _ := strings.Cut(route, " ")
	r.Method(method, pattern, s.inject(route, h))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// inject counts the request, waits on a hold and applies an injected failure.
func (s *Server) inject(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[route]++
		hold := s.holds[route]
		f, failing := s.failures[route]
		s.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			if f.verbatim {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(f.status)
				w.Write([]byte(f.raw))
				return
			}
			jsonError(w, f.message, f.status)
			return
		}
		next(w, r)
	}
}

// Fail makes every request to route answer with status and a fail envelope.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	s.failures[route] = failure{status: status, message: message}
	s.mu.Unlock()
}

// FailRaw makes route answer with the given body verbatim.
func (s *Server) FailRaw(route string, status int, body string) {
	s.mu.Lock()
	s.failures[route] = failure{status: status, raw: body, verbatim: true}
	s.mu.Unlock()
}

// Recover removes an injected failure.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	delete(s.failures, route)
	s.mu.Unlock()
}

// Hold blocks requests to route until release is called.
func (s *Server) Hold(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.holds[route] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.holds, route)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Hits returns how many requests reached route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// Seeding helpers

// AddUser registers a user directly and returns its id.
func (s *Server) AddUser(name, email, password string) (string, error) {
	u, err := s.store.createUser(name, email, password)
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

// TokenFor issues an access token for an existing user.
func (s *Server) TokenFor(email string) (string, error) {
	u := s.store.userByEmail(email)
	if u == nil {
		return "", errUnknownUser
	}
	return s.tokens.Generate(u.ID)
}

// AddNote stores a note owned by the user with email.
func (s *Server) AddNote(email string, note api.Note) (api.Note, error) {
	u := s.store.userByEmail(email)
	if u == nil {
		return api.Note{}, errUnknownUser
	}
	return s.store.addNote(u.ID, note), nil
}

// Notes lists every note owned by the user with email.
func (s *Server) Notes(email string) []api.Note {
	u := s.store.userByEmail(email)
	if u == nil {
		return nil
	}
	active := s.store.listNotes(u.ID, false)
	return append(active, s.store.listNotes(u.ID, true)...)
}

// Envelope helpers

func jsonResponse(w http.ResponseWriter, data any, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.Envelope{Status: "success", Message: message, Data: data})
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.Envelope{Status: "fail", Message: message})
}
