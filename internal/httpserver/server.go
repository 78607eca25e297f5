// internal/httpserver/server.go
//
// HTTP server wiring for the daily guessing-game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): /game/state, /game/guess, /game/reset,
//     /roster/search, /stats, /prefs.
//   - Daily leaderboard under /daily.
//   - Auth endpoints: /auth/*.
//   - Per-identity session cache over the shared KV store; guests get a
//     stable anonymous cookie.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token
//     is present; routes still run for guests.

package httpserver

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/guessru/go-server/internal/daily"
	"github.com/guessru/go-server/internal/roster"
	"github.com/guessru/go-server/internal/session"
	"github.com/guessru/go-server/internal/store"
)

// Server bundles the router, the shared KV backend, and the DB handle.
type Server struct {
	r     *chi.Mux
	db    *sql.DB
	kv    store.KV
	daily *daily.Store

	mu       sync.Mutex
	sessions map[string]*playerSession // keyed by identity|modeKey
}

// playerSession pairs a live session with its identity-scoped store so the
// handlers can reconcile against storage writes from other instances.
type playerSession struct {
	sess *session.Session
	st   *store.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(db *sql.DB, kv store.KV) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		db:       db,
		kv:       kv,
		daily:    daily.NewStore(db),
		sessions: make(map[string]*playerSession),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"guessru-go","endpoints":["/health","POST /game/state","POST /game/guess","/daily/leaderboard","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game endpoints. Auth is optional: guests can play.
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/state", s.handleState)
		r.Post("/game/guess", s.handleGuess)
		r.Post("/game/reset", s.handleReset)
		r.Get("/roster/search", s.handleRosterSearch)
		r.Get("/stats", s.handleStats)
		r.Get("/prefs", s.handleGetPrefs)
		r.Put("/prefs", s.handlePutPrefs)
		r.Get("/daily/leaderboard", s.handleLeaderboard)
	})

	// Auth
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- identity ------------------------------------

const anonCookieName = "guessru_anon"

// identity returns a stable caller id: the authenticated user id when
// present, otherwise the anonymous cookie (set on first contact).
func (s *Server) identity(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return s.ensureAnonID(w, r)
}

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("NODE_ENV") == "production",
		SameSite: func() http.SameSite {
			if os.Getenv("NODE_ENV") == "production" {
				return http.SameSiteNoneMode
			}
			return http.SameSiteLaxMode
		}(),
		Expires: time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// ----------------------------- sessions ------------------------------------

// sessionFor returns the cached session for (identity, mode), creating it
// over an identity-scoped slice of the KV store if needed. Existing sessions
// are reconciled against the latest storage snapshot first, so writes from
// another process instance are adopted when they are ahead.
func (s *Server) sessionFor(uid string, mode roster.Mode) (*playerSession, error) {
	key := uid + "|" + string(mode.Key())

	s.mu.Lock()
	defer s.mu.Unlock()
	if ps, ok := s.sessions[key]; ok {
		if saved := ps.st.LoadGame(mode.Key()); saved != nil {
			ps.sess.Sync(*saved)
		}
		return ps, nil
	}

	st := store.New(store.Namespaced(s.kv, uid))
	sess, err := session.New(st, mode)
	if err != nil {
		return nil, err
	}
	ps := &playerSession{sess: sess, st: st}
	s.sessions[key] = ps
	return ps, nil
}

// ------------------------------- small util --------------------------------

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	id := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(id) > 22 {
		return id[:22]
	}
	return id
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
