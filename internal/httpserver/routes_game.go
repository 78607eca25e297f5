// internal/httpserver/routes_game.go
//
// Game, roster, statistics and preference endpoints.
//
// While a game is in progress only the secret's silhouette image (the hint)
// is returned; the full secret is revealed once the game is terminal.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guessru/go-server/internal/daily"
	"github.com/guessru/go-server/internal/game"
	"github.com/guessru/go-server/internal/roster"
	"github.com/guessru/go-server/internal/stats"
	"github.com/guessru/go-server/internal/store"
)

// modeReq is the common "which mode" request fragment. An empty key falls
// back to the caller's last-selected mode (preference continuity).
type modeReq struct {
	ModeKey roster.ModeKey `json:"modeKey"`
}

// resolveMode decodes the mode from req, defaulting to the stored
// preference when absent.
func resolveMode(st *store.Store, key roster.ModeKey) (roster.Mode, error) {
	if key == "" {
		key = st.LoadPrefs().LastMode
	}
	return roster.ParseModeKey(key)
}

// stateRes is the game-state payload shared by /game/state, /game/guess and
// /game/reset.
type stateRes struct {
	GameNumber    int                `json:"gameNumber"`
	Date          string             `json:"date"`
	ModeKey       roster.ModeKey     `json:"modeKey"`
	State         string             `json:"state"` // "playing" | "won" | "lost"
	Guesses       []game.Guess       `json:"guesses"`
	Remaining     int                `json:"remaining"`
	StartTime     time.Time          `json:"startTime"`
	EndTime       *time.Time         `json:"endTime,omitempty"`
	SilhouetteURL string             `json:"silhouetteUrl"`
	Secret        *roster.Contestant `json:"secret,omitempty"` // revealed when terminal
}

func toStateRes(gs game.GameState, remaining int) stateRes {
	res := stateRes{
		GameNumber:    daily.GameNumber(gs.StartTime),
		Date:          gs.GameDate,
		ModeKey:       gs.ModeKey,
		State:         gs.State(),
		Guesses:       gs.Guesses,
		Remaining:     remaining,
		StartTime:     gs.StartTime,
		EndTime:       gs.EndTime,
		SilhouetteURL: gs.Secret.SilhouetteURL,
	}
	if gs.IsComplete {
		secret := gs.Secret
		res.Secret = &secret
	}
	return res
}

// handleState creates or resumes today's session for the caller and mode.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var req modeReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	uid := s.identity(w, r)
	ps, mode, ok := s.resolveSession(w, uid, req.ModeKey)
	if !ok {
		return
	}

	// Mode continuity for the next visit.
	prefs := ps.st.LoadPrefs()
	if prefs.LastMode != mode.Key() {
		prefs.LastMode = mode.Key()
		ps.st.SavePrefs(prefs)
	}

	_ = json.NewEncoder(w).Encode(toStateRes(ps.sess.State(), ps.sess.RemainingGuesses()))
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	ModeKey      roster.ModeKey `json:"modeKey"`
	ContestantID string         `json:"contestantId"`
}
type guessRes struct {
	Accepted bool           `json:"accepted"`
	Feedback *game.Feedback `json:"feedback,omitempty"` // feedback for this guess, when accepted
	Game     stateRes       `json:"game"`
}

// handleGuess submits one guess. A rejected guess (unknown id, duplicate,
// finished game) is not an error: accepted=false with unchanged state.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	uid := s.identity(w, r)
	ps, _, ok := s.resolveSession(w, uid, req.ModeKey)
	if !ok {
		return
	}

	accepted := ps.sess.SubmitGuess(req.ContestantID)
	gs := ps.sess.State()

	res := guessRes{Accepted: accepted, Game: toStateRes(gs, gs.RemainingGuesses())}
	if accepted {
		fb := gs.Guesses[len(gs.Guesses)-1].Feedback
		res.Feedback = &fb
	}

	// Completed games feed the daily leaderboard (best effort).
	if accepted && gs.IsComplete {
		elapsed := 0
		if gs.EndTime != nil {
			elapsed = int(gs.EndTime.Sub(gs.StartTime).Milliseconds())
		}
		err := s.daily.InsertResult(r.Context(), daily.Result{
			UserID:     uid,
			Date:       gs.GameDate,
			ModeKey:    gs.ModeKey,
			GameNumber: daily.GameNumber(gs.StartTime),
			Guesses:    len(gs.Guesses),
			Won:        gs.IsWon,
			ElapsedMs:  elapsed,
		})
		if err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}

	_ = json.NewEncoder(w).Encode(res)
}

// handleReset discards the caller's current game and starts a fresh one.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req modeReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	uid := s.identity(w, r)
	ps, _, ok := s.resolveSession(w, uid, req.ModeKey)
	if !ok {
		return
	}
	if err := ps.sess.Reset(); err != nil {
		http.Error(w, `{"error":"reset_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(toStateRes(ps.sess.State(), ps.sess.RemainingGuesses()))
}

// resolveSession is the shared mode-parse + session-fetch step. On failure
// it writes the error response and returns ok=false.
func (s *Server) resolveSession(w http.ResponseWriter, uid string, key roster.ModeKey) (*playerSession, roster.Mode, bool) {
	st := store.New(store.Namespaced(s.kv, uid))
	mode, err := resolveMode(st, key)
	if err != nil {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return nil, roster.Mode{}, false
	}
	ps, err := s.sessionFor(uid, mode)
	if err != nil {
		log.Error().Err(err).Str("mode", string(mode.Key())).Msg("create session")
		http.Error(w, `{"error":"empty_mode_pool"}`, http.StatusInternalServerError)
		return nil, roster.Mode{}, false
	}
	return ps, mode, true
}

// -----------------------------------------------------------------------------
// roster search

// rosterHit is a single autocomplete candidate. Text matching and display
// stay client-side; this endpoint only narrows the pool.
type rosterHit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
}

// handleRosterSearch returns contestants whose name contains ?q=,
// case-insensitive, capped at 10.
func (s *Server) handleRosterSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	matches := roster.ByName(q)
	if len(matches) > 10 {
		matches = matches[:10]
	}
	out := make([]rosterHit, 0, len(matches))
	for _, c := range matches {
		out = append(out, rosterHit{ID: c.ID, Name: c.Name, Season: c.Season})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// -----------------------------------------------------------------------------
// statistics

type statsRes struct {
	stats.Statistics
	WinPercentage           int `json:"winPercentage"`
	MostCommonWinGuessCount int `json:"mostCommonWinGuessCount,omitempty"`
}

// handleStats returns the caller's per-mode aggregate statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	uid := s.identity(w, r)
	st := store.New(store.Namespaced(s.kv, uid))

	mode, err := resolveMode(st, roster.ModeKey(r.URL.Query().Get("mode")))
	if err != nil {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}
	agg := st.LoadStats(mode.Key())
	_ = json.NewEncoder(w).Encode(statsRes{
		Statistics:              agg,
		WinPercentage:           stats.WinPercentage(agg),
		MostCommonWinGuessCount: stats.MostCommonWinGuessCount(agg),
	})
}

// -----------------------------------------------------------------------------
// preferences

func (s *Server) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	uid := s.identity(w, r)
	st := store.New(store.Namespaced(s.kv, uid))
	_ = json.NewEncoder(w).Encode(st.LoadPrefs())
}

func (s *Server) handlePutPrefs(w http.ResponseWriter, r *http.Request) {
	var p store.Preferences
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if _, err := roster.ParseModeKey(p.LastMode); err != nil {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}
	uid := s.identity(w, r)
	st := store.New(store.Namespaced(s.kv, uid))
	if !st.SavePrefs(p) {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}
