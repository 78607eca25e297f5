// internal/session/session.go
//
// Session state machine for one (player, mode) daily game.
// Responsibilities:
//   - Create or resume today's game via the deterministic selector.
//   - Validate and apply guesses: unknown ids, duplicates and submissions
//     after a terminal state are rejected without changing anything.
//   - Track state transitions: playing → won/lost, stamping endTime.
//   - Persist after every transition and fold completed games into the
//     per-mode statistics exactly once (statsRecorded one-shot).
//   - Reset automatically when the reference-timezone day rolls over.
//
// The wall clock comes from the injected store's Now, so the whole machine
// is drivable from tests.
package session

import (
	"github.com/rs/zerolog/log"

	"github.com/guessru/go-server/internal/daily"
	"github.com/guessru/go-server/internal/game"
	"github.com/guessru/go-server/internal/roster"
	"github.com/guessru/go-server/internal/stats"
	"github.com/guessru/go-server/internal/store"
)

// Session owns the evolving GameState for one mode.
type Session struct {
	store *store.Store
	mode  roster.Mode
	state game.GameState
}

// New runs the once-a-day storage sweep, then resumes today's stored game
// for mode or derives a fresh one. Fails only when the mode's candidate
// pool is empty.
func New(st *store.Store, mode roster.Mode) (*Session, error) {
	st.DailyCleanup()

	s := &Session{store: st, mode: mode}
	if saved := st.LoadGame(mode.Key()); saved != nil {
		s.state = *saved
		// A crash between the game write and the stats write leaves a
		// completed game unrecorded; the one-shot flag makes the retry safe.
		s.recordStatsOnce()
		return s, nil
	}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Mode returns the session's mode.
func (s *Session) Mode() roster.Mode { return s.mode }

// State returns a snapshot of the current game, after the rollover check.
func (s *Session) State() game.GameState {
	s.ensureToday()
	return s.state
}

// RemainingGuesses reports attempts left, after the rollover check.
func (s *Session) RemainingGuesses() int {
	s.ensureToday()
	return s.state.RemainingGuesses()
}

// SubmitGuess applies one guess by contestant id.
// Returns false, with no state change, when the id does not resolve, the
// game is already terminal, or the contestant was guessed before in this
// game. Routine input noise, not an error.
func (s *Session) SubmitGuess(contestantID string) bool {
	s.ensureToday()

	guessed, ok := roster.ByID(contestantID)
	if !ok {
		return false
	}
	if s.state.IsComplete || len(s.state.Guesses) >= game.MaxGuesses {
		return false
	}
	if s.state.HasGuessed(contestantID) {
		return false
	}

	fb := game.Evaluate(guessed, s.state.Secret)
	s.state.Guesses = append(s.state.Guesses, game.Guess{Contestant: guessed, Feedback: fb})

	if fb.AllCorrect() {
		s.state.IsComplete = true
		s.state.IsWon = true
	} else if len(s.state.Guesses) >= game.MaxGuesses {
		s.state.IsComplete = true
	}
	if s.state.IsComplete {
		end := s.store.Now()
		if end.Before(s.state.StartTime) {
			end = s.state.StartTime
		}
		s.state.EndTime = &end
	}

	s.store.SaveGame(&s.state)
	if s.state.IsComplete {
		s.recordStatsOnce()
	}
	return true
}

// Reset discards the current state and derives a fresh game for today.
func (s *Session) Reset() error {
	return s.reset()
}

func (s *Session) reset() error {
	now := s.store.Now()
	secret, err := daily.Pick(now, s.mode)
	if err != nil {
		return err
	}
	s.state = game.GameState{
		Secret:    secret,
		Guesses:   []game.Guess{},
		StartTime: now,
		GameDate:  daily.DateKey(now),
		ModeKey:   s.mode.Key(),
	}
	s.store.SaveGame(&s.state)
	return nil
}

// ensureToday resets the session when the stored gameDate no longer matches
// today's reference-timezone date, so a player is never shown yesterday's
// puzzle.
func (s *Session) ensureToday() {
	if !daily.NewDayStarted(s.state.GameDate, s.store.Now()) {
		return
	}
	if err := s.reset(); err != nil {
		// Pool emptiness was already ruled out when the session was created
		// and the roster never changes at runtime.
		log.Warn().Err(err).Str("mode", string(s.mode.Key())).Msg("session: rollover reset failed")
	}
}

// recordStatsOnce folds a completed game into the mode's statistics, at most
// once. The flag is only persisted after the stats write succeeds, so a
// failed write is retried on the next load instead of double-counted.
func (s *Session) recordStatsOnce() {
	if !s.state.IsComplete || s.state.StatsRecorded {
		return
	}
	updated, err := stats.Update(s.store.LoadStats(s.state.ModeKey), &s.state)
	if err != nil {
		log.Warn().Err(err).Msg("session: statistics update")
		return
	}
	if !s.store.SaveStats(s.state.ModeKey, updated) {
		return
	}
	s.state.StatsRecorded = true
	s.store.SaveGame(&s.state)
}

// Sync offers a game-state snapshot from another instance (another tab or
// process writing the same partition). The snapshot is adopted only when
// Adopt allows it. Reports whether the local state changed.
func (s *Session) Sync(incoming game.GameState) bool {
	if !Adopt(s.state, incoming, daily.DateKey(s.store.Now())) {
		return false
	}
	s.state = incoming
	s.recordStatsOnce()
	return true
}

// Adopt is the pure reconciliation rule between a local state and an
// incoming snapshot of the same partition. The incoming state is adopted
// when it belongs to today and is not regressive: a longer guess history,
// a completion the local state lacks, or a later start all win; anything
// else keeps the local state (last-writer-wins is resolved at read time).
func Adopt(local, incoming game.GameState, today string) bool {
	if incoming.GameDate != today {
		return false
	}
	if local.GameDate != today {
		return true
	}
	if incoming.ModeKey != local.ModeKey {
		return false
	}
	switch {
	case len(incoming.Guesses) > len(local.Guesses):
		return true
	case len(incoming.Guesses) < len(local.Guesses):
		return false
	case incoming.IsComplete && !local.IsComplete:
		return true
	default:
		return incoming.StartTime.After(local.StartTime)
	}
}
