// internal/store/store.go
//
// Mode-partitioned persistence for game state, statistics and preferences.
//
// Layout: one JSON record per (data kind × mode key), plus one global
// preferences record and one global last-cleanup date marker.
//
// Everything here is best-effort. Read, write and decode failures degrade to
// "no stored value" (or a false return) with a logged warning; they are never
// propagated to the player. Stale game state from a previous reference day
// is not an error either: it is evicted on load, which is the mechanism by
// which the daily puzzle actually resets for returning users.

package store

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guessru/go-server/internal/daily"
	"github.com/guessru/go-server/internal/game"
	"github.com/guessru/go-server/internal/roster"
	"github.com/guessru/go-server/internal/stats"
)

// Storage keys. The mode key is appended to the partitioned kinds.
const (
	gameStateKeyPrefix  = "guessru_game_state_"
	statisticsKeyPrefix = "guessru_statistics_"
	preferencesKey      = "guessru_preferences"
	lastCleanupKey      = "guessru_last_cleanup"
)

// Preferences are user-level flags, global across modes.
type Preferences struct {
	HasSeenInstructions bool           `json:"hasSeenInstructions"`
	ShowSilhouette      bool           `json:"showSilhouette"`
	LastMode            roster.ModeKey `json:"lastMode"`
}

// DefaultPreferences returns the state for a first-time player.
func DefaultPreferences() Preferences {
	return Preferences{LastMode: roster.DefaultMode.Key()}
}

// Store is the persistence layer over an injected KV backend.
// Now is the wall clock used for staleness checks; tests override it.
type Store struct {
	kv  KV
	Now func() time.Time
}

// New constructs a Store over kv.
func New(kv KV) *Store {
	return &Store{kv: kv, Now: time.Now}
}

// ---------------------------- game state -----------------------------------

// SaveGame persists gs under its own mode key. Returns false on failure.
func (s *Store) SaveGame(gs *game.GameState) bool {
	return s.setJSON(gameStateKeyPrefix+string(gs.ModeKey), gs)
}

// LoadGame returns the stored game state for mode, or nil when there is
// none. A record whose gameDate is not today's reference-timezone date is
// evicted and reported as absent rather than returned stale.
func (s *Store) LoadGame(mode roster.ModeKey) *game.GameState {
	key := gameStateKeyPrefix + string(mode)
	var gs game.GameState
	if !s.getJSON(key, &gs) {
		return nil
	}
	if daily.NewDayStarted(gs.GameDate, s.Now()) {
		s.remove(key)
		return nil
	}
	return &gs
}

// ClearGame removes the stored game state for mode.
func (s *Store) ClearGame(mode roster.ModeKey) bool {
	return s.remove(gameStateKeyPrefix + string(mode))
}

// ---------------------------- statistics -----------------------------------

// SaveStats persists st under mode. Returns false on failure.
func (s *Store) SaveStats(mode roster.ModeKey, st stats.Statistics) bool {
	return s.setJSON(statisticsKeyPrefix+string(mode), st)
}

// LoadStats returns the statistics for mode, zero-valued when absent or
// unreadable.
func (s *Store) LoadStats(mode roster.ModeKey) stats.Statistics {
	var st stats.Statistics
	s.getJSON(statisticsKeyPrefix+string(mode), &st)
	return st
}

// ---------------------------- preferences ----------------------------------

// SavePrefs persists the global preferences record.
func (s *Store) SavePrefs(p Preferences) bool {
	return s.setJSON(preferencesKey, p)
}

// LoadPrefs returns the global preferences, defaults when absent.
func (s *Store) LoadPrefs() Preferences {
	p := DefaultPreferences()
	s.getJSON(preferencesKey, &p)
	if _, err := roster.ParseModeKey(p.LastMode); err != nil {
		p.LastMode = roster.DefaultMode.Key()
	}
	return p
}

// ---------------------------- daily sweep ----------------------------------

// DailyCleanup evicts any game state left over from a previous reference
// day, across all mode partitions. Runs at most once per day: repeated calls
// on the same day are no-ops beyond the first.
func (s *Store) DailyCleanup() {
	today := daily.DateKey(s.Now())
	if last, ok, err := s.kv.Get(lastCleanupKey); err == nil && ok && last == today {
		return
	} else if err != nil {
		log.Warn().Err(err).Msg("storage: read last cleanup date")
	}

	for _, mode := range roster.ModeKeys {
		key := gameStateKeyPrefix + string(mode)
		var gs game.GameState
		if !s.getJSON(key, &gs) {
			continue
		}
		if gs.GameDate != today {
			s.remove(key)
		}
	}

	if err := s.kv.Set(lastCleanupKey, today); err != nil {
		log.Warn().Err(err).Msg("storage: record cleanup date")
	}
}

// ----------------------------- internals -----------------------------------

// getJSON loads and decodes key into v, reporting presence. Malformed
// payloads are evicted and reported absent.
func (s *Store) getJSON(key string, v any) bool {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("storage: read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("storage: malformed record dropped")
		s.remove(key)
		return false
	}
	return true
}

func (s *Store) setJSON(key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("storage: encode failed")
		return false
	}
	if err := s.kv.Set(key, string(raw)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("storage: write failed")
		return false
	}
	return true
}

func (s *Store) remove(key string) bool {
	if err := s.kv.Delete(key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("storage: delete failed")
		return false
	}
	return true
}
