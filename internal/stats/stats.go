// internal/stats/stats.go
//
// Aggregate statistics for completed games. The aggregator is pure: it takes
// the previous Statistics and a terminal GameState and returns the updated
// Statistics. Persistence and the one-shot statsRecorded guard live with the
// caller (the session), so a crash between the game write and the stats
// write is retryable without double counting.

package stats

import (
	"errors"
	"math"

	"github.com/guessru/go-server/internal/game"
)

// Statistics is a per-mode aggregate over completed games.
type Statistics struct {
	GamesPlayed   int `json:"gamesPlayed"`
	GamesWon      int `json:"gamesWon"`
	CurrentStreak int `json:"currentStreak"`
	MaxStreak     int `json:"maxStreak"`
	// WinDistribution[k-1] counts wins that took exactly k guesses, k in 1..8.
	WinDistribution [game.MaxGuesses]int `json:"winDistribution"`
}

// ErrIncompleteGame is returned when Update is called on a game that has not
// finished. That is a programming error in the caller, never routine input.
var ErrIncompleteGame = errors.New("stats: cannot update statistics for incomplete game")

// Update folds one completed game into s and returns the result.
func Update(s Statistics, gs *game.GameState) (Statistics, error) {
	if !gs.IsComplete {
		return s, ErrIncompleteGame
	}

	s.GamesPlayed++
	if !gs.IsWon {
		s.CurrentStreak = 0
		return s, nil
	}

	s.GamesWon++
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	if n := len(gs.Guesses); n >= 1 && n <= game.MaxGuesses {
		s.WinDistribution[n-1]++
	}
	return s, nil
}

// WinPercentage returns round(100 * won / played), 0 when no games played.
func WinPercentage(s Statistics) int {
	if s.GamesPlayed == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.GamesWon) / float64(s.GamesPlayed)))
}

// MostCommonWinGuessCount returns the guess count (1..8) with the most wins,
// or 0 when there are no wins. Ties resolve to the lower guess count.
func MostCommonWinGuessCount(s Statistics) int {
	if s.GamesWon == 0 {
		return 0
	}
	best, max := 0, 0
	for i, n := range s.WinDistribution {
		if n > max {
			max = n
			best = i + 1
		}
	}
	return best
}
