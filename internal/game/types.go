// internal/game/types.go
//
// Core type definitions for the guessing game engine.
// Defines:
//   - Verdict: per-attribute result of a guess (correct/close/wrong).
//   - Direction: hint for numeric attributes (higher/lower).
//   - Feedback: the full per-guess verdict set.
//   - Guess: an immutable (contestant, feedback) pair.
//   - GameState: state for a single in-progress or finished daily game.

package game

import (
	"time"

	"github.com/guessru/go-server/internal/roster"
)

// MaxGuesses is the attempt limit for one daily game.
const MaxGuesses = 8

// Verdict grades one attribute of a guess.
// Possible values:
//   - "correct": the attribute matches the secret exactly.
//   - "close":   within the tolerance band (±3, or 75 miles for hometown).
//   - "wrong":   outside the band.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictClose   Verdict = "close"
	VerdictWrong   Verdict = "wrong"
)

// Direction says which way the secret's value lies relative to the guess.
type Direction string

const (
	DirectionHigher Direction = "higher"
	DirectionLower  Direction = "lower"
)

// Feedback is the attribute-by-attribute grading of one guess. Hometown
// never carries a direction; the numeric attributes carry one whenever they
// are not correct.
type Feedback struct {
	Season   Verdict `json:"season"`
	Position Verdict `json:"position"`
	Age      Verdict `json:"age"`
	Hometown Verdict `json:"hometown"`

	SeasonDirection   Direction `json:"seasonDirection,omitempty"`
	PositionDirection Direction `json:"positionDirection,omitempty"`
	AgeDirection      Direction `json:"ageDirection,omitempty"`
}

// AllCorrect reports whether f is a winning feedback.
func (f Feedback) AllCorrect() bool {
	return f.Season == VerdictCorrect &&
		f.Position == VerdictCorrect &&
		f.Age == VerdictCorrect &&
		f.Hometown == VerdictCorrect
}

// Guess pairs a guessed contestant with its feedback. Append-only; once
// recorded it never changes.
type Guess struct {
	Contestant roster.Contestant `json:"contestant"`
	Feedback   Feedback          `json:"feedback"`
}

// GameState holds one daily game for one mode.
type GameState struct {
	Secret        roster.Contestant `json:"secret"`
	Guesses       []Guess           `json:"guesses"` // submission order
	IsComplete    bool              `json:"isComplete"`
	IsWon         bool              `json:"isWon"`
	StartTime     time.Time         `json:"startTime"`
	EndTime       *time.Time        `json:"endTime,omitempty"`
	GameDate      string            `json:"gameDate"` // reference-timezone YYYY-MM-DD
	ModeKey       roster.ModeKey    `json:"modeKey"`
	StatsRecorded bool              `json:"statsRecorded"` // one-shot guard for the stats update
}

// RemainingGuesses reports how many attempts are left.
func (g *GameState) RemainingGuesses() int {
	return MaxGuesses - len(g.Guesses)
}

// HasGuessed reports whether id was already submitted in this game.
func (g *GameState) HasGuessed(id string) bool {
	for _, prev := range g.Guesses {
		if prev.Contestant.ID == id {
			return true
		}
	}
	return false
}

// State reports a coarse string representation: "playing", "won" or "lost".
func (g *GameState) State() string {
	if g.IsComplete {
		if g.IsWon {
			return "won"
		}
		return "lost"
	}
	return "playing"
}
