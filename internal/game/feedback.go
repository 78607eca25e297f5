// internal/game/feedback.go
//
// Attribute comparison between a guessed contestant and the secret.
//
// Numeric attributes (season, age): correct on equality, close within ±3,
// otherwise wrong; a direction hint accompanies every non-correct verdict,
// pointing at the secret's value.
//
// Finishing position uses the same bands but inverted direction semantics:
// position 1 is the winner, so "higher" means the secret placed better
// (a smaller number) than the guess. This mirrors the domain meaning of
// the hint arrows and is intentional; do not normalize it to match the
// other attributes.
//
// Hometown: correct only on an identical label; close within 75 miles by
// great-circle distance; never a direction.

package game

import (
	"github.com/guessru/go-server/internal/geo"
	"github.com/guessru/go-server/internal/roster"
)

const (
	// closeTolerance is the ± band for season, position and age.
	closeTolerance = 3
	// proximityThresholdMiles is the hometown "close" radius.
	proximityThresholdMiles = 75
)

// Evaluate grades guess against secret. Pure: identical inputs produce
// identical Feedback, direction fields included.
func Evaluate(guess, secret roster.Contestant) Feedback {
	var f Feedback

	f.Season, f.SeasonDirection = gradeNumeric(guess.Season, secret.Season)
	f.Age, f.AgeDirection = gradeNumeric(guess.AgeAtShow, secret.AgeAtShow)

	// Position: numerically lower is better, so the direction comparison is
	// flipped relative to gradeNumeric.
	f.Position, f.PositionDirection = gradeNumeric(secret.FinishingPosition, guess.FinishingPosition)

	switch {
	case guess.Hometown == secret.Hometown:
		f.Hometown = VerdictCorrect
	case geo.WithinProximity(guess.HometownCoordinates, secret.HometownCoordinates, proximityThresholdMiles):
		f.Hometown = VerdictClose
	default:
		f.Hometown = VerdictWrong
	}

	return f
}

// gradeNumeric bands the difference between a guessed and secret value and
// attaches a direction whenever the verdict is not correct. Direction is
// informative even on a far miss.
func gradeNumeric(guess, secret int) (Verdict, Direction) {
	if guess == secret {
		return VerdictCorrect, ""
	}
	dir := DirectionLower
	if guess < secret {
		dir = DirectionHigher
	}
	if diff := abs(guess - secret); diff <= closeTolerance {
		return VerdictClose, dir
	}
	return VerdictWrong, dir
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
