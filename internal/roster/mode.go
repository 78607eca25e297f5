// internal/roster/mode.go
//
// Game mode definitions.
// A mode is a pair of independent difficulty filters over the roster:
//   - FirstTenSeasons: restrict the pool to seasons 1-10.
//   - TopFiveOnly:     restrict the pool to top-5 finishers.
//
// Each of the four combinations has a canonical string key used to
// partition persisted state and statistics.

package roster

import "fmt"

// ModeKey is the canonical storage key for a mode.
type ModeKey string

const (
	ModeDefault         ModeKey = "default"
	ModeFirstTen        ModeKey = "first10"
	ModeTopFive         ModeKey = "top5"
	ModeFirstTenTopFive ModeKey = "first10-top5"
)

// ModeKeys lists all four canonical keys (storage sweep order).
var ModeKeys = []ModeKey{ModeDefault, ModeFirstTen, ModeTopFive, ModeFirstTenTopFive}

// Mode is a pair of difficulty filters.
type Mode struct {
	FirstTenSeasons bool `json:"firstTenSeasons"`
	TopFiveOnly     bool `json:"topFiveOnly"`
}

// DefaultMode is the starting mode for new players (the easiest pool).
var DefaultMode = Mode{FirstTenSeasons: true, TopFiveOnly: true}

// Key returns the canonical key for m.
func (m Mode) Key() ModeKey {
	switch {
	case m.FirstTenSeasons && m.TopFiveOnly:
		return ModeFirstTenTopFive
	case m.FirstTenSeasons:
		return ModeFirstTen
	case m.TopFiveOnly:
		return ModeTopFive
	default:
		return ModeDefault
	}
}

// ParseModeKey converts a key back into a Mode.
// Unknown keys are an error rather than a silent default so that a
// corrupted stored key cannot move a player between partitions.
func ParseModeKey(key ModeKey) (Mode, error) {
	switch key {
	case ModeDefault:
		return Mode{}, nil
	case ModeFirstTen:
		return Mode{FirstTenSeasons: true}, nil
	case ModeTopFive:
		return Mode{TopFiveOnly: true}, nil
	case ModeFirstTenTopFive:
		return Mode{FirstTenSeasons: true, TopFiveOnly: true}, nil
	default:
		return Mode{}, fmt.Errorf("roster: unknown mode key %q", key)
	}
}
