// internal/roster/roster.go
//
// Provides the contestant roster for the game engine.
//
// Responsibilities:
//   - Load the contestant dataset from an environment-provided file or fall
//     back to the embedded default.
//   - Maintain an id index for quick lookups.
//   - Supply query functions: ByID, ByName, ByMode, Names.
//
// Initialization behavior (Init):
//   1. If ROSTER_FILE is set, load the dataset from that path.
//   2. Otherwise use the embedded assets/contestants.json.
//
// Constraints:
//   • Contestants are immutable after load; query functions return copies
//     or fresh slices, never aliases into mutable state.
//   • Initialization is run once (sync.Once).

package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/guessru/go-server/assets"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Contestant is one puzzle subject. Records are created at load time and
// never mutated.
type Contestant struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Season              int         `json:"season"`
	FinishingPosition   int         `json:"finishingPosition"` // 1 = winner; lower is a better placement
	AgeAtShow           int         `json:"ageAtShow"`
	Hometown            string      `json:"hometown"`
	HometownCoordinates Coordinates `json:"hometownCoordinates"`
	HeadshotURL         string      `json:"headshotUrl"`
	SilhouetteURL       string      `json:"silhouetteUrl"`
}

var (
	initOnce    sync.Once
	contestants []Contestant
	byID        map[string]int // index into contestants
	initialErr  error
)

// Init loads the roster exactly once.
// Returns an error if the dataset is empty or fails validation.
func Init() error {
	initOnce.Do(func() {
		var raw []byte
		var err error
		if path := os.Getenv("ROSTER_FILE"); path != "" {
			raw, err = os.ReadFile(path)
		} else {
			raw, err = assets.ContestantsJSON()
		}
		if err != nil {
			initialErr = err
			return
		}

		var list []Contestant
		if err := json.Unmarshal(raw, &list); err != nil {
			initialErr = fmt.Errorf("roster: parse dataset: %w", err)
			return
		}
		if len(list) == 0 {
			initialErr = errors.New("roster: dataset is empty")
			return
		}
		if err := validate(list); err != nil {
			initialErr = err
			return
		}

		contestants = list
		byID = make(map[string]int, len(list))
		for i, c := range list {
			byID[c.ID] = i
		}
	})
	return initialErr
}

// validate checks dataset integrity: unique ids, required fields, and
// plausible attribute ranges.
func validate(list []Contestant) error {
	seen := make(map[string]struct{}, len(list))
	for _, c := range list {
		if c.ID == "" || c.Name == "" || c.Hometown == "" {
			return fmt.Errorf("roster: incomplete record %q", c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("roster: duplicate id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.Season < 1 {
			return fmt.Errorf("roster: %s: invalid season %d", c.ID, c.Season)
		}
		if c.FinishingPosition < 1 {
			return fmt.Errorf("roster: %s: invalid finishing position %d", c.ID, c.FinishingPosition)
		}
		lat, lon := c.HometownCoordinates.Latitude, c.HometownCoordinates.Longitude
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return fmt.Errorf("roster: %s: coordinates out of range", c.ID)
		}
	}
	return nil
}

// All returns the full pool in dataset order.
func All() []Contestant {
	out := make([]Contestant, len(contestants))
	copy(out, contestants)
	return out
}

// Len reports the size of the full pool.
func Len() int { return len(contestants) }

// ByID looks up a contestant by id.
func ByID(id string) (Contestant, bool) {
	i, ok := byID[id]
	if !ok {
		return Contestant{}, false
	}
	return contestants[i], true
}

// ByName returns contestants whose name contains substr, case-insensitive,
// in dataset order.
func ByName(substr string) []Contestant {
	needle := strings.ToLower(strings.TrimSpace(substr))
	if needle == "" {
		return nil
	}
	var out []Contestant
	for _, c := range contestants {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// ByMode returns the candidate pool for a mode: season ≤ 10 when
// FirstTenSeasons, finishing position ≤ 5 when TopFiveOnly. With neither
// flag set, the full pool. Pure filter over static data.
func ByMode(mode Mode) []Contestant {
	var out []Contestant
	for _, c := range contestants {
		if mode.FirstTenSeasons && c.Season > 10 {
			continue
		}
		if mode.TopFiveOnly && c.FinishingPosition > 5 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Names returns every contestant name in dataset order.
func Names() []string {
	out := make([]string, len(contestants))
	for i, c := range contestants {
		out[i] = c.Name
	}
	return out
}
