// internal/daily/daily.go
//
// Deterministic daily contestant selection.
//
// Every player worldwide must be served the same secret contestant for a
// given calendar day. "Day" is defined in a fixed reference timezone
// (US Pacific), independent of the player's clock. Selection is an index
// into the mode-filtered pool:
//
//	index = (daysSinceEpoch(day) + modeOffset) mod poolSize
//
// daysSinceEpoch counts civil calendar days, midnight to midnight in the
// reference timezone. Raw duration arithmetic would drift by an hour across
// DST transitions and shift the day boundary.

package daily

import (
	"errors"
	"time"
	_ "time/tzdata" // reference timezone must resolve without a host zoneinfo db

	"github.com/guessru/go-server/internal/roster"
)

// referenceZone anchors the daily rollover.
const referenceZone = "America/Los_Angeles"

var zone = mustLoadZone()

func mustLoadZone() *time.Location {
	loc, err := time.LoadLocation(referenceZone)
	if err != nil {
		panic("daily: load reference timezone: " + err.Error())
	}
	return loc
}

// Mode offsets keep the four pools from landing on the same contestant for
// the same day. Product constants; do not re-derive.
var modeOffsets = map[roster.ModeKey]int{
	roster.ModeDefault:         0,
	roster.ModeFirstTen:        7,
	roster.ModeTopFive:         13,
	roster.ModeFirstTenTopFive: 23,
}

// launchDay is the civil day number of 2026-01-28, game #1.
var launchDay = civilDays(2026, time.January, 28)

// DateKey returns YYYY-MM-DD in the reference timezone.
func DateKey(t time.Time) string {
	return t.In(zone).Format("2006-01-02")
}

// DayIndex returns the number of civil days between t's reference-timezone
// calendar day and 1970-01-01. Two instants on the same reference-timezone
// day always produce the same index, regardless of their UTC offsets.
func DayIndex(t time.Time) int {
	y, m, d := t.In(zone).Date()
	return civilDays(y, m, d)
}

// civilDays counts calendar days from 1970-01-01 to y-m-d. Rebuilding the
// date in UTC sidesteps DST entirely: every UTC day is exactly 86400s.
func civilDays(y int, m time.Month, d int) int {
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// ErrEmptyPool is returned when a mode filter yields no candidates.
// A misconfigured mode can never be played; selection fails loudly rather
// than falling back to the unfiltered pool.
var ErrEmptyPool = errors.New("daily: no contestants available for the selected game mode")

// Pick returns the secret contestant for t's reference-timezone day and the
// given mode. Identical (day, mode) inputs always yield the identical
// contestant.
func Pick(t time.Time, mode roster.Mode) (roster.Contestant, error) {
	return pickFrom(roster.ByMode(mode), t, mode.Key())
}

func pickFrom(pool []roster.Contestant, t time.Time, key roster.ModeKey) (roster.Contestant, error) {
	if len(pool) == 0 {
		return roster.Contestant{}, ErrEmptyPool
	}
	idx := DayIndex(t) + modeOffsets[key]
	// Floored modulus: DayIndex is negative before 1970.
	i := ((idx % len(pool)) + len(pool)) % len(pool)
	return pool[i], nil
}

// GameNumber returns the 1-indexed puzzle number for t (game #1 is launch
// day). Dates before launch produce zero or negative numbers.
func GameNumber(t time.Time) int {
	y, m, d := t.In(zone).Date()
	return civilDays(y, m, d) - launchDay + 1
}

// NewDayStarted reports whether now falls on a different reference-timezone
// day than lastDate (a DateKey-formatted string).
func NewDayStarted(lastDate string, now time.Time) bool {
	return lastDate != DateKey(now)
}
