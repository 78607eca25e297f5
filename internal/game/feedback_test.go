package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guessru/go-server/internal/roster"
)

func contestant(season, position, age int, hometown string, lat, lon float64) roster.Contestant {
	return roster.Contestant{
		ID:                  "test",
		Name:                "Test Contestant",
		Season:              season,
		FinishingPosition:   position,
		AgeAtShow:           age,
		Hometown:            hometown,
		HometownCoordinates: roster.Coordinates{Latitude: lat, Longitude: lon},
	}
}

func TestEvaluateNumericBands(t *testing.T) {
	secret := contestant(8, 4, 30, "Chicago, Illinois", 41.8781, -87.6298)

	tests := []struct {
		name    string
		season  int
		wantV   Verdict
		wantDir Direction
	}{
		{"exact match", 8, VerdictCorrect, ""},
		{"one below", 7, VerdictClose, DirectionHigher},
		{"three below", 5, VerdictClose, DirectionHigher},
		{"four below", 4, VerdictWrong, DirectionHigher},
		{"one above", 9, VerdictClose, DirectionLower},
		{"three above", 11, VerdictClose, DirectionLower},
		{"four above", 12, VerdictWrong, DirectionLower},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guess := contestant(tt.season, 4, 30, "Chicago, Illinois", 41.8781, -87.6298)
			f := Evaluate(guess, secret)
			assert.Equal(t, tt.wantV, f.Season)
			assert.Equal(t, tt.wantDir, f.SeasonDirection)
		})
	}
}

func TestEvaluateAgeMirrorsSeason(t *testing.T) {
	secret := contestant(8, 4, 30, "Chicago, Illinois", 41.8781, -87.6298)

	guess := contestant(8, 4, 26, "Chicago, Illinois", 41.8781, -87.6298)
	f := Evaluate(guess, secret)
	assert.Equal(t, VerdictWrong, f.Age)
	assert.Equal(t, DirectionHigher, f.AgeDirection)

	guess.AgeAtShow = 33
	f = Evaluate(guess, secret)
	assert.Equal(t, VerdictClose, f.Age)
	assert.Equal(t, DirectionLower, f.AgeDirection)
}

// Finishing position is ranked, not scalar: position 1 beats position 5, so
// the hint points the opposite way from season and age.
func TestEvaluatePositionDirectionInverted(t *testing.T) {
	secret := contestant(8, 4, 30, "Chicago, Illinois", 41.8781, -87.6298)

	t.Run("guess placed better than secret", func(t *testing.T) {
		guess := contestant(8, 1, 30, "Chicago, Illinois", 41.8781, -87.6298)
		f := Evaluate(guess, secret)
		assert.Equal(t, VerdictClose, f.Position)
		assert.Equal(t, DirectionLower, f.PositionDirection)
	})

	t.Run("guess placed worse than secret", func(t *testing.T) {
		guess := contestant(8, 10, 30, "Chicago, Illinois", 41.8781, -87.6298)
		f := Evaluate(guess, secret)
		assert.Equal(t, VerdictWrong, f.Position)
		assert.Equal(t, DirectionHigher, f.PositionDirection)
	})

	t.Run("same gap, opposite hint from season", func(t *testing.T) {
		// Both attributes are 2 below the secret's value; season says the
		// secret is higher, position says it is lower.
		guess := contestant(6, 2, 30, "Chicago, Illinois", 41.8781, -87.6298)
		f := Evaluate(guess, secret)
		assert.Equal(t, DirectionHigher, f.SeasonDirection)
		assert.Equal(t, DirectionLower, f.PositionDirection)
	})
}

func TestEvaluateHometownBands(t *testing.T) {
	secret := contestant(8, 4, 30, "Miami, Florida", 25.7617, -80.1918)

	t.Run("identical label is correct", func(t *testing.T) {
		guess := contestant(1, 1, 20, "Miami, Florida", 25.7617, -80.1918)
		f := Evaluate(guess, secret)
		assert.Equal(t, VerdictCorrect, f.Hometown)
	})

	t.Run("different label within 75 miles is close", func(t *testing.T) {
		guess := contestant(1, 1, 20, "Fort Lauderdale, Florida", 26.1224, -80.1373)
		f := Evaluate(guess, secret)
		assert.Equal(t, VerdictClose, f.Hometown)
	})

	t.Run("far away is wrong", func(t *testing.T) {
		guess := contestant(1, 1, 20, "Seattle, Washington", 47.6062, -122.3321)
		f := Evaluate(guess, secret)
		assert.Equal(t, VerdictWrong, f.Hometown)
	})
}

func TestEvaluateAllCorrect(t *testing.T) {
	secret := contestant(8, 4, 30, "Chicago, Illinois", 41.8781, -87.6298)

	f := Evaluate(secret, secret)
	require.True(t, f.AllCorrect())
	assert.Empty(t, f.SeasonDirection)
	assert.Empty(t, f.PositionDirection)
	assert.Empty(t, f.AgeDirection)

	near := contestant(8, 4, 30, "Evanston, Illinois", 42.0451, -87.6877)
	assert.False(t, Evaluate(near, secret).AllCorrect())
}

func TestEvaluateDeterministic(t *testing.T) {
	secret := contestant(8, 4, 30, "Chicago, Illinois", 41.8781, -87.6298)
	guess := contestant(5, 7, 34, "Miami, Florida", 25.7617, -80.1918)

	first := Evaluate(guess, secret)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(guess, secret))
	}
}
