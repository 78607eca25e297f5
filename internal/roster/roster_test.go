package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	require.NoError(t, Init())
	assert.Greater(t, Len(), 100, "embedded dataset should be substantial")
}

func TestByID(t *testing.T) {
	require.NoError(t, Init())

	c, ok := ByID("bebe-zahara-benet")
	require.True(t, ok)
	assert.Equal(t, "BeBe Zahara Benet", c.Name)
	assert.Equal(t, 1, c.Season)
	assert.Equal(t, 1, c.FinishingPosition)
	assert.Equal(t, "Minneapolis, Minnesota", c.Hometown)

	_, ok = ByID("nobody-at-all")
	assert.False(t, ok)
}

func TestByName(t *testing.T) {
	require.NoError(t, Init())

	t.Run("case insensitive substring", func(t *testing.T) {
		lower := ByName("bebe")
		upper := ByName("BEBE")
		require.NotEmpty(t, lower)
		assert.Equal(t, lower, upper)
		for _, c := range lower {
			assert.Contains(t, strings.ToLower(c.Name), "bebe")
		}
	})

	t.Run("blank query matches nothing", func(t *testing.T) {
		assert.Empty(t, ByName(""))
		assert.Empty(t, ByName("   "))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, ByName("zzzzzzz"))
	})
}

func TestByMode(t *testing.T) {
	require.NoError(t, Init())

	t.Run("no flags returns full pool", func(t *testing.T) {
		assert.Len(t, ByMode(Mode{}), Len())
	})

	t.Run("first ten seasons", func(t *testing.T) {
		pool := ByMode(Mode{FirstTenSeasons: true})
		require.NotEmpty(t, pool)
		assert.Less(t, len(pool), Len())
		for _, c := range pool {
			assert.LessOrEqual(t, c.Season, 10)
		}
	})

	t.Run("top five only", func(t *testing.T) {
		pool := ByMode(Mode{TopFiveOnly: true})
		require.NotEmpty(t, pool)
		assert.Less(t, len(pool), Len())
		for _, c := range pool {
			assert.LessOrEqual(t, c.FinishingPosition, 5)
		}
	})

	t.Run("both flags", func(t *testing.T) {
		pool := ByMode(Mode{FirstTenSeasons: true, TopFiveOnly: true})
		require.NotEmpty(t, pool)
		for _, c := range pool {
			assert.LessOrEqual(t, c.Season, 10)
			assert.LessOrEqual(t, c.FinishingPosition, 5)
		}
		assert.LessOrEqual(t, len(pool), len(ByMode(Mode{FirstTenSeasons: true})))
		assert.LessOrEqual(t, len(pool), len(ByMode(Mode{TopFiveOnly: true})))
	})
}

func TestModeKeys(t *testing.T) {
	tests := []struct {
		mode Mode
		key  ModeKey
	}{
		{Mode{}, ModeDefault},
		{Mode{FirstTenSeasons: true}, ModeFirstTen},
		{Mode{TopFiveOnly: true}, ModeTopFive},
		{Mode{FirstTenSeasons: true, TopFiveOnly: true}, ModeFirstTenTopFive},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.key, tt.mode.Key())
			parsed, err := ParseModeKey(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, parsed)
		})
	}

	_, err := ParseModeKey("hardcore")
	assert.Error(t, err)
}

func TestQueriesReturnCopies(t *testing.T) {
	require.NoError(t, Init())

	all := All()
	orig := all[0].Name
	all[0].Name = "mutated"

	again := All()
	assert.Equal(t, orig, again[0].Name, "callers must not be able to mutate the roster")
}
