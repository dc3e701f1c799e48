package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMaxScore(t *testing.T) {
	tripleBogey := 3

	t.Run("caps relative to par", func(t *testing.T) {
		assert.Equal(t, 7, ApplyMaxScore(9, 4, &tripleBogey))
		assert.Equal(t, 8, ApplyMaxScore(9, 5, &tripleBogey))
		assert.Equal(t, 6, ApplyMaxScore(6, 4, &tripleBogey), "under the cap is untouched")
	})

	t.Run("nil cap means uncapped", func(t *testing.T) {
		assert.Equal(t, 12, ApplyMaxScore(12, 4, nil))
	})

	t.Run("idempotent", func(t *testing.T) {
		for gross := 1; gross <= 12; gross++ {
			once := ApplyMaxScore(gross, 4, &tripleBogey)
			assert.Equal(t, once, ApplyMaxScore(once, 4, &tripleBogey))
		}
	})
}

func TestNetScore(t *testing.T) {
	assert.Equal(t, 4, NetScore(5, 1))
	assert.Equal(t, 3, NetScore(5, 2))
	assert.Equal(t, 5, NetScore(5, 0))
}

func TestHoleNet_CapsGrossBeforeStrokes(t *testing.T) {
	tripleBogey := 3
	hole := Hole{Number: 7, Par: 4, StrokeIndex: 2}

	// Gross 10 caps to 7 first, then one stroke off: net 6, not 10-1 capped.
	net, err := HoleNet(10, hole, 5, &tripleBogey)
	require.NoError(t, err)
	assert.Equal(t, 6, net)

	_, err = HoleNet(0, hole, 5, &tripleBogey)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestTeamHoleNet(t *testing.T) {
	t.Run("fourball takes the better ball", func(t *testing.T) {
		net, err := TeamHoleNet(FormatFourball, []int{5, 3})
		require.NoError(t, err)
		assert.Equal(t, 3, net)
	})

	t.Run("foursomes is one shared ball", func(t *testing.T) {
		net, err := TeamHoleNet(FormatFoursomes, []int{4})
		require.NoError(t, err)
		assert.Equal(t, 4, net)

		_, err = TeamHoleNet(FormatFoursomes, []int{4, 5})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty side is invalid", func(t *testing.T) {
		_, err := TeamHoleNet(FormatSingles, nil)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestTotalNet(t *testing.T) {
	assert.Equal(t, 12, TotalNet([]int{4, 3, 5}))
	assert.Equal(t, 0, TotalNet(nil))
}
