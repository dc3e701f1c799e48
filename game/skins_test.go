package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skinsEntrant(id string, nets ...int) SkinsEntrant {
	byHole := make(map[int]int, len(nets))
	for i, n := range nets {
		byHole[i+1] = n
	}
	return SkinsEntrant{ID: id, NetByHole: byHole}
}

func TestComputeSkins_CarryoverAccumulates(t *testing.T) {
	// Four players at $20: pot is $80. Holes 1-2 tie, hole 3 has a unique
	// winner who collects the whole accumulated value.
	entrants := []SkinsEntrant{
		skinsEntrant("a", 4, 3, 3),
		skinsEntrant("b", 4, 3, 4),
		skinsEntrant("c", 5, 4, 5),
		skinsEntrant("d", 5, 4, 5),
	}
	result, err := ComputeSkins(entrants, 3, 2000, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(8000), result.TotalPotCents)
	assert.Equal(t, 1, result.SkinsAwarded)
	assert.Equal(t, int64(8000), result.SkinValueCents)

	require.Len(t, result.Holes, 3)
	assert.Empty(t, result.Holes[0].WinnerID)
	assert.Empty(t, result.Holes[1].WinnerID)
	assert.Equal(t, "a", result.Holes[2].WinnerID)
	assert.Equal(t, int64(8000), result.Holes[2].ValueCents)
	assert.Equal(t, 3, result.Holes[2].HolesIncluded)

	assert.Equal(t, "a", result.Entrants[0].ID)
	assert.Equal(t, 1, result.Entrants[0].SkinsWon)
	assert.Equal(t, int64(8000), result.Entrants[0].MoneyWonCents)
}

func TestComputeSkins_TiedMinimumHasNoWinner(t *testing.T) {
	entrants := []SkinsEntrant{
		skinsEntrant("a", 3),
		skinsEntrant("b", 3),
		skinsEntrant("c", 5),
	}
	result, err := ComputeSkins(entrants, 1, 1000, 3)
	require.NoError(t, err)
	assert.Empty(t, result.Holes[0].WinnerID)
	assert.Nil(t, result.Holes[0].WinnerNet)
	assert.Equal(t, 0, result.SkinsAwarded)
	assert.Equal(t, int64(3000), result.UndistributedPot)
}

func TestComputeSkins_PotConservedExactly(t *testing.T) {
	// $10 x 3 players = $30.00 across 7 skins does not divide evenly; the
	// remainder cents land on the earliest payouts and nothing leaks.
	entrants := []SkinsEntrant{
		skinsEntrant("a", 3, 4, 3, 4, 3, 4, 3),
		skinsEntrant("b", 4, 3, 4, 3, 4, 3, 4),
		skinsEntrant("c", 5, 5, 5, 5, 5, 5, 5),
	}
	result, err := ComputeSkins(entrants, 7, 1000, 3)
	require.NoError(t, err)
	require.Equal(t, 7, result.SkinsAwarded)

	var distributed int64
	for _, e := range result.Entrants {
		distributed += e.MoneyWonCents
	}
	assert.Equal(t, result.TotalPotCents, distributed)

	// 3000 / 7 = 428 remainder 4: four payouts of 429, three of 428.
	values := map[int64]int{}
	for _, h := range result.Holes {
		values[h.ValueCents]++
	}
	assert.Equal(t, 4, values[429])
	assert.Equal(t, 3, values[428])
}

func TestComputeSkins_MissingScoresDoNotQualify(t *testing.T) {
	// Only one entrant has a score on hole 2: a unique minimum among one.
	entrants := []SkinsEntrant{
		{ID: "a", NetByHole: map[int]int{1: 4, 2: 6}},
		{ID: "b", NetByHole: map[int]int{1: 4}},
	}
	result, err := ComputeSkins(entrants, 2, 500, 2)
	require.NoError(t, err)
	assert.Empty(t, result.Holes[0].WinnerID, "hole 1 tied")
	assert.Equal(t, "a", result.Holes[1].WinnerID)
	assert.Equal(t, 2, result.Holes[1].HolesIncluded)
}

func TestComputeSkins_TeamPoolStakesPerPlayer(t *testing.T) {
	// Two team entrants but four staking players.
	entrants := []SkinsEntrant{
		skinsEntrant("team-1", 3),
		skinsEntrant("team-2", 4),
	}
	result, err := ComputeSkins(entrants, 1, 2500, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), result.TotalPotCents)
	assert.Equal(t, int64(10000), result.Entrants[0].MoneyWonCents)
}

func TestComputeSkins_Invalid(t *testing.T) {
	_, err := ComputeSkins(nil, 19, 100, 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeSkins([]SkinsEntrant{{ID: "a"}, {ID: "a"}}, 1, 100, 2)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeSkins([]SkinsEntrant{{ID: "a"}, {ID: "b"}}, 1, 100, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
}
