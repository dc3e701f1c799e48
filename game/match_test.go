package game

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// outcomes builds a sequence from a compact string: '1' side1 wins, '2' side2
// wins, 'h' halved.
func outcomes(s string) []HoleOutcome {
	out := make([]HoleOutcome, len(s))
	for i, c := range s {
		switch c {
		case '1':
			out[i] = HoleWonBySide1
		case '2':
			out[i] = HoleWonBySide2
		default:
			out[i] = HoleHalved
		}
	}
	return out
}

func TestComputeMatchState_Dormie(t *testing.T) {
	// Side1 wins holes 1-3, halves through 15.
	state, err := ComputeMatchState(outcomes("111hhhhhhhhhhhh"))
	require.NoError(t, err)
	assert.Equal(t, 3, state.Side1Lead)
	assert.Equal(t, 15, state.HolesPlayed)
	assert.True(t, state.IsDormie)
	assert.False(t, state.IsComplete)
	assert.Equal(t, MatchDormie, state.Status)
	assert.Equal(t, "3 UP", state.DisplayText)
	assert.Empty(t, state.ResultText)
}

func TestComputeMatchState_ClosedOut(t *testing.T) {
	// Same match, side1 also wins 16: 4 up with 2 to play.
	state, err := ComputeMatchState(outcomes("111hhhhhhhhhhhh1"))
	require.NoError(t, err)
	assert.Equal(t, 4, state.Side1Lead)
	assert.Equal(t, 16, state.HolesPlayed)
	assert.True(t, state.IsComplete)
	assert.False(t, state.IsDormie)
	assert.Equal(t, MatchComplete, state.Status)
	assert.Equal(t, "4&2", state.ResultText)
	assert.Equal(t, 1, state.LeadingSide)
}

func TestComputeMatchState_HalvedAt18(t *testing.T) {
	state, err := ComputeMatchState(outcomes("121212121212121212"))
	require.NoError(t, err)
	assert.Equal(t, 18, state.HolesPlayed)
	assert.True(t, state.IsComplete)
	assert.Equal(t, MatchComplete18, state.Status)
	assert.Equal(t, "AS", state.ResultText)
	assert.Equal(t, "AS", state.DisplayText)
	assert.Equal(t, 0, state.LeadingSide)
}

func TestComputeMatchState_DecidedAt18(t *testing.T) {
	// All square through 17, side2 takes the last.
	state, err := ComputeMatchState(outcomes("hhhhhhhhhhhhhhhhh2"))
	require.NoError(t, err)
	assert.True(t, state.IsComplete)
	assert.Equal(t, MatchComplete18, state.Status)
	assert.Equal(t, "1 UP", state.ResultText)
	assert.Equal(t, 2, state.LeadingSide)
}

func TestComputeMatchState_IgnoresHolesAfterCompletion(t *testing.T) {
	// 10&8: decided after hole 10; the rest cannot change the result.
	decided, err := ComputeMatchState(outcomes("1111111111"))
	require.NoError(t, err)
	require.True(t, decided.IsComplete)
	require.Equal(t, "10&8", decided.ResultText)

	withExtras, err := ComputeMatchState(outcomes("111111111122222222"))
	require.NoError(t, err)
	assert.Equal(t, decided, withExtras)
}

func TestComputeMatchState_Empty(t *testing.T) {
	state, err := ComputeMatchState(nil)
	require.NoError(t, err)
	assert.Equal(t, MatchInProgress, state.Status)
	assert.Equal(t, 0, state.HolesPlayed)
	assert.Equal(t, "AS", state.DisplayText)
}

func TestComputeMatchState_LeadNeverExceedsHolesPlayed(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(HolesPerRound + 1)
		seq := make([]HoleOutcome, n)
		for i := range seq {
			seq[i] = HoleOutcome(rng.Intn(3) - 1)
		}
		state, err := ComputeMatchState(seq)
		require.NoError(t, err)
		assert.LessOrEqual(t, abs(state.Side1Lead), state.HolesPlayed)
		if state.IsDormie {
			assert.Equal(t, HolesPerRound-state.HolesPlayed, abs(state.Side1Lead))
			assert.False(t, state.IsComplete)
		}
	}
}

func TestComputeMatchState_Invalid(t *testing.T) {
	_, err := ComputeMatchState(make([]HoleOutcome, 19))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeMatchState([]HoleOutcome{5})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeMatchState_Progressions(t *testing.T) {
	tests := []struct {
		name     string
		outcomes string
		want     MatchState
	}{
		{
			name:     "all square early",
			outcomes: "12h",
			want: MatchState{
				Status:      MatchInProgress,
				HolesPlayed: 3,
				DisplayText: "AS",
			},
		},
		{
			name:     "side2 two up",
			outcomes: "h22h",
			want: MatchState{
				Status:      MatchInProgress,
				Side1Lead:   -2,
				HolesPlayed: 4,
				LeadingSide: 2,
				DisplayText: "2 UP",
			},
		},
		{
			name:     "side2 closes it out",
			outcomes: "2222222222",
			want: MatchState{
				Status:      MatchComplete,
				Side1Lead:   -10,
				HolesPlayed: 10,
				IsComplete:  true,
				LeadingSide: 2,
				DisplayText: "10 UP",
				ResultText:  "10&8",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeMatchState(outcomes(tt.outcomes))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("match state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHoleOutcomes(t *testing.T) {
	got, err := HoleOutcomes([]int{3, 4, 5}, []int{4, 4, 4})
	require.NoError(t, err)
	assert.Equal(t, []HoleOutcome{HoleWonBySide1, HoleHalved, HoleWonBySide2}, got)

	_, err = HoleOutcomes([]int{3, 4}, []int{4})
	require.ErrorIs(t, err, ErrIncompleteHoleSequence)
}

func TestStrokePlayState(t *testing.T) {
	mid, err := StrokePlayState(9)
	require.NoError(t, err)
	assert.False(t, mid.IsComplete)
	assert.Equal(t, 9, mid.HolesPlayed)

	done, err := StrokePlayState(18)
	require.NoError(t, err)
	assert.True(t, done.IsComplete)

	_, err = StrokePlayState(19)
	require.ErrorIs(t, err, ErrInvalidInput)
}
