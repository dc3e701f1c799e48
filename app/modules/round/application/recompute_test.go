package roundservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/mock/gomock"

	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	eventbusmocks "github.com/Broken-Tee-Society/trip-tracker/eventbus/mocks"
	"github.com/Broken-Tee-Society/trip-tracker/game"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability"
)

func newTestService(t *testing.T, repo rounddb.Repository, trips tripdb.Repository) (*RoundService, *eventbusmocks.MockEventBus) {
	t.Helper()
	ctrl := gomock.NewController(t)
	bus := eventbusmocks.NewMockEventBus(ctrl)
	tracer := noop.NewTracerProvider().Tracer("test")
	svc := NewRoundService(repo, trips, bus, observability.NoOpLogger, observability.NoOpMetrics{}, tracer)
	return svc, bus
}

// flatTeeSheet is 18 par-4 holes with stroke index equal to hole number.
func flatTeeSheet(roundID uuid.UUID) []rounddb.TeeHole {
	holes := make([]rounddb.TeeHole, 18)
	for i := range holes {
		holes[i] = rounddb.TeeHole{
			RoundID:     roundID,
			HoleNumber:  i + 1,
			Par:         4,
			StrokeIndex: i + 1,
		}
	}
	return holes
}

// TestComputeResults_SinglesRound drives the full derivation for a singles
// match between a scratch player and a 9 handicap where both shoot level
// fours. The 9 takes a stroke on the first nine holes, closes the match out
// 9&8, sweeps nine skins, and banks a birdie streak in TILT.
func TestComputeResults_SinglesRound(t *testing.T) {
	ctx := context.Background()
	tripID := uuid.New()
	roundID := uuid.New()
	scratch := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	nine := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	round := &rounddb.Round{
		ID:            roundID,
		TripID:        tripID,
		CourseName:    "Dunes",
		CourseSlope:   113,
		Format:        game.FormatSingles,
		SkinsEntryFee: 100,
		TiltEntryFee:  500,
		Status:        rounddb.RoundStatusInProgress,
	}
	match := rounddb.Match{
		ID:           uuid.New(),
		RoundID:      roundID,
		Side1Players: []uuid.UUID{scratch},
		Side2Players: []uuid.UUID{nine},
	}

	var scores []rounddb.HoleScore
	for hole := 1; hole <= 18; hole++ {
		for _, playerID := range []uuid.UUID{scratch, nine} {
			scores = append(scores, rounddb.HoleScore{
				RoundID:      roundID,
				PlayerID:     playerID,
				HoleNumber:   hole,
				GrossStrokes: 4,
			})
		}
	}

	repo := NewFakeRoundRepository()
	repo.GetRoundFunc = func(ctx context.Context, id uuid.UUID) (*rounddb.Round, error) {
		return round, nil
	}
	repo.GetTeeSheetFunc = func(ctx context.Context, id uuid.UUID) ([]rounddb.TeeHole, error) {
		return flatTeeSheet(roundID), nil
	}
	repo.ListMatchesFunc = func(ctx context.Context, id uuid.UUID) ([]rounddb.Match, error) {
		return []rounddb.Match{match}, nil
	}
	repo.ListHoleScoresFunc = func(ctx context.Context, id uuid.UUID) ([]rounddb.HoleScore, error) {
		return scores, nil
	}
	trips := &FakeTripReader{
		ListPlayersFunc: func(ctx context.Context, id uuid.UUID) ([]tripdb.Player, error) {
			return []tripdb.Player{
				{ID: scratch, TripID: tripID, Name: "Scratch", HandicapIndex: 0},
				{ID: nine, TripID: tripID, Name: "Nine", HandicapIndex: 9},
			}, nil
		},
	}

	svc, _ := newTestService(t, repo, trips)
	results, err := svc.ComputeResults(ctx, roundID)
	require.NoError(t, err)

	require.Len(t, results.Players, 2)
	lineByID := map[uuid.UUID]PlayerLine{}
	for _, line := range results.Players {
		lineByID[line.PlayerID] = line
	}
	assert.Equal(t, 0, lineByID[scratch].PlayingHandicap)
	assert.Equal(t, 72, lineByID[scratch].NetTotal)
	assert.Equal(t, 9, lineByID[nine].PlayingHandicap)
	assert.Equal(t, 63, lineByID[nine].NetTotal)
	assert.Equal(t, 72, lineByID[nine].GrossTotal)

	require.Len(t, results.Matches, 1)
	state := results.Matches[0].State
	assert.Equal(t, game.MatchComplete, state.Status)
	assert.Equal(t, "9&8", state.ResultText)
	assert.Equal(t, 2, state.LeadingSide)

	require.NotNil(t, results.Skins)
	assert.Equal(t, int64(200), results.Skins.TotalPotCents)
	assert.Equal(t, 9, results.Skins.SkinsAwarded)
	assert.Equal(t, nine.String(), results.Skins.Entrants[0].ID)
	assert.Equal(t, int64(200), results.Skins.Entrants[0].MoneyWonCents)

	require.Len(t, results.Tilt, 2)
	tiltByID := map[string]game.TiltResult{}
	for _, line := range results.Tilt {
		tiltByID[line.PlayerID] = line
	}
	assert.Equal(t, 0, tiltByID[scratch.String()].TotalPoints)
	// Nine net birdies holes 1-9: 2, 4, 6 then 8 per hole at the 4x cap.
	assert.Equal(t, 60, tiltByID[nine.String()].TotalPoints)
	assert.Equal(t, int64(1000), results.TiltPotCents)
}

// TestComputeResults_FourballTeams checks the team path: best-ball side nets
// and one skins entrant per side.
func TestComputeResults_FourballTeams(t *testing.T) {
	ctx := context.Background()
	tripID := uuid.New()
	roundID := uuid.New()
	playerIDs := []uuid.UUID{
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		uuid.MustParse("44444444-4444-4444-4444-444444444444"),
	}

	round := &rounddb.Round{
		ID:            roundID,
		TripID:        tripID,
		CourseName:    "Quarry",
		CourseSlope:   113,
		Format:        game.FormatFourball,
		SkinsEntryFee: 100,
		SkinsTeamRule: rounddb.SkinsTeamRuleBestBall,
		Status:        rounddb.RoundStatusInProgress,
	}
	match := rounddb.Match{
		ID:           uuid.New(),
		RoundID:      roundID,
		Side1Players: playerIDs[:2],
		Side2Players: playerIDs[2:],
	}

	// Everyone scratch; side 1's first player birdies hole 1, all else fours.
	var scores []rounddb.HoleScore
	for hole := 1; hole <= 18; hole++ {
		for _, playerID := range playerIDs {
			gross := 4
			if hole == 1 && playerID == playerIDs[0] {
				gross = 3
			}
			scores = append(scores, rounddb.HoleScore{
				RoundID:      roundID,
				PlayerID:     playerID,
				HoleNumber:   hole,
				GrossStrokes: gross,
			})
		}
	}

	repo := NewFakeRoundRepository()
	repo.GetRoundFunc = func(ctx context.Context, id uuid.UUID) (*rounddb.Round, error) {
		return round, nil
	}
	repo.GetTeeSheetFunc = func(ctx context.Context, id uuid.UUID) ([]rounddb.TeeHole, error) {
		return flatTeeSheet(roundID), nil
	}
	repo.ListMatchesFunc = func(ctx context.Context, id uuid.UUID) ([]rounddb.Match, error) {
		return []rounddb.Match{match}, nil
	}
	repo.ListHoleScoresFunc = func(ctx context.Context, id uuid.UUID) ([]rounddb.HoleScore, error) {
		return scores, nil
	}
	trips := &FakeTripReader{
		ListPlayersFunc: func(ctx context.Context, id uuid.UUID) ([]tripdb.Player, error) {
			players := make([]tripdb.Player, len(playerIDs))
			for i, playerID := range playerIDs {
				players[i] = tripdb.Player{ID: playerID, TripID: tripID, HandicapIndex: 0}
			}
			return players, nil
		},
	}

	svc, _ := newTestService(t, repo, trips)
	results, err := svc.ComputeResults(ctx, roundID)
	require.NoError(t, err)

	require.Len(t, results.Matches, 1)
	state := results.Matches[0].State
	assert.True(t, state.IsComplete)
	assert.Equal(t, 1, state.LeadingSide)
	assert.Equal(t, "1 UP", state.ResultText)

	require.NotNil(t, results.Skins)
	require.Len(t, results.Skins.Entrants, 2)
	assert.Equal(t, int64(400), results.Skins.TotalPotCents)
	assert.Equal(t, 1, results.Skins.SkinsAwarded)
	// The lone skin takes the whole pot.
	assert.Equal(t, int64(400), results.Skins.Entrants[0].MoneyWonCents)
}

// TestComputeResults_ScoreGapFails asserts that a score recorded beyond a gap
// surfaces as a data-integrity error rather than being skipped.
func TestComputeResults_ScoreGapFails(t *testing.T) {
	ctx := context.Background()
	roundID := uuid.New()
	playerID := uuid.New()

	round := &rounddb.Round{
		ID:          roundID,
		TripID:      uuid.New(),
		CourseSlope: 113,
		Format:      game.FormatStrokePlay,
		Status:      rounddb.RoundStatusInProgress,
	}
	repo := NewFakeRoundRepository()
	repo.GetRoundFunc = func(ctx context.Context, id uuid.UUID) (*rounddb.Round, error) {
		return round, nil
	}
	repo.GetTeeSheetFunc = func(ctx context.Context, id uuid.UUID) ([]rounddb.TeeHole, error) {
		return flatTeeSheet(roundID), nil
	}
	repo.ListHoleScoresFunc = func(ctx context.Context, id uuid.UUID) ([]rounddb.HoleScore, error) {
		return []rounddb.HoleScore{
			{RoundID: roundID, PlayerID: playerID, HoleNumber: 1, GrossStrokes: 4},
			{RoundID: roundID, PlayerID: playerID, HoleNumber: 2, GrossStrokes: 4},
			{RoundID: roundID, PlayerID: playerID, HoleNumber: 5, GrossStrokes: 4},
		}, nil
	}
	trips := &FakeTripReader{
		ListPlayersFunc: func(ctx context.Context, id uuid.UUID) ([]tripdb.Player, error) {
			return []tripdb.Player{{ID: playerID, HandicapIndex: 4}}, nil
		},
	}

	svc, _ := newTestService(t, repo, trips)
	_, err := svc.ComputeResults(ctx, roundID)
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrIncompleteHoleSequence)
}
