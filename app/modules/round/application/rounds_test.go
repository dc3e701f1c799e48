package roundservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
)

func TestRoundService_CreateRound(t *testing.T) {
	ctx := context.Background()
	tripID := uuid.New()
	tripStart := time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC)
	explicit := time.Date(2026, 5, 15, 7, 30, 0, 0, time.UTC)

	trips := &FakeTripReader{
		GetTripFunc: func(ctx context.Context, id uuid.UUID) (*tripdb.Trip, error) {
			if id != tripID {
				return nil, tripdb.ErrNotFound
			}
			return &tripdb.Trip{ID: tripID, StartDate: tripStart, HandicapConfig: game.DefaultHandicapPolicy()}, nil
		},
	}

	tests := []struct {
		name        string
		input       CreateRoundInput
		wantFailure string
		wantPublish bool
		check       func(t *testing.T, round *rounddb.Round)
	}{
		{
			name: "explicit tee time wins",
			input: CreateRoundInput{
				TripID:     tripID,
				CourseName: "Dunes",
				TeeTime:    &explicit,
				Format:     game.FormatFourball,
			},
			wantPublish: true,
			check: func(t *testing.T, round *rounddb.Round) {
				assert.Equal(t, explicit, round.TeeTime)
				assert.Equal(t, 113, round.CourseSlope)
				assert.Equal(t, rounddb.SkinsTeamRuleBestBall, round.SkinsTeamRule)
				assert.Equal(t, rounddb.RoundStatusScheduled, round.Status)
			},
		},
		{
			name: "parses natural language tee time",
			input: CreateRoundInput{
				TripID:      tripID,
				CourseName:  "Quarry",
				TeeTimeText: "friday at 8am",
				Format:      game.FormatSingles,
				CourseSlope: 131,
			},
			wantPublish: true,
			check: func(t *testing.T, round *rounddb.Round) {
				assert.Equal(t, 131, round.CourseSlope)
				assert.Equal(t, time.Friday, round.TeeTime.Weekday())
				assert.Equal(t, 8, round.TeeTime.Hour())
			},
		},
		{
			name:        "rejects missing course name",
			input:       CreateRoundInput{TripID: tripID, Format: game.FormatSingles, TeeTime: &explicit},
			wantFailure: "course name is required",
		},
		{
			name:        "rejects unknown format",
			input:       CreateRoundInput{TripID: tripID, CourseName: "Dunes", Format: "BINGO_BANGO", TeeTime: &explicit},
			wantFailure: "unknown format BINGO_BANGO",
		},
		{
			name: "rejects unparseable tee time",
			input: CreateRoundInput{
				TripID:      tripID,
				CourseName:  "Dunes",
				TeeTimeText: "whenever the fog lifts",
				Format:      game.FormatSingles,
			},
			wantFailure: "could not understand tee time whenever the fog lifts",
		},
		{
			name: "rejects negative entry fee",
			input: CreateRoundInput{
				TripID:             tripID,
				CourseName:         "Dunes",
				TeeTime:            &explicit,
				Format:             game.FormatSingles,
				SkinsEntryFeeCents: -100,
			},
			wantFailure: "entry fees cannot be negative",
		},
		{
			name: "rejects unknown trip",
			input: CreateRoundInput{
				TripID:     uuid.New(),
				CourseName: "Dunes",
				TeeTime:    &explicit,
				Format:     game.FormatSingles,
			},
			wantFailure: "trip not found",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewFakeRoundRepository()
			svc, bus := newTestService(t, repo, trips)
			if tc.wantPublish {
				bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			}

			result, err := svc.CreateRound(ctx, tc.input)
			require.NoError(t, err)
			if tc.wantFailure != "" {
				require.NotNil(t, result.Failure)
				assert.Equal(t, tc.wantFailure, result.Failure.Reason)
				return
			}
			require.NotNil(t, result.Success)
			if tc.check != nil {
				tc.check(t, result.Success)
			}
		})
	}
}

func TestRoundService_RecordHoleScore(t *testing.T) {
	ctx := context.Background()
	roundID := uuid.New()
	playerID := uuid.New()

	t.Run("upserts and publishes", func(t *testing.T) {
		repo := NewFakeRoundRepository()
		var marked string
		repo.UpdateRoundStatusFunc = func(ctx context.Context, id uuid.UUID, status string) error {
			marked = status
			return nil
		}
		repo.GetRoundFunc = func(ctx context.Context, id uuid.UUID) (*rounddb.Round, error) {
			return &rounddb.Round{ID: roundID, TripID: uuid.New(), Status: rounddb.RoundStatusScheduled}, nil
		}
		svc, bus := newTestService(t, repo, &FakeTripReader{})
		bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		result, err := svc.RecordHoleScore(ctx, RecordScoreInput{
			RoundID:      roundID,
			PlayerID:     playerID,
			HoleNumber:   7,
			GrossStrokes: 5,
		})
		require.NoError(t, err)
		require.NotNil(t, result.Success)
		assert.Equal(t, rounddb.RoundStatusInProgress, marked)
		assert.Contains(t, repo.Trace(), "UpsertHoleScore")
	})

	t.Run("rejects out of range hole", func(t *testing.T) {
		svc, _ := newTestService(t, NewFakeRoundRepository(), &FakeTripReader{})
		result, err := svc.RecordHoleScore(ctx, RecordScoreInput{
			RoundID:      roundID,
			PlayerID:     playerID,
			HoleNumber:   19,
			GrossStrokes: 4,
		})
		require.NoError(t, err)
		require.NotNil(t, result.Failure)
	})

	t.Run("rejects finalized round", func(t *testing.T) {
		repo := NewFakeRoundRepository()
		repo.GetRoundFunc = func(ctx context.Context, id uuid.UUID) (*rounddb.Round, error) {
			return &rounddb.Round{ID: roundID, Status: rounddb.RoundStatusFinalized}, nil
		}
		svc, _ := newTestService(t, repo, &FakeTripReader{})
		result, err := svc.RecordHoleScore(ctx, RecordScoreInput{
			RoundID:      roundID,
			PlayerID:     playerID,
			HoleNumber:   1,
			GrossStrokes: 4,
		})
		require.NoError(t, err)
		require.NotNil(t, result.Failure)
		assert.Equal(t, "round is finalized", result.Failure.Reason)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := NewFakeRoundRepository()
		boom := errors.New("db down")
		repo.UpsertHoleScoreFunc = func(ctx context.Context, score *rounddb.HoleScore) error {
			return boom
		}
		svc, _ := newTestService(t, repo, &FakeTripReader{})
		_, err := svc.RecordHoleScore(ctx, RecordScoreInput{
			RoundID:      roundID,
			PlayerID:     playerID,
			HoleNumber:   1,
			GrossStrokes: 4,
		})
		require.ErrorIs(t, err, boom)
	})
}

func TestRoundService_FinalizeRound(t *testing.T) {
	ctx := context.Background()
	roundID := uuid.New()
	playerID := uuid.New()

	scoresFor := func(holes int) []rounddb.HoleScore {
		out := make([]rounddb.HoleScore, holes)
		for i := range out {
			out[i] = rounddb.HoleScore{RoundID: roundID, PlayerID: playerID, HoleNumber: i + 1, GrossStrokes: 4}
		}
		return out
	}

	t.Run("finalizes a complete round", func(t *testing.T) {
		repo := NewFakeRoundRepository()
		repo.ListHoleScoresFunc = func(ctx context.Context, id uuid.UUID) ([]rounddb.HoleScore, error) {
			return scoresFor(18), nil
		}
		svc, bus := newTestService(t, repo, &FakeTripReader{})
		bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		result, err := svc.FinalizeRound(ctx, roundID)
		require.NoError(t, err)
		require.NotNil(t, result.Success)
		assert.Equal(t, rounddb.RoundStatusFinalized, result.Success.Status)
	})

	t.Run("rejects a partial round", func(t *testing.T) {
		repo := NewFakeRoundRepository()
		repo.ListHoleScoresFunc = func(ctx context.Context, id uuid.UUID) ([]rounddb.HoleScore, error) {
			return scoresFor(11), nil
		}
		svc, _ := newTestService(t, repo, &FakeTripReader{})

		result, err := svc.FinalizeRound(ctx, roundID)
		require.NoError(t, err)
		require.NotNil(t, result.Failure)
	})

	t.Run("rejects an empty round", func(t *testing.T) {
		repo := NewFakeRoundRepository()
		svc, _ := newTestService(t, repo, &FakeTripReader{})

		result, err := svc.FinalizeRound(ctx, roundID)
		require.NoError(t, err)
		require.NotNil(t, result.Failure)
		assert.Equal(t, "no scores recorded", result.Failure.Reason)
	})
}
