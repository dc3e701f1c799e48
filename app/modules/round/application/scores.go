package roundservice

import (
	"context"
	"errors"
	"fmt"

	roundevents "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/domain/events"
	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// RecordHoleScore writes one gross score, replacing any earlier entry for the
// same player and hole. Gross scores are the only persisted scoring fact;
// everything downstream recomputes from the full set, so a correction here
// needs no cascade. Publishes round.scores.updated.v1 so clients re-fetch.
func (s *RoundService) RecordHoleScore(ctx context.Context, input RecordScoreInput) (ScoreOperationResult, error) {
	return withTelemetry(s, ctx, "RecordHoleScore", func(ctx context.Context) (ScoreOperationResult, error) {
		if input.HoleNumber < 1 || input.HoleNumber > game.HolesPerRound {
			return results.Failure[rounddb.HoleScore, OperationFailure](&OperationFailure{
				Reason: fmt.Sprintf("hole number %d out of range", input.HoleNumber),
			}), nil
		}
		if input.GrossStrokes < 1 {
			return results.Failure[rounddb.HoleScore, OperationFailure](&OperationFailure{
				Reason: fmt.Sprintf("gross strokes %d must be at least 1", input.GrossStrokes),
			}), nil
		}

		round, err := s.repo.GetRound(ctx, input.RoundID)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return results.Failure[rounddb.HoleScore, OperationFailure](&OperationFailure{Reason: "round not found"}), nil
			}
			return ScoreOperationResult{}, err
		}
		if round.Status == rounddb.RoundStatusFinalized {
			return results.Failure[rounddb.HoleScore, OperationFailure](&OperationFailure{Reason: "round is finalized"}), nil
		}

		score := &rounddb.HoleScore{
			RoundID:      input.RoundID,
			PlayerID:     input.PlayerID,
			HoleNumber:   input.HoleNumber,
			GrossStrokes: input.GrossStrokes,
		}
		if err := s.repo.UpsertHoleScore(ctx, score); err != nil {
			s.logger.ErrorContext(ctx, "Failed to record hole score",
				attr.ExtractCorrelationID(ctx),
				attr.String("round_id", input.RoundID.String()),
				attr.String("player_id", input.PlayerID.String()),
				attr.Int("hole", input.HoleNumber),
				attr.Error(err),
			)
			return ScoreOperationResult{}, err
		}

		if round.Status == rounddb.RoundStatusScheduled {
			if err := s.repo.UpdateRoundStatus(ctx, round.ID, rounddb.RoundStatusInProgress); err != nil {
				s.logger.WarnContext(ctx, "Failed to mark round in progress",
					attr.String("round_id", round.ID.String()),
					attr.Error(err),
				)
			}
		}

		s.publishRoundEvent(ctx, roundevents.ScoresUpdatedTopic, round.TripID, roundevents.ScoresUpdatedPayloadV1{
			TripID:     round.TripID,
			RoundID:    round.ID,
			PlayerID:   input.PlayerID,
			HoleNumber: input.HoleNumber,
		})
		return results.Success[rounddb.HoleScore, OperationFailure](score), nil
	})
}
