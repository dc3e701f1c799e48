package roundservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// DefineTeeSheet validates and stores a round's 18-hole tee sheet, replacing
// any earlier one. The sheet must be a full permutation of hole numbers and
// stroke indexes with pars 3..5; anything else is rejected before the write.
func (s *RoundService) DefineTeeSheet(ctx context.Context, roundID uuid.UUID, holes []game.Hole) (TeeSheetOperationResult, error) {
	return withTelemetry(s, ctx, "DefineTeeSheet", func(ctx context.Context) (TeeSheetOperationResult, error) {
		if err := game.ValidateHoleSet(holes); err != nil {
			return results.Failure[[]game.Hole, OperationFailure](&OperationFailure{Reason: err.Error()}), nil
		}

		round, err := s.repo.GetRound(ctx, roundID)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return results.Failure[[]game.Hole, OperationFailure](&OperationFailure{Reason: "round not found"}), nil
			}
			return TeeSheetOperationResult{}, err
		}
		if round.Status == rounddb.RoundStatusFinalized {
			return results.Failure[[]game.Hole, OperationFailure](&OperationFailure{Reason: "round is finalized"}), nil
		}

		rows := make([]rounddb.TeeHole, len(holes))
		for i, h := range holes {
			rows[i] = rounddb.TeeHole{
				RoundID:     roundID,
				HoleNumber:  h.Number,
				Par:         h.Par,
				StrokeIndex: h.StrokeIndex,
			}
		}
		if err := s.repo.ReplaceTeeSheet(ctx, roundID, rows); err != nil {
			s.logger.ErrorContext(ctx, "Failed to store tee sheet",
				attr.ExtractCorrelationID(ctx),
				attr.String("round_id", roundID.String()),
				attr.Error(err),
			)
			return TeeSheetOperationResult{}, err
		}
		return results.Success[[]game.Hole, OperationFailure](&holes), nil
	})
}

// GetTeeSheet returns the round's tee sheet as engine holes.
func (s *RoundService) GetTeeSheet(ctx context.Context, roundID uuid.UUID) ([]game.Hole, error) {
	rows, err := s.repo.GetTeeSheet(ctx, roundID)
	if err != nil {
		return nil, err
	}
	holes := make([]game.Hole, len(rows))
	for i, row := range rows {
		holes[i] = game.Hole{
			Number:      row.HoleNumber,
			Par:         row.Par,
			StrokeIndex: row.StrokeIndex,
		}
	}
	return holes, nil
}
