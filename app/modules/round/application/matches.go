package roundservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// CreateMatch pairs two sides. Side sizes must fit the round's format: two
// players per side for team formats, one for singles. Every player must be on
// the trip roster and appear on only one side.
func (s *RoundService) CreateMatch(ctx context.Context, input CreateMatchInput) (MatchOperationResult, error) {
	return withTelemetry(s, ctx, "CreateMatch", func(ctx context.Context) (MatchOperationResult, error) {
		round, err := s.repo.GetRound(ctx, input.RoundID)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return results.Failure[rounddb.Match, OperationFailure](&OperationFailure{Reason: "round not found"}), nil
			}
			return MatchOperationResult{}, err
		}
		if round.Status == rounddb.RoundStatusFinalized {
			return results.Failure[rounddb.Match, OperationFailure](&OperationFailure{Reason: "round is finalized"}), nil
		}

		sideSize := 1
		if round.Format.IsTeam() {
			sideSize = 2
		}
		if len(input.Side1Players) != sideSize || len(input.Side2Players) != sideSize {
			return results.Failure[rounddb.Match, OperationFailure](&OperationFailure{
				Reason: fmt.Sprintf("%s matches need %d player(s) per side", round.Format, sideSize),
			}), nil
		}

		seen := make(map[uuid.UUID]bool)
		for _, playerID := range append(append([]uuid.UUID{}, input.Side1Players...), input.Side2Players...) {
			if seen[playerID] {
				return results.Failure[rounddb.Match, OperationFailure](&OperationFailure{
					Reason: "player " + playerID.String() + " appears twice",
				}), nil
			}
			seen[playerID] = true
			player, err := s.trips.GetPlayer(ctx, playerID)
			if err != nil {
				if errors.Is(err, tripdb.ErrNotFound) {
					return results.Failure[rounddb.Match, OperationFailure](&OperationFailure{
						Reason: "player " + playerID.String() + " not found",
					}), nil
				}
				return MatchOperationResult{}, err
			}
			if player.TripID != round.TripID {
				return results.Failure[rounddb.Match, OperationFailure](&OperationFailure{
					Reason: "player " + playerID.String() + " is not on this trip",
				}), nil
			}
		}

		match := &rounddb.Match{
			RoundID:      input.RoundID,
			Side1Players: input.Side1Players,
			Side2Players: input.Side2Players,
		}
		if err := s.repo.CreateMatch(ctx, match); err != nil {
			return MatchOperationResult{}, err
		}
		return results.Success[rounddb.Match, OperationFailure](match), nil
	})
}

// ListMatches lists a round's matches in creation order.
func (s *RoundService) ListMatches(ctx context.Context, roundID uuid.UUID) ([]rounddb.Match, error) {
	return s.repo.ListMatches(ctx, roundID)
}
