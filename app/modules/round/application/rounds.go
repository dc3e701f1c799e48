package roundservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	roundevents "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/domain/events"
	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// teeTimeParser understands phrases like "saturday 8am" or "tomorrow at 7:30".
var teeTimeParser = newTeeTimeParser()

func newTeeTimeParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// CreateRound schedules a round. The tee time comes from an explicit
// timestamp or from natural language parsed relative to the trip start date.
func (s *RoundService) CreateRound(ctx context.Context, input CreateRoundInput) (RoundOperationResult, error) {
	return withTelemetry(s, ctx, "CreateRound", func(ctx context.Context) (RoundOperationResult, error) {
		if input.CourseName == "" {
			return results.Failure[rounddb.Round, OperationFailure](&OperationFailure{Reason: "course name is required"}), nil
		}
		if !input.Format.Valid() {
			return results.Failure[rounddb.Round, OperationFailure](&OperationFailure{Reason: "unknown format " + string(input.Format)}), nil
		}
		switch input.SkinsTeamRule {
		case "", rounddb.SkinsTeamRuleBestBall, rounddb.SkinsTeamRuleCombinedNet:
		default:
			return results.Failure[rounddb.Round, OperationFailure](&OperationFailure{Reason: "unknown skins team rule " + input.SkinsTeamRule}), nil
		}
		if input.SkinsEntryFeeCents < 0 || input.TiltEntryFeeCents < 0 {
			return results.Failure[rounddb.Round, OperationFailure](&OperationFailure{Reason: "entry fees cannot be negative"}), nil
		}

		trip, err := s.trips.GetTrip(ctx, input.TripID)
		if err != nil {
			if errors.Is(err, tripdb.ErrNotFound) {
				return results.Failure[rounddb.Round, OperationFailure](&OperationFailure{Reason: "trip not found"}), nil
			}
			return RoundOperationResult{}, err
		}

		teeTime, failReason := resolveTeeTime(input, trip.StartDate)
		if failReason != "" {
			return results.Failure[rounddb.Round, OperationFailure](&OperationFailure{Reason: failReason}), nil
		}

		slope := input.CourseSlope
		if slope == 0 {
			slope = 113
		}
		rule := input.SkinsTeamRule
		if rule == "" {
			rule = rounddb.SkinsTeamRuleBestBall
		}

		round := &rounddb.Round{
			TripID:          input.TripID,
			CourseName:      input.CourseName,
			CourseSlope:     slope,
			CourseRating:    input.CourseRating,
			TeeTime:         teeTime,
			Format:          input.Format,
			SkinsEntryFee:   input.SkinsEntryFeeCents,
			TiltEntryFee:    input.TiltEntryFeeCents,
			MaxScoreOverPar: input.MaxScoreOverPar,
			SkinsTeamRule:   rule,
			Status:          rounddb.RoundStatusScheduled,
		}
		if err := s.repo.CreateRound(ctx, round); err != nil {
			s.logger.ErrorContext(ctx, "Failed to create round",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			return RoundOperationResult{}, err
		}

		s.publishRoundEvent(ctx, roundevents.RoundCreatedTopic, round.TripID, roundevents.RoundCreatedPayloadV1{
			TripID:  round.TripID,
			RoundID: round.ID,
		})

		s.logger.InfoContext(ctx, "Round created",
			attr.ExtractCorrelationID(ctx),
			attr.String("round_id", round.ID.String()),
			attr.String("course", round.CourseName),
			attr.String("format", string(round.Format)),
		)
		return results.Success[rounddb.Round, OperationFailure](round), nil
	})
}

// resolveTeeTime picks the explicit tee time when given, otherwise parses the
// natural-language text relative to the trip start.
func resolveTeeTime(input CreateRoundInput, tripStart time.Time) (time.Time, string) {
	if input.TeeTime != nil {
		return *input.TeeTime, ""
	}
	if input.TeeTimeText == "" {
		return time.Time{}, "tee time is required"
	}
	parsed, err := teeTimeParser.Parse(input.TeeTimeText, tripStart)
	if err != nil || parsed == nil {
		return time.Time{}, "could not understand tee time " + input.TeeTimeText
	}
	return parsed.Time, ""
}

// GetRound fetches one round.
func (s *RoundService) GetRound(ctx context.Context, roundID uuid.UUID) (*rounddb.Round, error) {
	return s.repo.GetRound(ctx, roundID)
}

// ListRounds lists a trip's rounds in tee-time order.
func (s *RoundService) ListRounds(ctx context.Context, tripID uuid.UUID) ([]rounddb.Round, error) {
	return s.repo.ListRounds(ctx, tripID)
}

// FinalizeRound locks a round. Finalizing requires a full 18-hole score set
// for every player who recorded anything; partial rounds stay in progress.
func (s *RoundService) FinalizeRound(ctx context.Context, roundID uuid.UUID) (RoundOperationResult, error) {
	return withTelemetry(s, ctx, "FinalizeRound", func(ctx context.Context) (RoundOperationResult, error) {
		round, err := s.repo.GetRound(ctx, roundID)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return results.Failure[rounddb.Round, OperationFailure](&OperationFailure{Reason: "round not found"}), nil
			}
			return RoundOperationResult{}, err
		}
		if round.Status == rounddb.RoundStatusFinalized {
			return results.Success[rounddb.Round, OperationFailure](round), nil
		}

		scores, err := s.repo.ListHoleScores(ctx, roundID)
		if err != nil {
			return RoundOperationResult{}, err
		}
		counts := make(map[uuid.UUID]int)
		for _, score := range scores {
			counts[score.PlayerID]++
		}
		if len(counts) == 0 {
			return results.Failure[rounddb.Round, OperationFailure](&OperationFailure{Reason: "no scores recorded"}), nil
		}
		for playerID, n := range counts {
			if n != game.HolesPerRound {
				return results.Failure[rounddb.Round, OperationFailure](&OperationFailure{
					Reason: fmt.Sprintf("player %s has %d of %d holes", playerID, n, game.HolesPerRound),
				}), nil
			}
		}

		if err := s.repo.UpdateRoundStatus(ctx, roundID, rounddb.RoundStatusFinalized); err != nil {
			return RoundOperationResult{}, err
		}
		round.Status = rounddb.RoundStatusFinalized

		s.publishRoundEvent(ctx, roundevents.RoundFinalizedTopic, round.TripID, roundevents.RoundFinalizedPayloadV1{
			TripID:  round.TripID,
			RoundID: round.ID,
		})
		return results.Success[rounddb.Round, OperationFailure](round), nil
	})
}
