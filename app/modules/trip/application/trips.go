package tripservice

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	tripevents "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/domain/events"
	"github.com/Broken-Tee-Society/trip-tracker/eventbus"
	"github.com/Broken-Tee-Society/trip-tracker/game"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// CreateTrip creates a trip with the default handicap policy. Organizers
// tune the policy afterwards via UpdateHandicapPolicy.
func (s *TripService) CreateTrip(ctx context.Context, input CreateTripInput) (TripOperationResult, error) {
	return withTelemetry(s, ctx, "CreateTrip", func(ctx context.Context) (TripOperationResult, error) {
		if input.Name == "" {
			return results.Failure[tripdb.Trip, OperationFailure](&OperationFailure{Reason: "trip name is required"}), nil
		}
		if input.EndDate.Before(input.StartDate) {
			return results.Failure[tripdb.Trip, OperationFailure](&OperationFailure{Reason: "trip ends before it starts"}), nil
		}

		trip := &tripdb.Trip{
			Name:           input.Name,
			Location:       input.Location,
			StartDate:      input.StartDate,
			EndDate:        input.EndDate,
			HandicapConfig: game.DefaultHandicapPolicy(),
		}
		if err := s.repo.CreateTrip(ctx, trip); err != nil {
			s.logger.ErrorContext(ctx, "Failed to create trip",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			return TripOperationResult{}, err
		}

		s.publishTripEvent(ctx, tripevents.TripCreatedTopic, trip.ID, tripevents.TripCreatedPayloadV1{
			TripID: trip.ID,
			Name:   trip.Name,
		})

		s.logger.InfoContext(ctx, "Trip created",
			attr.ExtractCorrelationID(ctx),
			attr.String("trip_id", trip.ID.String()),
			attr.String("name", trip.Name),
		)
		return results.Success[tripdb.Trip, OperationFailure](trip), nil
	})
}

// GetTrip fetches one trip.
func (s *TripService) GetTrip(ctx context.Context, tripID uuid.UUID) (*tripdb.Trip, error) {
	return s.repo.GetTrip(ctx, tripID)
}

// ListTrips lists all trips, most recent first.
func (s *TripService) ListTrips(ctx context.Context) ([]tripdb.Trip, error) {
	return s.repo.ListTrips(ctx)
}

// UpdateTrip edits a trip's name, location, and dates. The handicap policy
// has its own operation and is left untouched here.
func (s *TripService) UpdateTrip(ctx context.Context, input UpdateTripInput) (TripOperationResult, error) {
	return withTelemetry(s, ctx, "UpdateTrip", func(ctx context.Context) (TripOperationResult, error) {
		if input.Name == "" {
			return results.Failure[tripdb.Trip, OperationFailure](&OperationFailure{Reason: "trip name is required"}), nil
		}
		if input.EndDate.Before(input.StartDate) {
			return results.Failure[tripdb.Trip, OperationFailure](&OperationFailure{Reason: "trip ends before it starts"}), nil
		}

		trip, err := s.repo.GetTrip(ctx, input.TripID)
		if err != nil {
			if errors.Is(err, tripdb.ErrNotFound) {
				return results.Failure[tripdb.Trip, OperationFailure](&OperationFailure{Reason: "trip not found"}), nil
			}
			return TripOperationResult{}, err
		}

		trip.Name = input.Name
		trip.Location = input.Location
		trip.StartDate = input.StartDate
		trip.EndDate = input.EndDate
		if err := s.repo.UpdateTrip(ctx, trip); err != nil {
			s.logger.ErrorContext(ctx, "Failed to update trip",
				attr.ExtractCorrelationID(ctx),
				attr.String("trip_id", input.TripID.String()),
				attr.Error(err),
			)
			return TripOperationResult{}, err
		}

		return results.Success[tripdb.Trip, OperationFailure](trip), nil
	})
}

// UpdateHandicapPolicy validates and persists a trip's handicap policy.
func (s *TripService) UpdateHandicapPolicy(ctx context.Context, tripID uuid.UUID, policy game.HandicapPolicy) (TripOperationResult, error) {
	return withTelemetry(s, ctx, "UpdateHandicapPolicy", func(ctx context.Context) (TripOperationResult, error) {
		if err := policy.Validate(); err != nil {
			return results.Failure[tripdb.Trip, OperationFailure](&OperationFailure{Reason: err.Error()}), nil
		}

		if err := s.repo.UpdateHandicapPolicy(ctx, tripID, policy); err != nil {
			if errors.Is(err, tripdb.ErrNoRowsAffected) {
				return results.Failure[tripdb.Trip, OperationFailure](&OperationFailure{Reason: "trip not found"}), nil
			}
			return TripOperationResult{}, err
		}

		s.publishTripEvent(ctx, tripevents.PolicyUpdatedTopic, tripID, tripevents.PolicyUpdatedPayloadV1{TripID: tripID})

		trip, err := s.repo.GetTrip(ctx, tripID)
		if err != nil {
			return TripOperationResult{}, err
		}
		return results.Success[tripdb.Trip, OperationFailure](trip), nil
	})
}

// publishTripEvent marshals and publishes a trip-scoped event. Publish
// failures are logged and swallowed: the write already committed, and
// clients recover on their next fetch.
func (s *TripService) publishTripEvent(ctx context.Context, topic string, tripID uuid.UUID, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal event payload",
			attr.String("topic", topic),
			attr.Error(err),
		)
		return
	}
	msg := message.NewMessage(uuid.NewString(), body)
	if err := eventbus.PublishWithTripScope(s.EventBus, topic, tripID.String(), msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
