package tripservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// CreateTripInput is the validated input for a new trip.
type CreateTripInput struct {
	Name      string
	Location  string
	StartDate time.Time
	EndDate   time.Time
}

// UpdateTripInput carries edits to an existing trip's details.
type UpdateTripInput struct {
	TripID    uuid.UUID
	Name      string
	Location  string
	StartDate time.Time
	EndDate   time.Time
}

// AddPlayerInput adds a player to a trip roster.
type AddPlayerInput struct {
	TripID        uuid.UUID
	Name          string
	Email         string
	HandicapIndex float64
	TeamID        *uuid.UUID
}

// Roster is the full player/team view of a trip.
type Roster struct {
	Teams   []tripdb.Team   `json:"teams"`
	Players []tripdb.Player `json:"players"`
}

// OperationFailure is the generic business-failure payload for trip
// operations.
type OperationFailure struct {
	Reason string `json:"reason"`
}

// TripOperationResult carries a trip or a handled business failure.
type TripOperationResult = results.OperationResult[tripdb.Trip, OperationFailure]

// PlayerOperationResult carries a player or a handled business failure.
type PlayerOperationResult = results.OperationResult[tripdb.Player, OperationFailure]

// TeamOperationResult carries a team or a handled business failure.
type TeamOperationResult = results.OperationResult[tripdb.Team, OperationFailure]

// Service is the trip module's application boundary.
type Service interface {
	CreateTrip(ctx context.Context, input CreateTripInput) (TripOperationResult, error)
	GetTrip(ctx context.Context, tripID uuid.UUID) (*tripdb.Trip, error)
	ListTrips(ctx context.Context) ([]tripdb.Trip, error)
	UpdateTrip(ctx context.Context, input UpdateTripInput) (TripOperationResult, error)
	UpdateHandicapPolicy(ctx context.Context, tripID uuid.UUID, policy game.HandicapPolicy) (TripOperationResult, error)

	CreateTeam(ctx context.Context, tripID uuid.UUID, name, color string) (TeamOperationResult, error)
	AddPlayer(ctx context.Context, input AddPlayerInput) (PlayerOperationResult, error)
	AssignPlayerToTeam(ctx context.Context, tripID, playerID uuid.UUID, teamID *uuid.UUID) (PlayerOperationResult, error)
	UpdatePlayerHandicapIndex(ctx context.Context, tripID, playerID uuid.UUID, index float64) (PlayerOperationResult, error)
	RemovePlayer(ctx context.Context, tripID, playerID uuid.UUID) error
	GetRoster(ctx context.Context, tripID uuid.UUID) (*Roster, error)
}

var _ Service = (*TripService)(nil)
