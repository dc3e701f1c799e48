package tripdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/Broken-Tee-Society/trip-tracker/game"
)

// Repository is the persistence boundary for trips, teams, and players.
type Repository interface {
	CreateTrip(ctx context.Context, trip *Trip) error
	GetTrip(ctx context.Context, tripID uuid.UUID) (*Trip, error)
	ListTrips(ctx context.Context) ([]Trip, error)
	UpdateTrip(ctx context.Context, trip *Trip) error
	UpdateHandicapPolicy(ctx context.Context, tripID uuid.UUID, policy game.HandicapPolicy) error

	CreateTeam(ctx context.Context, team *Team) error
	ListTeams(ctx context.Context, tripID uuid.UUID) ([]Team, error)

	CreatePlayer(ctx context.Context, player *Player) error
	GetPlayer(ctx context.Context, playerID uuid.UUID) (*Player, error)
	ListPlayers(ctx context.Context, tripID uuid.UUID) ([]Player, error)
	AssignPlayerToTeam(ctx context.Context, playerID uuid.UUID, teamID *uuid.UUID) error
	UpdatePlayerHandicapIndex(ctx context.Context, playerID uuid.UUID, index float64) error
	RemovePlayer(ctx context.Context, playerID uuid.UUID) error
}
