package tripservice

import (
	"context"

	"github.com/google/uuid"

	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
)

// FakeTripRepository provides a programmable stub for the tripdb.Repository
// interface.
type FakeTripRepository struct {
	trace []string

	CreateTripFunc                func(ctx context.Context, trip *tripdb.Trip) error
	GetTripFunc                   func(ctx context.Context, tripID uuid.UUID) (*tripdb.Trip, error)
	ListTripsFunc                 func(ctx context.Context) ([]tripdb.Trip, error)
	UpdateTripFunc                func(ctx context.Context, trip *tripdb.Trip) error
	UpdateHandicapPolicyFunc      func(ctx context.Context, tripID uuid.UUID, policy game.HandicapPolicy) error
	CreateTeamFunc                func(ctx context.Context, team *tripdb.Team) error
	ListTeamsFunc                 func(ctx context.Context, tripID uuid.UUID) ([]tripdb.Team, error)
	CreatePlayerFunc              func(ctx context.Context, player *tripdb.Player) error
	GetPlayerFunc                 func(ctx context.Context, playerID uuid.UUID) (*tripdb.Player, error)
	ListPlayersFunc               func(ctx context.Context, tripID uuid.UUID) ([]tripdb.Player, error)
	AssignPlayerToTeamFunc        func(ctx context.Context, playerID uuid.UUID, teamID *uuid.UUID) error
	UpdatePlayerHandicapIndexFunc func(ctx context.Context, playerID uuid.UUID, index float64) error
	RemovePlayerFunc              func(ctx context.Context, playerID uuid.UUID) error
}

var _ tripdb.Repository = (*FakeTripRepository)(nil)

func NewFakeTripRepository() *FakeTripRepository {
	return &FakeTripRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeTripRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTripRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeTripRepository) CreateTrip(ctx context.Context, trip *tripdb.Trip) error {
	f.record("CreateTrip")
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	if f.CreateTripFunc != nil {
		return f.CreateTripFunc(ctx, trip)
	}
	return nil
}

func (f *FakeTripRepository) GetTrip(ctx context.Context, tripID uuid.UUID) (*tripdb.Trip, error) {
	f.record("GetTrip")
	if f.GetTripFunc != nil {
		return f.GetTripFunc(ctx, tripID)
	}
	return &tripdb.Trip{ID: tripID, HandicapConfig: game.DefaultHandicapPolicy()}, nil
}

func (f *FakeTripRepository) ListTrips(ctx context.Context) ([]tripdb.Trip, error) {
	f.record("ListTrips")
	if f.ListTripsFunc != nil {
		return f.ListTripsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeTripRepository) UpdateTrip(ctx context.Context, trip *tripdb.Trip) error {
	f.record("UpdateTrip")
	if f.UpdateTripFunc != nil {
		return f.UpdateTripFunc(ctx, trip)
	}
	return nil
}

func (f *FakeTripRepository) UpdateHandicapPolicy(ctx context.Context, tripID uuid.UUID, policy game.HandicapPolicy) error {
	f.record("UpdateHandicapPolicy")
	if f.UpdateHandicapPolicyFunc != nil {
		return f.UpdateHandicapPolicyFunc(ctx, tripID, policy)
	}
	return nil
}

func (f *FakeTripRepository) CreateTeam(ctx context.Context, team *tripdb.Team) error {
	f.record("CreateTeam")
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if f.CreateTeamFunc != nil {
		return f.CreateTeamFunc(ctx, team)
	}
	return nil
}

func (f *FakeTripRepository) ListTeams(ctx context.Context, tripID uuid.UUID) ([]tripdb.Team, error) {
	f.record("ListTeams")
	if f.ListTeamsFunc != nil {
		return f.ListTeamsFunc(ctx, tripID)
	}
	return nil, nil
}

func (f *FakeTripRepository) CreatePlayer(ctx context.Context, player *tripdb.Player) error {
	f.record("CreatePlayer")
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	if f.CreatePlayerFunc != nil {
		return f.CreatePlayerFunc(ctx, player)
	}
	return nil
}

func (f *FakeTripRepository) GetPlayer(ctx context.Context, playerID uuid.UUID) (*tripdb.Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, playerID)
	}
	return &tripdb.Player{ID: playerID}, nil
}

func (f *FakeTripRepository) ListPlayers(ctx context.Context, tripID uuid.UUID) ([]tripdb.Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, tripID)
	}
	return nil, nil
}

func (f *FakeTripRepository) AssignPlayerToTeam(ctx context.Context, playerID uuid.UUID, teamID *uuid.UUID) error {
	f.record("AssignPlayerToTeam")
	if f.AssignPlayerToTeamFunc != nil {
		return f.AssignPlayerToTeamFunc(ctx, playerID, teamID)
	}
	return nil
}

func (f *FakeTripRepository) UpdatePlayerHandicapIndex(ctx context.Context, playerID uuid.UUID, index float64) error {
	f.record("UpdatePlayerHandicapIndex")
	if f.UpdatePlayerHandicapIndexFunc != nil {
		return f.UpdatePlayerHandicapIndexFunc(ctx, playerID, index)
	}
	return nil
}

func (f *FakeTripRepository) RemovePlayer(ctx context.Context, playerID uuid.UUID) error {
	f.record("RemovePlayer")
	if f.RemovePlayerFunc != nil {
		return f.RemovePlayerFunc(ctx, playerID)
	}
	return nil
}
