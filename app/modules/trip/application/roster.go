package tripservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	tripevents "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/domain/events"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// lowest and highest handicap index the USGA issues.
const (
	minHandicapIndex = -10.0
	maxHandicapIndex = 54.0
)

// CreateTeam adds a team to a trip.
func (s *TripService) CreateTeam(ctx context.Context, tripID uuid.UUID, name, color string) (TeamOperationResult, error) {
	return withTelemetry(s, ctx, "CreateTeam", func(ctx context.Context) (TeamOperationResult, error) {
		if name == "" {
			return results.Failure[tripdb.Team, OperationFailure](&OperationFailure{Reason: "team name is required"}), nil
		}
		team := &tripdb.Team{TripID: tripID, Name: name, Color: color}
		if err := s.repo.CreateTeam(ctx, team); err != nil {
			return TeamOperationResult{}, err
		}
		s.publishTripEvent(ctx, tripevents.RosterUpdatedTopic, tripID, tripevents.RosterUpdatedPayloadV1{TripID: tripID})
		return results.Success[tripdb.Team, OperationFailure](team), nil
	})
}

// AddPlayer adds a player to the trip roster.
func (s *TripService) AddPlayer(ctx context.Context, input AddPlayerInput) (PlayerOperationResult, error) {
	return withTelemetry(s, ctx, "AddPlayer", func(ctx context.Context) (PlayerOperationResult, error) {
		if input.Name == "" {
			return results.Failure[tripdb.Player, OperationFailure](&OperationFailure{Reason: "player name is required"}), nil
		}
		if input.HandicapIndex < minHandicapIndex || input.HandicapIndex > maxHandicapIndex {
			return results.Failure[tripdb.Player, OperationFailure](&OperationFailure{Reason: "handicap index out of range"}), nil
		}

		player := &tripdb.Player{
			TripID:        input.TripID,
			TeamID:        input.TeamID,
			Name:          input.Name,
			Email:         input.Email,
			HandicapIndex: input.HandicapIndex,
		}
		if err := s.repo.CreatePlayer(ctx, player); err != nil {
			return PlayerOperationResult{}, err
		}

		s.publishTripEvent(ctx, tripevents.RosterUpdatedTopic, input.TripID, tripevents.RosterUpdatedPayloadV1{TripID: input.TripID})

		s.logger.InfoContext(ctx, "Player added to roster",
			attr.ExtractCorrelationID(ctx),
			attr.String("trip_id", input.TripID.String()),
			attr.String("player_id", player.ID.String()),
		)
		return results.Success[tripdb.Player, OperationFailure](player), nil
	})
}

// AssignPlayerToTeam moves a player onto a team, or off all teams when
// teamID is nil.
func (s *TripService) AssignPlayerToTeam(ctx context.Context, tripID, playerID uuid.UUID, teamID *uuid.UUID) (PlayerOperationResult, error) {
	return withTelemetry(s, ctx, "AssignPlayerToTeam", func(ctx context.Context) (PlayerOperationResult, error) {
		if err := s.repo.AssignPlayerToTeam(ctx, playerID, teamID); err != nil {
			if errors.Is(err, tripdb.ErrNoRowsAffected) {
				return results.Failure[tripdb.Player, OperationFailure](&OperationFailure{Reason: "player not found"}), nil
			}
			return PlayerOperationResult{}, err
		}
		s.publishTripEvent(ctx, tripevents.RosterUpdatedTopic, tripID, tripevents.RosterUpdatedPayloadV1{TripID: tripID})

		player, err := s.repo.GetPlayer(ctx, playerID)
		if err != nil {
			return PlayerOperationResult{}, err
		}
		return results.Success[tripdb.Player, OperationFailure](player), nil
	})
}

// UpdatePlayerHandicapIndex updates a player's raw index. Course handicaps
// are always re-derived, so no stored results need touching.
func (s *TripService) UpdatePlayerHandicapIndex(ctx context.Context, tripID, playerID uuid.UUID, index float64) (PlayerOperationResult, error) {
	return withTelemetry(s, ctx, "UpdatePlayerHandicapIndex", func(ctx context.Context) (PlayerOperationResult, error) {
		if index < minHandicapIndex || index > maxHandicapIndex {
			return results.Failure[tripdb.Player, OperationFailure](&OperationFailure{Reason: "handicap index out of range"}), nil
		}
		if err := s.repo.UpdatePlayerHandicapIndex(ctx, playerID, index); err != nil {
			if errors.Is(err, tripdb.ErrNoRowsAffected) {
				return results.Failure[tripdb.Player, OperationFailure](&OperationFailure{Reason: "player not found"}), nil
			}
			return PlayerOperationResult{}, err
		}
		s.publishTripEvent(ctx, tripevents.RosterUpdatedTopic, tripID, tripevents.RosterUpdatedPayloadV1{TripID: tripID})

		player, err := s.repo.GetPlayer(ctx, playerID)
		if err != nil {
			return PlayerOperationResult{}, err
		}
		return results.Success[tripdb.Player, OperationFailure](player), nil
	})
}

// RemovePlayer drops a player from the roster.
func (s *TripService) RemovePlayer(ctx context.Context, tripID, playerID uuid.UUID) error {
	if err := s.repo.RemovePlayer(ctx, playerID); err != nil {
		return err
	}
	s.publishTripEvent(ctx, tripevents.RosterUpdatedTopic, tripID, tripevents.RosterUpdatedPayloadV1{TripID: tripID})
	return nil
}

// GetRoster returns the trip's teams and players.
func (s *TripService) GetRoster(ctx context.Context, tripID uuid.UUID) (*Roster, error) {
	teams, err := s.repo.ListTeams(ctx, tripID)
	if err != nil {
		return nil, err
	}
	players, err := s.repo.ListPlayers(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return &Roster{Teams: teams, Players: players}, nil
}
