package tripdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Broken-Tee-Society/trip-tracker/game"
)

// TripDBImpl implements Repository on bun.
type TripDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*TripDBImpl)(nil)

func (db *TripDBImpl) CreateTrip(ctx context.Context, trip *Trip) error {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	if _, err := db.DB.NewInsert().Model(trip).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

func (db *TripDBImpl) GetTrip(ctx context.Context, tripID uuid.UUID) (*Trip, error) {
	var trip Trip
	err := db.DB.NewSelect().
		Model(&trip).
		Where("t.id = ?", tripID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch trip %s: %w", tripID, err)
	}
	return &trip, nil
}

func (db *TripDBImpl) ListTrips(ctx context.Context) ([]Trip, error) {
	var trips []Trip
	err := db.DB.NewSelect().
		Model(&trips).
		Order("start_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, nil
}

func (db *TripDBImpl) UpdateTrip(ctx context.Context, trip *Trip) error {
	trip.UpdatedAt = time.Now()
	res, err := db.DB.NewUpdate().
		Model(trip).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update trip %s: %w", trip.ID, err)
	}
	return requireRowsAffected(res)
}

func (db *TripDBImpl) UpdateHandicapPolicy(ctx context.Context, tripID uuid.UUID, policy game.HandicapPolicy) error {
	res, err := db.DB.NewUpdate().
		Model((*Trip)(nil)).
		Set("handicap_config = ?", policy).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", tripID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update handicap policy for trip %s: %w", tripID, err)
	}
	return requireRowsAffected(res)
}

func (db *TripDBImpl) CreateTeam(ctx context.Context, team *Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if _, err := db.DB.NewInsert().Model(team).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

func (db *TripDBImpl) ListTeams(ctx context.Context, tripID uuid.UUID) ([]Team, error) {
	var teams []Team
	err := db.DB.NewSelect().
		Model(&teams).
		Where("tm.trip_id = ?", tripID).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for trip %s: %w", tripID, err)
	}
	return teams, nil
}

func (db *TripDBImpl) CreatePlayer(ctx context.Context, player *Player) error {
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	if _, err := db.DB.NewInsert().Model(player).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

func (db *TripDBImpl) GetPlayer(ctx context.Context, playerID uuid.UUID) (*Player, error) {
	var player Player
	err := db.DB.NewSelect().
		Model(&player).
		Where("p.id = ?", playerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch player %s: %w", playerID, err)
	}
	return &player, nil
}

func (db *TripDBImpl) ListPlayers(ctx context.Context, tripID uuid.UUID) ([]Player, error) {
	var players []Player
	err := db.DB.NewSelect().
		Model(&players).
		Where("p.trip_id = ?", tripID).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for trip %s: %w", tripID, err)
	}
	return players, nil
}

func (db *TripDBImpl) AssignPlayerToTeam(ctx context.Context, playerID uuid.UUID, teamID *uuid.UUID) error {
	res, err := db.DB.NewUpdate().
		Model((*Player)(nil)).
		Set("team_id = ?", teamID).
		Where("id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to assign player %s to team: %w", playerID, err)
	}
	return requireRowsAffected(res)
}

func (db *TripDBImpl) UpdatePlayerHandicapIndex(ctx context.Context, playerID uuid.UUID, index float64) error {
	res, err := db.DB.NewUpdate().
		Model((*Player)(nil)).
		Set("handicap_index = ?", index).
		Where("id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update handicap index for player %s: %w", playerID, err)
	}
	return requireRowsAffected(res)
}

func (db *TripDBImpl) RemovePlayer(ctx context.Context, playerID uuid.UUID) error {
	res, err := db.DB.NewDelete().
		Model((*Player)(nil)).
		Where("id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove player %s: %w", playerID, err)
	}
	return requireRowsAffected(res)
}

func requireRowsAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
