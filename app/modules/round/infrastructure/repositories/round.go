package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RoundDBImpl implements Repository on bun.
type RoundDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*RoundDBImpl)(nil)

func (db *RoundDBImpl) CreateRound(ctx context.Context, round *Round) error {
	if round.ID == uuid.Nil {
		round.ID = uuid.New()
	}
	if _, err := db.DB.NewInsert().Model(round).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}
	return nil
}

func (db *RoundDBImpl) GetRound(ctx context.Context, roundID uuid.UUID) (*Round, error) {
	var round Round
	err := db.DB.NewSelect().
		Model(&round).
		Where("r.id = ?", roundID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch round %s: %w", roundID, err)
	}
	return &round, nil
}

func (db *RoundDBImpl) ListRounds(ctx context.Context, tripID uuid.UUID) ([]Round, error) {
	var rounds []Round
	err := db.DB.NewSelect().
		Model(&rounds).
		Where("r.trip_id = ?", tripID).
		Order("tee_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds for trip %s: %w", tripID, err)
	}
	return rounds, nil
}

func (db *RoundDBImpl) UpdateRoundStatus(ctx context.Context, roundID uuid.UUID, status string) error {
	res, err := db.DB.NewUpdate().
		Model((*Round)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", roundID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update status for round %s: %w", roundID, err)
	}
	return requireRowsAffected(res)
}

// ReplaceTeeSheet swaps the round's tee sheet atomically: the old rows go and
// the new 18 arrive in one transaction.
func (db *RoundDBImpl) ReplaceTeeSheet(ctx context.Context, roundID uuid.UUID, holes []TeeHole) error {
	return db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*TeeHole)(nil)).
			Where("round_id = ?", roundID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear tee sheet for round %s: %w", roundID, err)
		}
		for i := range holes {
			holes[i].RoundID = roundID
			if holes[i].ID == uuid.Nil {
				holes[i].ID = uuid.New()
			}
		}
		if _, err := tx.NewInsert().Model(&holes).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert tee sheet for round %s: %w", roundID, err)
		}
		return nil
	})
}

func (db *RoundDBImpl) GetTeeSheet(ctx context.Context, roundID uuid.UUID) ([]TeeHole, error) {
	var holes []TeeHole
	err := db.DB.NewSelect().
		Model(&holes).
		Where("th.round_id = ?", roundID).
		Order("hole_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tee sheet for round %s: %w", roundID, err)
	}
	return holes, nil
}

func (db *RoundDBImpl) CreateMatch(ctx context.Context, match *Match) error {
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	if _, err := db.DB.NewInsert().Model(match).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (db *RoundDBImpl) ListMatches(ctx context.Context, roundID uuid.UUID) ([]Match, error) {
	var matches []Match
	err := db.DB.NewSelect().
		Model(&matches).
		Where("m.round_id = ?", roundID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for round %s: %w", roundID, err)
	}
	return matches, nil
}

// UpsertHoleScore writes a gross score, replacing any earlier entry for the
// same player and hole. Score corrections land here; nothing derived is
// stored, so no cascade is needed.
func (db *RoundDBImpl) UpsertHoleScore(ctx context.Context, score *HoleScore) error {
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	score.UpdatedAt = time.Now()
	_, err := db.DB.NewInsert().
		Model(score).
		On("CONFLICT (round_id, player_id, hole_number) DO UPDATE").
		Set("gross_strokes = EXCLUDED.gross_strokes").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert hole score for player %s hole %d: %w",
			score.PlayerID, score.HoleNumber, err)
	}
	return nil
}

func (db *RoundDBImpl) ListHoleScores(ctx context.Context, roundID uuid.UUID) ([]HoleScore, error) {
	var scores []HoleScore
	err := db.DB.NewSelect().
		Model(&scores).
		Where("hs.round_id = ?", roundID).
		Order("player_id ASC", "hole_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hole scores for round %s: %w", roundID, err)
	}
	return scores, nil
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
