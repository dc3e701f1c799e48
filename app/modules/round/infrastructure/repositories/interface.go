package rounddb

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the round module's persistence boundary.
type Repository interface {
	CreateRound(ctx context.Context, round *Round) error
	GetRound(ctx context.Context, roundID uuid.UUID) (*Round, error)
	ListRounds(ctx context.Context, tripID uuid.UUID) ([]Round, error)
	UpdateRoundStatus(ctx context.Context, roundID uuid.UUID, status string) error

	ReplaceTeeSheet(ctx context.Context, roundID uuid.UUID, holes []TeeHole) error
	GetTeeSheet(ctx context.Context, roundID uuid.UUID) ([]TeeHole, error)

	CreateMatch(ctx context.Context, match *Match) error
	ListMatches(ctx context.Context, roundID uuid.UUID) ([]Match, error)

	UpsertHoleScore(ctx context.Context, score *HoleScore) error
	ListHoleScores(ctx context.Context, roundID uuid.UUID) ([]HoleScore, error)
}
