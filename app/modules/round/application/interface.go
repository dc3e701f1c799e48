package roundservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// CreateRoundInput is the validated input for a new round. TeeTimeText is
// natural language ("saturday 8am") parsed relative to the trip start; an
// explicit TeeTime wins when both are set.
type CreateRoundInput struct {
	TripID             uuid.UUID
	CourseName         string
	CourseSlope        int
	CourseRating       float64
	TeeTime            *time.Time
	TeeTimeText        string
	Format             game.Format
	SkinsEntryFeeCents int64
	TiltEntryFeeCents  int64
	MaxScoreOverPar    *int
	SkinsTeamRule      string
}

// CreateMatchInput pairs two sides within a round.
type CreateMatchInput struct {
	RoundID      uuid.UUID
	Side1Players []uuid.UUID
	Side2Players []uuid.UUID
}

// RecordScoreInput is one gross score entry or correction.
type RecordScoreInput struct {
	RoundID      uuid.UUID
	PlayerID     uuid.UUID
	HoleNumber   int
	GrossStrokes int
}

// OperationFailure is the generic business-failure payload for round
// operations.
type OperationFailure struct {
	Reason string `json:"reason"`
}

// RoundOperationResult carries a round or a handled business failure.
type RoundOperationResult = results.OperationResult[rounddb.Round, OperationFailure]

// MatchOperationResult carries a match or a handled business failure.
type MatchOperationResult = results.OperationResult[rounddb.Match, OperationFailure]

// ScoreOperationResult carries a hole score or a handled business failure.
type ScoreOperationResult = results.OperationResult[rounddb.HoleScore, OperationFailure]

// TeeSheetOperationResult carries the stored tee sheet or a handled business
// failure.
type TeeSheetOperationResult = results.OperationResult[[]game.Hole, OperationFailure]

// Service is the round module's application boundary.
type Service interface {
	CreateRound(ctx context.Context, input CreateRoundInput) (RoundOperationResult, error)
	GetRound(ctx context.Context, roundID uuid.UUID) (*rounddb.Round, error)
	ListRounds(ctx context.Context, tripID uuid.UUID) ([]rounddb.Round, error)
	FinalizeRound(ctx context.Context, roundID uuid.UUID) (RoundOperationResult, error)

	DefineTeeSheet(ctx context.Context, roundID uuid.UUID, holes []game.Hole) (TeeSheetOperationResult, error)
	GetTeeSheet(ctx context.Context, roundID uuid.UUID) ([]game.Hole, error)

	CreateMatch(ctx context.Context, input CreateMatchInput) (MatchOperationResult, error)
	ListMatches(ctx context.Context, roundID uuid.UUID) ([]rounddb.Match, error)

	RecordHoleScore(ctx context.Context, input RecordScoreInput) (ScoreOperationResult, error)

	ComputeResults(ctx context.Context, roundID uuid.UUID) (*RoundResults, error)
}

var _ Service = (*RoundService)(nil)
