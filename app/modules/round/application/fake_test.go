package roundservice

import (
	"context"

	"github.com/google/uuid"

	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
)

// FakeRoundRepository provides a programmable stub for the rounddb.Repository
// interface.
type FakeRoundRepository struct {
	trace []string

	CreateRoundFunc       func(ctx context.Context, round *rounddb.Round) error
	GetRoundFunc          func(ctx context.Context, roundID uuid.UUID) (*rounddb.Round, error)
	ListRoundsFunc        func(ctx context.Context, tripID uuid.UUID) ([]rounddb.Round, error)
	UpdateRoundStatusFunc func(ctx context.Context, roundID uuid.UUID, status string) error
	ReplaceTeeSheetFunc   func(ctx context.Context, roundID uuid.UUID, holes []rounddb.TeeHole) error
	GetTeeSheetFunc       func(ctx context.Context, roundID uuid.UUID) ([]rounddb.TeeHole, error)
	CreateMatchFunc       func(ctx context.Context, match *rounddb.Match) error
	ListMatchesFunc       func(ctx context.Context, roundID uuid.UUID) ([]rounddb.Match, error)
	UpsertHoleScoreFunc   func(ctx context.Context, score *rounddb.HoleScore) error
	ListHoleScoresFunc    func(ctx context.Context, roundID uuid.UUID) ([]rounddb.HoleScore, error)
}

var _ rounddb.Repository = (*FakeRoundRepository)(nil)

func NewFakeRoundRepository() *FakeRoundRepository {
	return &FakeRoundRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRoundRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRoundRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRoundRepository) CreateRound(ctx context.Context, round *rounddb.Round) error {
	f.record("CreateRound")
	if round.ID == uuid.Nil {
		round.ID = uuid.New()
	}
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx, round)
	}
	return nil
}

func (f *FakeRoundRepository) GetRound(ctx context.Context, roundID uuid.UUID) (*rounddb.Round, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, roundID)
	}
	return &rounddb.Round{ID: roundID, Format: game.FormatSingles, CourseSlope: 113, Status: rounddb.RoundStatusInProgress}, nil
}

func (f *FakeRoundRepository) ListRounds(ctx context.Context, tripID uuid.UUID) ([]rounddb.Round, error) {
	f.record("ListRounds")
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx, tripID)
	}
	return nil, nil
}

func (f *FakeRoundRepository) UpdateRoundStatus(ctx context.Context, roundID uuid.UUID, status string) error {
	f.record("UpdateRoundStatus")
	if f.UpdateRoundStatusFunc != nil {
		return f.UpdateRoundStatusFunc(ctx, roundID, status)
	}
	return nil
}

func (f *FakeRoundRepository) ReplaceTeeSheet(ctx context.Context, roundID uuid.UUID, holes []rounddb.TeeHole) error {
	f.record("ReplaceTeeSheet")
	if f.ReplaceTeeSheetFunc != nil {
		return f.ReplaceTeeSheetFunc(ctx, roundID, holes)
	}
	return nil
}

func (f *FakeRoundRepository) GetTeeSheet(ctx context.Context, roundID uuid.UUID) ([]rounddb.TeeHole, error) {
	f.record("GetTeeSheet")
	if f.GetTeeSheetFunc != nil {
		return f.GetTeeSheetFunc(ctx, roundID)
	}
	return nil, nil
}

func (f *FakeRoundRepository) CreateMatch(ctx context.Context, match *rounddb.Match) error {
	f.record("CreateMatch")
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, match)
	}
	return nil
}

func (f *FakeRoundRepository) ListMatches(ctx context.Context, roundID uuid.UUID) ([]rounddb.Match, error) {
	f.record("ListMatches")
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx, roundID)
	}
	return nil, nil
}

func (f *FakeRoundRepository) UpsertHoleScore(ctx context.Context, score *rounddb.HoleScore) error {
	f.record("UpsertHoleScore")
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	if f.UpsertHoleScoreFunc != nil {
		return f.UpsertHoleScoreFunc(ctx, score)
	}
	return nil
}

func (f *FakeRoundRepository) ListHoleScores(ctx context.Context, roundID uuid.UUID) ([]rounddb.HoleScore, error) {
	f.record("ListHoleScores")
	if f.ListHoleScoresFunc != nil {
		return f.ListHoleScoresFunc(ctx, roundID)
	}
	return nil, nil
}

// FakeTripReader stubs the slice of tripdb.Repository the round service
// reads: trips for the policy, players for indexes. Write methods are never
// reached from this package.
type FakeTripReader struct {
	GetTripFunc     func(ctx context.Context, tripID uuid.UUID) (*tripdb.Trip, error)
	GetPlayerFunc   func(ctx context.Context, playerID uuid.UUID) (*tripdb.Player, error)
	ListPlayersFunc func(ctx context.Context, tripID uuid.UUID) ([]tripdb.Player, error)
}

var _ tripdb.Repository = (*FakeTripReader)(nil)

func (f *FakeTripReader) GetTrip(ctx context.Context, tripID uuid.UUID) (*tripdb.Trip, error) {
	if f.GetTripFunc != nil {
		return f.GetTripFunc(ctx, tripID)
	}
	return &tripdb.Trip{ID: tripID, HandicapConfig: game.DefaultHandicapPolicy()}, nil
}

func (f *FakeTripReader) GetPlayer(ctx context.Context, playerID uuid.UUID) (*tripdb.Player, error) {
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, playerID)
	}
	return &tripdb.Player{ID: playerID}, nil
}

func (f *FakeTripReader) ListPlayers(ctx context.Context, tripID uuid.UUID) ([]tripdb.Player, error) {
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, tripID)
	}
	return nil, nil
}

func (f *FakeTripReader) CreateTrip(context.Context, *tripdb.Trip) error { panic("not used") }
func (f *FakeTripReader) ListTrips(context.Context) ([]tripdb.Trip, error) {
	panic("not used")
}
func (f *FakeTripReader) UpdateTrip(context.Context, *tripdb.Trip) error { panic("not used") }
func (f *FakeTripReader) UpdateHandicapPolicy(context.Context, uuid.UUID, game.HandicapPolicy) error {
	panic("not used")
}
func (f *FakeTripReader) CreateTeam(context.Context, *tripdb.Team) error { panic("not used") }
func (f *FakeTripReader) ListTeams(context.Context, uuid.UUID) ([]tripdb.Team, error) {
	panic("not used")
}
func (f *FakeTripReader) CreatePlayer(context.Context, *tripdb.Player) error { panic("not used") }
func (f *FakeTripReader) AssignPlayerToTeam(context.Context, uuid.UUID, *uuid.UUID) error {
	panic("not used")
}
func (f *FakeTripReader) UpdatePlayerHandicapIndex(context.Context, uuid.UUID, float64) error {
	panic("not used")
}
func (f *FakeTripReader) RemovePlayer(context.Context, uuid.UUID) error { panic("not used") }
