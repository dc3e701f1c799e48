package leaderboardservice

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	roundservice "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/application"
	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability"
)

// RoundResultsProvider is the slice of the round module the leaderboard
// reads: the schedule and the derived results of each round.
type RoundResultsProvider interface {
	ListRounds(ctx context.Context, tripID uuid.UUID) ([]rounddb.Round, error)
	ComputeResults(ctx context.Context, roundID uuid.UUID) (*roundservice.RoundResults, error)
}

// TeamStanding is one team's trip-long match record. Points award 1 for a
// won match and a half each for a halved one.
type TeamStanding struct {
	TeamID uuid.UUID `json:"teamId"`
	Name   string    `json:"name"`
	Color  string    `json:"color,omitempty"`
	Points float64   `json:"points"`
	Wins   int       `json:"wins"`
	Losses int       `json:"losses"`
	Halves int       `json:"halves"`
}

// PlayerMoney aggregates one player's side-game results across the trip.
type PlayerMoney struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Name          string    `json:"name"`
	SkinsWonCents int64     `json:"skinsWonCents"`
	TiltPoints    int       `json:"tiltPoints"`
}

// Leaderboard is the trip's derived standings. Like round results it is never
// stored: every call recomputes from the finalized rounds, so a corrected
// score reshuffles the board on the next fetch.
type Leaderboard struct {
	TripID        uuid.UUID      `json:"tripId"`
	RoundsCounted int            `json:"roundsCounted"`
	Standings     []TeamStanding `json:"standings"`
	Money         []PlayerMoney  `json:"money"`
}

// LeaderboardService derives trip standings from finalized round results.
type LeaderboardService struct {
	rounds  RoundResultsProvider
	trips   tripdb.Repository
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	rounds RoundResultsProvider,
	trips tripdb.Repository,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *LeaderboardService {
	return &LeaderboardService{
		rounds:  rounds,
		trips:   trips,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// Standings walks every finalized round, recomputes its results, and folds
// match points and side-game money into the trip leaderboard. Matches whose
// sides are not on opposing teams contribute nothing to team points but still
// count for money.
func (s *LeaderboardService) Standings(ctx context.Context, tripID uuid.UUID) (*Leaderboard, error) {
	ctx, span := s.tracer.Start(ctx, "Standings")
	defer span.End()

	teams, err := s.trips.ListTeams(ctx, tripID)
	if err != nil {
		return nil, err
	}
	players, err := s.trips.ListPlayers(ctx, tripID)
	if err != nil {
		return nil, err
	}
	teamOf := make(map[uuid.UUID]*uuid.UUID, len(players))
	nameOf := make(map[uuid.UUID]string, len(players))
	for _, p := range players {
		teamOf[p.ID] = p.TeamID
		nameOf[p.ID] = p.Name
	}

	standings := make(map[uuid.UUID]*TeamStanding, len(teams))
	for _, team := range teams {
		standings[team.ID] = &TeamStanding{TeamID: team.ID, Name: team.Name, Color: team.Color}
	}
	money := make(map[uuid.UUID]*PlayerMoney)
	moneyAt := func(playerID uuid.UUID) *PlayerMoney {
		if m, ok := money[playerID]; ok {
			return m
		}
		m := &PlayerMoney{PlayerID: playerID, Name: nameOf[playerID]}
		money[playerID] = m
		return m
	}

	rounds, err := s.rounds.ListRounds(ctx, tripID)
	if err != nil {
		return nil, err
	}
	board := &Leaderboard{TripID: tripID}
	for _, round := range rounds {
		if round.Status != rounddb.RoundStatusFinalized {
			continue
		}
		results, err := s.rounds.ComputeResults(ctx, round.ID)
		if err != nil {
			return nil, err
		}
		board.RoundsCounted++

		for _, match := range results.Matches {
			if !match.State.IsComplete {
				continue
			}
			side1Team := sideTeam(match.Side1Players, teamOf)
			side2Team := sideTeam(match.Side2Players, teamOf)
			if side1Team == nil || side2Team == nil || *side1Team == *side2Team {
				continue
			}
			s1, ok1 := standings[*side1Team]
			s2, ok2 := standings[*side2Team]
			if !ok1 || !ok2 {
				continue
			}
			switch match.State.LeadingSide {
			case 1:
				s1.Points++
				s1.Wins++
				s2.Losses++
			case 2:
				s2.Points++
				s2.Wins++
				s1.Losses++
			default:
				s1.Points += 0.5
				s2.Points += 0.5
				s1.Halves++
				s2.Halves++
			}
		}

		if results.Skins != nil {
			for _, entrant := range results.Skins.Entrants {
				if entrant.MoneyWonCents == 0 {
					continue
				}
				ids := entrantPlayers(entrant.ID)
				shares := splitCents(entrant.MoneyWonCents, len(ids))
				for i, playerID := range ids {
					moneyAt(playerID).SkinsWonCents += shares[i]
				}
			}
		}
		for _, line := range results.Tilt {
			if playerID, err := uuid.Parse(line.PlayerID); err == nil {
				moneyAt(playerID).TiltPoints += line.TotalPoints
			}
		}
	}

	for _, standing := range standings {
		board.Standings = append(board.Standings, *standing)
	}
	sort.Slice(board.Standings, func(i, j int) bool {
		if board.Standings[i].Points != board.Standings[j].Points {
			return board.Standings[i].Points > board.Standings[j].Points
		}
		return board.Standings[i].Name < board.Standings[j].Name
	})
	for _, m := range money {
		board.Money = append(board.Money, *m)
	}
	sort.Slice(board.Money, func(i, j int) bool {
		if board.Money[i].SkinsWonCents != board.Money[j].SkinsWonCents {
			return board.Money[i].SkinsWonCents > board.Money[j].SkinsWonCents
		}
		return board.Money[i].PlayerID.String() < board.Money[j].PlayerID.String()
	})
	return board, nil
}

// sideTeam resolves the team a side plays for, nil when any player is
// unassigned or the side spans teams.
func sideTeam(side []uuid.UUID, teamOf map[uuid.UUID]*uuid.UUID) *uuid.UUID {
	var team *uuid.UUID
	for _, playerID := range side {
		t := teamOf[playerID]
		if t == nil {
			return nil
		}
		if team == nil {
			team = t
		} else if *team != *t {
			return nil
		}
	}
	return team
}

// entrantPlayers parses a skins entrant ID back into player IDs. Team
// entrants join their players with "+".
func entrantPlayers(entrantID string) []uuid.UUID {
	var ids []uuid.UUID
	for _, part := range strings.Split(entrantID, "+") {
		if id, err := uuid.Parse(part); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// splitCents divides winnings across n players, front-loading the remainder.
func splitCents(amount int64, n int) []int64 {
	if n == 0 {
		return nil
	}
	shares := make([]int64, n)
	base := amount / int64(n)
	remainder := amount % int64(n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}
