package game

import (
	"fmt"
	"sort"
)

// SkinsEntrant is one entry in a skins pool: an individual player or a team,
// with its representative net score per hole. A hole absent from NetByHole
// means the entrant has no qualifying score there.
type SkinsEntrant struct {
	ID        string      `json:"id"`
	NetByHole map[int]int `json:"netByHole"`
}

// SkinsHoleResult records one hole's skins outcome. An empty WinnerID means
// the hole was tied (or had no qualifying score) and its stake carried
// forward to the next hole with a unique winner.
type SkinsHoleResult struct {
	HoleNumber    int    `json:"holeNumber"`
	WinnerID      string `json:"winnerId,omitempty"`
	WinnerNet     *int   `json:"winnerNetScore,omitempty"`
	ValueCents    int64  `json:"valueCents"`
	HolesIncluded int    `json:"holesIncluded"`
}

// SkinsEntrantSummary aggregates one entrant's winnings across the round.
type SkinsEntrantSummary struct {
	ID            string `json:"id"`
	SkinsWon      int    `json:"skinsWon"`
	MoneyWonCents int64  `json:"moneyWonCents"`
}

// SkinsResult is the full skins computation for one round and one pool.
type SkinsResult struct {
	Holes            []SkinsHoleResult     `json:"holes"`
	Entrants         []SkinsEntrantSummary `json:"entrants"`
	TotalPotCents    int64                 `json:"totalPotCents"`
	SkinsAwarded     int                   `json:"skinsAwarded"`
	SkinValueCents   int64                 `json:"skinValueCents"`
	UndistributedPot int64                 `json:"undistributedPotCents"`
}

// ComputeSkins awards each hole's skin to the unique strict-minimum net score
// among the entrants, carrying tied holes forward onto the next hole that
// produces a unique winner. The pot is entry fee times the eligible player
// count; it divides exactly across the awarded skins, with any remainder
// cents going to the earliest payouts so the distributed total always equals
// the pot. A round that awards no skins distributes nothing.
//
// playerCount is the number of players staking an entry fee, which for team
// pools differs from the number of entrants.
func ComputeSkins(entrants []SkinsEntrant, holesPlayed int, entryFeeCents int64, playerCount int) (SkinsResult, error) {
	if holesPlayed < 0 || holesPlayed > HolesPerRound {
		return SkinsResult{}, fmt.Errorf("%w: holes played %d", ErrInvalidInput, holesPlayed)
	}
	if entryFeeCents < 0 {
		return SkinsResult{}, fmt.Errorf("%w: entry fee %d", ErrInvalidInput, entryFeeCents)
	}
	if playerCount < len(entrants) {
		return SkinsResult{}, fmt.Errorf("%w: %d players staking for %d entrants", ErrInvalidInput, playerCount, len(entrants))
	}
	seen := make(map[string]bool, len(entrants))
	for _, e := range entrants {
		if e.ID == "" {
			return SkinsResult{}, fmt.Errorf("%w: entrant with empty ID", ErrInvalidInput)
		}
		if seen[e.ID] {
			return SkinsResult{}, fmt.Errorf("%w: duplicate entrant %s", ErrInvalidInput, e.ID)
		}
		seen[e.ID] = true
	}

	result := SkinsResult{
		TotalPotCents: entryFeeCents * int64(playerCount),
	}

	// First pass: find the unique-winner holes so the pot can be divided.
	type holeWin struct {
		hole   int
		winner string
		net    int
	}
	var wins []holeWin
	for hole := 1; hole <= holesPlayed; hole++ {
		winner, net, unique := holeWinner(entrants, hole)
		if unique {
			wins = append(wins, holeWin{hole: hole, winner: winner, net: net})
		}
	}
	result.SkinsAwarded = len(wins)
	if result.SkinsAwarded > 0 {
		result.SkinValueCents = result.TotalPotCents / int64(result.SkinsAwarded)
	} else {
		result.UndistributedPot = result.TotalPotCents
	}
	remainder := int64(0)
	if result.SkinsAwarded > 0 {
		remainder = result.TotalPotCents % int64(result.SkinsAwarded)
	}

	// Second pass: walk the holes in order, carrying tied stakes forward and
	// assigning each payout its exact value.
	totals := make(map[string]*SkinsEntrantSummary, len(entrants))
	for _, e := range entrants {
		totals[e.ID] = &SkinsEntrantSummary{ID: e.ID}
	}
	carried := 0
	winIdx := 0
	for hole := 1; hole <= holesPlayed; hole++ {
		winner, net, unique := holeWinner(entrants, hole)
		if !unique {
			carried++
			result.Holes = append(result.Holes, SkinsHoleResult{HoleNumber: hole})
			continue
		}
		value := result.SkinValueCents
		if int64(winIdx) < remainder {
			value++
		}
		winIdx++
		netCopy := net
		result.Holes = append(result.Holes, SkinsHoleResult{
			HoleNumber:    hole,
			WinnerID:      winner,
			WinnerNet:     &netCopy,
			ValueCents:    value,
			HolesIncluded: carried + 1,
		})
		summary := totals[winner]
		summary.SkinsWon++
		summary.MoneyWonCents += value
		carried = 0
	}

	for _, e := range entrants {
		result.Entrants = append(result.Entrants, *totals[e.ID])
	}
	sort.Slice(result.Entrants, func(i, j int) bool {
		if result.Entrants[i].MoneyWonCents != result.Entrants[j].MoneyWonCents {
			return result.Entrants[i].MoneyWonCents > result.Entrants[j].MoneyWonCents
		}
		return result.Entrants[i].ID < result.Entrants[j].ID
	})
	return result, nil
}

// holeWinner finds the strict-minimum net score for one hole. unique is false
// when the minimum is shared or no entrant has a qualifying score.
func holeWinner(entrants []SkinsEntrant, hole int) (winner string, net int, unique bool) {
	found := false
	for _, e := range entrants {
		n, ok := e.NetByHole[hole]
		if !ok {
			continue
		}
		switch {
		case !found || n < net:
			winner, net, unique, found = e.ID, n, true, true
		case n == net:
			unique = false
		}
	}
	if !found || !unique {
		return "", 0, false
	}
	return winner, net, true
}
