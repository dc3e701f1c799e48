package game

import (
	"fmt"
	"math"
	"sort"
)

// standardSlope is the USGA neutral slope rating a course handicap scales
// against.
const standardSlope = 113

// Slope ratings outside this range do not exist on a real scorecard.
const (
	minSlope = 55
	maxSlope = 155
)

// PlayerHandicapContext carries the per-round inputs for one player's course
// handicap. Course handicaps are derived fresh per round/tee combination and
// never persisted as authoritative.
type PlayerHandicapContext struct {
	PlayerID      string  `json:"playerId"`
	HandicapIndex float64 `json:"handicapIndex"`
	Slope         int     `json:"slope"`
	Rating        float64 `json:"rating"`
}

// CourseHandicap scales a handicap index to a tee's slope rating, rounded to
// the nearest integer with 0.5 rounding away from zero. A negative "plus"
// index still scales; only an index of exactly zero yields zero.
func CourseHandicap(index float64, slope int) (int, error) {
	if slope < minSlope || slope > maxSlope {
		return 0, fmt.Errorf("%w: slope %d outside %d..%d", ErrInvalidInput, slope, minSlope, maxSlope)
	}
	if math.IsNaN(index) || math.IsInf(index, 0) {
		return 0, fmt.Errorf("%w: handicap index %v", ErrInvalidInput, index)
	}
	return int(math.Round(index * float64(slope) / standardSlope)), nil
}

// PlayingHandicap adjusts a course handicap relative to the lowest handicap
// in the group. The lowest player plays off scratch; nobody plays off a
// negative number.
func PlayingHandicap(courseHandicap, lowestInGroup int) int {
	return max(0, courseHandicap-lowestInGroup)
}

// TeamHandicap combines a pair's playing handicaps into one team handicap
// using the format's percentage split.
func TeamHandicap(lowHandicap, highHandicap int, combo ComboPercentages) int {
	combined := float64(lowHandicap)*float64(combo.LowPct)/100 +
		float64(highHandicap)*float64(combo.HighPct)/100
	return int(math.Round(combined))
}

// MatchHandicaps is the full handicap derivation for one match: per-player
// course and playing handicaps plus, for team formats, one combined handicap
// per side.
type MatchHandicaps struct {
	Course    map[string]int `json:"course"`
	Playing   map[string]int `json:"playing"`
	Side1Team int            `json:"side1Team"`
	Side2Team int            `json:"side2Team"`
}

// ComputeMatchHandicaps orchestrates the handicap math for every player in a
// match. Individual course handicaps are clamped to the policy ceiling, the
// unified percentage is applied when configured, the off-the-low baseline is
// taken from the lowest handicap present in this match, and team formats
// combine each side's pair via the policy's percentage table. Skins selects
// the skins-specific combination table.
func ComputeMatchHandicaps(policy HandicapPolicy, format Format, side1, side2 []PlayerHandicapContext, skins bool) (MatchHandicaps, error) {
	if err := policy.Validate(); err != nil {
		return MatchHandicaps{}, err
	}
	if !format.Valid() {
		return MatchHandicaps{}, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, format)
	}
	if len(side1) == 0 || len(side2) == 0 {
		return MatchHandicaps{}, fmt.Errorf("%w: both sides need at least one player", ErrInvalidInput)
	}
	if format.IsTeam() && (len(side1) != 2 || len(side2) != 2) {
		return MatchHandicaps{}, fmt.Errorf("%w: %s sides must have exactly two players", ErrInvalidInput, format)
	}

	result := MatchHandicaps{
		Course:  make(map[string]int),
		Playing: make(map[string]int),
	}

	all := make([]PlayerHandicapContext, 0, len(side1)+len(side2))
	all = append(all, side1...)
	all = append(all, side2...)

	adjusted := make(map[string]int, len(all))
	for _, player := range all {
		ch, err := CourseHandicap(player.HandicapIndex, player.Slope)
		if err != nil {
			return MatchHandicaps{}, fmt.Errorf("player %s: %w", player.PlayerID, err)
		}
		if policy.MaxHandicap != nil && ch > *policy.MaxHandicap {
			ch = *policy.MaxHandicap
		}
		result.Course[player.PlayerID] = ch

		adj := ch
		if policy.UseUnifiedFormula {
			adj = int(math.Round(float64(ch) * float64(policy.Percentage) / 100))
		}
		adjusted[player.PlayerID] = adj
	}

	if policy.OffTheLow {
		low := math.MaxInt
		for _, adj := range adjusted {
			low = min(low, adj)
		}
		for id, adj := range adjusted {
			result.Playing[id] = PlayingHandicap(adj, low)
		}
	} else {
		for id, adj := range adjusted {
			result.Playing[id] = adj
		}
	}

	if format.IsTeam() {
		combo, err := policy.teamCombo(format, skins)
		if err != nil {
			return MatchHandicaps{}, err
		}
		result.Side1Team = sideTeamHandicap(side1, result.Playing, combo)
		result.Side2Team = sideTeamHandicap(side2, result.Playing, combo)
	}

	return result, nil
}

func sideTeamHandicap(side []PlayerHandicapContext, playing map[string]int, combo ComboPercentages) int {
	a, b := playing[side[0].PlayerID], playing[side[1].PlayerID]
	return TeamHandicap(min(a, b), max(a, b), combo)
}

// StrokeAllocation produces one hole number per handicap stroke, ordered by
// ascending stroke index. A handicap over 18 wraps: every hole receives one
// stroke and the (handicap - 18) hardest holes receive a second.
func StrokeAllocation(handicap int, holes []Hole) ([]int, error) {
	if err := ValidateHoleSet(holes); err != nil {
		return nil, err
	}
	if handicap <= 0 {
		return nil, nil
	}

	byIndex := make([]Hole, len(holes))
	copy(byIndex, holes)
	sort.Slice(byIndex, func(i, j int) bool {
		return byIndex[i].StrokeIndex < byIndex[j].StrokeIndex
	})

	allocation := make([]int, 0, handicap)
	for _, h := range byIndex {
		if ReceivesStroke(handicap, h.StrokeIndex) {
			allocation = append(allocation, h.Number)
		}
	}
	for _, h := range byIndex {
		if ReceivesDoubleStroke(handicap, h.StrokeIndex) {
			allocation = append(allocation, h.Number)
		}
	}
	return allocation, nil
}

// ReceivesStroke reports whether a player with the given handicap gets a
// stroke on a hole with the given stroke index.
func ReceivesStroke(handicap, holeStrokeIndex int) bool {
	return holeStrokeIndex <= handicap
}

// ReceivesDoubleStroke reports whether the hole gets a second stroke, which
// only happens once the handicap exceeds 18.
func ReceivesDoubleStroke(handicap, holeStrokeIndex int) bool {
	return handicap > HolesPerRound && holeStrokeIndex <= handicap-HolesPerRound
}

// StrokesOnHole returns 0, 1, or 2: the strokes a player with the given
// handicap receives on a hole with the given stroke index.
func StrokesOnHole(handicap, holeStrokeIndex int) int {
	strokes := 0
	if ReceivesStroke(handicap, holeStrokeIndex) {
		strokes++
	}
	if ReceivesDoubleStroke(handicap, holeStrokeIndex) {
		strokes++
	}
	return strokes
}
