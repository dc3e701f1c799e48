package roundservice

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
)

// PlayerLine is one player's derived scoring line for a round.
type PlayerLine struct {
	PlayerID        uuid.UUID `json:"playerId"`
	CourseHandicap  int       `json:"courseHandicap"`
	PlayingHandicap int       `json:"playingHandicap"`
	HolesPlayed     int       `json:"holesPlayed"`
	GrossTotal      int       `json:"grossTotal"`
	NetTotal        int       `json:"netTotal"`
}

// MatchResult is one match's derived state plus the handicap derivation that
// produced it.
type MatchResult struct {
	MatchID      uuid.UUID           `json:"matchId"`
	Side1Players []uuid.UUID         `json:"side1Players"`
	Side2Players []uuid.UUID         `json:"side2Players"`
	Handicaps    game.MatchHandicaps `json:"handicaps"`
	State        game.MatchState     `json:"state"`
}

// RoundResults is the full derived output for a round. Nothing in it is ever
// persisted: every call rebuilds it from the tee sheet, the handicap policy,
// and the complete gross score history, so a corrected score or a policy
// change is reflected everywhere on the next fetch.
type RoundResults struct {
	RoundID      uuid.UUID         `json:"roundId"`
	Format       game.Format       `json:"format"`
	Status       string            `json:"status"`
	Players      []PlayerLine      `json:"players"`
	Matches      []MatchResult     `json:"matches,omitempty"`
	Skins        *game.SkinsResult `json:"skins,omitempty"`
	Tilt         []game.TiltResult `json:"tilt,omitempty"`
	TiltPotCents int64             `json:"tiltPotCents,omitempty"`
}

// ComputeResults derives the complete scoring picture for a round: per-player
// net lines, match states, the skins pool, and TILT lines, in that order. For
// one-ball formats the side's ball is recorded against the first listed player
// of the side.
func (s *RoundService) ComputeResults(ctx context.Context, roundID uuid.UUID) (*RoundResults, error) {
	round, err := s.repo.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	trip, err := s.trips.GetTrip(ctx, round.TripID)
	if err != nil {
		return nil, err
	}
	policy := trip.HandicapConfig
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("trip %s handicap policy: %w", trip.ID, err)
	}

	holes, err := s.GetTeeSheet(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if err := game.ValidateHoleSet(holes); err != nil {
		return nil, fmt.Errorf("round %s tee sheet: %w", roundID, err)
	}

	players, err := s.trips.ListPlayers(ctx, round.TripID)
	if err != nil {
		return nil, err
	}
	indexByPlayer := make(map[uuid.UUID]float64, len(players))
	for _, p := range players {
		indexByPlayer[p.ID] = p.HandicapIndex
	}

	scores, err := s.repo.ListHoleScores(ctx, roundID)
	if err != nil {
		return nil, err
	}
	grossByPlayer := make(map[uuid.UUID]map[int]int)
	for _, score := range scores {
		if grossByPlayer[score.PlayerID] == nil {
			grossByPlayer[score.PlayerID] = make(map[int]int)
		}
		grossByPlayer[score.PlayerID][score.HoleNumber] = score.GrossStrokes
	}

	rc := &recompute{
		round:         round,
		policy:        policy,
		holes:         holes,
		indexByPlayer: indexByPlayer,
		grossByPlayer: grossByPlayer,
	}

	out := &RoundResults{
		RoundID: round.ID,
		Format:  round.Format,
		Status:  round.Status,
	}
	if err := rc.playerLines(out); err != nil {
		return nil, err
	}
	if round.Format.IsMatchPlay() {
		matches, err := s.repo.ListMatches(ctx, roundID)
		if err != nil {
			return nil, err
		}
		if err := rc.matchResults(out, matches); err != nil {
			return nil, err
		}
		if round.SkinsEntryFee > 0 {
			if err := rc.skins(out, matches); err != nil {
				return nil, err
			}
		}
	} else if round.SkinsEntryFee > 0 {
		if err := rc.skins(out, nil); err != nil {
			return nil, err
		}
	}
	if round.TiltEntryFee > 0 {
		if err := rc.tilt(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// recompute carries the loaded inputs through the derivation steps.
type recompute struct {
	round         *rounddb.Round
	policy        game.HandicapPolicy
	holes         []game.Hole
	indexByPlayer map[uuid.UUID]float64
	grossByPlayer map[uuid.UUID]map[int]int
}

// scoredPlayers returns the players with at least one recorded score, in a
// deterministic order.
func (rc *recompute) scoredPlayers() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rc.grossByPlayer))
	for id := range rc.grossByPlayer {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// fieldHandicaps derives course and playing handicaps for every scored player
// against the whole field. Match play overrides these per match; stroke play,
// skins over individuals, and TILT use them directly.
func (rc *recompute) fieldHandicaps() (course, playing map[uuid.UUID]int, err error) {
	course = make(map[uuid.UUID]int)
	playing = make(map[uuid.UUID]int)
	adjusted := make(map[uuid.UUID]int)
	for _, id := range rc.scoredPlayers() {
		index, ok := rc.indexByPlayer[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: scores recorded for unknown player %s", game.ErrInvalidInput, id)
		}
		ch, err := game.CourseHandicap(index, rc.round.CourseSlope)
		if err != nil {
			return nil, nil, fmt.Errorf("player %s: %w", id, err)
		}
		if rc.policy.MaxHandicap != nil && ch > *rc.policy.MaxHandicap {
			ch = *rc.policy.MaxHandicap
		}
		course[id] = ch
		adj := ch
		if rc.policy.UseUnifiedFormula {
			adj = int(math.Round(float64(ch) * float64(rc.policy.Percentage) / 100))
		}
		adjusted[id] = adj
	}
	if rc.policy.OffTheLow && len(adjusted) > 0 {
		low := math.MaxInt
		for _, adj := range adjusted {
			low = min(low, adj)
		}
		for id, adj := range adjusted {
			playing[id] = game.PlayingHandicap(adj, low)
		}
	} else {
		for id, adj := range adjusted {
			playing[id] = adj
		}
	}
	return course, playing, nil
}

// netLine computes one player's ordered per-hole nets under the given
// handicap. Gaps in the score sequence surface as errors rather than being
// skipped.
func (rc *recompute) netLine(playerID uuid.UUID, handicap int) (netByHole map[int]int, holesPlayed int, err error) {
	gross := rc.grossByPlayer[playerID]
	holesPlayed = len(gross)
	netByHole = make(map[int]int, holesPlayed)
	for holeNumber, strokes := range gross {
		hole, ok := game.HoleByNumber(rc.holes, holeNumber)
		if !ok {
			return nil, 0, fmt.Errorf("%w: no hole %d in tee sheet", game.ErrInvalidHoleSet, holeNumber)
		}
		net, err := game.HoleNet(strokes, hole, handicap, rc.round.MaxScoreOverPar)
		if err != nil {
			return nil, 0, fmt.Errorf("player %s: %w", playerID, err)
		}
		netByHole[holeNumber] = net
	}
	if _, err := game.OrderedNets(netByHole, holesPlayed); err != nil {
		return nil, 0, fmt.Errorf("player %s: %w", playerID, err)
	}
	return netByHole, holesPlayed, nil
}

func (rc *recompute) playerLines(out *RoundResults) error {
	course, playing, err := rc.fieldHandicaps()
	if err != nil {
		return err
	}
	for _, id := range rc.scoredPlayers() {
		netByHole, holesPlayed, err := rc.netLine(id, playing[id])
		if err != nil {
			return err
		}
		nets, err := game.OrderedNets(netByHole, holesPlayed)
		if err != nil {
			return err
		}
		grossTotal := 0
		for _, strokes := range rc.grossByPlayer[id] {
			grossTotal += strokes
		}
		out.Players = append(out.Players, PlayerLine{
			PlayerID:        id,
			CourseHandicap:  course[id],
			PlayingHandicap: playing[id],
			HolesPlayed:     holesPlayed,
			GrossTotal:      grossTotal,
			NetTotal:        game.TotalNet(nets),
		})
	}
	return nil
}

// sideContexts builds the handicap inputs for one side of a match.
func (rc *recompute) sideContexts(side []uuid.UUID) ([]game.PlayerHandicapContext, error) {
	ctxs := make([]game.PlayerHandicapContext, len(side))
	for i, id := range side {
		index, ok := rc.indexByPlayer[id]
		if !ok {
			return nil, fmt.Errorf("%w: match references unknown player %s", game.ErrInvalidInput, id)
		}
		ctxs[i] = game.PlayerHandicapContext{
			PlayerID:      id.String(),
			HandicapIndex: index,
			Slope:         rc.round.CourseSlope,
			Rating:        rc.round.CourseRating,
		}
	}
	return ctxs, nil
}

// sideNets produces a side's ordered representative nets. For one-ball
// formats the shared ball lives on the first listed player and takes the side
// team handicap; otherwise each player's own ball takes their playing
// handicap and the format reduces the pair.
func (rc *recompute) sideNets(side []uuid.UUID, hc game.MatchHandicaps, teamHandicap int) ([]int, error) {
	format := rc.round.Format
	if format.OneBallPerSide() {
		netByHole, holesPlayed, err := rc.netLine(side[0], teamHandicap)
		if err != nil {
			return nil, err
		}
		return game.OrderedNets(netByHole, holesPlayed)
	}

	perPlayer := make([][]int, len(side))
	holesPlayed := math.MaxInt
	for i, id := range side {
		netByHole, n, err := rc.netLine(id, hc.Playing[id.String()])
		if err != nil {
			return nil, err
		}
		holesPlayed = min(holesPlayed, n)
		nets, err := game.OrderedNets(netByHole, n)
		if err != nil {
			return nil, err
		}
		perPlayer[i] = nets
	}
	if holesPlayed == math.MaxInt {
		holesPlayed = 0
	}

	sideNets := make([]int, holesPlayed)
	for h := 0; h < holesPlayed; h++ {
		ball := make([]int, len(side))
		for i := range side {
			ball[i] = perPlayer[i][h]
		}
		net, err := game.TeamHoleNet(format, ball)
		if err != nil {
			return nil, err
		}
		sideNets[h] = net
	}
	return sideNets, nil
}

func (rc *recompute) matchResults(out *RoundResults, matches []rounddb.Match) error {
	for _, match := range matches {
		side1, err := rc.sideContexts(match.Side1Players)
		if err != nil {
			return err
		}
		side2, err := rc.sideContexts(match.Side2Players)
		if err != nil {
			return err
		}
		hc, err := game.ComputeMatchHandicaps(rc.policy, rc.round.Format, side1, side2, false)
		if err != nil {
			return fmt.Errorf("match %s: %w", match.ID, err)
		}

		nets1, err := rc.sideNets(match.Side1Players, hc, hc.Side1Team)
		if err != nil {
			return err
		}
		nets2, err := rc.sideNets(match.Side2Players, hc, hc.Side2Team)
		if err != nil {
			return err
		}
		n := min(len(nets1), len(nets2))
		outcomes, err := game.HoleOutcomes(nets1[:n], nets2[:n])
		if err != nil {
			return err
		}
		state, err := game.ComputeMatchState(outcomes)
		if err != nil {
			return err
		}
		out.Matches = append(out.Matches, MatchResult{
			MatchID:      match.ID,
			Side1Players: match.Side1Players,
			Side2Players: match.Side2Players,
			Handicaps:    hc,
			State:        state,
		})
	}
	return nil
}

// skins assembles the skins pool. Team formats enter one entrant per match
// side, scored by the round's skins team rule over skins-specific handicaps;
// individual formats enter every scored player. Stakes are per player either
// way.
func (rc *recompute) skins(out *RoundResults, matches []rounddb.Match) error {
	var entrants []game.SkinsEntrant
	stakingPlayers := 0
	holesPlayed := math.MaxInt

	if rc.round.Format.IsTeam() {
		for _, match := range matches {
			for _, side := range [][]uuid.UUID{match.Side1Players, match.Side2Players} {
				entrant, n, err := rc.teamSkinsEntrant(match, side)
				if err != nil {
					return err
				}
				entrants = append(entrants, entrant)
				stakingPlayers += len(side)
				holesPlayed = min(holesPlayed, n)
			}
		}
	} else {
		_, playing, err := rc.fieldHandicaps()
		if err != nil {
			return err
		}
		for _, id := range rc.scoredPlayers() {
			netByHole, n, err := rc.netLine(id, playing[id])
			if err != nil {
				return err
			}
			entrants = append(entrants, game.SkinsEntrant{ID: id.String(), NetByHole: netByHole})
			stakingPlayers++
			holesPlayed = min(holesPlayed, n)
		}
	}
	if holesPlayed == math.MaxInt {
		holesPlayed = 0
	}

	result, err := game.ComputeSkins(entrants, holesPlayed, rc.round.SkinsEntryFee, stakingPlayers)
	if err != nil {
		return err
	}
	out.Skins = &result
	return nil
}

// teamSkinsEntrant builds one side's skins entry using the skins combination
// table and the round's team rule: best ball by default, combined net when
// configured.
func (rc *recompute) teamSkinsEntrant(match rounddb.Match, side []uuid.UUID) (game.SkinsEntrant, int, error) {
	side1, err := rc.sideContexts(match.Side1Players)
	if err != nil {
		return game.SkinsEntrant{}, 0, err
	}
	side2, err := rc.sideContexts(match.Side2Players)
	if err != nil {
		return game.SkinsEntrant{}, 0, err
	}
	hc, err := game.ComputeMatchHandicaps(rc.policy, rc.round.Format, side1, side2, true)
	if err != nil {
		return game.SkinsEntrant{}, 0, fmt.Errorf("match %s skins: %w", match.ID, err)
	}

	teamHandicap := hc.Side1Team
	if samePlayers(side, match.Side2Players) {
		teamHandicap = hc.Side2Team
	}

	if rc.round.Format.OneBallPerSide() {
		netByHole, n, err := rc.netLine(side[0], teamHandicap)
		if err != nil {
			return game.SkinsEntrant{}, 0, err
		}
		return game.SkinsEntrant{ID: sideID(side), NetByHole: netByHole}, n, nil
	}

	perPlayer := make([]map[int]int, len(side))
	holesPlayed := math.MaxInt
	for i, id := range side {
		netByHole, n, err := rc.netLine(id, hc.Playing[id.String()])
		if err != nil {
			return game.SkinsEntrant{}, 0, err
		}
		perPlayer[i] = netByHole
		holesPlayed = min(holesPlayed, n)
	}
	if holesPlayed == math.MaxInt {
		holesPlayed = 0
	}

	combined := make(map[int]int, holesPlayed)
	for h := 1; h <= holesPlayed; h++ {
		if rc.round.SkinsTeamRule == rounddb.SkinsTeamRuleCombinedNet {
			sum := 0
			for i := range side {
				sum += perPlayer[i][h]
			}
			combined[h] = sum
		} else {
			best := perPlayer[0][h]
			for i := 1; i < len(side); i++ {
				best = min(best, perPlayer[i][h])
			}
			combined[h] = best
		}
	}
	return game.SkinsEntrant{ID: sideID(side), NetByHole: combined}, holesPlayed, nil
}

func (rc *recompute) tilt(out *RoundResults) error {
	_, playing, err := rc.fieldHandicaps()
	if err != nil {
		return err
	}
	cfg := game.DefaultTiltConfig()
	participants := 0
	for _, id := range rc.scoredPlayers() {
		netByHole, holesPlayed, err := rc.netLine(id, playing[id])
		if err != nil {
			return err
		}
		line, err := game.ComputeTilt(cfg, id.String(), rc.holes, netByHole, holesPlayed)
		if err != nil {
			return err
		}
		out.Tilt = append(out.Tilt, line)
		participants++
	}
	out.TiltPotCents = game.TiltPot(rc.round.TiltEntryFee, participants)
	return nil
}

func sideID(side []uuid.UUID) string {
	parts := make([]string, len(side))
	for i, id := range side {
		parts[i] = id.String()
	}
	return strings.Join(parts, "+")
}

func samePlayers(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
