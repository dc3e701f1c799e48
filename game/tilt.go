package game

import "fmt"

// TiltConfig holds the TILT point table and multiplier parameters. The table
// is configuration the trip can tune, validated here, never hardcoded
// arithmetic inside the engine.
type TiltConfig struct {
	// BasePoints maps net-vs-par to base points. Scores beyond the range are
	// clamped to MinNetVsPar / MaxNetVsPar before lookup.
	BasePoints  map[int]int `json:"basePoints"`
	MinNetVsPar int         `json:"minNetVsPar"`
	MaxNetVsPar int         `json:"maxNetVsPar"`

	// StreakThreshold is the base-point value a hole must reach to extend the
	// streak. A hole below it resets the multiplier.
	StreakThreshold int `json:"streakThreshold"`
	// MultiplierStep is added to the multiplier after each streak hole.
	MultiplierStep int `json:"multiplierStep"`
	// MaxMultiplier caps the escalation.
	MaxMultiplier int `json:"maxMultiplier"`
}

// DefaultTiltConfig is the house table: modified Stableford with net
// double-eagle worth the most, a penalty for double bogey or worse, and a
// birdie-or-better streak doubling up to 4x.
func DefaultTiltConfig() TiltConfig {
	return TiltConfig{
		BasePoints: map[int]int{
			-3: 8,
			-2: 5,
			-1: 2,
			0:  0,
			1:  -1,
			2:  -3,
		},
		MinNetVsPar:     -3,
		MaxNetVsPar:     2,
		StreakThreshold: 2,
		MultiplierStep:  1,
		MaxMultiplier:   4,
	}
}

// Validate checks the table covers its declared range and the multiplier
// parameters are usable. Returns ErrInvalidInput on the first violation.
func (c TiltConfig) Validate() error {
	if c.MinNetVsPar >= c.MaxNetVsPar {
		return fmt.Errorf("%w: tilt net-vs-par range [%d, %d]", ErrInvalidInput, c.MinNetVsPar, c.MaxNetVsPar)
	}
	for v := c.MinNetVsPar; v <= c.MaxNetVsPar; v++ {
		if _, ok := c.BasePoints[v]; !ok {
			return fmt.Errorf("%w: tilt base points missing entry for net-vs-par %d", ErrInvalidInput, v)
		}
	}
	if c.MultiplierStep < 1 {
		return fmt.Errorf("%w: tilt multiplier step %d", ErrInvalidInput, c.MultiplierStep)
	}
	if c.MaxMultiplier < 1 {
		return fmt.Errorf("%w: tilt max multiplier %d", ErrInvalidInput, c.MaxMultiplier)
	}
	return nil
}

// TiltHole is one hole's TILT computation for one player.
type TiltHole struct {
	HoleNumber   int `json:"holeNumber"`
	NetVsPar     int `json:"netVsPar"`
	BasePoints   int `json:"basePoints"`
	Multiplier   int `json:"multiplier"`
	Points       int `json:"points"`
	RunningTotal int `json:"runningTotal"`
}

// TiltResult is one player's full TILT line for a round.
type TiltResult struct {
	PlayerID    string     `json:"playerId"`
	Holes       []TiltHole `json:"holes"`
	TotalPoints int        `json:"totalPoints"`
	// FinalMultiplier is the multiplier in effect after the last hole played,
	// shown as the player's live streak state. It is display only and not
	// part of total scoring.
	FinalMultiplier int `json:"finalMultiplier"`
}

// ComputeTilt runs the TILT computation for one player across the holes
// played so far. The multiplier applied to a hole is the streak state
// entering that hole: it starts at 1, steps up after every hole at or above
// the streak threshold, and resets to 1 after a hole below it.
func ComputeTilt(cfg TiltConfig, playerID string, holes []Hole, netByHole map[int]int, holesPlayed int) (TiltResult, error) {
	if err := cfg.Validate(); err != nil {
		return TiltResult{}, err
	}
	if err := ValidateHoleSet(holes); err != nil {
		return TiltResult{}, err
	}
	nets, err := OrderedNets(netByHole, holesPlayed)
	if err != nil {
		return TiltResult{}, err
	}

	result := TiltResult{PlayerID: playerID, FinalMultiplier: 1}
	multiplier := 1
	running := 0
	for i, net := range nets {
		holeNumber := i + 1
		hole, ok := HoleByNumber(holes, holeNumber)
		if !ok {
			return TiltResult{}, fmt.Errorf("%w: no hole %d in tee sheet", ErrInvalidHoleSet, holeNumber)
		}
		netVsPar := net - hole.Par
		clamped := min(max(netVsPar, cfg.MinNetVsPar), cfg.MaxNetVsPar)
		base := cfg.BasePoints[clamped]
		points := base * multiplier
		running += points
		result.Holes = append(result.Holes, TiltHole{
			HoleNumber:   holeNumber,
			NetVsPar:     netVsPar,
			BasePoints:   base,
			Multiplier:   multiplier,
			Points:       points,
			RunningTotal: running,
		})
		if base >= cfg.StreakThreshold {
			multiplier = min(multiplier+cfg.MultiplierStep, cfg.MaxMultiplier)
		} else {
			multiplier = 1
		}
	}
	result.TotalPoints = running
	result.FinalMultiplier = multiplier
	return result, nil
}

// TiltPot sizes the TILT pot the same way skins does: entry fee times player
// count. Distribution by final standings is a settlement concern outside the
// engine.
func TiltPot(entryFeeCents int64, playerCount int) int64 {
	return entryFeeCents * int64(playerCount)
}
