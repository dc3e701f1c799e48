package game

import "fmt"

// ComboPercentages is the low/high split applied when two handicaps combine
// into one team handicap. The pair need not sum to 100: foursomes
// conventionally plays 60/40 and scramble lower still.
type ComboPercentages struct {
	LowPct  int `json:"lowPct"`
	HighPct int `json:"highPct"`
}

// HandicapPolicy is the trip-scoped handicap configuration. It is loaded from
// the trip record and threaded into every engine call as an immutable value;
// nothing in the engines holds it as ambient state.
type HandicapPolicy struct {
	// Percentage is the overall allowance applied to course handicaps when
	// UseUnifiedFormula is set.
	Percentage int `json:"percentage"`

	// OffTheLow baselines playing handicaps against the lowest handicap
	// present in the match, not the whole field.
	OffTheLow bool `json:"offTheLow"`

	// MaxHandicap clamps any individual course handicap before combination.
	// nil means no ceiling.
	MaxHandicap *int `json:"maxHandicap"`

	// UseUnifiedFormula applies Percentage uniformly to all players rather
	// than relying on per-format combination tables alone.
	UseUnifiedFormula bool `json:"useUnifiedFormula"`

	// TeamCombos maps each team format to its match-play combination split.
	TeamCombos map[Format]ComboPercentages `json:"teamCombos"`

	// SkinsTeamCombos maps each team format to the split used when combining
	// team handicaps for skins entries.
	SkinsTeamCombos map[Format]ComboPercentages `json:"skinsTeamCombos"`
}

// DefaultHandicapPolicy returns the conventional trip setup: full allowance,
// off the low, 60/40 foursomes, suppressed scramble percentages.
func DefaultHandicapPolicy() HandicapPolicy {
	return HandicapPolicy{
		Percentage: 100,
		OffTheLow:  true,
		TeamCombos: map[Format]ComboPercentages{
			FormatFourball:        {LowPct: 100, HighPct: 100},
			FormatFoursomes:       {LowPct: 60, HighPct: 40},
			FormatModifiedAltShot: {LowPct: 60, HighPct: 40},
			FormatScramble:        {LowPct: 35, HighPct: 15},
			FormatShamble:         {LowPct: 100, HighPct: 100},
		},
		SkinsTeamCombos: map[Format]ComboPercentages{
			FormatFourball:        {LowPct: 100, HighPct: 100},
			FormatFoursomes:       {LowPct: 60, HighPct: 40},
			FormatModifiedAltShot: {LowPct: 60, HighPct: 40},
			FormatScramble:        {LowPct: 35, HighPct: 15},
			FormatShamble:         {LowPct: 100, HighPct: 100},
		},
	}
}

// Validate checks the policy's domain bounds: percentages within 0..100 and
// combo tables only for known team formats. Returns ErrInvalidInput on the
// first violation.
func (p HandicapPolicy) Validate() error {
	if p.Percentage < 0 || p.Percentage > 100 {
		return fmt.Errorf("%w: percentage %d outside 0..100", ErrInvalidInput, p.Percentage)
	}
	if p.MaxHandicap != nil && *p.MaxHandicap < 0 {
		return fmt.Errorf("%w: max handicap %d is negative", ErrInvalidInput, *p.MaxHandicap)
	}
	for name, table := range map[string]map[Format]ComboPercentages{
		"teamCombos":      p.TeamCombos,
		"skinsTeamCombos": p.SkinsTeamCombos,
	} {
		for format, combo := range table {
			if !format.Valid() || !format.IsTeam() {
				return fmt.Errorf("%w: %s entry for non-team format %q", ErrInvalidInput, name, format)
			}
			if combo.LowPct < 0 || combo.LowPct > 100 || combo.HighPct < 0 || combo.HighPct > 100 {
				return fmt.Errorf("%w: %s percentages for %s outside 0..100", ErrInvalidInput, name, format)
			}
		}
	}
	return nil
}

// teamCombo looks up the combination split for a team format, from the skins
// table when skins is set. Missing entries fail with
// ErrUnsupportedFormatCombination so a misconfigured trip surfaces as
// "handicap policy missing for this format" rather than a silent 0/0 split.
func (p HandicapPolicy) teamCombo(format Format, skins bool) (ComboPercentages, error) {
	table := p.TeamCombos
	if skins {
		table = p.SkinsTeamCombos
	}
	combo, ok := table[format]
	if !ok {
		return ComboPercentages{}, fmt.Errorf("%w: %s", ErrUnsupportedFormatCombination, format)
	}
	return combo, nil
}
