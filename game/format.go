package game

// Format identifies how a round is played and scored.
type Format string

const (
	FormatFourball        Format = "FOURBALL"
	FormatFoursomes       Format = "FOURSOMES"
	FormatModifiedAltShot Format = "MODIFIED_ALT_SHOT"
	FormatScramble        Format = "SCRAMBLE"
	FormatShamble         Format = "SHAMBLE"
	FormatSingles         Format = "SINGLES"
	FormatStrokePlay      Format = "STROKEPLAY"
)

// Formats lists every supported format.
var Formats = []Format{
	FormatFourball,
	FormatFoursomes,
	FormatModifiedAltShot,
	FormatScramble,
	FormatShamble,
	FormatSingles,
	FormatStrokePlay,
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatFourball, FormatFoursomes, FormatModifiedAltShot,
		FormatScramble, FormatShamble, FormatSingles, FormatStrokePlay:
		return true
	}
	return false
}

// IsTeam reports whether sides are pairs whose handicaps combine via the
// policy's percentage tables. Singles and stroke play use the individual
// playing handicap directly.
func (f Format) IsTeam() bool {
	switch f {
	case FormatFourball, FormatFoursomes, FormatModifiedAltShot, FormatScramble, FormatShamble:
		return true
	}
	return false
}

// IsMatchPlay reports whether the format is scored hole-by-hole as a match.
// Stroke play compares total net strokes instead.
func (f Format) IsMatchPlay() bool {
	return f != FormatStrokePlay
}

// OneBallPerSide reports whether a side plays a single shared ball, so score
// entry produces one gross score per side per hole rather than one per player.
func (f Format) OneBallPerSide() bool {
	switch f {
	case FormatFoursomes, FormatModifiedAltShot, FormatScramble:
		return true
	}
	return false
}
