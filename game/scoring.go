package game

import "fmt"

// ApplyMaxScore caps a gross score at par plus the configured margin. The cap
// is always expressed relative to par, never as an absolute stroke count; a
// nil cap means uncapped. Capping happens before handicap strokes are
// subtracted, so a cap policy limits the gross, not the net.
func ApplyMaxScore(gross, par int, maxScoreOverPar *int) int {
	if maxScoreOverPar == nil {
		return gross
	}
	return min(gross, par+*maxScoreOverPar)
}

// NetScore subtracts the strokes a player receives on a hole from the
// (already capped) gross score.
func NetScore(gross, strokesReceived int) int {
	return gross - strokesReceived
}

// HoleNet runs the full per-hole pipeline for one player: cap the gross, then
// subtract the strokes the allocation grants on this hole.
func HoleNet(gross int, hole Hole, handicap int, maxScoreOverPar *int) (int, error) {
	if gross < 1 {
		return 0, fmt.Errorf("%w: gross strokes %d on hole %d", ErrInvalidInput, gross, hole.Number)
	}
	capped := ApplyMaxScore(gross, hole.Par, maxScoreOverPar)
	return NetScore(capped, StrokesOnHole(handicap, hole.StrokeIndex)), nil
}

// TeamHoleNet reduces the nets a side produced on one hole to the side's
// representative score for the format: better ball for fourball and shamble,
// the single shared ball for one-ball formats, the lone net for singles and
// stroke play.
func TeamHoleNet(format Format, nets []int) (int, error) {
	if len(nets) == 0 {
		return 0, fmt.Errorf("%w: no net scores for side", ErrInvalidInput)
	}
	switch format {
	case FormatFourball, FormatShamble:
		best := nets[0]
		for _, n := range nets[1:] {
			best = min(best, n)
		}
		return best, nil
	case FormatFoursomes, FormatModifiedAltShot, FormatScramble, FormatSingles, FormatStrokePlay:
		if len(nets) != 1 {
			return 0, fmt.Errorf("%w: %s expects one ball per side, got %d", ErrInvalidInput, format, len(nets))
		}
		return nets[0], nil
	default:
		return 0, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, format)
	}
}

// TotalNet sums a sequence of per-hole net scores.
func TotalNet(nets []int) int {
	total := 0
	for _, n := range nets {
		total += n
	}
	return total
}
