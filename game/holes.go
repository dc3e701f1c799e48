package game

import "fmt"

// HolesPerRound is the fixed size of a tee sheet.
const HolesPerRound = 18

// Hole is one entry in a tee configuration. Immutable once a round has
// tee'd off.
type Hole struct {
	Number      int `json:"number"`
	Par         int `json:"par"`
	StrokeIndex int `json:"strokeIndex"`
}

// ValidateHoleSet checks that holes form a complete 18-hole tee sheet:
// hole numbers and stroke indexes are each a permutation of 1..18 and every
// par is 3, 4, or 5. Returns ErrInvalidHoleSet otherwise.
func ValidateHoleSet(holes []Hole) error {
	if len(holes) != HolesPerRound {
		return fmt.Errorf("%w: expected %d holes, got %d", ErrInvalidHoleSet, HolesPerRound, len(holes))
	}
	var seenNumber, seenIndex [HolesPerRound + 1]bool
	for _, h := range holes {
		if h.Number < 1 || h.Number > HolesPerRound {
			return fmt.Errorf("%w: hole number %d out of range", ErrInvalidHoleSet, h.Number)
		}
		if seenNumber[h.Number] {
			return fmt.Errorf("%w: duplicate hole number %d", ErrInvalidHoleSet, h.Number)
		}
		seenNumber[h.Number] = true
		if h.Par < 3 || h.Par > 5 {
			return fmt.Errorf("%w: hole %d has par %d", ErrInvalidHoleSet, h.Number, h.Par)
		}
		if h.StrokeIndex < 1 || h.StrokeIndex > HolesPerRound {
			return fmt.Errorf("%w: hole %d has stroke index %d", ErrInvalidHoleSet, h.Number, h.StrokeIndex)
		}
		if seenIndex[h.StrokeIndex] {
			return fmt.Errorf("%w: duplicate stroke index %d", ErrInvalidHoleSet, h.StrokeIndex)
		}
		seenIndex[h.StrokeIndex] = true
	}
	return nil
}

// HoleByNumber returns the hole with the given number, or false if absent.
func HoleByNumber(holes []Hole, number int) (Hole, bool) {
	for _, h := range holes {
		if h.Number == number {
			return h, true
		}
	}
	return Hole{}, false
}

// OrderedNets flattens a per-hole net score map into a slice ordered by hole
// number, requiring scores for exactly holes 1..holesPlayed. A gap or a score
// beyond holesPlayed is the caller's data-integrity problem and fails with
// ErrIncompleteHoleSequence rather than being silently skipped.
func OrderedNets(byHole map[int]int, holesPlayed int) ([]int, error) {
	if holesPlayed < 0 || holesPlayed > HolesPerRound {
		return nil, fmt.Errorf("%w: holes played %d out of range", ErrInvalidInput, holesPlayed)
	}
	if len(byHole) != holesPlayed {
		return nil, fmt.Errorf("%w: %d scores for %d holes played", ErrIncompleteHoleSequence, len(byHole), holesPlayed)
	}
	nets := make([]int, 0, holesPlayed)
	for hole := 1; hole <= holesPlayed; hole++ {
		net, ok := byHole[hole]
		if !ok {
			return nil, fmt.Errorf("%w: missing score for hole %d", ErrIncompleteHoleSequence, hole)
		}
		nets = append(nets, net)
	}
	return nets, nil
}
