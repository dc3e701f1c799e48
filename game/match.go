package game

import "fmt"

// MatchStatus is the derived state of a match.
type MatchStatus string

const (
	// MatchInProgress: holes remain and neither side has clinched.
	MatchInProgress MatchStatus = "IN_PROGRESS"
	// MatchDormie: still in progress, but the trailing side must win every
	// remaining hole to halve.
	MatchDormie MatchStatus = "DORMIE"
	// MatchComplete: decided before the 18th hole ("closed out").
	MatchComplete MatchStatus = "COMPLETE"
	// MatchComplete18: decided exactly at the 18th hole, by margin or halved.
	MatchComplete18 MatchStatus = "COMPLETE_18"
)

// HoleOutcome is one hole's result from side 1's perspective.
type HoleOutcome int

const (
	HoleWonBySide1 HoleOutcome = 1
	HoleHalved     HoleOutcome = 0
	HoleWonBySide2 HoleOutcome = -1
)

// MatchState is derived, never stored. It is rebuilt from the full ordered
// hole history on every call; there is no incremental mutation path that
// could drift when an earlier hole's score is corrected.
type MatchState struct {
	Status      MatchStatus `json:"status"`
	Side1Lead   int         `json:"side1Lead"`
	HolesPlayed int         `json:"holesPlayed"`
	IsComplete  bool        `json:"isComplete"`
	IsDormie    bool        `json:"isDormie"`
	LeadingSide int         `json:"leadingSide"`
	DisplayText string      `json:"displayText"`
	ResultText  string      `json:"resultText,omitempty"`
}

// ComputeMatchState replays an ordered sequence of hole outcomes into the
// current match state. Once the match is mathematically decided, outcomes for
// later holes are ignored for match-state purposes (they are not deleted;
// they simply cannot change the result).
func ComputeMatchState(outcomes []HoleOutcome) (MatchState, error) {
	if len(outcomes) > HolesPerRound {
		return MatchState{}, fmt.Errorf("%w: %d hole outcomes", ErrInvalidInput, len(outcomes))
	}

	state := MatchState{Status: MatchInProgress, DisplayText: "AS"}
	for _, outcome := range outcomes {
		if outcome < HoleWonBySide2 || outcome > HoleWonBySide1 {
			return MatchState{}, fmt.Errorf("%w: hole outcome %d", ErrInvalidInput, outcome)
		}
		if state.IsComplete {
			break
		}
		state.HolesPlayed++
		state.Side1Lead += int(outcome)

		remaining := HolesPerRound - state.HolesPlayed
		lead := abs(state.Side1Lead)
		switch {
		case lead > remaining && remaining > 0:
			state.IsComplete = true
			state.Status = MatchComplete
			state.ResultText = fmt.Sprintf("%d&%d", lead, remaining)
		case remaining == 0:
			state.IsComplete = true
			state.Status = MatchComplete18
			if lead == 0 {
				state.ResultText = "AS"
			} else {
				state.ResultText = fmt.Sprintf("%d UP", lead)
			}
		case lead == remaining && lead > 0:
			state.IsDormie = true
			state.Status = MatchDormie
		default:
			state.IsDormie = false
			state.Status = MatchInProgress
		}
		if state.IsComplete {
			state.IsDormie = false
		}
	}

	switch {
	case state.Side1Lead > 0:
		state.LeadingSide = 1
	case state.Side1Lead < 0:
		state.LeadingSide = 2
	}
	if state.Side1Lead == 0 {
		state.DisplayText = "AS"
	} else {
		state.DisplayText = fmt.Sprintf("%d UP", abs(state.Side1Lead))
	}
	return state, nil
}

// HoleOutcomes compares two sides' per-hole representative net scores. Both
// slices must cover the same contiguous run of holes from the 1st.
func HoleOutcomes(side1Nets, side2Nets []int) ([]HoleOutcome, error) {
	if len(side1Nets) != len(side2Nets) {
		return nil, fmt.Errorf("%w: side1 has %d holes, side2 has %d", ErrIncompleteHoleSequence, len(side1Nets), len(side2Nets))
	}
	outcomes := make([]HoleOutcome, len(side1Nets))
	for i := range side1Nets {
		switch {
		case side1Nets[i] < side2Nets[i]:
			outcomes[i] = HoleWonBySide1
		case side1Nets[i] > side2Nets[i]:
			outcomes[i] = HoleWonBySide2
		default:
			outcomes[i] = HoleHalved
		}
	}
	return outcomes, nil
}

// StrokePlayState is the degenerate match state for stroke-play rounds: no
// lead semantics, complete once all 18 holes are in. Total net strokes are
// the comparator and are computed by the caller from the full score set.
func StrokePlayState(holesPlayed int) (MatchState, error) {
	if holesPlayed < 0 || holesPlayed > HolesPerRound {
		return MatchState{}, fmt.Errorf("%w: holes played %d", ErrInvalidInput, holesPlayed)
	}
	state := MatchState{
		Status:      MatchInProgress,
		HolesPlayed: holesPlayed,
		DisplayText: "AS",
	}
	if holesPlayed == HolesPerRound {
		state.IsComplete = true
		state.Status = MatchComplete18
	}
	return state, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
