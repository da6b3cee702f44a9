package brackets

import (
	"fmt"

	"github.com/ttleague/tournament-system/models"
)

// Side identifies the winning side of a match.
type Side int

const (
	SideNone Side = iota
	Side1
	Side2
)

const (
	minSetPoints = 11
	minSetMargin = 2
)

// ResolveWinner judges whether sets constitute a legal, complete result for
// the given match format and returns the side that won. It is a pure
// function; on failure it names the first violated rule.
func ResolveWinner(sets []models.SetScore, format models.MatchFormat) (Side, error) {
	maxSets := format.MaxSets()
	if maxSets == 0 {
		return SideNone, fmt.Errorf("%w: %q", ErrUnknownMatchFormat, format)
	}
	if len(sets) > maxSets {
		return SideNone, fmt.Errorf("%w: got %d, %s allows %d", ErrTooManySets, len(sets), format, maxSets)
	}

	wins1, wins2 := 0, 0
	for i, set := range sets {
		if err := validateSet(set); err != nil {
			return SideNone, fmt.Errorf("%w (set %d: %d-%d)", err, i+1, set.P1, set.P2)
		}
		if set.P1 > set.P2 {
			wins1++
		} else {
			wins2++
		}
	}

	setsToWin := format.SetsToWin()
	leader := wins1
	if wins2 > wins1 {
		leader = wins2
	}

	switch {
	case leader < setsToWin:
		return SideNone, fmt.Errorf("%w: %d-%d in sets, %d needed", ErrMatchIncomplete, wins1, wins2, setsToWin)
	case leader > setsToWin:
		// Sets were recorded past the point the match was decided.
		return SideNone, fmt.Errorf("%w: match was decided after %d won sets", ErrTooManySets, setsToWin)
	}

	loser := wins1 + wins2 - leader
	if loser > maxSets-setsToWin {
		return SideNone, fmt.Errorf("%w: loser holds %d sets, at most %d possible", ErrLoserSetCountInvalid, loser, maxSets-setsToWin)
	}

	if wins1 > wins2 {
		return Side1, nil
	}
	return Side2, nil
}

// validateSet applies the per-set rules: non-negative scores, winner at 11
// or beyond, won by two. Deuce continues indefinitely, so there is no upper
// bound on the winning score.
func validateSet(set models.SetScore) error {
	if set.P1 < 0 || set.P2 < 0 {
		return ErrSetScoreNegative
	}
	hi, lo := set.P1, set.P2
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi < minSetPoints || hi-lo < minSetMargin {
		return ErrSetScoreInvalid
	}
	return nil
}
