package brackets

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ttleague/tournament-system/models"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate materializes the full knockout structure for the seeded
// participants. Only the first round carries player assignments; later
// rounds are created with both slots open.
func (g *SingleEliminationGenerator) Generate(_ context.Context, params GenerateParams) ([]*models.Match, error) {
	return buildKnockout(params.Tournament, participantIDs(params.Participants), false)
}

// roundLabel names a knockout round by the number of players entering it.
// Labels are derived from the round size, so brackets are not capped by a
// fixed name table.
func roundLabel(entrants int) string {
	switch entrants {
	case 2:
		return "Final"
	case 4:
		return "Semifinals"
	case 8:
		return "Quarterfinals"
	default:
		return fmt.Sprintf("Round of %d", entrants)
	}
}

// buildKnockout creates every round of a knockout bracket for the seeded
// participant ids. The bracket is padded to the next power of two; the
// first byeCount seeds receive a bye, are pre-completed and their winners
// written through to the second round. A 2-slot bracket never issues a bye:
// with two entries both always play the final.
//
// When preview is set, the same skeleton is produced with no participant
// assignments at all, only TBD slots and bye markers.
func buildKnockout(t *models.Tournament, seeded []int, preview bool) ([]*models.Match, error) {
	n := len(seeded)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughParticipants, n)
	}

	numRounds := 0
	bracketSize := 1
	for bracketSize < n {
		bracketSize <<= 1
		numRounds++
	}
	byeCount := bracketSize - n

	rounds := make([][]*models.Match, numRounds)
	for r := 0; r < numRounds; r++ {
		matchCount := bracketSize >> (r + 1)
		label := roundLabel(matchCount * 2)
		rounds[r] = make([]*models.Match, matchCount)
		for s := 0; s < matchCount; s++ {
			rounds[r][s] = &models.Match{
				ID:           uuid.NewString(),
				TournamentID: t.ID,
				Round:        r + 1,
				RoundLabel:   label,
				SlotIndex:    s,
				Status:       models.MatchStatusScheduled,
				Preview:      preview,
			}
		}
	}

	firstRound := rounds[0]
	for s := 0; s < byeCount; s++ {
		firstRound[s].P2Bye = true
	}

	if !preview {
		idx := 0
		for s := 0; s < byeCount; s++ {
			m := firstRound[s]
			pid := seeded[idx]
			idx++
			m.P1ParticipantID = &pid
			m.Status = models.MatchStatusCompleted
			m.WinnerParticipantID = &pid
			// The bye winner is known at build time, so the second round
			// slot is filled immediately.
			if err := placeWinner(rounds[1][s/2], pid); err != nil {
				return nil, err
			}
		}
		for s := byeCount; s < len(firstRound); s++ {
			p1, p2 := seeded[idx], seeded[idx+1]
			idx += 2
			firstRound[s].P1ParticipantID = &p1
			firstRound[s].P2ParticipantID = &p2
		}
	}

	matches := make([]*models.Match, 0, bracketSize-1)
	for _, round := range rounds {
		matches = append(matches, round...)
	}
	return matches, nil
}
