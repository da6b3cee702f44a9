package brackets

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ttleague/tournament-system/models"
)

// RoundLabelRoundRobin labels matches of a standalone round robin.
const RoundLabelRoundRobin = "Round Robin"

// RoundLabelGroupStage labels pool matches of a group stage.
const RoundLabelGroupStage = "Group Stage"

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate creates one match per unordered pair of participants, n·(n−1)/2
// in total, all pre-assigned and scheduled. A round robin is a complete
// graph, not a rotation of rounds: there are no byes, and odd participant
// counts simply leave the match load uneven.
func (g *RoundRobinGenerator) Generate(_ context.Context, params GenerateParams) ([]*models.Match, error) {
	ids := participantIDs(params.Participants)
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughParticipants, len(ids))
	}
	return pairwiseMatches(params.Tournament, ids, nil), nil
}

// pairwiseMatches builds the complete pairing for ids. groupName is set for
// group-stage pools and nil for a standalone round robin; it also selects
// the round label.
func pairwiseMatches(t *models.Tournament, ids []int, groupName *string) []*models.Match {
	label := RoundLabelRoundRobin
	if groupName != nil {
		label = RoundLabelGroupStage
	}

	matches := make([]*models.Match, 0, len(ids)*(len(ids)-1)/2)
	slot := 0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			p1, p2 := ids[i], ids[j]
			matches = append(matches, &models.Match{
				ID:              uuid.NewString(),
				TournamentID:    t.ID,
				Round:           1,
				RoundLabel:      label,
				GroupName:       groupName,
				SlotIndex:       slot,
				P1ParticipantID: &p1,
				P2ParticipantID: &p2,
				Status:          models.MatchStatusScheduled,
			})
			slot++
		}
	}
	return matches
}
