package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttleague/tournament-system/models"
)

func completedMatch(p1, p2 int, sets ...models.SetScore) *models.Match {
	winner := p1
	wins1, wins2 := 0, 0
	for _, s := range sets {
		if s.P1 > s.P2 {
			wins1++
		} else {
			wins2++
		}
	}
	if wins2 > wins1 {
		winner = p2
	}
	return &models.Match{
		ID:                  "m",
		Round:               1,
		P1ParticipantID:     &p1,
		P2ParticipantID:     &p2,
		Sets:                sets,
		WinnerParticipantID: &winner,
		Status:              models.MatchStatusCompleted,
	}
}

func TestComputeStandings(t *testing.T) {
	matches := []*models.Match{
		completedMatch(1, 2, models.SetScore{P1: 11, P2: 5}, models.SetScore{P1: 11, P2: 7}),
		completedMatch(1, 3, models.SetScore{P1: 11, P2: 9}, models.SetScore{P1: 8, P2: 11}, models.SetScore{P1: 11, P2: 4}),
		completedMatch(2, 3, models.SetScore{P1: 5, P2: 11}, models.SetScore{P1: 11, P2: 13}),
	}

	standings := ComputeStandings([]int{1, 2, 3}, matches)
	require.Len(t, standings, 3)

	assert.Equal(t, 1, standings[0].ParticipantID)
	assert.Equal(t, 2, standings[0].Wins)
	assert.Equal(t, 0, standings[0].Losses)
	assert.Equal(t, 6, standings[0].Points)
	assert.Equal(t, 52, standings[0].PointsFor)
	assert.Equal(t, 36, standings[0].PointsAgainst)
	assert.Equal(t, 16, standings[0].PointDifference)
	assert.Equal(t, 1, standings[0].Rank)

	assert.Equal(t, 3, standings[1].ParticipantID)
	assert.Equal(t, 1, standings[1].Wins)
	assert.Equal(t, 1, standings[1].Losses)
	assert.Equal(t, 3, standings[1].Points)
	assert.Equal(t, 2, standings[1].Rank)

	assert.Equal(t, 2, standings[2].ParticipantID)
	assert.Equal(t, 0, standings[2].Wins)
	assert.Equal(t, 2, standings[2].Losses)
	assert.Equal(t, 3, standings[2].Rank)
}

func TestComputeStandingsTiesKeepInputOrder(t *testing.T) {
	// 1 beats 2 and 3 beats 4 by identical margins: both winners end on
	// equal points and point difference. No further tie-break exists, so
	// the input order decides and ranks stay sequential.
	matches := []*models.Match{
		completedMatch(1, 2, models.SetScore{P1: 11, P2: 5}),
		completedMatch(3, 4, models.SetScore{P1: 11, P2: 5}),
	}

	standings := ComputeStandings([]int{1, 2, 3, 4}, matches)
	require.Len(t, standings, 4)
	assert.Equal(t, []int{1, 3, 2, 4}, []int{
		standings[0].ParticipantID,
		standings[1].ParticipantID,
		standings[2].ParticipantID,
		standings[3].ParticipantID,
	})
	assert.Equal(t, []int{1, 2, 3, 4}, []int{
		standings[0].Rank,
		standings[1].Rank,
		standings[2].Rank,
		standings[3].Rank,
	})
}

func TestComputeStandingsIsDeterministic(t *testing.T) {
	matches := []*models.Match{
		completedMatch(1, 2, models.SetScore{P1: 11, P2: 5}, models.SetScore{P1: 12, P2: 10}),
		completedMatch(2, 3, models.SetScore{P1: 11, P2: 8}, models.SetScore{P1: 11, P2: 9}),
		completedMatch(1, 3, models.SetScore{P1: 9, P2: 11}, models.SetScore{P1: 11, P2: 6}, models.SetScore{P1: 11, P2: 7}),
	}

	first := ComputeStandings([]int{1, 2, 3}, matches)
	second := ComputeStandings([]int{1, 2, 3}, matches)
	assert.Equal(t, first, second)
}

func TestComputeStandingsIgnoresIrrelevantMatches(t *testing.T) {
	bye := 1
	scheduled := &models.Match{ID: "s", P1ParticipantID: &bye, Status: models.MatchStatusScheduled}
	byeMatch := &models.Match{
		ID:                  "b",
		P1ParticipantID:     &bye,
		P2Bye:               true,
		WinnerParticipantID: &bye,
		Status:              models.MatchStatusCompleted,
	}
	outsider := completedMatch(1, 99, models.SetScore{P1: 11, P2: 0})

	standings := ComputeStandings([]int{1, 2}, []*models.Match{scheduled, byeMatch, outsider})
	require.Len(t, standings, 2)
	assert.Equal(t, 0, standings[0].Wins)
	assert.Equal(t, 0, standings[0].PointsFor)
	assert.Equal(t, 0, standings[1].Wins)
}
