package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttleague/tournament-system/models"
)

func testParticipants(n int) []*models.Participant {
	participants := make([]*models.Participant, n)
	for i := range participants {
		participants[i] = &models.Participant{
			ID:          i + 1,
			DisplayName: fmt.Sprintf("Player %d", i+1),
		}
	}
	return participants
}

func matchAt(t *testing.T, matches []*models.Match, round, slot int) *models.Match {
	t.Helper()
	for _, m := range matches {
		if !m.IsGroupMatch() && m.Round == round && m.SlotIndex == slot {
			return m
		}
	}
	t.Fatalf("no match at round %d slot %d", round, slot)
	return nil
}

func TestSingleEliminationFullBracket(t *testing.T) {
	tournament := &models.Tournament{ID: 7, Format: models.FormatSingleElimination}
	matches, err := NewSingleEliminationGenerator().Generate(context.Background(), GenerateParams{
		Tournament:   tournament,
		Participants: testParticipants(8),
	})
	require.NoError(t, err)
	require.Len(t, matches, 7)

	byRound := map[int][]*models.Match{}
	for _, m := range matches {
		assert.Equal(t, 7, m.TournamentID)
		byRound[m.Round] = append(byRound[m.Round], m)
	}
	require.Len(t, byRound[1], 4)
	require.Len(t, byRound[2], 2)
	require.Len(t, byRound[3], 1)
	assert.Equal(t, "Quarterfinals", byRound[1][0].RoundLabel)
	assert.Equal(t, "Semifinals", byRound[2][0].RoundLabel)
	assert.Equal(t, "Final", byRound[3][0].RoundLabel)

	for _, m := range byRound[1] {
		assert.False(t, m.HasBye())
		assert.NotNil(t, m.P1ParticipantID)
		assert.NotNil(t, m.P2ParticipantID)
		assert.Equal(t, models.MatchStatusScheduled, m.Status)
	}
	for _, m := range append(byRound[2], byRound[3]...) {
		assert.Nil(t, m.P1ParticipantID)
		assert.Nil(t, m.P2ParticipantID)
	}
}

func TestSingleEliminationByes(t *testing.T) {
	tournament := &models.Tournament{ID: 1, Format: models.FormatSingleElimination}
	matches, err := NewSingleEliminationGenerator().Generate(context.Background(), GenerateParams{
		Tournament:   tournament,
		Participants: testParticipants(5),
	})
	require.NoError(t, err)
	// Bracket of 8: 4 + 2 + 1 matches.
	require.Len(t, matches, 7)

	byeMatches := 0
	for _, m := range matches {
		if m.Round == 1 && m.P2Bye {
			byeMatches++
			require.NotNil(t, m.P1ParticipantID)
			assert.Equal(t, models.MatchStatusCompleted, m.Status)
			require.NotNil(t, m.WinnerParticipantID)
			assert.Equal(t, *m.P1ParticipantID, *m.WinnerParticipantID)
		}
	}
	assert.Equal(t, 3, byeMatches)

	// The three bye winners are written through to the second round.
	sf1 := matchAt(t, matches, 2, 0)
	require.NotNil(t, sf1.P1ParticipantID)
	require.NotNil(t, sf1.P2ParticipantID)
	assert.Equal(t, 1, *sf1.P1ParticipantID)
	assert.Equal(t, 2, *sf1.P2ParticipantID)

	sf2 := matchAt(t, matches, 2, 1)
	require.NotNil(t, sf2.P1ParticipantID)
	assert.Equal(t, 3, *sf2.P1ParticipantID)
	assert.Nil(t, sf2.P2ParticipantID, "slot waits for the winner of the only played first-round match")

	played := matchAt(t, matches, 1, 3)
	assert.False(t, played.HasBye())
	assert.Equal(t, 4, *played.P1ParticipantID)
	assert.Equal(t, 5, *played.P2ParticipantID)
}

func TestSingleEliminationSeedOrdering(t *testing.T) {
	participants := testParticipants(4)
	low, mid, high := 1200, 1500, 1800
	participants[0].SeedRating = &low
	participants[1].SeedRating = &high
	participants[2].SeedRating = &mid
	// participants[3] is unrated and seeds last.

	tournament := &models.Tournament{ID: 1, Format: models.FormatSingleElimination}
	matches, err := BuildInitialMatches(context.Background(), tournament, participants)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	first := matchAt(t, matches, 1, 0)
	assert.Equal(t, 2, *first.P1ParticipantID)
	assert.Equal(t, 3, *first.P2ParticipantID)
	second := matchAt(t, matches, 1, 1)
	assert.Equal(t, 1, *second.P1ParticipantID)
	assert.Equal(t, 4, *second.P2ParticipantID)
}

func TestSingleEliminationTwoPlayersAlwaysPlay(t *testing.T) {
	tournament := &models.Tournament{ID: 1, Format: models.FormatSingleElimination}
	matches, err := NewSingleEliminationGenerator().Generate(context.Background(), GenerateParams{
		Tournament:   tournament,
		Participants: testParticipants(2),
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)

	final := matches[0]
	assert.Equal(t, "Final", final.RoundLabel)
	assert.False(t, final.HasBye())
	assert.Equal(t, models.MatchStatusScheduled, final.Status)
	assert.Equal(t, 1, *final.P1ParticipantID)
	assert.Equal(t, 2, *final.P2ParticipantID)
}

func TestSingleEliminationRoundLabelsScale(t *testing.T) {
	tournament := &models.Tournament{ID: 1, Format: models.FormatSingleElimination}
	matches, err := NewSingleEliminationGenerator().Generate(context.Background(), GenerateParams{
		Tournament:   tournament,
		Participants: testParticipants(33),
	})
	require.NoError(t, err)
	// Bracket of 64: labels are derived, not looked up, so nothing caps
	// the size.
	require.Len(t, matches, 63)
	assert.Equal(t, "Round of 64", matchAt(t, matches, 1, 0).RoundLabel)
	assert.Equal(t, "Round of 32", matchAt(t, matches, 2, 0).RoundLabel)
	assert.Equal(t, "Round of 16", matchAt(t, matches, 3, 0).RoundLabel)
	assert.Equal(t, "Quarterfinals", matchAt(t, matches, 4, 0).RoundLabel)
}

func TestSingleEliminationRejectsTooFewParticipants(t *testing.T) {
	tournament := &models.Tournament{ID: 1, Format: models.FormatSingleElimination}
	for _, n := range []int{0, 1} {
		_, err := NewSingleEliminationGenerator().Generate(context.Background(), GenerateParams{
			Tournament:   tournament,
			Participants: testParticipants(n),
		})
		require.ErrorIs(t, err, ErrNotEnoughParticipants)
		assert.True(t, IsInputError(err))
	}
}
