package brackets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttleague/tournament-system/models"
)

func singleElimTournament() *models.Tournament {
	return &models.Tournament{
		ID:          4,
		Format:      models.FormatSingleElimination,
		MatchFormat: models.BestOf5,
	}
}

func buildBracket(t *testing.T, tournament *models.Tournament, n int) []*models.Match {
	t.Helper()
	matches, err := BuildInitialMatches(context.Background(), tournament, testParticipants(n))
	require.NoError(t, err)
	return matches
}

func TestProgressionCascadeToFinal(t *testing.T) {
	tournament := singleElimTournament()
	matches := buildBracket(t, tournament, 4)

	// Semifinal 1: player 1 beats player 2 three sets to one.
	sf1 := matchAt(t, matches, 1, 0)
	res, err := ValidateAndComplete(tournament, sf1, []models.SetScore{
		{P1: 11, P2: 6}, {P1: 9, P2: 11}, {P1: 11, P2: 8}, {P1: 12, P2: 10},
	}, matches)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, sf1.Status)
	assert.Equal(t, 1, *sf1.WinnerParticipantID)
	assert.False(t, res.TournamentComplete)
	require.Len(t, res.Cascade, 1)

	// Semifinal 2: player 4 wins in straight sets.
	sf2 := matchAt(t, matches, 1, 1)
	res, err = ValidateAndComplete(tournament, sf2, []models.SetScore{
		{P1: 5, P2: 11}, {P1: 7, P2: 11}, {P1: 9, P2: 11},
	}, matches)
	require.NoError(t, err)
	assert.Equal(t, 4, *sf2.WinnerParticipantID)

	final := matchAt(t, matches, 2, 0)
	require.NotNil(t, final.P1ParticipantID)
	require.NotNil(t, final.P2ParticipantID)
	assert.Equal(t, 1, *final.P1ParticipantID)
	assert.Equal(t, 4, *final.P2ParticipantID)

	// Champion falls out of the final.
	res, err = ValidateAndComplete(tournament, final, []models.SetScore{
		{P1: 11, P2: 9}, {P1: 8, P2: 11}, {P1: 11, P2: 7}, {P1: 10, P2: 12}, {P1: 13, P2: 11},
	}, matches)
	require.NoError(t, err)
	assert.True(t, res.TournamentComplete)
	require.NotNil(t, res.ChampionID)
	assert.Equal(t, 1, *res.ChampionID)
	assert.Empty(t, res.Cascade)
}

func TestProgressionThroughByeBracket(t *testing.T) {
	tournament := singleElimTournament()
	matches := buildBracket(t, tournament, 3)
	// Player 1 got the bye and waits in the final; players 2 and 3 play.
	require.Len(t, matches, 3)

	semi := matchAt(t, matches, 1, 1)
	res, err := ValidateAndComplete(tournament, semi, []models.SetScore{
		{P1: 11, P2: 3}, {P1: 11, P2: 4}, {P1: 11, P2: 5},
	}, matches)
	require.NoError(t, err)
	assert.False(t, res.TournamentComplete)

	final := matchAt(t, matches, 2, 0)
	require.NotNil(t, final.P2ParticipantID)
	assert.Equal(t, 1, *final.P1ParticipantID)
	assert.Equal(t, 2, *final.P2ParticipantID)
	assert.Equal(t, models.MatchStatusScheduled, final.Status)
}

func TestProgressionCascadeCompletesByeSuccessor(t *testing.T) {
	// Hand-built bracket where the winner advances into an explicit bye
	// marker and must be carried straight into the final.
	one, two := 1, 2
	opener := &models.Match{
		ID: "r1", Round: 1, SlotIndex: 0, RoundLabel: "Quarterfinals",
		P1ParticipantID: &one, P2ParticipantID: &two,
		Status: models.MatchStatusScheduled,
	}
	byeSuccessor := &models.Match{
		ID: "r2", Round: 2, SlotIndex: 0, RoundLabel: "Semifinals",
		P2Bye:  true,
		Status: models.MatchStatusScheduled,
	}
	final := &models.Match{
		ID: "r3", Round: 3, SlotIndex: 0, RoundLabel: "Final",
		Status: models.MatchStatusScheduled,
	}
	all := []*models.Match{opener, byeSuccessor, final}

	tournament := singleElimTournament()
	res, err := ValidateAndComplete(tournament, opener, []models.SetScore{
		{P1: 11, P2: 1}, {P1: 11, P2: 2}, {P1: 11, P2: 3},
	}, all)
	require.NoError(t, err)

	require.Len(t, res.Cascade, 2)
	assert.Equal(t, models.MatchStatusCompleted, byeSuccessor.Status)
	assert.Equal(t, 1, *byeSuccessor.WinnerParticipantID)
	require.NotNil(t, final.P1ParticipantID)
	assert.Equal(t, 1, *final.P1ParticipantID)
	assert.Equal(t, models.MatchStatusScheduled, final.Status)
	assert.False(t, res.TournamentComplete)
}

func TestProgressionStateErrors(t *testing.T) {
	tournament := singleElimTournament()
	matches := buildBracket(t, tournament, 4)
	win := []models.SetScore{{P1: 11, P2: 1}, {P1: 11, P2: 2}, {P1: 11, P2: 3}}

	// The final has unresolved opponents until the semifinals finish.
	final := matchAt(t, matches, 2, 0)
	_, err := ValidateAndComplete(tournament, final, win, matches)
	require.ErrorIs(t, err, ErrOpponentNotResolved)
	assert.True(t, IsStateError(err))

	sf1 := matchAt(t, matches, 1, 0)
	_, err = ValidateAndComplete(tournament, sf1, win, matches)
	require.NoError(t, err)

	// Completing twice is rejected.
	_, err = ValidateAndComplete(tournament, sf1, win, matches)
	require.ErrorIs(t, err, ErrMatchAlreadyCompleted)
	assert.True(t, IsStateError(err))
}

func TestProgressionRejectsInvalidScoreWithoutMutation(t *testing.T) {
	tournament := singleElimTournament()
	matches := buildBracket(t, tournament, 4)

	sf1 := matchAt(t, matches, 1, 0)
	_, err := ValidateAndComplete(tournament, sf1, []models.SetScore{{P1: 11, P2: 10}}, matches)
	require.ErrorIs(t, err, ErrSetScoreInvalid)

	assert.Equal(t, models.MatchStatusScheduled, sf1.Status)
	assert.Nil(t, sf1.WinnerParticipantID)
	assert.Empty(t, sf1.Sets)
	final := matchAt(t, matches, 2, 0)
	assert.Nil(t, final.P1ParticipantID)
}

func TestProgressionSignalsGroupStageCompletion(t *testing.T) {
	tournament := groupStageTournament(2, 1)
	matches, err := BuildInitialMatches(context.Background(), tournament, testParticipants(4))
	require.NoError(t, err)
	require.Len(t, matches, 2, "two groups of two play one pool match each")

	res, err := ValidateAndComplete(tournament, matches[0], []models.SetScore{
		{P1: 11, P2: 5}, {P1: 11, P2: 5},
	}, matches)
	require.NoError(t, err)
	assert.False(t, res.GroupStageDone)

	res, err = ValidateAndComplete(tournament, matches[1], []models.SetScore{
		{P1: 11, P2: 5}, {P1: 11, P2: 5},
	}, matches)
	require.NoError(t, err)
	assert.True(t, res.GroupStageDone)
	assert.False(t, res.TournamentComplete)
}

func TestProgressionRoundRobinChampion(t *testing.T) {
	tournament := &models.Tournament{
		ID:          5,
		Format:      models.FormatRoundRobin,
		MatchFormat: models.BestOf3,
	}
	matches, err := BuildInitialMatches(context.Background(), tournament, testParticipants(3))
	require.NoError(t, err)
	require.Len(t, matches, 3)

	win := []models.SetScore{{P1: 11, P2: 5}, {P1: 11, P2: 5}}
	var last *ProgressionResult
	for _, m := range matches {
		last, err = ValidateAndComplete(tournament, m, win, matches)
		require.NoError(t, err)
	}

	require.NotNil(t, last)
	assert.True(t, last.TournamentComplete)
	require.NotNil(t, last.ChampionID)
	// Player 1 won both matches; players 2 and 3 split theirs.
	assert.Equal(t, 1, *last.ChampionID)
}
