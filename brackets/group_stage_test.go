package brackets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttleague/tournament-system/models"
)

func groupStageTournament(numGroups, advance int) *models.Tournament {
	return &models.Tournament{
		ID:                     9,
		Format:                 models.FormatGroupStage,
		MatchFormat:            models.BestOf3,
		NumGroups:              &numGroups,
		PlayersPerGroupAdvance: &advance,
	}
}

func TestPartitionGroups(t *testing.T) {
	testCases := []struct {
		name      string
		n         int
		numGroups int
		sizes     []int
	}{
		{name: "even split", n: 8, numGroups: 2, sizes: []int{4, 4}},
		{name: "remainder goes to the first groups", n: 7, numGroups: 3, sizes: []int{3, 2, 2}},
		{name: "more groups than remainder", n: 10, numGroups: 4, sizes: []int{3, 3, 2, 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			groups := PartitionGroups(testParticipants(tc.n), tc.numGroups)
			require.Len(t, groups, tc.numGroups)
			seen := 0
			for i, group := range groups {
				assert.Len(t, group, tc.sizes[i])
				for _, p := range group {
					seen++
					assert.Equal(t, seen, p.ID, "partition must keep input order")
				}
			}
		})
	}
}

func TestGroupLabel(t *testing.T) {
	assert.Equal(t, "Group A", GroupLabel(0))
	assert.Equal(t, "Group B", GroupLabel(1))
	assert.Equal(t, "Group Z", GroupLabel(25))
	assert.Equal(t, "Group AA", GroupLabel(26))
}

func TestValidateGroupConfig(t *testing.T) {
	testCases := []struct {
		name    string
		n       int
		groups  int
		advance int
		wantErr error
	}{
		{name: "valid", n: 8, groups: 2, advance: 2},
		{name: "too few participants", n: 1, groups: 2, advance: 1, wantErr: ErrNotEnoughParticipants},
		{name: "single group", n: 8, groups: 1, advance: 2, wantErr: ErrTooFewGroups},
		{name: "more groups than players", n: 4, groups: 5, advance: 1, wantErr: ErrTooManyGroups},
		{name: "zero advance", n: 8, groups: 2, advance: 0, wantErr: ErrAdvanceCountInvalid},
		{name: "whole group advances", n: 8, groups: 2, advance: 4, wantErr: ErrAdvanceCountTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGroupConfig(tc.n, tc.groups, tc.advance)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.True(t, IsInputError(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGroupStageGenerate(t *testing.T) {
	matches, err := NewGroupStageGenerator().Generate(context.Background(), GenerateParams{
		Tournament:   groupStageTournament(2, 2),
		Participants: testParticipants(8),
	})
	require.NoError(t, err)
	require.Len(t, matches, 12, "two groups of four play six pool matches each")

	perGroup := map[string]int{}
	for _, m := range matches {
		require.NotNil(t, m.GroupName)
		assert.Equal(t, "Group Stage", m.RoundLabel)
		assert.Equal(t, models.MatchStatusScheduled, m.Status)
		perGroup[*m.GroupName]++
	}
	assert.Equal(t, map[string]int{"Group A": 6, "Group B": 6}, perGroup)

	assert.False(t, GroupStageComplete(matches))
	assert.False(t, PlayoffsSeeded(matches))
}

// completeGroupMatches resolves every pool match with the lower participant
// id winning 2-0 by 11-5 in each set.
func completeGroupMatches(t *testing.T, tournament *models.Tournament, matches []*models.Match) {
	t.Helper()
	for _, m := range matches {
		if !m.IsGroupMatch() || m.Status == models.MatchStatusCompleted {
			continue
		}
		sets := []models.SetScore{{P1: 11, P2: 5}, {P1: 11, P2: 5}}
		if *m.P1ParticipantID > *m.P2ParticipantID {
			sets = []models.SetScore{{P1: 5, P2: 11}, {P1: 5, P2: 11}}
		}
		_, err := ValidateAndComplete(tournament, m, sets, matches)
		require.NoError(t, err)
	}
}

func TestTrySeedPlayoffsEndToEnd(t *testing.T) {
	tournament := groupStageTournament(2, 2)
	matches, err := NewGroupStageGenerator().Generate(context.Background(), GenerateParams{
		Tournament:   tournament,
		Participants: testParticipants(8),
	})
	require.NoError(t, err)

	// Not complete yet: seeding is a no-op.
	playoffs, err := TrySeedPlayoffs(tournament, matches)
	require.NoError(t, err)
	assert.Nil(t, playoffs)

	completeGroupMatches(t, tournament, matches)
	require.True(t, GroupStageComplete(matches))

	playoffs, err = TrySeedPlayoffs(tournament, matches)
	require.NoError(t, err)
	require.Len(t, playoffs, 3, "four advancing players fill a semifinal pair and a final")

	// Lower ids win everything, so 1 and 2 advance from Group A, 5 and 6
	// from Group B. The pooled sort ignores group identity: group winners
	// first (equal points, equal difference, input order), runners-up
	// after them.
	sf1 := matchAt(t, playoffs, 1, 0)
	sf2 := matchAt(t, playoffs, 1, 1)
	final := matchAt(t, playoffs, 2, 0)
	assert.Equal(t, "Semifinals", sf1.RoundLabel)
	assert.Equal(t, "Final", final.RoundLabel)
	assert.Equal(t, 1, *sf1.P1ParticipantID)
	assert.Equal(t, 5, *sf1.P2ParticipantID)
	assert.Equal(t, 2, *sf2.P1ParticipantID)
	assert.Equal(t, 6, *sf2.P2ParticipantID)
	assert.Nil(t, final.P1ParticipantID)
	for _, m := range playoffs {
		assert.False(t, m.HasBye())
		assert.False(t, m.Preview)
		assert.Nil(t, m.GroupName)
	}

	// Seeding is at-most-once: with real playoff matches present the next
	// attempt is a silent no-op.
	all := append(append([]*models.Match{}, matches...), playoffs...)
	again, err := TrySeedPlayoffs(tournament, all)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestPlayoffPreview(t *testing.T) {
	preview, err := PlayoffPreview(groupStageTournament(2, 2))
	require.NoError(t, err)
	require.Len(t, preview, 3)
	for _, m := range preview {
		assert.True(t, m.Preview)
		assert.Nil(t, m.P1ParticipantID)
		assert.Nil(t, m.P2ParticipantID)
		assert.Equal(t, models.MatchStatusScheduled, m.Status)
	}

	// Preview matches do not count as seeded playoffs.
	assert.False(t, PlayoffsSeeded(preview))

	// Three qualifiers pad to a bracket of four with one bye placeholder.
	preview, err = PlayoffPreview(groupStageTournament(3, 1))
	require.NoError(t, err)
	require.Len(t, preview, 3)
	assert.True(t, matchAt(t, preview, 1, 0).P2Bye)
	assert.False(t, matchAt(t, preview, 1, 1).HasBye())
}
