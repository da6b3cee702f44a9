package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttleague/tournament-system/models"
)

func TestRoundRobinCompleteness(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 7} {
		t.Run(fmt.Sprintf("%d participants", n), func(t *testing.T) {
			tournament := &models.Tournament{ID: 3, Format: models.FormatRoundRobin}
			matches, err := NewRoundRobinGenerator().Generate(context.Background(), GenerateParams{
				Tournament:   tournament,
				Participants: testParticipants(n),
			})
			require.NoError(t, err)
			assert.Len(t, matches, n*(n-1)/2)

			pairs := make(map[[2]int]bool)
			for _, m := range matches {
				require.NotNil(t, m.P1ParticipantID)
				require.NotNil(t, m.P2ParticipantID)
				assert.Equal(t, "Round Robin", m.RoundLabel)
				assert.Nil(t, m.GroupName)
				assert.False(t, m.HasBye())
				assert.Equal(t, models.MatchStatusScheduled, m.Status)

				a, b := *m.P1ParticipantID, *m.P2ParticipantID
				if a > b {
					a, b = b, a
				}
				key := [2]int{a, b}
				assert.False(t, pairs[key], "pair %v scheduled twice", key)
				pairs[key] = true
			}
			assert.Len(t, pairs, n*(n-1)/2)
		})
	}
}

func TestRoundRobinRejectsTooFewParticipants(t *testing.T) {
	tournament := &models.Tournament{ID: 3, Format: models.FormatRoundRobin}
	_, err := NewRoundRobinGenerator().Generate(context.Background(), GenerateParams{
		Tournament:   tournament,
		Participants: testParticipants(1),
	})
	require.ErrorIs(t, err, ErrNotEnoughParticipants)
}
