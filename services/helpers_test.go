package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttleague/tournament-system/models"
)

func TestValidateTournamentDates(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	err := validateTournamentDates(base, base.Add(24*time.Hour), base.Add(48*time.Hour))
	require.NoError(t, err)

	err = validateTournamentDates(time.Time{}, base, base.Add(time.Hour))
	require.ErrorIs(t, err, ErrTournamentDatesRequired)

	err = validateTournamentDates(base.Add(time.Hour), base, base.Add(48*time.Hour))
	require.ErrorIs(t, err, ErrTournamentInvalidRegDate)

	err = validateTournamentDates(base, base.Add(time.Hour), base.Add(time.Hour))
	require.ErrorIs(t, err, ErrTournamentInvalidDateRange)
}

func TestIsValidStatusTransition(t *testing.T) {
	testCases := []struct {
		current models.TournamentStatus
		next    models.TournamentStatus
		want    bool
	}{
		{models.StatusSoon, models.StatusRegistration, true},
		{models.StatusSoon, models.StatusCanceled, true},
		{models.StatusSoon, models.StatusActive, false},
		{models.StatusRegistration, models.StatusActive, true},
		{models.StatusActive, models.StatusCompleted, true},
		{models.StatusActive, models.StatusRegistration, false},
		{models.StatusCompleted, models.StatusCanceled, false},
		{models.StatusCanceled, models.StatusRegistration, false},
		{models.StatusActive, models.StatusActive, true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, isValidStatusTransition(tc.current, tc.next),
			"%s -> %s", tc.current, tc.next)
	}
}
