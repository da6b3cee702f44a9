package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Business-rule violations.
	ErrRegistrationNotOpen  = errors.New("tournament registration is not open")
	ErrTournamentFull       = errors.New("tournament registration is full")
	ErrTournamentNotActive  = errors.New("tournament is not active")
	ErrTournamentNotStarted = errors.New("tournament has not started yet")
	ErrWithdrawClosed       = errors.New("participants can only withdraw while registration is open")

	// Conflicts.
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrParticipantNameTaken   = errors.New("display name is already registered in this tournament")

	// Entity lookups.
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrMatchNotFound       = errors.New("match not found")

	// Tournament validation.
	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentDatesRequired           = errors.New("tournament dates are required")
	ErrTournamentInvalidRegDate          = errors.New("registration date cannot be after start date")
	ErrTournamentInvalidDateRange        = errors.New("tournament start date must be before end date")
	ErrTournamentInvalidCapacity         = errors.New("tournament max participants must be at least 2")
	ErrTournamentInvalidFormat           = errors.New("unknown tournament format")
	ErrTournamentInvalidMatchFormat      = errors.New("unknown match format")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")

	// Standings are only defined for formats that play pools.
	ErrStandingsNotAvailable = errors.New("standings are not available for this tournament format")
)
