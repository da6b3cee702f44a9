package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ttleague/tournament-system/models"
	"github.com/ttleague/tournament-system/repositories"
)

var ErrDisplayNameRequired = errors.New("display name is required")

type ParticipantService interface {
	Register(ctx context.Context, tournamentID int, displayName string, seedRating *int) (*models.Participant, error)
	GetByID(ctx context.Context, id int) (*models.Participant, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Participant, error)
	Withdraw(ctx context.Context, participantID int) error
}

type participantService struct {
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	logger          *slog.Logger
}

func NewParticipantService(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	logger *slog.Logger,
) ParticipantService {
	return &participantService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		logger:          logger,
	}
}

func (s *participantService) Register(ctx context.Context, tournamentID int, displayName string, seedRating *int) (*models.Participant, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, ErrDisplayNameRequired
	}

	t, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	if t.Status != models.StatusRegistration {
		return nil, ErrRegistrationNotOpen
	}

	count, err := s.participantRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if count >= t.MaxParticipants {
		return nil, ErrTournamentFull
	}

	p := &models.Participant{
		TournamentID: tournamentID,
		DisplayName:  displayName,
		SeedRating:   seedRating,
	}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipantNameTaken):
			return nil, ErrParticipantNameTaken
		case errors.Is(err, repositories.ErrParticipantTournamentInvalid):
			return nil, ErrTournamentNotFound
		default:
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "participant registered",
		slog.Int("tournament_id", tournamentID),
		slog.Int("participant_id", p.ID),
	)
	return p, nil
}

func (s *participantService) GetByID(ctx context.Context, id int) (*models.Participant, error) {
	p, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *participantService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Participant, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return s.participantRepo.ListByTournament(ctx, nil, tournamentID)
}

// Withdraw removes a registration. Once the bracket is generated the
// participant is part of the fixture list and can no longer be removed.
func (s *participantService) Withdraw(ctx context.Context, participantID int) error {
	p, err := s.GetByID(ctx, participantID)
	if err != nil {
		return err
	}
	t, err := s.tournamentRepo.GetByID(ctx, nil, p.TournamentID)
	if err != nil {
		return mapTournamentRepoError(err)
	}
	if t.Status != models.StatusRegistration && t.Status != models.StatusSoon {
		return ErrWithdrawClosed
	}
	if err := s.participantRepo.Delete(ctx, participantID); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}
	s.logger.InfoContext(ctx, "participant withdrew",
		slog.Int("tournament_id", p.TournamentID),
		slog.Int("participant_id", participantID),
	)
	return nil
}
