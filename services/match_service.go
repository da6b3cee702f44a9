package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ttleague/tournament-system/brackets"
	"github.com/ttleague/tournament-system/models"
	"github.com/ttleague/tournament-system/repositories"
)

type MatchService interface {
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, filter repositories.ListMatchesFilter) ([]*models.Match, error)
	SubmitResult(ctx context.Context, matchID string, sets []models.SetScore) (*brackets.ProgressionResult, error)
}

type matchService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *matchService) GetByID(ctx context.Context, id string) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int, filter repositories.ListMatchesFilter) ([]*models.Match, error) {
	return s.matchRepo.ListByTournament(ctx, nil, tournamentID, filter)
}

// SubmitResult records a final set-by-set score, advances the winner
// through the bracket and, when a group stage just finished, seeds the
// playoffs. The whole progression is committed in a single transaction.
func (s *matchService) SubmitResult(ctx context.Context, matchID string, sets []models.SetScore) (*brackets.ProgressionResult, error) {
	var (
		result     *brackets.ProgressionResult
		tournament *models.Tournament
		all        []*models.Match
	)

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		stored, err := s.matchRepo.GetByID(ctx, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		tournament, err = s.tournamentRepo.GetByID(ctx, tx, stored.TournamentID)
		if err != nil {
			return mapTournamentRepoError(err)
		}
		if tournament.Status != models.StatusActive {
			return fmt.Errorf("%w: tournament %d is %s", ErrTournamentNotActive, tournament.ID, tournament.Status)
		}

		all, err = s.matchRepo.ListByTournament(ctx, tx, tournament.ID, repositories.ListMatchesFilter{})
		if err != nil {
			return err
		}
		match := findMatch(all, matchID)
		if match == nil {
			return ErrMatchNotFound
		}

		result, err = brackets.ValidateAndComplete(tournament, match, sets, all)
		if err != nil {
			return err
		}

		if err := s.matchRepo.UpdateResult(ctx, tx, result.Updated); err != nil {
			return err
		}
		for _, m := range result.Cascade {
			if err := s.matchRepo.UpdateSlots(ctx, tx, m); err != nil {
				return err
			}
			if m.Status == models.MatchStatusCompleted {
				if err := s.matchRepo.UpdateResult(ctx, tx, m); err != nil {
					return err
				}
			}
		}

		if result.TournamentComplete {
			if err := s.tournamentRepo.UpdateWinner(ctx, tx, tournament.ID, result.ChampionID); err != nil {
				return err
			}
			if err := s.tournamentRepo.UpdateStatus(ctx, tx, tournament.ID, models.StatusCompleted); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Playoff seeding runs in its own transaction, after the result is
	// committed: a concurrent seeder makes our insert hit the knockout slot
	// unique index, and an aborted seeding transaction must not take the
	// submitted result down with it.
	var playoffs []*models.Match
	if result.GroupStageDone {
		playoffs, err = s.seedPlayoffs(ctx, tournament, all)
		if err != nil {
			return nil, err
		}
	}

	s.broadcastProgress(ctx, tournament.ID, result, playoffs)
	return result, nil
}

// seedPlayoffs builds and persists the knockout bracket once the group
// stage is complete. Losing the slot race to another writer is a no-op:
// their bracket wins.
func (s *matchService) seedPlayoffs(ctx context.Context, tournament *models.Tournament, all []*models.Match) ([]*models.Match, error) {
	playoffs, err := brackets.TrySeedPlayoffs(tournament, all)
	if err != nil {
		return nil, err
	}
	if len(playoffs) == 0 {
		return nil, nil
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.matchRepo.CreateBatch(ctx, tx, playoffs)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrPlayoffSlotConflict) {
			s.logger.InfoContext(ctx, "playoffs already seeded by another writer",
				slog.Int("tournament_id", tournament.ID))
			return nil, nil
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "playoffs seeded",
		slog.Int("tournament_id", tournament.ID),
		slog.Int("matches", len(playoffs)),
	)
	return playoffs, nil
}

func (s *matchService) broadcastProgress(ctx context.Context, tournamentID int, result *brackets.ProgressionResult, playoffs []*models.Match) {
	room := brackets.RoomID(tournamentID)
	s.hub.BroadcastToRoom(room, brackets.EventMatchUpdated, result.Updated)

	if len(result.Cascade) > 0 || len(playoffs) > 0 {
		s.hub.BroadcastToRoom(room, brackets.EventBracketUpdated, struct {
			Cascade  []*models.Match `json:"cascade,omitempty"`
			Playoffs []*models.Match `json:"playoffs,omitempty"`
		}{Cascade: result.Cascade, Playoffs: playoffs})
	}

	if result.TournamentComplete {
		s.logger.InfoContext(ctx, "tournament completed",
			slog.Int("tournament_id", tournamentID),
			slog.Any("champion_participant_id", result.ChampionID),
		)
		s.hub.BroadcastToRoom(room, brackets.EventTournamentCompleted, struct {
			TournamentID        int  `json:"tournament_id"`
			WinnerParticipantID *int `json:"winner_participant_id"`
		}{TournamentID: tournamentID, WinnerParticipantID: result.ChampionID})
	}
}

func findMatch(matches []*models.Match, id string) *models.Match {
	for _, m := range matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}
