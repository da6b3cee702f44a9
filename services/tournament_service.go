package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ttleague/tournament-system/brackets"
	"github.com/ttleague/tournament-system/models"
	"github.com/ttleague/tournament-system/repositories"
)

// GroupStandingsView carries per-group tables in the order the groups were
// scheduled.
type GroupStandingsView struct {
	Groups []GroupTable `json:"groups"`
}

type GroupTable struct {
	Name      string            `json:"name"`
	Standings []models.Standing `json:"standings"`
}

type TournamentService interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetDetails(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Start(ctx context.Context, id int) (*models.Tournament, error)
	Cancel(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	Standings(ctx context.Context, id int) ([]models.Standing, error)
	GroupStandings(ctx context.Context, id int) (*GroupStandingsView, error)
	Bracket(ctx context.Context, id int) ([]*models.Match, error)
	AutoUpdateStatusesByDates(ctx context.Context, now time.Time) (int, error)
}

type tournamentService struct {
	db              *sql.DB
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	hub             *brackets.Hub
	logger          *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:              db,
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		hub:             hub,
		logger:          logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, t *models.Tournament) error {
	if t.Name == "" {
		return ErrTournamentNameRequired
	}
	if !t.Format.Valid() {
		return fmt.Errorf("%w: %q", ErrTournamentInvalidFormat, t.Format)
	}
	if t.MatchFormat == "" {
		t.MatchFormat = models.BestOf3
	}
	if !t.MatchFormat.Valid() {
		return fmt.Errorf("%w: %q", ErrTournamentInvalidMatchFormat, t.MatchFormat)
	}
	if err := validateTournamentDates(t.RegDate, t.StartDate, t.EndDate); err != nil {
		return err
	}
	if t.MaxParticipants < 2 {
		return ErrTournamentInvalidCapacity
	}
	if t.Format == models.FormatGroupStage {
		if t.NumGroups == nil || t.PlayersPerGroupAdvance == nil {
			return brackets.ErrGroupConfigMissing
		}
		// Validated against the capacity now, and against the actual
		// participant count again at start.
		if err := brackets.ValidateGroupConfig(t.MaxParticipants, *t.NumGroups, *t.PlayersPerGroupAdvance); err != nil {
			return err
		}
	}

	t.Status = models.StatusSoon
	if !time.Now().Before(t.RegDate) {
		t.Status = models.StatusRegistration
	}
	t.WinnerParticipantID = nil

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return mapTournamentRepoError(err)
	}
	return nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return t, nil
}

// GetDetails loads the tournament together with its participants and
// matches, fetched in parallel.
func (s *tournamentService) GetDetails(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		participants, err := s.participantRepo.ListByTournament(gCtx, nil, id)
		if err != nil {
			return fmt.Errorf("failed to load participants for tournament %d: %w", id, err)
		}
		t.Participants = participantsToValue(participants)
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gCtx, nil, id, repositories.ListMatchesFilter{})
		if err != nil {
			return fmt.Errorf("failed to load matches for tournament %d: %w", id, err)
		}
		t.Matches = matchesToValue(matches)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}

func (s *tournamentService) Update(ctx context.Context, t *models.Tournament) error {
	current, err := s.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	// Metadata can change until the bracket exists.
	if current.Status == models.StatusActive || current.Status == models.StatusCompleted {
		return fmt.Errorf("%w: tournament %d is %s", ErrTournamentInvalidStatusTransition, t.ID, current.Status)
	}
	if t.Name == "" {
		return ErrTournamentNameRequired
	}
	if err := validateTournamentDates(t.RegDate, t.StartDate, t.EndDate); err != nil {
		return err
	}
	if t.MaxParticipants < 2 {
		return ErrTournamentInvalidCapacity
	}
	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return mapTournamentRepoError(err)
	}
	return nil
}

// Start moves a tournament from registration to active: it validates the
// field, generates the full fixture list and persists everything in one
// transaction.
func (s *tournamentService) Start(ctx context.Context, id int) (*models.Tournament, error) {
	var started *models.Tournament

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		t, err := s.tournamentRepo.GetByID(ctx, tx, id)
		if err != nil {
			return mapTournamentRepoError(err)
		}
		if !isValidStatusTransition(t.Status, models.StatusActive) || t.Status == models.StatusActive {
			return fmt.Errorf("%w: cannot start tournament in status %s", ErrTournamentInvalidStatusTransition, t.Status)
		}

		participants, err := s.participantRepo.ListByTournament(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to load participants for tournament %d: %w", id, err)
		}

		matches, err := brackets.BuildInitialMatches(ctx, t, participants)
		if err != nil {
			return err
		}
		if err := s.matchRepo.CreateBatch(ctx, tx, matches); err != nil {
			return fmt.Errorf("failed to persist matches for tournament %d: %w", id, err)
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, tx, id, models.StatusActive); err != nil {
			return mapTournamentRepoError(err)
		}

		t.Status = models.StatusActive
		t.Matches = matchesToValue(matches)
		t.Participants = participantsToValue(participants)
		started = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament started",
		slog.Int("tournament_id", id),
		slog.Int("matches", len(started.Matches)),
		slog.String("format", string(started.Format)),
	)
	s.hub.BroadcastToRoom(brackets.RoomID(id), brackets.EventBracketUpdated, started.Matches)
	return started, nil
}

func (s *tournamentService) Cancel(ctx context.Context, id int) error {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isValidStatusTransition(t.Status, models.StatusCanceled) {
		return fmt.Errorf("%w: cannot cancel tournament in status %s", ErrTournamentInvalidStatusTransition, t.Status)
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, models.StatusCanceled); err != nil {
		return mapTournamentRepoError(err)
	}
	s.logger.InfoContext(ctx, "tournament canceled", slog.Int("tournament_id", id))
	return nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.matchRepo.DeleteByTournament(ctx, tx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return mapTournamentRepoError(err)
	}
	return nil
}

// Standings returns the tournament-wide table for round-robin events.
func (s *tournamentService) Standings(ctx context.Context, id int) ([]models.Standing, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Format != models.FormatRoundRobin {
		return nil, ErrStandingsNotAvailable
	}
	if t.Status != models.StatusActive && t.Status != models.StatusCompleted {
		return nil, ErrTournamentNotStarted
	}

	participants, err := s.participantRepo.ListByTournament(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, id, repositories.ListMatchesFilter{})
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return brackets.ComputeStandings(ids, matches), nil
}

// GroupStandings returns one table per group for group-stage events.
func (s *tournamentService) GroupStandings(ctx context.Context, id int) (*GroupStandingsView, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Format != models.FormatGroupStage {
		return nil, ErrStandingsNotAvailable
	}
	if t.Status != models.StatusActive && t.Status != models.StatusCompleted {
		return nil, ErrTournamentNotStarted
	}

	matches, err := s.matchRepo.ListByTournament(ctx, nil, id, repositories.ListMatchesFilter{})
	if err != nil {
		return nil, err
	}

	order, tables := brackets.GroupStandings(matches)
	view := &GroupStandingsView{Groups: make([]GroupTable, 0, len(order))}
	for _, name := range order {
		view.Groups = append(view.Groups, GroupTable{Name: name, Standings: tables[name]})
	}
	return view, nil
}

// Bracket returns the knockout matches of a tournament. For group-stage
// events whose playoffs are not seeded yet, a preview skeleton is appended
// so clients can render the upcoming bracket.
func (s *tournamentService) Bracket(ctx context.Context, id int) ([]*models.Match, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, id, repositories.ListMatchesFilter{})
	if err != nil {
		return nil, err
	}

	knockout := make([]*models.Match, 0, len(matches))
	for _, m := range matches {
		if !m.IsGroupMatch() {
			knockout = append(knockout, m)
		}
	}

	if t.Format == models.FormatGroupStage && len(knockout) == 0 && t.Status == models.StatusActive {
		preview, err := brackets.PlayoffPreview(t)
		if err != nil {
			return nil, err
		}
		knockout = append(knockout, preview...)
	}
	return knockout, nil
}

// AutoUpdateStatusesByDates advances tournaments whose dates have passed.
// The background scheduler calls this periodically; it returns how many
// tournaments changed status.
func (s *tournamentService) AutoUpdateStatusesByDates(ctx context.Context, now time.Time) (int, error) {
	due, err := s.tournamentRepo.ListForAutoStatusUpdate(ctx, nil, now)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, t := range due {
		var next models.TournamentStatus
		switch t.Status {
		case models.StatusSoon:
			next = models.StatusRegistration
		case models.StatusRegistration:
			next = models.StatusActive
		case models.StatusActive:
			next = models.StatusCompleted
		default:
			continue
		}
		// Registration auto-closes by starting the tournament so the
		// bracket gets generated, not by a bare status flip.
		if next == models.StatusActive {
			if _, err := s.Start(ctx, t.ID); err != nil {
				s.logger.WarnContext(ctx, "auto start failed",
					slog.Int("tournament_id", t.ID), slog.Any("error", err))
				continue
			}
			updated++
			continue
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, nil, t.ID, next); err != nil {
			if !errors.Is(err, repositories.ErrTournamentNotFound) {
				s.logger.WarnContext(ctx, "auto status update failed",
					slog.Int("tournament_id", t.ID), slog.Any("error", err))
			}
			continue
		}
		updated++
	}
	return updated, nil
}
