package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/ttleague/tournament-system/models"
)

var (
	ErrMatchNotFound           = errors.New("match not found")
	ErrMatchTournamentInvalid  = errors.New("match references an invalid tournament")
	ErrMatchParticipantInvalid = errors.New("match references an invalid participant")
	ErrPlayoffSlotConflict     = errors.New("knockout slot already occupied")
)

type ListMatchesFilter struct {
	GroupName *string
	Status    *models.MatchStatus
}

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, filter ListMatchesFilter) ([]*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error
	UpdateSlots(ctx context.Context, exec SQLExecutor, match *models.Match) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	id, tournament_id, round, round_label, group_name, slot_index,
	p1_participant_id, p2_participant_id, p1_bye, p2_bye,
	sets, winner_participant_id, status, created_at`

func marshalSets(sets []models.SetScore) ([]byte, error) {
	if len(sets) == 0 {
		return []byte("[]"), nil
	}
	raw, err := json.Marshal(sets)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal set scores: %w", err)
	}
	return raw, nil
}

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	var rawSets []byte
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.Round, &m.RoundLabel, &m.GroupName, &m.SlotIndex,
		&m.P1ParticipantID, &m.P2ParticipantID, &m.P1Bye, &m.P2Bye,
		&rawSets, &m.WinnerParticipantID, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(rawSets) > 0 {
		if err := json.Unmarshal(rawSets, &m.Sets); err != nil {
			return nil, fmt.Errorf("failed to unmarshal set scores for match %s: %w", m.ID, err)
		}
	}
	return &m, nil
}

// CreateBatch inserts generated matches. Knockout slots carry a unique
// index per (tournament, round, slot), so a concurrent attempt to seed the
// same bracket surfaces as ErrPlayoffSlotConflict.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (
			id, tournament_id, round, round_label, group_name, slot_index,
			p1_participant_id, p2_participant_id, p1_bye, p2_bye,
			sets, winner_participant_id, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`

	for _, m := range matches {
		rawSets, err := marshalSets(m.Sets)
		if err != nil {
			return err
		}
		err = executor.QueryRowContext(ctx, query,
			m.ID, m.TournamentID, m.Round, m.RoundLabel, m.GroupName, m.SlotIndex,
			m.P1ParticipantID, m.P2ParticipantID, m.P1Bye, m.P2Bye,
			rawSets, m.WinnerParticipantID, m.Status,
		).Scan(&m.CreatedAt)
		if err != nil {
			return r.handleMatchError(err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`
	m, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %s: %w", id, err)
	}
	return m, nil
}

// ListByTournament returns matches in a deterministic order: group pools
// first (alphabetically), then the knockout rounds bottom-up.
func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, filter ListMatchesFilter) ([]*models.Match, error) {
	executor := r.getExecutor(exec)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	placeholderIndex := 2

	if filter.GroupName != nil {
		queryBuilder.WriteString(" AND group_name = $" + strconv.Itoa(placeholderIndex))
		args = append(args, *filter.GroupName)
		placeholderIndex++
	}
	if filter.Status != nil {
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(placeholderIndex))
		args = append(args, *filter.Status)
	}

	queryBuilder.WriteString(" ORDER BY group_name ASC NULLS LAST, round ASC, slot_index ASC")

	rows, err := executor.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	rawSets, err := marshalSets(m.Sets)
	if err != nil {
		return err
	}

	query := `
		UPDATE matches
		SET sets = $1, status = $2, winner_participant_id = $3
		WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, rawSets, m.Status, m.WinnerParticipantID, m.ID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateSlots(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET p1_participant_id = $1, p2_participant_id = $2
		WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, m.P1ParticipantID, m.P2ParticipantID, m.ID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete matches for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "matches_knockout_slot_key" {
				return ErrPlayoffSlotConflict
			}
		case "23503":
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_p1_participant_id_fkey", "matches_p2_participant_id_fkey",
				"matches_winner_participant_id_fkey":
				return ErrMatchParticipantInvalid
			}
		}
	}
	return err
}
