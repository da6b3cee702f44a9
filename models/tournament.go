package models

import "time"

// TournamentStatus matches the tournament_status enum in the database.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

// Tournament carries the format configuration alongside the usual metadata.
// NumGroups and PlayersPerGroupAdvance are only set for group-stage
// tournaments and are fixed at creation.
type Tournament struct {
	ID              int              `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Description     *string          `json:"description,omitempty" db:"description"`
	Location        *string          `json:"location,omitempty" db:"location"`
	Format          TournamentFormat `json:"format" db:"format"`
	MatchFormat     MatchFormat      `json:"match_format" db:"match_format"`
	NumGroups       *int             `json:"num_groups,omitempty" db:"num_groups"`
	PlayersPerGroupAdvance *int      `json:"players_per_group_advance,omitempty" db:"players_per_group_advance"`
	RegDate         time.Time        `json:"reg_date" db:"reg_date"`
	StartDate       time.Time        `json:"start_date" db:"start_date"`
	EndDate         time.Time        `json:"end_date" db:"end_date"`
	Status          TournamentStatus `json:"status" db:"status"`
	MaxParticipants int              `json:"max_participants" db:"max_participants"`
	WinnerParticipantID *int         `json:"winner_participant_id,omitempty" db:"winner_participant_id"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`

	// Optional related entities, populated by the service layer.
	Participants []Participant `json:"participants,omitempty" db:"-"`
	Matches      []Match       `json:"matches,omitempty" db:"-"`
}
