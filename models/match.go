package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
)

// SetScore is the result of a single set, from player 1's perspective first.
type SetScore struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// Match is one fixture of a tournament. The engine mints match IDs before
// persistence, so they are UUIDs rather than database serials.
//
// A nil participant pointer means the slot is not determined yet ("TBD").
// A bye marker on a slot is a distinct state: no opponent will ever be
// assigned there and the match resolves without being played.
type Match struct {
	ID           string  `json:"id" db:"id"`
	TournamentID int     `json:"tournament_id" db:"tournament_id"`
	Round        int     `json:"round" db:"round"`
	RoundLabel   string  `json:"round_label" db:"round_label"`
	GroupName    *string `json:"group_name,omitempty" db:"group_name"`
	SlotIndex    int     `json:"slot_index" db:"slot_index"`

	P1ParticipantID *int `json:"p1_participant_id,omitempty" db:"p1_participant_id"`
	P2ParticipantID *int `json:"p2_participant_id,omitempty" db:"p2_participant_id"`
	P1Bye           bool `json:"p1_bye,omitempty" db:"p1_bye"`
	P2Bye           bool `json:"p2_bye,omitempty" db:"p2_bye"`

	Sets                []SetScore  `json:"sets,omitempty" db:"-"`
	WinnerParticipantID *int        `json:"winner_participant_id,omitempty" db:"winner_participant_id"`
	Status              MatchStatus `json:"status" db:"status"`

	// Preview marks playoff skeleton matches rendered before group play
	// concludes; they never carry player assignments and are never persisted.
	Preview   bool      `json:"preview,omitempty" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsGroupMatch reports whether the match belongs to a group-stage pool.
func (m *Match) IsGroupMatch() bool {
	return m.GroupName != nil
}

// HasBye reports whether one of the slots is a bye marker.
func (m *Match) HasBye() bool {
	return m.P1Bye || m.P2Bye
}
