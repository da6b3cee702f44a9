package models

import "time"

// Participant is a registered entry in a tournament. The progression engine
// treats participants as immutable; registration owns their lifecycle.
type Participant struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	SeedRating   *int      `json:"seed_rating,omitempty" db:"seed_rating"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
