package models

// Standing is one row of a ranking table derived from completed match
// results. Standings are computed on demand and never persisted.
type Standing struct {
	ParticipantID   int `json:"participant_id"`
	Wins            int `json:"wins"`
	Losses          int `json:"losses"`
	Points          int `json:"points"`
	PointsFor       int `json:"points_for"`
	PointsAgainst   int `json:"points_against"`
	PointDifference int `json:"point_difference"`
	Rank            int `json:"rank"`
}
