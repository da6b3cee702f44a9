package models

// MatchFormat determines how many sets a match is played over.
type MatchFormat string

const (
	BestOf1 MatchFormat = "best_of_1"
	BestOf3 MatchFormat = "best_of_3"
	BestOf5 MatchFormat = "best_of_5"
)

func (f MatchFormat) Valid() bool {
	switch f {
	case BestOf1, BestOf3, BestOf5:
		return true
	}
	return false
}

// MaxSets returns the maximum number of sets the format allows, or 0 for an
// unknown format.
func (f MatchFormat) MaxSets() int {
	switch f {
	case BestOf1:
		return 1
	case BestOf3:
		return 3
	case BestOf5:
		return 5
	}
	return 0
}

// SetsToWin returns how many sets a side must take to win the match.
func (f MatchFormat) SetsToWin() int {
	return (f.MaxSets() + 1) / 2
}

// TournamentFormat selects how the match schedule is built and progressed.
type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "single_elimination"
	FormatRoundRobin        TournamentFormat = "round_robin"
	FormatGroupStage        TournamentFormat = "group_stage"
)

func (f TournamentFormat) Valid() bool {
	switch f {
	case FormatSingleElimination, FormatRoundRobin, FormatGroupStage:
		return true
	}
	return false
}
