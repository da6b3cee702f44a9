package brackets

import (
	"fmt"

	"github.com/ttleague/tournament-system/models"
)

// ProgressionResult reports everything a completion event changed. Updated
// is the completed match itself; Cascade holds every successor match the
// advancement touched, in order.
type ProgressionResult struct {
	Updated *models.Match
	Cascade []*models.Match

	// GroupStageDone is set when the completed match closed its group
	// stage; the caller should attempt playoff seeding.
	GroupStageDone bool

	TournamentComplete bool
	ChampionID         *int
}

// ValidateAndComplete resolves a submitted score against the match and
// advances the winner through the tournament. all must hold every match of
// the tournament, including the one being completed; matches are mutated in
// place and the touched ones reported in the result.
//
// Validation failures and state rejections are returned before anything is
// mutated, so an error means no partial state exists to commit.
func ValidateAndComplete(t *models.Tournament, match *models.Match, sets []models.SetScore, all []*models.Match) (*ProgressionResult, error) {
	if match.Status == models.MatchStatusCompleted {
		return nil, fmt.Errorf("%w: match %s", ErrMatchAlreadyCompleted, match.ID)
	}
	if match.P1ParticipantID == nil || (match.P2ParticipantID == nil && !match.P2Bye) {
		return nil, fmt.Errorf("%w: match %s", ErrOpponentNotResolved, match.ID)
	}

	side, err := ResolveWinner(sets, t.MatchFormat)
	if err != nil {
		return nil, err
	}

	winner := *match.P1ParticipantID
	if side == Side2 {
		winner = *match.P2ParticipantID
	}

	match.Sets = append([]models.SetScore(nil), sets...)
	match.WinnerParticipantID = &winner
	match.Status = models.MatchStatusCompleted

	res := &ProgressionResult{Updated: match}

	if match.IsGroupMatch() {
		res.GroupStageDone = GroupStageComplete(all)
		return res, nil
	}

	if t.Format == models.FormatRoundRobin {
		if allCompleted(all) {
			res.TournamentComplete = true
			res.ChampionID = roundRobinChampion(all)
		}
		return res, nil
	}

	// Knockout path: write the winner through successive rounds, resolving
	// any bye it meets, until a real opponent or the final is reached.
	cur := match
	for {
		succ := successorOf(cur, all)
		if succ == nil {
			res.TournamentComplete = true
			res.ChampionID = cur.WinnerParticipantID
			break
		}
		advancing := *cur.WinnerParticipantID
		if err := placeWinner(succ, advancing); err != nil {
			return nil, err
		}
		res.Cascade = append(res.Cascade, succ)
		if !meetsBye(succ, advancing) {
			break
		}
		succ.WinnerParticipantID = &advancing
		succ.Status = models.MatchStatusCompleted
		cur = succ
	}
	return res, nil
}

// successorOf finds the next-round match the winner of m advances into:
// same knockout phase, next round, slot index halved.
func successorOf(m *models.Match, all []*models.Match) *models.Match {
	if m.IsGroupMatch() {
		return nil
	}
	for _, c := range all {
		if c.IsGroupMatch() || c.Preview {
			continue
		}
		if c.Round == m.Round+1 && c.SlotIndex == m.SlotIndex/2 {
			return c
		}
	}
	return nil
}

// placeWinner writes a participant into the first open slot of m. Bye
// markers are not open slots.
func placeWinner(m *models.Match, participantID int) error {
	switch {
	case m.P1ParticipantID == nil && !m.P1Bye:
		m.P1ParticipantID = &participantID
	case m.P2ParticipantID == nil && !m.P2Bye:
		m.P2ParticipantID = &participantID
	default:
		return fmt.Errorf("%w: match %s", ErrSuccessorSlotsFull, m.ID)
	}
	return nil
}

// meetsBye reports whether participantID now faces an explicit bye marker
// in m, which completes the match without play.
func meetsBye(m *models.Match, participantID int) bool {
	if m.P1ParticipantID != nil && *m.P1ParticipantID == participantID {
		return m.P2Bye
	}
	if m.P2ParticipantID != nil && *m.P2ParticipantID == participantID {
		return m.P1Bye
	}
	return false
}

func allCompleted(matches []*models.Match) bool {
	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted {
			return false
		}
	}
	return true
}

// roundRobinChampion ranks everyone who appears in the match list and
// returns the leader.
func roundRobinChampion(matches []*models.Match) *int {
	var ids []int
	seen := make(map[int]bool)
	for _, m := range matches {
		for _, pid := range []*int{m.P1ParticipantID, m.P2ParticipantID} {
			if pid != nil && !seen[*pid] {
				seen[*pid] = true
				ids = append(ids, *pid)
			}
		}
	}
	standings := ComputeStandings(ids, matches)
	if len(standings) == 0 {
		return nil
	}
	champion := standings[0].ParticipantID
	return &champion
}
