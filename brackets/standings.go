package brackets

import (
	"sort"

	"github.com/ttleague/tournament-system/models"
)

// ComputeStandings derives the ranking table for participantIDs from the
// completed results between them. Matches involving anyone outside the set,
// unfinished matches and byes (which carry no played sets) are ignored.
//
// Sorting is by points, then point difference, both descending. There is no
// further tie-break criterion: participants equal on both keys keep their
// input order and still receive distinct sequential ranks. The function is
// pure, so recomputing from the same inputs yields identical output.
func ComputeStandings(participantIDs []int, matches []*models.Match) []models.Standing {
	index := make(map[int]*models.Standing, len(participantIDs))
	order := make([]*models.Standing, 0, len(participantIDs))
	for _, id := range participantIDs {
		if _, ok := index[id]; ok {
			continue
		}
		s := &models.Standing{ParticipantID: id}
		index[id] = s
		order = append(order, s)
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted || m.HasBye() || len(m.Sets) == 0 {
			continue
		}
		if m.P1ParticipantID == nil || m.P2ParticipantID == nil {
			continue
		}
		s1 := index[*m.P1ParticipantID]
		s2 := index[*m.P2ParticipantID]
		if s1 == nil || s2 == nil {
			continue
		}

		setWins1, setWins2 := 0, 0
		for _, set := range m.Sets {
			s1.PointsFor += set.P1
			s1.PointsAgainst += set.P2
			s2.PointsFor += set.P2
			s2.PointsAgainst += set.P1
			if set.P1 > set.P2 {
				setWins1++
			} else {
				setWins2++
			}
		}
		if setWins1 > setWins2 {
			s1.Wins++
			s2.Losses++
		} else {
			s2.Wins++
			s1.Losses++
		}
	}

	for _, s := range order {
		s.Points = s.Wins * pointsPerWin
		s.PointDifference = s.PointsFor - s.PointsAgainst
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Points != order[j].Points {
			return order[i].Points > order[j].Points
		}
		return order[i].PointDifference > order[j].PointDifference
	})

	standings := make([]models.Standing, len(order))
	for i, s := range order {
		s.Rank = i + 1
		standings[i] = *s
	}
	return standings
}

const pointsPerWin = 3
