package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/ttleague/tournament-system/models"
)

// GenerateParams carries everything a generator needs to materialize the
// initial match set for a tournament.
type GenerateParams struct {
	Tournament   *models.Tournament
	Participants []*models.Participant
}

// Generator builds the initial match schedule for one tournament format.
// Generators are pure: they return matches to persist and touch no storage.
type Generator interface {
	Generate(ctx context.Context, params GenerateParams) ([]*models.Match, error)
	Name() string
}

// BuildInitialMatches dispatches to the generator for the tournament's
// format. Participants are seed-ordered first: rated entries by descending
// rating, unrated entries after them in registration order.
func BuildInitialMatches(ctx context.Context, tournament *models.Tournament, participants []*models.Participant) ([]*models.Match, error) {
	var gen Generator
	switch tournament.Format {
	case models.FormatSingleElimination:
		gen = NewSingleEliminationGenerator()
	case models.FormatRoundRobin:
		gen = NewRoundRobinGenerator()
	case models.FormatGroupStage:
		gen = NewGroupStageGenerator()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, tournament.Format)
	}

	params := GenerateParams{
		Tournament:   tournament,
		Participants: seedOrder(participants),
	}
	return gen.Generate(ctx, params)
}

// seedOrder returns a copy of participants sorted for seeding. The sort is
// stable so equal or missing ratings keep their input order.
func seedOrder(participants []*models.Participant) []*models.Participant {
	seeded := make([]*models.Participant, len(participants))
	copy(seeded, participants)
	sort.SliceStable(seeded, func(i, j int) bool {
		ri, rj := seeded[i].SeedRating, seeded[j].SeedRating
		switch {
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return *ri > *rj
		}
	})
	return seeded
}

func participantIDs(participants []*models.Participant) []int {
	ids := make([]int, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids
}
