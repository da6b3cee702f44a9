package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/ttleague/tournament-system/models"
)

type GroupStageGenerator struct{}

func NewGroupStageGenerator() Generator {
	return &GroupStageGenerator{}
}

func (g *GroupStageGenerator) Name() string {
	return "GroupStage"
}

// Generate partitions the participants into groups and schedules an
// independent round robin inside each one. No cross-group matches exist at
// this stage; the playoff bracket is seeded later, once every pool match is
// completed.
func (g *GroupStageGenerator) Generate(_ context.Context, params GenerateParams) ([]*models.Match, error) {
	t := params.Tournament
	if t.NumGroups == nil || t.PlayersPerGroupAdvance == nil {
		return nil, ErrGroupConfigMissing
	}
	if err := ValidateGroupConfig(len(params.Participants), *t.NumGroups, *t.PlayersPerGroupAdvance); err != nil {
		return nil, err
	}

	var matches []*models.Match
	for i, group := range PartitionGroups(params.Participants, *t.NumGroups) {
		label := GroupLabel(i)
		matches = append(matches, pairwiseMatches(t, participantIDs(group), &label)...)
	}
	return matches, nil
}

// ValidateGroupConfig rejects group-stage parameters that cannot produce a
// playable tournament. These are setup-time errors: they are raised before
// any match is generated.
func ValidateGroupConfig(numParticipants, numGroups, advancePerGroup int) error {
	if numParticipants < 2 {
		return fmt.Errorf("%w: got %d", ErrNotEnoughParticipants, numParticipants)
	}
	if numGroups < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewGroups, numGroups)
	}
	if numGroups > numParticipants {
		return fmt.Errorf("%w: %d groups for %d participants", ErrTooManyGroups, numGroups, numParticipants)
	}
	if advancePerGroup < 1 {
		return fmt.Errorf("%w: got %d", ErrAdvanceCountInvalid, advancePerGroup)
	}
	// The smallest group holds floor(n/numGroups) players; at least one of
	// them must not advance.
	if advancePerGroup >= numParticipants/numGroups {
		return fmt.Errorf("%w: %d advance from groups of %d", ErrAdvanceCountTooLarge, advancePerGroup, numParticipants/numGroups)
	}
	return nil
}

// PartitionGroups splits participants into numGroups groups as evenly as
// possible: the first n mod numGroups groups take one extra player, in
// input order.
func PartitionGroups(participants []*models.Participant, numGroups int) [][]*models.Participant {
	n := len(participants)
	base := n / numGroups
	remainder := n % numGroups

	groups := make([][]*models.Participant, 0, numGroups)
	offset := 0
	for i := 0; i < numGroups; i++ {
		size := base
		if i < remainder {
			size++
		}
		groups = append(groups, participants[offset:offset+size])
		offset += size
	}
	return groups
}

// GroupLabel names the i-th group "Group A", "Group B", … and continues with
// double letters past "Group Z".
func GroupLabel(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return "Group " + name
}

// GroupStageComplete reports whether every group-stage match is completed.
// It is false when the match list holds no group matches at all.
func GroupStageComplete(matches []*models.Match) bool {
	any := false
	for _, m := range matches {
		if !m.IsGroupMatch() {
			continue
		}
		any = true
		if m.Status != models.MatchStatusCompleted {
			return false
		}
	}
	return any
}

// PlayoffsSeeded reports whether real (non-preview) playoff matches exist.
// This existence check is the idempotency guard for seeding: it holds
// across service instances, unlike an in-process flag.
func PlayoffsSeeded(matches []*models.Match) bool {
	for _, m := range matches {
		if !m.IsGroupMatch() && !m.Preview {
			return true
		}
	}
	return false
}

// groupRosters derives group membership from the pool matches, in match
// list order. Working from the matches rather than a fresh partition keeps
// membership consistent with what was actually scheduled.
func groupRosters(matches []*models.Match) (labels []string, rosters map[string][]int) {
	seen := make(map[string]map[int]bool)
	rosters = make(map[string][]int)
	for _, m := range matches {
		if !m.IsGroupMatch() {
			continue
		}
		name := *m.GroupName
		if seen[name] == nil {
			seen[name] = make(map[int]bool)
			labels = append(labels, name)
		}
		for _, pid := range []*int{m.P1ParticipantID, m.P2ParticipantID} {
			if pid != nil && !seen[name][*pid] {
				seen[name][*pid] = true
				rosters[name] = append(rosters[name], *pid)
			}
		}
	}
	return labels, rosters
}

// GroupStandings computes the current table of every group in the match
// list, keyed by group name, with labels in schedule order.
func GroupStandings(matches []*models.Match) ([]string, map[string][]models.Standing) {
	labels, rosters := groupRosters(matches)

	perGroup := make(map[string][]*models.Match, len(labels))
	for _, m := range matches {
		if m.IsGroupMatch() {
			perGroup[*m.GroupName] = append(perGroup[*m.GroupName], m)
		}
	}

	standings := make(map[string][]models.Standing, len(labels))
	for _, label := range labels {
		standings[label] = ComputeStandings(rosters[label], perGroup[label])
	}
	return labels, standings
}

// TrySeedPlayoffs derives the playoff bracket from group standings. It is
// idempotent: when the group stage is not finished yet, or non-preview
// playoff matches already exist, it returns nil matches and no error. The
// caller still needs a single-writer guard around persisting the result;
// the matches repository maps the playoff slot uniqueness violation for
// exactly that purpose.
func TrySeedPlayoffs(t *models.Tournament, matches []*models.Match) ([]*models.Match, error) {
	if t.Format != models.FormatGroupStage {
		return nil, nil
	}
	if t.PlayersPerGroupAdvance == nil {
		return nil, ErrGroupConfigMissing
	}
	if PlayoffsSeeded(matches) || !GroupStageComplete(matches) {
		return nil, nil
	}

	advance := *t.PlayersPerGroupAdvance
	labels, tables := GroupStandings(matches)

	pooled := make([]models.Standing, 0, advance*len(labels))
	for _, label := range labels {
		table := tables[label]
		k := advance
		if k > len(table) {
			k = len(table)
		}
		pooled = append(pooled, table[:k]...)
	}

	// The pooled sort ignores group identity, so two players from the same
	// group can meet again in the first playoff round.
	sort.SliceStable(pooled, func(i, j int) bool {
		if pooled[i].Points != pooled[j].Points {
			return pooled[i].Points > pooled[j].Points
		}
		return pooled[i].PointDifference > pooled[j].PointDifference
	})

	seeded := make([]int, len(pooled))
	for i, s := range pooled {
		seeded[i] = s.ParticipantID
	}
	return buildKnockout(t, seeded, false)
}

// PlayoffPreview returns the playoff skeleton that seeding will fill in
// once the group stage completes: the same round structure with only TBD
// slots and bye markers, so a bracket shape can be rendered early.
func PlayoffPreview(t *models.Tournament) ([]*models.Match, error) {
	if t.Format != models.FormatGroupStage || t.NumGroups == nil || t.PlayersPerGroupAdvance == nil {
		return nil, ErrGroupConfigMissing
	}
	slots := *t.NumGroups * *t.PlayersPerGroupAdvance
	return buildKnockout(t, make([]int, slots), true)
}
