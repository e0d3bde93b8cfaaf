package brackets

import "fmt"

const minGroupStageParticipants = 4

// BuildGroups shuffles the participants, deals them into pools (participant
// i goes to pool i mod g) and schedules a round robin inside every pool.
// Pool sizes differ by at most one.
func (g *Generator) BuildGroups(names []string) (*GroupStage, error) {
	list := CleanParticipants(names)
	n := len(list)
	if n < minGroupStageParticipants {
		return nil, fmt.Errorf("group stage needs at least %d participants, got %d: %w",
			minGroupStageParticipants, n, ErrInsufficientParticipants)
	}

	count := g.groupPolicy(n)
	if count < 1 || n/count < 2 {
		return nil, fmt.Errorf("%d groups for %d participants: %w", count, n, ErrInvalidGroupCount)
	}

	g.shuffle(list)

	groups := make([][]string, count)
	for i, name := range list {
		groups[i%count] = append(groups[i%count], name)
	}

	stage := &GroupStage{
		Groups:    groups,
		Schedules: make([]Schedule, count),
	}
	for i, members := range groups {
		stage.Schedules[i] = circleSchedule(members)
	}
	return stage, nil
}
