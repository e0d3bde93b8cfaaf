package brackets

import "fmt"

// BuildRoundRobin schedules every participant against every other exactly
// once using the circle method. An odd field gets one BYE; a match against
// BYE means that participant sits out the round.
func (g *Generator) BuildRoundRobin(names []string) (Schedule, error) {
	list := CleanParticipants(names)
	if len(list) < 2 {
		return nil, fmt.Errorf("round robin needs at least 2 participants, got %d: %w", len(list), ErrInsufficientParticipants)
	}

	if g.shuffleRoundRobin {
		g.shuffle(list)
	}
	return circleSchedule(list), nil
}

// circleSchedule keeps position 0 fixed and rotates the rest of the ring
// one step after each round. list must hold at least two names.
func circleSchedule(list []string) Schedule {
	ring := make([]string, len(list), len(list)+1)
	copy(ring, list)
	if len(ring)%2 == 1 {
		ring = append(ring, Bye)
	}

	n := len(ring)
	schedule := make(Schedule, 0, n-1)

	for r := 0; r < n-1; r++ {
		round := make(Round, n/2)
		for j := range round {
			round[j] = Match{ring[j], ring[n-1-j]}
		}
		schedule = append(schedule, round)

		last := ring[n-1]
		copy(ring[2:], ring[1:n-1])
		ring[1] = last
	}
	return schedule
}
