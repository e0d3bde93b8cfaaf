package brackets

import "fmt"

// Court is one playing area and the teams drawn onto it.
type Court struct {
	Name  string   `json:"name"`
	Teams []string `json:"teams"`
}

// CourtAllocation is the result of AllocateCourts. Unassigned holds teams
// left over after every court was rounded down to an even count.
type CourtAllocation struct {
	Courts     []Court  `json:"courts"`
	Unassigned []string `json:"unassigned,omitempty"`
}

// AllocateCourts shuffles an even field of teams and splits it across
// courts as evenly as possible. The first n%courts courts take one extra
// team, and every court keeps an even number of teams so they can pair up.
// More courts than teams is an error.
func (g *Generator) AllocateCourts(names []string, courts int) (*CourtAllocation, error) {
	teams := CleanParticipants(names)
	n := len(teams)

	if courts < 1 {
		return nil, fmt.Errorf("%d courts: %w", courts, ErrInvalidCourtCount)
	}
	if n < 2 {
		return nil, fmt.Errorf("court allocation needs at least 2 teams, got %d: %w", n, ErrInsufficientParticipants)
	}
	if n%2 != 0 {
		return nil, fmt.Errorf("%d teams: %w", n, ErrOddTeamCount)
	}
	// Courts past the number of pairs stay empty; past n they are refused.
	if courts > n {
		return nil, fmt.Errorf("%d courts for %d teams: %w", courts, n, ErrInvalidCourtCount)
	}

	g.shuffle(teams)

	base, rem := n/courts, n%courts
	alloc := &CourtAllocation{Courts: make([]Court, courts)}

	idx := 0
	for i := range alloc.Courts {
		count := base
		if i < rem {
			count++
		}
		if count%2 != 0 {
			count--
		}
		alloc.Courts[i] = Court{
			Name:  fmt.Sprintf("Court %d", i+1),
			Teams: append([]string{}, teams[idx:idx+count]...),
		}
		idx += count
	}
	if idx < n {
		alloc.Unassigned = append([]string{}, teams[idx:]...)
	}
	return alloc, nil
}

// Pairings splits a court's teams into consecutive matches.
func (c Court) Pairings() []Match {
	matches := make([]Match, 0, len(c.Teams)/2)
	for i := 0; i+1 < len(c.Teams); i += 2 {
		matches = append(matches, Match{c.Teams[i], c.Teams[i+1]})
	}
	return matches
}
